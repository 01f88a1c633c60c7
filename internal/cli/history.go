package cli

import (
	"fmt"

	"github.com/kmallory/atomicday/internal/archive"
)

type HistoryCmd struct {
	Months int `short:"m" help:"How many calendar months back to include." default:"3"`
}

// Run prints the archived history inside the requested window.
func (c *HistoryCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	query := archive.NewQuery(ctx.Store, ctx.Logger)
	data := query.ArchiveData(c.Months)

	fmt.Printf("Archive since %s:\n", data.CutoffDate)

	fmt.Printf("\nCompleted weekly goals (%d):\n", len(data.WeeklyGoals))
	for _, g := range data.WeeklyGoals {
		fmt.Printf("  %s  %s (%s)\n", g.CompletedDate, g.Goal, g.Category)
	}
	if len(data.WeeklyGoals) == 0 {
		fmt.Println("  (none)")
	}

	fmt.Printf("\nGratitude entries (%d):\n", len(data.Gratitudes))
	for _, g := range data.Gratitudes {
		fmt.Printf("  %s  %s\n", g.Date, g.Text)
	}
	if len(data.Gratitudes) == 0 {
		fmt.Println("  (none)")
	}

	fmt.Printf("\nTask days (%d):\n", len(data.Tasks))
	for _, day := range data.Tasks {
		done := 0
		for _, task := range day.Tasks {
			if task.Completed {
				done++
			}
		}
		fmt.Printf("  %s  %d tasks, %d completed\n", day.Date, len(day.Tasks), done)
	}
	if len(data.Tasks) == 0 {
		fmt.Println("  (none)")
	}

	return nil
}
