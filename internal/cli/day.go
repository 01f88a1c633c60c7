package cli

import (
	"fmt"

	"github.com/kmallory/atomicday/internal/stats"
)

type DayCmd struct{}

// Run prints the full record for the working date.
func (c *DayCmd) Run(ctx *Context) error {
	t, err := ctx.OpenTracker()
	if err != nil {
		return err
	}
	defer ctx.Store.Close()

	rec := t.Record()

	fmt.Printf("Day: %s\n", ctx.Date)
	if stats.IsPerfectDay(rec) {
		fmt.Println("Status: perfect day")
	}
	fmt.Println()

	fmt.Println("Victory Hour (20/20/20):")
	r := rec.MorningRoutine
	fmt.Printf("  %s move     %-16s %s\n", mark(r.Move.Completed), r.Move.Time, r.Move.Activity)
	fmt.Printf("  %s reflect  %-16s %s\n", mark(r.Reflect.Completed), r.Reflect.Time, r.Reflect.Activity)
	fmt.Printf("  %s grow     %-16s %s\n", mark(r.Grow.Completed), r.Grow.Time, r.Grow.Activity)

	fmt.Println("\nGratitude:")
	for i, g := range rec.Gratitude {
		if g == "" {
			g = "-"
		}
		fmt.Printf("  %d. %s\n", i+1, g)
	}

	fmt.Println("\nHabits:")
	if len(rec.Habits) == 0 {
		fmt.Println("  (none)")
	}
	for i, h := range rec.Habits {
		fmt.Printf("  %d. %s %s (%s, streak %d)\n", i+1, mark(h.Completed), h.Name, h.Category, h.Streak)
	}

	fmt.Println("\nTasks:")
	if len(rec.Tasks) == 0 {
		fmt.Println("  (none)")
	}
	for i, task := range rec.Tasks {
		fmt.Printf("  %d. %s %s [%s]\n", i+1, mark(task.Completed), task.Text, task.Priority)
	}

	fmt.Println("\nTime blocks:")
	if len(rec.TimeBlocks) == 0 {
		fmt.Println("  (none)")
	}
	for i, b := range rec.TimeBlocks {
		fmt.Printf("  %d. %s %-9s %s (%s, %d min)\n", i+1, mark(b.Completed), b.Time, b.Activity, b.Category, b.Duration)
	}

	fmt.Println("\nDaily five:")
	for i, f := range rec.DailyFive {
		if f == "" {
			f = "-"
		}
		fmt.Printf("  %d. %s\n", i+1, f)
	}

	if len(rec.HabitStacks) > 0 {
		fmt.Println("\nHabit stacks:")
		for i, s := range rec.HabitStacks {
			fmt.Printf("  %d. %s After %s, %s\n", i+1, mark(s.Completed), s.Trigger, s.NewHabit)
		}
	}

	return nil
}

type GotoCmd struct {
	Date string `arg:"" help:"Date to switch to (YYYY-MM-DD)."`
}

// Run closes stats for the working date and switches the session to the
// target date.
func (c *GotoCmd) Run(ctx *Context) error {
	target, err := ResolveDate(c.Date)
	if err != nil {
		return err
	}

	t, err := ctx.OpenTracker()
	if err != nil {
		return err
	}
	defer ctx.Store.Close()

	t.GoTo(target)
	s := t.Stats()
	fmt.Printf("Closed %s and opened %s.\n", ctx.Date, target)
	fmt.Printf("Current streak: %d  Perfect days: %d  Total days: %d\n",
		s.CurrentStreak, s.PerfectDays, s.TotalDays)
	return nil
}
