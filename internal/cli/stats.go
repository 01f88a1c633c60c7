package cli

import (
	"fmt"

	"github.com/kmallory/atomicday/internal/stats"
)

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *Context) error {
	t, err := ctx.OpenTracker()
	if err != nil {
		return err
	}
	defer ctx.Store.Close()

	s := t.Stats()
	fmt.Println("Progress:")
	fmt.Printf("  Current streak:  %d\n", s.CurrentStreak)
	fmt.Printf("  Longest streak:  %d\n", s.LongestStreak)
	fmt.Printf("  Perfect days:    %d\n", s.PerfectDays)
	fmt.Printf("  Total days:      %d\n", s.TotalDays)
	if s.LastClosedDate != "" {
		fmt.Printf("  Last closed day: %s\n", s.LastClosedDate)
	}

	if stats.IsPerfectDay(t.Record()) {
		fmt.Printf("\n%s is on track to be a perfect day.\n", ctx.Date)
	}
	return nil
}
