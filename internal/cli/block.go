package cli

import (
	"fmt"

	"github.com/kmallory/atomicday/internal/constants"
	"github.com/kmallory/atomicday/internal/schedule"
)

type BlockListCmd struct{}

func (c *BlockListCmd) Run(ctx *Context) error {
	t, err := ctx.OpenTracker()
	if err != nil {
		return err
	}
	defer ctx.Store.Close()

	blocks := t.Record().TimeBlocks
	if len(blocks) == 0 {
		fmt.Println("No time blocks for today.")
		return nil
	}

	fmt.Printf("Time blocks for %s:\n", ctx.Date)
	for i, b := range blocks {
		fmt.Printf("  %d. %s %-9s %s (%s, %d min)\n", i+1, mark(b.Completed), b.Time, b.Activity, b.Category, b.Duration)
	}
	return nil
}

type BlockAddCmd struct {
	Time     string `arg:"" help:"Start time, e.g. '9:00 AM'."`
	Activity string `arg:"" help:"Activity description."`
	Category string `short:"c" help:"Category label." default:"work"`
	Duration int    `short:"d" help:"Duration in minutes." default:"60"`
}

func (c *BlockAddCmd) Validate() error {
	if _, err := schedule.ParseClock(c.Time); err != nil {
		return err
	}
	return nil
}

func (c *BlockAddCmd) Run(ctx *Context) error {
	t, err := ctx.OpenTracker()
	if err != nil {
		return err
	}
	defer ctx.Store.Close()

	b := t.AddTimeBlock(c.Time, c.Activity, c.Category, c.Duration)
	fmt.Printf("Added block: %s %s (%d min)\n", b.Time, b.Activity, b.Duration)
	return nil
}

type BlockToggleCmd struct {
	Number int `arg:"" help:"Block number from 'block list'."`
}

func (c *BlockToggleCmd) Run(ctx *Context) error {
	t, err := ctx.OpenTracker()
	if err != nil {
		return err
	}
	defer ctx.Store.Close()

	blocks := t.Record().TimeBlocks
	i, err := indexArg(c.Number, len(blocks), "time block")
	if err != nil {
		return err
	}

	if err := t.ToggleTimeBlock(blocks[i].ID); err != nil {
		return err
	}
	updated := t.Record().TimeBlocks[i]
	fmt.Printf("%s %s %s\n", mark(updated.Completed), updated.Time, updated.Activity)
	return nil
}

type BlockRemoveCmd struct {
	Number int `arg:"" help:"Block number from 'block list'."`
}

func (c *BlockRemoveCmd) Run(ctx *Context) error {
	t, err := ctx.OpenTracker()
	if err != nil {
		return err
	}
	defer ctx.Store.Close()

	blocks := t.Record().TimeBlocks
	i, err := indexArg(c.Number, len(blocks), "time block")
	if err != nil {
		return err
	}

	activity := blocks[i].Activity
	if err := t.RemoveTimeBlock(blocks[i].ID); err != nil {
		return err
	}
	fmt.Printf("Removed block: %s\n", activity)
	return nil
}

type BlockGapsCmd struct {
	DayStart string `help:"Start of the planning day." default:"${day_start}"`
	DayEnd   string `help:"End of the planning day." default:"${day_end}"`
}

// Run shows the free gaps between the day's time blocks.
func (c *BlockGapsCmd) Run(ctx *Context) error {
	t, err := ctx.OpenTracker()
	if err != nil {
		return err
	}
	defer ctx.Store.Close()

	analysis, err := schedule.FindFreeGaps(t.Record().TimeBlocks, c.DayStart, c.DayEnd)
	if err != nil {
		return err
	}

	fmt.Printf("Schedule analysis for %s (%s - %s):\n", ctx.Date, c.DayStart, c.DayEnd)
	fmt.Printf("  Scheduled: %d min\n", analysis.ScheduledMinutes)
	fmt.Printf("  Free:      %d min\n\n", analysis.FreeMinutes)

	if len(analysis.Gaps) == 0 {
		fmt.Println("No free gaps. The day is fully booked.")
		return nil
	}

	fmt.Println("Free gaps:")
	for _, g := range analysis.Gaps {
		fmt.Printf("  %s - %s (%d min)\n", g.Start, g.End, g.Minutes)
	}
	return nil
}

// GapVars supplies kong interpolation defaults for BlockGapsCmd.
func GapVars() map[string]string {
	return map[string]string{
		"day_start": constants.DefaultDayStart,
		"day_end":   constants.DefaultDayEnd,
	}
}
