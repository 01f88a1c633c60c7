package cli

import (
	"fmt"

	"github.com/kmallory/atomicday/internal/constants"
)

type RoutineShowCmd struct{}

func (c *RoutineShowCmd) Run(ctx *Context) error {
	t, err := ctx.OpenTracker()
	if err != nil {
		return err
	}
	defer ctx.Store.Close()

	r := t.Record().MorningRoutine
	fmt.Printf("Victory Hour for %s:\n", ctx.Date)
	fmt.Printf("  %s move     %-16s %s\n", mark(r.Move.Completed), r.Move.Time, r.Move.Activity)
	fmt.Printf("  %s reflect  %-16s %s\n", mark(r.Reflect.Completed), r.Reflect.Time, r.Reflect.Activity)
	fmt.Printf("  %s grow     %-16s %s\n", mark(r.Grow.Completed), r.Grow.Time, r.Grow.Activity)
	return nil
}

type RoutineToggleCmd struct {
	Slot string `arg:"" help:"Routine slot: move, reflect, or grow."`
}

func (c *RoutineToggleCmd) Run(ctx *Context) error {
	t, err := ctx.OpenTracker()
	if err != nil {
		return err
	}
	defer ctx.Store.Close()

	perfect, err := t.ToggleRoutine(c.Slot)
	if err != nil {
		return err
	}

	fmt.Printf("Toggled %s.\n", c.Slot)
	if perfect {
		fmt.Println(constants.PerfectDayMessage)
	}
	return nil
}

type RoutineSetCmd struct {
	Slot     string `arg:"" help:"Routine slot: move, reflect, or grow."`
	Activity string `arg:"" help:"Activity description."`
}

func (c *RoutineSetCmd) Run(ctx *Context) error {
	t, err := ctx.OpenTracker()
	if err != nil {
		return err
	}
	defer ctx.Store.Close()

	if err := t.SetRoutineActivity(c.Slot, c.Activity); err != nil {
		return err
	}
	fmt.Printf("Set %s activity: %s\n", c.Slot, c.Activity)
	return nil
}
