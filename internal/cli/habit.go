package cli

import (
	"fmt"

	"github.com/kmallory/atomicday/internal/constants"
)

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *Context) error {
	t, err := ctx.OpenTracker()
	if err != nil {
		return err
	}
	defer ctx.Store.Close()

	habits := t.Record().Habits
	if len(habits) == 0 {
		fmt.Println("No habits tracked today.")
		return nil
	}

	fmt.Printf("Habits for %s:\n", ctx.Date)
	for i, h := range habits {
		fmt.Printf("  %d. %s %s (%s, streak %d)\n", i+1, mark(h.Completed), h.Name, h.Category, h.Streak)
		if h.TwoMinuteVersion != "" {
			fmt.Printf("       2-minute version: %s\n", h.TwoMinuteVersion)
		}
	}
	return nil
}

type HabitAddCmd struct {
	Name      string `arg:"" help:"Habit name."`
	Category  string `short:"c" help:"Category label." default:"Personal"`
	TwoMinute string `short:"t" help:"Two-minute starter version."`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	t, err := ctx.OpenTracker()
	if err != nil {
		return err
	}
	defer ctx.Store.Close()

	h := t.AddHabit(c.Name, c.Category, c.TwoMinute)
	fmt.Printf("Added habit: %s (ID: %s)\n", h.Name, h.ID)
	return nil
}

type HabitToggleCmd struct {
	Number int `arg:"" help:"Habit number from 'habit list'."`
}

func (c *HabitToggleCmd) Run(ctx *Context) error {
	t, err := ctx.OpenTracker()
	if err != nil {
		return err
	}
	defer ctx.Store.Close()

	habits := t.Record().Habits
	i, err := indexArg(c.Number, len(habits), "habit")
	if err != nil {
		return err
	}

	perfect, err := t.ToggleHabit(habits[i].ID)
	if err != nil {
		return err
	}

	updated := t.Record().Habits[i]
	fmt.Printf("%s %s (streak %d)\n", mark(updated.Completed), updated.Name, updated.Streak)
	if perfect {
		fmt.Println(constants.PerfectDayMessage)
	}
	return nil
}

type HabitRemoveCmd struct {
	Number int `arg:"" help:"Habit number from 'habit list'."`
}

func (c *HabitRemoveCmd) Run(ctx *Context) error {
	t, err := ctx.OpenTracker()
	if err != nil {
		return err
	}
	defer ctx.Store.Close()

	habits := t.Record().Habits
	i, err := indexArg(c.Number, len(habits), "habit")
	if err != nil {
		return err
	}

	name := habits[i].Name
	if err := t.RemoveHabit(habits[i].ID); err != nil {
		return err
	}
	fmt.Printf("Removed habit: %s\n", name)
	return nil
}
