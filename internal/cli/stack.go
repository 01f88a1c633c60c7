package cli

import "fmt"

type StackListCmd struct{}

func (c *StackListCmd) Run(ctx *Context) error {
	t, err := ctx.OpenTracker()
	if err != nil {
		return err
	}
	defer ctx.Store.Close()

	stacks := t.Record().HabitStacks
	if len(stacks) == 0 {
		fmt.Println("No habit stacks.")
		return nil
	}

	fmt.Printf("Habit stacks for %s:\n", ctx.Date)
	for i, s := range stacks {
		fmt.Printf("  %d. %s After %s, %s\n", i+1, mark(s.Completed), s.Trigger, s.NewHabit)
	}
	return nil
}

type StackAddCmd struct {
	Trigger string `arg:"" help:"Existing habit that triggers the stack."`
	Habit   string `arg:"" help:"New habit to attach."`
}

func (c *StackAddCmd) Run(ctx *Context) error {
	t, err := ctx.OpenTracker()
	if err != nil {
		return err
	}
	defer ctx.Store.Close()

	s := t.AddHabitStack(c.Trigger, c.Habit)
	fmt.Printf("Added stack: after %s, %s\n", s.Trigger, s.NewHabit)
	return nil
}

type StackToggleCmd struct {
	Number int `arg:"" help:"Stack number from 'stack list'."`
}

func (c *StackToggleCmd) Run(ctx *Context) error {
	t, err := ctx.OpenTracker()
	if err != nil {
		return err
	}
	defer ctx.Store.Close()

	stacks := t.Record().HabitStacks
	i, err := indexArg(c.Number, len(stacks), "habit stack")
	if err != nil {
		return err
	}

	if err := t.ToggleHabitStack(stacks[i].ID); err != nil {
		return err
	}
	updated := t.Record().HabitStacks[i]
	fmt.Printf("%s After %s, %s\n", mark(updated.Completed), updated.Trigger, updated.NewHabit)
	return nil
}

type StackRemoveCmd struct {
	Number int `arg:"" help:"Stack number from 'stack list'."`
}

func (c *StackRemoveCmd) Run(ctx *Context) error {
	t, err := ctx.OpenTracker()
	if err != nil {
		return err
	}
	defer ctx.Store.Close()

	stacks := t.Record().HabitStacks
	i, err := indexArg(c.Number, len(stacks), "habit stack")
	if err != nil {
		return err
	}

	if err := t.RemoveHabitStack(stacks[i].ID); err != nil {
		return err
	}
	fmt.Println("Removed habit stack.")
	return nil
}
