package cli

import "fmt"

type GoalListCmd struct{}

func (c *GoalListCmd) Run(ctx *Context) error {
	t, err := ctx.OpenTracker()
	if err != nil {
		return err
	}
	defer ctx.Store.Close()

	goals := t.WeeklyGoals()
	if len(goals) == 0 {
		fmt.Println("No weekly goals set.")
		return nil
	}

	fmt.Println("Weekly goals:")
	for i, g := range goals {
		text := g.Goal
		if text == "" {
			text = "-"
		}
		fmt.Printf("  %d. %s %s (%s)\n", i+1, mark(g.Completed), text, g.Category)
	}
	return nil
}

type GoalAddCmd struct {
	Goal     string `arg:"" help:"Goal text."`
	Category string `short:"c" help:"Category label." default:"Personal"`
}

func (c *GoalAddCmd) Run(ctx *Context) error {
	t, err := ctx.OpenTracker()
	if err != nil {
		return err
	}
	defer ctx.Store.Close()

	g := t.AddWeeklyGoal(c.Goal, c.Category)
	fmt.Printf("Added weekly goal: %s (%s)\n", g.Goal, g.Category)
	return nil
}

type GoalSetCmd struct {
	Number int    `arg:"" help:"Goal number from 'goal list'."`
	Goal   string `arg:"" help:"New goal text."`
}

func (c *GoalSetCmd) Run(ctx *Context) error {
	t, err := ctx.OpenTracker()
	if err != nil {
		return err
	}
	defer ctx.Store.Close()

	goals := t.WeeklyGoals()
	i, err := indexArg(c.Number, len(goals), "weekly goal")
	if err != nil {
		return err
	}

	if err := t.UpdateWeeklyGoal(goals[i].ID, c.Goal); err != nil {
		return err
	}
	fmt.Printf("Updated goal %d: %s\n", c.Number, c.Goal)
	return nil
}

type GoalToggleCmd struct {
	Number int `arg:"" help:"Goal number from 'goal list'."`
}

// Run toggles completion. A completed, non-empty goal is copied to the
// archive on the next save.
func (c *GoalToggleCmd) Run(ctx *Context) error {
	t, err := ctx.OpenTracker()
	if err != nil {
		return err
	}
	defer ctx.Store.Close()

	goals := t.WeeklyGoals()
	i, err := indexArg(c.Number, len(goals), "weekly goal")
	if err != nil {
		return err
	}

	if err := t.ToggleWeeklyGoal(goals[i].ID); err != nil {
		return err
	}
	updated := t.WeeklyGoals()[i]
	fmt.Printf("%s %s\n", mark(updated.Completed), updated.Goal)
	return nil
}

type GoalResetCmd struct{}

func (c *GoalResetCmd) Run(ctx *Context) error {
	t, err := ctx.OpenTracker()
	if err != nil {
		return err
	}
	defer ctx.Store.Close()

	t.ResetWeeklyGoals()
	fmt.Println("Weekly goals reset. Completed goals remain in the archive.")
	return nil
}
