package cli

import "fmt"

type TaskListCmd struct{}

func (c *TaskListCmd) Run(ctx *Context) error {
	t, err := ctx.OpenTracker()
	if err != nil {
		return err
	}
	defer ctx.Store.Close()

	tasks := t.Record().Tasks
	if len(tasks) == 0 {
		fmt.Println("No tasks for today.")
		return nil
	}

	fmt.Printf("Tasks for %s:\n", ctx.Date)
	for i, task := range tasks {
		fmt.Printf("  %d. %s %s [%s]\n", i+1, mark(task.Completed), task.Text, task.Priority)
	}
	return nil
}

type TaskAddCmd struct {
	Text     string `arg:"" help:"Task description."`
	Priority string `short:"p" help:"Priority (high|medium|low)." default:"medium" enum:"high,medium,low"`
}

func (c *TaskAddCmd) Run(ctx *Context) error {
	t, err := ctx.OpenTracker()
	if err != nil {
		return err
	}
	defer ctx.Store.Close()

	task := t.AddTask(c.Text, c.Priority)
	fmt.Printf("Added task: %s (ID: %s)\n", task.Text, task.ID)
	return nil
}

type TaskToggleCmd struct {
	Number int `arg:"" help:"Task number from 'task list'."`
}

func (c *TaskToggleCmd) Run(ctx *Context) error {
	t, err := ctx.OpenTracker()
	if err != nil {
		return err
	}
	defer ctx.Store.Close()

	tasks := t.Record().Tasks
	i, err := indexArg(c.Number, len(tasks), "task")
	if err != nil {
		return err
	}

	if err := t.ToggleTask(tasks[i].ID); err != nil {
		return err
	}
	updated := t.Record().Tasks[i]
	fmt.Printf("%s %s\n", mark(updated.Completed), updated.Text)
	return nil
}

type TaskRemoveCmd struct {
	Number int `arg:"" help:"Task number from 'task list'."`
}

func (c *TaskRemoveCmd) Run(ctx *Context) error {
	t, err := ctx.OpenTracker()
	if err != nil {
		return err
	}
	defer ctx.Store.Close()

	tasks := t.Record().Tasks
	i, err := indexArg(c.Number, len(tasks), "task")
	if err != nil {
		return err
	}

	text := tasks[i].Text
	if err := t.RemoveTask(tasks[i].ID); err != nil {
		return err
	}
	fmt.Printf("Removed task: %s\n", text)
	return nil
}
