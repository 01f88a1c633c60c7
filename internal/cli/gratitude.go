package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

type GratitudeShowCmd struct{}

func (c *GratitudeShowCmd) Run(ctx *Context) error {
	t, err := ctx.OpenTracker()
	if err != nil {
		return err
	}
	defer ctx.Store.Close()

	fmt.Printf("Gratitude for %s:\n", ctx.Date)
	for i, g := range t.Record().Gratitude {
		if g == "" {
			g = "-"
		}
		fmt.Printf("  %d. %s\n", i+1, g)
	}
	return nil
}

type GratitudeSetCmd struct {
	Number int    `arg:"" help:"Entry number (1-3)."`
	Text   string `arg:"" help:"Gratitude text."`
}

func (c *GratitudeSetCmd) Run(ctx *Context) error {
	t, err := ctx.OpenTracker()
	if err != nil {
		return err
	}
	defer ctx.Store.Close()

	if err := t.SetGratitude(c.Number-1, c.Text); err != nil {
		return err
	}
	fmt.Printf("Saved gratitude entry %d.\n", c.Number)
	return nil
}

type GratitudeEditCmd struct{}

// Run edits all three entries in one interactive form.
func (c *GratitudeEditCmd) Run(ctx *Context) error {
	t, err := ctx.OpenTracker()
	if err != nil {
		return err
	}
	defer ctx.Store.Close()

	entries := t.Record().Gratitude
	values := make([]string, len(entries))
	copy(values, entries)

	var fields []huh.Field
	for i := range values {
		fields = append(fields, huh.NewInput().
			Title(fmt.Sprintf("Gratitude %d", i+1)).
			Placeholder("I am grateful for...").
			Value(&values[i]))
	}

	form := huh.NewForm(huh.NewGroup(fields...))
	if err := form.Run(); err != nil {
		return err
	}

	for i, v := range values {
		if v != entries[i] {
			if err := t.SetGratitude(i, v); err != nil {
				return err
			}
		}
	}

	fmt.Println("Gratitude saved.")
	return nil
}
