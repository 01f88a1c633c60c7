package cli

import "fmt"

type FiveShowCmd struct{}

func (c *FiveShowCmd) Run(ctx *Context) error {
	t, err := ctx.OpenTracker()
	if err != nil {
		return err
	}
	defer ctx.Store.Close()

	fmt.Printf("Daily five for %s:\n", ctx.Date)
	for i, f := range t.Record().DailyFive {
		if f == "" {
			f = "-"
		}
		fmt.Printf("  %d. %s\n", i+1, f)
	}
	return nil
}

type FiveSetCmd struct {
	Number int    `arg:"" help:"Entry number (1-5)."`
	Text   string `arg:"" help:"Priority text."`
}

func (c *FiveSetCmd) Run(ctx *Context) error {
	t, err := ctx.OpenTracker()
	if err != nil {
		return err
	}
	defer ctx.Store.Close()

	if err := t.SetDailyFive(c.Number-1, c.Text); err != nil {
		return err
	}
	fmt.Printf("Saved daily five entry %d.\n", c.Number)
	return nil
}
