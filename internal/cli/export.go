package cli

import (
	"fmt"
	"os"

	"github.com/kmallory/atomicday/internal/ics"
	"github.com/kmallory/atomicday/internal/tracker"
)

type ExportCmd struct {
	Output string `short:"o" help:"Output file. Defaults to atomic-schedule-<date>.ics in the current directory."`
}

// Run writes the working date's schedule as an iCalendar file.
func (c *ExportCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	t := tracker.New(ctx.Store, ctx.Logger)
	t.Open(ctx.Date)

	builder := ics.New()
	calendar, err := builder.Calendar(ctx.Date, t.Record())
	if err != nil {
		return err
	}

	output := c.Output
	if output == "" {
		output = ics.Filename(ctx.Date)
	}

	if err := os.WriteFile(output, []byte(calendar), 0644); err != nil {
		return fmt.Errorf("failed to write calendar file: %w", err)
	}

	fmt.Printf("Schedule exported: %s\n", output)
	fmt.Println("Import it into Google Calendar, Outlook, Apple Calendar, or any calendar app.")
	return nil
}
