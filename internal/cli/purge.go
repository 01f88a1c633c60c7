package cli

import (
	"fmt"
	"time"

	"github.com/kmallory/atomicday/internal/archive"
)

type PurgeCmd struct{}

// Run archives the working date's entries and prunes everything older than
// the retention window, ignoring the once-per-day throttle.
func (c *PurgeCmd) Run(ctx *Context) error {
	t, err := ctx.OpenTracker()
	if err != nil {
		return err
	}
	defer ctx.Store.Close()

	rec := t.Record()
	a := t.Archiver()
	a.Archive(ctx.Date, t.WeeklyGoals(), rec.Gratitude, rec.Tasks)
	a.Purge(time.Now())

	cutoff := archive.CutoffDate(time.Now(), archive.RetentionMonths)
	fmt.Printf("Archive purged. Entries before %s removed.\n", cutoff)
	return nil
}
