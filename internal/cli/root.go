package cli

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/kmallory/atomicday/internal/models"
	"github.com/kmallory/atomicday/internal/storage"
	"github.com/kmallory/atomicday/internal/tracker"
)

type Context struct {
	Store  storage.Provider
	Logger *slog.Logger

	// Date is the resolved working date (YYYY-MM-DD).
	Date string
}

// OpenTracker loads the store and opens a session on the working date.
func (ctx *Context) OpenTracker() (*tracker.Tracker, error) {
	if err := ctx.Store.Load(); err != nil {
		return nil, err
	}
	t := tracker.New(ctx.Store, ctx.Logger)
	t.Open(ctx.Date)
	return t, nil
}

// ResolveDate turns "today" or a YYYY-MM-DD string into a validated date.
func ResolveDate(s string) (string, error) {
	if s == "" || s == "today" {
		return models.Today(), nil
	}
	if _, err := time.Parse(models.DateLayout, s); err != nil {
		return "", fmt.Errorf("invalid date format, use YYYY-MM-DD or 'today': %w", err)
	}
	return s, nil
}

// indexArg converts a 1-based list number from the command line into a
// slice index.
func indexArg(num, length int, what string) (int, error) {
	if length == 0 {
		return 0, fmt.Errorf("no %ss on this day", what)
	}
	if num < 1 || num > length {
		return 0, fmt.Errorf("no %s numbered %d (valid: 1-%d)", what, num, length)
	}
	return num - 1, nil
}

func mark(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}
