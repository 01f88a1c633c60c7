// Package archive copies completed and non-empty entries out of the live
// daily state into long-lived history logs, and prunes those logs on a
// rolling three-calendar-month retention window.
//
// Everything here runs as a side effect of the save path, so no failure is
// ever allowed to propagate to the caller: errors are logged and dropped.
package archive

import (
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/kmallory/atomicday/internal/models"
	"github.com/kmallory/atomicday/internal/storage"
)

// RetentionMonths is the rolling retention window for archived entries.
const RetentionMonths = 3

// purgeScanDays bounds the backward key scan during purge. Anything older
// is assumed already removed by a previous run.
const purgeScanDays = 365

type Archiver struct {
	store  storage.Provider
	logger *slog.Logger
	now    func() time.Time
}

func New(store storage.Provider, logger *slog.Logger) *Archiver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Archiver{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// SetClock overrides the archiver's clock. Tests only.
func (a *Archiver) SetClock(now func() time.Time) {
	a.now = now
}

// Maintain archives the given day's completable entries, then runs the
// daily purge if it has not already run today. Called from the save hook.
func (a *Archiver) Maintain(date string, goals []models.WeeklyGoal, gratitude []string, tasks []models.Task) {
	a.Archive(date, goals, gratitude, tasks)

	today := a.now().Format(models.DateLayout)
	lastPurge, err := a.store.Get(storage.KeyLastPurge)
	if err == nil && lastPurge == today {
		return
	}

	a.Purge(a.now())
	if err := a.store.Set(storage.KeyLastPurge, today); err != nil {
		a.logger.Warn("purge marker write failed", slog.String("error", err.Error()))
	}
}

// Archive appends completed weekly goals and non-empty gratitudes to their
// category logs, and snapshots the day's populated tasks under the date's
// task-archive key (overwriting any earlier snapshot for that date).
//
// Re-archiving a goal that is already in the log duplicates it; goals carry
// no uniqueness key beyond their ephemeral ID, so no de-duplication is
// attempted.
func (a *Archiver) Archive(date string, goals []models.WeeklyGoal, gratitude []string, tasks []models.Task) {
	timestamp := a.now().UTC().Format(time.RFC3339)

	a.archiveGoals(date, timestamp, goals)
	a.archiveTasks(date, timestamp, tasks)
	a.archiveGratitudes(date, timestamp, gratitude)
}

func (a *Archiver) archiveGoals(date, timestamp string, goals []models.WeeklyGoal) {
	var completed []models.WeeklyGoal
	for _, g := range goals {
		if g.Completed && g.Goal != "" {
			completed = append(completed, g)
		}
	}
	if len(completed) == 0 {
		return
	}

	var log []models.ArchivedWeeklyGoal
	if !a.readList(storage.KeyWeeklyGoalArchive, &log) {
		return
	}

	for _, g := range completed {
		log = append(log, models.ArchivedWeeklyGoal{
			WeeklyGoal:    g,
			CompletedDate: date,
			ArchivedAt:    timestamp,
		})
	}

	a.writeList(storage.KeyWeeklyGoalArchive, log)
}

func (a *Archiver) archiveTasks(date, timestamp string, tasks []models.Task) {
	var populated []models.Task
	for _, t := range tasks {
		if t.Text != "" {
			populated = append(populated, t)
		}
	}
	if len(populated) == 0 {
		return
	}

	snapshot := models.ArchivedTaskDay{
		Date:       date,
		Tasks:      populated,
		ArchivedAt: timestamp,
	}
	a.writeList(storage.TaskArchiveKey(date), snapshot)
}

func (a *Archiver) archiveGratitudes(date, timestamp string, gratitude []string) {
	var valid []string
	for _, g := range gratitude {
		if strings.TrimSpace(g) != "" {
			valid = append(valid, g)
		}
	}
	if len(valid) == 0 {
		return
	}

	var log []models.ArchivedGratitude
	if !a.readList(storage.KeyGratitudeArchive, &log) {
		return
	}

	for _, g := range valid {
		log = append(log, models.ArchivedGratitude{
			Text:       g,
			Date:       date,
			ArchivedAt: timestamp,
		})
	}

	a.writeList(storage.KeyGratitudeArchive, log)
}

// Purge rewrites both archive logs keeping only entries on or after the
// rolling cutoff, and deletes task-archive keys older than the cutoff by
// scanning backward day by day. The scan is bounded: a run older than
// purgeScanDays is assumed to have cleaned everything before it.
func (a *Archiver) Purge(today time.Time) {
	cutoff := CutoffDate(today, RetentionMonths)

	var goalLog []models.ArchivedWeeklyGoal
	if a.readStoredList(storage.KeyWeeklyGoalArchive, &goalLog) {
		kept := goalLog[:0]
		for _, g := range goalLog {
			if g.CompletedDate >= cutoff {
				kept = append(kept, g)
			}
		}
		a.writeList(storage.KeyWeeklyGoalArchive, kept)
	}

	var gratitudeLog []models.ArchivedGratitude
	if a.readStoredList(storage.KeyGratitudeArchive, &gratitudeLog) {
		kept := gratitudeLog[:0]
		for _, g := range gratitudeLog {
			if g.Date >= cutoff {
				kept = append(kept, g)
			}
		}
		a.writeList(storage.KeyGratitudeArchive, kept)
	}

	for i := 0; i < purgeScanDays; i++ {
		date := today.AddDate(0, 0, -i).Format(models.DateLayout)
		if date >= cutoff {
			continue
		}
		if err := a.store.Delete(storage.TaskArchiveKey(date)); err != nil {
			a.logger.Warn("task archive delete failed",
				slog.String("date", date), slog.String("error", err.Error()))
		}
	}
}

// CutoffDate returns the rolling retention boundary: today minus the given
// number of calendar months, as a date string.
func CutoffDate(today time.Time, months int) string {
	return today.AddDate(0, -months, 0).Format(models.DateLayout)
}

// readList loads an archive log, treating a missing key as an empty log.
// It returns false on a read or decode failure so the caller skips the
// write instead of clobbering whatever is stored.
func (a *Archiver) readList(key string, dst interface{}) bool {
	raw, err := a.store.Get(key)
	if err == storage.ErrNotFound {
		return true
	}
	if err != nil {
		a.logger.Warn("archive read failed", slog.String("key", key), slog.String("error", err.Error()))
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		a.logger.Warn("archive value malformed", slog.String("key", key), slog.String("error", err.Error()))
		return false
	}
	return true
}

// readStoredList is readList but reports false for a missing key, so purge
// does not write empty logs for keys that were never created.
func (a *Archiver) readStoredList(key string, dst interface{}) bool {
	raw, err := a.store.Get(key)
	if err != nil {
		if err != storage.ErrNotFound {
			a.logger.Warn("archive read failed", slog.String("key", key), slog.String("error", err.Error()))
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		a.logger.Warn("archive value malformed", slog.String("key", key), slog.String("error", err.Error()))
		return false
	}
	return true
}

func (a *Archiver) writeList(key string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		a.logger.Error("archive serialize failed", slog.String("key", key), slog.String("error", err.Error()))
		return
	}
	if err := a.store.Set(key, string(data)); err != nil {
		a.logger.Error("archive write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}
