package repository

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/kmallory/atomicday/internal/models"
	"github.com/kmallory/atomicday/internal/storage"
)

// DailyRepository loads and saves one DailyRecord per calendar date.
//
// Loads never fail visibly: a read error or malformed value degrades to the
// default record shape so the tracker stays usable even when storage is
// corrupted or unavailable. Save failures are logged and swallowed; the
// in-memory state is not rolled back.
type DailyRepository struct {
	store  storage.Provider
	logger *slog.Logger

	// afterSave runs as part of every Save. Installed by the tracker to
	// drive the archival engine. Must never panic the save path.
	afterSave func(date string, rec models.DailyRecord)
}

func NewDailyRepository(store storage.Provider, logger *slog.Logger) *DailyRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &DailyRepository{
		store:  store,
		logger: logger,
	}
}

// SetArchiveHook installs the per-save archival callback.
func (r *DailyRepository) SetArchiveHook(hook func(date string, rec models.DailyRecord)) {
	r.afterSave = hook
}

// Load returns the record for date, merging whatever is stored over the
// canonical defaults. Missing key, read error, or unparseable value all
// fall back to defaults; a partially-shaped value falls back field by field.
func (r *DailyRepository) Load(date string) models.DailyRecord {
	rec := models.NewDailyRecord(date)

	raw, err := r.store.Get(storage.DailyKey(date))
	if err != nil {
		if err != storage.ErrNotFound {
			r.logger.Warn("daily record read failed, using defaults",
				slog.String("date", date), slog.String("error", err.Error()))
		}
		return rec
	}

	mergeStored(&rec, []byte(raw), r.logger)
	rec.Date = date
	return rec
}

// Save serializes the full record under the date's key, refreshing SavedAt,
// then fires the archival hook. Storage failures are logged, never returned.
func (r *DailyRepository) Save(date string, rec models.DailyRecord) models.DailyRecord {
	rec.Date = date
	rec.SavedAt = time.Now().UTC().Format(time.RFC3339)
	normalize(&rec)

	data, err := json.Marshal(rec)
	if err != nil {
		r.logger.Error("daily record serialize failed",
			slog.String("date", date), slog.String("error", err.Error()))
		return rec
	}

	if err := r.store.Set(storage.DailyKey(date), string(data)); err != nil {
		r.logger.Error("daily record write failed",
			slog.String("date", date), slog.String("error", err.Error()))
	}

	if r.afterSave != nil {
		r.afterSave(date, rec)
	}

	return rec
}

// ChangeDate persists the current record under oldDate, then loads newDate.
// The ordering is a correctness requirement: the store has no transactional
// guarantee, and switching without the flush loses same-session edits.
func (r *DailyRepository) ChangeDate(oldDate, newDate string, current models.DailyRecord) models.DailyRecord {
	r.Save(oldDate, current)
	return r.Load(newDate)
}

// mergeStored overlays the stored JSON onto rec. The value is decoded one
// field at a time so a single malformed field falls back to its default
// without discarding the rest of the record.
func mergeStored(rec *models.DailyRecord, raw []byte, logger *slog.Logger) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		logger.Warn("daily record is not valid JSON, using defaults",
			slog.String("date", rec.Date), slog.String("error", err.Error()))
		return
	}

	decode := func(name string, dst interface{}) bool {
		v, ok := fields[name]
		if !ok || string(v) == "null" {
			return false
		}
		if err := json.Unmarshal(v, dst); err != nil {
			logger.Warn("daily record field malformed, using default",
				slog.String("date", rec.Date), slog.String("field", name),
				slog.String("error", err.Error()))
			return false
		}
		return true
	}

	var routine models.MorningRoutine
	if decode("morningRoutine", &routine) {
		rec.MorningRoutine = routine
	}

	var gratitude []string
	if decode("gratitude", &gratitude) {
		rec.Gratitude = gratitude
	}

	var habits []models.Habit
	if decode("habits", &habits) {
		rec.Habits = habits
	}

	var tasks []models.Task
	if decode("tasks", &tasks) {
		rec.Tasks = tasks
	}

	var blocks []models.TimeBlock
	if decode("timeBlocks", &blocks) {
		rec.TimeBlocks = blocks
	}

	var five []string
	if decode("dailyFive", &five) {
		rec.DailyFive = five
	}

	var stacks []models.HabitStack
	if decode("habitStacks", &stacks) {
		rec.HabitStacks = stacks
	}

	var savedAt string
	if decode("savedAt", &savedAt) {
		rec.SavedAt = savedAt
	}

	var closed bool
	if decode("closed", &closed) {
		rec.Closed = closed
	}

	normalize(rec)
}

// normalize pins the fixed-length fields and replaces nil slices so no
// null ever reaches a caller.
func normalize(rec *models.DailyRecord) {
	rec.Gratitude = padStrings(rec.Gratitude, 3)
	rec.DailyFive = padStrings(rec.DailyFive, 5)
	if rec.Habits == nil {
		rec.Habits = []models.Habit{}
	}
	if rec.Tasks == nil {
		rec.Tasks = []models.Task{}
	}
	if rec.TimeBlocks == nil {
		rec.TimeBlocks = []models.TimeBlock{}
	}
	if rec.HabitStacks == nil {
		rec.HabitStacks = []models.HabitStack{}
	}
}

func padStrings(s []string, n int) []string {
	if len(s) == n {
		return s
	}
	out := make([]string, n)
	copy(out, s)
	return out
}
