package archive

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/kmallory/atomicday/internal/models"
	"github.com/kmallory/atomicday/internal/storage"
)

// taskScanLimit caps the backward walk over task-archive keys. The walk
// normally stops at the month-based cutoff; the limit only guards against
// a pathological months argument.
const taskScanLimit = 366

// Query answers archive history questions for reporting views. Read-only:
// it never mutates the store, and missing keys come back as empty
// collections rather than errors.
type Query struct {
	store  storage.Provider
	logger *slog.Logger
	now    func() time.Time
}

func NewQuery(store storage.Provider, logger *slog.Logger) *Query {
	if logger == nil {
		logger = slog.Default()
	}
	return &Query{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// SetClock overrides the query clock. Tests only.
func (q *Query) SetClock(now func() time.Time) {
	q.now = now
}

// ArchiveData returns all archived weekly goals, gratitudes, and task days
// within the last months calendar months. The task scan walks backward
// from today until the date falls before the cutoff, so month-length
// differences cannot hide in-window entries.
func (q *Query) ArchiveData(months int) models.ArchiveData {
	if months <= 0 {
		months = RetentionMonths
	}
	today := q.now()
	cutoff := CutoffDate(today, months)

	data := models.ArchiveData{
		WeeklyGoals: []models.ArchivedWeeklyGoal{},
		Gratitudes:  []models.ArchivedGratitude{},
		Tasks:       []models.ArchivedTaskDay{},
		CutoffDate:  cutoff,
	}

	var goalLog []models.ArchivedWeeklyGoal
	if q.readList(storage.KeyWeeklyGoalArchive, &goalLog) {
		for _, g := range goalLog {
			if g.CompletedDate >= cutoff {
				data.WeeklyGoals = append(data.WeeklyGoals, g)
			}
		}
	}

	var gratitudeLog []models.ArchivedGratitude
	if q.readList(storage.KeyGratitudeArchive, &gratitudeLog) {
		for _, g := range gratitudeLog {
			if g.Date >= cutoff {
				data.Gratitudes = append(data.Gratitudes, g)
			}
		}
	}

	for i := 0; i < taskScanLimit; i++ {
		date := today.AddDate(0, 0, -i).Format(models.DateLayout)
		if date < cutoff {
			break
		}

		raw, err := q.store.Get(storage.TaskArchiveKey(date))
		if err != nil {
			if err != storage.ErrNotFound {
				q.logger.Warn("task archive read failed",
					slog.String("date", date), slog.String("error", err.Error()))
			}
			continue
		}

		var day models.ArchivedTaskDay
		if err := json.Unmarshal([]byte(raw), &day); err != nil {
			q.logger.Warn("task archive malformed",
				slog.String("date", date), slog.String("error", err.Error()))
			continue
		}
		data.Tasks = append(data.Tasks, day)
	}

	return data
}

func (q *Query) readList(key string, dst interface{}) bool {
	raw, err := q.store.Get(key)
	if err != nil {
		if err != storage.ErrNotFound {
			q.logger.Warn("archive read failed", slog.String("key", key), slog.String("error", err.Error()))
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		q.logger.Warn("archive value malformed", slog.String("key", key), slog.String("error", err.Error()))
		return false
	}
	return true
}
