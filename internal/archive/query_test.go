package archive

import (
	"encoding/json"
	"testing"

	"github.com/kmallory/atomicday/internal/models"
	"github.com/kmallory/atomicday/internal/storage"
)

func seedArchive(t *testing.T, store storage.Provider) {
	t.Helper()

	goals := []models.ArchivedWeeklyGoal{
		{WeeklyGoal: models.WeeklyGoal{Goal: "too old"}, CompletedDate: "2026-04-01"},
		{WeeklyGoal: models.WeeklyGoal{Goal: "recent"}, CompletedDate: "2026-08-01"},
	}
	gratitudes := []models.ArchivedGratitude{
		{Text: "too old", Date: "2026-02-01"},
		{Text: "recent", Date: "2026-07-15"},
	}

	goalData, _ := json.Marshal(goals)
	gratitudeData, _ := json.Marshal(gratitudes)
	store.Set(storage.KeyWeeklyGoalArchive, string(goalData))
	store.Set(storage.KeyGratitudeArchive, string(gratitudeData))

	for _, date := range []string{"2026-04-01", "2026-06-15", "2026-08-20"} {
		day := models.ArchivedTaskDay{Date: date, Tasks: []models.Task{{ID: "t", Text: "x"}}}
		data, _ := json.Marshal(day)
		store.Set(storage.TaskArchiveKey(date), string(data))
	}
}

func TestArchiveDataFiltersByWindow(t *testing.T) {
	store := newTestStore(t)
	seedArchive(t, store)

	q := NewQuery(store, nil)
	q.SetClock(fixedClock("2026-08-27"))

	data := q.ArchiveData(3)

	if data.CutoffDate != "2026-05-27" {
		t.Errorf("CutoffDate = %s", data.CutoffDate)
	}
	if len(data.WeeklyGoals) != 1 || data.WeeklyGoals[0].Goal != "recent" {
		t.Errorf("WeeklyGoals = %+v", data.WeeklyGoals)
	}
	if len(data.Gratitudes) != 1 || data.Gratitudes[0].Text != "recent" {
		t.Errorf("Gratitudes = %+v", data.Gratitudes)
	}
	if len(data.Tasks) != 2 {
		t.Fatalf("Tasks = %d days, want 2", len(data.Tasks))
	}
	// Backward scan yields newest first
	if data.Tasks[0].Date != "2026-08-20" || data.Tasks[1].Date != "2026-06-15" {
		t.Errorf("task days = %s, %s", data.Tasks[0].Date, data.Tasks[1].Date)
	}
}

func TestArchiveDataWiderWindowReachesOlderEntries(t *testing.T) {
	store := newTestStore(t)
	seedArchive(t, store)

	q := NewQuery(store, nil)
	q.SetClock(fixedClock("2026-08-27"))

	data := q.ArchiveData(5)
	if len(data.Tasks) != 3 {
		t.Errorf("5-month window found %d task days, want 3", len(data.Tasks))
	}
	if len(data.WeeklyGoals) != 2 {
		t.Errorf("5-month window found %d goals, want 2", len(data.WeeklyGoals))
	}
}

func TestArchiveDataDefaultsMonths(t *testing.T) {
	store := newTestStore(t)
	q := NewQuery(store, nil)
	q.SetClock(fixedClock("2026-08-27"))

	data := q.ArchiveData(0)
	if data.CutoffDate != "2026-05-27" {
		t.Errorf("months<=0 did not default to retention window: %s", data.CutoffDate)
	}

	// An empty store yields empty, non-nil collections
	if data.WeeklyGoals == nil || data.Gratitudes == nil || data.Tasks == nil {
		t.Error("empty archive returned nil collections")
	}
}
