package archive

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/kmallory/atomicday/internal/models"
	"github.com/kmallory/atomicday/internal/storage"
)

func newTestStore(t *testing.T) storage.Provider {
	t.Helper()
	store := storage.NewInMemoryStore()
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func fixedClock(date string) func() time.Time {
	return func() time.Time {
		d, _ := time.Parse(models.DateLayout, date)
		return d
	}
}

func readGoalLog(t *testing.T, store storage.Provider) []models.ArchivedWeeklyGoal {
	t.Helper()
	raw, err := store.Get(storage.KeyWeeklyGoalArchive)
	if err == storage.ErrNotFound {
		return nil
	}
	if err != nil {
		t.Fatalf("goal log read failed: %v", err)
	}
	var log []models.ArchivedWeeklyGoal
	if err := json.Unmarshal([]byte(raw), &log); err != nil {
		t.Fatalf("goal log malformed: %v", err)
	}
	return log
}

func readGratitudeLog(t *testing.T, store storage.Provider) []models.ArchivedGratitude {
	t.Helper()
	raw, err := store.Get(storage.KeyGratitudeArchive)
	if err == storage.ErrNotFound {
		return nil
	}
	if err != nil {
		t.Fatalf("gratitude log read failed: %v", err)
	}
	var log []models.ArchivedGratitude
	if err := json.Unmarshal([]byte(raw), &log); err != nil {
		t.Fatalf("gratitude log malformed: %v", err)
	}
	return log
}

func TestArchiveFiltersGoals(t *testing.T) {
	store := newTestStore(t)
	a := New(store, nil)
	a.SetClock(fixedClock("2026-08-27"))

	goals := []models.WeeklyGoal{
		{ID: "g1", Goal: "run 20km", Completed: true},
		{ID: "g2", Goal: "read book", Completed: false},
		{ID: "g3", Goal: "", Completed: true}, // empty slot, never archived
	}

	a.Archive("2026-08-27", goals, nil, nil)

	log := readGoalLog(t, store)
	if len(log) != 1 {
		t.Fatalf("goal log has %d entries, want 1", len(log))
	}
	if log[0].Goal != "run 20km" || log[0].CompletedDate != "2026-08-27" {
		t.Errorf("archived goal = %+v", log[0])
	}
	if log[0].ArchivedAt == "" {
		t.Error("ArchivedAt not stamped")
	}
}

func TestArchiveFiltersGratitude(t *testing.T) {
	store := newTestStore(t)
	a := New(store, nil)
	a.SetClock(fixedClock("2026-08-27"))

	a.Archive("2026-08-27", nil, []string{"family", "   ", ""}, nil)

	log := readGratitudeLog(t, store)
	if len(log) != 1 {
		t.Fatalf("gratitude log has %d entries, want 1", len(log))
	}
	if log[0].Text != "family" || log[0].Date != "2026-08-27" {
		t.Errorf("archived gratitude = %+v", log[0])
	}
}

func TestArchiveTasksSnapshotOverwrites(t *testing.T) {
	store := newTestStore(t)
	a := New(store, nil)
	a.SetClock(fixedClock("2026-08-27"))

	a.Archive("2026-08-27", nil, nil, []models.Task{
		{ID: "t1", Text: "draft report"},
		{ID: "t2", Text: ""}, // empty tasks never archived
	})
	a.Archive("2026-08-27", nil, nil, []models.Task{
		{ID: "t1", Text: "draft report", Completed: true},
	})

	raw, err := store.Get(storage.TaskArchiveKey("2026-08-27"))
	if err != nil {
		t.Fatalf("task snapshot read failed: %v", err)
	}
	var day models.ArchivedTaskDay
	if err := json.Unmarshal([]byte(raw), &day); err != nil {
		t.Fatalf("task snapshot malformed: %v", err)
	}
	if len(day.Tasks) != 1 {
		t.Fatalf("snapshot has %d tasks, want 1", len(day.Tasks))
	}
	if !day.Tasks[0].Completed {
		t.Error("second archive did not overwrite the snapshot")
	}
}

func TestArchiveAbortsOnMalformedLog(t *testing.T) {
	store := newTestStore(t)
	a := New(store, nil)
	a.SetClock(fixedClock("2026-08-27"))

	if err := store.Set(storage.KeyGratitudeArchive, "corrupted"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	a.Archive("2026-08-27", nil, []string{"family"}, nil)

	// The malformed log is left untouched rather than clobbered
	raw, err := store.Get(storage.KeyGratitudeArchive)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if raw != "corrupted" {
		t.Errorf("malformed log was overwritten: %q", raw)
	}
}

func TestPurgeDropsEntriesBeforeCutoff(t *testing.T) {
	store := newTestStore(t)
	a := New(store, nil)

	goals := []models.ArchivedWeeklyGoal{
		{WeeklyGoal: models.WeeklyGoal{Goal: "old"}, CompletedDate: "2026-05-26"},
		{WeeklyGoal: models.WeeklyGoal{Goal: "boundary"}, CompletedDate: "2026-05-27"},
		{WeeklyGoal: models.WeeklyGoal{Goal: "recent"}, CompletedDate: "2026-08-01"},
	}
	data, _ := json.Marshal(goals)
	if err := store.Set(storage.KeyWeeklyGoalArchive, string(data)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	today, _ := time.Parse(models.DateLayout, "2026-08-27")
	a.Purge(today)

	log := readGoalLog(t, store)
	if len(log) != 2 {
		t.Fatalf("kept %d goals, want 2 (cutoff is inclusive)", len(log))
	}
	if log[0].Goal != "boundary" || log[1].Goal != "recent" {
		t.Errorf("wrong goals kept: %+v", log)
	}
}

func TestPurgeDeletesOldTaskSnapshots(t *testing.T) {
	store := newTestStore(t)
	a := New(store, nil)

	old := `{"date":"2026-05-20","tasks":[]}`
	recent := `{"date":"2026-08-01","tasks":[]}`
	store.Set(storage.TaskArchiveKey("2026-05-20"), old)
	store.Set(storage.TaskArchiveKey("2026-08-01"), recent)

	today, _ := time.Parse(models.DateLayout, "2026-08-27")
	a.Purge(today)

	if _, err := store.Get(storage.TaskArchiveKey("2026-05-20")); err != storage.ErrNotFound {
		t.Errorf("old task snapshot survived purge: %v", err)
	}
	if _, err := store.Get(storage.TaskArchiveKey("2026-08-01")); err != nil {
		t.Errorf("in-window task snapshot deleted: %v", err)
	}
}

func TestPurgeSkipsLogsThatWereNeverCreated(t *testing.T) {
	store := newTestStore(t)
	a := New(store, nil)

	today, _ := time.Parse(models.DateLayout, "2026-08-27")
	a.Purge(today)

	if _, err := store.Get(storage.KeyWeeklyGoalArchive); err != storage.ErrNotFound {
		t.Errorf("purge created an empty goal log: %v", err)
	}
}

func TestMaintainPurgesOncePerDay(t *testing.T) {
	store := newTestStore(t)
	a := New(store, nil)
	a.SetClock(fixedClock("2026-08-27"))

	a.Maintain("2026-08-27", nil, nil, nil)

	marker, err := store.Get(storage.KeyLastPurge)
	if err != nil || marker != "2026-08-27" {
		t.Fatalf("purge marker = %q, %v", marker, err)
	}

	// Plant an out-of-window entry after the first purge; the same-day
	// Maintain must not purge again.
	stale := []models.ArchivedGratitude{{Text: "stale", Date: "2026-01-01"}}
	data, _ := json.Marshal(stale)
	store.Set(storage.KeyGratitudeArchive, string(data))

	a.Maintain("2026-08-27", nil, nil, nil)
	if log := readGratitudeLog(t, store); len(log) != 1 {
		t.Fatalf("same-day Maintain purged: %d entries", len(log))
	}

	// The next day's Maintain purges it
	a.SetClock(fixedClock("2026-08-28"))
	a.Maintain("2026-08-28", nil, nil, nil)
	if log := readGratitudeLog(t, store); len(log) != 0 {
		t.Errorf("next-day Maintain did not purge: %+v", log)
	}
}

func TestCutoffDateUsesCalendarMonths(t *testing.T) {
	cases := []struct {
		today  string
		months int
		want   string
	}{
		{"2026-08-27", 3, "2026-05-27"},
		{"2026-01-15", 3, "2025-10-15"},
		{"2026-03-31", 1, "2026-03-03"}, // Feb has 28 days; AddDate normalizes
	}
	for _, c := range cases {
		today, _ := time.Parse(models.DateLayout, c.today)
		if got := CutoffDate(today, c.months); got != c.want {
			t.Errorf("CutoffDate(%s, %d) = %s, want %s", c.today, c.months, got, c.want)
		}
	}
}
