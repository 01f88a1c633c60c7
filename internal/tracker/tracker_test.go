package tracker

import (
	"testing"
	"time"

	"github.com/kmallory/atomicday/internal/models"
	"github.com/kmallory/atomicday/internal/storage"
)

func newTestTracker(t *testing.T, date string) (*Tracker, storage.Provider) {
	t.Helper()
	store := storage.NewInMemoryStore()
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	tr := New(store, nil)
	tr.Archiver().SetClock(func() time.Time {
		d, _ := time.Parse(models.DateLayout, date)
		return d
	})
	tr.Open(date)
	return tr, store
}

func TestToggleHabitAdjustsStreak(t *testing.T) {
	tr, _ := newTestTracker(t, "2026-08-27")
	id := tr.Record().Habits[0].ID

	if _, err := tr.ToggleHabit(id); err != nil {
		t.Fatalf("ToggleHabit failed: %v", err)
	}
	if h := tr.Record().Habits[0]; !h.Completed || h.Streak != 1 {
		t.Errorf("after complete: %+v", h)
	}

	if _, err := tr.ToggleHabit(id); err != nil {
		t.Fatalf("ToggleHabit failed: %v", err)
	}
	if h := tr.Record().Habits[0]; h.Completed || h.Streak != 0 {
		t.Errorf("after un-complete: %+v", h)
	}

	// Streak never goes negative
	if _, err := tr.ToggleHabit(id); err != nil {
		t.Fatalf("ToggleHabit failed: %v", err)
	}
	if _, err := tr.ToggleHabit(id); err != nil {
		t.Fatalf("ToggleHabit failed: %v", err)
	}
	if _, err := tr.ToggleHabit(id); err != nil {
		t.Fatalf("ToggleHabit failed: %v", err)
	}
	if h := tr.Record().Habits[0]; h.Streak != 1 {
		t.Errorf("streak = %d after complete/un/complete, want 1", h.Streak)
	}
}

func TestToggleHabitUnknownID(t *testing.T) {
	tr, _ := newTestTracker(t, "2026-08-27")
	if _, err := tr.ToggleHabit("no-such-habit"); err == nil {
		t.Error("expected error for unknown habit ID")
	}
}

func TestMutationsAutoSave(t *testing.T) {
	tr, store := newTestTracker(t, "2026-08-27")
	tr.AddTask("write tests", "high")

	// A second session over the same store sees the change
	tr2 := New(store, nil)
	tr2.Open("2026-08-27")
	tasks := tr2.Record().Tasks
	if len(tasks) != 1 || tasks[0].Text != "write tests" {
		t.Errorf("task not persisted across sessions: %+v", tasks)
	}
}

func TestPerfectToggleCelebratesOnce(t *testing.T) {
	tr, _ := newTestTracker(t, "2026-08-27")

	for _, h := range tr.Record().Habits {
		if _, err := tr.ToggleHabit(h.ID); err != nil {
			t.Fatalf("ToggleHabit failed: %v", err)
		}
	}
	for _, slot := range []string{"move", "reflect"} {
		if _, err := tr.ToggleRoutine(slot); err != nil {
			t.Fatalf("ToggleRoutine failed: %v", err)
		}
	}

	perfect, err := tr.ToggleRoutine("grow")
	if err != nil {
		t.Fatalf("ToggleRoutine failed: %v", err)
	}
	if !perfect {
		t.Error("final toggle should celebrate the perfect day")
	}
}

func TestGoToClosesStats(t *testing.T) {
	tr, _ := newTestTracker(t, "2026-08-26")

	for _, h := range tr.Record().Habits {
		tr.ToggleHabit(h.ID)
	}
	tr.ToggleRoutine("move")
	tr.ToggleRoutine("reflect")
	tr.ToggleRoutine("grow")

	tr.GoTo("2026-08-27")

	s := tr.Stats()
	if s.CurrentStreak != 1 || s.PerfectDays != 1 || s.TotalDays != 1 {
		t.Errorf("stats after closing a perfect day: %+v", s)
	}
	if s.LastClosedDate != "2026-08-26" {
		t.Errorf("LastClosedDate = %q", s.LastClosedDate)
	}
	if tr.Date() != "2026-08-27" {
		t.Errorf("Date = %q", tr.Date())
	}
}

func TestGoToRevisitDoesNotRecount(t *testing.T) {
	tr, _ := newTestTracker(t, "2026-08-26")

	for _, h := range tr.Record().Habits {
		tr.ToggleHabit(h.ID)
	}
	tr.ToggleRoutine("move")
	tr.ToggleRoutine("reflect")
	tr.ToggleRoutine("grow")

	// Go back to fix yesterday, then forward again: the revisited date
	// must not be counted a second time.
	tr.GoTo("2026-08-27")
	tr.GoTo("2026-08-26")

	if !tr.Record().Closed {
		t.Error("revisited record lost its closed flag")
	}

	tr.GoTo("2026-08-27")

	s := tr.Stats()
	if s.TotalDays != 2 {
		t.Errorf("TotalDays = %d after visiting 2 distinct dates, want 2", s.TotalDays)
	}
	if s.PerfectDays != 1 {
		t.Errorf("PerfectDays = %d for one perfect date, want 1", s.PerfectDays)
	}
	if s.LastClosedDate != "2026-08-27" {
		t.Errorf("LastClosedDate = %q", s.LastClosedDate)
	}
}

func TestGoToSameDateIsNoOp(t *testing.T) {
	tr, _ := newTestTracker(t, "2026-08-27")
	tr.GoTo("2026-08-27")
	if s := tr.Stats(); s.TotalDays != 0 {
		t.Errorf("GoTo to the active date closed it: %+v", s)
	}
}

func TestGoToPreservesOutgoingEdits(t *testing.T) {
	tr, store := newTestTracker(t, "2026-08-26")
	tr.SetGratitude(0, "sunrise")
	tr.GoTo("2026-08-27")

	tr2 := New(store, nil)
	tr2.Open("2026-08-26")
	if got := tr2.Record().Gratitude[0]; got != "sunrise" {
		t.Errorf("outgoing day's edit lost: %q", got)
	}
}

func TestSaveArchivesCompletedGoals(t *testing.T) {
	tr, store := newTestTracker(t, "2026-08-27")

	g := tr.AddWeeklyGoal("ship the release", "Career")
	if err := tr.ToggleWeeklyGoal(g.ID); err != nil {
		t.Fatalf("ToggleWeeklyGoal failed: %v", err)
	}

	if _, err := store.Get(storage.KeyWeeklyGoalArchive); err != nil {
		t.Errorf("completed goal not archived on save: %v", err)
	}
}

func TestWeeklyGoalReset(t *testing.T) {
	tr, _ := newTestTracker(t, "2026-08-27")

	g := tr.AddWeeklyGoal("temp goal", "Health")
	tr.ToggleWeeklyGoal(g.ID)
	tr.ResetWeeklyGoals()

	goals := tr.WeeklyGoals()
	if len(goals) != 3 {
		t.Fatalf("reset left %d goals, want 3 empty slots", len(goals))
	}
	for _, g := range goals {
		if g.Goal != "" || g.Completed {
			t.Errorf("reset slot not empty: %+v", g)
		}
	}
}

func TestIdentityUpdate(t *testing.T) {
	tr, store := newTestTracker(t, "2026-08-27")
	tr.SetIdentity("I am someone who finishes")

	tr2 := New(store, nil)
	tr2.Open("2026-08-27")
	id := tr2.Identity()
	if id.Statement != "I am someone who finishes" || !id.Updated {
		t.Errorf("identity not persisted: %+v", id)
	}
}

func TestRoutineUnknownSlot(t *testing.T) {
	tr, _ := newTestTracker(t, "2026-08-27")
	if _, err := tr.ToggleRoutine("sleep"); err == nil {
		t.Error("expected error for unknown routine slot")
	}
}

func TestSetGratitudeOutOfRange(t *testing.T) {
	tr, _ := newTestTracker(t, "2026-08-27")
	if err := tr.SetGratitude(3, "too far"); err == nil {
		t.Error("expected error for index 3")
	}
	if err := tr.SetDailyFive(5, "too far"); err == nil {
		t.Error("expected error for index 5")
	}
}
