// Package tracker holds the single-writer session state the UI layers
// mutate: the active date's record plus the cross-date singletons. Every
// mutation auto-saves, mirroring the save-on-change behavior the data
// model was designed around.
package tracker

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/kmallory/atomicday/internal/archive"
	"github.com/kmallory/atomicday/internal/models"
	"github.com/kmallory/atomicday/internal/repository"
	"github.com/kmallory/atomicday/internal/stats"
	"github.com/kmallory/atomicday/internal/storage"
)

type Tracker struct {
	daily    *repository.DailyRepository
	settings *repository.SettingsRepository
	archiver *archive.Archiver
	engine   *stats.Engine
	logger   *slog.Logger

	date     string
	record   models.DailyRecord
	stats    models.Stats
	identity models.Identity
	goals    []models.WeeklyGoal
}

// New wires a tracker over the given store. The archival engine is
// installed as the repository's save hook so every record save archives
// opportunistically.
func New(store storage.Provider, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}

	t := &Tracker{
		daily:    repository.NewDailyRepository(store, logger),
		settings: repository.NewSettingsRepository(store, logger),
		archiver: archive.New(store, logger),
		engine:   stats.New(),
		logger:   logger,
	}

	t.daily.SetArchiveHook(func(date string, rec models.DailyRecord) {
		t.archiver.Maintain(date, t.goals, rec.Gratitude, rec.Tasks)
	})

	return t
}

// Archiver exposes the archival engine for clock control in tests.
func (t *Tracker) Archiver() *archive.Archiver {
	return t.archiver
}

// Open loads the record for date along with the singleton entities.
// A date that has never been saved inherits the global habit-stack list.
func (t *Tracker) Open(date string) {
	t.stats = t.settings.LoadStats()
	t.identity = t.settings.LoadIdentity()
	t.goals = t.settings.LoadWeeklyGoals()

	t.date = date
	t.record = t.daily.Load(date)
	if t.record.SavedAt == "" {
		t.record.HabitStacks = t.settings.LoadHabitStacks()
	}
}

// GoTo closes the active date's stats, persists its record, and loads the
// new date. Save-old-then-load-new ordering is required: the store has no
// transaction to recover a skipped flush.
func (t *Tracker) GoTo(date string) {
	if date == t.date {
		return
	}

	t.stats = t.engine.CloseDay(t.stats, t.date, &t.record)
	t.settings.SaveStats(t.stats)

	t.record = t.daily.ChangeDate(t.date, date, t.record)
	t.date = date
	if t.record.SavedAt == "" {
		t.record.HabitStacks = t.settings.LoadHabitStacks()
	}
}

// Save persists the full session state immediately.
func (t *Tracker) Save() {
	t.save()
}

func (t *Tracker) save() {
	t.record = t.daily.Save(t.date, t.record)
	t.settings.SaveStats(t.stats)
	t.settings.SaveWeeklyGoals(t.goals)
	t.settings.SaveIdentity(t.identity)
	t.settings.SaveHabitStacks(t.record.HabitStacks)
}

// Accessors

func (t *Tracker) Date() string                      { return t.date }
func (t *Tracker) Record() models.DailyRecord        { return t.record }
func (t *Tracker) Stats() models.Stats               { return t.stats }
func (t *Tracker) Identity() models.Identity         { return t.identity }
func (t *Tracker) WeeklyGoals() []models.WeeklyGoal { return t.goals }

// IsPerfectDay reports whether the active record currently qualifies.
func (t *Tracker) IsPerfectDay() bool {
	return stats.IsPerfectDay(t.record)
}

// Morning routine

func (t *Tracker) routineSlot(name string) (*models.RoutineSlot, error) {
	switch name {
	case "move":
		return &t.record.MorningRoutine.Move, nil
	case "reflect":
		return &t.record.MorningRoutine.Reflect, nil
	case "grow":
		return &t.record.MorningRoutine.Grow, nil
	default:
		return nil, fmt.Errorf("unknown routine slot: %s (want move, reflect, or grow)", name)
	}
}

// ToggleRoutine flips a routine slot's completion. The returned bool is
// advisory: true when the toggle just made the day perfect.
func (t *Tracker) ToggleRoutine(slot string) (bool, error) {
	s, err := t.routineSlot(slot)
	if err != nil {
		return false, err
	}
	s.Completed = !s.Completed
	t.save()
	return t.engine.OnCompletionChange(t.stats, t.record), nil
}

func (t *Tracker) SetRoutineActivity(slot, activity string) error {
	s, err := t.routineSlot(slot)
	if err != nil {
		return err
	}
	s.Activity = activity
	t.save()
	return nil
}

// Gratitude and daily five

func (t *Tracker) SetGratitude(index int, text string) error {
	if index < 0 || index >= len(t.record.Gratitude) {
		return fmt.Errorf("gratitude index out of range: %d", index)
	}
	t.record.Gratitude[index] = text
	t.save()
	return nil
}

func (t *Tracker) SetDailyFive(index int, text string) error {
	if index < 0 || index >= len(t.record.DailyFive) {
		return fmt.Errorf("daily five index out of range: %d", index)
	}
	t.record.DailyFive[index] = text
	t.save()
	return nil
}

// Habits

// ToggleHabit flips a habit's completion and adjusts its streak counter:
// +1 on completion, -1 on un-completion, floored at zero. The streak is
// deliberately a mutable counter, not derived from history.
func (t *Tracker) ToggleHabit(id string) (bool, error) {
	for i := range t.record.Habits {
		h := &t.record.Habits[i]
		if h.ID != id {
			continue
		}
		h.Completed = !h.Completed
		if h.Completed {
			h.Streak++
		} else if h.Streak > 0 {
			h.Streak--
		}
		t.save()
		return t.engine.OnCompletionChange(t.stats, t.record), nil
	}
	return false, fmt.Errorf("habit not found: %s", id)
}

func (t *Tracker) AddHabit(name, category, twoMinute string) models.Habit {
	h := models.Habit{
		ID:               uuid.NewString(),
		Name:             name,
		Category:         category,
		TwoMinuteVersion: twoMinute,
	}
	t.record.Habits = append(t.record.Habits, h)
	t.save()
	return h
}

func (t *Tracker) RemoveHabit(id string) error {
	for i, h := range t.record.Habits {
		if h.ID == id {
			t.record.Habits = append(t.record.Habits[:i], t.record.Habits[i+1:]...)
			t.save()
			return nil
		}
	}
	return fmt.Errorf("habit not found: %s", id)
}

// Tasks

func (t *Tracker) AddTask(text, priority string) models.Task {
	if priority == "" {
		priority = "medium"
	}
	task := models.Task{
		ID:       uuid.NewString(),
		Text:     text,
		Priority: priority,
	}
	t.record.Tasks = append(t.record.Tasks, task)
	t.save()
	return task
}

func (t *Tracker) ToggleTask(id string) error {
	for i := range t.record.Tasks {
		if t.record.Tasks[i].ID == id {
			t.record.Tasks[i].Completed = !t.record.Tasks[i].Completed
			t.save()
			return nil
		}
	}
	return fmt.Errorf("task not found: %s", id)
}

func (t *Tracker) RemoveTask(id string) error {
	for i, task := range t.record.Tasks {
		if task.ID == id {
			t.record.Tasks = append(t.record.Tasks[:i], t.record.Tasks[i+1:]...)
			t.save()
			return nil
		}
	}
	return fmt.Errorf("task not found: %s", id)
}

// Time blocks

func (t *Tracker) AddTimeBlock(timeLabel, activity, category string, duration int) models.TimeBlock {
	if category == "" {
		category = "work"
	}
	if duration <= 0 {
		duration = 60
	}
	b := models.TimeBlock{
		ID:       uuid.NewString(),
		Time:     timeLabel,
		Activity: activity,
		Category: category,
		Duration: duration,
	}
	t.record.TimeBlocks = append(t.record.TimeBlocks, b)
	t.save()
	return b
}

func (t *Tracker) ToggleTimeBlock(id string) error {
	for i := range t.record.TimeBlocks {
		if t.record.TimeBlocks[i].ID == id {
			t.record.TimeBlocks[i].Completed = !t.record.TimeBlocks[i].Completed
			t.save()
			return nil
		}
	}
	return fmt.Errorf("time block not found: %s", id)
}

func (t *Tracker) RemoveTimeBlock(id string) error {
	for i, b := range t.record.TimeBlocks {
		if b.ID == id {
			t.record.TimeBlocks = append(t.record.TimeBlocks[:i], t.record.TimeBlocks[i+1:]...)
			t.save()
			return nil
		}
	}
	return fmt.Errorf("time block not found: %s", id)
}

// Habit stacks (day-scoped; the global habit-stacks key tracks the latest
// list as a fallback for fresh dates)

func (t *Tracker) AddHabitStack(trigger, newHabit string) models.HabitStack {
	s := models.HabitStack{
		ID:       uuid.NewString(),
		Trigger:  trigger,
		NewHabit: newHabit,
	}
	t.record.HabitStacks = append(t.record.HabitStacks, s)
	t.save()
	return s
}

func (t *Tracker) ToggleHabitStack(id string) error {
	for i := range t.record.HabitStacks {
		if t.record.HabitStacks[i].ID == id {
			t.record.HabitStacks[i].Completed = !t.record.HabitStacks[i].Completed
			t.save()
			return nil
		}
	}
	return fmt.Errorf("habit stack not found: %s", id)
}

func (t *Tracker) RemoveHabitStack(id string) error {
	for i, s := range t.record.HabitStacks {
		if s.ID == id {
			t.record.HabitStacks = append(t.record.HabitStacks[:i], t.record.HabitStacks[i+1:]...)
			t.save()
			return nil
		}
	}
	return fmt.Errorf("habit stack not found: %s", id)
}

// Weekly goals

func (t *Tracker) AddWeeklyGoal(goal, category string) models.WeeklyGoal {
	g := models.WeeklyGoal{
		ID:       uuid.NewString(),
		Goal:     goal,
		Category: category,
	}
	t.goals = append(t.goals, g)
	t.save()
	return g
}

func (t *Tracker) UpdateWeeklyGoal(id, goal string) error {
	for i := range t.goals {
		if t.goals[i].ID == id {
			t.goals[i].Goal = goal
			t.save()
			return nil
		}
	}
	return fmt.Errorf("weekly goal not found: %s", id)
}

func (t *Tracker) ToggleWeeklyGoal(id string) error {
	for i := range t.goals {
		if t.goals[i].ID == id {
			t.goals[i].Completed = !t.goals[i].Completed
			t.save()
			return nil
		}
	}
	return fmt.Errorf("weekly goal not found: %s", id)
}

// ResetWeeklyGoals replaces the list with the default empty slots. Completed
// goals already live in the archive log, so nothing is lost.
func (t *Tracker) ResetWeeklyGoals() {
	t.goals = models.DefaultWeeklyGoals()
	t.save()
}

// Identity

func (t *Tracker) SetIdentity(statement string) {
	t.identity.Statement = statement
	t.identity.Updated = true
	t.save()
}
