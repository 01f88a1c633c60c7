package models

import "github.com/google/uuid"

// RoutineSlot is one of the three morning routine segments.
type RoutineSlot struct {
	Completed bool   `json:"completed"`
	Activity  string `json:"activity"`
	Duration  int    `json:"duration"` // minutes
	Time      string `json:"time"`     // display label, e.g. "5:00 - 5:20 AM"
}

// MorningRoutine holds the move/reflect/grow slots of the first hour.
type MorningRoutine struct {
	Move    RoutineSlot `json:"move"`
	Reflect RoutineSlot `json:"reflect"`
	Grow    RoutineSlot `json:"grow"`
}

// AllCompleted reports whether every routine slot is done.
func (m MorningRoutine) AllCompleted() bool {
	return m.Move.Completed && m.Reflect.Completed && m.Grow.Completed
}

// Habit is a recurring practice carried over into every day's record.
// The ID is stable across dates; Streak is a mutable counter adjusted
// by toggling, not recomputed from history.
type Habit struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Category         string `json:"category"`
	Streak           int    `json:"streak"`
	Completed        bool   `json:"completed"`
	TwoMinuteVersion string `json:"twoMinuteVersion"`
}

// Task is a one-off to-do scoped to a single day.
type Task struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	Priority  string `json:"priority"`
}

// TimeBlock is one entry in the day's time-blocked schedule.
type TimeBlock struct {
	ID        string `json:"id"`
	Time      string `json:"time"` // slot label, e.g. "9:00 AM"
	Activity  string `json:"activity"`
	Category  string `json:"category"`
	Completed bool   `json:"completed"`
	Duration  int    `json:"duration"` // minutes
}

// HabitStack pairs an existing trigger habit with a new habit to attach to it.
type HabitStack struct {
	ID        string `json:"id"`
	Trigger   string `json:"trigger"`
	NewHabit  string `json:"newHabit"`
	Completed bool   `json:"completed"`
}

// DailyRecord is the full state for one calendar date. Records are
// self-contained: mutating one date never affects another.
type DailyRecord struct {
	MorningRoutine MorningRoutine `json:"morningRoutine"`
	Gratitude      []string       `json:"gratitude"` // always 3 entries
	Habits         []Habit        `json:"habits"`
	Tasks          []Task         `json:"tasks"`
	TimeBlocks     []TimeBlock    `json:"timeBlocks"`
	DailyFive      []string       `json:"dailyFive"` // always 5 entries
	HabitStacks    []HabitStack   `json:"habitStacks"`
	Date           string         `json:"date"`    // YYYY-MM-DD
	SavedAt        string         `json:"savedAt"` // RFC3339, refreshed on save
	// Closed records that this date's stats were already counted. It
	// travels with the record so revisiting a date never counts it twice.
	Closed bool `json:"closed,omitempty"`
}

// DefaultMorningRoutine returns the canonical 20/20/20 slot layout.
func DefaultMorningRoutine() MorningRoutine {
	return MorningRoutine{
		Move:    RoutineSlot{Duration: 20, Time: "5:00 - 5:20 AM"},
		Reflect: RoutineSlot{Duration: 20, Time: "5:20 - 5:40 AM"},
		Grow:    RoutineSlot{Duration: 20, Time: "5:40 - 6:00 AM"},
	}
}

// DefaultHabits returns the seed habit set for a fresh record.
func DefaultHabits() []Habit {
	return []Habit{
		{ID: uuid.NewString(), Name: "Wake up at 5 AM", Category: "Morning", TwoMinuteVersion: "Set alarm for 5 AM"},
		{ID: uuid.NewString(), Name: "Read for 30 minutes", Category: "Growth", TwoMinuteVersion: "Read 1 page"},
		{ID: uuid.NewString(), Name: "Exercise", Category: "Health", TwoMinuteVersion: "Put on workout clothes"},
	}
}

// DefaultTimeBlocks returns the seed schedule for a fresh record.
func DefaultTimeBlocks() []TimeBlock {
	return []TimeBlock{
		{ID: uuid.NewString(), Time: "5:00 AM", Activity: "Victory Hour: 20/20/20 Formula", Category: "morning", Duration: 60},
		{ID: uuid.NewString(), Time: "9:00 AM", Activity: "90/90/1: Focus on #1 Priority Project", Category: "deep-work", Duration: 90},
		{ID: uuid.NewString(), Time: "10:30 AM", Activity: "Work Block (60/10 Method)", Category: "work", Duration: 60},
		{ID: uuid.NewString(), Time: "12:30 PM", Activity: "Lunch & Rest", Category: "break", Duration: 60},
		{ID: uuid.NewString(), Time: "5:00 PM", Activity: "Second Wind Workout", Category: "exercise", Duration: 60},
	}
}

// DefaultHabitStacks returns the seed stack for a fresh record.
func DefaultHabitStacks() []HabitStack {
	return []HabitStack{
		{ID: uuid.NewString(), Trigger: "After I wake up", NewHabit: "I will drink a glass of water"},
	}
}

// NewDailyRecord returns a fully-populated default record for the given date.
// No field is ever nil.
func NewDailyRecord(date string) DailyRecord {
	return DailyRecord{
		MorningRoutine: DefaultMorningRoutine(),
		Gratitude:      make([]string, 3),
		Habits:         DefaultHabits(),
		Tasks:          []Task{},
		TimeBlocks:     DefaultTimeBlocks(),
		DailyFive:      make([]string, 5),
		HabitStacks:    DefaultHabitStacks(),
		Date:           date,
	}
}
