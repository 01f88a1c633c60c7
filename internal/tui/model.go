// Package tui is a dashboard over the day tracker: tabs for the current
// day, habits, the time-block schedule, and progress stats.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kmallory/atomicday/internal/tracker"
)

type SessionState int

const (
	StateToday SessionState = iota
	StateHabits
	StateSchedule
	StateStats

	tabCount = 4
)

var tabTitles = []string{"Today", "Habits", "Schedule", "Stats"}

type Model struct {
	tracker *tracker.Tracker
	state   SessionState
	keys    KeyMap
	help    help.Model

	// cursor is per-tab so switching tabs does not lose position.
	cursors [tabCount]int

	message  string
	quitting bool
	width    int
	height   int
}

func NewModel(t *tracker.Tracker) Model {
	return Model{
		tracker: t,
		state:   StateToday,
		keys:    DefaultKeyMap(),
		help:    help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// itemCount returns how many toggleable rows the active tab has.
func (m Model) itemCount() int {
	rec := m.tracker.Record()
	switch m.state {
	case StateToday:
		return 3 // move, reflect, grow
	case StateHabits:
		return len(rec.Habits)
	case StateSchedule:
		return len(rec.TimeBlocks)
	case StateStats:
		return len(m.tracker.WeeklyGoals())
	}
	return 0
}

func (m *Model) clampCursor() {
	n := m.itemCount()
	if n == 0 {
		m.cursors[m.state] = 0
		return
	}
	if m.cursors[m.state] >= n {
		m.cursors[m.state] = n - 1
	}
	if m.cursors[m.state] < 0 {
		m.cursors[m.state] = 0
	}
}
