package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kmallory/atomicday/internal/constants"
	"github.com/kmallory/atomicday/internal/models"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.tracker.Save()
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			m.message = ""
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
			m.message = ""
		case key.Matches(msg, m.keys.Up):
			m.cursors[m.state]--
			m.clampCursor()
		case key.Matches(msg, m.keys.Down):
			m.cursors[m.state]++
			m.clampCursor()
		case key.Matches(msg, m.keys.Toggle):
			m.toggleCurrent()
		case key.Matches(msg, m.keys.NextDay):
			m.shiftDay(1)
		case key.Matches(msg, m.keys.PrevDay):
			m.shiftDay(-1)
		}
	}

	return m, nil
}

func (m *Model) toggleCurrent() {
	m.message = ""
	cursor := m.cursors[m.state]

	switch m.state {
	case StateToday:
		slots := []string{"move", "reflect", "grow"}
		perfect, err := m.tracker.ToggleRoutine(slots[cursor])
		if err == nil && perfect {
			m.message = constants.PerfectDayMessage
		}
	case StateHabits:
		habits := m.tracker.Record().Habits
		if cursor < len(habits) {
			perfect, err := m.tracker.ToggleHabit(habits[cursor].ID)
			if err == nil && perfect {
				m.message = constants.PerfectDayMessage
			}
		}
	case StateSchedule:
		blocks := m.tracker.Record().TimeBlocks
		if cursor < len(blocks) {
			m.tracker.ToggleTimeBlock(blocks[cursor].ID)
		}
	case StateStats:
		goals := m.tracker.WeeklyGoals()
		if cursor < len(goals) {
			m.tracker.ToggleWeeklyGoal(goals[cursor].ID)
		}
	}
}

// shiftDay navigates to an adjacent date, which closes the current day's
// stats on the way out.
func (m *Model) shiftDay(days int) {
	current, err := time.Parse(models.DateLayout, m.tracker.Date())
	if err != nil {
		return
	}
	m.tracker.GoTo(current.AddDate(0, 0, days).Format(models.DateLayout))
	m.message = ""
	m.clampCursor()
}
