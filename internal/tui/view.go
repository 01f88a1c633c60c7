package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kmallory/atomicday/internal/constants"
	"github.com/kmallory/atomicday/internal/schedule"
	"github.com/kmallory/atomicday/internal/stats"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateToday:
		content = m.viewToday()
	case StateHabits:
		content = m.viewHabits()
	case StateSchedule:
		content = m.viewSchedule()
	case StateStats:
		content = m.viewStats()
	}

	sections := []string{
		m.viewTabs(),
		docStyle.Render(content),
	}
	if m.message != "" {
		sections = append(sections, celebrateStyle.Render(m.message))
	}
	sections = append(sections, m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range tabTitles {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	tabs = append(tabs, dimStyle.Render("  "+m.tracker.Date()))
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) cursorFor(tab SessionState, i int) string {
	if m.state == tab && m.cursors[tab] == i {
		return cursorStyle.Render("> ")
	}
	return "  "
}

func renderCheck(done bool, s string) string {
	if done {
		return doneStyle.Render("[x] " + s)
	}
	return "[ ] " + s
}

func (m Model) viewToday() string {
	rec := m.tracker.Record()
	var b strings.Builder

	b.WriteString(headerStyle.Render("Victory Hour (20/20/20)") + "\n")
	r := rec.MorningRoutine
	slots := []struct {
		name string
		time string
		act  string
		done bool
	}{
		{"MOVE", r.Move.Time, r.Move.Activity, r.Move.Completed},
		{"REFLECT", r.Reflect.Time, r.Reflect.Activity, r.Reflect.Completed},
		{"GROW", r.Grow.Time, r.Grow.Activity, r.Grow.Completed},
	}
	for i, s := range slots {
		line := fmt.Sprintf("%-8s %-16s %s", s.name, s.time, s.act)
		b.WriteString(m.cursorFor(StateToday, i) + renderCheck(s.done, line) + "\n")
	}

	b.WriteString("\n" + headerStyle.Render("Gratitude") + "\n")
	for i, g := range rec.Gratitude {
		if g == "" {
			g = dimStyle.Render("-")
		}
		b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, g))
	}

	b.WriteString("\n" + headerStyle.Render("Daily Five") + "\n")
	for i, f := range rec.DailyFive {
		if f == "" {
			f = dimStyle.Render("-")
		}
		b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, f))
	}

	if stats.IsPerfectDay(rec) {
		b.WriteString("\n" + celebrateStyle.Render("Perfect day!") + "\n")
	}

	return b.String()
}

func (m Model) viewHabits() string {
	rec := m.tracker.Record()
	var b strings.Builder

	b.WriteString(headerStyle.Render("Habits") + "\n")
	if len(rec.Habits) == 0 {
		b.WriteString(dimStyle.Render("  No habits tracked today.") + "\n")
	}
	for i, h := range rec.Habits {
		line := fmt.Sprintf("%s (%s, streak %d)", h.Name, h.Category, h.Streak)
		b.WriteString(m.cursorFor(StateHabits, i) + renderCheck(h.Completed, line) + "\n")
		if h.TwoMinuteVersion != "" {
			b.WriteString(dimStyle.Render("      start with: "+h.TwoMinuteVersion) + "\n")
		}
	}

	if len(rec.HabitStacks) > 0 {
		b.WriteString("\n" + headerStyle.Render("Habit Stacks") + "\n")
		for _, s := range rec.HabitStacks {
			b.WriteString("  " + renderCheck(s.Completed, fmt.Sprintf("After %s, %s", s.Trigger, s.NewHabit)) + "\n")
		}
	}

	return b.String()
}

func (m Model) viewSchedule() string {
	rec := m.tracker.Record()
	var b strings.Builder

	b.WriteString(headerStyle.Render("Time Blocks") + "\n")
	if len(rec.TimeBlocks) == 0 {
		b.WriteString(dimStyle.Render("  No time blocks.") + "\n")
	}
	for i, block := range rec.TimeBlocks {
		line := fmt.Sprintf("%-9s %s (%s, %d min)", block.Time, block.Activity, block.Category, block.Duration)
		b.WriteString(m.cursorFor(StateSchedule, i) + renderCheck(block.Completed, line) + "\n")
	}

	analysis, err := schedule.FindFreeGaps(rec.TimeBlocks, constants.DefaultDayStart, constants.DefaultDayEnd)
	if err == nil {
		b.WriteString("\n" + headerStyle.Render("Free Gaps") + "\n")
		if len(analysis.Gaps) == 0 {
			b.WriteString(dimStyle.Render("  Fully booked.") + "\n")
		}
		for _, g := range analysis.Gaps {
			b.WriteString(fmt.Sprintf("  %s - %s (%d min)\n", g.Start, g.End, g.Minutes))
		}
	}

	return b.String()
}

func (m Model) viewStats() string {
	s := m.tracker.Stats()
	var b strings.Builder

	b.WriteString(headerStyle.Render("Progress") + "\n")
	b.WriteString(fmt.Sprintf("  Current streak:  %d\n", s.CurrentStreak))
	b.WriteString(fmt.Sprintf("  Longest streak:  %d\n", s.LongestStreak))
	b.WriteString(fmt.Sprintf("  Perfect days:    %d\n", s.PerfectDays))
	b.WriteString(fmt.Sprintf("  Total days:      %d\n", s.TotalDays))

	b.WriteString("\n" + headerStyle.Render("Identity") + "\n")
	b.WriteString("  " + m.tracker.Identity().Statement + "\n")

	b.WriteString("\n" + headerStyle.Render("Weekly Goals") + "\n")
	goals := m.tracker.WeeklyGoals()
	if len(goals) == 0 {
		b.WriteString(dimStyle.Render("  No weekly goals.") + "\n")
	}
	for i, g := range goals {
		text := g.Goal
		if text == "" {
			text = dimStyle.Render("(empty slot)")
		}
		b.WriteString(m.cursorFor(StateStats, i) + renderCheck(g.Completed, fmt.Sprintf("%s (%s)", text, g.Category)) + "\n")
	}

	return b.String()
}
