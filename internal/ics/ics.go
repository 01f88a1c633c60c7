// Package ics renders a day's schedule as an iCalendar file so time blocks
// can be imported into any calendar app.
package ics

import (
	"fmt"
	"strings"
	"time"

	"github.com/kmallory/atomicday/internal/models"
	"github.com/kmallory/atomicday/internal/schedule"
)

const (
	prodID       = "-//Atomic 5 AM Club//EN"
	calendarDesc = "Daily schedule for Atomic 5 AM Club"

	// Reminder lead times, in minutes before the event.
	routineReminder = 15
	blockReminder   = 10

	icsTimeLayout = "20060102T150405Z"
)

type event struct {
	summary     string
	description string
	start       time.Time
	end         time.Time
	reminders   []int
}

// Builder renders iCalendar exports. The clock only feeds DTSTAMP.
type Builder struct {
	now func() time.Time
}

func New() *Builder {
	return &Builder{now: time.Now}
}

// SetClock overrides the builder's clock. Tests only.
func (b *Builder) SetClock(now func() time.Time) {
	b.now = now
}

// Filename returns the export filename for a date.
func Filename(date string) string {
	return fmt.Sprintf("atomic-schedule-%s.ics", date)
}

// Calendar renders a VCALENDAR for the record's schedule: one event per
// populated time block, plus a Victory Hour event when any morning routine
// slot has an activity. All clock labels are treated as UTC wall times,
// matching the calendar's declared timezone. It errors when the record has
// nothing to export.
func (b *Builder) Calendar(date string, rec models.DailyRecord) (string, error) {
	day, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return "", fmt.Errorf("invalid date: %w", err)
	}

	var events []event

	r := rec.MorningRoutine
	if r.Move.Activity != "" || r.Reflect.Activity != "" || r.Grow.Activity != "" {
		events = append(events, event{
			summary: "Victory Hour - 20/20/20 Formula",
			description: fmt.Sprintf("MOVE (5:00-5:20 AM): %s\nREFLECT (5:20-5:40 AM): %s\nGROW (5:40-6:00 AM): %s",
				orUnspecified(r.Move.Activity), orUnspecified(r.Reflect.Activity), orUnspecified(r.Grow.Activity)),
			start:     day.Add(5 * time.Hour),
			end:       day.Add(6 * time.Hour),
			reminders: []int{routineReminder},
		})
	}

	for _, block := range rec.TimeBlocks {
		if block.Activity == "" || block.Time == "" {
			continue
		}
		startMin, err := schedule.ParseClock(block.Time)
		if err != nil {
			continue
		}
		duration := block.Duration
		if duration <= 0 {
			duration = 60
		}
		// End past midnight rolls into the next calendar day.
		start := day.Add(time.Duration(startMin) * time.Minute)
		events = append(events, event{
			summary:     block.Activity,
			description: fmt.Sprintf("Category: %s\nDuration: %d minutes", strings.ToUpper(block.Category), duration),
			start:       start,
			end:         start.Add(time.Duration(duration) * time.Minute),
			reminders:   []int{blockReminder},
		})
	}

	if len(events) == 0 {
		return "", fmt.Errorf("no events to export for %s", date)
	}

	var sb strings.Builder
	writeLine(&sb, "BEGIN:VCALENDAR")
	writeLine(&sb, "VERSION:2.0")
	writeLine(&sb, "PRODID:"+prodID)
	writeLine(&sb, "CALSCALE:GREGORIAN")
	writeLine(&sb, "METHOD:PUBLISH")
	writeLine(&sb, "X-WR-CALNAME:Atomic 5 AM Club - "+date)
	writeLine(&sb, "X-WR-CALDESC:"+calendarDesc)
	writeLine(&sb, "X-WR-TIMEZONE:UTC")

	stamp := b.now().UTC().Format(icsTimeLayout)
	for _, ev := range events {
		b.writeEvent(&sb, ev, stamp)
	}

	writeLine(&sb, "END:VCALENDAR")
	return sb.String(), nil
}

func (b *Builder) writeEvent(sb *strings.Builder, ev event, stamp string) {
	dtstart := ev.start.UTC().Format(icsTimeLayout)
	summary := escapeText(ev.summary)

	writeLine(sb, "BEGIN:VEVENT")
	writeLine(sb, "UID:"+eventUID(ev.summary, dtstart))
	writeLine(sb, "DTSTAMP:"+stamp)
	writeLine(sb, "DTSTART:"+dtstart)
	writeLine(sb, "DTEND:"+ev.end.UTC().Format(icsTimeLayout))
	writeLine(sb, "SUMMARY:"+summary)
	writeLine(sb, "DESCRIPTION:"+escapeText(ev.description))

	for _, minutes := range ev.reminders {
		writeLine(sb, "BEGIN:VALARM")
		writeLine(sb, fmt.Sprintf("TRIGGER:-PT%dM", minutes))
		writeLine(sb, "ACTION:DISPLAY")
		writeLine(sb, "DESCRIPTION:"+summary)
		writeLine(sb, "END:VALARM")
	}

	writeLine(sb, "END:VEVENT")
}

func eventUID(summary, dtstart string) string {
	slug := strings.ToLower(strings.Join(strings.Fields(summary), "-"))
	return fmt.Sprintf("atomic-%s-%s@atomicday", slug, dtstart)
}

func orUnspecified(s string) string {
	if s == "" {
		return "Not specified"
	}
	return s
}

// escapeText escapes property text per RFC 5545.
func escapeText(s string) string {
	r := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\n", "\\n",
	)
	return r.Replace(s)
}

func writeLine(sb *strings.Builder, line string) {
	sb.WriteString(line)
	sb.WriteString("\r\n")
}
