// Package schedule analyzes a day's time blocks: where the free gaps are
// and how much of the day is already committed.
package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/kmallory/atomicday/internal/models"
)

// Gap is an unscheduled stretch between time blocks.
type Gap struct {
	Start   string
	End     string
	Minutes int
}

// Analysis summarizes a day's time-block layout.
type Analysis struct {
	Gaps             []Gap
	ScheduledMinutes int
	FreeMinutes      int
}

// ParseClock converts a clock label to minutes from midnight. Labels are
// 12-hour ("5:00 AM") as the planner writes them, with 24-hour ("17:00")
// accepted for hand-entered blocks.
func ParseClock(label string) (int, error) {
	for _, layout := range []string{"3:04 PM", "15:04"} {
		if t, err := time.Parse(layout, label); err == nil {
			return t.Hour()*60 + t.Minute(), nil
		}
	}
	return 0, fmt.Errorf("unrecognized time: %q", label)
}

// FormatClock renders minutes from midnight as a 12-hour clock label,
// wrapping past midnight.
func FormatClock(minutes int) string {
	minutes = ((minutes % 1440) + 1440) % 1440
	t := time.Date(0, 1, 1, minutes/60, minutes%60, 0, 0, time.UTC)
	return t.Format("3:04 PM")
}

type interval struct {
	start int
	end   int
}

// FindFreeGaps computes the unscheduled gaps between the day's time blocks
// within the [dayStart, dayEnd] window. Blocks with unparseable times are
// skipped; overlapping blocks are merged rather than double-counted.
func FindFreeGaps(blocks []models.TimeBlock, dayStart, dayEnd string) (Analysis, error) {
	startMin, err := ParseClock(dayStart)
	if err != nil {
		return Analysis{}, fmt.Errorf("invalid day start time: %w", err)
	}
	endMin, err := ParseClock(dayEnd)
	if err != nil {
		return Analysis{}, fmt.Errorf("invalid day end time: %w", err)
	}
	if endMin <= startMin {
		return Analysis{}, fmt.Errorf("day end %s is not after day start %s", dayEnd, dayStart)
	}

	var occupied []interval
	for _, b := range blocks {
		start, err := ParseClock(b.Time)
		if err != nil {
			continue
		}
		duration := b.Duration
		if duration <= 0 {
			duration = 60
		}
		occupied = append(occupied, interval{start: start, end: start + duration})
	}

	sort.Slice(occupied, func(i, j int) bool {
		return occupied[i].start < occupied[j].start
	})

	analysis := Analysis{Gaps: []Gap{}}
	cursor := startMin

	for _, iv := range occupied {
		if iv.end <= startMin || iv.start >= endMin {
			continue
		}
		if iv.start > cursor {
			analysis.Gaps = append(analysis.Gaps, Gap{
				Start:   FormatClock(cursor),
				End:     FormatClock(iv.start),
				Minutes: iv.start - cursor,
			})
		}
		if iv.end > cursor {
			cursor = iv.end
		}
	}

	if cursor < endMin {
		analysis.Gaps = append(analysis.Gaps, Gap{
			Start:   FormatClock(cursor),
			End:     FormatClock(endMin),
			Minutes: endMin - cursor,
		})
	}

	for _, g := range analysis.Gaps {
		analysis.FreeMinutes += g.Minutes
	}
	analysis.ScheduledMinutes = (endMin - startMin) - analysis.FreeMinutes

	return analysis, nil
}
