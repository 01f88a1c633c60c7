package models

import "time"

// DateLayout is the calendar-date format used for record keys and
// archive cutoffs. ISO dates compare correctly as plain strings.
const DateLayout = "2006-01-02"

// Today returns the current local date string.
func Today() string {
	return time.Now().Format(DateLayout)
}
