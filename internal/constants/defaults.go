package constants

const (
	// Day window used for free-gap analysis when no override is given.
	// The planning day starts with the Victory Hour and ends at wind-down.
	DefaultDayStart = "5:00 AM"
	DefaultDayEnd   = "9:00 PM"

	// PerfectDayMessage is shown when a toggle completes the day.
	PerfectDayMessage = "Perfect day! Every habit and the full Victory Hour are done."
)
