// Package mode is the six-mode controller that ties the buttons, the clock
// chip, the timers and the display together. One call to Pass is one trip
// round the main loop.
package mode

import "fmt"

// Mode is one of the six controller modes, in Mode-button order.
type Mode int

const (
	Clock Mode = iota
	TimeSet
	AlarmSet
	Stopwatch
	Countdown
	Setup

	NumModes = 6
)

func (m Mode) String() string {
	switch m {
	case Clock:
		return "CLOCK"
	case TimeSet:
		return "TIME_SET"
	case AlarmSet:
		return "ALARM_SET"
	case Stopwatch:
		return "STOPWATCH"
	case Countdown:
		return "COUNTDOWN"
	case Setup:
		return "SETUP"
	}
	return "UNKNOWN"
}

// Label is the name shown on the top display row.
func (m Mode) Label() string {
	switch m {
	case Clock:
		return "Clock Mode"
	case TimeSet:
		return "Set Time"
	case AlarmSet:
		return "Set Alarm"
	case Stopwatch:
		return "Stopwatch"
	case Countdown:
		return "Countdown"
	case Setup:
		return "Setup Mode"
	}
	return "Error Mode"
}

// Tag is the two-character mode number shown top right.
func (m Mode) Tag() string {
	return fmt.Sprintf("M%d", int(m))
}

// Next returns the mode after m, wrapping to Clock.
func (m Mode) Next() Mode {
	return (m + 1) % NumModes
}
