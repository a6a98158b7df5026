package mode

import (
	"github.com/sweeney/desk-clock/internal/calendar"
)

// Snapshot is a value copy of the controller state for other goroutines.
type Snapshot struct {
	Mode    Mode
	Time    calendar.Time
	Date    calendar.Date
	ClockOK bool

	// EditField is the selected field of the active edit mode, empty otherwise.
	EditField string

	AlarmHour      int
	AlarmMinute    int
	AlarmEnabled   bool
	AlarmTriggered bool
	AlarmState     string

	StopwatchElapsed string
	StopwatchSeconds int
	StopwatchRunning bool

	CountdownRemaining int
	CountdownDuration  int
	CountdownState     string

	// Display is the text last laid out for the active mode.
	Display [2]string
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{
		Mode:    c.mode,
		Time:    c.now,
		Date:    c.today,
		ClockOK: !c.rtcFailed && !c.needClock,

		AlarmHour:      c.alarm.Hour(),
		AlarmMinute:    c.alarm.Minute(),
		AlarmEnabled:   c.alarm.Enabled(),
		AlarmTriggered: c.alarm.Triggered(),
		AlarmState:     c.alarm.State().String(),

		StopwatchElapsed: c.stopwatch.Elapsed().String(),
		StopwatchSeconds: c.stopwatch.Seconds(),
		StopwatchRunning: c.stopwatch.Running(),

		CountdownRemaining: c.countdown.Remaining(),
		CountdownDuration:  c.countdown.Duration(),
		CountdownState:     c.countdown.State().String(),

		Display: c.layout(c.disp.Width()),
	}

	switch h := c.handlers[c.mode].(type) {
	case *editMode:
		s.EditField = h.selected().String()
	case *alarmMode:
		if h.field == 0 {
			s.EditField = calendar.FieldHour.String()
		} else {
			s.EditField = calendar.FieldMinute.String()
		}
	case *countdownMode:
		if h.field == 0 {
			s.EditField = calendar.FieldMinute.String()
		} else {
			s.EditField = calendar.FieldSecond.String()
		}
	}
	return s
}
