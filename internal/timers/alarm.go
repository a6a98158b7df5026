// Package timers holds the tick-driven peripheral state machines: the
// alarm, the stopwatch and the countdown. They never touch hardware; the
// caller acts on the values they return.
package timers

import (
	"fmt"

	"github.com/sweeney/desk-clock/internal/calendar"
)

// AlarmState is the alarm's externally visible state.
type AlarmState int

const (
	AlarmDisabled AlarmState = iota
	AlarmArmed
	AlarmTriggered
)

func (s AlarmState) String() string {
	switch s {
	case AlarmDisabled:
		return "DISABLED"
	case AlarmArmed:
		return "ARMED"
	case AlarmTriggered:
		return "TRIGGERED"
	}
	return "UNKNOWN"
}

// Default alarm time at power-on.
const (
	DefaultAlarmHour   = 6
	DefaultAlarmMinute = 30
)

// Alarm fires once when the wall clock reaches its hour and minute.
//
// The triggered latch stops repeat firing while the matching minute lasts.
// After Stop the alarm is armed again but held off until the wall clock
// leaves the alarm minute, so it fires again only the next time that
// minute comes round.
type Alarm struct {
	hour      int
	minute    int
	enabled   bool
	triggered bool
	holdoff   bool
}

// NewAlarm returns a disabled alarm set to 06:30.
func NewAlarm() *Alarm {
	return &Alarm{
		hour:   DefaultAlarmHour,
		minute: DefaultAlarmMinute,
	}
}

// Set changes the alarm time. The enabled state and latch are unchanged.
func (a *Alarm) Set(hour, minute int) error {
	if !calendar.ValidHour(hour) || !calendar.ValidMinute(minute) {
		return fmt.Errorf("alarm %02d:%02d: out of range", hour, minute)
	}
	if hour != a.hour || minute != a.minute {
		a.holdoff = false
	}
	a.hour = hour
	a.minute = minute
	return nil
}

// Enable arms the alarm and clears the latch.
func (a *Alarm) Enable() {
	a.enabled = true
	a.triggered = false
	a.holdoff = false
}

// Disable disarms the alarm and clears the latch.
func (a *Alarm) Disable() {
	a.enabled = false
	a.triggered = false
	a.holdoff = false
}

// Toggle flips between Disable and Enable.
func (a *Alarm) Toggle() {
	if a.enabled {
		a.Disable()
	} else {
		a.Enable()
	}
}

// Stop silences a triggered alarm and returns it to Armed. It reports
// whether the alarm was triggered.
func (a *Alarm) Stop() bool {
	if !a.triggered {
		return false
	}
	a.triggered = false
	a.holdoff = true
	return true
}

// Check compares the wall clock against the alarm time. It returns true
// only on the transition into Triggered.
func (a *Alarm) Check(now calendar.Time) bool {
	if !a.enabled || a.triggered {
		return false
	}

	match := now.Hour == a.hour && now.Minute == a.minute
	if a.holdoff {
		if !match {
			a.holdoff = false
		}
		return false
	}
	if !match {
		return false
	}

	a.triggered = true
	return true
}

// State returns the current state.
func (a *Alarm) State() AlarmState {
	switch {
	case !a.enabled:
		return AlarmDisabled
	case a.triggered:
		return AlarmTriggered
	}
	return AlarmArmed
}

// Enabled reports whether the alarm is armed or triggered.
func (a *Alarm) Enabled() bool { return a.enabled }

// Triggered reports whether the alarm has fired and not yet been stopped.
func (a *Alarm) Triggered() bool { return a.triggered }

// Hour is the alarm hour, 0-23.
func (a *Alarm) Hour() int { return a.hour }

// Minute is the alarm minute, 0-59.
func (a *Alarm) Minute() int { return a.minute }

// Time returns the alarm time with seconds zero.
func (a *Alarm) Time() calendar.Time {
	return calendar.Time{Hour: a.hour, Minute: a.minute}
}
