package mode

import "time"

// EventType identifies something the controller did that is worth publishing.
type EventType string

const (
	EventModeChanged        EventType = "MODE_CHANGED"
	EventAlarmFired         EventType = "ALARM_FIRED"
	EventAlarmStopped       EventType = "ALARM_STOPPED"
	EventAlarmEnabled       EventType = "ALARM_ENABLED"
	EventAlarmDisabled      EventType = "ALARM_DISABLED"
	EventCountdownFinished  EventType = "COUNTDOWN_FINISHED"
	EventStopwatchSaturated EventType = "STOPWATCH_SATURATED"
	EventRTCError           EventType = "RTC_ERROR"
	EventRTCRecovered       EventType = "RTC_RECOVERED"
)

// Event is one controller occurrence.
type Event struct {
	Timestamp time.Time
	Type      EventType
	Mode      Mode
	// Detail is a short human-readable value: the alarm time, the new mode,
	// the countdown duration or the bus error.
	Detail string
}
