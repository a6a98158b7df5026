package status

import (
	"encoding/json"
	"time"

	"github.com/sweeney/desk-clock/internal/calendar"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string        `json:"event,omitempty"`
	Reason        string        `json:"reason,omitempty"`
	Mode          string        `json:"mode"`
	ModeLabel     string        `json:"mode_label"`
	Time          string        `json:"time"`
	Date          string        `json:"date"`
	ClockOK       bool          `json:"clock_ok"`
	EditField     string        `json:"edit_field,omitempty"`
	Ready         bool          `json:"ready"`
	Alarm         AlarmJSON     `json:"alarm"`
	Stopwatch     StopwatchJSON `json:"stopwatch"`
	Countdown     CountdownJSON `json:"countdown"`
	Display       [2]string     `json:"display"`
	UptimeSeconds int64         `json:"uptime_seconds"`
	StartTime     string        `json:"start_time"`
	Timestamp     string        `json:"timestamp"`
	SessionID     string        `json:"session_id"`
	MQTT          MQTTStatus    `json:"mqtt"`
	Bus           BusJSON       `json:"bus"`
	Config        ConfigJSON    `json:"config"`
}

// AlarmJSON is the alarm setting and state.
type AlarmJSON struct {
	Time    string `json:"time"`
	Enabled bool   `json:"enabled"`
	State   string `json:"state"`
}

// StopwatchJSON is the stopwatch reading.
type StopwatchJSON struct {
	Elapsed string `json:"elapsed"`
	Seconds int    `json:"seconds"`
	Running bool   `json:"running"`
}

// CountdownJSON is the countdown reading. Seconds are whole seconds.
type CountdownJSON struct {
	Remaining int    `json:"remaining"`
	Duration  int    `json:"duration"`
	Display   string `json:"display"`
	State     string `json:"state"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
	Topic     string `json:"topic,omitempty"`
}

// BusJSON reports two-wire bus activity.
type BusJSON struct {
	Transactions uint64 `json:"transactions"`
	Nacks        uint64 `json:"nacks"`
	Errors       uint64 `json:"errors"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	Broker      string `json:"broker"`
	HTTPPort    string `json:"http_port"`
	Display     string `json:"display,omitempty"`
	LockoutMs   int64  `json:"lockout_ms"`
	AlertMs     int64  `json:"alert_ms"`
	HeartbeatMs int64  `json:"heartbeat_ms"`
}

// Inner builds the status fields shared by every output format.
func Inner(snap Snapshot) StatusInner {
	c := snap.Clock
	inner := StatusInner{
		Mode:      c.Mode.String(),
		ModeLabel: c.Mode.Label(),
		ClockOK:   c.ClockOK,
		EditField: c.EditField,
		Ready:     snap.Ready,
		Alarm: AlarmJSON{
			Time:    calendar.FormatHourMin(c.AlarmHour, c.AlarmMinute),
			Enabled: c.AlarmEnabled,
			State:   c.AlarmState,
		},
		Stopwatch: StopwatchJSON{
			Elapsed: c.StopwatchElapsed,
			Seconds: c.StopwatchSeconds,
			Running: c.StopwatchRunning,
		},
		Countdown: CountdownJSON{
			Remaining: c.CountdownRemaining,
			Duration:  c.CountdownDuration,
			Display:   calendar.FormatMinSec(c.CountdownRemaining),
			State:     c.CountdownState,
		},
		Display:       c.Display,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		SessionID:     snap.SessionID,
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker, Topic: snap.Config.Topic},
		Bus: BusJSON{
			Transactions: snap.Bus.Transactions,
			Nacks:        snap.Bus.Nacks,
			Errors:       snap.Bus.Errors,
		},
		Config: ConfigJSON{
			Broker:      snap.Config.Broker,
			HTTPPort:    snap.Config.HTTPPort,
			Display:     snap.Config.Display,
			LockoutMs:   snap.Config.LockoutMs,
			AlertMs:     snap.Config.AlertMs,
			HeartbeatMs: snap.Config.HeartbeatMs,
		},
	}

	// Before the first successful read the RTC value is unknown.
	if snap.Ready && c.Date.Year != 0 {
		inner.Time = calendar.FormatTime(c.Time)
		inner.Date = calendar.FormatDate(c.Date)
	} else {
		inner.Time = "UNKNOWN"
		inner.Date = "UNKNOWN"
	}
	return inner
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: Inner(snap)}, "", "  ")
	return data
}

// FormatCompact returns the single-line JSON status pushed to websocket clients.
func FormatCompact(snap Snapshot) []byte {
	data, _ := json.Marshal(StatusJSON{Status: Inner(snap)})
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := Inner(snap)
	inner.Event = event
	inner.Reason = reason

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
