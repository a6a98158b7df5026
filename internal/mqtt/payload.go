package mqtt

import (
	"encoding/json"
	"time"

	"github.com/sweeney/desk-clock/internal/mode"
)

// Payload is the body of a controller event message:
//
//	{"clock":{"timestamp":"2026-01-09T06:30:00Z","event":"ALARM_FIRED","mode":"CLOCK","detail":"06:30"}}
type Payload struct {
	Clock ClockPayload `json:"clock"`
}

// ClockPayload is one controller event. Detail is omitted when empty.
type ClockPayload struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Mode      string `json:"mode"`
	Detail    string `json:"detail,omitempty"`
}

// SystemPayload is the short lifecycle body used by the will and
// RECONNECTED, which carry no status snapshot.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner holds the lifecycle fields.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

func stamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// FormatPayload encodes a controller event.
func FormatPayload(event mode.Event) ([]byte, error) {
	return json.Marshal(Payload{Clock: ClockPayload{
		Timestamp: stamp(event.Timestamp),
		Event:     string(event.Type),
		Mode:      event.Mode.String(),
		Detail:    event.Detail,
	}})
}

// FormatSystemPayload encodes a lifecycle event, or returns RawPayload
// unchanged when it is set.
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}
	return json.Marshal(SystemPayload{System: SystemPayloadInner{
		Timestamp: stamp(event.Timestamp),
		Event:     event.Event,
		Reason:    event.Reason,
	}})
}
