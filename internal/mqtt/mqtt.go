// Package mqtt publishes clock events and lifecycle messages to a broker.
// The real publisher buffers while the broker is away; the fake records
// everything for tests.
package mqtt

import (
	"fmt"
	"strings"
	"time"

	"github.com/sweeney/desk-clock/internal/mode"
)

// DefaultTopicBase is the topic prefix used when none is configured.
const DefaultTopicBase = "home/desk-clock"

// Topics names where each kind of message goes.
type Topics struct {
	// Events carries controller events (qos 0, never retained).
	Events string
	// System carries STARTUP, SHUTDOWN, HEARTBEAT, RECONNECTED and the will.
	System string
}

// NewTopics derives both topics from base.
func NewTopics(base string) Topics {
	base = strings.TrimRight(base, "/")
	return Topics{
		Events: base + "/events",
		System: base + "/system",
	}
}

// ValidateTopicBase rejects prefixes that cannot be published to.
func ValidateTopicBase(base string) error {
	switch {
	case strings.Trim(base, "/") == "":
		return fmt.Errorf("mqtt: empty topic %q", base)
	case strings.ContainsAny(base, "+#"):
		return fmt.Errorf("mqtt: wildcard in topic %q", base)
	case strings.HasPrefix(base, "$"):
		return fmt.Errorf("mqtt: reserved topic %q", base)
	}
	return nil
}

// Publisher is the outbound side the main loop talks to. Errors are for
// logging; a failed publish must never stop the clock.
type Publisher interface {
	Publish(event mode.Event) error
	PublishSystem(event SystemEvent) error
	Close() error
}

// ConnectionStatus reports whether the broker connection is up.
type ConnectionStatus interface {
	IsConnected() bool
}

// SystemEvent is a lifecycle message for the system topic.
type SystemEvent struct {
	Timestamp time.Time
	Event     string
	// Reason qualifies SHUTDOWN (the signal) and the will.
	Reason string
	// RawPayload, when set, is sent as is. The loop fills it with the
	// full status JSON.
	RawPayload []byte
	Retained   bool
}
