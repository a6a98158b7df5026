// Package status provides a thread-safe status tracker for the desk-clock daemon.
// The main loop writes it; HTTP handlers, the websocket feed and MQTT system
// events read it.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/desk-clock/internal/bus"
	"github.com/sweeney/desk-clock/internal/mode"
)

// Config contains daemon configuration for display.
type Config struct {
	Broker      string
	Topic       string
	HTTPPort    string
	Display     string // e.g. "lcd 16x2 i2c-1@0x3e"
	LockoutMs   int64
	AlertMs     int64
	HeartbeatMs int64
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type, safe to use after the lock is released.
type Snapshot struct {
	Clock         mode.Snapshot
	Bus           bus.Stats
	Ready         bool // at least one controller pass has run
	Passes        uint64
	SessionID     string
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu      sync.RWMutex
	snap    Snapshot
	version uint64
	now     func() time.Time
}

// NewTracker creates a Tracker with the given start time, boot session ID and config.
func NewTracker(startTime time.Time, sessionID string, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			SessionID: sessionID,
			Config:    cfg,
		},
		now: time.Now,
	}
}

// Update records the controller state and bus counters after a pass.
func (t *Tracker) Update(clock mode.Snapshot, stats bus.Stats) {
	t.mu.Lock()
	if !t.snap.Ready || clock != t.snap.Clock {
		t.version++
	}
	t.snap.Clock = clock
	t.snap.Bus = stats
	t.snap.Ready = true
	t.snap.Passes++
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	if t.snap.MQTTConnected != connected {
		t.version++
	}
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// Version increases whenever the clock state or the MQTT link changes.
// Readers compare versions to skip sending unchanged state.
func (t *Tracker) Version() uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.version
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = t.now()
	return s
}
