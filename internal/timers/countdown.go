package timers

// CountdownState is the countdown's state.
type CountdownState int

const (
	CountdownStopped CountdownState = iota
	CountdownRunning
	CountdownFinished
)

func (s CountdownState) String() string {
	switch s {
	case CountdownStopped:
		return "STOPPED"
	case CountdownRunning:
		return "RUNNING"
	case CountdownFinished:
		return "FINISHED"
	}
	return "UNKNOWN"
}

// MaxCountdown is the longest duration in seconds.
const MaxCountdown = 65535

// Countdown counts down whole seconds to zero.
//
// A finished countdown stays Finished until Set is called again; Start
// does nothing from Finished.
type Countdown struct {
	duration  int
	remaining int
	state     CountdownState
}

// Set configures the duration and resets the remaining time. It is ignored
// while running. Out-of-range values are clamped to 0-MaxCountdown.
func (c *Countdown) Set(seconds int) bool {
	if c.state == CountdownRunning {
		return false
	}
	seconds = max(0, min(seconds, MaxCountdown))
	c.duration = seconds
	c.remaining = seconds
	c.state = CountdownStopped
	return true
}

// Reset reloads the remaining time from the duration. It only acts on a
// stopped countdown and reports whether anything changed.
func (c *Countdown) Reset() bool {
	if c.state != CountdownStopped || c.remaining == c.duration {
		return false
	}
	c.remaining = c.duration
	return true
}

// Paused reports whether a stopped countdown has used part of its duration.
func (c *Countdown) Paused() bool {
	return c.state == CountdownStopped && c.remaining != c.duration
}

// Start runs a stopped countdown that has time left.
func (c *Countdown) Start() bool {
	if c.state != CountdownStopped || c.duration == 0 || c.remaining == 0 {
		return false
	}
	c.state = CountdownRunning
	return true
}

// Stop pauses a running countdown, keeping the remaining time.
func (c *Countdown) Stop() bool {
	if c.state != CountdownRunning {
		return false
	}
	c.state = CountdownStopped
	return true
}

// Tick removes one second while running. It returns true exactly once,
// on the tick that reaches zero.
func (c *Countdown) Tick() bool {
	if c.state != CountdownRunning || c.remaining == 0 {
		return false
	}
	c.remaining--
	if c.remaining > 0 {
		return false
	}
	c.state = CountdownFinished
	return true
}

// Duration is the configured length in seconds.
func (c *Countdown) Duration() int { return c.duration }

// Remaining is the time left in seconds.
func (c *Countdown) Remaining() int { return c.remaining }

// State returns the current state.
func (c *Countdown) State() CountdownState { return c.state }
