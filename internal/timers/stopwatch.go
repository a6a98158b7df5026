package timers

import "github.com/sweeney/desk-clock/internal/calendar"

// MaxStopwatchHours is the largest hour count the stopwatch displays.
const MaxStopwatchHours = 99

// Elapsed is a stopwatch reading.
type Elapsed struct {
	Hours   int
	Minutes int
	Seconds int
}

func (e Elapsed) String() string {
	return calendar.FormatElapsed(e.Hours, e.Minutes, e.Seconds)
}

// maxStopwatch is 99:59:59 in seconds.
var maxStopwatch = calendar.TimeToSeconds(calendar.Time{Hour: MaxStopwatchHours, Minute: 59, Second: 59})

// Stopwatch counts whole seconds up to 99:59:59.
type Stopwatch struct {
	seconds int
	running bool
}

// Start runs a stopped stopwatch. It reports whether the state changed.
func (s *Stopwatch) Start() bool {
	if s.running {
		return false
	}
	s.running = true
	return true
}

// Stop halts a running stopwatch, keeping the reading.
func (s *Stopwatch) Stop() bool {
	if !s.running {
		return false
	}
	s.running = false
	return true
}

// Reset zeroes the reading and stops.
func (s *Stopwatch) Reset() {
	s.seconds = 0
	s.running = false
}

// Tick adds one second while running. It returns true on the tick that
// hits the 99:59:59 clamp, which also stops the stopwatch.
func (s *Stopwatch) Tick() bool {
	if !s.running {
		return false
	}
	if s.seconds < maxStopwatch {
		s.seconds++
		return false
	}
	s.seconds = maxStopwatch
	s.running = false
	return true
}

// Elapsed splits the reading into hours, minutes and seconds.
func (s *Stopwatch) Elapsed() Elapsed {
	t := calendar.SecondsToTime(s.seconds)
	return Elapsed{Hours: t.Hour, Minutes: t.Minute, Seconds: t.Second}
}

// Seconds is the reading as a plain second count.
func (s *Stopwatch) Seconds() int { return s.seconds }

// Running reports whether the stopwatch is counting.
func (s *Stopwatch) Running() bool { return s.running }
