package input

import "time"

// DefaultLockout is the quiet time after any reported press.
const DefaultLockout = 200 * time.Millisecond

// Snapshot is the debounced view of the buttons for one loop pass.
type Snapshot struct {
	// Pressed is true on the pass a button goes down.
	Pressed Levels
	// Held is the current level.
	Held Levels
	// Detected is Pressed, or a repeat while the button stays held.
	Detected Levels
}

// Debouncer turns raw levels into press events without sleeping.
//
// A press is the edge from released to held. After any reported press or
// repeat, every button is locked out for the lockout period; edges that
// arrive during the lockout are dropped. A button held past the lockout is
// detected again once per lockout period.
//
// The first sample is a baseline: buttons already held then do not count
// as pressed until they are released and pressed again.
type Debouncer struct {
	lockout    time.Duration
	prev       Levels
	baselined  bool
	quietUntil time.Time
	lastDetect [NumButtons]time.Time
	suppressed Levels
}

// NewDebouncer creates a debouncer with the given lockout.
func NewDebouncer(lockout time.Duration) *Debouncer {
	return &Debouncer{lockout: lockout}
}

// Process takes a new raw sample and returns the snapshot for this pass.
func (d *Debouncer) Process(raw Levels, now time.Time) Snapshot {
	s := Snapshot{Held: raw}

	if !d.baselined {
		d.baselined = true
		d.prev = raw
		d.suppressed = raw
		return s
	}

	quiet := now.Before(d.quietUntil)
	acted := false

	for i := range raw {
		edge := raw[i] && !d.prev[i]
		if !raw[i] {
			d.suppressed[i] = false
		}

		switch {
		case d.suppressed[i]:
		case edge && !quiet:
			s.Pressed[i] = true
			s.Detected[i] = true
			d.lastDetect[i] = now
			acted = true
		case edge:
			// Dropped by the lockout; wait for release.
			d.suppressed[i] = true
		case raw[i] && !quiet && now.Sub(d.lastDetect[i]) >= d.lockout:
			s.Detected[i] = true
			d.lastDetect[i] = now
			acted = true
		}
	}

	if acted {
		d.quietUntil = now.Add(d.lockout)
	}
	d.prev = raw
	return s
}
