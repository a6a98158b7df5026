// Package sounder drives the alert buzzer.
// Timed tones run on timers so callers never block.
package sounder

import "time"

// Sounder is the buzzer as the clock sees it.
type Sounder interface {
	On() error
	Off() error

	// Beep sounds for d and returns immediately.
	Beep(d time.Duration) error

	// Tone drives a square wave of freq hertz for d and returns immediately.
	Tone(freq int, d time.Duration) error
}

// MaxToneHz is the highest frequency Tone is asked for.
const MaxToneHz = 5000

// AlertDuration is the length of the alarm and countdown alerts.
const AlertDuration = time.Second
