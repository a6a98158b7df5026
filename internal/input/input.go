// Package input reads the four clock buttons and turns raw levels into
// debounced press events.
// The real implementation uses Linux GPIO character device.
// The fake implementation allows testing without hardware.
package input

// Button identifies one of the four push buttons.
type Button int

const (
	Mode Button = iota
	Set
	Start
	Stop

	NumButtons = 4
)

func (b Button) String() string {
	switch b {
	case Mode:
		return "MODE"
	case Set:
		return "SET"
	case Start:
		return "START"
	case Stop:
		return "STOP"
	}
	return "UNKNOWN"
}

// Levels holds one logical level per button, true while held down.
type Levels [NumButtons]bool

// Reader reads button levels.
type Reader interface {
	// Read returns the logical level of every button.
	// The buttons pull their lines to ground, so raw low = pressed.
	Read() (Levels, error)

	// Close releases GPIO resources.
	Close() error
}

// Pin definitions (BCM numbering)
const (
	PinMode  = 5
	PinSet   = 6
	PinStart = 13
	PinStop  = 19
)
