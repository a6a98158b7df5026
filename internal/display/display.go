// Package display drives the two-line character display.
// The real implementation is an ST7032-class LCD on a kernel I2C bus.
// The fake implementation keeps a character grid for tests.
package display

// Rows is the number of display lines.
const Rows = 2

// DefaultWidth is the column count of a 16x2 module.
const DefaultWidth = 16

// Supported widths. Below MinWidth the mode tag runs into the mode label.
const (
	MinWidth = 16
	MaxWidth = 40
)

// Display accepts cursor-addressed string writes.
type Display interface {
	// Clear blanks the display.
	Clear() error

	// WriteAt writes s starting at row, col. Text past the last column is dropped.
	WriteAt(row, col int, s string) error

	// Width returns the number of columns.
	Width() int
}

// clip returns the part of s that fits on a row of width w starting at col,
// with non-ASCII characters replaced by '?'.
func clip(s string, col, w int) []byte {
	if col >= w {
		return nil
	}
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if len(out) == w-col {
			break
		}
		if r < 0x20 || r > 0x7E {
			r = '?'
		}
		out = append(out, byte(r))
	}
	return out
}
