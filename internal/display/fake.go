package display

import (
	"strings"
	"sync"
)

// FakeDisplay is a test double that keeps the character grid in memory.
type FakeDisplay struct {
	mu sync.Mutex

	// Cols is the display width.
	Cols int

	// Clears counts calls to Clear.
	Clears int

	// Writes counts calls to WriteAt.
	Writes int

	// WriteError, if set, will be returned by WriteAt and Clear.
	WriteError error

	grid [Rows][]byte
}

// NewFakeDisplay creates a blank display of the given width. A width of
// zero or less means DefaultWidth.
func NewFakeDisplay(width int) *FakeDisplay {
	if width <= 0 {
		width = DefaultWidth
	}
	f := &FakeDisplay{Cols: width}
	f.blank()
	return f
}

func (f *FakeDisplay) blank() {
	for r := range f.grid {
		f.grid[r] = []byte(strings.Repeat(" ", f.Cols))
	}
}

// Clear blanks the grid.
func (f *FakeDisplay) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.WriteError != nil {
		return f.WriteError
	}
	f.Clears++
	f.blank()
	return nil
}

// WriteAt writes s into the grid.
func (f *FakeDisplay) WriteAt(row, col int, s string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.WriteError != nil {
		return f.WriteError
	}
	f.Writes++
	if row < 0 || row >= Rows || col < 0 || col >= f.Cols {
		return nil
	}
	copy(f.grid[row][col:], clip(s, col, f.Cols))
	return nil
}

// Width returns the configured width.
func (f *FakeDisplay) Width() int {
	return f.Cols
}

// Row returns one line of the grid with trailing spaces.
func (f *FakeDisplay) Row(r int) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return string(f.grid[r])
}

// Text returns both lines with trailing spaces trimmed, joined by a newline.
func (f *FakeDisplay) Text() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	lines := make([]string, Rows)
	for r := range f.grid {
		lines[r] = strings.TrimRight(string(f.grid[r]), " ")
	}
	return strings.Join(lines, "\n")
}
