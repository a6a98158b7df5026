package mode

import (
	"strings"

	"github.com/sweeney/desk-clock/internal/calendar"
)

// dateCol is where the date starts on the bottom row, after "HH:MM:SS ".
const dateCol = 9

// line is a fixed-width row being composed.
type line []byte

func newLine(w int) line {
	return line(strings.Repeat(" ", w))
}

// put writes s at col, dropping anything past the end.
func (l line) put(col int, s string) {
	if col < 0 || col >= len(l) {
		return
	}
	copy(l[col:], s)
}

func (l line) String() string {
	return string(l)
}

func pad(s string, w int) string {
	l := newLine(w)
	l.put(0, s)
	return l.String()
}

// dateText picks the widest date format that fits in avail columns.
func dateText(d calendar.Date, avail int) string {
	switch {
	case avail >= len("DD/MM/YYYY"):
		return calendar.FormatDate(d)
	case avail >= len("DD/MM/YY"):
		return calendar.FormatDateShort(d)
	}
	return calendar.FormatDayMonth(d)
}

// timeDateRow renders "HH:MM:SS DD/MM..." for a row w wide.
func timeDateRow(t calendar.Time, d calendar.Date, w int) string {
	l := newLine(w)
	l.put(0, calendar.FormatTime(t))
	l.put(dateCol, dateText(d, w-dateCol))
	return l.String()
}

// layout returns both display rows for the active mode.
func (c *Controller) layout(w int) [2]string {
	top := newLine(w)
	top.put(0, c.mode.Label())
	top.put(w-2, c.mode.Tag())

	return [2]string{
		top.String(),
		c.handlers[c.mode].row(c, w),
	}
}
