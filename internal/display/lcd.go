package display

import (
	"fmt"
	"io"
	"time"
)

// Controller bytes. Every bus write starts with one of them.
const (
	ctrlCommand = 0x00
	ctrlData    = 0x40
)

// Commands.
const (
	cmdClear      = 0x01
	cmdHome       = 0x02
	cmdEntryInc   = 0x06
	cmdDisplayOff = 0x08
	cmdDisplayOn  = 0x0C
	cmdSetDDRAM   = 0x80
)

// ST7032 power-on commands. The extended instruction set is only selected
// between st7032Extended and st7032Normal.
const (
	st7032Normal   = 0x38 // 8-bit, two lines, normal instruction set
	st7032Extended = 0x39 // 8-bit, two lines, extended instruction set
	st7032Osc      = 0x14 // 1/5 bias, internal oscillator
	st7032Contrast = 0x73 // contrast low bits
	st7032Power    = 0x56 // icon off, booster on, contrast high bits
	st7032Follower = 0x6C // voltage follower on
)

// Row start addresses. ST7032 and HD44780 modules put row 1 at 0x40;
// SO1602/AQM1602 OLED modules put it at 0x20.
const (
	RowOffsetLCD  = 0x40
	RowOffsetOLED = 0x20
)

// LCD is a character display behind an I2C controller that takes a control
// byte followed by a command or data.
type LCD struct {
	bus       io.Writer
	width     int
	rowOffset byte
	sleep     func(time.Duration)
}

// NewLCD wraps an open bus. Init must be called before use.
func NewLCD(bus io.Writer, width int, rowOffset byte) *LCD {
	if width <= 0 {
		width = DefaultWidth
	}
	return &LCD{
		bus:       bus,
		width:     width,
		rowOffset: rowOffset,
		sleep:     time.Sleep,
	}
}

func (l *LCD) command(c byte) error {
	if _, err := l.bus.Write([]byte{ctrlCommand, c}); err != nil {
		return fmt.Errorf("lcd command 0x%02X: %w", c, err)
	}
	return nil
}

// Init runs the power-on sequence: clear, home, display on. ST7032 LCDs
// (row offset RowOffsetLCD) first need their bias, contrast and booster
// set; OLED modules come up ready.
func (l *LCD) Init() error {
	l.sleep(100 * time.Millisecond)
	if l.rowOffset == RowOffsetLCD {
		if err := l.st7032Setup(); err != nil {
			return err
		}
	}
	if err := l.Clear(); err != nil {
		return err
	}
	if err := l.command(cmdEntryInc); err != nil {
		return err
	}
	return l.command(cmdDisplayOn)
}

func (l *LCD) st7032Setup() error {
	for _, c := range []byte{st7032Normal, st7032Extended, st7032Osc, st7032Contrast, st7032Power, st7032Follower} {
		if err := l.command(c); err != nil {
			return err
		}
	}
	// The follower needs time to settle before the normal set is restored.
	l.sleep(200 * time.Millisecond)
	return l.command(st7032Normal)
}

// Clear blanks the display and homes the cursor.
func (l *LCD) Clear() error {
	if err := l.command(cmdClear); err != nil {
		return err
	}
	l.sleep(20 * time.Millisecond)
	if err := l.command(cmdHome); err != nil {
		return err
	}
	l.sleep(2 * time.Millisecond)
	return nil
}

// WriteAt moves the cursor to row, col and writes s.
func (l *LCD) WriteAt(row, col int, s string) error {
	if row < 0 || row >= Rows || col < 0 {
		return fmt.Errorf("lcd: position %d,%d out of range", row, col)
	}
	data := clip(s, col, l.width)
	if len(data) == 0 {
		return nil
	}

	if err := l.command(cmdSetDDRAM | (byte(row)*l.rowOffset + byte(col))); err != nil {
		return err
	}
	if _, err := l.bus.Write(append([]byte{ctrlData}, data...)); err != nil {
		return fmt.Errorf("lcd data: %w", err)
	}
	return nil
}

// Width returns the number of columns.
func (l *LCD) Width() int {
	return l.width
}

// Close turns the display off and closes the bus if it can be closed.
func (l *LCD) Close() error {
	err := l.command(cmdDisplayOff)
	if c, ok := l.bus.(io.Closer); ok {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
