//go:build linux

package display

import (
	"fmt"

	"github.com/davecheney/i2c"
)

// OpenLCD opens /dev/i2c-<busNum> at addr and initializes the display.
func OpenLCD(addr uint8, busNum, width int, rowOffset byte) (*LCD, error) {
	bus, err := i2c.New(addr, busNum)
	if err != nil {
		return nil, fmt.Errorf("open i2c-%d: %w", busNum, err)
	}
	l := NewLCD(bus, width, rowOffset)
	if err := l.Init(); err != nil {
		bus.Close()
		return nil, err
	}
	return l, nil
}
