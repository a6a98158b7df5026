//go:build !linux

package display

import "errors"

// OpenLCD returns an error on non-Linux platforms.
func OpenLCD(addr uint8, busNum, width int, rowOffset byte) (*LCD, error) {
	return nil, errors.New("display: i2c not supported on this platform (requires Linux)")
}
