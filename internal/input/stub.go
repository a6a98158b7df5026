//go:build !linux

package input

import "errors"

// ErrUnsupported is returned on platforms without a GPIO character device.
var ErrUnsupported = errors.New("input: gpio buttons require Linux")

// RealReader exists so the daemon builds off-target; it never opens.
type RealReader struct{}

// NewRealReader always fails with ErrUnsupported.
func NewRealReader(chipName string, pins [NumButtons]int) (*RealReader, error) {
	return nil, ErrUnsupported
}

func (r *RealReader) Read() (Levels, error) { return Levels{}, ErrUnsupported }

func (r *RealReader) Close() error { return nil }
