//go:build !linux

package bus

import "errors"

// RealLines is not available on non-Linux platforms.
type RealLines struct{}

// NewRealLines returns an error on non-Linux platforms.
func NewRealLines(chipName string, pinSCL, pinSDA int) (*RealLines, error) {
	return nil, errors.New("bus: gpio not supported on this platform (requires Linux)")
}

// SetSCL is not implemented on non-Linux platforms.
func (r *RealLines) SetSCL(high bool) error {
	return errors.New("bus: not supported")
}

// SetSDA is not implemented on non-Linux platforms.
func (r *RealLines) SetSDA(high bool) error {
	return errors.New("bus: not supported")
}

// SDA is not implemented on non-Linux platforms.
func (r *RealLines) SDA() (bool, error) {
	return false, errors.New("bus: not supported")
}

// Close is not implemented on non-Linux platforms.
func (r *RealLines) Close() error {
	return nil
}
