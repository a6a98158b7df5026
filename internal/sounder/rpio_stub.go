//go:build !linux

package sounder

import "errors"

// GPIOBuzzer is not available on non-Linux platforms.
type GPIOBuzzer struct {
	*Buzzer
}

// OpenGPIOBuzzer returns an error on non-Linux platforms.
func OpenGPIOBuzzer(pin int) (*GPIOBuzzer, error) {
	return nil, errors.New("sounder: gpio not supported on this platform (requires Linux)")
}

// Close is not implemented on non-Linux platforms.
func (g *GPIOBuzzer) Close() error {
	return nil
}
