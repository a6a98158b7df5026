//go:build linux

package sounder

import (
	"fmt"

	"github.com/stianeikeland/go-rpio/v4"
)

// GPIOBuzzer is a Buzzer on a Raspberry Pi GPIO pin (BCM numbering).
type GPIOBuzzer struct {
	*Buzzer
	pin rpio.Pin
}

// OpenGPIOBuzzer maps the GPIO registers and configures pin as an output.
func OpenGPIOBuzzer(pin int) (*GPIOBuzzer, error) {
	if err := rpio.Open(); err != nil {
		return nil, fmt.Errorf("open gpio memory: %w", err)
	}
	p := rpio.Pin(pin)
	p.Output()
	return &GPIOBuzzer{
		Buzzer: NewBuzzer(p),
		pin:    p,
	}, nil
}

// Close silences the buzzer, returns the pin to an input with pull-down
// and unmaps the GPIO registers.
func (g *GPIOBuzzer) Close() error {
	g.Off()
	g.pin.Input()
	g.pin.PullDown()
	if err := rpio.Close(); err != nil {
		return fmt.Errorf("close gpio memory: %w", err)
	}
	return nil
}
