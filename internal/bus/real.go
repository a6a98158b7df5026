//go:build linux

package bus

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// RealLines drives the bus from two GPIO lines on a Linux GPIO character device.
// SCL is a push-pull output. SDA emulates open drain by switching between
// output-low and input with pull-up, so the target can hold it low.
type RealLines struct {
	chip *gpiocdev.Chip
	scl  *gpiocdev.Line
	sda  *gpiocdev.Line

	sdaReleased bool
}

// NewRealLines requests the SCL and SDA lines (BCM numbering) from chipName,
// e.g. "gpiochip0". Both lines start released.
func NewRealLines(chipName string, pinSCL, pinSDA int) (*RealLines, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	scl, err := chip.RequestLine(pinSCL, gpiocdev.AsOutput(1), gpiocdev.WithConsumer("desk-clock-scl"))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request SCL pin %d: %w", pinSCL, err)
	}

	sda, err := chip.RequestLine(pinSDA, gpiocdev.AsInput, gpiocdev.WithPullUp, gpiocdev.WithConsumer("desk-clock-sda"))
	if err != nil {
		scl.Close()
		chip.Close()
		return nil, fmt.Errorf("request SDA pin %d: %w", pinSDA, err)
	}

	return &RealLines{
		chip:        chip,
		scl:         scl,
		sda:         sda,
		sdaReleased: true,
	}, nil
}

// SetSCL drives the clock line.
func (r *RealLines) SetSCL(high bool) error {
	v := 0
	if high {
		v = 1
	}
	if err := r.scl.SetValue(v); err != nil {
		return fmt.Errorf("set SCL: %w", err)
	}
	return nil
}

// SetSDA pulls the data line low, or releases it to the pull-up.
// The line is only reconfigured when its direction actually changes.
func (r *RealLines) SetSDA(high bool) error {
	if high == r.sdaReleased {
		return nil
	}
	var err error
	if high {
		err = r.sda.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullUp)
	} else {
		err = r.sda.Reconfigure(gpiocdev.AsOutput(0))
	}
	if err != nil {
		return fmt.Errorf("set SDA: %w", err)
	}
	r.sdaReleased = high
	return nil
}

// SDA samples the data line.
func (r *RealLines) SDA() (bool, error) {
	v, err := r.sda.Value()
	if err != nil {
		return false, fmt.Errorf("read SDA: %w", err)
	}
	return v != 0, nil
}

// Close releases both lines back to inputs with pull-up (the idle bus state)
// before closing them.
func (r *RealLines) Close() error {
	var errs []error

	if r.scl != nil {
		if err := r.scl.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullUp); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure SCL: %w", err))
		}
		if err := r.scl.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close SCL: %w", err))
		}
	}
	if r.sda != nil {
		if err := r.sda.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullUp); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure SDA: %w", err))
		}
		if err := r.sda.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close SDA: %w", err))
		}
	}
	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
