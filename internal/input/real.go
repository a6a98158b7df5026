//go:build linux

package input

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// RealReader reads buttons from actual hardware using Linux GPIO character device.
type RealReader struct {
	chip  *gpiocdev.Chip
	lines *gpiocdev.Lines
}

// NewRealReader requests the four button pins, in Mode, Set, Start, Stop order.
func NewRealReader(chipName string, pins [NumButtons]int) (*RealReader, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	// Buttons switch to ground; the internal pull-up holds idle lines high.
	lines, err := chip.RequestLines(pins[:], gpiocdev.AsInput, gpiocdev.WithPullUp, gpiocdev.WithConsumer("desk-clock-buttons"))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request button pins %v: %w", pins, err)
	}

	return &RealReader{
		chip:  chip,
		lines: lines,
	}, nil
}

// Read returns the logical button levels.
// Inverts raw GPIO: raw low (0) = pressed.
func (r *RealReader) Read() (Levels, error) {
	var lv Levels
	raw := make([]int, NumButtons)
	if err := r.lines.Values(raw); err != nil {
		return lv, fmt.Errorf("read button pins: %w", err)
	}
	for i, v := range raw {
		lv[i] = v == 0
	}
	return lv, nil
}

// Close releases GPIO resources.
func (r *RealReader) Close() error {
	var errs []error

	if r.lines != nil {
		if err := r.lines.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close button pins: %w", err))
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
