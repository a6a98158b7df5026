package sounder

import (
	"errors"
	"sync"
	"time"
)

// Pin is a digital output. rpio.Pin satisfies it.
type Pin interface {
	High()
	Low()
}

// Buzzer is an active buzzer on one output pin.
//
// Each call supersedes whatever was sounding before it: a later On, Off,
// Beep or Tone cancels the pending end of an earlier Beep or Tone.
type Buzzer struct {
	mu    sync.Mutex
	pin   Pin
	gen   uint64
	timer *time.Timer
}

// NewBuzzer drives pin, starting silent.
func NewBuzzer(pin Pin) *Buzzer {
	pin.Low()
	return &Buzzer{pin: pin}
}

// cancel stops any pending timed action. Caller holds mu.
func (b *Buzzer) cancel() {
	b.gen++
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}

// On sounds until Off.
func (b *Buzzer) On() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.cancel()
	b.pin.High()
	return nil
}

// Off silences the buzzer.
func (b *Buzzer) Off() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.cancel()
	b.pin.Low()
	return nil
}

// Beep sounds for d without blocking.
func (b *Buzzer) Beep(d time.Duration) error {
	if d <= 0 {
		return errors.New("sounder: beep duration must be positive")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.cancel()
	gen := b.gen
	b.pin.High()
	b.timer = time.AfterFunc(d, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.gen == gen {
			b.pin.Low()
			b.timer = nil
		}
	})
	return nil
}

// Tone drives a square wave of freq hertz for d without blocking.
func (b *Buzzer) Tone(freq int, d time.Duration) error {
	if freq <= 0 || d <= 0 {
		return errors.New("sounder: tone needs a positive frequency and duration")
	}
	half := time.Second / time.Duration(2*freq)
	if half <= 0 {
		return errors.New("sounder: frequency too high")
	}

	b.mu.Lock()
	b.cancel()
	gen := b.gen
	b.mu.Unlock()

	go func() {
		t := time.NewTicker(half)
		defer t.Stop()
		end := time.Now().Add(d)
		high := false

		for now := range t.C {
			b.mu.Lock()
			if b.gen != gen {
				b.mu.Unlock()
				return
			}
			if !now.Before(end) {
				b.pin.Low()
				b.mu.Unlock()
				return
			}
			high = !high
			if high {
				b.pin.High()
			} else {
				b.pin.Low()
			}
			b.mu.Unlock()
		}
	}()
	return nil
}
