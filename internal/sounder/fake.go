package sounder

import (
	"sync"
	"time"
)

// FakeSounder is a test double that records every call.
type FakeSounder struct {
	mu sync.Mutex

	// Sounding is the current output.
	Sounding bool

	// Beeps records the duration of each Beep call.
	Beeps []time.Duration

	// Tones records each Tone call.
	Tones []ToneCall

	// Ons and Offs count On and Off calls.
	Ons  int
	Offs int

	// Err, if set, will be returned by every call.
	Err error
}

// NewFakeSounder creates a silent FakeSounder.
func NewFakeSounder() *FakeSounder {
	return &FakeSounder{}
}

func (f *FakeSounder) On() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.Ons++
	f.Sounding = true
	return nil
}

func (f *FakeSounder) Off() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.Offs++
	f.Sounding = false
	return nil
}

// Beep records d. The fake does not time the beep.
func (f *FakeSounder) Beep(d time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.Beeps = append(f.Beeps, d)
	return nil
}

// ToneCall is one recorded Tone.
type ToneCall struct {
	Freq     int
	Duration time.Duration
}

// Tone records the call. The fake does not time the tone.
func (f *FakeSounder) Tone(freq int, d time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.Tones = append(f.Tones, ToneCall{Freq: freq, Duration: d})
	return nil
}

// BeepCount returns the number of Beep calls.
func (f *FakeSounder) BeepCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Beeps)
}
