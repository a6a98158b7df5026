package input

import "errors"

// ErrNoSamples is returned by a FakeReader with an empty script.
var ErrNoSamples = errors.New("input: fake reader has no samples")

// FakeReader plays back a script of button levels, one entry per Read.
// Once the script runs out the final entry repeats, so a test can stop
// scripting at the steady state.
type FakeReader struct {
	Samples []Levels

	// ReadError, if set, is returned instead of the next entry and does
	// not advance the script.
	ReadError error

	// Reads counts successful reads.
	Reads  int
	Closed bool

	pos int
}

func NewFakeReader(samples []Levels) *FakeReader {
	return &FakeReader{Samples: samples}
}

func (f *FakeReader) Read() (Levels, error) {
	switch {
	case f.ReadError != nil:
		return Levels{}, f.ReadError
	case len(f.Samples) == 0:
		return Levels{}, ErrNoSamples
	}

	lv := f.Samples[f.pos]
	if f.pos+1 < len(f.Samples) {
		f.pos++
	}
	f.Reads++
	return lv, nil
}

func (f *FakeReader) Close() error {
	f.Closed = true
	return nil
}

// Reset rewinds the script and reopens the reader.
func (f *FakeReader) Reset() {
	f.pos = 0
	f.Reads = 0
	f.Closed = false
}

// Press returns levels with only the given buttons held.
func Press(buttons ...Button) Levels {
	var lv Levels
	for _, b := range buttons {
		lv[b] = true
	}
	return lv
}

// Hold returns n passes of lv, for scripting a button kept down.
func Hold(lv Levels, n int) []Levels {
	out := make([]Levels, n)
	for i := range out {
		out[i] = lv
	}
	return out
}
