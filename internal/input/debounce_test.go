package input

import (
	"testing"
	"time"
)

var t0 = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func ms(n int) time.Time {
	return t0.Add(time.Duration(n) * time.Millisecond)
}

func TestFirstSampleIsBaseline(t *testing.T) {
	d := NewDebouncer(DefaultLockout)

	s := d.Process(Press(Set), ms(0))
	if s.Pressed[Set] || s.Detected[Set] {
		t.Error("button held at startup reported as pressed")
	}
	if !s.Held[Set] {
		t.Error("Held should report the level")
	}

	// Still held: never repeats.
	s = d.Process(Press(Set), ms(500))
	if s.Detected[Set] {
		t.Error("baseline-held button repeated")
	}

	// Release and press again.
	d.Process(Levels{}, ms(600))
	s = d.Process(Press(Set), ms(700))
	if !s.Pressed[Set] {
		t.Error("press after release not reported")
	}
}

func TestPressEdge(t *testing.T) {
	d := NewDebouncer(DefaultLockout)
	d.Process(Levels{}, ms(0))

	s := d.Process(Press(Mode), ms(50))
	if !s.Pressed[Mode] || !s.Detected[Mode] {
		t.Fatalf("press not reported: %+v", s)
	}
	for _, b := range []Button{Set, Start, Stop} {
		if s.Pressed[b] || s.Detected[b] {
			t.Errorf("%v reported without a press", b)
		}
	}

	s = d.Process(Press(Mode), ms(100))
	if s.Pressed[Mode] {
		t.Error("held button reported as a new press")
	}
}

func TestLockoutDropsEdges(t *testing.T) {
	d := NewDebouncer(DefaultLockout)
	d.Process(Levels{}, ms(0))

	d.Process(Press(Start), ms(10))
	d.Process(Levels{}, ms(40))

	// Bounce inside the lockout.
	s := d.Process(Press(Start), ms(60))
	if s.Pressed[Start] {
		t.Error("edge inside lockout reported")
	}

	// Still held after the lockout: the dropped edge is not replayed.
	s = d.Process(Press(Start), ms(300))
	if s.Pressed[Start] || s.Detected[Start] {
		t.Error("dropped edge replayed after lockout")
	}

	// A clean release and press after the lockout is reported.
	d.Process(Levels{}, ms(320))
	s = d.Process(Press(Start), ms(340))
	if !s.Pressed[Start] {
		t.Error("press after lockout not reported")
	}
}

func TestLockoutIsShared(t *testing.T) {
	d := NewDebouncer(DefaultLockout)
	d.Process(Levels{}, ms(0))

	d.Process(Press(Start), ms(10))
	s := d.Process(Press(Start, Stop), ms(50))
	if s.Pressed[Stop] {
		t.Error("other button pressed inside lockout was reported")
	}
}

func TestHoldRepeat(t *testing.T) {
	d := NewDebouncer(DefaultLockout)
	d.Process(Levels{}, ms(0))

	var detections []int
	for at := 10; at <= 500; at += 10 {
		s := d.Process(Press(Set), ms(at))
		if s.Detected[Set] {
			detections = append(detections, at)
		}
		if s.Pressed[Set] && at != 10 {
			t.Errorf("Pressed at %dms, want only at 10ms", at)
		}
	}

	want := []int{10, 210, 410}
	if len(detections) != len(want) {
		t.Fatalf("detections at %v, want %v", detections, want)
	}
	for i := range want {
		if detections[i] != want[i] {
			t.Errorf("detection %d at %dms, want %dms", i, detections[i], want[i])
		}
	}
}

func TestSimultaneousPresses(t *testing.T) {
	d := NewDebouncer(DefaultLockout)
	d.Process(Levels{}, ms(0))

	s := d.Process(Press(Start, Stop), ms(10))
	if !s.Pressed[Start] || !s.Pressed[Stop] {
		t.Errorf("simultaneous presses: %+v", s.Pressed)
	}
}

func TestButtonString(t *testing.T) {
	tests := map[Button]string{
		Mode:      "MODE",
		Set:       "SET",
		Start:     "START",
		Stop:      "STOP",
		Button(9): "UNKNOWN",
	}
	for b, want := range tests {
		if got := b.String(); got != want {
			t.Errorf("Button(%d).String() = %q, want %q", int(b), got, want)
		}
	}
}
