package mode

import (
	"bytes"
	"errors"
	"log"
	"os"
	"testing"
	"time"

	"github.com/sweeney/desk-clock/internal/calendar"
	"github.com/sweeney/desk-clock/internal/display"
	"github.com/sweeney/desk-clock/internal/input"
	"github.com/sweeney/desk-clock/internal/sounder"
)

var errBus = errors.New("bus: no acknowledge")

// fakeRTC is an in-memory clock chip.
type fakeRTC struct {
	time calendar.Time
	date calendar.Date

	readErr  error
	writeErr error

	timeWrites int
	dateWrites int
	timeReads  int
}

func (f *fakeRTC) ReadTime() (calendar.Time, error) {
	f.timeReads++
	if f.readErr != nil {
		return calendar.Time{}, f.readErr
	}
	return f.time, nil
}

func (f *fakeRTC) ReadDate() (calendar.Date, error) {
	if f.readErr != nil {
		return calendar.Date{}, f.readErr
	}
	return f.date, nil
}

func (f *fakeRTC) WriteTime(t calendar.Time) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.time = t
	f.timeWrites++
	return nil
}

func (f *fakeRTC) WriteDate(d calendar.Date) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.date = d
	f.dateWrites++
	return nil
}

type harness struct {
	t    *testing.T
	c    *Controller
	rtc  *fakeRTC
	disp *display.FakeDisplay
	snd  *sounder.FakeSounder
	now  time.Time
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		t: t,
		rtc: &fakeRTC{
			time: calendar.Time{Hour: 12, Minute: 34, Second: 56},
			date: calendar.Date{Day: 15, Month: 1, Year: 2024},
		},
		disp: display.NewFakeDisplay(display.DefaultWidth),
		snd:  sounder.NewFakeSounder(),
		now:  time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	h.c = New(DefaultConfig(), h.rtc, h.disp, h.snd)
	h.idle()
	return h
}

func (h *harness) pass(in input.Snapshot, tick bool) []Event {
	h.now = h.now.Add(50 * time.Millisecond)
	return h.c.Pass(in, tick, h.now)
}

// press reports buttons as newly pressed this pass.
func (h *harness) press(buttons ...input.Button) []Event {
	var in input.Snapshot
	for _, b := range buttons {
		in.Pressed[b] = true
		in.Held[b] = true
		in.Detected[b] = true
	}
	return h.pass(in, false)
}

// repeat reports buttons as still held and detected again.
func (h *harness) repeat(buttons ...input.Button) []Event {
	var in input.Snapshot
	for _, b := range buttons {
		in.Held[b] = true
		in.Detected[b] = true
	}
	return h.pass(in, false)
}

// hold reports buttons as held with no detection.
func (h *harness) hold(buttons ...input.Button) []Event {
	var in input.Snapshot
	for _, b := range buttons {
		in.Held[b] = true
	}
	return h.pass(in, false)
}

func (h *harness) idle() []Event {
	return h.pass(input.Snapshot{}, false)
}

func (h *harness) tick() []Event {
	return h.pass(input.Snapshot{}, true)
}

func (h *harness) goTo(m Mode) {
	h.t.Helper()
	for h.c.Mode() != m {
		h.press(input.Mode)
	}
}

func (h *harness) row(r int) string {
	return h.disp.Row(r)
}

// captureLog redirects the standard logger for the rest of the test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	return &buf
}

func countEvents(events []Event, typ EventType) int {
	n := 0
	for _, e := range events {
		if e.Type == typ {
			n++
		}
	}
	return n
}
