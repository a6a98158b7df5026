package mode

import (
	"testing"
	"time"

	"github.com/sweeney/desk-clock/internal/bus"
	"github.com/sweeney/desk-clock/internal/calendar"
	"github.com/sweeney/desk-clock/internal/display"
	"github.com/sweeney/desk-clock/internal/input"
	"github.com/sweeney/desk-clock/internal/rtc"
	"github.com/sweeney/desk-clock/internal/sounder"
	"github.com/sweeney/desk-clock/internal/timers"
)

func TestTimeSetSecondWrapHasNoCarry(t *testing.T) {
	h := newHarness(t)
	h.rtc.time = calendar.Time{Hour: 23, Minute: 59, Second: 59}
	h.goTo(TimeSet)

	h.press(input.Set)
	h.press(input.Set)
	h.press(input.Start)

	want := calendar.Time{Hour: 23, Minute: 59, Second: 0}
	if h.rtc.time != want {
		t.Errorf("rtc time = %+v, want %+v", h.rtc.time, want)
	}
}

func TestTimeSetDayWrap(t *testing.T) {
	tests := []struct {
		name string
		in   calendar.Date
		want calendar.Date
	}{
		{"non-leap", calendar.Date{Day: 28, Month: 2, Year: 2023}, calendar.Date{Day: 1, Month: 2, Year: 2023}},
		{"leap", calendar.Date{Day: 28, Month: 2, Year: 2024}, calendar.Date{Day: 29, Month: 2, Year: 2024}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.rtc.date = tt.in
			h.goTo(TimeSet)

			for i := 0; i < 3; i++ {
				h.press(input.Set)
			}
			h.press(input.Start)

			if h.rtc.date != tt.want {
				t.Errorf("rtc date = %+v, want %+v", h.rtc.date, tt.want)
			}
		})
	}
}

func TestTimeSetPushesEveryPass(t *testing.T) {
	h := newHarness(t)
	h.goTo(TimeSet)

	before := h.rtc.timeWrites
	h.idle()
	h.idle()
	h.idle()
	if got := h.rtc.timeWrites - before; got != 3 {
		t.Errorf("time writes over 3 idle passes = %d, want 3", got)
	}
	if got := h.rtc.dateWrites; got != h.rtc.timeWrites {
		t.Errorf("date writes %d != time writes %d", got, h.rtc.timeWrites)
	}
}

func TestTimeSetFieldCycleAndDecrement(t *testing.T) {
	h := newHarness(t)
	h.goTo(TimeSet)

	// Hour is selected on first entry.
	h.press(input.Stop)
	if h.rtc.time.Hour != 11 {
		t.Errorf("hour = %d, want 11", h.rtc.time.Hour)
	}

	// Six Set presses cycle back to hour.
	for i := 0; i < 6; i++ {
		h.press(input.Set)
	}
	h.press(input.Start)
	if h.rtc.time.Hour != 12 {
		t.Errorf("hour = %d, want 12", h.rtc.time.Hour)
	}
}

func TestTimeSetHoldRepeats(t *testing.T) {
	h := newHarness(t)
	h.goTo(TimeSet)

	h.press(input.Start)
	h.hold(input.Start)
	h.repeat(input.Start)
	h.repeat(input.Start)
	if h.rtc.time.Hour != 15 {
		t.Errorf("hour = %d, want 15", h.rtc.time.Hour)
	}
}

func TestTimeSetResyncsOnEntry(t *testing.T) {
	h := newHarness(t)
	h.goTo(TimeSet)
	h.press(input.Start) // 13:34:56

	h.goTo(Clock)
	// Leaving through Setup wrote its own preset; the chip is now the truth.
	h.rtc.time = calendar.Time{Hour: 8, Minute: 0, Second: 0}
	h.goTo(TimeSet)

	if h.rtc.time.Hour != 8 {
		t.Errorf("re-entry rolled the clock back to hour %d", h.rtc.time.Hour)
	}
}

func TestTimeSetWaitsForRead(t *testing.T) {
	h := newHarness(t)
	h.rtc.readErr = errBus
	h.goTo(TimeSet)

	writes := h.rtc.timeWrites
	h.press(input.Start)
	if h.rtc.timeWrites != writes {
		t.Error("pushed staging that was never read from the chip")
	}

	h.rtc.readErr = nil
	h.idle()
	if h.rtc.timeWrites != writes {
		t.Error("retried the chip between ticks")
	}
	h.tick()
	if h.rtc.timeWrites == writes {
		t.Error("no push after the read recovered")
	}
	if h.rtc.time != (calendar.Time{Hour: 12, Minute: 34, Second: 56}) {
		t.Errorf("rtc time = %+v", h.rtc.time)
	}
}

func TestSetupKeepsStagingAcrossVisits(t *testing.T) {
	h := newHarness(t)
	h.goTo(Setup)

	// Setup starts from its preset, not the chip.
	if h.rtc.time != (calendar.Time{Hour: 12}) || h.rtc.date != (calendar.Date{Day: 1, Month: 1, Year: 2024}) {
		t.Fatalf("rtc = %+v %+v", h.rtc.time, h.rtc.date)
	}
	h.press(input.Set)
	h.press(input.Start) // minute 01

	h.goTo(Clock)
	h.rtc.time = calendar.Time{Hour: 9}
	h.goTo(Setup)

	if h.rtc.time != (calendar.Time{Hour: 12, Minute: 1}) {
		t.Errorf("rtc time = %+v, want 12:01:00", h.rtc.time)
	}
	if h.c.Snapshot().EditField != "minute" {
		t.Errorf("field = %q, want minute", h.c.Snapshot().EditField)
	}
}

func TestEditModeNarrowDisplayShowsFullDate(t *testing.T) {
	h := newHarness(t)
	h.goTo(TimeSet)

	if got := h.row(1); got != "12:34:56 15/01  " {
		t.Errorf("row 1 = %q", got)
	}
	for i := 0; i < 3; i++ {
		h.press(input.Set)
	}
	if got := h.row(1); got != "15/01/2024      " {
		t.Errorf("row 1 with day selected = %q", got)
	}
}

func TestAlarmSetStepsAndEnables(t *testing.T) {
	h := newHarness(t)
	h.goTo(AlarmSet)

	if got := h.row(1); got != "Alarm: 06:30 OFF" {
		t.Errorf("row 1 = %q", got)
	}

	events := h.press(input.Start)
	if countEvents(events, EventAlarmEnabled) != 1 {
		t.Errorf("events = %+v", events)
	}
	a := h.c.Alarm()
	if a.Hour() != 7 || a.Minute() != 30 || !a.Enabled() {
		t.Errorf("alarm = %02d:%02d enabled=%v", a.Hour(), a.Minute(), a.Enabled())
	}
	if got := h.row(1); got != "Alarm: 07:30  ON" {
		t.Errorf("row 1 = %q", got)
	}

	// Already enabled: no second event.
	if n := countEvents(h.press(input.Stop), EventAlarmEnabled); n != 0 {
		t.Errorf("re-enabled event count = %d", n)
	}
	if a.Hour() != 6 {
		t.Errorf("hour = %d, want 6", a.Hour())
	}

	// Set moves to the minute field.
	h.press(input.Set)
	h.idle()
	h.press(input.Stop)
	if a.Minute() != 29 {
		t.Errorf("minute = %d, want 29", a.Minute())
	}
}

func TestAlarmSetLongPressToggles(t *testing.T) {
	h := newHarness(t)
	h.goTo(AlarmSet)
	a := h.c.Alarm()

	// First detection cycles the field, the third toggles.
	h.press(input.Set)
	h.hold(input.Set)
	h.repeat(input.Set)
	if a.Enabled() {
		t.Fatal("toggled after two detections")
	}
	events := h.repeat(input.Set)
	if !a.Enabled() || countEvents(events, EventAlarmEnabled) != 1 {
		t.Fatalf("enabled=%v events=%+v", a.Enabled(), events)
	}

	// Further repeats while still held do nothing.
	h.repeat(input.Set)
	h.repeat(input.Set)
	h.repeat(input.Set)
	if !a.Enabled() {
		t.Error("held press toggled again")
	}
	if h.c.Snapshot().EditField != "minute" {
		t.Errorf("field = %q, want minute", h.c.Snapshot().EditField)
	}

	// Release, then a second long press turns it off.
	h.idle()
	h.press(input.Set)
	h.repeat(input.Set)
	events = h.repeat(input.Set)
	if a.Enabled() || countEvents(events, EventAlarmDisabled) != 1 {
		t.Errorf("enabled=%v events=%+v", a.Enabled(), events)
	}
}

func TestAlarmSetShortPressesDoNotToggle(t *testing.T) {
	h := newHarness(t)
	h.goTo(AlarmSet)

	for i := 0; i < 5; i++ {
		h.press(input.Set)
		h.idle()
	}
	if h.c.Alarm().Enabled() {
		t.Error("short presses toggled the alarm")
	}
}

func TestAlarmFiresOnceAndBeeps(t *testing.T) {
	h := newHarness(t)
	a := h.c.Alarm()
	a.Enable()

	h.rtc.time = calendar.Time{Hour: 6, Minute: 30}
	events := h.tick()
	if countEvents(events, EventAlarmFired) != 1 {
		t.Fatalf("events = %+v", events)
	}
	if h.snd.BeepCount() != 1 || h.snd.Beeps[0] != sounder.AlertDuration {
		t.Fatalf("beeps = %v", h.snd.Beeps)
	}

	for s := 1; s < 60; s++ {
		h.rtc.time.Second = s
		if n := countEvents(h.tick(), EventAlarmFired); n != 0 {
			t.Fatalf("re-fired at second %d", s)
		}
	}
	if h.snd.BeepCount() != 1 {
		t.Errorf("beeps = %d, want 1", h.snd.BeepCount())
	}
	if !a.Triggered() {
		t.Error("alarm should stay triggered until stopped")
	}
}

func TestClockStopSilencesAlarm(t *testing.T) {
	h := newHarness(t)
	h.c.Alarm().Enable()
	h.rtc.time = calendar.Time{Hour: 6, Minute: 30}
	h.tick()

	events := h.press(input.Stop)
	if countEvents(events, EventAlarmStopped) != 1 {
		t.Fatalf("events = %+v", events)
	}
	if h.snd.Offs != 1 {
		t.Errorf("sounder offs = %d", h.snd.Offs)
	}
	if h.c.Alarm().State() != timers.AlarmArmed {
		t.Errorf("state = %v", h.c.Alarm().State())
	}

	// Same minute: no re-fire. Next day at 06:30: fires again.
	h.tick()
	h.rtc.time = calendar.Time{Hour: 6, Minute: 31}
	h.tick()
	h.rtc.time = calendar.Time{Hour: 6, Minute: 30}
	if countEvents(h.tick(), EventAlarmFired) != 1 {
		t.Error("alarm did not fire the next time round")
	}

	// Silence it again; a second Stop with nothing triggered does nothing.
	h.press(input.Stop)
	if n := countEvents(h.press(input.Stop), EventAlarmStopped); n != 0 {
		t.Errorf("stop events = %d", n)
	}
}

func TestStopwatchMode(t *testing.T) {
	h := newHarness(t)
	h.goTo(Stopwatch)

	if got := h.row(1); got != "Time: 00:00:00  " {
		t.Errorf("row 1 = %q", got)
	}
	h.press(input.Start)
	h.tick()
	h.tick()
	if got := h.row(1); got != "Time: 00:00:02  " {
		t.Errorf("row 1 = %q", got)
	}

	h.press(input.Start) // stop
	h.tick()
	if got := h.c.Stopwatch().Elapsed().Seconds; got != 2 {
		t.Errorf("seconds = %d, want 2", got)
	}

	h.press(input.Stop) // reset
	if got := h.row(1); got != "Time: 00:00:00  " {
		t.Errorf("row 1 after reset = %q", got)
	}
}

func TestStopwatchSaturationEvent(t *testing.T) {
	h := newHarness(t)
	h.goTo(Stopwatch)
	h.press(input.Start)

	for i := 0; i < 100*3600; i++ {
		events := h.c.Pass(input.Snapshot{}, true, h.now)
		if n := countEvents(events, EventStopwatchSaturated); n > 0 {
			if i != 100*3600-1 {
				t.Fatalf("saturated at tick %d", i)
			}
		}
	}
	if h.c.Stopwatch().Running() {
		t.Error("stopwatch still running after saturation")
	}
	if got := h.row(1); got != "Time: 99:59:59  " {
		t.Errorf("row 1 = %q", got)
	}
}

func TestCountdownMode(t *testing.T) {
	h := newHarness(t)
	h.goTo(Countdown)

	if got := h.row(1); got != "Time: 02:00     " {
		t.Errorf("row 1 = %q", got)
	}

	// Stop adds a minute; Set switches to seconds.
	h.press(input.Stop)
	h.press(input.Set)
	h.press(input.Stop)
	if got := h.c.Countdown().Duration(); got != 181 {
		t.Errorf("duration = %d, want 181", got)
	}

	h.press(input.Start)
	h.press(input.Stop) // ignored while running
	if got := h.c.Countdown().Duration(); got != 181 {
		t.Errorf("duration changed while running: %d", got)
	}

	var finished int
	for i := 0; i < 200; i++ {
		finished += countEvents(h.tick(), EventCountdownFinished)
	}
	if finished != 1 {
		t.Errorf("finished events = %d, want 1", finished)
	}
	if h.snd.BeepCount() != 1 || len(h.snd.Tones) != 0 {
		t.Errorf("beeps = %d tones = %d, want a single beep", h.snd.BeepCount(), len(h.snd.Tones))
	}
	if h.c.Countdown().State() != timers.CountdownFinished {
		t.Errorf("state = %v", h.c.Countdown().State())
	}

	// Start does nothing until a new duration is set.
	h.press(input.Start)
	if h.c.Countdown().State() != timers.CountdownFinished {
		t.Error("Start left Finished")
	}
	h.press(input.Stop)
	if h.c.Countdown().State() != timers.CountdownStopped || h.c.Countdown().Remaining() != 182 {
		t.Errorf("after set: %v %d", h.c.Countdown().State(), h.c.Countdown().Remaining())
	}
}

func TestCountdownPauseResume(t *testing.T) {
	h := newHarness(t)
	h.goTo(Countdown)

	h.press(input.Start)
	h.tick()
	h.press(input.Start)
	h.tick()
	if got := h.c.Countdown().Remaining(); got != 119 {
		t.Errorf("remaining = %d, want 119", got)
	}
	h.press(input.Start)
	h.tick()
	if got := h.c.Countdown().Remaining(); got != 118 {
		t.Errorf("remaining = %d, want 118", got)
	}
}

func TestCountdownStopReloadsPausedCountdown(t *testing.T) {
	h := newHarness(t)
	h.goTo(Countdown)

	h.press(input.Start)
	h.tick()
	h.tick()
	h.press(input.Start) // pause at 01:58

	h.press(input.Stop)
	cd := h.c.Countdown()
	if cd.Remaining() != 120 || cd.Duration() != 120 {
		t.Errorf("after reload: remaining %d duration %d, want 120/120", cd.Remaining(), cd.Duration())
	}
	if got := h.row(1); got != "Time: 02:00     " {
		t.Errorf("row 1 = %q", got)
	}

	// Once reloaded, Stop adds again.
	h.press(input.Stop)
	if cd.Duration() != 180 {
		t.Errorf("duration = %d, want 180", cd.Duration())
	}
}

func TestCountdownToneAlert(t *testing.T) {
	rtc := &fakeRTC{
		time: calendar.Time{Hour: 12},
		date: calendar.Date{Day: 1, Month: 1, Year: 2026},
	}
	snd := sounder.NewFakeSounder()
	cfg := DefaultConfig()
	cfg.CountdownDefault = 2
	cfg.CountdownTone = 2000
	c := New(cfg, rtc, display.NewFakeDisplay(display.DefaultWidth), snd)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	c.Countdown().Start()
	for i := 0; i < 3; i++ {
		now = now.Add(time.Second)
		c.Pass(input.Snapshot{}, true, now)
	}

	if len(snd.Tones) != 1 || snd.Tones[0] != (sounder.ToneCall{Freq: 2000, Duration: sounder.AlertDuration}) {
		t.Errorf("tones = %+v", snd.Tones)
	}
	if snd.BeepCount() != 0 {
		t.Errorf("beeps = %d, want 0", snd.BeepCount())
	}
}

func TestCountdownSaturates(t *testing.T) {
	h := newHarness(t)
	h.goTo(Countdown)
	h.c.Countdown().Set(timers.MaxCountdown - 30)

	h.press(input.Stop)
	if got := h.c.Countdown().Duration(); got != timers.MaxCountdown {
		t.Errorf("duration = %d, want %d", got, timers.MaxCountdown)
	}
}

// TestEndToEndOverBus runs the controller against the real chip adapter on
// the emulated two-wire bus.
func TestEndToEndOverBus(t *testing.T) {
	lines := bus.NewFakeLines(rtc.Address)
	b, err := bus.New(lines, bus.WithDelay(func(time.Duration) {}))
	if err != nil {
		t.Fatalf("bus.New: %v", err)
	}
	dev := rtc.New(b)
	if err := dev.WriteTime(calendar.Time{Hour: 23, Minute: 59, Second: 59}); err != nil {
		t.Fatalf("WriteTime: %v", err)
	}
	if err := dev.WriteDate(calendar.Date{Day: 28, Month: 2, Year: 2024}); err != nil {
		t.Fatalf("WriteDate: %v", err)
	}

	disp := display.NewFakeDisplay(20)
	c := New(DefaultConfig(), dev, disp, sounder.NewFakeSounder())
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.Pass(input.Snapshot{}, false, now)

	if got := disp.Row(1); got != "23:59:59 28/02/2024 " {
		t.Errorf("row 1 = %q", got)
	}

	press := func(btn input.Button) {
		var in input.Snapshot
		in.Pressed[btn], in.Held[btn], in.Detected[btn] = true, true, true
		c.Pass(in, false, now)
	}

	press(input.Mode) // TimeSet
	press(input.Set)
	press(input.Set)
	press(input.Start) // second 59 -> 0
	press(input.Set)   // day
	press(input.Start) // 28 -> 29 (leap)

	got, err := dev.ReadTime()
	if err != nil {
		t.Fatalf("ReadTime: %v", err)
	}
	if got != (calendar.Time{Hour: 23, Minute: 59, Second: 0}) {
		t.Errorf("chip time = %+v", got)
	}
	gotDate, err := dev.ReadDate()
	if err != nil {
		t.Fatalf("ReadDate: %v", err)
	}
	if gotDate != (calendar.Date{Day: 29, Month: 2, Year: 2024}) {
		t.Errorf("chip date = %+v", gotDate)
	}

	// The chip going away surfaces as a single error event.
	lines.Absent = true
	events := c.Pass(input.Snapshot{}, true, now)
	if countEvents(events, EventRTCError) != 1 {
		t.Errorf("events = %+v", events)
	}
	if b.Stats().Nacks == 0 {
		t.Error("no NACKs counted")
	}
}
