package mode

import (
	"log"

	"github.com/sweeney/desk-clock/internal/calendar"
	"github.com/sweeney/desk-clock/internal/input"
)

// handler is one mode's behaviour. Only the edit modes carry state.
type handler interface {
	// enter runs when the mode becomes active.
	enter(c *Controller)
	// handle acts on this pass's buttons.
	handle(c *Controller, in input.Snapshot)
	// row returns the bottom display row for a display w columns wide.
	row(c *Controller, w int) string
}

// clockMode shows the wall clock. Stop silences a triggered alarm.
type clockMode struct{}

func (m *clockMode) enter(c *Controller) {}

func (m *clockMode) handle(c *Controller, in input.Snapshot) {
	if !in.Pressed[input.Stop] {
		return
	}
	if c.alarm.Stop() {
		if err := c.sound.Off(); err != nil {
			log.Printf("sounder: off failed: %v", err)
		}
		c.emit(EventAlarmStopped, calendar.FormatHourMin(c.alarm.Hour(), c.alarm.Minute()))
		c.dirty = true
	}
}

func (m *clockMode) row(c *Controller, w int) string {
	return timeDateRow(c.now, c.today, w)
}

// editFields is the Set-button order of the time and date edit modes.
var editFields = []calendar.Field{
	calendar.FieldHour,
	calendar.FieldMinute,
	calendar.FieldSecond,
	calendar.FieldDay,
	calendar.FieldMonth,
	calendar.FieldYear,
}

// editMode stages a time and date and pushes them to the clock chip on
// every pass. TimeSet (resync) reloads the staging from the chip on each
// entry and pushes nothing until that read succeeds; Setup keeps its
// staging across visits.
type editMode struct {
	mode   Mode
	resync bool
	synced bool
	field  int
	stage  calendar.Stage
}

func (m *editMode) enter(c *Controller) {
	if m.resync {
		m.synced = false
		m.load(c)
	}
}

// load copies the chip's current time and date into the staging.
func (m *editMode) load(c *Controller) {
	if !c.retryAllowed() {
		return
	}
	t, err := c.rtc.ReadTime()
	if err != nil {
		c.rtcFailure("read time", err)
		return
	}
	d, err := c.rtc.ReadDate()
	if err != nil {
		c.rtcFailure("read date", err)
		return
	}
	c.rtcSuccess()
	m.stage = calendar.Stage{Time: t, Date: d}
	m.synced = true
	c.dirty = true
}

func (m *editMode) handle(c *Controller, in input.Snapshot) {
	if m.resync && !m.synced {
		m.load(c)
		if !m.synced {
			return
		}
	}

	f := editFields[m.field]
	if in.Pressed[input.Set] {
		m.field = (m.field + 1) % len(editFields)
		c.dirty = true
	}
	if in.Detected[input.Start] {
		m.stage.Increment(f)
		c.dirty = true
	}
	if in.Detected[input.Stop] {
		m.stage.Decrement(f)
		c.dirty = true
	}

	c.push(m.stage)
}

func (m *editMode) selected() calendar.Field {
	return editFields[m.field]
}

func (m *editMode) row(c *Controller, w int) string {
	if m.selected().IsDate() && w < dateCol+len("DD/MM/YYYY") {
		return pad(calendar.FormatDate(m.stage.Date), w)
	}
	return timeDateRow(m.stage.Time, m.stage.Date, w)
}

// alarmMode edits the alarm through timers.Alarm; it keeps no copy of the
// alarm time or enabled flag.
//
// Set cycles hour and minute on the first detection of a press. The third
// detection while still held (the debouncer repeats held buttons) toggles
// the alarm on or off; after that the press is spent until release.
type alarmMode struct {
	field    int // 0 hour, 1 minute
	setCount int
	spent    bool
}

func (m *alarmMode) enter(c *Controller) {
	m.setCount = 0
	m.spent = false
}

func (m *alarmMode) handle(c *Controller, in input.Snapshot) {
	switch {
	case !in.Held[input.Set] && !in.Detected[input.Set]:
		m.setCount = 0
		m.spent = false
	case in.Detected[input.Set] && !m.spent:
		m.setCount++
		switch {
		case m.setCount == 1:
			m.field = (m.field + 1) % 2
			c.dirty = true
		case m.setCount >= 3:
			c.alarm.Toggle()
			if c.alarm.Enabled() {
				c.emit(EventAlarmEnabled, calendar.FormatHourMin(c.alarm.Hour(), c.alarm.Minute()))
			} else {
				c.emit(EventAlarmDisabled, calendar.FormatHourMin(c.alarm.Hour(), c.alarm.Minute()))
			}
			m.setCount = 0
			m.spent = true
			c.dirty = true
		}
	}

	switch {
	case in.Detected[input.Start]:
		m.step(c, true)
	case in.Detected[input.Stop]:
		m.step(c, false)
	}
}

// step moves the selected alarm field and enables the alarm.
func (m *alarmMode) step(c *Controller, up bool) {
	h, mi := c.alarm.Hour(), c.alarm.Minute()
	switch {
	case m.field == 0 && up:
		h = calendar.IncHour(h)
	case m.field == 0:
		h = calendar.DecHour(h)
	case up:
		mi = calendar.IncMinute(mi)
	default:
		mi = calendar.DecMinute(mi)
	}
	// Values come from wrap arithmetic and are always in range.
	_ = c.alarm.Set(h, mi)

	if !c.alarm.Enabled() {
		c.alarm.Enable()
		c.emit(EventAlarmEnabled, calendar.FormatHourMin(h, mi))
	}
	c.dirty = true
}

func (m *alarmMode) row(c *Controller, w int) string {
	state := "OFF"
	if c.alarm.Enabled() {
		state = "ON"
	}
	line := newLine(w)
	line.put(0, "Alarm: "+calendar.FormatHourMin(c.alarm.Hour(), c.alarm.Minute()))
	line.put(w-len(state), state)
	return line.String()
}

// stopwatchMode: Start toggles run/stop, Stop resets.
type stopwatchMode struct{}

func (m *stopwatchMode) enter(c *Controller) {}

func (m *stopwatchMode) handle(c *Controller, in input.Snapshot) {
	if in.Pressed[input.Start] {
		if !c.stopwatch.Stop() {
			c.stopwatch.Start()
		}
		c.dirty = true
	}
	if in.Pressed[input.Stop] {
		c.stopwatch.Reset()
		c.dirty = true
	}
}

func (m *stopwatchMode) row(c *Controller, w int) string {
	return pad("Time: "+c.stopwatch.Elapsed().String(), w)
}

// countdownMode: Set picks minutes or seconds, Start toggles run/stop and
// Stop adds a minute or a second to the duration. Stop on a paused
// countdown reloads it from the duration instead. The duration lives in
// timers.Countdown, so additions are ignored while it runs.
type countdownMode struct {
	field int // 0 minutes, 1 seconds
}

func (m *countdownMode) enter(c *Controller) {}

func (m *countdownMode) handle(c *Controller, in input.Snapshot) {
	if in.Pressed[input.Set] {
		m.field = (m.field + 1) % 2
		c.dirty = true
	}
	if in.Pressed[input.Start] {
		if !c.countdown.Stop() {
			c.countdown.Start()
		}
		c.dirty = true
	}
	if in.Pressed[input.Stop] && c.countdown.Paused() {
		c.countdown.Reset()
		c.dirty = true
		return
	}
	if in.Detected[input.Stop] {
		step := 60
		if m.field == 1 {
			step = 1
		}
		c.countdown.Set(c.countdown.Duration() + step)
		c.dirty = true
	}
}

func (m *countdownMode) row(c *Controller, w int) string {
	return pad("Time: "+calendar.FormatMinSec(c.countdown.Remaining()), w)
}
