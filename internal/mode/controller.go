package mode

import (
	"log"
	"time"

	"github.com/sweeney/desk-clock/internal/calendar"
	"github.com/sweeney/desk-clock/internal/display"
	"github.com/sweeney/desk-clock/internal/input"
	"github.com/sweeney/desk-clock/internal/sounder"
	"github.com/sweeney/desk-clock/internal/timers"
)

// RTC is the battery-backed clock chip. *rtc.Device satisfies it.
type RTC interface {
	ReadTime() (calendar.Time, error)
	WriteTime(calendar.Time) error
	ReadDate() (calendar.Date, error)
	WriteDate(calendar.Date) error
}

// Config holds controller settings.
type Config struct {
	// AlertDuration is how long the sounder beeps for the alarm and the
	// countdown.
	AlertDuration time.Duration

	// CountdownDefault is the countdown duration in seconds at power-on.
	CountdownDefault int

	// CountdownTone, when positive, sounds the countdown alert as a tone
	// of that many hertz instead of a plain beep.
	CountdownTone int
}

// DefaultConfig returns the power-on settings.
func DefaultConfig() Config {
	return Config{
		AlertDuration:    sounder.AlertDuration,
		CountdownDefault: 120,
	}
}

// Controller owns the mode state and the timers. It is not safe for
// concurrent use; the main loop is its only caller. Use Snapshot to hand
// state to other goroutines.
type Controller struct {
	cfg   Config
	rtc   RTC
	disp  display.Display
	sound sounder.Sounder

	alarm     *timers.Alarm
	stopwatch *timers.Stopwatch
	countdown *timers.Countdown

	handlers [NumModes]handler
	mode     Mode

	// Last known wall clock. Kept when a read fails.
	now   calendar.Time
	today calendar.Date

	needClock bool // no read attempted yet
	ticking   bool // this pass carries a tick
	dirty     bool
	cleared   bool
	rtcFailed bool

	passTime time.Time
	events   []Event
}

// New creates a controller in Clock mode. Nothing touches the hardware
// until the first Pass.
func New(cfg Config, rtc RTC, disp display.Display, sound sounder.Sounder) *Controller {
	c := &Controller{
		cfg:       cfg,
		rtc:       rtc,
		disp:      disp,
		sound:     sound,
		alarm:     timers.NewAlarm(),
		stopwatch: &timers.Stopwatch{},
		countdown: &timers.Countdown{},
		mode:      Clock,
		today:     calendar.DefaultStage.Date,
		needClock: true,
		dirty:     true,
	}
	c.countdown.Set(cfg.CountdownDefault)
	c.handlers = [NumModes]handler{
		Clock:     &clockMode{},
		TimeSet:   &editMode{mode: TimeSet, resync: true, stage: calendar.DefaultStage},
		AlarmSet:  &alarmMode{},
		Stopwatch: &stopwatchMode{},
		Countdown: &countdownMode{},
		Setup:     &editMode{mode: Setup, stage: calendar.DefaultStage},
	}
	return c
}

// Pass runs one loop iteration: mode switch, the active mode's buttons and
// clock push, the tick-driven timers when tick is set, then a render if
// anything changed. It returns the events raised during the pass.
func (c *Controller) Pass(in input.Snapshot, tick bool, now time.Time) []Event {
	c.events = nil
	c.passTime = now
	c.ticking = tick

	if in.Pressed[input.Mode] {
		c.switchTo(c.mode.Next())
		in = input.Snapshot{Held: in.Held}
	}

	c.handlers[c.mode].handle(c, in)

	if tick {
		c.tick()
	} else if c.needClock {
		c.readClock()
	}

	if c.dirty || tick {
		c.render()
	}

	return c.events
}

// switchTo changes mode. The next render clears the display first.
func (c *Controller) switchTo(m Mode) {
	prev := c.mode
	c.mode = m
	c.cleared = false
	c.dirty = true
	c.handlers[m].enter(c)
	c.emit(EventModeChanged, prev.String()+"->"+m.String())
}

// tick advances every timer once, whatever the active mode.
func (c *Controller) tick() {
	if c.stopwatch.Tick() {
		c.emit(EventStopwatchSaturated, c.stopwatch.Elapsed().String())
	}
	if c.countdown.Tick() {
		c.emit(EventCountdownFinished, calendar.FormatMinSec(c.countdown.Duration()))
		c.countdownAlert()
	}

	c.readClock()
	if c.alarm.Check(c.now) {
		c.emit(EventAlarmFired, calendar.FormatHourMin(c.alarm.Hour(), c.alarm.Minute()))
		c.beep()
	}
}

func (c *Controller) beep() {
	if err := c.sound.Beep(c.cfg.AlertDuration); err != nil {
		log.Printf("sounder: beep failed: %v", err)
	}
}

func (c *Controller) countdownAlert() {
	if c.cfg.CountdownTone <= 0 {
		c.beep()
		return
	}
	if err := c.sound.Tone(c.cfg.CountdownTone, c.cfg.AlertDuration); err != nil {
		log.Printf("sounder: tone failed: %v", err)
	}
}

// readClock refreshes the wall clock. On failure the last known value stays.
func (c *Controller) readClock() {
	c.needClock = false
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
	c.now = t
	c.today = d
	c.rtcSuccess()
}

// push writes a staged time and date. A failed time write skips the date.
func (c *Controller) push(s calendar.Stage) {
	if !c.retryAllowed() {
		return
	}
	if err := c.rtc.WriteTime(s.Time); err != nil {
		c.rtcFailure("write time", err)
		return
	}
	if err := c.rtc.WriteDate(s.Date); err != nil {
		c.rtcFailure("write date", err)
		return
	}
	c.rtcSuccess()
}

// retryAllowed reports whether the chip may be touched this pass. Once it
// has failed, it is retried only on ticks.
func (c *Controller) retryAllowed() bool {
	return !c.rtcFailed || c.ticking
}

// rtcFailure logs and raises an event only on the change from working to
// failing.
func (c *Controller) rtcFailure(op string, err error) {
	if c.rtcFailed {
		return
	}
	c.rtcFailed = true
	log.Printf("rtc: %s failed: %v", op, err)
	c.emit(EventRTCError, op+": "+err.Error())
}

func (c *Controller) rtcSuccess() {
	if !c.rtcFailed {
		return
	}
	c.rtcFailed = false
	log.Printf("rtc: recovered")
	c.emit(EventRTCRecovered, "")
}

func (c *Controller) emit(t EventType, detail string) {
	c.events = append(c.events, Event{
		Timestamp: c.passTime,
		Type:      t,
		Mode:      c.mode,
		Detail:    detail,
	})
}

// render draws both rows. Display errors are logged and retried next pass.
func (c *Controller) render() {
	if !c.cleared {
		if err := c.disp.Clear(); err != nil {
			log.Printf("display: clear failed: %v", err)
			return
		}
		c.cleared = true
	}

	rows := c.layout(c.disp.Width())
	for r, s := range rows {
		if err := c.disp.WriteAt(r, 0, s); err != nil {
			log.Printf("display: write row %d failed: %v", r, err)
			return
		}
	}
	c.dirty = false
}

// Mode returns the active mode.
func (c *Controller) Mode() Mode {
	return c.mode
}

// Alarm returns the alarm the controller drives.
func (c *Controller) Alarm() *timers.Alarm {
	return c.alarm
}

// Stopwatch returns the stopwatch the controller drives.
func (c *Controller) Stopwatch() *timers.Stopwatch {
	return c.stopwatch
}

// Countdown returns the countdown the controller drives.
func (c *Controller) Countdown() *timers.Countdown {
	return c.countdown
}
