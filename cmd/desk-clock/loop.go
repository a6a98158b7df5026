package main

import (
	"log"
	"os"
	"syscall"
	"time"

	"github.com/sweeney/desk-clock/internal/bus"
	"github.com/sweeney/desk-clock/internal/input"
	"github.com/sweeney/desk-clock/internal/metrics"
	"github.com/sweeney/desk-clock/internal/mode"
	"github.com/sweeney/desk-clock/internal/mqtt"
	"github.com/sweeney/desk-clock/internal/status"
	"github.com/sweeney/desk-clock/internal/tick"
)

// eventSink receives controller events for live web clients.
type eventSink interface {
	PublishEvent(mode.Event)
}

// loop is the single goroutine that owns the controller. Every optional
// collaborator may be nil.
type loop struct {
	reader    input.Reader
	debouncer *input.Debouncer
	ctl       *mode.Controller
	ticks     *tick.Flag

	publisher  mqtt.Publisher
	mqttStatus mqtt.ConnectionStatus
	web        eventSink
	tracker    *status.Tracker
	metrics    *metrics.Registry
	stats      func() bus.Stats

	heartbeat time.Duration
	now       func() time.Time

	readFailed bool
	lastBeat   time.Time
	started    bool
}

// run polls until a signal arrives, then publishes SHUTDOWN and returns.
func (l *loop) run(poll <-chan time.Time, sig <-chan os.Signal) error {
	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			l.publishShutdown(signalName(s))
			return nil

		case <-poll:
			l.pass()
		}
	}
}

// pass runs one loop iteration: sample, debounce, drive the controller,
// then fan the results out.
func (l *loop) pass() {
	t := l.now()
	if !l.started {
		l.started = true
		l.lastBeat = t
	}

	raw, err := l.reader.Read()
	if err != nil {
		// Treat a failed read as all released; log only the transition.
		if !l.readFailed {
			log.Printf("button read error: %v", err)
			l.readFailed = true
		}
		raw = input.Levels{}
	} else if l.readFailed {
		log.Printf("button read recovered")
		l.readFailed = false
	}

	in := l.debouncer.Process(raw, t)
	if l.metrics != nil {
		for b := input.Button(0); b < input.NumButtons; b++ {
			if in.Pressed[b] {
				l.metrics.ObservePress(b.String())
			}
		}
	}

	ticked := l.ticks.Take()
	events := l.ctl.Pass(in, ticked, t)

	for _, event := range events {
		log.Printf("event: %s mode=%s %s", event.Type, event.Mode, event.Detail)
		if l.publisher != nil {
			if err := l.publisher.Publish(event); err != nil {
				log.Printf("publish error: %v", err)
			}
		}
		if l.web != nil {
			l.web.PublishEvent(event)
		}
	}

	snap := l.ctl.Snapshot()
	l.updateTracker(snap)
	if l.metrics != nil {
		l.metrics.ObservePass(snap, ticked, events)
	}

	if l.heartbeat > 0 && t.Sub(l.lastBeat) >= l.heartbeat {
		l.lastBeat = t
		l.publishSystem("HEARTBEAT", "", false, t)
	}
}

func (l *loop) updateTracker(snap mode.Snapshot) {
	if l.tracker == nil {
		return
	}
	var stats bus.Stats
	if l.stats != nil {
		stats = l.stats()
	}
	l.tracker.Update(snap, stats)
	if l.mqttStatus != nil {
		l.tracker.SetMQTTConnected(l.mqttStatus.IsConnected())
	}
}

func (l *loop) publishStartup() {
	l.publishSystem("STARTUP", "", true, l.now())
}

func (l *loop) publishShutdown(reason string) {
	l.publishSystem("SHUTDOWN", reason, true, l.now())
}

// publishSystem sends a lifecycle event carrying the full status.
func (l *loop) publishSystem(name, reason string, retained bool, t time.Time) {
	if l.publisher == nil {
		return
	}
	event := mqtt.SystemEvent{
		Timestamp: t,
		Event:     name,
		Reason:    reason,
		Retained:  retained,
	}
	if l.tracker != nil {
		if l.mqttStatus != nil {
			l.tracker.SetMQTTConnected(l.mqttStatus.IsConnected())
		}
		event.RawPayload = status.FormatStatusEvent(l.tracker.Snapshot(), name, reason)
	}
	if err := l.publisher.PublishSystem(event); err != nil {
		log.Printf("failed to publish %s event: %v", name, err)
		return
	}
	log.Printf("published %s event", name)
}

func signalName(s os.Signal) string {
	switch s {
	case syscall.SIGINT:
		return "SIGINT"
	case syscall.SIGTERM:
		return "SIGTERM"
	}
	return "UNKNOWN"
}
