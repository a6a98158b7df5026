// Package metrics exposes controller and bus activity to Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sweeney/desk-clock/internal/bus"
	"github.com/sweeney/desk-clock/internal/mode"
)

// Registry holds all desk-clock metrics on a private prometheus registry.
type Registry struct {
	reg *prometheus.Registry

	// Controller
	Passes      prometheus.Counter
	Ticks       prometheus.Counter
	Events      *prometheus.CounterVec
	Mode        *prometheus.GaugeVec
	ClockOK     prometheus.Gauge
	AlarmArmed  prometheus.Gauge
	CountdownS  prometheus.Gauge
	StopwatchOn prometheus.Gauge
	StopwatchS  prometheus.Gauge

	// Buttons
	Presses *prometheus.CounterVec
}

// New creates the registry. stats is polled at scrape time for the bus counters.
func New(stats func() bus.Stats) *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	f := promauto.With(reg)

	r := &Registry{reg: reg}

	r.Passes = f.NewCounter(prometheus.CounterOpts{
		Name: "deskclock_passes_total",
		Help: "Main loop passes through the mode controller",
	})
	r.Ticks = f.NewCounter(prometheus.CounterOpts{
		Name: "deskclock_ticks_total",
		Help: "One-second ticks consumed by the controller",
	})
	r.Events = f.NewCounterVec(prometheus.CounterOpts{
		Name: "deskclock_events_total",
		Help: "Controller events by type",
	}, []string{"type"})
	r.Mode = f.NewGaugeVec(prometheus.GaugeOpts{
		Name: "deskclock_mode",
		Help: "1 for the active mode, 0 otherwise",
	}, []string{"mode"})
	r.ClockOK = f.NewGauge(prometheus.GaugeOpts{
		Name: "deskclock_rtc_ok",
		Help: "1 if the last RTC read succeeded",
	})
	r.AlarmArmed = f.NewGauge(prometheus.GaugeOpts{
		Name: "deskclock_alarm_enabled",
		Help: "1 if the alarm is enabled",
	})
	r.CountdownS = f.NewGauge(prometheus.GaugeOpts{
		Name: "deskclock_countdown_remaining_seconds",
		Help: "Seconds left on the countdown",
	})
	r.StopwatchOn = f.NewGauge(prometheus.GaugeOpts{
		Name: "deskclock_stopwatch_running",
		Help: "1 while the stopwatch runs",
	})
	r.StopwatchS = f.NewGauge(prometheus.GaugeOpts{
		Name: "deskclock_stopwatch_elapsed_seconds",
		Help: "Stopwatch reading in seconds",
	})
	r.Presses = f.NewCounterVec(prometheus.CounterOpts{
		Name: "deskclock_button_presses_total",
		Help: "Debounced button presses by button",
	}, []string{"button"})

	f.NewCounterFunc(prometheus.CounterOpts{
		Name: "deskclock_bus_transactions_total",
		Help: "Two-wire bus transactions",
	}, func() float64 { return float64(stats().Transactions) })
	f.NewCounterFunc(prometheus.CounterOpts{
		Name: "deskclock_bus_nacks_total",
		Help: "Two-wire bus transactions refused by the device",
	}, func() float64 { return float64(stats().Nacks) })
	f.NewCounterFunc(prometheus.CounterOpts{
		Name: "deskclock_bus_errors_total",
		Help: "Two-wire bus transactions that failed on a GPIO error",
	}, func() float64 { return float64(stats().Errors) })

	for m := mode.Mode(0); m < mode.NumModes; m++ {
		r.Mode.WithLabelValues(m.String())
	}
	return r
}

// WatchMQTT adds gauges polled from the MQTT publisher's offline buffer.
func (r *Registry) WatchMQTT(buffered func() int, dropped func() uint64) {
	f := promauto.With(r.reg)
	f.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "deskclock_mqtt_buffered_messages",
		Help: "Messages waiting for the broker connection",
	}, func() float64 { return float64(buffered()) })
	f.NewCounterFunc(prometheus.CounterOpts{
		Name: "deskclock_mqtt_dropped_messages_total",
		Help: "Buffered messages discarded because the buffer was full",
	}, func() float64 { return float64(dropped()) })
}

// ObservePass records one controller pass.
func (r *Registry) ObservePass(snap mode.Snapshot, tick bool, events []mode.Event) {
	r.Passes.Inc()
	if tick {
		r.Ticks.Inc()
	}
	for _, e := range events {
		r.Events.WithLabelValues(string(e.Type)).Inc()
	}

	for m := mode.Mode(0); m < mode.NumModes; m++ {
		r.Mode.WithLabelValues(m.String()).Set(boolFloat(m == snap.Mode))
	}
	r.ClockOK.Set(boolFloat(snap.ClockOK))
	r.AlarmArmed.Set(boolFloat(snap.AlarmEnabled))
	r.CountdownS.Set(float64(snap.CountdownRemaining))
	r.StopwatchOn.Set(boolFloat(snap.StopwatchRunning))
	r.StopwatchS.Set(float64(snap.StopwatchSeconds))
}

// ObservePress counts a debounced press.
func (r *Registry) ObservePress(button string) {
	r.Presses.WithLabelValues(button).Inc()
}

// Gatherer returns the underlying registry for tests and custom handlers.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// Handler serves the registry in the Prometheus text format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

func boolFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
