package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/sweeney/desk-clock/internal/bus"
	"github.com/sweeney/desk-clock/internal/mode"
)

func TestObservePass(t *testing.T) {
	r := New(func() bus.Stats { return bus.Stats{} })

	snap := mode.Snapshot{Mode: mode.Countdown, ClockOK: true, CountdownRemaining: 42, AlarmEnabled: true, StopwatchSeconds: 3723}
	events := []mode.Event{
		{Type: mode.EventModeChanged},
		{Type: mode.EventCountdownFinished},
		{Type: mode.EventModeChanged},
	}
	r.ObservePass(snap, true, events)
	r.ObservePass(snap, false, nil)

	if got := testutil.ToFloat64(r.Passes); got != 2 {
		t.Errorf("passes = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.Ticks); got != 1 {
		t.Errorf("ticks = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.Events.WithLabelValues("MODE_CHANGED")); got != 2 {
		t.Errorf("MODE_CHANGED = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.Mode.WithLabelValues("COUNTDOWN")); got != 1 {
		t.Errorf("mode COUNTDOWN = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.Mode.WithLabelValues("CLOCK")); got != 0 {
		t.Errorf("mode CLOCK = %v, want 0", got)
	}
	if got := testutil.ToFloat64(r.CountdownS); got != 42 {
		t.Errorf("countdown = %v, want 42", got)
	}
	if got := testutil.ToFloat64(r.AlarmArmed); got != 1 {
		t.Errorf("alarm = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.StopwatchS); got != 3723 {
		t.Errorf("stopwatch = %v, want 3723", got)
	}
}

func TestModeGaugeCoversAllModes(t *testing.T) {
	r := New(func() bus.Stats { return bus.Stats{} })
	if n := testutil.CollectAndCount(r.Mode); n != mode.NumModes {
		t.Errorf("mode series = %d, want %d", n, mode.NumModes)
	}
}

func TestHandlerExposesBusCounters(t *testing.T) {
	stats := bus.Stats{Transactions: 17, Nacks: 3, Errors: 1}
	r := New(func() bus.Stats { return stats })
	r.WatchMQTT(func() int { return 4 }, func() uint64 { return 9 })
	r.ObservePress("MODE")

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	text := string(body)

	for _, want := range []string{
		"deskclock_bus_transactions_total 17",
		"deskclock_bus_nacks_total 3",
		"deskclock_bus_errors_total 1",
		"deskclock_mqtt_buffered_messages 4",
		"deskclock_mqtt_dropped_messages_total 9",
		`deskclock_button_presses_total{button="MODE"} 1`,
		"go_goroutines",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}

	// Counters are read at scrape time.
	stats.Nacks = 5
	rec = httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if !strings.Contains(rec.Body.String(), "deskclock_bus_nacks_total 5") {
		t.Error("bus counter not refreshed at scrape")
	}
}
