package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/sweeney/desk-clock/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
	"onoff": func(b bool) string {
		if b {
			return "ON"
		}
		return "OFF"
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Desk Clock</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.lcd { background: #9c3; color: #123; padding: 8px 12px; font-size: 1.3em; white-space: pre; display: inline-block; }
.connected { color: green; }
.disconnected { color: red; }
.live-dot { display: inline-block; width: 8px; height: 8px; border-radius: 50%; margin-left: 6px; vertical-align: middle; }
.live-dot.ok { background: green; }
.live-dot.err { background: red; }
.live-dot.pending { background: orange; }
</style>
</head>
<body>
<h1>Desk Clock<span id="live-dot" class="live-dot pending" title="connecting"></span></h1>

<div class="lcd"><div id="row0">{{index .Clock.Display 0}}</div><div id="row1">{{index .Clock.Display 1}}</div></div>

<h2>Clock</h2>
<table>
<tr><th>Mode</th><td id="mode">{{.Status.ModeLabel}}</td></tr>
<tr><th>Time</th><td id="time">{{.Status.Time}}</td></tr>
<tr><th>Date</th><td id="date">{{.Status.Date}}</td></tr>
<tr><th>RTC</th><td id="rtc" class="{{if .Clock.ClockOK}}connected{{else}}disconnected{{end}}">{{if .Clock.ClockOK}}ok{{else}}error{{end}}</td></tr>
</table>

<h2>Timers</h2>
<table>
<tr><th>Alarm</th><td id="alarm">{{.Status.Alarm.Time}} {{onoff .Clock.AlarmEnabled}} ({{.Clock.AlarmState}})</td></tr>
<tr><th>Stopwatch</th><td id="stopwatch">{{.Clock.StopwatchElapsed}}{{if .Clock.StopwatchRunning}} running{{end}}</td></tr>
<tr><th>Countdown</th><td id="countdown">{{.Status.Countdown.Display}} ({{.Clock.CountdownState}})</td></tr>
</table>

<h2>Connectivity</h2>
<table>
<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}</td></tr>
<tr><th>Broker</th><td>{{.Config.Broker}}</td></tr>
<tr><th>Topic</th><td>{{.Config.Topic}}</td></tr>
<tr><th>Bus</th><td>{{.Bus.Transactions}} transactions, {{.Bus.Nacks}} NACK, {{.Bus.Errors}} errors</td></tr>
</table>

<h2>System</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
<tr><th>Session</th><td>{{.SessionID}}</td></tr>
{{if .Config.Display}}<tr><th>Display</th><td>{{.Config.Display}}</td></tr>{{end}}
<tr><th>Lockout</th><td>{{.Config.LockoutMs}}ms</td></tr>
<tr><th>Alert</th><td>{{.Config.AlertMs}}ms</td></tr>
<tr><th>Heartbeat</th><td>{{if eq .Config.HeartbeatMs 0}}disabled{{else}}{{.Config.HeartbeatMs}}ms{{end}}</td></tr>
<tr><th>HTTP</th><td>{{.Config.HTTPPort}}</td></tr>
</table>

<p><a href="/index.json">JSON</a> <a href="/metrics">metrics</a></p>
<script>
(function() {
  var dot = document.getElementById("live-dot");
  function set(id, text) { document.getElementById(id).textContent = text; }
  function setDot(cls, title) { dot.className = "live-dot " + cls; dot.title = title; }

  function connect() {
    var scheme = location.protocol === "https:" ? "wss://" : "ws://";
    var ws = new WebSocket(scheme + location.host + "/ws");
    ws.onopen = function() { setDot("ok", "live"); };
    ws.onclose = function() { setDot("err", "offline"); setTimeout(connect, 5000); };
    ws.onmessage = function(m) {
      try {
        var msg = JSON.parse(m.data);
        if (msg.topic !== "status") { return; }
        var s = msg.data.status;
        set("row0", s.display[0]);
        set("row1", s.display[1]);
        set("mode", s.mode_label);
        set("time", s.time);
        set("date", s.date);
        set("rtc", s.clock_ok ? "ok" : "error");
        set("alarm", s.alarm.time + " " + (s.alarm.enabled ? "ON" : "OFF") + " (" + s.alarm.state + ")");
        set("stopwatch", s.stopwatch.elapsed + (s.stopwatch.running ? " running" : ""));
        set("countdown", s.countdown.display + " (" + s.countdown.state + ")");
      } catch (e) {}
    };
  }
  connect();
})();
</script>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	// The template needs method results as fields.
	data := struct {
		status.Snapshot
		Uptime time.Duration
		Status status.StatusInner
	}{
		Snapshot: snap,
		Uptime:   snap.Uptime(),
		Status:   status.Inner(snap),
	}
	indexTmpl.Execute(w, data)
}
