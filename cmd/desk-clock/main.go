// Command desk-clock runs a four-button desk clock: an RTC on a bit-banged
// two-wire bus, a character display, a buzzer, and MQTT and HTTP status.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/sweeney/desk-clock/internal/bus"
	"github.com/sweeney/desk-clock/internal/calendar"
	"github.com/sweeney/desk-clock/internal/config"
	"github.com/sweeney/desk-clock/internal/display"
	"github.com/sweeney/desk-clock/internal/input"
	"github.com/sweeney/desk-clock/internal/metrics"
	"github.com/sweeney/desk-clock/internal/mode"
	"github.com/sweeney/desk-clock/internal/mqtt"
	"github.com/sweeney/desk-clock/internal/rtc"
	"github.com/sweeney/desk-clock/internal/sounder"
	"github.com/sweeney/desk-clock/internal/status"
	"github.com/sweeney/desk-clock/internal/tick"
	"github.com/sweeney/desk-clock/internal/web"
)

// pollInterval is how often the main loop samples the buttons.
const pollInterval = 10 * time.Millisecond

// Banner text shown while the daemon starts.
const (
	bannerTitle = "RTC System v1.0"
	bannerBody  = "Initializing..."
)

type options struct {
	cfg        config.Config
	configPath string
	printTime  bool
	setTime    string
	setDate    string
}

func main() {
	opts, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("fatal: %v", err)
	}
	if err := run(opts); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func parseFlags(fs *flag.FlagSet, args []string) (options, error) {
	opts := options{cfg: config.Default()}
	opts.cfg.RegisterFlags(fs)
	fs.StringVar(&opts.configPath, "config", "", "HCL board file (flags given explicitly override it)")
	fs.BoolVar(&opts.printTime, "print-time", false, "Print the RTC time and date and exit")
	fs.StringVar(&opts.setTime, "set-time", "", "Write HH:MM:SS to the RTC and exit")
	fs.StringVar(&opts.setDate, "set-date", "", "Write DD/MM/YYYY to the RTC and exit")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if err := config.Resolve(fs, &opts.cfg, opts.configPath); err != nil {
		return opts, err
	}
	return opts, nil
}

func run(opts options) error {
	cfg := opts.cfg

	// Initialize the RTC bus
	lines, err := bus.NewRealLines(cfg.GPIOChip, cfg.PinSCL, cfg.PinSDA)
	if err != nil {
		return fmt.Errorf("init rtc bus: %w", err)
	}
	b, err := bus.New(lines, bus.WithHalfPeriod(cfg.BusHalfPeriod))
	if err != nil {
		lines.Close()
		return fmt.Errorf("init rtc bus: %w", err)
	}
	defer b.Close()

	clock := rtc.New(b)
	clock.Address = uint8(cfg.RTCAddress)
	if halted, err := clock.Halted(); err != nil {
		log.Printf("rtc: cannot read halt flag: %v", err)
	} else if halted {
		log.Printf("rtc: oscillator halted; set the time to start it")
	}

	// One-shot modes
	if opts.printTime {
		return printTime(os.Stdout, clock)
	}
	if opts.setTime != "" || opts.setDate != "" {
		return setClock(clock, opts.setTime, opts.setDate)
	}

	disp, closeDisplay, err := openDisplay(cfg)
	if err != nil {
		return err
	}
	defer closeDisplay()
	showBanner(disp, cfg.Banner)

	sound, closeSound, err := openSounder(cfg)
	if err != nil {
		return err
	}
	defer closeSound()

	reader, err := input.NewRealReader(cfg.GPIOChip, cfg.Buttons)
	if err != nil {
		return fmt.Errorf("init buttons: %w", err)
	}
	defer reader.Close()

	ctl := mode.New(mode.Config{
		AlertDuration:    cfg.AlertDuration,
		CountdownDefault: cfg.CountdownDefault,
		CountdownTone:    cfg.CountdownTone,
	}, clock, disp, sound)

	// Initialize status tracker (before STARTUP so snapshot is available)
	sessionID := uuid.NewString()
	tracker := status.NewTracker(time.Now(), sessionID, status.Config{
		Broker:      cfg.Broker,
		Topic:       cfg.Topic,
		HTTPPort:    cfg.HTTPAddr,
		Display:     cfg.DisplayDescription(),
		LockoutMs:   cfg.Lockout.Milliseconds(),
		AlertMs:     cfg.AlertDuration.Milliseconds(),
		HeartbeatMs: cfg.Heartbeat.Milliseconds(),
	})

	reg := metrics.New(b.Stats)

	l := &loop{
		reader:    reader,
		debouncer: input.NewDebouncer(cfg.Lockout),
		ctl:       ctl,
		ticks:     &tick.Flag{},
		tracker:   tracker,
		metrics:   reg,
		stats:     b.Stats,
		heartbeat: cfg.Heartbeat,
		now:       time.Now,
	}

	// Initialize MQTT
	if cfg.Broker != "" {
		publisher := mqtt.NewRealPublisher(cfg.Broker, "desk-clock-"+sessionID[:8], mqtt.NewTopics(cfg.Topic))
		defer publisher.Close()
		reg.WatchMQTT(publisher.Buffered, publisher.Dropped)
		l.publisher = publisher
		l.mqttStatus = publisher
	} else {
		log.Printf("mqtt disabled")
	}

	// Start HTTP status server
	if cfg.HTTPAddr != "" {
		srv := web.New(cfg.HTTPAddr, tracker, reg.Handler())
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		l.web = srv
		log.Printf("http status server listening on %s", cfg.HTTPAddr)
	}

	l.publishStartup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go tick.Run(ctx, l.ticks, tick.Period)

	log.Printf("started: session=%s display=%s lockout=%v broker=%q heartbeat=%v",
		sessionID, cfg.DisplayDescription(), cfg.Lockout, cfg.Broker, cfg.Heartbeat)

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return l.run(ticker.C, sigCh)
}

func openDisplay(cfg config.Config) (display.Display, func(), error) {
	var offset byte
	switch cfg.DisplayKind {
	case config.DisplayNone:
		// Keep a buffer so the status page still shows the rows.
		return display.NewFakeDisplay(cfg.DisplayWidth), func() {}, nil
	case config.DisplayOLED:
		offset = display.RowOffsetOLED
	default:
		offset = display.RowOffsetLCD
	}

	lcd, err := display.OpenLCD(uint8(cfg.DisplayAddress), cfg.DisplayBus, cfg.DisplayWidth, offset)
	if err != nil {
		return nil, nil, fmt.Errorf("init display: %w", err)
	}
	return lcd, func() { lcd.Close() }, nil
}

func openSounder(cfg config.Config) (sounder.Sounder, func(), error) {
	if cfg.BuzzerPin < 0 {
		log.Printf("buzzer disabled")
		return sounder.NewFakeSounder(), func() {}, nil
	}
	bz, err := sounder.OpenGPIOBuzzer(cfg.BuzzerPin)
	if err != nil {
		return nil, nil, fmt.Errorf("init buzzer: %w", err)
	}
	return bz, func() { bz.Close() }, nil
}

// showBanner writes the startup text and holds it for d. Failures are logged;
// the controller clears and redraws on its first pass.
func showBanner(disp display.Display, d time.Duration) {
	if err := disp.Clear(); err != nil {
		log.Printf("display: banner: %v", err)
		return
	}
	disp.WriteAt(0, 0, bannerTitle)
	disp.WriteAt(1, 0, bannerBody)
	time.Sleep(d)
}

func printTime(w io.Writer, clock mode.RTC) error {
	t, err := clock.ReadTime()
	if err != nil {
		return fmt.Errorf("read time: %w", err)
	}
	d, err := clock.ReadDate()
	if err != nil {
		return fmt.Errorf("read date: %w", err)
	}
	fmt.Fprintf(w, "%s %s\n", calendar.FormatTime(t), calendar.FormatDate(d))
	return nil
}

// setClock writes whichever of the time and date were given. Both are parsed
// before anything is written.
func setClock(clock mode.RTC, timeArg, dateArg string) error {
	var (
		t   calendar.Time
		d   calendar.Date
		err error
	)
	if timeArg != "" {
		if t, err = calendar.ParseTime(timeArg); err != nil {
			return err
		}
	}
	if dateArg != "" {
		if d, err = calendar.ParseDate(dateArg); err != nil {
			return err
		}
	}

	if timeArg != "" {
		if err := clock.WriteTime(t); err != nil {
			return fmt.Errorf("write time: %w", err)
		}
		log.Printf("rtc: time set to %s", calendar.FormatTime(t))
	}
	if dateArg != "" {
		if err := clock.WriteDate(d); err != nil {
			return fmt.Errorf("write date: %w", err)
		}
		log.Printf("rtc: date set to %s", calendar.FormatDate(d))
	}
	return nil
}
