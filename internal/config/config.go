// Package config holds the desk-clock settings. Defaults come from Default,
// an optional HCL board file overlays them, and flags given explicitly on
// the command line win over both.
package config

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/sweeney/desk-clock/internal/display"
	"github.com/sweeney/desk-clock/internal/input"
	"github.com/sweeney/desk-clock/internal/mqtt"
	"github.com/sweeney/desk-clock/internal/rtc"
	"github.com/sweeney/desk-clock/internal/sounder"
)

// Display kinds.
const (
	DisplayLCD  = "lcd"
	DisplayOLED = "oled"
	DisplayNone = "none"
)

// Config is the resolved daemon configuration.
type Config struct {
	GPIOChip string

	// Two-wire bus to the clock chip.
	PinSCL        int
	PinSDA        int
	BusHalfPeriod time.Duration
	RTCAddress    int

	// Buttons in Mode, Set, Start, Stop order.
	Buttons [input.NumButtons]int
	Lockout time.Duration

	DisplayKind    string
	DisplayBus     int
	DisplayAddress int
	DisplayWidth   int

	// BuzzerPin is a BCM pin; negative disables the buzzer.
	BuzzerPin        int
	AlertDuration    time.Duration
	CountdownTone    int // Hz; 0 beeps instead
	CountdownDefault int

	Broker    string // empty disables MQTT
	Topic     string
	Heartbeat time.Duration
	HTTPAddr  string // empty disables HTTP
	Banner    time.Duration
}

// Default returns the settings for the reference board.
func Default() Config {
	return Config{
		GPIOChip:         "gpiochip0",
		PinSCL:           23,
		PinSDA:           24,
		BusHalfPeriod:    5 * time.Microsecond,
		RTCAddress:       rtc.Address,
		Buttons:          [input.NumButtons]int{input.PinMode, input.PinSet, input.PinStart, input.PinStop},
		Lockout:          input.DefaultLockout,
		DisplayKind:      DisplayLCD,
		DisplayBus:       1,
		DisplayAddress:   0x3E,
		DisplayWidth:     16,
		BuzzerPin:        18,
		AlertDuration:    sounder.AlertDuration,
		CountdownDefault: 120,
		Broker:           "tcp://192.168.1.200:1883",
		Topic:            mqtt.DefaultTopicBase,
		Heartbeat:        15 * time.Minute,
		HTTPAddr:         ":80",
		Banner:           2 * time.Second,
	}
}

// RegisterFlags binds the settings to fs. Flag defaults are the current
// values of c.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.GPIOChip, "chip", c.GPIOChip, "GPIO chip name")
	fs.IntVar(&c.PinSCL, "pin-scl", c.PinSCL, "BCM pin for the RTC clock line")
	fs.IntVar(&c.PinSDA, "pin-sda", c.PinSDA, "BCM pin for the RTC data line")
	fs.DurationVar(&c.BusHalfPeriod, "bus-half-period", c.BusHalfPeriod, "RTC bus settle time per clock phase")
	fs.IntVar(&c.RTCAddress, "rtc-address", c.RTCAddress, "RTC 7-bit bus address")
	fs.IntVar(&c.Buttons[input.Mode], "pin-mode", c.Buttons[input.Mode], "BCM pin for the Mode button")
	fs.IntVar(&c.Buttons[input.Set], "pin-set", c.Buttons[input.Set], "BCM pin for the Set button")
	fs.IntVar(&c.Buttons[input.Start], "pin-start", c.Buttons[input.Start], "BCM pin for the Start button")
	fs.IntVar(&c.Buttons[input.Stop], "pin-stop", c.Buttons[input.Stop], "BCM pin for the Stop button")
	fs.DurationVar(&c.Lockout, "lockout", c.Lockout, "Button lockout after a press")
	fs.StringVar(&c.DisplayKind, "display", c.DisplayKind, `Display type ("lcd", "oled" or "none")`)
	fs.IntVar(&c.DisplayBus, "display-bus", c.DisplayBus, "I2C bus number of the display (/dev/i2c-N)")
	fs.IntVar(&c.DisplayAddress, "display-address", c.DisplayAddress, "Display I2C address")
	fs.IntVar(&c.DisplayWidth, "display-width", c.DisplayWidth, "Display columns")
	fs.IntVar(&c.BuzzerPin, "pin-buzzer", c.BuzzerPin, "BCM pin for the buzzer (-1 to disable)")
	fs.DurationVar(&c.AlertDuration, "alert", c.AlertDuration, "Alarm and countdown beep length")
	fs.IntVar(&c.CountdownTone, "countdown-tone", c.CountdownTone, "Countdown alert tone in Hz (0 for a plain beep)")
	fs.IntVar(&c.CountdownDefault, "countdown", c.CountdownDefault, "Countdown duration at power-on, in seconds")
	fs.StringVar(&c.Broker, "broker", c.Broker, "MQTT broker address (empty to disable)")
	fs.StringVar(&c.Topic, "topic", c.Topic, "MQTT topic prefix for events and system messages")
	fs.DurationVar(&c.Heartbeat, "heartbeat", c.Heartbeat, "Heartbeat interval (0 to disable)")
	fs.StringVar(&c.HTTPAddr, "http", c.HTTPAddr, "HTTP status address (empty to disable)")
	fs.DurationVar(&c.Banner, "banner", c.Banner, "Startup banner duration")
}

// Resolve overlays the board file at path onto c, then restores any flag
// that was set explicitly on fs. fs must already be parsed and bound to c.
func Resolve(fs *flag.FlagSet, c *Config, path string) error {
	if path != "" {
		explicit := map[string]string{}
		fs.Visit(func(f *flag.Flag) {
			explicit[f.Name] = f.Value.String()
		})

		if err := c.ApplyFile(path); err != nil {
			return err
		}

		for name, v := range explicit {
			if err := fs.Set(name, v); err != nil {
				return fmt.Errorf("flag -%s: %w", name, err)
			}
		}
	}
	return c.Validate()
}

// Validate reports the first setting that cannot work.
func (c Config) Validate() error {
	pins := map[int]string{}
	claim := func(pin int, name string) error {
		if pin < 0 || pin > 53 {
			return fmt.Errorf("config: %s pin %d out of range", name, pin)
		}
		if other, ok := pins[pin]; ok {
			return fmt.Errorf("config: %s and %s share pin %d", other, name, pin)
		}
		pins[pin] = name
		return nil
	}

	if err := claim(c.PinSCL, "scl"); err != nil {
		return err
	}
	if err := claim(c.PinSDA, "sda"); err != nil {
		return err
	}
	for b := input.Button(0); b < input.NumButtons; b++ {
		if err := claim(c.Buttons[b], b.String()); err != nil {
			return err
		}
	}
	if c.BuzzerPin >= 0 {
		if err := claim(c.BuzzerPin, "buzzer"); err != nil {
			return err
		}
	}

	switch {
	case c.RTCAddress < 0x08 || c.RTCAddress > 0x77:
		return fmt.Errorf("config: rtc address 0x%02X out of range", c.RTCAddress)
	case c.BusHalfPeriod < 0:
		return errors.New("config: negative bus half period")
	case c.Lockout <= 0:
		return errors.New("config: lockout must be positive")
	case c.AlertDuration <= 0:
		return errors.New("config: alert duration must be positive")
	case c.CountdownTone < 0 || c.CountdownTone > sounder.MaxToneHz:
		return fmt.Errorf("config: countdown tone %d Hz out of range", c.CountdownTone)
	case c.CountdownDefault < 0 || c.CountdownDefault > 65535:
		return fmt.Errorf("config: countdown %d out of range", c.CountdownDefault)
	case c.Heartbeat < 0:
		return errors.New("config: negative heartbeat")
	}

	if c.Broker != "" {
		if err := mqtt.ValidateTopicBase(c.Topic); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}

	switch c.DisplayKind {
	case DisplayLCD, DisplayOLED:
		if c.DisplayAddress < 0x08 || c.DisplayAddress > 0x77 {
			return fmt.Errorf("config: display address 0x%02X out of range", c.DisplayAddress)
		}
	case DisplayNone:
		// The in-memory grid takes the default width when none is given.
		if c.DisplayWidth == 0 {
			return nil
		}
	default:
		return fmt.Errorf("config: unknown display %q", c.DisplayKind)
	}
	if c.DisplayWidth < display.MinWidth || c.DisplayWidth > display.MaxWidth {
		return fmt.Errorf("config: display width %d out of range %d-%d", c.DisplayWidth, display.MinWidth, display.MaxWidth)
	}
	return nil
}

// DisplayDescription is a short human-readable summary for status pages.
func (c Config) DisplayDescription() string {
	if c.DisplayKind == DisplayNone {
		return DisplayNone
	}
	return fmt.Sprintf("%s %dx2 i2c-%d@0x%02X", c.DisplayKind, c.DisplayWidth, c.DisplayBus, c.DisplayAddress)
}
