package config

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const board = `
gpio_chip = "gpiochip4"
bus {
  scl         = 2
  sda         = 3
  half_period = "10us"
}
buttons {
  mode    = 17
  lockout = "150ms"
}
display {
  type  = "oled"
  width = 20
}
buzzer {
  pin            = -1
  countdown_tone = 2000
}
countdown = 300
mqtt {
  broker    = ""
  topic     = "office/clock"
  heartbeat = "0s"
}
http = ":8080"
`

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestApplyBytes(t *testing.T) {
	c := Default()
	if err := c.ApplyBytes("board.hcl", []byte(board)); err != nil {
		t.Fatalf("ApplyBytes: %v", err)
	}

	if c.GPIOChip != "gpiochip4" {
		t.Errorf("GPIOChip = %q", c.GPIOChip)
	}
	if c.PinSCL != 2 || c.PinSDA != 3 {
		t.Errorf("bus pins = %d/%d, want 2/3", c.PinSCL, c.PinSDA)
	}
	if c.BusHalfPeriod != 10*time.Microsecond {
		t.Errorf("BusHalfPeriod = %v", c.BusHalfPeriod)
	}
	if c.Buttons[0] != 17 || c.Buttons[1] != 6 {
		t.Errorf("Buttons = %v, want mode overridden only", c.Buttons)
	}
	if c.Lockout != 150*time.Millisecond {
		t.Errorf("Lockout = %v", c.Lockout)
	}
	if c.DisplayKind != DisplayOLED || c.DisplayWidth != 20 || c.DisplayBus != 1 {
		t.Errorf("display = %s %d bus %d", c.DisplayKind, c.DisplayWidth, c.DisplayBus)
	}
	if c.BuzzerPin != -1 {
		t.Errorf("BuzzerPin = %d, want -1", c.BuzzerPin)
	}
	if c.CountdownTone != 2000 {
		t.Errorf("CountdownTone = %d", c.CountdownTone)
	}
	if c.AlertDuration != time.Second {
		t.Errorf("AlertDuration changed to %v", c.AlertDuration)
	}
	if c.CountdownDefault != 300 {
		t.Errorf("CountdownDefault = %d", c.CountdownDefault)
	}
	if c.Broker != "" || c.Heartbeat != 0 {
		t.Errorf("mqtt = %q %v, want disabled", c.Broker, c.Heartbeat)
	}
	if c.Topic != "office/clock" {
		t.Errorf("Topic = %q", c.Topic)
	}
	if c.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q", c.HTTPAddr)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestApplyBytesErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"syntax", `bus {`, "config"},
		{"unknown attribute", `volume = 11`, "volume"},
		{"bad duration", `buttons { lockout = "soon" }`, "buttons.lockout"},
		{"wrong type", `countdown = "two minutes"`, "config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			err := c.ApplyBytes("board.hcl", []byte(tt.src))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"shared pin", func(c *Config) { c.Buttons[2] = c.PinSCL }},
		{"pin out of range", func(c *Config) { c.PinSDA = 60 }},
		{"buzzer on button", func(c *Config) { c.BuzzerPin = c.Buttons[0] }},
		{"rtc address", func(c *Config) { c.RTCAddress = 0x80 }},
		{"zero lockout", func(c *Config) { c.Lockout = 0 }},
		{"zero alert", func(c *Config) { c.AlertDuration = 0 }},
		{"countdown too long", func(c *Config) { c.CountdownDefault = 65536 }},
		{"negative tone", func(c *Config) { c.CountdownTone = -1 }},
		{"tone too high", func(c *Config) { c.CountdownTone = 20000 }},
		{"narrow display", func(c *Config) { c.DisplayWidth = 4 }},
		{"too narrow for the mode tag", func(c *Config) { c.DisplayWidth = 12 }},
		{"wide display", func(c *Config) { c.DisplayWidth = 41 }},
		{"negative width without a display", func(c *Config) {
			c.DisplayKind = DisplayNone
			c.DisplayWidth = -3
		}},
		{"narrow width without a display", func(c *Config) {
			c.DisplayKind = DisplayNone
			c.DisplayWidth = 8
		}},
		{"unknown display", func(c *Config) { c.DisplayKind = "vfd" }},
		{"wildcard topic", func(c *Config) { c.Topic = "home/#" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.modify(&c)
			if err := c.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestValidateDisabledBuzzerAndDisplay(t *testing.T) {
	c := Default()
	c.Broker = ""
	c.Topic = "" // unused without a broker
	c.BuzzerPin = -1
	c.DisplayKind = DisplayNone
	c.DisplayWidth = 0
	if err := c.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func newFlagSet(c *Config) *flag.FlagSet {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	c.RegisterFlags(fs)
	return fs
}

func writeBoard(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "board.hcl")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestResolveExplicitFlagsWin(t *testing.T) {
	c := Default()
	fs := newFlagSet(&c)
	if err := fs.Parse([]string{"-http", ":9000", "-lockout", "250ms"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	path := writeBoard(t, board)
	if err := Resolve(fs, &c, path); err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	// Flags beat the file.
	if c.HTTPAddr != ":9000" {
		t.Errorf("HTTPAddr = %q, want :9000", c.HTTPAddr)
	}
	if c.Lockout != 250*time.Millisecond {
		t.Errorf("Lockout = %v, want 250ms", c.Lockout)
	}
	// The file beats defaults.
	if c.CountdownDefault != 300 {
		t.Errorf("CountdownDefault = %d, want 300", c.CountdownDefault)
	}
	if c.PinSCL != 2 {
		t.Errorf("PinSCL = %d, want 2", c.PinSCL)
	}
}

func TestResolveWithoutFile(t *testing.T) {
	c := Default()
	fs := newFlagSet(&c)
	if err := fs.Parse([]string{"-display-width", "20", "-countdown", "60"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := Resolve(fs, &c, ""); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if c.DisplayWidth != 20 || c.CountdownDefault != 60 {
		t.Errorf("got width %d countdown %d", c.DisplayWidth, c.CountdownDefault)
	}
}

func TestResolveMissingFile(t *testing.T) {
	c := Default()
	fs := newFlagSet(&c)
	fs.Parse(nil)
	if err := Resolve(fs, &c, filepath.Join(t.TempDir(), "absent.hcl")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestResolveRejectsInvalidResult(t *testing.T) {
	c := Default()
	fs := newFlagSet(&c)
	fs.Parse([]string{"-pin-sda", "23"})
	if err := Resolve(fs, &c, ""); err == nil {
		t.Error("expected shared-pin error")
	}
}

func TestDisplayDescription(t *testing.T) {
	c := Default()
	if got := c.DisplayDescription(); got != "lcd 16x2 i2c-1@0x3E" {
		t.Errorf("DisplayDescription = %q", got)
	}
	c.DisplayKind = DisplayNone
	if got := c.DisplayDescription(); got != "none" {
		t.Errorf("DisplayDescription = %q", got)
	}
}
