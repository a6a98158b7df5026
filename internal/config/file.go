package config

import (
	"fmt"
	"time"

	"github.com/hashicorp/hcl/v2/hclsimple"
)

// boardFile is the HCL schema. Every attribute is optional; absent ones
// leave the current value alone.
//
//	gpio_chip = "gpiochip0"
//	bus {
//	  scl         = 23
//	  sda         = 24
//	  half_period = "5us"
//	  rtc_address = 104
//	}
//	buttons {
//	  mode    = 5
//	  set     = 6
//	  start   = 13
//	  stop    = 19
//	  lockout = "200ms"
//	}
//	display {
//	  type    = "lcd"
//	  i2c_bus = 1
//	  address = 62
//	  width   = 16
//	}
//	buzzer {
//	  pin            = 18
//	  alert          = "1s"
//	  countdown_tone = 0
//	}
//	countdown = 120
//	mqtt {
//	  broker    = "tcp://192.168.1.200:1883"
//	  topic     = "home/desk-clock"
//	  heartbeat = "15m"
//	}
//	http   = ":80"
//	banner = "2s"
type boardFile struct {
	GPIOChip  *string       `hcl:"gpio_chip,optional"`
	Bus       *busBlock     `hcl:"bus,block"`
	Buttons   *buttonsBlock `hcl:"buttons,block"`
	Display   *displayBlock `hcl:"display,block"`
	Buzzer    *buzzerBlock  `hcl:"buzzer,block"`
	Countdown *int          `hcl:"countdown,optional"`
	MQTT      *mqttBlock    `hcl:"mqtt,block"`
	HTTP      *string       `hcl:"http,optional"`
	Banner    *string       `hcl:"banner,optional"`
}

type busBlock struct {
	SCL        *int    `hcl:"scl,optional"`
	SDA        *int    `hcl:"sda,optional"`
	HalfPeriod *string `hcl:"half_period,optional"`
	RTCAddress *int    `hcl:"rtc_address,optional"`
}

type buttonsBlock struct {
	Mode    *int    `hcl:"mode,optional"`
	Set     *int    `hcl:"set,optional"`
	Start   *int    `hcl:"start,optional"`
	Stop    *int    `hcl:"stop,optional"`
	Lockout *string `hcl:"lockout,optional"`
}

type displayBlock struct {
	Type    *string `hcl:"type,optional"`
	I2CBus  *int    `hcl:"i2c_bus,optional"`
	Address *int    `hcl:"address,optional"`
	Width   *int    `hcl:"width,optional"`
}

type buzzerBlock struct {
	Pin           *int    `hcl:"pin,optional"`
	Alert         *string `hcl:"alert,optional"`
	CountdownTone *int    `hcl:"countdown_tone,optional"`
}

type mqttBlock struct {
	Broker    *string `hcl:"broker,optional"`
	Topic     *string `hcl:"topic,optional"`
	Heartbeat *string `hcl:"heartbeat,optional"`
}

// ApplyFile overlays an HCL board file onto c.
func (c *Config) ApplyFile(path string) error {
	var f boardFile
	if err := hclsimple.DecodeFile(path, nil, &f); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return c.apply(&f)
}

// ApplyBytes overlays HCL source onto c. filename names the source in
// error messages and must end in .hcl.
func (c *Config) ApplyBytes(filename string, src []byte) error {
	var f boardFile
	if err := hclsimple.Decode(filename, src, nil, &f); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return c.apply(&f)
}

func (c *Config) apply(f *boardFile) error {
	setString(&c.GPIOChip, f.GPIOChip)
	setInt(&c.CountdownDefault, f.Countdown)
	setString(&c.HTTPAddr, f.HTTP)
	if err := setDuration(&c.Banner, f.Banner, "banner"); err != nil {
		return err
	}

	if b := f.Bus; b != nil {
		setInt(&c.PinSCL, b.SCL)
		setInt(&c.PinSDA, b.SDA)
		setInt(&c.RTCAddress, b.RTCAddress)
		if err := setDuration(&c.BusHalfPeriod, b.HalfPeriod, "bus.half_period"); err != nil {
			return err
		}
	}
	if b := f.Buttons; b != nil {
		setInt(&c.Buttons[0], b.Mode)
		setInt(&c.Buttons[1], b.Set)
		setInt(&c.Buttons[2], b.Start)
		setInt(&c.Buttons[3], b.Stop)
		if err := setDuration(&c.Lockout, b.Lockout, "buttons.lockout"); err != nil {
			return err
		}
	}
	if d := f.Display; d != nil {
		setString(&c.DisplayKind, d.Type)
		setInt(&c.DisplayBus, d.I2CBus)
		setInt(&c.DisplayAddress, d.Address)
		setInt(&c.DisplayWidth, d.Width)
	}
	if b := f.Buzzer; b != nil {
		setInt(&c.BuzzerPin, b.Pin)
		setInt(&c.CountdownTone, b.CountdownTone)
		if err := setDuration(&c.AlertDuration, b.Alert, "buzzer.alert"); err != nil {
			return err
		}
	}
	if m := f.MQTT; m != nil {
		setString(&c.Broker, m.Broker)
		setString(&c.Topic, m.Topic)
		if err := setDuration(&c.Heartbeat, m.Heartbeat, "mqtt.heartbeat"); err != nil {
			return err
		}
	}
	return nil
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *string, name string) error {
	if v == nil {
		return nil
	}
	d, err := time.ParseDuration(*v)
	if err != nil {
		return fmt.Errorf("config: %s: %w", name, err)
	}
	*dst = d
	return nil
}
