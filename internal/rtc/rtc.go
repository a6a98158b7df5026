// Package rtc maps calendar values to and from the registers of a
// DS1307-compatible real-time clock.
//
// Every register access is its own bus transaction. Multi-register reads
// and writes are fixed sequences that stop at the first failure; registers
// already written are not rolled back.
package rtc

import (
	"fmt"
	"time"

	"tinygo.org/x/drivers"

	"github.com/sweeney/desk-clock/internal/calendar"
)

// Address is the 7-bit bus address of DS1307/DS3231 parts.
const Address = 0x68

// Register map.
const (
	RegSeconds   = 0x00
	RegMinutes   = 0x01
	RegHours     = 0x02
	RegDayOfWeek = 0x03
	RegDate      = 0x04
	RegMonth     = 0x05
	RegYear      = 0x06
	RegControl   = 0x07
)

const (
	clockHalt = 0x80
	hour12    = 0x40
	hourPM    = 0x20
)

// Error is a constant adapter error.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrInvalid is returned when asked to write an out-of-range time or date.
	ErrInvalid = Error("rtc: invalid value")
	// ErrCorrupt is returned when a register does not hold a valid value.
	ErrCorrupt = Error("rtc: corrupt register")
)

// Device is a DS1307-compatible clock on a two-wire bus.
type Device struct {
	bus     drivers.I2C
	Address uint8
}

// New returns a Device at the default address.
func New(bus drivers.I2C) *Device {
	return &Device{
		bus:     bus,
		Address: Address,
	}
}

func (d *Device) readRegister(reg uint8) (byte, error) {
	var buf [1]byte
	if err := d.bus.Tx(uint16(d.Address), []byte{reg}, buf[:]); err != nil {
		return 0, fmt.Errorf("read register 0x%02X: %w", reg, err)
	}
	return buf[0], nil
}

func (d *Device) writeRegister(reg uint8, v byte) error {
	if err := d.bus.Tx(uint16(d.Address), []byte{reg, v}, nil); err != nil {
		return fmt.Errorf("write register 0x%02X: %w", reg, err)
	}
	return nil
}

// readBCD reads one register, masks it and decodes it.
func (d *Device) readBCD(reg uint8, mask byte) (int, error) {
	raw, err := d.readRegister(reg)
	if err != nil {
		return 0, err
	}
	v := raw & mask
	if !validBCD(v) {
		return 0, fmt.Errorf("register 0x%02X = 0x%02X: %w", reg, raw, ErrCorrupt)
	}
	return BCDToBin(v), nil
}

// ReadTime reads seconds, minutes and hours in that order.
func (d *Device) ReadTime() (calendar.Time, error) {
	var t calendar.Time
	var err error

	if t.Second, err = d.readBCD(RegSeconds, 0x7F); err != nil {
		return calendar.Time{}, err
	}
	if t.Minute, err = d.readBCD(RegMinutes, 0x7F); err != nil {
		return calendar.Time{}, err
	}

	raw, err := d.readRegister(RegHours)
	if err != nil {
		return calendar.Time{}, err
	}
	if t.Hour, err = decodeHour(raw); err != nil {
		return calendar.Time{}, err
	}

	if !t.Valid() {
		return calendar.Time{}, fmt.Errorf("time %s: %w", calendar.FormatTime(t), ErrCorrupt)
	}
	return t, nil
}

// decodeHour handles both 24-hour and 12-hour register layouts.
func decodeHour(raw byte) (int, error) {
	if raw&hour12 == 0 {
		v := raw & 0x3F
		if !validBCD(v) {
			return 0, fmt.Errorf("hours register 0x%02X: %w", raw, ErrCorrupt)
		}
		return BCDToBin(v), nil
	}

	v := raw & 0x1F
	if !validBCD(v) {
		return 0, fmt.Errorf("hours register 0x%02X: %w", raw, ErrCorrupt)
	}
	h := BCDToBin(v)
	if h < 1 || h > 12 {
		return 0, fmt.Errorf("hours register 0x%02X: %w", raw, ErrCorrupt)
	}
	if h == 12 {
		h = 0
	}
	if raw&hourPM != 0 {
		h += 12
	}
	return h, nil
}

// WriteTime writes seconds, minutes and hours in that order. Writing the
// seconds register clears the clock-halt bit. Hours are always written in
// 24-hour mode.
func (d *Device) WriteTime(t calendar.Time) error {
	if !t.Valid() {
		return fmt.Errorf("time %02d:%02d:%02d: %w", t.Hour, t.Minute, t.Second, ErrInvalid)
	}
	if err := d.writeRegister(RegSeconds, BinToBCD(t.Second)); err != nil {
		return err
	}
	if err := d.writeRegister(RegMinutes, BinToBCD(t.Minute)); err != nil {
		return err
	}
	return d.writeRegister(RegHours, BinToBCD(t.Hour))
}

// ReadDate reads date, month and year in that order.
func (d *Device) ReadDate() (calendar.Date, error) {
	var dt calendar.Date
	var err error

	if dt.Day, err = d.readBCD(RegDate, 0x3F); err != nil {
		return calendar.Date{}, err
	}
	if dt.Month, err = d.readBCD(RegMonth, 0x1F); err != nil {
		return calendar.Date{}, err
	}
	year, err := d.readBCD(RegYear, 0xFF)
	if err != nil {
		return calendar.Date{}, err
	}
	dt.Year = calendar.MinYear + year

	if !dt.Valid() {
		return calendar.Date{}, fmt.Errorf("date %02d/%02d/%04d: %w", dt.Day, dt.Month, dt.Year, ErrCorrupt)
	}
	return dt, nil
}

// WriteDate writes date, month, year and then the matching day of week.
func (d *Device) WriteDate(dt calendar.Date) error {
	if !dt.Valid() {
		return fmt.Errorf("date %02d/%02d/%04d: %w", dt.Day, dt.Month, dt.Year, ErrInvalid)
	}
	if err := d.writeRegister(RegDate, BinToBCD(dt.Day)); err != nil {
		return err
	}
	if err := d.writeRegister(RegMonth, BinToBCD(dt.Month)); err != nil {
		return err
	}
	if err := d.writeRegister(RegYear, BinToBCD(dt.Year-calendar.MinYear)); err != nil {
		return err
	}
	return d.writeRegister(RegDayOfWeek, byte(DayOfWeek(dt)))
}

// DayOfWeek returns the register value for dt: 1 is Sunday, 7 is Saturday.
func DayOfWeek(dt calendar.Date) int {
	return int(time.Date(dt.Year, time.Month(dt.Month), dt.Day, 0, 0, 0, 0, time.UTC).Weekday()) + 1
}

// Halted reports whether the oscillator is stopped. A fresh chip or one
// that lost its battery starts halted until the seconds register is written.
func (d *Device) Halted() (bool, error) {
	raw, err := d.readRegister(RegSeconds)
	if err != nil {
		return false, err
	}
	return raw&clockHalt != 0, nil
}
