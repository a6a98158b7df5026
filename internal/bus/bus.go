// Package bus implements a software-timed two-wire (I2C) master.
// The real implementation drives two Linux GPIO character device lines.
// The fake implementation emulates a register-file target for tests.
//
// The protocol relies on fixed settle delays between line changes, so a Bus
// must only ever be driven from one goroutine.
package bus

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Error is a constant driver error.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrNack is returned when the target does not acknowledge a byte.
	ErrNack = Error("bus: no acknowledge")
	// ErrEmptyTx is returned by Tx when there is nothing to write or read.
	ErrEmptyTx = Error("bus: empty transaction")
)

// DefaultHalfPeriod is the settle time held on each clock phase. 5µs keeps
// the bus under 100kHz, which every DS1307-class device accepts.
const DefaultHalfPeriod = 5 * time.Microsecond

// Lines is the pair of open-drain lines the master drives.
type Lines interface {
	// SetSCL drives the clock line high or low.
	SetSCL(high bool) error

	// SetSDA drives the data line low, or releases it (pulled high) when high is true.
	SetSDA(high bool) error

	// SDA samples the data line.
	SDA() (bool, error)

	// Close releases line resources.
	Close() error
}

// Stats counts bus activity since the Bus was created.
type Stats struct {
	Transactions uint64
	Nacks        uint64
	Errors       uint64
}

// Bus is a bit-banged two-wire master.
type Bus struct {
	lines      Lines
	halfPeriod time.Duration
	delay      func(time.Duration)

	transactions atomic.Uint64
	nacks        atomic.Uint64
	errors       atomic.Uint64
}

// Option configures a Bus.
type Option func(*Bus)

// WithHalfPeriod overrides the per-phase settle time.
func WithHalfPeriod(d time.Duration) Option {
	return func(b *Bus) {
		b.halfPeriod = d
	}
}

// WithDelay replaces the busy-wait used between line changes. Tests pass a
// no-op so the protocol runs without real time.
func WithDelay(fn func(time.Duration)) Option {
	return func(b *Bus) {
		b.delay = fn
	}
}

// New creates a Bus on the given lines. Both lines are released (idle high).
func New(lines Lines, opts ...Option) (*Bus, error) {
	b := &Bus{
		lines:      lines,
		halfPeriod: DefaultHalfPeriod,
		delay:      spinWait,
	}
	for _, opt := range opts {
		opt(b)
	}

	if err := lines.SetSDA(true); err != nil {
		return nil, fmt.Errorf("release SDA: %w", err)
	}
	if err := lines.SetSCL(true); err != nil {
		return nil, fmt.Errorf("release SCL: %w", err)
	}
	b.settle()
	return b, nil
}

// Close releases the underlying lines.
func (b *Bus) Close() error {
	return b.lines.Close()
}

// Stats returns a copy of the activity counters. Safe to call from any goroutine.
func (b *Bus) Stats() Stats {
	return Stats{
		Transactions: b.transactions.Load(),
		Nacks:        b.nacks.Load(),
		Errors:       b.errors.Load(),
	}
}

func (b *Bus) settle() {
	b.delay(b.halfPeriod)
}

// Start issues a start (or repeated start) condition: SDA falls while SCL is high.
// It may be called with SCL low in the middle of a transaction.
func (b *Bus) Start() error {
	if err := b.lines.SetSDA(true); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	b.settle()
	if err := b.lines.SetSCL(true); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	b.settle()
	if err := b.lines.SetSDA(false); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	b.settle()
	if err := b.lines.SetSCL(false); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	b.settle()
	return nil
}

// Stop issues a stop condition: SDA rises while SCL is high. The bus is idle afterwards.
func (b *Bus) Stop() error {
	if err := b.lines.SetSCL(false); err != nil {
		return fmt.Errorf("stop: %w", err)
	}
	if err := b.lines.SetSDA(false); err != nil {
		return fmt.Errorf("stop: %w", err)
	}
	b.settle()
	if err := b.lines.SetSCL(true); err != nil {
		return fmt.Errorf("stop: %w", err)
	}
	b.settle()
	if err := b.lines.SetSDA(true); err != nil {
		return fmt.Errorf("stop: %w", err)
	}
	b.settle()
	return nil
}

// writeBit clocks one bit out: SCL low, drive SDA, SCL high, SCL low.
func (b *Bus) writeBit(bit bool) error {
	if err := b.lines.SetSCL(false); err != nil {
		return err
	}
	if err := b.lines.SetSDA(bit); err != nil {
		return err
	}
	b.settle()
	if err := b.lines.SetSCL(true); err != nil {
		return err
	}
	b.settle()
	return b.lines.SetSCL(false)
}

// readBit releases SDA and samples it while SCL is high.
func (b *Bus) readBit() (bool, error) {
	if err := b.lines.SetSCL(false); err != nil {
		return false, err
	}
	if err := b.lines.SetSDA(true); err != nil {
		return false, err
	}
	b.settle()
	if err := b.lines.SetSCL(true); err != nil {
		return false, err
	}
	b.settle()
	bit, err := b.lines.SDA()
	if err != nil {
		return false, err
	}
	return bit, b.lines.SetSCL(false)
}

// SendByte clocks out b most-significant bit first, then releases SDA and
// samples the target's acknowledge bit. A false ack is not an error; retry
// policy belongs to the caller.
func (b *Bus) SendByte(v byte) (ack bool, err error) {
	for i := 0; i < 8; i++ {
		if err := b.writeBit(v&0x80 != 0); err != nil {
			return false, fmt.Errorf("send bit %d: %w", 7-i, err)
		}
		v <<= 1
	}
	high, err := b.readBit()
	if err != nil {
		return false, fmt.Errorf("sample ack: %w", err)
	}
	// The target acknowledges by holding SDA low.
	return !high, nil
}

// RecvByte samples eight bits most-significant first, then drives ACK (low)
// when ack is true or NACK (released) to end a read.
func (b *Bus) RecvByte(ack bool) (byte, error) {
	var v byte
	for i := 0; i < 8; i++ {
		bit, err := b.readBit()
		if err != nil {
			return 0, fmt.Errorf("recv bit %d: %w", 7-i, err)
		}
		v <<= 1
		if bit {
			v |= 1
		}
	}
	if err := b.writeBit(!ack); err != nil {
		return 0, fmt.Errorf("send ack: %w", err)
	}
	return v, nil
}
