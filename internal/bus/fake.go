package bus

import "fmt"

// FakeLines is a test double for Lines with one emulated target attached.
// The target decodes the master's line changes exactly as a register-file
// device would: start and stop conditions, address match, register pointer,
// acknowledge bits and streamed reads.
type FakeLines struct {
	// Address is the 7-bit address the target answers to.
	Address uint8

	// Registers is the target's register file. The pointer wraps at its end.
	Registers [64]byte

	// Absent, if set, makes the target ignore every transaction.
	Absent bool

	// NackAfter, if > 0, makes the target stop acknowledging once this many
	// bytes (address bytes included) have been acknowledged.
	NackAfter int

	// SetError, if set, will be returned by SetSCL and SetSDA.
	SetError error

	// Closed tracks if Close was called.
	Closed bool

	// Log records conditions and bytes as seen by the target:
	// "S" start, "P" stop, "W:xx" byte received and acknowledged,
	// "R:xx" byte sent to the master.
	Log []string

	// Writes counts register bytes stored by the master.
	Writes int

	scl       bool
	sdaMaster bool
	slaveLow  bool

	state      fakeState
	ackPhase   bool
	bits       int
	shift      byte
	byteIndex  int
	read       bool
	ptr        int
	acked      int
	masterNack bool
}

type fakeState int

const (
	fakeIdle fakeState = iota
	fakeRecv
	fakeSend
)

// NewFakeLines creates idle lines with a target at addr.
func NewFakeLines(addr uint8) *FakeLines {
	return &FakeLines{
		Address:   addr,
		scl:       true,
		sdaMaster: true,
	}
}

// SetSCL drives the clock line and lets the target react to the edge.
func (f *FakeLines) SetSCL(high bool) error {
	if f.SetError != nil {
		return f.SetError
	}
	if high == f.scl {
		return nil
	}
	f.scl = high
	if high {
		f.rising()
	} else {
		f.falling()
	}
	return nil
}

// SetSDA drives or releases the data line. A change while SCL is high is a
// start or stop condition.
func (f *FakeLines) SetSDA(high bool) error {
	if f.SetError != nil {
		return f.SetError
	}
	before := f.sda()
	f.sdaMaster = high
	after := f.sda()
	if f.scl && before != after {
		if after {
			f.stop()
		} else {
			f.start()
		}
	}
	return nil
}

// SDA returns the wired-AND of master and target.
func (f *FakeLines) SDA() (bool, error) {
	return f.sda(), nil
}

// Close marks the lines as closed.
func (f *FakeLines) Close() error {
	f.Closed = true
	return nil
}

// ResetLog clears the recorded conditions.
func (f *FakeLines) ResetLog() {
	f.Log = nil
	f.Writes = 0
}

func (f *FakeLines) sda() bool {
	return f.sdaMaster && !f.slaveLow
}

func (f *FakeLines) start() {
	f.Log = append(f.Log, "S")
	f.state = fakeRecv
	f.ackPhase = false
	f.bits = 0
	f.shift = 0
	f.byteIndex = 0
	f.read = false
	f.slaveLow = false
}

func (f *FakeLines) stop() {
	f.Log = append(f.Log, "P")
	f.state = fakeIdle
	f.slaveLow = false
}

func (f *FakeLines) rising() {
	switch {
	case f.state == fakeRecv && !f.ackPhase:
		f.shift <<= 1
		if f.sda() {
			f.shift |= 1
		}
		f.bits++
	case f.state == fakeSend && f.ackPhase:
		f.masterNack = f.sda()
	}
}

func (f *FakeLines) falling() {
	switch f.state {
	case fakeRecv:
		if !f.ackPhase {
			if f.bits == 8 {
				f.received(f.shift)
				f.bits = 0
				f.shift = 0
			}
			return
		}
		f.ackPhase = false
		f.slaveLow = false
		if f.read {
			f.state = fakeSend
			f.load()
		}

	case fakeSend:
		if !f.ackPhase {
			f.bits++
			if f.bits == 8 {
				f.ackPhase = true
				f.slaveLow = false
				return
			}
			f.slaveLow = f.shift&(0x80>>f.bits) == 0
			return
		}
		if f.masterNack {
			f.state = fakeIdle
			f.slaveLow = false
			return
		}
		f.load()
	}
}

// received handles a complete byte from the master and decides whether to
// acknowledge it. Not acknowledging leaves SDA released for the ack clock.
func (f *FakeLines) received(v byte) {
	if f.NackAfter > 0 && f.acked >= f.NackAfter {
		f.state = fakeIdle
		return
	}

	switch {
	case f.byteIndex == 0:
		if f.Absent || v>>1 != f.Address {
			f.state = fakeIdle
			return
		}
		f.read = v&1 == 1
	case f.byteIndex == 1:
		f.ptr = int(v) % len(f.Registers)
	default:
		f.Registers[f.ptr] = v
		f.ptr = (f.ptr + 1) % len(f.Registers)
		f.Writes++
	}

	f.Log = append(f.Log, fmt.Sprintf("W:%02X", v))
	f.acked++
	f.byteIndex++
	f.ackPhase = true
	f.slaveLow = true
}

// load puts the register under the pointer on the wire, MSB first.
func (f *FakeLines) load() {
	f.shift = f.Registers[f.ptr]
	f.ptr = (f.ptr + 1) % len(f.Registers)
	f.Log = append(f.Log, fmt.Sprintf("R:%02X", f.shift))
	f.bits = 0
	f.ackPhase = false
	f.slaveLow = f.shift&0x80 == 0
}
