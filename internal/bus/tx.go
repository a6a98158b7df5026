package bus

import (
	"errors"
	"fmt"

	"tinygo.org/x/drivers"
)

var _ drivers.I2C = (*Bus)(nil)

// Tx performs one addressed transaction with the 7-bit target addr:
//
//	start, addr+W, w..., [repeated start, addr+R, r...], stop
//
// Every read byte but the last is acknowledged; the last gets a NACK to end
// the read. A missing acknowledge ends the transaction with a stop and
// returns an error wrapping ErrNack. Nothing is retried.
func (b *Bus) Tx(addr uint16, w, r []byte) error {
	if len(w) == 0 && len(r) == 0 {
		return ErrEmptyTx
	}
	b.transactions.Add(1)

	err := b.tx(uint8(addr), w, r)
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrNack) {
		b.nacks.Add(1)
	} else {
		b.errors.Add(1)
	}
	// Leave the bus idle after a failure so the next transaction starts clean.
	if stopErr := b.Stop(); stopErr != nil {
		return fmt.Errorf("%w (stop: %v)", err, stopErr)
	}
	return err
}

func (b *Bus) tx(addr uint8, w, r []byte) error {
	if err := b.Start(); err != nil {
		return err
	}

	if len(w) > 0 {
		if err := b.sendChecked(addr<<1, "address"); err != nil {
			return err
		}
		for i, v := range w {
			if err := b.sendChecked(v, fmt.Sprintf("write byte %d", i)); err != nil {
				return err
			}
		}
	}

	if len(r) > 0 {
		if len(w) > 0 {
			if err := b.Start(); err != nil {
				return err
			}
		}
		if err := b.sendChecked(addr<<1|1, "read address"); err != nil {
			return err
		}
		for i := range r {
			v, err := b.RecvByte(i < len(r)-1)
			if err != nil {
				return fmt.Errorf("read byte %d: %w", i, err)
			}
			r[i] = v
		}
	}

	return b.Stop()
}

func (b *Bus) sendChecked(v byte, what string) error {
	ack, err := b.SendByte(v)
	if err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	if !ack {
		return fmt.Errorf("%s 0x%02X: %w", what, v, ErrNack)
	}
	return nil
}

// ReadRegister reads len(buf) bytes starting at register reg of device addr.
func (b *Bus) ReadRegister(addr uint8, reg uint8, buf []byte) error {
	return b.Tx(uint16(addr), []byte{reg}, buf)
}

// WriteRegister writes buf starting at register reg of device addr.
func (b *Bus) WriteRegister(addr uint8, reg uint8, buf []byte) error {
	w := make([]byte, 0, len(buf)+1)
	w = append(w, reg)
	w = append(w, buf...)
	return b.Tx(uint16(addr), w, nil)
}
