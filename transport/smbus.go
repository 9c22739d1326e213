//go:build linux

package transport

import (
	"fmt"

	"github.com/go-daq/smbus"
	"tinygo.org/x/drivers"
)

// SMBus performs register transfers through SMBus commands.  Every write
// carries a command byte followed by at most one data byte, and every read
// is preceded by exactly one command byte.
type SMBus struct {
	conn *smbus.Conn
}

var _ drivers.I2C = (*SMBus)(nil)

// smbusOp is the SMBus command used for a transfer
type smbusOp int

const (
	opUnsupported smbusOp = iota
	opWriteByte
	opReadByte
	opReadWord
	opReadBlock
)

// NewSMBus returns a bus for the opened SMBus connection.  The caller keeps
// ownership of conn and closes it.
func NewSMBus(conn *smbus.Conn) *SMBus {
	return &SMBus{conn: conn}
}

// transferOp picks the SMBus command for a write of w followed by a read
// into r
func transferOp(w, r []byte) smbusOp {
	switch {
	case len(w) == 2 && len(r) == 0:
		return opWriteByte
	case len(w) == 1 && len(r) == 1:
		return opReadByte
	case len(w) == 1 && len(r) == 2:
		return opReadWord
	case len(w) == 1 && len(r) > 2:
		return opReadBlock
	}
	return opUnsupported
}

// Tx maps an I2C register transaction onto SMBus byte, word and block
// commands
func (s *SMBus) Tx(addr uint16, w, r []byte) error {

	switch transferOp(w, r) {
	case opWriteByte:
		return s.conn.WriteReg(uint8(addr), w[0], w[1])

	case opReadByte:
		v, err := s.conn.ReadReg(uint8(addr), w[0])

		if err != nil {
			return err
		}

		r[0] = v
		return nil

	case opReadWord:
		// SMBus words are transferred low byte first
		word, err := s.conn.ReadWord(uint8(addr), w[0])

		if err != nil {
			return err
		}

		r[0] = byte(word)
		r[1] = byte(word >> 8)
		return nil

	case opReadBlock:
		return s.conn.ReadBlockData(uint8(addr), w[0], r)
	}

	return fmt.Errorf("unsupported SMBus transfer: write %d bytes, read %d bytes",
		len(w), len(r))
}
