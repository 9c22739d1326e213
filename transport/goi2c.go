//go:build linux

package transport

import (
	"fmt"

	"github.com/swdee/go-i2c"
	"tinygo.org/x/drivers"
)

// GoI2C performs I2C transactions through a go-i2c connection.  The
// connection is bound to a single device address.
type GoI2C struct {
	conn *i2c.Options
}

var _ drivers.I2C = (*GoI2C)(nil)

// NewGoI2C returns a bus for the opened go-i2c connection.  The caller keeps
// ownership of conn and closes it.
func NewGoI2C(conn *i2c.Options) (*GoI2C, error) {

	if conn.GetAddr() == 0 {
		return nil, fmt.Errorf("I2C device is not initiated")
	}

	return &GoI2C{conn: conn}, nil
}

// Tx writes w and then, when r is not empty, reads len(r) bytes into r
func (g *GoI2C) Tx(addr uint16, w, r []byte) error {

	if uint16(g.conn.GetAddr()) != addr {
		return fmt.Errorf("go-i2c connection is bound to 0x%02X, not 0x%02X",
			g.conn.GetAddr(), addr)
	}

	if len(w) > 0 {
		if _, err := g.conn.WriteBytes(w); err != nil {
			return err
		}
	}

	if len(r) == 0 {
		return nil
	}

	n, err := g.conn.ReadBytes(r)

	if err != nil {
		return err
	}

	if n < len(r) {
		return fmt.Errorf("read %d of %d bytes: insufficient data", n, len(r))
	}

	return nil
}
