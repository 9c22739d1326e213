//go:build linux

package main

import (
	"fmt"

	"github.com/go-daq/smbus"
	"github.com/swdee/go-i2c"
	"github.com/swdee/go-tmd26721/transport"
	"tinygo.org/x/drivers"
)

// openBus opens the I2C bus for the selected backend.  The returned function
// closes it.
func openBus(backend, name string, smbusNum int, addr uint8) (drivers.I2C, func(), error) {

	switch backend {
	case "periph":
		return openPeriph(name)

	case "goi2c":
		if name == "" {
			name = "/dev/i2c-1"
		}

		conn, err := i2c.New(addr, name)

		if err != nil {
			return nil, nil, err
		}

		bus, err := transport.NewGoI2C(conn)

		if err != nil {
			conn.Close()
			return nil, nil, err
		}

		return bus, func() { conn.Close() }, nil

	case "smbus":
		conn, err := smbus.Open(smbusNum, addr)

		if err != nil {
			return nil, nil, err
		}

		return transport.NewSMBus(conn), func() { conn.Close() }, nil
	}

	return nil, nil, fmt.Errorf("unknown backend %q", backend)
}
