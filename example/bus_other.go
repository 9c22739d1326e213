//go:build !linux

package main

import (
	"fmt"

	"tinygo.org/x/drivers"
)

// openBus opens the I2C bus for the selected backend.  Only periph.io is
// available outside Linux.
func openBus(backend, name string, smbusNum int, addr uint8) (drivers.I2C, func(), error) {

	if backend == "periph" {
		return openPeriph(name)
	}

	return nil, nil, fmt.Errorf("backend %q is only supported on linux", backend)
}
