package main

import (
	"fmt"

	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
	"tinygo.org/x/drivers"
)

// openPeriph opens an I2C bus by name through periph.io, the first bus when
// name is empty
func openPeriph(name string) (drivers.I2C, func(), error) {

	if _, err := host.Init(); err != nil {
		return nil, nil, err
	}

	bus, err := i2creg.Open(name)

	if err != nil {
		return nil, nil, fmt.Errorf("failed to open I²C: %w", err)
	}

	return bus, func() { bus.Close() }, nil
}
