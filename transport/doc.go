// Package transport adapts Linux I2C libraries to the drivers.I2C interface
// consumed by the tmd26721 driver.
//
// periph.io buses opened with i2creg.Open already implement drivers.I2C and
// can be passed to the driver directly.
package transport
