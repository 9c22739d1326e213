// go-tmd26721 is an I2C driver for the AMS TMD26721 proximity detector as
// fitted to the I2C-IRSENSE sensor head.
package tmd26721

import (
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"tinygo.org/x/drivers"
)

const (
	// Address is the default address of the sensor on I2C bus
	Address uint8 = 0x39
	// DefaultPulseCount is the number of LED pulses per proximity cycle used
	// until SetPulseCount is called
	DefaultPulseCount uint8 = 8
)

var (
	// ErrNotBound is returned when the device is used before a bus was bound
	ErrNotBound = errors.New("tmd26721: no I2C bus bound")
	// ErrBusBound is returned by Begin when the device already holds a bus
	ErrBusBound = errors.New("tmd26721: I2C bus already bound")
	// ErrNotReady is returned by Read when the proximity valid bit was not set
	// within the poll attempts
	ErrNotReady = errors.New("tmd26721: proximity data not ready")
)

// Device represents a single TMD26721 sensor instance. A Device is not safe
// for concurrent use.
type Device struct {
	// bus is the I2C interface, borrowed and never closed by the driver
	bus  drivers.I2C
	addr uint8

	initialized bool

	pulseCount    uint8
	driveStrength DriveStrength
	channel       LEDChannel
	gain          Gain

	pollAttempts int
	pollInterval time.Duration
	sleep        func(time.Duration)
	didTimeout   bool

	// log logger for debugging
	log *log.Logger
}

// New returns an unbound sensor instance holding the default configuration.
// Call Begin to bind it to a bus and initialize the chip.
func New() *Device {
	d := newDevice()

	// create null logger
	d.log = log.New(io.Discard, "", log.LstdFlags)

	return d
}

// NewWithLog returns an unbound sensor instance with logger to be used for
// debugging
func NewWithLog(log *log.Logger) *Device {
	if log == nil {
		return New()
	}

	d := newDevice()
	d.log = log
	return d
}

// Open returns a sensor instance bound to bus at the given address and
// initialized.  The Device is returned even when initialization fails so
// that later reads can retry it.
func Open(bus drivers.I2C, addr uint8) (*Device, error) {
	d := New()
	return d, d.Begin(bus, addr)
}

// OpenWithLog is Open with a logger to be used for debugging
func OpenWithLog(bus drivers.I2C, addr uint8, log *log.Logger) (*Device, error) {
	d := NewWithLog(log)
	return d, d.Begin(bus, addr)
}

// newDevice returns a Device with default settings and no bus
func newDevice() *Device {
	return &Device{
		addr:          Address,
		pulseCount:    DefaultPulseCount,
		driveStrength: LED100Percent,
		channel:       LEDChannel1,
		gain:          Gain4X,
		pollAttempts:  PollAttempts,
		pollInterval:  PollInterval,
		sleep:         time.Sleep,
	}
}

// Begin binds the I2C bus and address to the device and runs the
// initialization sequence.  The bus must already be configured.
func (d *Device) Begin(bus drivers.I2C, addr uint8) error {

	if bus == nil {
		return ErrNotBound
	}

	if d.bus != nil {
		return ErrBusBound
	}

	d.bus = bus
	d.addr = addr & 0x7F

	d.log.Printf("Bound to I2C address 0x%02X", d.addr)

	if err := d.Reinitialize(); err != nil {
		return fmt.Errorf("Failed to init device: %w", err)
	}

	return nil
}

// Address returns the I2C address of the sensor
func (d *Device) Address() uint8 {
	return d.addr
}

// Initialized reports whether the last initialization sequence completed
// without error and no read has failed since
func (d *Device) Initialized() bool {
	return d.initialized
}
