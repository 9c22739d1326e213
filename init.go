package tmd26721

import "go.uber.org/multierr"

// RegisterWrite is a single command mode register write
type RegisterWrite struct {
	Reg   uint8
	Value uint8
}

const (
	// ATIME 0xFF is the shortest ALS integration
	minATime uint8 = 0xFF
	// PTIME 0xFF is a single proximity integration cycle
	proxTime uint8 = 0xFF
	// WTIME 0xFF is the shortest wait
	minWTime uint8 = 0xFF

	// proximity interrupt thresholds, not consumed by the driver
	proxLowThreshold  uint16 = 0x0000
	proxHighThreshold uint16 = 0x0300

	// a single out of range proximity cycle raises the interrupt
	proxPersistence uint8 = 0x10

	// long wait disabled
	configNoWLong uint8 = 0x00
)

// InitSequence returns the register writes that configure the chip for cfg,
// in the order they are sent.  The chip is disabled first and powered on
// with wait, proximity detection and its interrupt enabled last.
func InitSequence(cfg Config) ([]RegisterWrite, error) {

	control, err := cfg.Control()

	if err != nil {
		return nil, err
	}

	return []RegisterWrite{
		{ENABLE, 0x00},
		{ATIME, minATime},
		{PTIME, proxTime},
		{WTIME, minWTime},
		{PILTL, uint8(proxLowThreshold & 0xFF)},
		{PILTH, uint8(proxLowThreshold >> 8)},
		{PIHTL, uint8(proxHighThreshold & 0xFF)},
		{PIHTH, uint8(proxHighThreshold >> 8)},
		{PERS, proxPersistence},
		{CONFIG, configNoWLong},
		{PPULSE, cfg.PulseCount},
		{CONTROL, control},
		{ENABLE, enablePowerOn | enableProximity | enableWait | enableProxIRQ},
	}, nil
}

// Reinitialize writes the complete configuration sequence to the chip.
// Every write is attempted even after a failure so the chip ends up as close
// to the requested state as the bus allows; the returned error combines all
// failures.  The device counts as initialized only if every write succeeded.
func (d *Device) Reinitialize() error {

	d.initialized = false

	if d.bus == nil {
		return ErrNotBound
	}

	seq, err := InitSequence(d.Config())

	if err != nil {
		return err
	}

	d.log.Printf("Starting Reinitialize()")

	var errs error

	for _, w := range seq {
		errs = multierr.Append(errs, d.writeReg(w.Reg, w.Value))
	}

	if errs != nil {
		d.log.Printf("Initialization failed: %v", errs)
		return errs
	}

	d.initialized = true

	d.log.Printf("Device initialized, pulses=%d drive=%s channel=%s gain=%s",
		d.pulseCount, d.driveStrength, d.channel, d.gain)

	return nil
}
