package tmd26721

import "fmt"

// ProximityStatus reads the status register and reports whether a valid
// proximity conversion is available
func (d *Device) ProximityStatus() (bool, error) {

	status, err := d.readReg(STATUS)

	if err != nil {
		return false, err
	}

	return status&statusProximityValid != 0, nil
}

// ProximityReady reports whether a valid proximity conversion is available.
// A failed bus transaction also reports false; use ProximityStatus to tell
// the two apart.
func (d *Device) ProximityReady() bool {
	ready, err := d.ProximityStatus()

	if err != nil {
		d.log.Printf("Status read failed: %v", err)
		return false
	}

	return ready
}

// Read returns the raw 16-bit proximity count.  An uninitialized device is
// initialized first.  ErrNotReady is returned if no valid conversion shows up
// within the poll attempts; this leaves the device initialized.  A failed data
// read marks the device uninitialized so the next Read starts over.
func (d *Device) Read() (uint16, error) {

	if !d.initialized {
		if err := d.Reinitialize(); err != nil {
			return 0, fmt.Errorf("reinitialize: %w", err)
		}
	}

	if !d.waitReady() {
		d.didTimeout = true
		d.log.Printf("No valid proximity data after %d checks", d.pollAttempts)
		return 0, ErrNotReady
	}

	prox, err := d.readReg16Bit(PDATAL)

	if err != nil {
		d.initialized = false
		d.log.Printf("Proximity read failed: %v", err)
		return 0, err
	}

	return prox, nil
}

// ReadProximity returns the raw proximity count in the range 0 to 65535, or
// -1 if the sensor could not be initialized, had no valid data or the read
// failed
func (d *Device) ReadProximity() int {

	prox, err := d.Read()

	if err != nil {
		return -1
	}

	return int(prox)
}
