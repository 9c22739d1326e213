package tmd26721

import "time"

const (
	// PollAttempts is the number of times Read checks the proximity valid bit
	PollAttempts = 5
	// PollInterval is the wait after each check that found no valid data
	PollInterval = 3 * time.Millisecond
)

// SetPollTiming sets how many times Read checks for valid proximity data and
// how long it waits after each miss.  Attempts below one are treated as one.
func (d *Device) SetPollTiming(attempts int, interval time.Duration) {
	if attempts < 1 {
		attempts = 1
	}
	d.pollAttempts = attempts
	d.pollInterval = interval
}

// SetSleep replaces the delay function used between readiness checks,
// time.Sleep by default
func (d *Device) SetSleep(sleep func(time.Duration)) {
	if sleep == nil {
		sleep = time.Sleep
	}
	d.sleep = sleep
}

// TimeoutOccurred reports whether a Read gave up waiting for valid data since
// the last call
func (d *Device) TimeoutOccurred() bool {
	tmp := d.didTimeout
	d.didTimeout = false
	return tmp
}

// waitReady polls the status register until proximity data is valid or the
// attempts run out
func (d *Device) waitReady() bool {

	for i := 0; i < d.pollAttempts; i++ {

		if d.ProximityReady() {
			return true
		}

		d.sleep(d.pollInterval)
	}

	return false
}
