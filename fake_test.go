package tmd26721

import (
	"errors"
	"fmt"
	"time"
)

var errBus = errors.New("bus error")

// fakeChip emulates the TMD26721 register file and injects bus failures
type fakeChip struct {
	addr uint16
	regs [0x20]uint8

	// writes holds every attempted register write, failed ones included
	writes []RegisterWrite
	// failWrite fails the write attempts with the given index
	failWrite map[int]bool
	// failAllWrites fails every write attempt
	failAllWrites bool

	// readyAfter is the number of status reads that report not ready before
	// the valid bit is set; negative means never
	readyAfter  int
	statusReads int
	failStatus  bool

	dataReads int
	failData  bool
}

func newFakeChip() *fakeChip {
	return &fakeChip{
		addr:      uint16(Address),
		failWrite: map[int]bool{},
	}
}

func (f *fakeChip) Tx(addr uint16, w, r []byte) error {

	if addr != f.addr {
		return fmt.Errorf("nack from 0x%02X", addr)
	}

	if len(w) == 0 || w[0]&CommandBit == 0 {
		return fmt.Errorf("missing command byte in %#v", w)
	}

	reg := w[0] &^ (CommandBit | AutoIncrement)

	if len(r) == 0 {
		if len(w) != 2 {
			return fmt.Errorf("unexpected write %#v", w)
		}

		idx := len(f.writes)
		f.writes = append(f.writes, RegisterWrite{reg, w[1]})

		if f.failAllWrites || f.failWrite[idx] {
			return errBus
		}

		f.regs[reg] = w[1]
		return nil
	}

	switch reg {
	case STATUS:
		f.statusReads++

		if f.failStatus {
			return errBus
		}

		r[0] = 0

		if f.readyAfter >= 0 && f.statusReads > f.readyAfter {
			r[0] = statusProximityValid
		}

		return nil

	case PDATAL:
		f.dataReads++

		if f.failData {
			return errBus
		}

		if len(r) > 1 && w[0]&AutoIncrement == 0 {
			return fmt.Errorf("multi byte read without auto increment")
		}

		copy(r, f.regs[reg:])
		return nil
	}

	return fmt.Errorf("unexpected read of register 0x%02X", reg)
}

// setProximity loads the data registers with a proximity count
func (f *fakeChip) setProximity(v uint16) {
	f.regs[PDATAL] = uint8(v)
	f.regs[PDATAH] = uint8(v >> 8)
}

// sleepRecorder replaces time.Sleep and keeps every requested delay
type sleepRecorder struct {
	delays []time.Duration
}

func (s *sleepRecorder) sleep(d time.Duration) {
	s.delays = append(s.delays, d)
}

// newTestDevice returns an unbound device that does not sleep
func newTestDevice() (*Device, *sleepRecorder) {
	d := New()
	s := &sleepRecorder{}
	d.SetSleep(s.sleep)
	return d, s
}
