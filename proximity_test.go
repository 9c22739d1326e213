package tmd26721

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"periph.io/x/conn/v3/i2c/i2ctest"
	"tinygo.org/x/drivers/tester"
)

// beginFake returns a device initialized against a fake chip
func beginFake(t *testing.T) (*Device, *fakeChip, *sleepRecorder) {
	t.Helper()

	chip := newFakeChip()
	d, s := newTestDevice()

	if err := d.Begin(chip, Address); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}

	return d, chip, s
}

func TestReadProximity(t *testing.T) {
	tests := []struct {
		raw        uint16
		readyAfter int
	}{
		{0x0000, 0},
		{0x1234, 0},
		{0x0300, 2},
		{0xFFFF, 4},
	}

	for _, tt := range tests {
		d, chip, s := beginFake(t)
		chip.setProximity(tt.raw)
		chip.readyAfter = tt.readyAfter

		if got := d.ReadProximity(); got != int(tt.raw) {
			t.Errorf("ReadProximity() = %d, want %d", got, tt.raw)
		}
		if chip.statusReads != tt.readyAfter+1 {
			t.Errorf("status read %d times, want %d", chip.statusReads, tt.readyAfter+1)
		}
		if len(s.delays) != tt.readyAfter {
			t.Errorf("slept %d times, want %d", len(s.delays), tt.readyAfter)
		}
		if d.TimeoutOccurred() {
			t.Error("timeout reported for a successful read")
		}
	}
}

func TestReadWire(t *testing.T) {
	ops := playbackInit(defaultSequence)
	ops = append(ops,
		i2ctest.IO{Addr: uint16(Address), W: []byte{0x93}, R: []byte{0x00}},
		i2ctest.IO{Addr: uint16(Address), W: []byte{0x93}, R: []byte{0x02}},
		i2ctest.IO{Addr: uint16(Address), W: []byte{0xB8}, R: []byte{0xCD, 0xAB}},
	)
	bus := &i2ctest.Playback{Ops: ops, DontPanic: true}

	d, s := newTestDevice()
	if err := d.Begin(bus, Address); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}

	prox, err := d.Read()
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if prox != 0xABCD {
		t.Errorf("Read() = 0x%04X, want 0xABCD", prox)
	}
	if err := bus.Close(); err != nil {
		t.Error(err)
	}
	if diff := cmp.Diff([]time.Duration{3 * time.Millisecond}, s.delays); diff != "" {
		t.Errorf("delays mismatch (-want +got):\n%s", diff)
	}
}

func TestReadNotReady(t *testing.T) {
	d, chip, s := beginFake(t)
	chip.readyAfter = -1

	if got := d.ReadProximity(); got != -1 {
		t.Errorf("ReadProximity() = %d, want -1", got)
	}
	if chip.statusReads != PollAttempts {
		t.Errorf("status read %d times, want %d", chip.statusReads, PollAttempts)
	}
	if chip.dataReads != 0 {
		t.Errorf("data read %d times, want 0", chip.dataReads)
	}

	want := []time.Duration{
		PollInterval, PollInterval, PollInterval, PollInterval, PollInterval,
	}
	if diff := cmp.Diff(want, s.delays); diff != "" {
		t.Errorf("delays mismatch (-want +got):\n%s", diff)
	}
	if !d.Initialized() {
		t.Error("not ready cleared initialized")
	}
	if !d.TimeoutOccurred() {
		t.Error("timeout not reported")
	}
	if d.TimeoutOccurred() {
		t.Error("timeout reported twice")
	}

	if _, err := d.Read(); !errors.Is(err, ErrNotReady) {
		t.Errorf("Read() error = %v, want ErrNotReady", err)
	}
}

func TestReadStatusFailure(t *testing.T) {
	d, chip, _ := beginFake(t)
	chip.failStatus = true

	if got := d.ReadProximity(); got != -1 {
		t.Errorf("ReadProximity() = %d, want -1", got)
	}
	if chip.statusReads != PollAttempts {
		t.Errorf("status read %d times, want %d", chip.statusReads, PollAttempts)
	}
	if !d.Initialized() {
		t.Error("status failure cleared initialized")
	}
}

func TestReadDataFailure(t *testing.T) {
	d, chip, _ := beginFake(t)
	chip.failData = true
	chip.setProximity(512)

	if got := d.ReadProximity(); got != -1 {
		t.Errorf("ReadProximity() = %d, want -1", got)
	}
	if d.Initialized() {
		t.Error("failed data read left device initialized")
	}

	// the next read starts with a full initialization
	chip.failData = false
	chip.writes = nil

	if got := d.ReadProximity(); got != 512 {
		t.Errorf("ReadProximity() = %d, want 512", got)
	}
	if diff := cmp.Diff(defaultSequence, chip.writes); diff != "" {
		t.Errorf("reinitialization writes mismatch (-want +got):\n%s", diff)
	}
	if !d.Initialized() {
		t.Error("device not initialized after recovery")
	}
}

func TestReadInitFailure(t *testing.T) {
	chip := newFakeChip()
	chip.failAllWrites = true

	d, _ := newTestDevice()
	if err := d.Begin(chip, Address); err == nil {
		t.Fatal("Begin succeeded on a failing bus")
	}

	chip.writes = nil

	if got := d.ReadProximity(); got != -1 {
		t.Errorf("ReadProximity() = %d, want -1", got)
	}
	if len(chip.writes) != len(defaultSequence) {
		t.Errorf("got %d writes, want one sequence of %d", len(chip.writes), len(defaultSequence))
	}
	if chip.statusReads != 0 {
		t.Errorf("status polled %d times after failed init", chip.statusReads)
	}
}

func TestReadUnbound(t *testing.T) {
	d, _ := newTestDevice()

	if _, err := d.Read(); !errors.Is(err, ErrNotBound) {
		t.Errorf("Read() error = %v, want ErrNotBound", err)
	}
	if d.ProximityReady() {
		t.Error("unbound device reports ready")
	}
}

func TestProximityReady(t *testing.T) {
	d, chip, _ := beginFake(t)

	chip.readyAfter = 1
	if d.ProximityReady() {
		t.Error("ready before valid bit set")
	}
	if !d.ProximityReady() {
		t.Error("not ready after valid bit set")
	}

	chip.failStatus = true
	if d.ProximityReady() {
		t.Error("ready on failed status read")
	}
	if _, err := d.ProximityStatus(); !errors.Is(err, errBus) {
		t.Errorf("ProximityStatus() error = %v, want bus error", err)
	}
}

func TestSetPollTiming(t *testing.T) {
	d, chip, s := beginFake(t)
	chip.readyAfter = -1
	d.SetPollTiming(2, time.Millisecond)

	if _, err := d.Read(); !errors.Is(err, ErrNotReady) {
		t.Errorf("Read() error = %v, want ErrNotReady", err)
	}
	if chip.statusReads != 2 {
		t.Errorf("status read %d times, want 2", chip.statusReads)
	}
	if diff := cmp.Diff([]time.Duration{time.Millisecond, time.Millisecond}, s.delays); diff != "" {
		t.Errorf("delays mismatch (-want +got):\n%s", diff)
	}

	d.SetPollTiming(0, 0)
	chip.statusReads = 0
	if _, err := d.Read(); !errors.Is(err, ErrNotReady) {
		t.Errorf("Read() error = %v, want ErrNotReady", err)
	}
	if chip.statusReads != 1 {
		t.Errorf("status read %d times, want 1", chip.statusReads)
	}
}

func TestReadRegisterFileBus(t *testing.T) {
	bus := tester.NewI2CBus(t)
	dev := bus.NewDevice(Address)

	d, _ := newTestDevice()
	if err := d.Begin(bus, Address); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}

	// the mock keys registers by the full command byte
	if got := dev.Registers[CommandBit|CONTROL]; got != 0x28 {
		t.Errorf("CONTROL = 0x%02X, want 0x28", got)
	}
	if got := dev.Registers[CommandBit|PPULSE]; got != DefaultPulseCount {
		t.Errorf("PPULSE = %d, want %d", got, DefaultPulseCount)
	}
	if got := dev.Registers[CommandBit|ENABLE]; got != 0x27 {
		t.Errorf("ENABLE = 0x%02X, want 0x27", got)
	}

	dev.Registers[CommandBit|STATUS] = statusProximityValid
	dev.Registers[CommandBit|AutoIncrement|PDATAL] = 0x2A
	dev.Registers[CommandBit|AutoIncrement|PDATAH] = 0x01

	if got := d.ReadProximity(); got != 0x012A {
		t.Errorf("ReadProximity() = %d, want %d", got, 0x012A)
	}
}
