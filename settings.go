package tmd26721

import (
	"errors"
	"fmt"
)

// DriveStrength represents the LED drive current as a fraction of full
// current.  Values are the bit pattern of the CONTROL register bits 7:6.
type DriveStrength uint8

const (
	LED100Percent DriveStrength = 0x00
	LED50Percent  DriveStrength = 0x40
	LED25Percent  DriveStrength = 0x80
	LED12Percent  DriveStrength = 0xC0
)

// LEDChannel selects the diode used for proximity detection.  Values are the
// bit pattern of the CONTROL register bits 5:4.
type LEDChannel uint8

const (
	LEDNone     LEDChannel = 0x00
	LEDChannel0 LEDChannel = 0x10
	LEDChannel1 LEDChannel = 0x20
)

// Gain represents the analog gain of the proximity detector.  Values are the
// bit pattern of the CONTROL register bits 3:2.
type Gain uint8

const (
	Gain1X Gain = 0x00
	Gain2X Gain = 0x04
	Gain4X Gain = 0x08
	Gain8X Gain = 0x0C
)

// ErrInvalidControl is returned when a drive strength, channel or gain value
// is not one of the defined constants
var ErrInvalidControl = errors.New("tmd26721: invalid control value")

var driveStrengthNames = map[DriveStrength]string{
	LED100Percent: "100%",
	LED50Percent:  "50%",
	LED25Percent:  "25%",
	LED12Percent:  "12%",
}

var channelNames = map[LEDChannel]string{
	LEDNone:     "none",
	LEDChannel0: "ch0",
	LEDChannel1: "ch1",
}

var gainNames = map[Gain]string{
	Gain1X: "1x",
	Gain2X: "2x",
	Gain4X: "4x",
	Gain8X: "8x",
}

// Valid reports whether s is one of the defined drive strengths
func (s DriveStrength) Valid() bool {
	_, ok := driveStrengthNames[s]
	return ok
}

// String implement Stringer interface for DriveStrength
func (s DriveStrength) String() string {
	if name, ok := driveStrengthNames[s]; ok {
		return name
	}
	return fmt.Sprintf("DriveStrength(0x%02X)", uint8(s))
}

// MarshalText implements encoding.TextMarshaler
func (s DriveStrength) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: drive strength 0x%02X", ErrInvalidControl, uint8(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *DriveStrength) UnmarshalText(text []byte) error {
	for k, name := range driveStrengthNames {
		if name == string(text) {
			*s = k
			return nil
		}
	}
	return fmt.Errorf("%w: drive strength %q", ErrInvalidControl, text)
}

// Valid reports whether c is one of the defined LED channels
func (c LEDChannel) Valid() bool {
	_, ok := channelNames[c]
	return ok
}

// String implement Stringer interface for LEDChannel
func (c LEDChannel) String() string {
	if name, ok := channelNames[c]; ok {
		return name
	}
	return fmt.Sprintf("LEDChannel(0x%02X)", uint8(c))
}

// MarshalText implements encoding.TextMarshaler
func (c LEDChannel) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: LED channel 0x%02X", ErrInvalidControl, uint8(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (c *LEDChannel) UnmarshalText(text []byte) error {
	for k, name := range channelNames {
		if name == string(text) {
			*c = k
			return nil
		}
	}
	return fmt.Errorf("%w: LED channel %q", ErrInvalidControl, text)
}

// Valid reports whether g is one of the defined gains
func (g Gain) Valid() bool {
	_, ok := gainNames[g]
	return ok
}

// String implement Stringer interface for Gain
func (g Gain) String() string {
	if name, ok := gainNames[g]; ok {
		return name
	}
	return fmt.Sprintf("Gain(0x%02X)", uint8(g))
}

// MarshalText implements encoding.TextMarshaler
func (g Gain) MarshalText() ([]byte, error) {
	if !g.Valid() {
		return nil, fmt.Errorf("%w: gain 0x%02X", ErrInvalidControl, uint8(g))
	}
	return []byte(g.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (g *Gain) UnmarshalText(text []byte) error {
	for k, name := range gainNames {
		if name == string(text) {
			*g = k
			return nil
		}
	}
	return fmt.Errorf("%w: gain %q", ErrInvalidControl, text)
}

// Config holds the measurement settings written to the chip on every
// initialization
type Config struct {
	PulseCount    uint8
	DriveStrength DriveStrength
	Channel       LEDChannel
	Gain          Gain
}

// DefaultConfig returns the settings a new Device starts with: 8 pulses,
// 100% drive strength, channel 1 diode and 4x gain
func DefaultConfig() Config {
	return Config{
		PulseCount:    DefaultPulseCount,
		DriveStrength: LED100Percent,
		Channel:       LEDChannel1,
		Gain:          Gain4X,
	}
}

// Validate reports the first control field that is not a defined value
func (c Config) Validate() error {
	if !c.DriveStrength.Valid() {
		return fmt.Errorf("%w: drive strength 0x%02X", ErrInvalidControl, uint8(c.DriveStrength))
	}
	if !c.Channel.Valid() {
		return fmt.Errorf("%w: LED channel 0x%02X", ErrInvalidControl, uint8(c.Channel))
	}
	if !c.Gain.Valid() {
		return fmt.Errorf("%w: gain 0x%02X", ErrInvalidControl, uint8(c.Gain))
	}
	return nil
}

// Control returns the CONTROL register value, the bitwise OR of drive
// strength, LED channel and gain
func (c Config) Control() (uint8, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}
	return uint8(c.DriveStrength) | uint8(c.Channel) | uint8(c.Gain), nil
}

// Config returns the settings last requested by the caller.  These are kept
// even when writing them to the chip failed.
func (d *Device) Config() Config {
	return Config{
		PulseCount:    d.pulseCount,
		DriveStrength: d.driveStrength,
		Channel:       d.channel,
		Gain:          d.gain,
	}
}

// SetConfig replaces all measurement settings and reinitializes the sensor
func (d *Device) SetConfig(cfg Config) error {

	if err := d.Configure(cfg); err != nil {
		return err
	}

	return d.Reinitialize()
}

// Configure stores the measurement settings without writing them.  They are
// sent by the next Begin or Reinitialize, which lets a device be configured
// before it is bound to a bus.
func (d *Device) Configure(cfg Config) error {

	if err := cfg.Validate(); err != nil {
		return err
	}

	d.pulseCount = cfg.PulseCount
	d.driveStrength = cfg.DriveStrength
	d.channel = cfg.Channel
	d.gain = cfg.Gain
	d.initialized = false

	return nil
}

// SetPulseCount sets the number of LED pulses per proximity cycle and
// reinitializes the sensor
func (d *Device) SetPulseCount(count uint8) error {
	d.pulseCount = count
	return d.Reinitialize()
}

// SetControlValues sets the LED channel, LED drive strength and proximity
// gain, then reinitializes the sensor.  The three values are validated
// where they are combined into the CONTROL byte: values outside the defined
// constants are rejected before any setting is stored, so the tracked
// settings only ever hold values the chip accepts.
func (d *Device) SetControlValues(channel LEDChannel, strength DriveStrength,
	gain Gain) error {

	cfg := d.Config()
	cfg.Channel = channel
	cfg.DriveStrength = strength
	cfg.Gain = gain

	if err := cfg.Validate(); err != nil {
		return err
	}

	d.channel = channel
	d.driveStrength = strength
	d.gain = gain

	return d.Reinitialize()
}

// SetControlRegister writes value to register reg in command mode.  The
// tracked settings are not updated and no initialization is run, so a later
// Reinitialize will overwrite any register it covers.
func (d *Device) SetControlRegister(reg uint8, value uint8) error {
	return d.writeReg(reg, value)
}
