package tmd26721

import "fmt"

const (
	// CommandBit marks a byte as a command (register select) byte
	CommandBit uint8 = 0x80
	// AutoIncrement makes consecutive reads advance through the register map
	AutoIncrement uint8 = 0x20
)

const (
	// Enable register: power, proximity, wait and proximity interrupt enable bits
	ENABLE uint8 = 0x00

	// Timing registers
	ATIME uint8 = 0x01
	PTIME uint8 = 0x02
	WTIME uint8 = 0x03

	// Proximity interrupt thresholds, low byte first
	PILTL uint8 = 0x08
	PILTH uint8 = 0x09
	PIHTL uint8 = 0x0A
	PIHTH uint8 = 0x0B

	// Interrupt persistence filter
	PERS uint8 = 0x0C

	// Configuration, holds the long wait enable bit
	CONFIG uint8 = 0x0D

	// Proximity pulse count
	PPULSE uint8 = 0x0E

	// Control: LED drive strength | LED channel | proximity gain
	CONTROL uint8 = 0x0F

	// Status, bit 1 is proximity valid
	STATUS uint8 = 0x13

	// Proximity data, low byte then high byte
	PDATAL uint8 = 0x18
	PDATAH uint8 = 0x19
)

const (
	// bits of the ENABLE register
	enablePowerOn   uint8 = 0x01
	enableProximity uint8 = 0x02
	enableWait      uint8 = 0x04
	enableProxIRQ   uint8 = 0x20

	// proximity valid bit of the STATUS register
	statusProximityValid uint8 = 0x02
)

// writeReg writes a 8 bit value to the register using a command byte
func (d *Device) writeReg(reg uint8, value uint8) error {

	if d.bus == nil {
		return ErrNotBound
	}

	buf := []byte{CommandBit | reg, value}

	if err := d.bus.Tx(uint16(d.addr), buf, nil); err != nil {
		return fmt.Errorf("write register 0x%02X: %w", reg, err)
	}

	return nil
}

// readReg reads an 8-bit value from a register
func (d *Device) readReg(reg uint8) (uint8, error) {

	if d.bus == nil {
		return 0, ErrNotBound
	}

	buf := make([]byte, 1)

	if err := d.bus.Tx(uint16(d.addr), []byte{CommandBit | reg}, buf); err != nil {
		return 0, fmt.Errorf("read register 0x%02X: %w", reg, err)
	}

	return buf[0], nil
}

// readReg16Bit reads a little-endian 16-bit value from a register pair with
// an auto-increment command
func (d *Device) readReg16Bit(reg uint8) (uint16, error) {

	if d.bus == nil {
		return 0, ErrNotBound
	}

	buf := make([]byte, 2)
	cmd := []byte{CommandBit | AutoIncrement | reg}

	if err := d.bus.Tx(uint16(d.addr), cmd, buf); err != nil {
		return 0, fmt.Errorf("read register 0x%02X: %w", reg, err)
	}

	return uint16(buf[0]) | uint16(buf[1])<<8, nil
}
