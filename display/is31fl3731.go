package display

import (
	"fmt"
	"io"
	"time"

	"periph.io/x/conn/v3/i2c"
)

// IS31FL3731 register map.
const (
	regBank       = 0xFD // Command register: selects a frame or the function bank
	bankFunction  = 0x0B
	regMode       = 0x00
	regFrame      = 0x01 // Picture display frame
	regAudioSync  = 0x06
	regShutdown   = 0x0A
	modePicture   = 0x00
	offsetEnable  = 0x00
	offsetPWM     = 0x24
	enableBytes   = 18
	pwmBytes      = 144
	maxWriteChunk = 32
)

// IS31FL3731 drives a Scroll pHAT HD style 17x7 matrix over I2C.
// Two of the chip's eight frames are used as a front and back buffer.
type IS31FL3731 struct {
	dev           *i2c.Dev
	bus           i2c.Bus
	width, height int

	buf   [pwmBytes]byte
	frame byte // Back buffer, the frame BeginFrame draws into
}

// NewIS31FL3731 wakes the chip, enables every LED on both buffers and blanks them.
func NewIS31FL3731(bus i2c.Bus, addr uint16, width, height int) (*IS31FL3731, error) {
	if width*height > pwmBytes {
		return nil, fmt.Errorf("is31fl3731: %dx%d grid exceeds %d LEDs", width, height, pwmBytes)
	}
	d := &IS31FL3731{
		dev:    &i2c.Dev{Bus: bus, Addr: addr},
		bus:    bus,
		width:  width,
		height: height,
		frame:  1,
	}
	if err := d.init(); err != nil {
		return nil, fmt.Errorf("is31fl3731: init: %w", err)
	}
	return d, nil
}

func (d *IS31FL3731) init() error {
	if err := d.writeFunction(regShutdown, 0); err != nil {
		return err
	}
	time.Sleep(10 * time.Millisecond)
	if err := d.writeFunction(regShutdown, 1); err != nil {
		return err
	}
	if err := d.writeFunction(regMode, modePicture); err != nil {
		return err
	}
	if err := d.writeFunction(regAudioSync, 0); err != nil {
		return err
	}

	enable := make([]byte, enableBytes)
	for i := range enable {
		enable[i] = 0xFF
	}
	var blank [pwmBytes]byte
	for _, frame := range []byte{0, 1} {
		if err := d.selectBank(frame); err != nil {
			return err
		}
		if err := d.writeBlock(offsetEnable, enable); err != nil {
			return err
		}
		if err := d.writeBlock(offsetPWM, blank[:]); err != nil {
			return err
		}
	}
	return d.writeFunction(regFrame, 0)
}

func (d *IS31FL3731) Size() (int, int) { return d.width, d.height }

// SetPixel writes one LED of the back buffer. Out-of-range writes are ignored.
func (d *IS31FL3731) SetPixel(col, row, brightness int) {
	if col < 0 || col >= d.width || row < 0 || row >= d.height {
		return
	}
	d.buf[ledAddress(col, row)] = byte(clampLevel(brightness))
}

// ledAddress maps a grid position to the chip's PWM register offset on the
// Scroll pHAT HD, whose two 9-column halves are wired in opposite directions.
func ledAddress(col, row int) int {
	if col > 8 {
		col -= 8
		row = 6 - (row + 8)
	} else {
		col = 8 - col
	}
	return col*16 + row
}

func (d *IS31FL3731) BeginFrame() {}

func (d *IS31FL3731) Clear() {
	d.buf = [pwmBytes]byte{}
}

// Present uploads the back buffer, shows it and swaps buffers.
// Bus errors are reported as ErrUnavailable.
func (d *IS31FL3731) Present() error {
	if err := d.selectBank(d.frame); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err := d.writeBlock(offsetPWM, d.buf[:]); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err := d.writeFunction(regFrame, d.frame); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	d.frame ^= 1
	return nil
}

// Close puts the chip into software shutdown and closes the bus if it is closable.
func (d *IS31FL3731) Close() error {
	err := d.writeFunction(regShutdown, 0)
	if c, ok := d.bus.(io.Closer); ok {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func (d *IS31FL3731) selectBank(bank byte) error {
	return d.dev.Tx([]byte{regBank, bank}, nil)
}

func (d *IS31FL3731) writeFunction(reg, value byte) error {
	if err := d.selectBank(bankFunction); err != nil {
		return err
	}
	return d.dev.Tx([]byte{reg, value}, nil)
}

// writeBlock writes data starting at register offset in chunks the bus accepts.
func (d *IS31FL3731) writeBlock(offset byte, data []byte) error {
	for start := 0; start < len(data); start += maxWriteChunk {
		end := min(start+maxWriteChunk, len(data))
		w := make([]byte, 0, end-start+1)
		w = append(w, offset+byte(start))
		w = append(w, data[start:end]...)
		if err := d.dev.Tx(w, nil); err != nil {
			return err
		}
	}
	return nil
}
