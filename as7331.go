// Package as7331 implements a driver for the ams AS7331 spectral UV sensor
// (UV-A, UV-B, UV-C and temperature) over I2C.
//
// The driver is a thin encoder/decoder over the chip's registers: it does
// not validate state transitions, does not retry failed transactions and
// does not convert raw counts to irradiance. The chip itself is the
// authority on legal transitions; timing and sequencing belong to the
// caller.
//
// Typical usage:
//
//	d := as7331.New(bus)
//	err := d.Init(ctx, as7331.Config{
//		Gain:  as7331.Gain64,
//		Time:  as7331.Time64,
//		Mode:  as7331.ModeCommand,
//		Clock: as7331.Clock1024,
//	})
//	...
//	err = d.SetMeasurementMode(ctx)
//	err = d.OneShot(ctx)
//	m, err := d.ReadAll(ctx)
package as7331

import (
	"context"
	"encoding/binary"
	"log/slog"
)

// DefaultAddress is the 7-bit I2C address of the AS7331 with both address
// pins pulled low. A0/A1 select 0x74..0x77.
const DefaultAddress = 0x74

// AS7331 represents a single sensor on the bus. It assumes exclusive
// ownership of the device: read-modify-write sequences span two bus
// transactions with no atomicity guarantee in between.
type AS7331 struct {
	transport I2CBus
	addr      byte

	// last DOS the driver commanded or observed, used only to warn about
	// configuration writes issued while the measurement bank is selected
	lastState DeviceState
}

type ConfigOption func(*AS7331)

func WithAddress(address byte) ConfigOption {
	return func(d *AS7331) {
		d.addr = address
	}
}

// New creates a driver instance on the given transport. The bus handle is
// owned by the driver until Release is called; no other component may issue
// transactions to the device in the meantime.
func New(trans I2CBus, opts ...ConfigOption) *AS7331 {
	d := &AS7331{
		transport: trans,
		addr:      DefaultAddress,
		lastState: StateNop,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Release returns bus ownership to the caller.
func (d *AS7331) Release(ctx context.Context) error {
	return d.transport.Release(ctx)
}

// ChipID reads the AGEN register and returns the raw byte. The driver does
// not check it against an expected value; callers use it to verify the part
// present at the configured address.
func (d *AS7331) ChipID(ctx context.Context) (byte, error) {
	buf := make([]byte, 1)
	if err := d.readRegister(ctx, regAGEN, buf); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// Init writes the measurement configuration: CREG1 (gain and time), CREG3
// (mode, standby and clock) and the break time register, in that order.
// The device must be in configuration state; Init does not check and the
// result of calling it in measurement state is chip-defined.
func (d *AS7331) Init(ctx context.Context, cfg Config) error {
	if d.lastState == StateMeasurement {
		slog.Warn("as7331: configuration write while measurement bank selected", "addr", d.addr)
	}
	if err := d.writeRegister(ctx, regCREG1, cfg.creg1()); err != nil {
		return err
	}
	if err := d.writeRegister(ctx, regCREG3, cfg.creg3()); err != nil {
		return err
	}
	return d.writeRegister(ctx, regBreak, cfg.BreakTime)
}

// OneShot starts a single measurement in CMD mode by setting the SS bit of
// the OSR register, preserving the remaining bits.
func (d *AS7331) OneShot(ctx context.Context) error {
	return d.updateOSR(ctx, func(osr byte) byte { return osr | osrSS })
}

// PowerUp sets the PD bit of the OSR register, PowerDown clears it.
// The methods map one-to-one onto the bit operation; consult the datasheet
// for the polarity of the resulting power state.
func (d *AS7331) PowerUp(ctx context.Context) error {
	return d.updateOSR(ctx, func(osr byte) byte { return osr | osrPD })
}

// PowerDown clears the PD bit of the OSR register.
func (d *AS7331) PowerDown(ctx context.Context) error {
	return d.updateOSR(ctx, func(osr byte) byte { return osr &^ osrPD })
}

// Reset sets the software reset bit of the OSR register. It does not wait
// for the reset to complete; the caller must allow settling time before
// issuing further operations.
func (d *AS7331) Reset(ctx context.Context) error {
	err := d.updateOSR(ctx, func(osr byte) byte { return osr | osrSWRes })
	if err != nil {
		return err
	}
	d.lastState = StateNop
	return nil
}

// SetConfigurationMode switches DOS to configuration state by setting bit 1
// of the OSR register, preserving the remaining bits.
func (d *AS7331) SetConfigurationMode(ctx context.Context) error {
	err := d.updateOSR(ctx, func(osr byte) byte { return osr | dosConfiguration })
	if err != nil {
		return err
	}
	d.lastState = StateConfiguration
	return nil
}

// SetMeasurementMode switches DOS to measurement state and starts a
// measurement by writing SS|DOS = 0x83 directly to the OSR register.
//
// Unlike the other OSR setters this is a plain write from a zero base, so
// any other bit that was set (PD in particular) is cleared. The write is
// kept single-transaction on purpose and the resulting register value is
// always 0x83; use Mode first if the other bits matter.
func (d *AS7331) SetMeasurementMode(ctx context.Context) error {
	err := d.writeRegister(ctx, regOSR, osrSS|dosMeasurement)
	if err != nil {
		return err
	}
	d.lastState = StateMeasurement
	return nil
}

// Mode reads and decodes the OSR register.
func (d *AS7331) Mode(ctx context.Context) (OperatingState, error) {
	buf := make([]byte, 2)
	if err := d.readRegister(ctx, regOSR, buf); err != nil {
		return OperatingState{}, err
	}
	state := decodeOperatingState(buf[0])
	d.lastState = state.State
	return state, nil
}

// Status reads the measurement-bank status register. The burst returns the
// OSR mirror first and the status flags second; only the flags are decoded.
// Valid only while the device is in measurement state.
func (d *AS7331) Status(ctx context.Context) (Status, error) {
	buf := make([]byte, 2)
	if err := d.readRegister(ctx, regStatus, buf); err != nil {
		return Status{}, err
	}
	return decodeStatus(buf[1]), nil
}

// Temperature reads the raw temperature result.
func (d *AS7331) Temperature(ctx context.Context) (uint16, error) {
	return d.readResult(ctx, regTemp)
}

// UVA reads the raw UV-A result.
func (d *AS7331) UVA(ctx context.Context) (uint16, error) {
	return d.readResult(ctx, regMRES1)
}

// UVB reads the raw UV-B result.
func (d *AS7331) UVB(ctx context.Context) (uint16, error) {
	return d.readResult(ctx, regMRES2)
}

// UVC reads the raw UV-C result.
func (d *AS7331) UVC(ctx context.Context) (uint16, error) {
	return d.readResult(ctx, regMRES3)
}

// ReadAll reads temperature and all three UV channels in one 8-byte burst,
// equivalent to four individual reads but a single bus transaction.
func (d *AS7331) ReadAll(ctx context.Context) (Measurement, error) {
	buf := make([]byte, 8)
	if err := d.readRegister(ctx, regTemp, buf); err != nil {
		return Measurement{}, err
	}
	return Measurement{
		Temperature: binary.LittleEndian.Uint16(buf[0:2]),
		UVA:         binary.LittleEndian.Uint16(buf[2:4]),
		UVB:         binary.LittleEndian.Uint16(buf[4:6]),
		UVC:         binary.LittleEndian.Uint16(buf[6:8]),
	}, nil
}

func (d *AS7331) readResult(ctx context.Context, reg byte) (uint16, error) {
	buf := make([]byte, 2)
	if err := d.readRegister(ctx, reg, buf); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf), nil
}

// updateOSR performs a read-modify-write of the OSR register. The two
// transactions are not atomic; a transport failure on the read
// short-circuits and the write is never issued.
func (d *AS7331) updateOSR(ctx context.Context, mod func(byte) byte) error {
	buf := make([]byte, 1)
	if err := d.readRegister(ctx, regOSR, buf); err != nil {
		return err
	}
	return d.writeRegister(ctx, regOSR, mod(buf[0]))
}
