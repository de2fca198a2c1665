package as7331

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockI2CBus is a mock implementation of I2CBus using testify/mock
type MockI2CBus struct {
	mock.Mock
}

func (m *MockI2CBus) WriteToAddr(ctx context.Context, address byte, buffer []byte) error {
	args := m.Called(ctx, address, buffer)
	return args.Error(0)
}

func (m *MockI2CBus) ReadFromAddr(ctx context.Context, address byte, buffer []byte) error {
	args := m.Called(ctx, address, buffer)
	if args.Get(0) != nil {
		if data, ok := args.Get(0).([]byte); ok && len(data) <= len(buffer) {
			copy(buffer, data)
		}
	}
	return args.Error(1)
}

func (m *MockI2CBus) Release(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// expectRegisterRead sets up the select-then-read pair a register read
// issues on the bus.
func expectRegisterRead(bus *MockI2CBus, reg byte, data []byte) {
	bus.On("WriteToAddr", mock.Anything, byte(DefaultAddress), []byte{reg}).
		Return(nil).Once()
	bus.On("ReadFromAddr", mock.Anything, byte(DefaultAddress), mock.Anything).
		Return(data, nil).Once()
}

func TestAS7331_ChipID(t *testing.T) {
	bus := new(MockI2CBus)
	d := New(bus)
	ctx := context.Background()

	expectRegisterRead(bus, regAGEN, []byte{0x21})

	id, err := d.ChipID(ctx)
	assert.NoError(t, err)
	assert.Equal(t, byte(0x21), id)
	bus.AssertExpectations(t)
}

func TestAS7331_Init_GainTimeEncoding(t *testing.T) {
	ctx := context.Background()
	for gain := Gain2048; gain <= Gain1; gain++ {
		for time := Time1; time <= Time16384; time++ {
			t.Run(fmt.Sprintf("%s_%s", gain, time), func(t *testing.T) {
				bus := new(MockI2CBus)
				d := New(bus)

				want := byte(gain)<<4 | byte(time)
				bus.On("WriteToAddr", mock.Anything, byte(DefaultAddress), []byte{regCREG1, want}).
					Return(nil).Once()
				bus.On("WriteToAddr", mock.Anything, byte(DefaultAddress), []byte{regCREG3, 0x40}).
					Return(nil).Once()
				bus.On("WriteToAddr", mock.Anything, byte(DefaultAddress), []byte{regBreak, 0x00}).
					Return(nil).Once()

				err := d.Init(ctx, Config{Gain: gain, Time: time, Mode: ModeCommand})
				assert.NoError(t, err)
				bus.AssertExpectations(t)
			})
		}
	}
}

func TestAS7331_Init_WriteOrder(t *testing.T) {
	bus := new(MockI2CBus)
	d := New(bus)
	ctx := context.Background()

	bus.On("WriteToAddr", mock.Anything, byte(DefaultAddress), mock.Anything).
		Return(nil).Times(3)

	err := d.Init(ctx, Config{
		Gain:      Gain16,
		Time:      Time256,
		Mode:      ModeContinuous,
		Clock:     Clock8192,
		SyncBreak: true,
		BreakTime: 0x25,
	})
	assert.NoError(t, err)

	assert.Len(t, bus.Calls, 3)
	assert.Equal(t, []byte{regCREG1, 0x78}, bus.Calls[0].Arguments.Get(2))
	assert.Equal(t, []byte{regCREG3, 0x13}, bus.Calls[1].Arguments.Get(2))
	assert.Equal(t, []byte{regBreak, 0x25}, bus.Calls[2].Arguments.Get(2))
}

func TestAS7331_Init_WriteFailureShortCircuits(t *testing.T) {
	bus := new(MockI2CBus)
	d := New(bus)
	ctx := context.Background()

	busErr := errors.New("nack")
	bus.On("WriteToAddr", mock.Anything, byte(DefaultAddress), mock.Anything).
		Return(busErr).Once()

	err := d.Init(ctx, Config{Gain: Gain1, Time: Time1})
	assert.ErrorIs(t, err, busErr)
	var terr *TransportError
	assert.ErrorAs(t, err, &terr)
	assert.Equal(t, regCREG1, terr.Reg)
	bus.AssertNumberOfCalls(t, "WriteToAddr", 1)
}

func TestAS7331_Status(t *testing.T) {
	bus := new(MockI2CBus)
	d := New(bus)
	ctx := context.Background()

	// first byte of the burst is the OSR mirror and must be ignored
	expectRegisterRead(bus, regStatus, []byte{0xFF, 0b10110001})

	status, err := d.Status(ctx)
	assert.NoError(t, err)
	assert.Equal(t, Status{
		PowerDown:       true,
		LostData:        true,
		ADCOverflow:     true,
		OutConvOverflow: true,
	}, status)
	bus.AssertExpectations(t)
}

func TestAS7331_ReadAll(t *testing.T) {
	bus := new(MockI2CBus)
	d := New(bus)
	ctx := context.Background()

	expectRegisterRead(bus, regTemp, []byte{0x34, 0x12, 0x78, 0x56, 0xBC, 0x9A, 0xF0, 0xDE})

	m, err := d.ReadAll(ctx)
	assert.NoError(t, err)
	assert.Equal(t, Measurement{
		Temperature: 0x1234,
		UVA:         0x5678,
		UVB:         0x9ABC,
		UVC:         0xDEF0,
	}, m)
	bus.AssertExpectations(t)
}

func TestAS7331_ResultReads(t *testing.T) {
	tests := []struct {
		name string
		reg  byte
		read func(*AS7331, context.Context) (uint16, error)
	}{
		{"temperature", regTemp, (*AS7331).Temperature},
		{"uva", regMRES1, (*AS7331).UVA},
		{"uvb", regMRES2, (*AS7331).UVB},
		{"uvc", regMRES3, (*AS7331).UVC},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := new(MockI2CBus)
			d := New(bus)

			expectRegisterRead(bus, tt.reg, []byte{0xCD, 0xAB})

			val, err := tt.read(d, context.Background())
			assert.NoError(t, err)
			assert.Equal(t, uint16(0xABCD), val)
			bus.AssertExpectations(t)
		})
	}
}

func TestAS7331_OSRReadModifyWrite(t *testing.T) {
	tests := []struct {
		name string
		op   func(*AS7331, context.Context) error
		osr  byte
		want byte
	}{
		{"one shot sets SS", (*AS7331).OneShot, 0x43, 0xC3},
		{"one shot idempotent", (*AS7331).OneShot, 0x83, 0x83},
		{"power up sets PD", (*AS7331).PowerUp, 0x03, 0x43},
		{"power up idempotent", (*AS7331).PowerUp, 0x42, 0x42},
		{"power down clears PD", (*AS7331).PowerDown, 0x43, 0x03},
		{"power down idempotent", (*AS7331).PowerDown, 0x02, 0x02},
		{"reset sets SW_RES", (*AS7331).Reset, 0x42, 0x4A},
		{"reset idempotent", (*AS7331).Reset, 0x08, 0x08},
		{"configuration mode sets DOS", (*AS7331).SetConfigurationMode, 0x40, 0x42},
		{"configuration mode idempotent", (*AS7331).SetConfigurationMode, 0x42, 0x42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := new(MockI2CBus)
			d := New(bus)

			expectRegisterRead(bus, regOSR, []byte{tt.osr})
			bus.On("WriteToAddr", mock.Anything, byte(DefaultAddress), []byte{regOSR, tt.want}).
				Return(nil).Once()

			err := tt.op(d, context.Background())
			assert.NoError(t, err)
			bus.AssertExpectations(t)
			// exactly one read and one write of OSR
			bus.AssertNumberOfCalls(t, "ReadFromAddr", 1)
			bus.AssertNumberOfCalls(t, "WriteToAddr", 2)
		})
	}
}

func TestAS7331_OSRReadFailureShortCircuits(t *testing.T) {
	ops := []struct {
		name string
		op   func(*AS7331, context.Context) error
	}{
		{"one shot", (*AS7331).OneShot},
		{"power up", (*AS7331).PowerUp},
		{"power down", (*AS7331).PowerDown},
		{"reset", (*AS7331).Reset},
		{"configuration mode", (*AS7331).SetConfigurationMode},
	}
	for _, tt := range ops {
		t.Run(tt.name+"/select fails", func(t *testing.T) {
			bus := new(MockI2CBus)
			d := New(bus)

			busErr := errors.New("arbitration lost")
			bus.On("WriteToAddr", mock.Anything, byte(DefaultAddress), []byte{regOSR}).
				Return(busErr).Once()

			err := tt.op(d, context.Background())
			assert.ErrorIs(t, err, busErr)
			// the write-back must never be issued
			bus.AssertNumberOfCalls(t, "WriteToAddr", 1)
			bus.AssertNumberOfCalls(t, "ReadFromAddr", 0)
		})
		t.Run(tt.name+"/read fails", func(t *testing.T) {
			bus := new(MockI2CBus)
			d := New(bus)

			busErr := errors.New("timeout")
			bus.On("WriteToAddr", mock.Anything, byte(DefaultAddress), []byte{regOSR}).
				Return(nil).Once()
			bus.On("ReadFromAddr", mock.Anything, byte(DefaultAddress), mock.Anything).
				Return(nil, busErr).Once()

			err := tt.op(d, context.Background())
			assert.ErrorIs(t, err, busErr)
			bus.AssertNumberOfCalls(t, "WriteToAddr", 1)
		})
	}
}

func TestAS7331_SetMeasurementMode(t *testing.T) {
	// a plain write from a zero base: always 0x83, no prior read
	bus := new(MockI2CBus)
	d := New(bus)
	ctx := context.Background()

	bus.On("WriteToAddr", mock.Anything, byte(DefaultAddress), []byte{regOSR, 0x83}).
		Return(nil).Twice()

	assert.NoError(t, d.SetMeasurementMode(ctx))
	assert.NoError(t, d.SetMeasurementMode(ctx))
	bus.AssertExpectations(t)
	bus.AssertNumberOfCalls(t, "ReadFromAddr", 0)
}

func TestAS7331_Mode(t *testing.T) {
	bus := new(MockI2CBus)
	d := New(bus)
	ctx := context.Background()

	// only the first byte of the burst carries the register
	expectRegisterRead(bus, regOSR, []byte{0x83, 0xFF})

	state, err := d.Mode(ctx)
	assert.NoError(t, err)
	assert.Equal(t, OperatingState{
		State:            StateMeasurement,
		StartMeasurement: true,
	}, state)
	bus.AssertExpectations(t)
}

func TestAS7331_WithAddress(t *testing.T) {
	bus := new(MockI2CBus)
	d := New(bus, WithAddress(0x77))
	ctx := context.Background()

	bus.On("WriteToAddr", mock.Anything, byte(0x77), []byte{regAGEN}).
		Return(nil).Once()
	bus.On("ReadFromAddr", mock.Anything, byte(0x77), mock.Anything).
		Return([]byte{0x21}, nil).Once()

	_, err := d.ChipID(ctx)
	assert.NoError(t, err)
	bus.AssertExpectations(t)
}

func TestAS7331_Release(t *testing.T) {
	bus := new(MockI2CBus)
	d := New(bus)

	bus.On("Release", mock.Anything).Return(nil).Once()
	assert.NoError(t, d.Release(context.Background()))
	bus.AssertExpectations(t)
}
