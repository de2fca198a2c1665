package as7331

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus_Decode(t *testing.T) {
	tests := []struct {
		given    byte
		expected Status
	}{
		{0x00, Status{}},
		{0b10110001, Status{
			PowerDown:       true,
			LostData:        true,
			ADCOverflow:     true,
			OutConvOverflow: true,
		}},
		{0b00001100, Status{
			NotReady: true,
			NewData:  true,
		}},
		{0xFF, Status{
			PowerDown:       true,
			Standby:         true,
			NotReady:        true,
			NewData:         true,
			LostData:        true,
			ADCOverflow:     true,
			ResultOverflow:  true,
			OutConvOverflow: true,
		}},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("%#08b", test.given), func(t *testing.T) {
			assert.Equal(t, test.expected, decodeStatus(test.given))
		})
	}
}

func TestOperatingState_Decode(t *testing.T) {
	tests := []struct {
		given    byte
		expected OperatingState
	}{
		{0x00, OperatingState{State: StateNop}},
		{0x02, OperatingState{State: StateConfiguration}},
		{0x83, OperatingState{State: StateMeasurement, StartMeasurement: true}},
		{0x4A, OperatingState{State: StateConfiguration, PowerDown: true, SoftwareReset: true}},
		{0xC3, OperatingState{State: StateMeasurement, StartMeasurement: true, PowerDown: true}},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("%#02x", test.given), func(t *testing.T) {
			assert.Equal(t, test.expected, decodeOperatingState(test.given))
		})
	}
}

func TestDeviceState_String(t *testing.T) {
	assert.Equal(t, "NOP", StateNop.String())
	assert.Equal(t, "CONFIGURATION", StateConfiguration.String())
	assert.Equal(t, "MEASUREMENT", StateMeasurement.String())
	assert.Equal(t, "DeviceState(1)", DeviceState(1).String())
}
