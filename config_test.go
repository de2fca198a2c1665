package as7331

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGain_Factor(t *testing.T) {
	assert.Equal(t, 2048, Gain2048.Factor())
	assert.Equal(t, 64, Gain64.Factor())
	assert.Equal(t, 1, Gain1.Factor())
	assert.Equal(t, "16x", Gain16.String())
}

func TestIntegrationTime_Cycles(t *testing.T) {
	assert.Equal(t, 1, Time1.Cycles())
	assert.Equal(t, 256, Time256.Cycles())
	assert.Equal(t, 16384, Time16384.Cycles())
}

func TestConversionClock_KHz(t *testing.T) {
	assert.Equal(t, 1024, Clock1024.KHz())
	assert.Equal(t, 8192, Clock8192.KHz())
	assert.Equal(t, "2048kHz", Clock2048.String())
}

func TestMeasurementMode_String(t *testing.T) {
	assert.Equal(t, "CONT", ModeContinuous.String())
	assert.Equal(t, "CMD", ModeCommand.String())
	assert.Equal(t, "SYNS", ModeSynStart.String())
	assert.Equal(t, "SYND", ModeSynStartEnd.String())
}

func TestConfig_Encoding(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		creg1 byte
		creg3 byte
	}{
		{
			name:  "defaults",
			cfg:   Config{},
			creg1: 0x00,
			creg3: 0x00,
		},
		{
			name:  "command mode with break",
			cfg:   Config{Gain: Gain64, Time: Time64, Mode: ModeCommand, Clock: Clock1024},
			creg1: 0x56,
			creg3: 0x40,
		},
		{
			name:  "continuous with sync break",
			cfg:   Config{Gain: Gain1, Time: Time16384, Mode: ModeContinuous, Clock: Clock8192, SyncBreak: true},
			creg1: 0xBE,
			creg3: 0x13,
		},
		{
			name:  "synd full house",
			cfg:   Config{Gain: Gain2048, Time: Time1, Mode: ModeSynStartEnd, Clock: Clock4096, SyncBreak: true},
			creg1: 0x00,
			creg3: 0xD2,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.creg1, test.cfg.creg1())
			assert.Equal(t, test.creg3, test.cfg.creg3())
		})
	}
}
