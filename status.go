package as7331

import "fmt"

// Status holds the eight flags of the measurement-bank status byte, one
// named field per bit (PowerDown is bit 0, OutConvOverflow is bit 7).
// The driver reports the flags as the chip sets them and does not interpret
// them further.
type Status struct {
	PowerDown       bool `yaml:"power_down"`       // bit 0: device is powered down
	Standby         bool `yaml:"standby"`          // bit 1: device is in standby
	NotReady        bool `yaml:"not_ready"`        // bit 2: conversion in progress
	NewData         bool `yaml:"new_data"`         // bit 3: measurement results available
	LostData        bool `yaml:"lost_data"`        // bit 4: results overwritten before readout
	ADCOverflow     bool `yaml:"adc_overflow"`     // bit 5: overflow of an ADC channel
	ResultOverflow  bool `yaml:"result_overflow"`  // bit 6: overflow of a result register
	OutConvOverflow bool `yaml:"outconv_overflow"` // bit 7: overflow of the time reference
}

func decodeStatus(b byte) Status {
	return Status{
		PowerDown:       b&0x01 != 0,
		Standby:         b&0x02 != 0,
		NotReady:        b&0x04 != 0,
		NewData:         b&0x08 != 0,
		LostData:        b&0x10 != 0,
		ADCOverflow:     b&0x20 != 0,
		ResultOverflow:  b&0x40 != 0,
		OutConvOverflow: b&0x80 != 0,
	}
}

// DeviceState is the DOS field of the OSR register.
type DeviceState byte

const (
	StateNop           DeviceState = DeviceState(dosNop)
	StateConfiguration DeviceState = DeviceState(dosConfiguration)
	StateMeasurement   DeviceState = DeviceState(dosMeasurement)
)

func (s DeviceState) String() string {
	switch s {
	case StateNop:
		return "NOP"
	case StateConfiguration:
		return "CONFIGURATION"
	case StateMeasurement:
		return "MEASUREMENT"
	default:
		return fmt.Sprintf("DeviceState(%d)", byte(s))
	}
}

// OperatingState is the decoded OSR register.
type OperatingState struct {
	State            DeviceState `yaml:"state"`
	StartMeasurement bool        `yaml:"start_measurement"`
	PowerDown        bool        `yaml:"power_down"`
	SoftwareReset    bool        `yaml:"software_reset"`
}

func decodeOperatingState(b byte) OperatingState {
	return OperatingState{
		State:            DeviceState(b & osrDOS),
		StartMeasurement: b&osrSS != 0,
		PowerDown:        b&osrPD != 0,
		SoftwareReset:    b&osrSWRes != 0,
	}
}

func (o OperatingState) String() string {
	return fmt.Sprintf("state=%s start=%t power_down=%t reset=%t",
		o.State, o.StartMeasurement, o.PowerDown, o.SoftwareReset)
}

// Measurement is one full result set, read in a single burst.
// All values are raw ADC counts; converting them to physical units requires
// the configured gain and conversion time and is left to the caller.
type Measurement struct {
	Temperature uint16 `yaml:"temperature"`
	UVA         uint16 `yaml:"uva"`
	UVB         uint16 `yaml:"uvb"`
	UVC         uint16 `yaml:"uvc"`
}
