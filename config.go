package as7331

import "fmt"

// Gain selects the ADC gain of the UV channels (CREG1[7:4]). Codes run from
// 2048x down to 1x; the chip halves the gain with every code increment.
type Gain byte

const (
	Gain2048 Gain = 0x0
	Gain1024 Gain = 0x1
	Gain512  Gain = 0x2
	Gain256  Gain = 0x3
	Gain128  Gain = 0x4
	Gain64   Gain = 0x5
	Gain32   Gain = 0x6
	Gain16   Gain = 0x7
	Gain8    Gain = 0x8
	Gain4    Gain = 0x9
	Gain2    Gain = 0xA
	Gain1    Gain = 0xB
)

// Factor returns the multiplier encoded by the gain code.
func (g Gain) Factor() int {
	return 2048 >> uint(g)
}

func (g Gain) String() string {
	return fmt.Sprintf("%dx", g.Factor())
}

// IntegrationTime selects the conversion time of a measurement (CREG1[3:0])
// in internal clock cycles, doubling with every code increment.
type IntegrationTime byte

const (
	Time1     IntegrationTime = 0
	Time2     IntegrationTime = 1
	Time4     IntegrationTime = 2
	Time8     IntegrationTime = 3
	Time16    IntegrationTime = 4
	Time32    IntegrationTime = 5
	Time64    IntegrationTime = 6
	Time128   IntegrationTime = 7
	Time256   IntegrationTime = 8
	Time512   IntegrationTime = 9
	Time1024  IntegrationTime = 10
	Time2048  IntegrationTime = 11
	Time4096  IntegrationTime = 12
	Time8192  IntegrationTime = 13
	Time16384 IntegrationTime = 14
)

// Cycles returns the number of conversion clock cycles encoded by the code.
func (t IntegrationTime) Cycles() int {
	return 1 << uint(t)
}

func (t IntegrationTime) String() string {
	return fmt.Sprintf("%d cycles", t.Cycles())
}

// MeasurementMode selects how measurements are started (CREG3[7:6]).
type MeasurementMode byte

const (
	// ModeContinuous repeats measurements autonomously, separated by the
	// configured break time.
	ModeContinuous MeasurementMode = 0
	// ModeCommand performs one measurement per OneShot call.
	ModeCommand MeasurementMode = 1
	// ModeSynStart starts a measurement on the external SYN pin edge.
	ModeSynStart MeasurementMode = 2
	// ModeSynStartEnd starts and stops the measurement on SYN pin edges.
	ModeSynStartEnd MeasurementMode = 3
)

func (m MeasurementMode) String() string {
	switch m {
	case ModeContinuous:
		return "CONT"
	case ModeCommand:
		return "CMD"
	case ModeSynStart:
		return "SYNS"
	case ModeSynStartEnd:
		return "SYND"
	default:
		return fmt.Sprintf("MeasurementMode(%d)", byte(m))
	}
}

// ConversionClock selects the internal conversion clock frequency
// (CREG3[1:0]).
type ConversionClock byte

const (
	Clock1024 ConversionClock = 0
	Clock2048 ConversionClock = 1
	Clock4096 ConversionClock = 2
	Clock8192 ConversionClock = 3
)

// KHz returns the clock frequency in kHz.
func (c ConversionClock) KHz() int {
	return 1024 << uint(c)
}

func (c ConversionClock) String() string {
	return fmt.Sprintf("%dkHz", c.KHz())
}

// Config bundles the values written by Init. The device only accepts
// configuration writes while in configuration state.
type Config struct {
	Gain      Gain            `yaml:"gain"`
	Time      IntegrationTime `yaml:"time"`
	Mode      MeasurementMode `yaml:"mode"`
	Clock     ConversionClock `yaml:"clock"`
	SyncBreak bool            `yaml:"sync_break"`
	// BreakTime is the pause between continuous measurements in 8us steps.
	BreakTime byte `yaml:"break_time"`
}

func (c Config) creg1() byte {
	return byte(c.Gain)<<creg1GainShift | byte(c.Time)
}

func (c Config) creg3() byte {
	var sb byte
	if c.SyncBreak {
		sb = 1
	}
	return byte(c.Mode)<<creg3MModeShift | sb<<creg3SBShift | byte(c.Clock)
}
