package as7331

// Register map of the AS7331. The chip exposes two register banks sharing
// the same address range: the configuration bank is visible while DOS is
// "configuration", the measurement (output) bank while DOS is "measurement".
// The driver does not track which bank is active; sequencing is the
// caller's responsibility.

// Configuration bank
const (
	regOSR    byte = 0x00 // operational state register
	regAGEN   byte = 0x02 // API generation / device ID
	regCREG1  byte = 0x06 // gain and conversion time
	regCREG2  byte = 0x07 // measurement divider / readout mode
	regCREG3  byte = 0x08 // measurement mode, standby, internal clock
	regBreak  byte = 0x09 // break time between measurements
	regEdges  byte = 0x0A // SYND mode edge count
	regOptReg byte = 0x0B // I2C options
)

// Measurement bank
const (
	regStatus   byte = 0x00 // OSR (low byte) and status flags (high byte)
	regTemp     byte = 0x01 // temperature result
	regMRES1    byte = 0x02 // UV-A result
	regMRES2    byte = 0x03 // UV-B result
	regMRES3    byte = 0x04 // UV-C result
	regOutConvL byte = 0x05 // time reference counter, low word
	regOutConvH byte = 0x06 // time reference counter, high word
)

// OSR bit layout
const (
	osrSS    byte = 0x80 // start/stop of measurement
	osrPD    byte = 0x40 // power down
	osrSWRes byte = 0x08 // software reset
	osrDOS   byte = 0x07 // device operational state
)

const (
	dosNop           byte = 0x00
	dosConfiguration byte = 0x02
	dosMeasurement   byte = 0x03
)

// CREG3 field offsets
const (
	creg3MModeShift = 6
	creg3SBShift    = 4
)

// CREG1 field offsets
const creg1GainShift = 4
