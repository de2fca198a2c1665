package as7331

import (
	"context"
	"fmt"
	"log/slog"
)

// TransportError wraps a bus-level fault (missing ACK, adapter timeout,
// arbitration loss) reported by the underlying I2CBus. The driver never
// retries; the error propagates unchanged to the caller.
type TransportError struct {
	Op  string
	Reg byte
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("as7331: %s register %#02x: %v", e.Op, e.Reg, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// writeRegister issues a single two-byte transaction: register address
// followed by the value.
func (d *AS7331) writeRegister(ctx context.Context, reg, value byte) error {
	err := d.transport.WriteToAddr(ctx, d.addr, []byte{reg, value})
	if err != nil {
		return &TransportError{Op: "write", Reg: reg, Err: err}
	}
	slog.Debug("as7331 register write", "reg", fmt.Sprintf("%#02x", reg), "value", fmt.Sprintf("%#02x", value))
	return nil
}

// readRegister selects a register by writing its address, then reads
// len(buffer) bytes. The chip auto-increments the address, so burst reads
// return consecutive registers.
func (d *AS7331) readRegister(ctx context.Context, reg byte, buffer []byte) error {
	err := d.transport.WriteToAddr(ctx, d.addr, []byte{reg})
	if err != nil {
		return &TransportError{Op: "select", Reg: reg, Err: err}
	}
	err = d.transport.ReadFromAddr(ctx, d.addr, buffer)
	if err != nil {
		return &TransportError{Op: "read", Reg: reg, Err: err}
	}
	slog.Debug("as7331 register read", "reg", fmt.Sprintf("%#02x", reg), "data", fmt.Sprintf("% 02x", buffer))
	return nil
}
