package adapter

import (
	"context"
	"fmt"
	"sync"

	"gobot.io/x/gobot/v2/drivers/i2c"

	"github.com/mklimuk/as7331"
)

var _ as7331.I2CBus = &Gobot{}

// Gobot is an as7331.I2CBus backed by a gobot i2c.Connector, so the sensor
// can be read through any platform adaptor gobot supports (NanoPi NEO,
// Raspberry Pi, ...). Connections are opened lazily per device address and
// cached for the lifetime of the adapter.
type Gobot struct {
	mx        sync.Mutex
	connector i2c.Connector
	bus       int
	conns     map[byte]i2c.Connection
}

// NewGobot wraps an already connected gobot adaptor. bus selects the
// platform I2C bus number; pass the adaptor's DefaultI2cBus() when in doubt.
func NewGobot(connector i2c.Connector, bus int) *Gobot {
	return &Gobot{
		connector: connector,
		bus:       bus,
		conns:     make(map[byte]i2c.Connection),
	}
}

func (g *Gobot) WriteToAddr(ctx context.Context, address byte, buffer []byte) error {
	conn, err := g.connection(address)
	if err != nil {
		return err
	}
	n, err := conn.Write(buffer)
	if err != nil {
		return fmt.Errorf("could not write to %x: %w", address, err)
	}
	if n != len(buffer) {
		return fmt.Errorf("short write to %x: %d of %d bytes", address, n, len(buffer))
	}
	return nil
}

func (g *Gobot) ReadFromAddr(ctx context.Context, address byte, buffer []byte) error {
	conn, err := g.connection(address)
	if err != nil {
		return err
	}
	n, err := conn.Read(buffer)
	if err != nil {
		return fmt.Errorf("could not read from %x: %w", address, err)
	}
	if n != len(buffer) {
		return fmt.Errorf("short read from %x: %d of %d bytes", address, n, len(buffer))
	}
	return nil
}

func (g *Gobot) Release(ctx context.Context) error {
	g.mx.Lock()
	defer g.mx.Unlock()
	for addr, conn := range g.conns {
		if err := conn.Close(); err != nil {
			return fmt.Errorf("could not close connection to %x: %w", addr, err)
		}
		delete(g.conns, addr)
	}
	return nil
}

func (g *Gobot) connection(address byte) (i2c.Connection, error) {
	g.mx.Lock()
	defer g.mx.Unlock()
	if conn, ok := g.conns[address]; ok {
		return conn, nil
	}
	conn, err := g.connector.GetI2cConnection(int(address), g.bus)
	if err != nil {
		return nil, fmt.Errorf("could not open connection to %x: %w", address, err)
	}
	g.conns[address] = conn
	return conn, nil
}
