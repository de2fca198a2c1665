package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"
	"gobot.io/x/gobot/v2/platforms/friendlyelec/nanopi"

	"github.com/mklimuk/as7331"
	"github.com/mklimuk/as7331/adapter"
	"github.com/mklimuk/as7331/cmd/as7331/console"
	"github.com/mklimuk/as7331/i2c"
)

// flags shared by every command that talks to the sensor
var busFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "adapter",
		Aliases: []string{"a"},
		Value:   "mcp2221",
		Usage:   "bus adapter: mcp2221, periph or nanopi",
	},
	&cli.StringFlag{
		Name:  "dev",
		Usage: "bus name for the periph adapter (e.g. /dev/i2c-1)",
	},
	&cli.IntFlag{
		Name:  "bus",
		Usage: "platform bus number for the nanopi adapter",
	},
	&cli.StringFlag{
		Name:  "addr",
		Value: "0x74",
		Usage: "7-bit device address",
	},
	&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}},
}

func openBus(c *cli.Context) (as7331.I2CBus, error) {
	switch c.String("adapter") {
	case "mcp2221":
		a := adapter.NewMCP2221()
		if err := a.Init(); err != nil {
			return nil, fmt.Errorf("adapter initialization error: %w", err)
		}
		return a, nil
	case "periph":
		return i2c.NewGenericBus(c.String("dev"))
	case "nanopi":
		npi := nanopi.NewNeoAdaptor()
		if err := npi.I2cBusAdaptor.Connect(); err != nil {
			return nil, fmt.Errorf("adaptor connect error: %w", err)
		}
		return adapter.NewGobot(npi, c.Int("bus")), nil
	default:
		return nil, fmt.Errorf("unknown adapter: %s", c.String("adapter"))
	}
}

func openDevice(c *cli.Context) (*as7331.AS7331, error) {
	addr, err := parseAddr(c.String("addr"))
	if err != nil {
		return nil, err
	}
	bus, err := openBus(c)
	if err != nil {
		return nil, err
	}
	return as7331.New(bus, as7331.WithAddress(addr)), nil
}

func parseAddr(raw string) (byte, error) {
	addr, err := strconv.ParseUint(strings.TrimPrefix(raw, "0x"), 16, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid device address %q: %w", raw, err)
	}
	return byte(addr), nil
}

func deviceError(err error) cli.ExitCoder {
	return console.Exit(1, "device communication error: %s", console.Red(err))
}
