package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/mklimuk/as7331"
	"github.com/mklimuk/as7331/cmd/as7331/console"
)

var readCmd = cli.Command{
	Name:    "read",
	Aliases: []string{"rd"},
	Usage:   "read measurement results (device must be in measurement state)",
	Subcommands: []*cli.Command{
		{
			Name:  "all",
			Usage: "read temperature and all UV channels in one burst",
			Flags: busFlags,
			Action: func(c *cli.Context) error {
				ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))
				dev, err := openDevice(c)
				if err != nil {
					return console.Exit(1, "%s", console.Red(err))
				}
				m, err := dev.ReadAll(ctx)
				if err != nil {
					return deviceError(err)
				}
				console.PInfof(console.PictoThermometer, "temperature: %s", console.White(m.Temperature))
				console.PInfof(console.PictoSun, "uva: %s  uvb: %s  uvc: %s",
					console.White(m.UVA), console.White(m.UVB), console.White(m.UVC))
				return nil
			},
		},
		channelCmd("temperature", "raw temperature counts", (*as7331.AS7331).Temperature),
		channelCmd("uva", "raw UV-A counts", (*as7331.AS7331).UVA),
		channelCmd("uvb", "raw UV-B counts", (*as7331.AS7331).UVB),
		channelCmd("uvc", "raw UV-C counts", (*as7331.AS7331).UVC),
	},
}

func channelCmd(name, usage string, read func(*as7331.AS7331, context.Context) (uint16, error)) *cli.Command {
	return &cli.Command{
		Name:  name,
		Usage: usage,
		Flags: busFlags,
		Action: func(c *cli.Context) error {
			ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))
			dev, err := openDevice(c)
			if err != nil {
				return console.Exit(1, "%s", console.Red(err))
			}
			val, err := read(dev, ctx)
			if err != nil {
				return deviceError(err)
			}
			console.Printf("%s: %s\n", name, console.White(val))
			return nil
		},
	}
}

var statusCmd = cli.Command{
	Name:  "status",
	Usage: "read and decode the status register",
	Flags: busFlags,
	Action: func(c *cli.Context) error {
		ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))
		dev, err := openDevice(c)
		if err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}
		status, err := dev.Status(ctx)
		if err != nil {
			return deviceError(err)
		}
		enc := yaml.NewEncoder(os.Stdout)
		if err := enc.Encode(status); err != nil {
			return console.Exit(1, "encoding error: %s", console.Red(err))
		}
		return nil
	},
}

var modeCmd = cli.Command{
	Name:  "mode",
	Usage: "inspect or switch the operational state",
	Subcommands: []*cli.Command{
		{
			Name:  "get",
			Usage: "read and decode the OSR register",
			Flags: busFlags,
			Action: func(c *cli.Context) error {
				ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))
				dev, err := openDevice(c)
				if err != nil {
					return console.Exit(1, "%s", console.Red(err))
				}
				state, err := dev.Mode(ctx)
				if err != nil {
					return deviceError(err)
				}
				enc := yaml.NewEncoder(os.Stdout)
				if err := enc.Encode(state); err != nil {
					return console.Exit(1, "encoding error: %s", console.Red(err))
				}
				return nil
			},
		},
		{
			Name:  "config",
			Usage: "switch to configuration state",
			Flags: busFlags,
			Action: func(c *cli.Context) error {
				ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))
				dev, err := openDevice(c)
				if err != nil {
					return console.Exit(1, "%s", console.Red(err))
				}
				if err := dev.SetConfigurationMode(ctx); err != nil {
					return deviceError(err)
				}
				console.Info("configuration state selected")
				return nil
			},
		},
		{
			Name:  "measure",
			Usage: "switch to measurement state and start measuring",
			Flags: busFlags,
			Action: func(c *cli.Context) error {
				ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))
				dev, err := openDevice(c)
				if err != nil {
					return console.Exit(1, "%s", console.Red(err))
				}
				if err := dev.SetMeasurementMode(ctx); err != nil {
					return deviceError(err)
				}
				console.Info("measurement state selected")
				return nil
			},
		},
	},
}
