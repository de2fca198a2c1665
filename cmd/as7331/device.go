package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/mklimuk/as7331"
	"github.com/mklimuk/as7331/cmd/as7331/console"
)

var idCmd = cli.Command{
	Name:  "id",
	Usage: "read the chip identification register",
	Flags: busFlags,
	Action: func(c *cli.Context) error {
		ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))
		dev, err := openDevice(c)
		if err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}
		id, err := dev.ChipID(ctx)
		if err != nil {
			return deviceError(err)
		}
		console.Printf("chip id: %s\n", console.White(fmt.Sprintf("%#02x", id)))
		return nil
	},
}

var initCmd = cli.Command{
	Name:  "init",
	Usage: "write the measurement configuration (device must be in configuration state)",
	Flags: append([]cli.Flag{
		&cli.IntFlag{Name: "gain", Value: 64, Usage: "UV channel gain factor (1, 2, 4 ... 2048)"},
		&cli.IntFlag{Name: "time", Value: 64, Usage: "conversion time in clock cycles (1, 2, 4 ... 16384)"},
		&cli.StringFlag{Name: "mode", Value: "cmd", Usage: "measurement mode: cont, cmd, syns or synd"},
		&cli.IntFlag{Name: "clock", Value: 1024, Usage: "conversion clock in kHz (1024, 2048, 4096, 8192)"},
		&cli.BoolFlag{Name: "sync-break", Usage: "enable standby between measurements"},
		&cli.IntFlag{Name: "break-time", Usage: "break time between continuous measurements (8us steps)"},
	}, busFlags...),
	Action: func(c *cli.Context) error {
		ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))
		cfg, err := parseConfig(c)
		if err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}
		dev, err := openDevice(c)
		if err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}
		if err := dev.Init(ctx, cfg); err != nil {
			return deviceError(err)
		}
		console.PInfof(console.PictoFinish, "configured: gain %s, time %s, mode %s, clock %s",
			console.White(cfg.Gain), console.White(cfg.Time), console.White(cfg.Mode), console.White(cfg.Clock))
		return nil
	},
}

func parseConfig(c *cli.Context) (as7331.Config, error) {
	var cfg as7331.Config
	found := false
	for g := as7331.Gain2048; g <= as7331.Gain1; g++ {
		if g.Factor() == c.Int("gain") {
			cfg.Gain = g
			found = true
			break
		}
	}
	if !found {
		return cfg, fmt.Errorf("invalid gain factor: %d", c.Int("gain"))
	}
	found = false
	for t := as7331.Time1; t <= as7331.Time16384; t++ {
		if t.Cycles() == c.Int("time") {
			cfg.Time = t
			found = true
			break
		}
	}
	if !found {
		return cfg, fmt.Errorf("invalid conversion time: %d", c.Int("time"))
	}
	switch c.String("mode") {
	case "cont":
		cfg.Mode = as7331.ModeContinuous
	case "cmd":
		cfg.Mode = as7331.ModeCommand
	case "syns":
		cfg.Mode = as7331.ModeSynStart
	case "synd":
		cfg.Mode = as7331.ModeSynStartEnd
	default:
		return cfg, fmt.Errorf("invalid measurement mode: %s", c.String("mode"))
	}
	found = false
	for clk := as7331.Clock1024; clk <= as7331.Clock8192; clk++ {
		if clk.KHz() == c.Int("clock") {
			cfg.Clock = clk
			found = true
			break
		}
	}
	if !found {
		return cfg, fmt.Errorf("invalid conversion clock: %d", c.Int("clock"))
	}
	cfg.SyncBreak = c.Bool("sync-break")
	cfg.BreakTime = byte(c.Int("break-time"))
	return cfg, nil
}

var oneShotCmd = cli.Command{
	Name:    "one-shot",
	Aliases: []string{"shot"},
	Usage:   "start a single measurement (CMD mode)",
	Flags:   busFlags,
	Action: func(c *cli.Context) error {
		ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))
		dev, err := openDevice(c)
		if err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}
		if err := dev.OneShot(ctx); err != nil {
			return deviceError(err)
		}
		console.Info("measurement started")
		return nil
	},
}

var powerCmd = cli.Command{
	Name:  "power",
	Usage: "toggle the OSR power bit",
	Subcommands: []*cli.Command{
		{
			Name:  "up",
			Flags: busFlags,
			Action: func(c *cli.Context) error {
				ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))
				dev, err := openDevice(c)
				if err != nil {
					return console.Exit(1, "%s", console.Red(err))
				}
				if err := dev.PowerUp(ctx); err != nil {
					return deviceError(err)
				}
				console.Info("power bit set")
				return nil
			},
		},
		{
			Name:  "down",
			Flags: busFlags,
			Action: func(c *cli.Context) error {
				ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))
				dev, err := openDevice(c)
				if err != nil {
					return console.Exit(1, "%s", console.Red(err))
				}
				if err := dev.PowerDown(ctx); err != nil {
					return deviceError(err)
				}
				console.Info("power bit cleared")
				return nil
			},
		},
	},
}

var resetCmd = cli.Command{
	Name:  "reset",
	Usage: "trigger a software reset",
	Flags: append([]cli.Flag{
		&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "skip confirmation"},
	}, busFlags...),
	Action: func(c *cli.Context) error {
		ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))
		if !c.Bool("yes") {
			answer, err := console.YesOrNo("reset the device? configuration will be lost")
			if err != nil {
				return console.Exit(1, "%s", console.Red(err))
			}
			if answer != console.Yes {
				return nil
			}
		}
		dev, err := openDevice(c)
		if err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}
		if err := dev.Reset(ctx); err != nil {
			return deviceError(err)
		}
		console.PInfof(console.PictoWarning, "reset triggered, allow settling time before the next operation")
		return nil
	},
}
