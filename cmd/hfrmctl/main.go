// Command hfrmctl drives a Hands-Free Manager server from the shell.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/rigado/hfrm"
	"github.com/rigado/hfrm/config"
	"github.com/rigado/hfrm/linux"
)

func main() {
	app := cli.NewApp()
	app.Name = "hfrmctl"
	app.Usage = "Hands-Free Manager client"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "config, c", Usage: "config file (.yaml or .json)"},
		cli.StringFlag{Name: "socket", Usage: "server unix socket"},
		cli.StringFlag{Name: "tcp", Usage: "server TCP address"},
		cli.StringFlag{Name: "uart", Usage: "server UART device"},
		cli.UintFlag{Name: "baud", Usage: "UART baud rate"},
		cli.BoolFlag{Name: "json", Usage: "print JSON"},
		cli.BoolFlag{Name: "debug", Usage: "debug logging"},
		cli.BoolFlag{Name: "bluez", Usage: "follow the adapter power state through BlueZ"},
		cli.StringFlag{Name: "adapter", Usage: "BlueZ adapter name"},
	}
	app.Commands = []cli.Command{
		connectCmd,
		disconnectCmd,
		devicesCmd,
		configCmd,
		monitorCmd,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads --config, if any, and applies the command line overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg := config.Default()
	if p := c.GlobalString("config"); p != "" {
		var err error
		if cfg, err = config.Load(p); err != nil {
			return nil, err
		}
	}

	if s := c.GlobalString("socket"); s != "" {
		cfg.Socket = s
	}
	if s := c.GlobalString("tcp"); s != "" {
		cfg.TCP = s
	}
	if s := c.GlobalString("uart"); s != "" {
		cfg.UART = s
	}
	if b := c.GlobalUint("baud"); b != 0 {
		cfg.BaudRate = b
	}
	if s := c.GlobalString("adapter"); s != "" {
		cfg.Adapter = s
	}
	if c.GlobalBool("bluez") {
		cfg.BlueZ = true
	}
	if c.GlobalBool("debug") {
		cfg.LogLevel = "debug"
	}
	return cfg, cfg.Validate()
}

// session is one connected manager plus the output it prints to.
type session struct {
	cfg    *config.Config
	dev    *linux.Device
	out    *printer
	logger hfrm.Logger
}

func open(c *cli.Context) (*session, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	l := cfg.NewLogger()
	hfrm.SetLogger(l)

	opts, err := cfg.Options(l)
	if err != nil {
		return nil, err
	}
	d, err := linux.NewDevice(cfg.BusOptions(l), opts...)
	if err != nil {
		return nil, err
	}
	if err := d.Init(); err != nil {
		d.Close()
		return nil, errors.Wrap(err, "can't initialize")
	}
	return &session{
		cfg:    cfg,
		dev:    d,
		out:    newPrinter(os.Stdout, c.GlobalBool("json")),
		logger: l,
	}, nil
}

func (s *session) Close() error {
	s.out.Close()
	return s.dev.Close()
}

// interruptible returns a context cancelled by SIGINT or SIGTERM.
func interruptible() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
