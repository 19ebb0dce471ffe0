package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/rigado/hfrm"
	"github.com/rigado/hfrm/linux/power"
)

// roleAddr parses the ROLE [ADDR] arguments.
func roleAddr(c *cli.Context, wantAddr bool) (hfrm.Role, hfrm.BDAddr, error) {
	n := 1
	if wantAddr {
		n = 2
	}
	if c.NArg() != n {
		return 0, hfrm.BDAddr{}, errors.Errorf("expected %d arguments, got %d", n, c.NArg())
	}
	r, err := hfrm.ParseRole(c.Args().Get(0))
	if err != nil {
		return 0, hfrm.BDAddr{}, err
	}
	if !wantAddr {
		return r, hfrm.BDAddr{}, nil
	}
	a, err := hfrm.ParseBDAddr(c.Args().Get(1))
	return r, a, err
}

var connectCmd = cli.Command{
	Name:      "connect",
	Usage:     "connect to a remote device",
	ArgsUsage: "ROLE ADDR",
	Flags: []cli.Flag{
		cli.UintFlag{Name: "port", Value: 1, Usage: "remote RFCOMM server port"},
		cli.BoolFlag{Name: "async", Usage: "return once the server accepts the request"},
		cli.BoolFlag{Name: "auth", Usage: "require authentication"},
		cli.BoolFlag{Name: "encrypt", Usage: "require encryption"},
	},
	Action: func(c *cli.Context) error {
		role, addr, err := roleAddr(c, true)
		if err != nil {
			return err
		}
		p := hfrm.ConnectParams{Role: role, Addr: addr, Port: uint32(c.Uint("port"))}
		if c.Bool("auth") {
			p.Flags |= hfrm.ConnectRequireAuthentication
		}
		if c.Bool("encrypt") {
			p.Flags |= hfrm.ConnectRequireEncryption
		}

		s, err := open(c)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx, cancel := interruptible()
		defer cancel()

		if c.Bool("async") {
			done := make(chan hfrm.ConnectionStatus, 1)
			p.Callback = func(_ hfrm.Role, _ hfrm.BDAddr, st hfrm.ConnectionStatus, _ interface{}) {
				done <- st
			}
			if err := s.dev.Connect(p); err != nil {
				return err
			}
			s.out.Info("connect requested, waiting for status")
			select {
			case st := <-done:
				return s.out.Status(role, addr, st)
			case <-ctx.Done():
				return nil
			}
		}

		st, err := s.dev.ConnectContext(ctx, p)
		if err != nil {
			return err
		}
		return s.out.Status(role, addr, st)
	},
}

var disconnectCmd = cli.Command{
	Name:      "disconnect",
	Usage:     "disconnect a remote device",
	ArgsUsage: "ROLE ADDR",
	Action: func(c *cli.Context) error {
		role, addr, err := roleAddr(c, true)
		if err != nil {
			return err
		}
		s, err := open(c)
		if err != nil {
			return err
		}
		defer s.Close()
		return s.dev.Disconnect(role, addr)
	},
}

var devicesCmd = cli.Command{
	Name:      "devices",
	Usage:     "list connected devices",
	ArgsUsage: "ROLE",
	Action: func(c *cli.Context) error {
		role, _, err := roleAddr(c, false)
		if err != nil {
			return err
		}
		s, err := open(c)
		if err != nil {
			return err
		}
		defer s.Close()

		devs, err := s.dev.QueryConnectedDevices(role)
		if err != nil {
			return err
		}
		return s.out.Devices(role, devs)
	},
}

var configCmd = cli.Command{
	Name:      "config",
	Usage:     "show the local configuration of a role",
	ArgsUsage: "ROLE",
	Action: func(c *cli.Context) error {
		role, _, err := roleAddr(c, false)
		if err != nil {
			return err
		}
		s, err := open(c)
		if err != nil {
			return err
		}
		defer s.Close()

		cfg, err := s.dev.QueryCurrentConfiguration(role)
		if err != nil {
			return err
		}
		return s.out.Configuration(role, cfg)
	},
}

var monitorCmd = cli.Command{
	Name:  "monitor",
	Usage: "print events until interrupted",
	Flags: []cli.Flag{
		cli.StringFlag{Name: "role", Usage: "only this role"},
		cli.StringFlag{Name: "trace", Usage: "append events to FILE as JSON lines"},
	},
	Action: func(c *cli.Context) error {
		roles := []hfrm.Role{hfrm.HandsFree, hfrm.AudioGateway}
		if r := c.String("role"); r != "" {
			role, err := hfrm.ParseRole(r)
			if err != nil {
				return err
			}
			roles = []hfrm.Role{role}
		}

		s, err := open(c)
		if err != nil {
			return err
		}
		defer s.Close()

		if p := c.String("trace"); p != "" {
			if err := s.out.Trace(p); err != nil {
				return err
			}
		}

		for _, r := range roles {
			if _, err := s.dev.RegisterEventCallback(r, false, func(e hfrm.Event, _ interface{}) {
				if err := s.out.Event(e); err != nil {
					s.logger.Warnf("can't print event: %v", err)
				}
			}, nil); err != nil {
				return errors.Wrapf(err, "can't listen for %v events", r)
			}
		}

		ctx, cancel := interruptible()
		defer cancel()

		if s.cfg.BlueZ {
			go watchPower(ctx, s)
		}

		s.out.Info(fmt.Sprintf("monitoring %v, ^C to stop", roles))
		select {
		case <-ctx.Done():
		case <-s.dev.Bus.Done():
			return s.dev.Bus.Error()
		}
		return nil
	},
}

func watchPower(ctx context.Context, s *session) {
	w, err := power.NewWatcher(s.cfg.Adapter, s.logger)
	if err != nil {
		s.logger.Warnf("power state not followed: %v", err)
		return
	}
	defer w.Close()

	if err := w.Watch(ctx, s.dev); err != nil && ctx.Err() == nil {
		s.logger.Warnf("power watch stopped: %v", err)
	}
}
