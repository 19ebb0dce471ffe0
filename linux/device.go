// Package linux wires the manager to a running server: a message bus over
// one of the bus transports and a stack that forwards commands on it.
package linux

import (
	"github.com/pkg/errors"

	"github.com/rigado/hfrm"
	"github.com/rigado/hfrm/linux/bus"
)

// Device is a manager bound to its own bus.
type Device struct {
	*hfrm.Manager

	Bus   *bus.Bus
	stack *Remote
}

// NewDevice creates the bus from busOpts and a manager on top of it. The
// transport isn't opened until Init.
func NewDevice(busOpts []bus.Option, opts ...hfrm.Option) (*Device, error) {
	b, err := bus.New(busOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "can't create bus")
	}

	s := NewRemote(b, hfrm.GetLogger())
	m, err := hfrm.NewManager(s, b, opts...)
	if err != nil {
		b.Close()
		return nil, errors.Wrap(err, "can't create manager")
	}
	d := &Device{Manager: m, Bus: b, stack: s}
	go d.watchBus()
	return d, nil
}

// watchBus unblocks pending connects once the bus stops; a server that
// went away can't report it in band.
func (d *Device) watchBus() {
	<-d.Bus.Done()
	if err := d.Bus.Error(); err != nil {
		d.stack.logger.Warnf("bus closed: %v", err)
	}
	d.Manager.ServerGone()
}

// Close shuts the manager down and closes the bus.
func (d *Device) Close() error {
	err := d.Manager.Shutdown()
	if errors.Is(err, hfrm.ErrNotInitialized) {
		err = nil
	}
	if cerr := d.Bus.Close(); err == nil {
		err = cerr
	}
	return err
}
