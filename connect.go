package hfrm

import (
	"context"

	"github.com/rigado/hfrm/cmd"
)

// ConnectParams describes an outgoing connection.
type ConnectParams struct {
	Role Role
	Addr BDAddr
	// RFCOMM server port of the remote profile
	Port  uint32
	Flags uint32

	// Callback receives the outcome of a non blocking connect. Optional.
	Callback ConnectCallback
	Param    interface{}
}

func (p *ConnectParams) validate() error {
	if !p.Role.Valid() || p.Addr.IsZero() || p.Port == 0 || p.Flags&^connectFlagsMask != 0 {
		return ErrInvalidParameter
	}
	return nil
}

// Connect starts a connection and returns once the server accepted the
// request. The outcome arrives as a DeviceConnectionStatus event and, if
// set, through p.Callback.
func (m *Manager) Connect(p ConnectParams) error {
	_, err := m.connect(p, false)
	return err
}

// ConnectBlocking starts a connection and waits for its outcome. There is
// no timeout: the call returns when the server reports a status, the device
// powers down, the server goes away or the manager shuts down.
func (m *Manager) ConnectBlocking(p ConnectParams) (ConnectionStatus, error) {
	return m.ConnectContext(context.Background(), p)
}

// ConnectContext is ConnectBlocking that also gives up when ctx is done.
// The pending entry is dropped and ctx.Err() returned.
func (m *Manager) ConnectContext(ctx context.Context, p ConnectParams) (ConnectionStatus, error) {
	en, err := m.connect(p, true)
	if err != nil {
		return StatusFailureUnknown, err
	}

	select {
	case s, ok := <-en.done:
		if !ok {
			return StatusFailureDevicePowerOff, nil
		}
		return s, nil
	case <-ctx.Done():
	}

	m.mu.Lock()
	if m.reg.list(en.role, categoryConnect).Remove(en.handle) == nil {
		// resolved while we gave up; the status is already buffered
		m.mu.Unlock()
		if s, ok := <-en.done; ok {
			return s, nil
		}
		return StatusFailureDevicePowerOff, nil
	}
	m.mu.Unlock()
	return StatusFailureUnknown, ctx.Err()
}

func (m *Manager) connect(p ConnectParams, blocking bool) (*entry, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	if err := m.acquire(); err != nil {
		return nil, err
	}
	defer m.mu.Unlock()

	if !m.powered {
		return nil, ErrDevicePoweredDown
	}

	en := &entry{
		handle:    m.reg.allocHandle(),
		role:      p.Role,
		category:  categoryConnect,
		addr:      p.Addr,
		connectCB: p.Callback,
		param:     p.Param,
	}
	if blocking {
		en.done = make(chan ConnectionStatus, 1)
	}
	l := m.reg.list(p.Role, categoryConnect)
	if !l.Add(en) {
		return nil, ErrInvalidParameter
	}

	err := m.stack.Send(&cmd.ConnectRemoteDevice{
		ConnectionType:   uint32(p.Role),
		RemoteServerPort: p.Port,
		Addr:             p.Addr.Wire(),
		ConnectionFlags:  p.Flags,
	}, nil)
	if err != nil {
		l.Remove(en.handle)
		return nil, err
	}

	m.logger.Debugf("connect %v %v pending (handle %d)", p.Role, p.Addr, en.handle)
	return en, nil
}

// resolveConnect completes the oldest pending connect to addr in role.
// Blocking entries get the status on their channel; asynchronous ones have
// their callback run outside the lock. It reports whether an entry matched.
func (m *Manager) resolveConnect(role Role, addr BDAddr, status ConnectionStatus) bool {
	if !role.Valid() {
		return false
	}

	m.mu.Lock()
	if m.state != initialized {
		m.mu.Unlock()
		return false
	}
	l := m.reg.list(role, categoryConnect)
	var found *entry
	l.Each(func(en *entry) bool {
		if en.addr == addr {
			found = en
			return false
		}
		return true
	})
	if found == nil {
		m.mu.Unlock()
		return false
	}
	l.Remove(found.handle)
	found.status = status
	if found.done != nil {
		found.done <- status
	}
	m.mu.Unlock()

	if found.done == nil && found.connectCB != nil {
		m.invokeConnect(found)
	}
	return true
}

// cancelPendingConnects resolves every blocking connect of both roles with
// StatusFailureDevicePowerOff. Asynchronous attempts are left to the
// server's status event. Called with the lock held.
func (m *Manager) cancelPendingConnects() {
	for _, role := range roles {
		l := m.reg.list(role, categoryConnect)
		var pending []*entry
		l.Each(func(en *entry) bool {
			if en.done != nil {
				pending = append(pending, en)
			}
			return true
		})
		for _, en := range pending {
			l.Remove(en.handle)
			en.status = StatusFailureDevicePowerOff
			en.done <- en.status
		}
		if len(pending) > 0 {
			m.logger.Infof("cancelled %d pending %v connects", len(pending), role)
		}
	}
}

// Disconnect closes the connection to addr.
func (m *Manager) Disconnect(role Role, addr BDAddr) error {
	if !role.Valid() || addr.IsZero() {
		return ErrInvalidParameter
	}
	if err := m.acquire(); err != nil {
		return err
	}
	defer m.mu.Unlock()

	return m.stack.Send(&cmd.DisconnectDevice{ConnectionType: uint32(role), Addr: addr.Wire()}, nil)
}

// ConnectionRequestResponse answers a ConnectionRequest event.
func (m *Manager) ConnectionRequestResponse(role Role, addr BDAddr, accept bool) error {
	if !role.Valid() || addr.IsZero() {
		return ErrInvalidParameter
	}
	if err := m.acquire(); err != nil {
		return err
	}
	defer m.mu.Unlock()

	return m.stack.Send(&cmd.ConnectionRequestResponse{
		ConnectionType: uint32(role),
		Addr:           addr.Wire(),
		Accept:         accept,
	}, nil)
}

// QueryConnectedDevices lists the devices connected in role.
func (m *Manager) QueryConnectedDevices(role Role) ([]BDAddr, error) {
	if !role.Valid() {
		return nil, ErrInvalidParameter
	}
	if err := m.acquire(); err != nil {
		return nil, err
	}
	defer m.mu.Unlock()

	rp := cmd.QueryConnectedDevicesRP{}
	if err := m.stack.Send(&cmd.QueryConnectedDevices{ConnectionType: uint32(role)}, &rp); err != nil {
		return nil, err
	}
	out := make([]BDAddr, 0, len(rp.Devices))
	for _, a := range rp.Devices {
		out = append(out, AddrFromWire(a))
	}
	return out, nil
}

// Indicator is one additional indicator of the local configuration.
type Indicator struct {
	Description string
	Type        uint32
	Values      [3]uint32
}

// Configuration is the local configuration of one role.
type Configuration struct {
	IncomingConnectionFlags uint32
	SupportedFeatures       uint32
	CallHoldingSupport      uint32
	NetworkType             uint32
	Indicators              []Indicator
}

// QueryCurrentConfiguration reads the local configuration of role.
func (m *Manager) QueryCurrentConfiguration(role Role) (*Configuration, error) {
	if !role.Valid() {
		return nil, ErrInvalidParameter
	}
	if err := m.acquire(); err != nil {
		return nil, err
	}
	defer m.mu.Unlock()

	rp := cmd.QueryCurrentConfigurationRP{}
	if err := m.stack.Send(&cmd.QueryCurrentConfiguration{ConnectionType: uint32(role)}, &rp); err != nil {
		return nil, err
	}
	c := &Configuration{
		IncomingConnectionFlags: rp.IncomingConnectionFlags,
		SupportedFeatures:       rp.SupportedFeaturesMask,
		CallHoldingSupport:      rp.CallHoldingSupportMask,
		NetworkType:             rp.NetworkType,
	}
	for _, ie := range rp.Indicators {
		c.Indicators = append(c.Indicators, Indicator{
			Description: ie.Description,
			Type:        ie.Type,
			Values:      [3]uint32{ie.Value1, ie.Value2, ie.Value3},
		})
	}
	return c, nil
}

// ChangeIncomingConnectionFlags sets the security required of incoming
// connections in role.
func (m *Manager) ChangeIncomingConnectionFlags(role Role, flags uint32) error {
	if !role.Valid() || flags&^incomingFlagsMask != 0 {
		return ErrInvalidParameter
	}
	if err := m.acquire(); err != nil {
		return err
	}
	defer m.mu.Unlock()

	return m.stack.Send(&cmd.ChangeIncomingConnectionFlags{ConnectionType: uint32(role), ConnectionFlags: flags}, nil)
}
