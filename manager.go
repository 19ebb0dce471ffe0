package hfrm

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/rigado/hfrm/cmd"
	"github.com/rigado/hfrm/msg"
)

type lifecycle int

const (
	uninitialized lifecycle = iota
	initialized
	closing
)

// Manager is the client side of the Hands-Free Manager. It owns the
// listener registry and the subscriptions with the bus and the server.
type Manager struct {
	mu sync.Mutex

	stack  Stack
	bus    MessageBus
	logger Logger

	state   lifecycle
	reg     *registry
	powered bool
	roles   []Role

	// server subscription per role, 0 if the role isn't registered
	eventsID [len(roles)]uint32
}

// NewManager returns an uninitialized manager.
func NewManager(s Stack, b MessageBus, opts ...Option) (*Manager, error) {
	if s == nil || b == nil {
		return nil, ErrInvalidParameter
	}
	m := &Manager{
		stack:   s,
		bus:     b,
		logger:  GetLogger().ChildLogger(map[string]interface{}{"component": "hfrm"}),
		reg:     newRegistry(),
		powered: true,
		roles:   roles[:],
	}
	if err := m.Option(opts...); err != nil {
		return nil, errors.Wrap(err, "can't set options")
	}
	return m, nil
}

// Option sets the options specified.
func (m *Manager) Option(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return err
		}
	}
	return nil
}

// Init installs the group handler, initializes the stack and registers for
// the unsolicited events of each role. A role the server doesn't support is
// skipped; at least one role must register. Any failure undoes the steps
// already taken.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.state {
	case initialized:
		return nil
	case closing:
		return ErrLockAcquisition
	}

	if err := m.bus.RegisterGroupHandler(msg.GroupHandsFreeManager, m.handleGroupMessage); err != nil {
		return errors.Wrap(err, "can't register group handler")
	}

	if err := m.stack.Initialize(); err != nil {
		m.bus.UnregisterGroupHandler(msg.GroupHandsFreeManager)
		return errors.Wrap(err, "can't initialize stack")
	}

	registered := 0
	var err error
	for _, role := range m.roles {
		rp := cmd.RegisterEventsRP{}
		rerr := m.stack.Send(&cmd.RegisterEvents{ConnectionType: uint32(role)}, &rp)
		if errors.Is(rerr, ErrRoleNotSupported) {
			m.logger.Infof("%v not supported by server", role)
			continue
		}
		if rerr == nil && rp.EventsHandlerID == 0 {
			rerr = ErrResponseInvalid
		}
		if rerr != nil {
			err = rerr
			break
		}
		m.eventsID[role] = rp.EventsHandlerID
		registered++
	}

	if err == nil && registered == 0 {
		err = ErrRoleNotSupported
	}

	if err != nil {
		m.unregisterEvents(m.eventsID[:]...)
		m.eventsID = [len(roles)]uint32{}
		m.stack.Cleanup()
		m.bus.UnregisterGroupHandler(msg.GroupHandsFreeManager)
		return errors.Wrap(err, "can't register events")
	}

	m.reg = newRegistry()
	m.state = initialized
	m.logger.Debugf("initialized, events ids %v", m.eventsID)
	return nil
}

// Shutdown removes the group handler first so no more events arrive, then
// drops every registration. Blocked connects return StatusFailureDevicePowerOff.
func (m *Manager) Shutdown() error {
	m.bus.UnregisterGroupHandler(msg.GroupHandsFreeManager)

	m.mu.Lock()
	if m.state != initialized {
		m.mu.Unlock()
		return ErrNotInitialized
	}
	m.state = closing

	events := append([]uint32(nil), m.eventsID[:]...)
	m.eventsID = [len(roles)]uint32{}
	var data []uint32
	for _, role := range roles {
		if e := m.reg.list(role, categoryControl).First(); e != nil {
			events = append(events, e.stackID)
		}
		if e := m.reg.list(role, categoryData).First(); e != nil {
			data = append(data, e.stackID)
		}
	}
	m.mu.Unlock()

	// calls arriving from here on fail with ErrLockAcquisition
	m.unregisterEvents(events...)
	for _, id := range data {
		m.send(&cmd.UnregisterDataEvents{DataEventsHandlerID: id}, nil)
	}
	err := m.stack.Cleanup()

	m.mu.Lock()
	m.reg.clear()
	m.state = uninitialized
	m.mu.Unlock()

	m.logger.Debug("shutdown")
	return errors.Wrap(err, "stack cleanup")
}

// PowerChanged records the local device power state. Powering down
// resolves every pending blocking connect with StatusFailureDevicePowerOff.
func (m *Manager) PowerChanged(on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.powered = on
	if !on && m.state == initialized {
		m.logger.Info("device powered down")
		m.cancelPendingConnects()
	}
}

// ServerGone resolves every pending blocking connect with
// StatusFailureDevicePowerOff. Call it when the server endpoint is lost,
// e.g. when the bus transport closes.
func (m *Manager) ServerGone() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == initialized {
		m.cancelPendingConnects()
	}
}

// Powered reports the last known power state.
func (m *Manager) Powered() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.powered
}

// acquire takes the lock for an API call. It fails if the manager is not
// initialized or is shutting down.
func (m *Manager) acquire() error {
	m.mu.Lock()
	switch m.state {
	case initialized:
		return nil
	case closing:
		m.mu.Unlock()
		return ErrLockAcquisition
	default:
		m.mu.Unlock()
		return ErrNotInitialized
	}
}

func (m *Manager) unregisterEvents(ids ...uint32) {
	for _, id := range ids {
		if id != 0 {
			m.send(&cmd.UnregisterEvents{EventsHandlerID: id}, nil)
		}
	}
}

// send logs failures of best effort requests.
func (m *Manager) send(c Command, rp CommandRP) {
	if err := m.stack.Send(c, rp); err != nil {
		m.logger.Warnf("0x%04x: %v", c.Function(), err)
	}
}
