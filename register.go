package hfrm

import (
	"github.com/rigado/hfrm/cmd"
)

// RegisterEventCallback adds a listener for the events of role and returns
// its id. General listeners are local and any number may register. The
// control listener is a per-role singleton registered with the server; it
// also receives the role specific confirmations and is the only listener
// allowed to issue control commands.
func (m *Manager) RegisterEventCallback(role Role, control bool, cb EventCallback, param interface{}) (uint32, error) {
	if !role.Valid() || cb == nil {
		return 0, ErrInvalidParameter
	}
	if err := m.acquire(); err != nil {
		return 0, err
	}
	defer m.mu.Unlock()

	en := &entry{
		role:     role,
		category: categoryGeneral,
		eventCB:  cb,
		param:    param,
	}

	if control {
		l := m.reg.list(role, categoryControl)
		if l.Len() > 0 {
			return 0, ErrAlreadyRegistered
		}
		rp := cmd.RegisterEventsRP{}
		if err := m.stack.Send(&cmd.RegisterEvents{ConnectionType: uint32(role), Control: true}, &rp); err != nil {
			return 0, err
		}
		if rp.EventsHandlerID == 0 {
			return 0, ErrResponseInvalid
		}
		en.category = categoryControl
		en.stackID = rp.EventsHandlerID
	}

	en.handle = m.reg.allocHandle()
	if !m.reg.list(role, en.category).Add(en) {
		if control {
			m.send(&cmd.UnregisterEvents{EventsHandlerID: en.stackID}, nil)
		}
		return 0, ErrInvalidParameter
	}
	m.logger.Debugf("registered %v %v callback %d", role, en.category, en.handle)
	return en.handle, nil
}

// UnregisterEventCallback removes a listener added by RegisterEventCallback.
func (m *Manager) UnregisterEventCallback(id uint32) error {
	if id == 0 {
		return ErrInvalidCallback
	}
	if err := m.acquire(); err != nil {
		return err
	}
	defer m.mu.Unlock()

	en := m.reg.find(id, categoryGeneral, categoryControl)
	if en == nil {
		return ErrInvalidCallback
	}
	m.reg.list(en.role, en.category).Remove(id)
	if en.category == categoryControl {
		m.send(&cmd.UnregisterEvents{EventsHandlerID: en.stackID}, nil)
	}
	return nil
}

// RegisterDataCallback adds the per-role audio data listener. It receives
// AudioDataReceived events and is the only one allowed to send audio.
func (m *Manager) RegisterDataCallback(role Role, cb EventCallback, param interface{}) (uint32, error) {
	if !role.Valid() || cb == nil {
		return 0, ErrInvalidParameter
	}
	if err := m.acquire(); err != nil {
		return 0, err
	}
	defer m.mu.Unlock()

	l := m.reg.list(role, categoryData)
	if l.Len() > 0 {
		return 0, ErrAlreadyRegistered
	}

	rp := cmd.RegisterDataEventsRP{}
	if err := m.stack.Send(&cmd.RegisterDataEvents{ConnectionType: uint32(role)}, &rp); err != nil {
		return 0, err
	}
	if rp.DataEventsHandlerID == 0 {
		return 0, ErrResponseInvalid
	}

	en := &entry{
		handle:   m.reg.allocHandle(),
		role:     role,
		category: categoryData,
		stackID:  rp.DataEventsHandlerID,
		eventCB:  cb,
		param:    param,
	}
	if !l.Add(en) {
		m.send(&cmd.UnregisterDataEvents{DataEventsHandlerID: en.stackID}, nil)
		return 0, ErrInvalidParameter
	}
	return en.handle, nil
}

// UnregisterDataCallback removes the data listener registered as id.
func (m *Manager) UnregisterDataCallback(id uint32) error {
	if id == 0 {
		return ErrInvalidCallback
	}
	if err := m.acquire(); err != nil {
		return err
	}
	defer m.mu.Unlock()

	en := m.reg.find(id, categoryData)
	if en == nil {
		return ErrInvalidCallback
	}
	m.reg.list(en.role, categoryData).Remove(id)
	m.send(&cmd.UnregisterDataEvents{DataEventsHandlerID: en.stackID}, nil)
	return nil
}
