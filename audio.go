package hfrm

import (
	"github.com/rigado/hfrm/cmd"
	"github.com/rigado/hfrm/msg"
)

// SetupAudioConnection opens the SCO link to a connected device. The
// result arrives as an AudioConnectionStatus event.
func (m *Manager) SetupAudioConnection(controlID uint32, role Role, addr BDAddr) error {
	return m.typedCommand(role, msg.FunctionSetupAudioConnection, controlID, addr)
}

// ReleaseAudioConnection closes the SCO link to addr.
func (m *Manager) ReleaseAudioConnection(controlID uint32, role Role, addr BDAddr) error {
	return m.typedCommand(role, msg.FunctionReleaseAudioConnection, controlID, addr)
}

// SendAudioData writes one SCO frame. dataID is the id returned by
// RegisterDataCallback; the role is taken from that registration.
func (m *Manager) SendAudioData(dataID uint32, addr BDAddr, data []byte) error {
	if dataID == 0 {
		return ErrInvalidCallback
	}
	if err := m.acquire(); err != nil {
		return err
	}
	defer m.mu.Unlock()

	en := m.reg.find(dataID, categoryData)
	if en == nil {
		return ErrInvalidCallback
	}
	if addr.IsZero() || len(data) == 0 || len(data) > msg.AudioDataMax {
		return ErrInvalidParameter
	}
	return m.stack.Send(&cmd.SendAudioData{
		DataID:         en.stackID,
		ConnectionType: uint32(en.role),
		Addr:           addr.Wire(),
		Data:           data,
	}, nil)
}

// QuerySCOConnectionHandle returns the HCI handle of the SCO link to addr.
// Any control or data registration of role may ask.
func (m *Manager) QuerySCOConnectionHandle(controlID uint32, role Role, addr BDAddr) (uint16, error) {
	if !role.Valid() {
		return 0, ErrInvalidParameter
	}
	if err := m.acquire(); err != nil {
		return 0, err
	}
	defer m.mu.Unlock()

	en := m.reg.find(controlID, categoryControl, categoryData)
	if controlID == 0 || en == nil || en.role != role {
		return 0, ErrInvalidCallback
	}
	if addr.IsZero() {
		return 0, ErrInvalidParameter
	}
	rp := cmd.QuerySCOConnectionHandleRP{}
	c := &cmd.QuerySCOConnectionHandle{
		EventsHandlerID: en.stackID,
		Addr:            addr.Wire(),
		ConnectionType:  uint32(role),
	}
	if err := m.stack.Send(c, &rp); err != nil {
		return 0, err
	}
	return rp.SCOHandle, nil
}
