package hfrm

import (
	"github.com/rigado/hfrm/cmd"
	"github.com/rigado/hfrm/msg"
)

// Control commands may only be issued by the control listener of the role
// (see RegisterEventCallback); controlID is the id it was registered with.
// Results arrive as events on the control listener.

type buildFn func(serverID uint32, addr cmd.Addr) Command

// forward checks the control id of role, then the parameters, and sends the
// command built with the server side id of the control registration.
func (m *Manager) forward(role Role, controlID uint32, addr BDAddr, perr error, build buildFn, rp CommandRP) error {
	if !role.Valid() {
		return ErrInvalidParameter
	}
	if err := m.acquire(); err != nil {
		return err
	}
	defer m.mu.Unlock()

	en := m.reg.list(role, categoryControl).First()
	if en == nil || controlID == 0 || en.handle != controlID {
		return ErrInvalidCallback
	}
	if addr.IsZero() || perr != nil {
		return ErrInvalidParameter
	}
	return m.stack.Send(build(en.stackID, addr.Wire()), rp)
}

func checkString(s string, max int) error {
	if len(s) == 0 || len(s)+1 > max {
		return ErrInvalidParameter
	}
	return nil
}

func (m *Manager) addrCommand(role Role, op, controlID uint32, addr BDAddr) error {
	return m.forward(role, controlID, addr, nil, func(id uint32, a cmd.Addr) Command {
		return &cmd.AddrCommand{Op: op, ControlID: id, Addr: a}
	}, nil)
}

func (m *Manager) addrFlag(role Role, op, controlID uint32, addr BDAddr, enable bool) error {
	return m.forward(role, controlID, addr, nil, func(id uint32, a cmd.Addr) Command {
		return &cmd.AddrFlag{Op: op, ControlID: id, Addr: a, Enable: enable}
	}, nil)
}

func (m *Manager) addrValue(role Role, op, controlID uint32, addr BDAddr, v uint32) error {
	return m.forward(role, controlID, addr, nil, func(id uint32, a cmd.Addr) Command {
		return &cmd.AddrValue{Op: op, ControlID: id, Addr: a, Value: v}
	}, nil)
}

func (m *Manager) addrString(role Role, op, controlID uint32, addr BDAddr, s string, max int) error {
	return m.forward(role, controlID, addr, checkString(s, max), func(id uint32, a cmd.Addr) Command {
		return &cmd.AddrString{Op: op, ControlID: id, Addr: a, Value: s}
	}, nil)
}

func (m *Manager) typedValue(role Role, op, controlID uint32, addr BDAddr, v uint32) error {
	return m.typedValueChecked(role, op, controlID, addr, v, nil)
}

func (m *Manager) typedValueChecked(role Role, op, controlID uint32, addr BDAddr, v uint32, perr error) error {
	return m.forward(role, controlID, addr, perr, func(id uint32, a cmd.Addr) Command {
		return &cmd.TypedValue{Op: op, ControlID: id, ConnectionType: uint32(role), Addr: a, Value: v}
	}, nil)
}

func (m *Manager) typedCommand(role Role, op, controlID uint32, addr BDAddr) error {
	return m.forward(role, controlID, addr, nil, func(id uint32, a cmd.Addr) Command {
		return &cmd.TypedCommand{Op: op, ControlID: id, ConnectionType: uint32(role), Addr: a}
	}, nil)
}

// Both roles.

func (m *Manager) DisableEchoNoiseCancellation(controlID uint32, role Role, addr BDAddr) error {
	return m.typedCommand(role, msg.FunctionDisableEchoNoiseCancellation, controlID, addr)
}

func (m *Manager) SetVoiceRecognitionActivation(controlID uint32, role Role, addr BDAddr, active bool) error {
	var v uint32
	if active {
		v = 1
	}
	return m.typedValue(role, msg.FunctionSetVoiceRecognitionActivation, controlID, addr, v)
}

// Gains range 0 to 15.
const maxGain = 15

func checkGain(gain uint32) error {
	if gain > maxGain {
		return ErrInvalidParameter
	}
	return nil
}

func (m *Manager) SetSpeakerGain(controlID uint32, role Role, addr BDAddr, gain uint32) error {
	return m.typedValueChecked(role, msg.FunctionSetSpeakerGain, controlID, addr, gain, checkGain(gain))
}

func (m *Manager) SetMicrophoneGain(controlID uint32, role Role, addr BDAddr, gain uint32) error {
	return m.typedValueChecked(role, msg.FunctionSetMicrophoneGain, controlID, addr, gain, checkGain(gain))
}

func (m *Manager) SendSelectCodec(controlID uint32, role Role, addr BDAddr, codec uint8) error {
	return m.forward(role, controlID, addr, nil, func(id uint32, a cmd.Addr) Command {
		return &cmd.SendSelectCodec{ControlID: id, ConnectionType: uint32(role), Addr: a, CodecID: codec}
	}, nil)
}

// Hands-Free role.

func (m *Manager) QueryControlIndicatorStatus(controlID uint32, addr BDAddr) error {
	return m.addrCommand(HandsFree, msg.FunctionQueryControlIndicatorStatus, controlID, addr)
}

func (m *Manager) EnableIndicatorNotification(controlID uint32, addr BDAddr, enable bool) error {
	return m.addrFlag(HandsFree, msg.FunctionEnableIndicatorNotification, controlID, addr, enable)
}

func (m *Manager) QueryCallHoldMultiSupport(controlID uint32, addr BDAddr) error {
	return m.addrCommand(HandsFree, msg.FunctionQueryCallHoldMultiSupport, controlID, addr)
}

func (m *Manager) SendCallHoldMultiSelection(controlID uint32, addr BDAddr, handling, index uint32) error {
	return m.forward(HandsFree, controlID, addr, nil, func(id uint32, a cmd.Addr) Command {
		return &cmd.SendCallHoldMultiSelection{ControlID: id, Addr: a, Handling: handling, Index: index}
	}, nil)
}

func (m *Manager) EnableCallWaitNotification(controlID uint32, addr BDAddr, enable bool) error {
	return m.addrFlag(HandsFree, msg.FunctionEnableCallWaitNotification, controlID, addr, enable)
}

func (m *Manager) EnableCallLineIDNotification(controlID uint32, addr BDAddr, enable bool) error {
	return m.addrFlag(HandsFree, msg.FunctionEnableCallLineIDNotification, controlID, addr, enable)
}

func (m *Manager) DialPhoneNumber(controlID uint32, addr BDAddr, number string) error {
	return m.addrString(HandsFree, msg.FunctionDialPhoneNumber, controlID, addr, number, msg.PhoneNumberMax)
}

func (m *Manager) DialPhoneNumberFromMemory(controlID uint32, addr BDAddr, location uint32) error {
	return m.addrValue(HandsFree, msg.FunctionDialPhoneNumberFromMemory, controlID, addr, location)
}

func (m *Manager) RedialLastPhoneNumber(controlID uint32, addr BDAddr) error {
	return m.addrCommand(HandsFree, msg.FunctionRedialLastPhoneNumber, controlID, addr)
}

func (m *Manager) AnswerIncomingCall(controlID uint32, addr BDAddr) error {
	return m.addrCommand(HandsFree, msg.FunctionAnswerIncomingCall, controlID, addr)
}

// ValidDTMF reports whether c is a DTMF digit: 0-9, *, # or A-D.
func ValidDTMF(c byte) bool {
	return (c >= '0' && c <= '9') || c == '*' || c == '#' || (c >= 'A' && c <= 'D')
}

func (m *Manager) TransmitDTMFCode(controlID uint32, addr BDAddr, code byte) error {
	var perr error
	if !ValidDTMF(code) {
		perr = ErrInvalidParameter
	}
	return m.forward(HandsFree, controlID, addr, perr, func(id uint32, a cmd.Addr) Command {
		return &cmd.TransmitDTMFCode{ControlID: id, Addr: a, Code: code}
	}, nil)
}

func (m *Manager) VoiceTagRequest(controlID uint32, addr BDAddr) error {
	return m.addrCommand(HandsFree, msg.FunctionVoiceTagRequest, controlID, addr)
}

func (m *Manager) HangUpCall(controlID uint32, addr BDAddr) error {
	return m.addrCommand(HandsFree, msg.FunctionHangUpCall, controlID, addr)
}

func (m *Manager) QueryCurrentCallsList(controlID uint32, addr BDAddr) error {
	return m.addrCommand(HandsFree, msg.FunctionQueryCurrentCallsList, controlID, addr)
}

func (m *Manager) SetNetworkOperatorFormat(controlID uint32, addr BDAddr) error {
	return m.addrCommand(HandsFree, msg.FunctionSetNetworkOperatorFormat, controlID, addr)
}

func (m *Manager) QueryNetworkOperatorSelection(controlID uint32, addr BDAddr) error {
	return m.addrCommand(HandsFree, msg.FunctionQueryNetworkOperatorSelection, controlID, addr)
}

func (m *Manager) EnableExtendedErrorResult(controlID uint32, addr BDAddr, enable bool) error {
	return m.addrFlag(HandsFree, msg.FunctionEnableExtendedErrorResult, controlID, addr, enable)
}

func (m *Manager) QuerySubscriberNumberInfo(controlID uint32, addr BDAddr) error {
	return m.addrCommand(HandsFree, msg.FunctionQuerySubscriberNumberInfo, controlID, addr)
}

func (m *Manager) QueryResponseHoldStatus(controlID uint32, addr BDAddr) error {
	return m.addrCommand(HandsFree, msg.FunctionQueryResponseHoldStatus, controlID, addr)
}

func (m *Manager) SetIncomingCallState(controlID uint32, addr BDAddr, state uint32) error {
	return m.addrValue(HandsFree, msg.FunctionSetIncomingCallState, controlID, addr, state)
}

func (m *Manager) SendArbitraryCommand(controlID uint32, addr BDAddr, command string) error {
	return m.addrString(HandsFree, msg.FunctionSendArbitraryCommand, controlID, addr, command, msg.ArbitraryCommandMax)
}

func (m *Manager) SendAvailableCodecList(controlID uint32, addr BDAddr, codecs []byte) error {
	var perr error
	if len(codecs) == 0 || len(codecs) > msg.SupportedCodecsMax {
		perr = ErrInvalidParameter
	}
	return m.forward(HandsFree, controlID, addr, perr, func(id uint32, a cmd.Addr) Command {
		return &cmd.SendAvailableCodecList{ControlID: id, Addr: a, Codecs: codecs}
	}, nil)
}

// Audio-Gateway role.

func (m *Manager) UpdateIndicatorStatusByName(controlID uint32, addr BDAddr, name string, value uint32) error {
	return m.forward(AudioGateway, controlID, addr, checkString(name, msg.IndicatorDescriptionMax), func(id uint32, a cmd.Addr) Command {
		return &cmd.UpdateIndicatorStatusByName{ControlID: id, Addr: a, Value: value, Name: name}
	}, nil)
}

func (m *Manager) SendCallWaitingNotification(controlID uint32, addr BDAddr, number string) error {
	return m.addrString(AudioGateway, msg.FunctionSendCallWaitingNotification, controlID, addr, number, msg.PhoneNumberMax)
}

func (m *Manager) SendCallLineIDNotification(controlID uint32, addr BDAddr, number string) error {
	return m.addrString(AudioGateway, msg.FunctionSendCallLineIDNotification, controlID, addr, number, msg.PhoneNumberMax)
}

func (m *Manager) RingIndication(controlID uint32, addr BDAddr) error {
	return m.addrCommand(AudioGateway, msg.FunctionRingIndication, controlID, addr)
}

func (m *Manager) EnableInBandRingToneSetting(controlID uint32, addr BDAddr, enable bool) error {
	return m.addrFlag(AudioGateway, msg.FunctionEnableInBandRingToneSetting, controlID, addr, enable)
}

func (m *Manager) VoiceTagResponse(controlID uint32, addr BDAddr, number string) error {
	return m.addrString(AudioGateway, msg.FunctionVoiceTagResponse, controlID, addr, number, msg.PhoneNumberMax)
}

func (m *Manager) SendNetworkOperatorSelection(controlID uint32, addr BDAddr, mode uint32, operator string) error {
	return m.forward(AudioGateway, controlID, addr, checkString(operator, msg.NetworkOperatorMax), func(id uint32, a cmd.Addr) Command {
		return &cmd.SendNetworkOperatorSelection{ControlID: id, Addr: a, Mode: mode, Operator: operator}
	}, nil)
}

func (m *Manager) SendExtendedErrorResult(controlID uint32, addr BDAddr, resultCode uint32) error {
	return m.addrValue(AudioGateway, msg.FunctionSendExtendedErrorResult, controlID, addr, resultCode)
}

func (m *Manager) SendIncomingCallState(controlID uint32, addr BDAddr, state uint32) error {
	return m.addrValue(AudioGateway, msg.FunctionSendIncomingCallState, controlID, addr, state)
}

func (m *Manager) SendTerminatingResponse(controlID uint32, addr BDAddr, resultType, resultValue uint32) error {
	return m.forward(AudioGateway, controlID, addr, nil, func(id uint32, a cmd.Addr) Command {
		return &cmd.SendTerminatingResponse{ControlID: id, Addr: a, ResultType: resultType, ResultValue: resultValue}
	}, nil)
}

// EnableArbitraryCmdProcessing routes unknown AT commands to the control
// listener as ArbitraryCommandInd events.
func (m *Manager) EnableArbitraryCmdProcessing(controlID uint32) error {
	if err := m.acquire(); err != nil {
		return err
	}
	defer m.mu.Unlock()

	en := m.reg.list(AudioGateway, categoryControl).First()
	if en == nil || controlID == 0 || en.handle != controlID {
		return ErrInvalidCallback
	}
	return m.stack.Send(&cmd.EnableArbitraryCmdProcessing{ControlID: en.stackID}, nil)
}

func (m *Manager) SendArbitraryResponse(controlID uint32, addr BDAddr, response string) error {
	return m.addrString(AudioGateway, msg.FunctionSendArbitraryResponse, controlID, addr, response, msg.ArbitraryCommandMax)
}
