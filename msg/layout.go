package msg

import (
	"encoding/binary"
	"fmt"
)

// Limits on inline arrays. Counts of string fields include the terminator.
const (
	PhoneNumberMax          = 64 + 1
	IndicatorDescriptionMax = 20 + 1
	NetworkOperatorMax      = 16 + 1
	ArbitraryCommandMax     = 256 + 1
	SupportedCodecsMax      = 8
	AudioDataMax            = 1024
	ConnectedDevicesMax     = 16
	AdditionalIndicatorsMax = 20

	// IndicatorEntrySize is the packed size of one configuration indicator:
	// type, three values and a fixed description buffer.
	IndicatorEntrySize = 4*4 + IndicatorDescriptionMax
)

// Layout describes the payload shape of one function. Fixed-size payloads
// have CountAt < 0. Variable payloads carry a u32 element count at CountAt,
// immediately followed by the inline array.
type Layout struct {
	Name    string
	Fixed   int
	CountAt int
	Elem    int
	Max     int
}

func fixed(name string, n int) Layout {
	return Layout{Name: name, Fixed: n, CountAt: -1}
}

func variable(name string, countAt, elem, max int) Layout {
	return Layout{Name: name, Fixed: countAt + 4, CountAt: countAt, Elem: elem, Max: max}
}

// Variable reports whether the layout ends with an inline array.
func (l Layout) Variable() bool {
	return l.CountAt >= 0
}

// Size is the full frame size, header included, for count tail elements.
func (l Layout) Size(count uint32) int {
	if !l.Variable() {
		return HeaderSize + l.Fixed
	}
	return HeaderSize + l.Fixed + int(count)*l.Elem
}

// MinSize is Size(0).
func (l Layout) MinSize() int {
	return l.Size(0)
}

// Count reads the declared element count from a payload. The payload must
// already be known to hold at least MinSize bytes of frame.
func (l Layout) Count(payload []byte) (uint32, error) {
	if !l.Variable() {
		return 0, nil
	}
	if len(payload) < l.CountAt+4 {
		return 0, fmt.Errorf("%s: payload too short for count", l.Name)
	}
	return binary.LittleEndian.Uint32(payload[l.CountAt:]), nil
}

// Check validates a frame of size bytes (header included) against the
// layout, first against the minimum and then against the declared count.
func (l Layout) Check(size int, payload []byte) error {
	if size < l.MinSize() {
		return fmt.Errorf("%s: invalid message length %d < %d", l.Name, size, l.MinSize())
	}
	if !l.Variable() {
		return nil
	}
	n, err := l.Count(payload)
	if err != nil {
		return err
	}
	if size < l.Size(n) {
		return fmt.Errorf("%s: invalid message length %d < %d (count %d)", l.Name, size, l.Size(n), n)
	}
	return nil
}

// common event prefix: connection type + address
const evtPrefix = 4 + AddrSize

// control command prefix: control id + address
const ctlPrefix = 4 + AddrSize

var layouts = map[uint32]Layout{
	FunctionClientRegistration: fixed("ClientRegistration", 8),

	FunctionConnectionRequestResponse:     fixed("ConnectionRequestResponse", 4+AddrSize+4),
	FunctionConnectRemoteDevice:           fixed("ConnectRemoteDevice", 4+4+AddrSize+4),
	FunctionDisconnectDevice:              fixed("DisconnectDevice", 4+AddrSize),
	FunctionQueryConnectedDevices:         fixed("QueryConnectedDevices", 4),
	FunctionQueryCurrentConfiguration:     fixed("QueryCurrentConfiguration", 4),
	FunctionChangeIncomingConnectionFlags: fixed("ChangeIncomingConnectionFlags", 8),

	FunctionDisableEchoNoiseCancellation:  fixed("DisableEchoNoiseCancellation", 4+4+AddrSize),
	FunctionSetVoiceRecognitionActivation: fixed("SetVoiceRecognitionActivation", 4+4+AddrSize+4),
	FunctionSetSpeakerGain:                fixed("SetSpeakerGain", 4+4+AddrSize+4),
	FunctionSetMicrophoneGain:             fixed("SetMicrophoneGain", 4+4+AddrSize+4),

	FunctionQueryControlIndicatorStatus:   fixed("QueryControlIndicatorStatus", ctlPrefix),
	FunctionEnableIndicatorNotification:   fixed("EnableIndicatorNotification", ctlPrefix+4),
	FunctionQueryCallHoldMultiSupport:     fixed("QueryCallHoldMultiSupport", ctlPrefix),
	FunctionSendCallHoldMultiSelection:    fixed("SendCallHoldMultiSelection", ctlPrefix+8),
	FunctionEnableCallWaitNotification:    fixed("EnableCallWaitNotification", ctlPrefix+4),
	FunctionEnableCallLineIDNotification:  fixed("EnableCallLineIDNotification", ctlPrefix+4),
	FunctionDialPhoneNumber:               variable("DialPhoneNumber", ctlPrefix, 1, PhoneNumberMax),
	FunctionDialPhoneNumberFromMemory:     fixed("DialPhoneNumberFromMemory", ctlPrefix+4),
	FunctionRedialLastPhoneNumber:         fixed("RedialLastPhoneNumber", ctlPrefix),
	FunctionAnswerIncomingCall:            fixed("AnswerIncomingCall", ctlPrefix),
	FunctionTransmitDTMFCode:              fixed("TransmitDTMFCode", ctlPrefix+1),
	FunctionVoiceTagRequest:               fixed("VoiceTagRequest", ctlPrefix),
	FunctionHangUpCall:                    fixed("HangUpCall", ctlPrefix),
	FunctionQueryCurrentCallsList:         fixed("QueryCurrentCallsList", ctlPrefix),
	FunctionSetNetworkOperatorFormat:      fixed("SetNetworkOperatorFormat", ctlPrefix),
	FunctionQueryNetworkOperatorSelection: fixed("QueryNetworkOperatorSelection", ctlPrefix),
	FunctionEnableExtendedErrorResult:     fixed("EnableExtendedErrorResult", ctlPrefix+4),
	FunctionQuerySubscriberNumberInfo:     fixed("QuerySubscriberNumberInfo", ctlPrefix),
	FunctionQueryResponseHoldStatus:       fixed("QueryResponseHoldStatus", ctlPrefix),
	FunctionSetIncomingCallState:          fixed("SetIncomingCallState", ctlPrefix+4),
	FunctionSendArbitraryCommand:          variable("SendArbitraryCommand", ctlPrefix, 1, ArbitraryCommandMax),
	FunctionSendAvailableCodecList:        variable("SendAvailableCodecList", ctlPrefix, 1, SupportedCodecsMax),

	FunctionUpdateIndicatorStatusByName:  variable("UpdateIndicatorStatusByName", ctlPrefix+4, 1, IndicatorDescriptionMax),
	FunctionSendCallWaitingNotification:  variable("SendCallWaitingNotification", ctlPrefix, 1, PhoneNumberMax),
	FunctionSendCallLineIDNotification:   variable("SendCallLineIDNotification", ctlPrefix, 1, PhoneNumberMax),
	FunctionRingIndication:               fixed("RingIndication", ctlPrefix),
	FunctionEnableInBandRingToneSetting:  fixed("EnableInBandRingToneSetting", ctlPrefix+4),
	FunctionVoiceTagResponse:             variable("VoiceTagResponse", ctlPrefix, 1, PhoneNumberMax),
	FunctionSendNetworkOperatorSelection: variable("SendNetworkOperatorSelection", ctlPrefix+4, 1, NetworkOperatorMax),
	FunctionSendExtendedErrorResult:      fixed("SendExtendedErrorResult", ctlPrefix+4),
	FunctionSendIncomingCallState:        fixed("SendIncomingCallState", ctlPrefix+4),
	FunctionSendTerminatingResponse:      fixed("SendTerminatingResponse", ctlPrefix+8),
	FunctionEnableArbitraryCmdProcessing: fixed("EnableArbitraryCmdProcessing", 4),
	FunctionSendArbitraryResponse:        variable("SendArbitraryResponse", ctlPrefix, 1, ArbitraryCommandMax),
	FunctionSendSelectCodec:              fixed("SendSelectCodec", ctlPrefix+4+1),

	FunctionSetupAudioConnection:     fixed("SetupAudioConnection", 4+4+AddrSize),
	FunctionReleaseAudioConnection:   fixed("ReleaseAudioConnection", 4+4+AddrSize),
	FunctionSendAudioData:            variable("SendAudioData", 4+4+AddrSize, 1, AudioDataMax),
	FunctionQuerySCOConnectionHandle: fixed("QuerySCOConnectionHandle", 4+AddrSize+4),

	FunctionRegisterEvents:       fixed("RegisterEvents", 8),
	FunctionUnregisterEvents:     fixed("UnregisterEvents", 4),
	FunctionRegisterDataEvents:   fixed("RegisterDataEvents", 4),
	FunctionUnregisterDataEvents: fixed("UnregisterDataEvents", 4),

	FunctionConnectionRequest:      fixed("ConnectionRequest", evtPrefix),
	FunctionDeviceConnected:        fixed("DeviceConnected", evtPrefix),
	FunctionDeviceConnectionStatus: fixed("DeviceConnectionStatus", evtPrefix+4),
	FunctionDeviceDisconnected:     fixed("DeviceDisconnected", evtPrefix+4),
	FunctionServiceLevelConnection: fixed("ServiceLevelConnection", evtPrefix+12),
	FunctionAudioConnected:         fixed("AudioConnected", evtPrefix),
	FunctionAudioConnectionStatus:  fixed("AudioConnectionStatus", evtPrefix+4),
	FunctionAudioDisconnected:      fixed("AudioDisconnected", evtPrefix),
	FunctionAudioDataReceived:      variable("AudioDataReceived", evtPrefix+8, 1, AudioDataMax),
	FunctionVoiceRecognitionInd:    fixed("VoiceRecognitionInd", evtPrefix+4),
	FunctionSpeakerGainInd:         fixed("SpeakerGainInd", evtPrefix+4),
	FunctionMicrophoneGainInd:      fixed("MicrophoneGainInd", evtPrefix+4),
	FunctionIncomingCallStateInd:   fixed("IncomingCallStateInd", evtPrefix+4),

	FunctionIncomingCallStateCfm:        fixed("IncomingCallStateCfm", AddrSize+4),
	FunctionControlIndicatorStatusInd:   variable("ControlIndicatorStatusInd", AddrSize+16, 1, IndicatorDescriptionMax),
	FunctionControlIndicatorStatusCfm:   variable("ControlIndicatorStatusCfm", AddrSize+16, 1, IndicatorDescriptionMax),
	FunctionCallHoldMultiSupportCfm:     fixed("CallHoldMultiSupportCfm", AddrSize+8),
	FunctionCallWaitNotificationInd:     variable("CallWaitNotificationInd", AddrSize, 1, PhoneNumberMax),
	FunctionCallLineIDNotificationInd:   variable("CallLineIDNotificationInd", AddrSize, 1, PhoneNumberMax),
	FunctionRingIndicationInd:           fixed("RingIndicationInd", AddrSize),
	FunctionInBandRingToneSettingInd:    fixed("InBandRingToneSettingInd", AddrSize+4),
	FunctionVoiceTagRequestCfm:          variable("VoiceTagRequestCfm", AddrSize, 1, PhoneNumberMax),
	FunctionQueryCurrentCallsListCfm:    variable("QueryCurrentCallsListCfm", AddrSize+24, 1, PhoneNumberMax),
	FunctionNetworkOperatorSelectionCfm: variable("NetworkOperatorSelectionCfm", AddrSize+4, 1, NetworkOperatorMax),
	FunctionSubscriberNumberInfoCfm:     variable("SubscriberNumberInfoCfm", AddrSize+8, 1, PhoneNumberMax),
	FunctionResponseHoldStatusCfm:       fixed("ResponseHoldStatusCfm", AddrSize+4),
	FunctionCommandResult:               fixed("CommandResult", AddrSize+8),
	FunctionArbitraryResponse:           variable("ArbitraryResponse", AddrSize, 1, ArbitraryCommandMax),
	FunctionSelectCodecInd:              fixed("SelectCodecInd", AddrSize+1),
	FunctionQueryCurrentCallsListCfmV2:  variable("QueryCurrentCallsListCfmV2", AddrSize+24, 1, PhoneNumberMax),

	FunctionCallHoldMultiSelectionInd:   fixed("CallHoldMultiSelectionInd", AddrSize+8),
	FunctionCallWaitNotActivationInd:    fixed("CallWaitNotActivationInd", AddrSize+4),
	FunctionCallLineIDNotActivationInd:  fixed("CallLineIDNotActivationInd", AddrSize+4),
	FunctionDisableSoundEnhancementInd:  fixed("DisableSoundEnhancementInd", AddrSize),
	FunctionDialPhoneNumberInd:          variable("DialPhoneNumberInd", AddrSize, 1, PhoneNumberMax),
	FunctionDialPhoneNumberFromMemInd:   fixed("DialPhoneNumberFromMemInd", AddrSize+4),
	FunctionRedialLastPhoneNumberInd:    fixed("RedialLastPhoneNumberInd", AddrSize),
	FunctionGenerateDTMFCodeInd:         fixed("GenerateDTMFCodeInd", AddrSize+1),
	FunctionAnswerCallInd:               fixed("AnswerCallInd", AddrSize),
	FunctionVoiceTagRequestInd:          fixed("VoiceTagRequestInd", AddrSize),
	FunctionHangUpInd:                   fixed("HangUpInd", AddrSize),
	FunctionQueryCurrentCallsListInd:    fixed("QueryCurrentCallsListInd", AddrSize),
	FunctionNetworkOperatorFormatInd:    fixed("NetworkOperatorFormatInd", AddrSize+4),
	FunctionNetworkOperatorSelectionInd: fixed("NetworkOperatorSelectionInd", AddrSize),
	FunctionExtendedErrorResultActInd:   fixed("ExtendedErrorResultActInd", AddrSize+4),
	FunctionSubscriberNumberInfoInd:     fixed("SubscriberNumberInfoInd", AddrSize),
	FunctionResponseHoldStatusInd:       fixed("ResponseHoldStatusInd", AddrSize),
	FunctionArbitraryCommandInd:         variable("ArbitraryCommandInd", AddrSize, 1, ArbitraryCommandMax),
	FunctionAvailableCodecListInd:       variable("AvailableCodecListInd", AddrSize, 1, SupportedCodecsMax),
	FunctionSelectCodecCfm:              fixed("SelectCodecCfm", AddrSize+1),
	FunctionConnectCodecInd:             fixed("ConnectCodecInd", AddrSize),
}

// status only
var statusLayout = fixed("Status", 4)

var responseLayouts = map[uint32]Layout{
	FunctionQueryConnectedDevices:     variable("QueryConnectedDevicesRP", 4, AddrSize, ConnectedDevicesMax),
	FunctionQueryCurrentConfiguration: variable("QueryCurrentConfigurationRP", 20, IndicatorEntrySize, AdditionalIndicatorsMax),
	FunctionRegisterEvents:            fixed("RegisterEventsRP", 8),
	FunctionRegisterDataEvents:        fixed("RegisterDataEventsRP", 8),
	FunctionQuerySCOConnectionHandle:  fixed("QuerySCOConnectionHandleRP", 6),
}

// Lookup returns the request or event layout of fn.
func Lookup(fn uint32) (Layout, bool) {
	l, ok := layouts[fn]
	return l, ok
}

// LookupResponse returns the response layout of command fn. Commands
// without a dedicated response carry only a status.
func LookupResponse(fn uint32) (Layout, bool) {
	if l, ok := responseLayouts[fn]; ok {
		return l, true
	}
	if _, ok := layouts[fn]; ok && IsCommand(fn) {
		return statusLayout, true
	}
	return Layout{}, false
}

// Functions lists every function with a request or event layout.
func Functions() []uint32 {
	out := make([]uint32, 0, len(layouts))
	for fn := range layouts {
		out = append(out, fn)
	}
	return out
}
