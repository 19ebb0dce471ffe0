package hfrm

import (
	"fmt"

	"github.com/rigado/hfrm/msg"
)

// EventType identifies an event by the function id it arrived with.
type EventType uint32

func (t EventType) String() string {
	if l, ok := msg.Lookup(uint32(t)); ok {
		return l.Name
	}
	return fmt.Sprintf("event(0x%05x)", uint32(t))
}

// Event is delivered to listeners. Events are only valid for the duration
// of the callback; copy what you need to keep.
type Event interface {
	Type() EventType
	Role() Role
	Addr() BDAddr
}

// EventHeader is embedded in every event.
type EventHeader struct {
	Kind           EventType
	ConnectionType Role
	RemoteAddr     BDAddr
}

func (h EventHeader) Type() EventType { return h.Kind }
func (h EventHeader) Role() Role      { return h.ConnectionType }
func (h EventHeader) Addr() BDAddr    { return h.RemoteAddr }

func (h EventHeader) String() string {
	return fmt.Sprintf("%v %v %v", h.Kind, h.ConnectionType, h.RemoteAddr)
}

// AddrEvent carries no data besides the header. ConnectionRequest,
// DeviceConnected, AudioConnected, AudioDisconnected, RingIndicationInd and
// the parameterless Audio-Gateway indications.
type AddrEvent struct {
	EventHeader
}

// ConnectionStatusEvent reports the outcome of a connect attempt.
type ConnectionStatusEvent struct {
	EventHeader
	Status ConnectionStatus
}

// DisconnectedEvent ...
type DisconnectedEvent struct {
	EventHeader
	Reason DisconnectReason
}

// ServiceLevelEvent reports an established service level connection.
type ServiceLevelEvent struct {
	EventHeader
	RemoteSupportedFeaturesValid bool
	RemoteSupportedFeatures      uint32
	RemoteCallHoldMultiparty     uint32
}

// AudioDataEvent carries received SCO audio. Only the data callback whose
// registration matches DataID receives it.
type AudioDataEvent struct {
	EventHeader
	DataID uint32
	Flags  uint32
	Data   []byte
}

// FlagEvent carries one boolean. AudioConnectionStatus (successful),
// VoiceRecognitionInd, InBandRingToneSettingInd, CallWaitNotActivationInd,
// CallLineIDNotActivationInd, ExtendedErrorResultActInd.
type FlagEvent struct {
	EventHeader
	Enabled bool
}

// ValueEvent carries one integer. SpeakerGainInd, MicrophoneGainInd,
// IncomingCallStateInd, IncomingCallStateCfm, ResponseHoldStatusCfm,
// DialPhoneNumberFromMemInd, NetworkOperatorFormatInd.
type ValueEvent struct {
	EventHeader
	Value uint32
}

// StringEvent carries one string: a phone number, voice tag or arbitrary
// AT command/response.
type StringEvent struct {
	EventHeader
	Value string
}

// CodeEvent carries a single byte: a DTMF digit or codec id.
type CodeEvent struct {
	EventHeader
	Code uint8
}

// ControlIndicatorEvent reports one remote indicator.
type ControlIndicatorEvent struct {
	EventHeader
	IndicatorType uint32
	Value1        uint32
	Value2        uint32
	Value3        uint32
	Description   string
}

// CallHoldSupportEvent ...
type CallHoldSupportEvent struct {
	EventHeader
	MaskValid bool
	Mask      uint32
}

// CallHoldSelectionEvent ...
type CallHoldSelectionEvent struct {
	EventHeader
	Handling uint32
	Index    uint32
}

// CallListEvent is one entry of the current calls list.
type CallListEvent struct {
	EventHeader
	Index        uint32
	Direction    uint32
	Status       uint32
	Mode         uint32
	Multiparty   bool
	NumberFormat uint32
	Number       string
}

// NetworkOperatorEvent ...
type NetworkOperatorEvent struct {
	EventHeader
	Mode     uint32
	Operator string
}

// SubscriberNumberEvent ...
type SubscriberNumberEvent struct {
	EventHeader
	ServiceType  uint32
	NumberFormat uint32
	Number       string
}

// CommandResultEvent ...
type CommandResultEvent struct {
	EventHeader
	ResultType  uint32
	ResultValue uint32
}

// CodecListEvent ...
type CodecListEvent struct {
	EventHeader
	Codecs []byte
}

// EventCallback receives events. param is the value given at registration.
type EventCallback func(e Event, param interface{})

// ConnectCallback receives the outcome of an asynchronous connect.
type ConnectCallback func(role Role, addr BDAddr, status ConnectionStatus, param interface{})
