package cmd

import "github.com/rigado/hfrm/msg"

// Most control commands share one of a handful of shapes; they carry the
// function id alongside the parameters. Op must be one of the functions
// listed on each type.

// AddrCommand addresses a device with no further parameters.
// QueryControlIndicatorStatus, QueryCallHoldMultiSupport,
// RedialLastPhoneNumber, AnswerIncomingCall, VoiceTagRequest, HangUpCall,
// QueryCurrentCallsList, SetNetworkOperatorFormat,
// QueryNetworkOperatorSelection, QuerySubscriberNumberInfo,
// QueryResponseHoldStatus, RingIndication.
type AddrCommand struct {
	Op        uint32
	ControlID uint32
	Addr      Addr
}

func (c *AddrCommand) Function() uint32       { return c.Op }
func (c *AddrCommand) Len() int               { return length(c) }
func (c *AddrCommand) Marshal(b []byte) error { return marshal(c, b) }
func (c *AddrCommand) encode(w *msg.Writer)   { w.U32(c.ControlID).Addr(c.Addr) }

// AddrFlag carries one boolean.
// EnableIndicatorNotification, EnableCallWaitNotification,
// EnableCallLineIDNotification, EnableExtendedErrorResult,
// EnableInBandRingToneSetting.
type AddrFlag struct {
	Op        uint32
	ControlID uint32
	Addr      Addr
	Enable    bool
}

func (c *AddrFlag) Function() uint32       { return c.Op }
func (c *AddrFlag) Len() int               { return length(c) }
func (c *AddrFlag) Marshal(b []byte) error { return marshal(c, b) }
func (c *AddrFlag) encode(w *msg.Writer)   { w.U32(c.ControlID).Addr(c.Addr).Bool(c.Enable) }

// AddrValue carries one integer.
// DialPhoneNumberFromMemory, SetIncomingCallState, SendExtendedErrorResult,
// SendIncomingCallState.
type AddrValue struct {
	Op        uint32
	ControlID uint32
	Addr      Addr
	Value     uint32
}

func (c *AddrValue) Function() uint32       { return c.Op }
func (c *AddrValue) Len() int               { return length(c) }
func (c *AddrValue) Marshal(b []byte) error { return marshal(c, b) }
func (c *AddrValue) encode(w *msg.Writer)   { w.U32(c.ControlID).Addr(c.Addr).U32(c.Value) }

// AddrString carries one NUL terminated string.
// DialPhoneNumber, SendArbitraryCommand, SendCallWaitingNotification,
// SendCallLineIDNotification, VoiceTagResponse, SendArbitraryResponse.
type AddrString struct {
	Op        uint32
	ControlID uint32
	Addr      Addr
	Value     string
}

func (c *AddrString) Function() uint32       { return c.Op }
func (c *AddrString) Len() int               { return length(c) }
func (c *AddrString) Marshal(b []byte) error { return marshal(c, b) }
func (c *AddrString) encode(w *msg.Writer)   { w.U32(c.ControlID).Addr(c.Addr).String(c.Value) }

// TypedCommand addresses a device in a given role.
// DisableEchoNoiseCancellation, SetupAudioConnection, ReleaseAudioConnection.
type TypedCommand struct {
	Op             uint32
	ControlID      uint32
	ConnectionType uint32
	Addr           Addr
}

func (c *TypedCommand) Function() uint32       { return c.Op }
func (c *TypedCommand) Len() int               { return length(c) }
func (c *TypedCommand) Marshal(b []byte) error { return marshal(c, b) }
func (c *TypedCommand) encode(w *msg.Writer) {
	w.U32(c.ControlID).U32(c.ConnectionType).Addr(c.Addr)
}

// TypedValue addresses a device in a given role with one integer.
// SetVoiceRecognitionActivation (0 or 1), SetSpeakerGain, SetMicrophoneGain.
type TypedValue struct {
	Op             uint32
	ControlID      uint32
	ConnectionType uint32
	Addr           Addr
	Value          uint32
}

func (c *TypedValue) Function() uint32       { return c.Op }
func (c *TypedValue) Len() int               { return length(c) }
func (c *TypedValue) Marshal(b []byte) error { return marshal(c, b) }
func (c *TypedValue) encode(w *msg.Writer) {
	w.U32(c.ControlID).U32(c.ConnectionType).Addr(c.Addr).U32(c.Value)
}

// SendSelectCodec asks the remote side to use a codec.
type SendSelectCodec struct {
	ControlID      uint32
	ConnectionType uint32
	Addr           Addr
	CodecID        uint8
}

func (c *SendSelectCodec) Function() uint32       { return msg.FunctionSendSelectCodec }
func (c *SendSelectCodec) Len() int               { return length(c) }
func (c *SendSelectCodec) Marshal(b []byte) error { return marshal(c, b) }
func (c *SendSelectCodec) encode(w *msg.Writer) {
	w.U32(c.ControlID).U32(c.ConnectionType).Addr(c.Addr).U8(c.CodecID)
}

// SendCallHoldMultiSelection ...
type SendCallHoldMultiSelection struct {
	ControlID uint32
	Addr      Addr
	Handling  uint32
	Index     uint32
}

func (c *SendCallHoldMultiSelection) Function() uint32 {
	return msg.FunctionSendCallHoldMultiSelection
}
func (c *SendCallHoldMultiSelection) Len() int               { return length(c) }
func (c *SendCallHoldMultiSelection) Marshal(b []byte) error { return marshal(c, b) }
func (c *SendCallHoldMultiSelection) encode(w *msg.Writer) {
	w.U32(c.ControlID).Addr(c.Addr).U32(c.Handling).U32(c.Index)
}

// TransmitDTMFCode ...
type TransmitDTMFCode struct {
	ControlID uint32
	Addr      Addr
	Code      byte
}

func (c *TransmitDTMFCode) Function() uint32       { return msg.FunctionTransmitDTMFCode }
func (c *TransmitDTMFCode) Len() int               { return length(c) }
func (c *TransmitDTMFCode) Marshal(b []byte) error { return marshal(c, b) }
func (c *TransmitDTMFCode) encode(w *msg.Writer)   { w.U32(c.ControlID).Addr(c.Addr).U8(c.Code) }

// SendAvailableCodecList ...
type SendAvailableCodecList struct {
	ControlID uint32
	Addr      Addr
	Codecs    []byte
}

func (c *SendAvailableCodecList) Function() uint32       { return msg.FunctionSendAvailableCodecList }
func (c *SendAvailableCodecList) Len() int               { return length(c) }
func (c *SendAvailableCodecList) Marshal(b []byte) error { return marshal(c, b) }
func (c *SendAvailableCodecList) encode(w *msg.Writer) {
	w.U32(c.ControlID).Addr(c.Addr).Blob(c.Codecs)
}

// UpdateIndicatorStatusByName ...
type UpdateIndicatorStatusByName struct {
	ControlID uint32
	Addr      Addr
	Value     uint32
	Name      string
}

func (c *UpdateIndicatorStatusByName) Function() uint32 {
	return msg.FunctionUpdateIndicatorStatusByName
}
func (c *UpdateIndicatorStatusByName) Len() int               { return length(c) }
func (c *UpdateIndicatorStatusByName) Marshal(b []byte) error { return marshal(c, b) }
func (c *UpdateIndicatorStatusByName) encode(w *msg.Writer) {
	w.U32(c.ControlID).Addr(c.Addr).U32(c.Value).String(c.Name)
}

// SendNetworkOperatorSelection ...
type SendNetworkOperatorSelection struct {
	ControlID uint32
	Addr      Addr
	Mode      uint32
	Operator  string
}

func (c *SendNetworkOperatorSelection) Function() uint32 {
	return msg.FunctionSendNetworkOperatorSelection
}
func (c *SendNetworkOperatorSelection) Len() int               { return length(c) }
func (c *SendNetworkOperatorSelection) Marshal(b []byte) error { return marshal(c, b) }
func (c *SendNetworkOperatorSelection) encode(w *msg.Writer) {
	w.U32(c.ControlID).Addr(c.Addr).U32(c.Mode).String(c.Operator)
}

// SendTerminatingResponse ...
type SendTerminatingResponse struct {
	ControlID   uint32
	Addr        Addr
	ResultType  uint32
	ResultValue uint32
}

func (c *SendTerminatingResponse) Function() uint32       { return msg.FunctionSendTerminatingResponse }
func (c *SendTerminatingResponse) Len() int               { return length(c) }
func (c *SendTerminatingResponse) Marshal(b []byte) error { return marshal(c, b) }
func (c *SendTerminatingResponse) encode(w *msg.Writer) {
	w.U32(c.ControlID).Addr(c.Addr).U32(c.ResultType).U32(c.ResultValue)
}

// EnableArbitraryCmdProcessing ...
type EnableArbitraryCmdProcessing struct {
	ControlID uint32
}

func (c *EnableArbitraryCmdProcessing) Function() uint32 {
	return msg.FunctionEnableArbitraryCmdProcessing
}
func (c *EnableArbitraryCmdProcessing) Len() int               { return length(c) }
func (c *EnableArbitraryCmdProcessing) Marshal(b []byte) error { return marshal(c, b) }
func (c *EnableArbitraryCmdProcessing) encode(w *msg.Writer)   { w.U32(c.ControlID) }
