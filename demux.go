package hfrm

import (
	"github.com/rigado/hfrm/msg"
)

type route int

const (
	// common to both roles; role taken from the payload
	routeCommon route = iota
	routeHandsFree
	routeAudioGateway
)

type translator struct {
	route  route
	decode func(h EventHeader, r *msg.Reader) Event
}

func addrOnly(h EventHeader, r *msg.Reader) Event { return &AddrEvent{h} }
func flag(h EventHeader, r *msg.Reader) Event     { return &FlagEvent{h, r.Bool()} }
func value(h EventHeader, r *msg.Reader) Event    { return &ValueEvent{h, r.U32()} }
func str(h EventHeader, r *msg.Reader) Event      { return &StringEvent{h, r.String()} }
func code(h EventHeader, r *msg.Reader) Event     { return &CodeEvent{h, r.U8()} }

func connectionStatus(h EventHeader, r *msg.Reader) Event {
	return &ConnectionStatusEvent{h, ConnectionStatus(r.U32())}
}

func disconnected(h EventHeader, r *msg.Reader) Event {
	return &DisconnectedEvent{h, DisconnectReason(r.U32())}
}

func serviceLevel(h EventHeader, r *msg.Reader) Event {
	return &ServiceLevelEvent{
		EventHeader:                  h,
		RemoteSupportedFeaturesValid: r.Bool(),
		RemoteSupportedFeatures:      r.U32(),
		RemoteCallHoldMultiparty:     r.U32(),
	}
}

func audioData(h EventHeader, r *msg.Reader) Event {
	return &AudioDataEvent{EventHeader: h, DataID: r.U32(), Flags: r.U32(), Data: r.Blob()}
}

func controlIndicator(h EventHeader, r *msg.Reader) Event {
	return &ControlIndicatorEvent{
		EventHeader:   h,
		IndicatorType: r.U32(),
		Value1:        r.U32(),
		Value2:        r.U32(),
		Value3:        r.U32(),
		Description:   r.String(),
	}
}

func callHoldSupport(h EventHeader, r *msg.Reader) Event {
	return &CallHoldSupportEvent{EventHeader: h, MaskValid: r.Bool(), Mask: r.U32()}
}

func callHoldSelection(h EventHeader, r *msg.Reader) Event {
	return &CallHoldSelectionEvent{EventHeader: h, Handling: r.U32(), Index: r.U32()}
}

func callList(h EventHeader, r *msg.Reader) Event {
	return &CallListEvent{
		EventHeader:  h,
		Index:        r.U32(),
		Direction:    r.U32(),
		Status:       r.U32(),
		Mode:         r.U32(),
		Multiparty:   r.Bool(),
		NumberFormat: r.U32(),
		Number:       r.String(),
	}
}

func networkOperator(h EventHeader, r *msg.Reader) Event {
	return &NetworkOperatorEvent{EventHeader: h, Mode: r.U32(), Operator: r.String()}
}

func subscriberNumber(h EventHeader, r *msg.Reader) Event {
	return &SubscriberNumberEvent{EventHeader: h, ServiceType: r.U32(), NumberFormat: r.U32(), Number: r.String()}
}

func commandResult(h EventHeader, r *msg.Reader) Event {
	return &CommandResultEvent{EventHeader: h, ResultType: r.U32(), ResultValue: r.U32()}
}

func codecList(h EventHeader, r *msg.Reader) Event {
	return &CodecListEvent{EventHeader: h, Codecs: r.Blob()}
}

var translators = map[uint32]translator{
	msg.FunctionConnectionRequest:      {routeCommon, addrOnly},
	msg.FunctionDeviceConnected:        {routeCommon, addrOnly},
	msg.FunctionDeviceConnectionStatus: {routeCommon, connectionStatus},
	msg.FunctionDeviceDisconnected:     {routeCommon, disconnected},
	msg.FunctionServiceLevelConnection: {routeCommon, serviceLevel},
	msg.FunctionAudioConnected:         {routeCommon, addrOnly},
	msg.FunctionAudioConnectionStatus:  {routeCommon, flag},
	msg.FunctionAudioDisconnected:      {routeCommon, addrOnly},
	msg.FunctionAudioDataReceived:      {routeCommon, audioData},
	msg.FunctionVoiceRecognitionInd:    {routeCommon, flag},
	msg.FunctionSpeakerGainInd:         {routeCommon, value},
	msg.FunctionMicrophoneGainInd:      {routeCommon, value},
	msg.FunctionIncomingCallStateInd:   {routeCommon, value},

	msg.FunctionIncomingCallStateCfm:        {routeHandsFree, value},
	msg.FunctionControlIndicatorStatusInd:   {routeHandsFree, controlIndicator},
	msg.FunctionControlIndicatorStatusCfm:   {routeHandsFree, controlIndicator},
	msg.FunctionCallHoldMultiSupportCfm:     {routeHandsFree, callHoldSupport},
	msg.FunctionCallWaitNotificationInd:     {routeHandsFree, str},
	msg.FunctionCallLineIDNotificationInd:   {routeHandsFree, str},
	msg.FunctionRingIndicationInd:           {routeHandsFree, addrOnly},
	msg.FunctionInBandRingToneSettingInd:    {routeHandsFree, flag},
	msg.FunctionVoiceTagRequestCfm:          {routeHandsFree, str},
	msg.FunctionQueryCurrentCallsListCfm:    {routeHandsFree, callList},
	msg.FunctionQueryCurrentCallsListCfmV2:  {routeHandsFree, callList},
	msg.FunctionNetworkOperatorSelectionCfm: {routeHandsFree, networkOperator},
	msg.FunctionSubscriberNumberInfoCfm:     {routeHandsFree, subscriberNumber},
	msg.FunctionResponseHoldStatusCfm:       {routeHandsFree, value},
	msg.FunctionCommandResult:               {routeHandsFree, commandResult},
	msg.FunctionArbitraryResponse:           {routeHandsFree, str},
	msg.FunctionSelectCodecInd:              {routeHandsFree, code},

	msg.FunctionCallHoldMultiSelectionInd:   {routeAudioGateway, callHoldSelection},
	msg.FunctionCallWaitNotActivationInd:    {routeAudioGateway, flag},
	msg.FunctionCallLineIDNotActivationInd:  {routeAudioGateway, flag},
	msg.FunctionDisableSoundEnhancementInd:  {routeAudioGateway, addrOnly},
	msg.FunctionDialPhoneNumberInd:          {routeAudioGateway, str},
	msg.FunctionDialPhoneNumberFromMemInd:   {routeAudioGateway, value},
	msg.FunctionRedialLastPhoneNumberInd:    {routeAudioGateway, addrOnly},
	msg.FunctionGenerateDTMFCodeInd:         {routeAudioGateway, code},
	msg.FunctionAnswerCallInd:               {routeAudioGateway, addrOnly},
	msg.FunctionVoiceTagRequestInd:          {routeAudioGateway, addrOnly},
	msg.FunctionHangUpInd:                   {routeAudioGateway, addrOnly},
	msg.FunctionQueryCurrentCallsListInd:    {routeAudioGateway, addrOnly},
	msg.FunctionNetworkOperatorFormatInd:    {routeAudioGateway, value},
	msg.FunctionNetworkOperatorSelectionInd: {routeAudioGateway, addrOnly},
	msg.FunctionExtendedErrorResultActInd:   {routeAudioGateway, flag},
	msg.FunctionSubscriberNumberInfoInd:     {routeAudioGateway, addrOnly},
	msg.FunctionResponseHoldStatusInd:       {routeAudioGateway, addrOnly},
	msg.FunctionArbitraryCommandInd:         {routeAudioGateway, str},
	msg.FunctionAvailableCodecListInd:       {routeAudioGateway, codecList},
	msg.FunctionSelectCodecCfm:              {routeAudioGateway, code},
	msg.FunctionConnectCodecInd:             {routeAudioGateway, addrOnly},
}

// handleGroupMessage is installed on the bus. It runs on the bus delivery
// goroutine and hands the message to the mailbox.
func (m *Manager) handleGroupMessage(in *msg.Message) {
	if in.IsResponse() {
		m.logger.Debugf("dropping unexpected response: %v", in.Header)
		return
	}
	if err := m.bus.QueueCallback(func() { m.demux(in) }); err != nil {
		m.logger.Warnf("can't queue message 0x%05x: %v", in.Function, err)
	}
}

// demux validates one inbound frame and routes it. Malformed frames are
// logged and dropped.
func (m *Manager) demux(in *msg.Message) {
	if in.IsResponse() {
		m.logger.Debugf("dropping unexpected response: %v", in.Header)
		return
	}

	if in.Function < msg.FunctionMinimum {
		m.handleReserved(in)
		return
	}

	if in.Group != msg.GroupHandsFreeManager {
		m.logger.Debugf("dropping message of group 0x%x", in.Group)
		return
	}

	t, ok := translators[in.Function]
	if !ok {
		m.logger.Debugf("unknown function 0x%05x", in.Function)
		return
	}
	l, _ := msg.Lookup(in.Function)
	if err := l.Check(in.Size(), in.Payload); err != nil {
		m.logger.Warnf("invalid message length: %v", err)
		return
	}

	r := msg.NewReader(in.Payload)
	h := EventHeader{Kind: EventType(in.Function)}
	switch t.route {
	case routeCommon:
		h.ConnectionType = Role(r.U32())
	case routeHandsFree:
		h.ConnectionType = HandsFree
	case routeAudioGateway:
		h.ConnectionType = AudioGateway
	}
	h.RemoteAddr = AddrFromWire(r.Addr())

	e := t.decode(h, r)
	if err := r.Err(); err != nil {
		m.logger.Warnf("%v: %v", h.Kind, err)
		return
	}
	if !h.ConnectionType.Valid() {
		m.logger.Debugf("%v: unknown connection type %d", h.Kind, uint32(h.ConnectionType))
		return
	}

	switch ev := e.(type) {
	case *AudioDataEvent:
		m.dispatchData(ev)
		return
	case *ConnectionStatusEvent:
		// the status of a pending connect belongs to its requester alone
		if m.resolveConnect(ev.ConnectionType, ev.RemoteAddr, ev.Status) {
			return
		}
	}

	m.dispatch(t.route != routeCommon, h.ConnectionType, e)
}

// handleReserved processes the functions every group receives.
func (m *Manager) handleReserved(in *msg.Message) {
	switch in.Function {
	case msg.FunctionClientRegistration:
		r := msg.NewReader(in.Payload)
		addressID := r.U32()
		registered := r.Bool()
		if r.Err() != nil {
			m.logger.Warnf("invalid client registration message: %v", r.Err())
			return
		}
		if registered {
			return
		}
		m.logger.Infof("server %d unregistered", addressID)
		m.ServerGone()

	case msg.FunctionClientError:
		m.logger.Warnf("client error message: % X", in.Payload)

	default:
		m.logger.Debugf("unknown reserved function 0x%x", in.Function)
	}
}
