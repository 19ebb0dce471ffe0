package cmd

import (
	"testing"

	"github.com/rigado/hfrm/msg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type request interface {
	Function() uint32
	Len() int
	Marshal([]byte) error
}

var addr = Addr{0x66, 0x55, 0x44, 0x33, 0x22, 0x11}

func TestRequestsMatchLayouts(t *testing.T) {
	tests := []struct {
		c     request
		count uint32
	}{
		{&ConnectionRequestResponse{ConnectionType: 1, Addr: addr, Accept: true}, 0},
		{&ConnectRemoteDevice{ConnectionType: 0, RemoteServerPort: 3, Addr: addr, ConnectionFlags: 3}, 0},
		{&DisconnectDevice{Addr: addr}, 0},
		{&QueryConnectedDevices{ConnectionType: 1}, 0},
		{&QueryCurrentConfiguration{}, 0},
		{&ChangeIncomingConnectionFlags{ConnectionFlags: 7}, 0},
		{&TypedCommand{Op: msg.FunctionDisableEchoNoiseCancellation, ControlID: 1, Addr: addr}, 0},
		{&TypedValue{Op: msg.FunctionSetSpeakerGain, ControlID: 1, Addr: addr, Value: 9}, 0},
		{&SendSelectCodec{ControlID: 1, Addr: addr, CodecID: 2}, 0},
		{&AddrCommand{Op: msg.FunctionHangUpCall, ControlID: 1, Addr: addr}, 0},
		{&AddrFlag{Op: msg.FunctionEnableCallWaitNotification, ControlID: 1, Addr: addr, Enable: true}, 0},
		{&AddrValue{Op: msg.FunctionDialPhoneNumberFromMemory, ControlID: 1, Addr: addr, Value: 4}, 0},
		{&AddrString{Op: msg.FunctionDialPhoneNumber, ControlID: 1, Addr: addr, Value: "5551234"}, 8},
		{&AddrString{Op: msg.FunctionSendArbitraryResponse, ControlID: 1, Addr: addr, Value: "+XYZ: 1"}, 8},
		{&SendCallHoldMultiSelection{ControlID: 1, Addr: addr, Handling: 2, Index: 1}, 0},
		{&TransmitDTMFCode{ControlID: 1, Addr: addr, Code: '#'}, 0},
		{&SendAvailableCodecList{ControlID: 1, Addr: addr, Codecs: []byte{1, 2}}, 2},
		{&UpdateIndicatorStatusByName{ControlID: 1, Addr: addr, Value: 1, Name: "call"}, 5},
		{&SendNetworkOperatorSelection{ControlID: 1, Addr: addr, Mode: 0, Operator: "ACME"}, 5},
		{&SendTerminatingResponse{ControlID: 1, Addr: addr, ResultType: 1, ResultValue: 0}, 0},
		{&EnableArbitraryCmdProcessing{ControlID: 1}, 0},
		{&SendAudioData{DataID: 2, Addr: addr, Data: make([]byte, 60)}, 60},
		{&QuerySCOConnectionHandle{EventsHandlerID: 1, Addr: addr, ConnectionType: 1}, 0},
		{&RegisterEvents{ConnectionType: 1, Control: true}, 0},
		{&UnregisterEvents{EventsHandlerID: 3}, 0},
		{&RegisterDataEvents{ConnectionType: 1}, 0},
		{&UnregisterDataEvents{DataEventsHandlerID: 3}, 0},
	}

	for _, tt := range tests {
		l, ok := msg.Lookup(tt.c.Function())
		require.True(t, ok, "0x%x", tt.c.Function())
		assert.Equal(t, l.Size(tt.count), msg.HeaderSize+tt.c.Len(), l.Name)

		b, err := Marshal(tt.c)
		require.NoError(t, err)
		assert.NoError(t, l.Check(msg.HeaderSize+len(b), b), l.Name)

		n, err := l.Count(b)
		require.NoError(t, err)
		assert.Equal(t, tt.count, n, l.Name)
	}
}

func TestMarshalShortBuffer(t *testing.T) {
	c := &ConnectRemoteDevice{Addr: addr}
	assert.Error(t, c.Marshal(make([]byte, c.Len()-1)))
}

func TestStringTerminator(t *testing.T) {
	b, err := Marshal(&AddrString{Op: msg.FunctionDialPhoneNumber, Value: "12"})
	require.NoError(t, err)
	// control id, address, count, digits, terminator
	assert.Equal(t, []byte{3, 0, 0, 0, '1', '2', 0}, b[10:])
}

func TestQueryConnectedDevicesRP(t *testing.T) {
	a2 := Addr{1, 2, 3, 4, 5, 6}
	b := msg.NewWriter(32).I32(0).U32(2).Addr(addr).Addr(a2).Bytes()

	var rp QueryConnectedDevicesRP
	require.NoError(t, rp.Unmarshal(b))
	assert.Equal(t, int32(0), rp.Status)
	assert.Equal(t, []Addr{addr, a2}, rp.Devices)

	// count larger than the payload
	bad := msg.NewWriter(32).I32(0).U32(3).Addr(addr).Bytes()
	assert.Error(t, rp.Unmarshal(bad))
}

func TestQueryCurrentConfigurationRP(t *testing.T) {
	desc := make([]byte, msg.IndicatorDescriptionMax)
	copy(desc, "signal")
	b := msg.NewWriter(64).
		I32(0).U32(1).U32(0x1f).U32(0x7).U32(1).
		U32(1).
		U32(0).U32(0).U32(5).U32(3).Raw(desc).
		Bytes()

	var rp QueryCurrentConfigurationRP
	require.NoError(t, rp.Unmarshal(b))
	assert.Equal(t, uint32(0x1f), rp.SupportedFeaturesMask)
	require.Len(t, rp.Indicators, 1)
	assert.Equal(t, "signal", rp.Indicators[0].Description)
	assert.Equal(t, uint32(3), rp.Indicators[0].Value3)

	l, ok := msg.LookupResponse(msg.FunctionQueryCurrentConfiguration)
	require.True(t, ok)
	assert.Equal(t, l.Size(1), msg.HeaderSize+len(b))
}

func TestRegisterEventsRP(t *testing.T) {
	var rp RegisterEventsRP
	require.NoError(t, rp.Unmarshal(msg.NewWriter(8).I32(0).U32(42).Bytes()))
	assert.Equal(t, uint32(42), rp.EventsHandlerID)

	var sco QuerySCOConnectionHandleRP
	require.NoError(t, sco.Unmarshal(msg.NewWriter(8).I32(0).U16(0x0101).Bytes()))
	assert.Equal(t, uint16(0x0101), sco.SCOHandle)
}
