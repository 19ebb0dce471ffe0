package hfrm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rigado/hfrm/cmd"
	"github.com/rigado/hfrm/msg"
)

type connectResult struct {
	status ConnectionStatus
	err    error
}

func connectAsync(m *Manager, p ConnectParams) <-chan connectResult {
	res := make(chan connectResult, 1)
	go func() {
		s, err := m.ConnectBlocking(p)
		res <- connectResult{s, err}
	}()
	return res
}

func waitSent(t *testing.T, s *fakeStack, fn uint32, n int) {
	t.Helper()
	require.Eventually(t, func() bool {
		return len(s.sentFn(fn)) >= n
	}, time.Second, time.Millisecond)
}

func waitResult(t *testing.T, res <-chan connectResult) connectResult {
	t.Helper()
	select {
	case r := <-res:
		return r
	case <-time.After(time.Second):
		t.Fatal("connect did not return")
	}
	return connectResult{}
}

func pendingConnects(m *Manager, role Role) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reg.list(role, categoryConnect).Len()
}

func TestConnectValidation(t *testing.T) {
	m, s, _ := newTestManager(t)

	for name, p := range map[string]ConnectParams{
		"role":  {Role: Role(3), Addr: testAddr, Port: 1},
		"addr":  {Role: HandsFree, Port: 1},
		"port":  {Role: HandsFree, Addr: testAddr},
		"flags": {Role: HandsFree, Addr: testAddr, Port: 1, Flags: 0x10},
	} {
		assert.Equal(t, ErrInvalidParameter, m.Connect(p), name)
	}
	assert.Empty(t, s.sentFn(msg.FunctionConnectRemoteDevice))
}

func TestConnectBlocking(t *testing.T) {
	m, s, b := newTestManager(t)

	res := connectAsync(m, ConnectParams{
		Role:  AudioGateway,
		Addr:  testAddr,
		Port:  3,
		Flags: ConnectRequireAuthentication,
	})
	waitSent(t, s, msg.FunctionConnectRemoteDevice, 1)

	c := s.sentFn(msg.FunctionConnectRemoteDevice)[0].(*cmd.ConnectRemoteDevice)
	assert.Equal(t, uint32(AudioGateway), c.ConnectionType)
	assert.Equal(t, uint32(3), c.RemoteServerPort)
	assert.Equal(t, testAddr.Wire(), c.Addr)
	assert.Equal(t, ConnectRequireAuthentication, c.ConnectionFlags)

	// a status for another device or role leaves it pending
	b.deliver(statusFrame(AudioGateway, otherAddr, StatusSuccess))
	b.deliver(statusFrame(HandsFree, testAddr, StatusSuccess))
	assert.Equal(t, 1, pendingConnects(m, AudioGateway))

	b.deliver(statusFrame(AudioGateway, testAddr, StatusFailureRefused))
	r := waitResult(t, res)
	assert.NoError(t, r.err)
	assert.Equal(t, StatusFailureRefused, r.status)
	assert.Zero(t, pendingConnects(m, AudioGateway))
}

func TestConnectResolvedBeforeWait(t *testing.T) {
	m, _, b := newTestManager(t)

	// resolve the entry before anyone waits on it
	en, err := m.connect(ConnectParams{Role: HandsFree, Addr: testAddr, Port: 1}, true)
	require.NoError(t, err)
	b.deliver(statusFrame(HandsFree, testAddr, StatusSuccess))

	select {
	case s := <-en.done:
		assert.Equal(t, StatusSuccess, s)
	default:
		t.Fatal("status lost")
	}
}

func TestConnectStatusGoesToRequester(t *testing.T) {
	m, _, b := newTestManager(t)
	rec := &recorder{}
	_, err := m.RegisterEventCallback(HandsFree, false, rec.cb("g"), nil)
	require.NoError(t, err)

	done := make(chan ConnectionStatus, 2)
	err = m.Connect(ConnectParams{
		Role: HandsFree,
		Addr: testAddr,
		Port: 1,
		Callback: func(role Role, addr BDAddr, status ConnectionStatus, param interface{}) {
			assert.Equal(t, HandsFree, role)
			assert.Equal(t, testAddr, addr)
			assert.Equal(t, "p", param)
			done <- status
		},
		Param: "p",
	})
	require.NoError(t, err)

	b.deliver(statusFrame(HandsFree, testAddr, StatusFailureTimeout))
	select {
	case s := <-done:
		assert.Equal(t, StatusFailureTimeout, s)
	default:
		t.Fatal("callback not run")
	}
	assert.Empty(t, done)
	assert.Empty(t, rec.names())
	assert.Zero(t, pendingConnects(m, HandsFree))

	// nothing pending: the status reaches the listeners
	b.deliver(statusFrame(HandsFree, testAddr, StatusSuccess))
	assert.Equal(t, []string{"g"}, rec.names())
	assert.Empty(t, done)
}

func TestBlockingConnectStatusNotFannedOut(t *testing.T) {
	m, s, b := newTestManager(t)
	rec := &recorder{}
	_, err := m.RegisterEventCallback(HandsFree, false, rec.cb("g"), nil)
	require.NoError(t, err)

	res := connectAsync(m, ConnectParams{Role: HandsFree, Addr: testAddr, Port: 1})
	waitSent(t, s, msg.FunctionConnectRemoteDevice, 1)

	b.deliver(statusFrame(HandsFree, testAddr, StatusSuccess))
	r := waitResult(t, res)
	require.NoError(t, r.err)
	assert.Equal(t, StatusSuccess, r.status)
	assert.Empty(t, rec.names())
}

func TestConnectSendFailure(t *testing.T) {
	m, s, _ := newTestManager(t)
	s.errs[msg.FunctionConnectRemoteDevice] = &StackError{Code: -9}

	_, err := m.ConnectBlocking(ConnectParams{Role: HandsFree, Addr: testAddr, Port: 1})
	assert.Equal(t, int32(-9), Code(err))
	assert.Zero(t, pendingConnects(m, HandsFree))
}

func TestConnectPoweredOff(t *testing.T) {
	m, s, _ := newTestManager(t, OptPowered(false))

	for _, role := range []Role{HandsFree, AudioGateway} {
		_, err := m.ConnectBlocking(ConnectParams{Role: role, Addr: testAddr, Port: 1})
		assert.Equal(t, ErrDevicePoweredDown, err, role.String())
		assert.Zero(t, pendingConnects(m, role), role.String())
	}
	assert.Empty(t, s.sentFn(msg.FunctionConnectRemoteDevice))

	m.PowerChanged(true)
	assert.NoError(t, m.Connect(ConnectParams{Role: HandsFree, Addr: testAddr, Port: 1}))
}

func TestPowerDownUnblocksAll(t *testing.T) {
	m, s, _ := newTestManager(t)

	hf := connectAsync(m, ConnectParams{Role: HandsFree, Addr: testAddr, Port: 1})
	ag := connectAsync(m, ConnectParams{Role: AudioGateway, Addr: otherAddr, Port: 2})
	waitSent(t, s, msg.FunctionConnectRemoteDevice, 2)

	// asynchronous attempts are left alone
	require.NoError(t, m.Connect(ConnectParams{Role: HandsFree, Addr: otherAddr, Port: 1}))

	m.PowerChanged(false)

	for _, res := range []<-chan connectResult{hf, ag} {
		r := waitResult(t, res)
		assert.NoError(t, r.err)
		assert.Equal(t, StatusFailureDevicePowerOff, r.status)
	}
	assert.Equal(t, 1, pendingConnects(m, HandsFree))
	assert.Zero(t, pendingConnects(m, AudioGateway))
	assert.False(t, m.Powered())
}

func TestServerUnregisteredCancels(t *testing.T) {
	m, s, b := newTestManager(t)

	res := connectAsync(m, ConnectParams{Role: HandsFree, Addr: testAddr, Port: 1})
	waitSent(t, s, msg.FunctionConnectRemoteDevice, 1)

	// still registered: nothing happens
	b.deliver(frame(msg.FunctionClientRegistration, msg.NewWriter(8).U32(1).Bool(true)))
	assert.Equal(t, 1, pendingConnects(m, HandsFree))

	b.deliver(frame(msg.FunctionClientRegistration, msg.NewWriter(8).U32(1).Bool(false)))
	r := waitResult(t, res)
	assert.Equal(t, StatusFailureDevicePowerOff, r.status)
}

func TestConnectContextCancel(t *testing.T) {
	m, s, _ := newTestManager(t)

	ctx, cancel := context.WithCancel(context.Background())
	res := make(chan connectResult, 1)
	go func() {
		st, err := m.ConnectContext(ctx, ConnectParams{Role: HandsFree, Addr: testAddr, Port: 1})
		res <- connectResult{st, err}
	}()
	waitSent(t, s, msg.FunctionConnectRemoteDevice, 1)

	cancel()
	r := waitResult(t, res)
	assert.Equal(t, context.Canceled, r.err)
	assert.Zero(t, pendingConnects(m, HandsFree))
}

func TestConnectionForwarders(t *testing.T) {
	m, s, _ := newTestManager(t)

	require.NoError(t, m.Disconnect(HandsFree, testAddr))
	d := s.last().(*cmd.DisconnectDevice)
	assert.Equal(t, testAddr.Wire(), d.Addr)

	require.NoError(t, m.ConnectionRequestResponse(AudioGateway, testAddr, true))
	rr := s.last().(*cmd.ConnectionRequestResponse)
	assert.True(t, rr.Accept)
	assert.Equal(t, uint32(AudioGateway), rr.ConnectionType)

	assert.Equal(t, ErrInvalidParameter, m.ChangeIncomingConnectionFlags(HandsFree, 0x80))
	require.NoError(t, m.ChangeIncomingConnectionFlags(HandsFree, IncomingRequireEncryption))

	s.devices = []cmd.Addr{testAddr.Wire(), otherAddr.Wire()}
	devs, err := m.QueryConnectedDevices(HandsFree)
	require.NoError(t, err)
	assert.Equal(t, []BDAddr{testAddr, otherAddr}, devs)

	s.errs[msg.FunctionDisconnectDevice] = ErrInvalidParameter
	assert.Equal(t, ErrInvalidParameter, m.Disconnect(HandsFree, testAddr))
	assert.Equal(t, ErrInvalidParameter, m.Disconnect(HandsFree, BDAddr{}))

	cfg, err := m.QueryCurrentConfiguration(AudioGateway)
	require.NoError(t, err)
	assert.Empty(t, cfg.Indicators)
}

func TestServerGoneUnblocksConnect(t *testing.T) {
	m, s, _ := newTestManager(t)

	res := connectAsync(m, ConnectParams{Role: AudioGateway, Addr: testAddr, Port: 1})
	waitSent(t, s, msg.FunctionConnectRemoteDevice, 1)

	m.ServerGone()
	r := waitResult(t, res)
	assert.NoError(t, r.err)
	assert.Equal(t, StatusFailureDevicePowerOff, r.status)
	assert.Zero(t, pendingConnects(m, AudioGateway))

	// no-op once shut down
	require.NoError(t, m.Shutdown())
	m.ServerGone()
}
