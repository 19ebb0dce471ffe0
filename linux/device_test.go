package linux

import (
	"io"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rigado/hfrm"
	"github.com/rigado/hfrm/linux/bus"
	"github.com/rigado/hfrm/msg"
)

// fakeServer answers every command with status 0 and a tracking id where
// one is expected.
type fakeServer struct {
	conn   net.Conn
	nextID uint32
	// answered functions, if set
	seen chan uint32
}

func (s *fakeServer) serve() {
	hdr := make([]byte, msg.HeaderSize)
	for {
		if _, err := io.ReadFull(s.conn, hdr); err != nil {
			return
		}
		h, err := msg.ParseHeader(hdr)
		if err != nil {
			return
		}
		if _, err := io.ReadFull(s.conn, make([]byte, h.Length)); err != nil {
			return
		}

		w := msg.NewWriter(8).I32(0)
		switch h.Function {
		case msg.FunctionRegisterEvents, msg.FunctionRegisterDataEvents:
			w.U32(atomic.AddUint32(&s.nextID, 1))
		}
		rsp := msg.New(h.Group, h.Function, w.Bytes())
		rsp.AddressID = h.AddressID
		rsp.MessageID = h.MessageID | msg.ResponseMask
		if _, err := s.conn.Write(rsp.Bytes()); err != nil {
			return
		}
		if s.seen != nil {
			select {
			case s.seen <- h.Function:
			default:
			}
		}
	}
}

func (s *fakeServer) event(fn uint32, w *msg.Writer) error {
	_, err := s.conn.Write(msg.New(msg.GroupHandsFreeManager, fn, w.Bytes()).Bytes())
	return err
}

func TestDeviceEndToEnd(t *testing.T) {
	c, sc := net.Pipe()
	srv := &fakeServer{conn: sc, nextID: 10}
	go srv.serve()

	d, err := NewDevice([]bus.Option{bus.OptTransport(c), bus.OptTimeout(time.Second)})
	require.NoError(t, err)
	defer sc.Close()

	require.NoError(t, d.Init())

	got := make(chan hfrm.Event, 1)
	_, err = d.RegisterEventCallback(hfrm.HandsFree, false, func(e hfrm.Event, _ interface{}) {
		got <- e
	}, nil)
	require.NoError(t, err)

	addr, err := hfrm.ParseBDAddr("00:11:22:33:44:55")
	require.NoError(t, err)
	w := msg.NewWriter(16).U32(uint32(hfrm.HandsFree)).Addr(addr.Wire())
	require.NoError(t, srv.event(msg.FunctionDeviceConnected, w))

	select {
	case e := <-got:
		assert.Equal(t, hfrm.EventType(msg.FunctionDeviceConnected), e.Type())
		assert.Equal(t, addr, e.Addr())
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}

	require.NoError(t, d.Disconnect(hfrm.HandsFree, addr))
	require.NoError(t, d.Close())
	assert.Equal(t, hfrm.ErrNotInitialized, d.Disconnect(hfrm.HandsFree, addr))
}

func TestDeviceNoTransport(t *testing.T) {
	d, err := NewDevice(nil)
	require.NoError(t, err)
	assert.Error(t, d.Init())
	assert.NoError(t, d.Close())
}

func TestDeviceServerLostUnblocksConnect(t *testing.T) {
	c, sc := net.Pipe()
	srv := &fakeServer{conn: sc, seen: make(chan uint32, 16)}
	go srv.serve()

	d, err := NewDevice([]bus.Option{bus.OptTransport(c), bus.OptTimeout(time.Second)})
	require.NoError(t, err)
	defer d.Close()
	require.NoError(t, d.Init())

	addr, err := hfrm.ParseBDAddr("00:11:22:33:44:55")
	require.NoError(t, err)

	type result struct {
		status hfrm.ConnectionStatus
		err    error
	}
	res := make(chan result, 1)
	go func() {
		st, err := d.ConnectBlocking(hfrm.ConnectParams{Role: hfrm.HandsFree, Addr: addr, Port: 1})
		res <- result{st, err}
	}()

	require.Eventually(t, func() bool {
		for {
			select {
			case fn := <-srv.seen:
				if fn == msg.FunctionConnectRemoteDevice {
					return true
				}
			default:
				return false
			}
		}
	}, time.Second, time.Millisecond)

	// the connect request holds the manager lock until its response is in,
	// so once this returns the connect is pending
	require.NoError(t, d.Disconnect(hfrm.HandsFree, addr))

	require.NoError(t, sc.Close())

	select {
	case r := <-res:
		require.NoError(t, r.err)
		assert.Equal(t, hfrm.StatusFailureDevicePowerOff, r.status)
	case <-time.After(2 * time.Second):
		t.Fatal("connect still blocked after the server went away")
	}
	assert.Equal(t, io.EOF, d.Bus.Error())
}
