package linux

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/rigado/hfrm"
	"github.com/rigado/hfrm/cmd"
	"github.com/rigado/hfrm/msg"
)

// Transport is the part of the bus the stack needs.
type Transport interface {
	Init() error
	SendMessageResponse(m *msg.Message) (*msg.Message, error)
}

// Remote is a hfrm.Stack that forwards every command to the server over the
// message bus and checks the response it gets back.
type Remote struct {
	t      Transport
	logger hfrm.Logger

	mu     sync.Mutex
	inited bool
}

// NewRemote returns a stack sending over t.
func NewRemote(t Transport, l hfrm.Logger) *Remote {
	if l == nil {
		l = hfrm.GetLogger()
	}
	return &Remote{t: t, logger: l.ChildLogger(map[string]interface{}{"component": "stack"})}
}

// Initialize opens the bus.
func (r *Remote) Initialize() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.t.Init(); err != nil {
		return err
	}
	r.inited = true
	return nil
}

// Cleanup stops forwarding commands. The bus stays open; it belongs to
// whoever created it.
func (r *Remote) Cleanup() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inited = false
	return nil
}

func (r *Remote) ready() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inited
}

// Send performs one round trip. The response must echo the request's group
// and function and fit the function's response layout; its leading status
// is mapped with hfrm.ErrorFromStatus before rp sees the payload.
func (r *Remote) Send(c hfrm.Command, rp hfrm.CommandRP) error {
	if !r.ready() {
		return hfrm.ErrNotInitialized
	}

	fn := c.Function()
	p, err := cmd.Marshal(c)
	if err != nil {
		return errors.Wrapf(err, "can't marshal function 0x%x", fn)
	}

	rsp, err := r.t.SendMessageResponse(msg.New(msg.GroupHandsFreeManager, fn, p))
	if err != nil {
		return errors.Wrapf(err, "function 0x%x", fn)
	}

	if rsp.Group != msg.GroupHandsFreeManager || rsp.Function != fn {
		r.logger.Warnf("response mismatch for function 0x%x: %v", fn, rsp.Header)
		return hfrm.ErrResponseInvalid
	}
	l, ok := msg.LookupResponse(fn)
	if !ok {
		r.logger.Warnf("no response layout for function 0x%x", fn)
		return hfrm.ErrResponseInvalid
	}
	if err := l.Check(rsp.Size(), rsp.Payload); err != nil {
		r.logger.Warnf("bad response: %v", err)
		return hfrm.ErrResponseInvalid
	}

	status := msg.NewReader(rsp.Payload).I32()
	if err := hfrm.ErrorFromStatus(status); err != nil {
		return err
	}

	if rp == nil {
		return nil
	}
	if err := rp.Unmarshal(rsp.Payload); err != nil {
		r.logger.Warnf("can't unmarshal response to function 0x%x: %v", fn, err)
		return hfrm.ErrResponseInvalid
	}
	return nil
}
