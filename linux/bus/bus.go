// Package bus is the client end of the manager message bus: request and
// response correlation, per-group delivery of unsolicited messages and a
// mailbox goroutine for deferred work.
package bus

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cornelk/hashmap"
	"github.com/pkg/errors"

	"github.com/rigado/hfrm"
	"github.com/rigado/hfrm/linux/bus/stream"
	"github.com/rigado/hfrm/msg"
)

const (
	// DefaultTimeout bounds a request and response round trip.
	DefaultTimeout = 5 * time.Second

	rxChanSize     = 16
	readBufferSize = 4096
)

// ErrClosed is returned once the bus is closed.
var ErrClosed = errors.New("bus closed")

// GroupHandler receives the unsolicited messages of one group. It runs on
// the bus process goroutine and must not block.
type GroupHandler func(m *msg.Message)

// Bus ...
type Bus struct {
	transport transport
	rwc       io.ReadWriteCloser
	wmu       sync.Mutex

	logger  hfrm.Logger
	timeout time.Duration

	// address id of the server, stamped on every request
	serverID  uint32
	messageID uint32

	pending  *hashmap.Map[uint32, chan *msg.Message]
	handlers *hashmap.Map[uint32, GroupHandler]
	mailbox  *mailbox

	asm    *stream.Assembler
	rxChan chan []byte

	errorHandler func(error)
	muErr        sync.Mutex
	err          error

	muClose sync.Mutex
	done    chan bool
	started bool
}

// New returns an unopened bus.
func New(opts ...Option) (*Bus, error) {
	b := &Bus{
		logger:   hfrm.GetLogger().ChildLogger(map[string]interface{}{"component": "bus"}),
		timeout:  DefaultTimeout,
		pending:  hashmap.New[uint32, chan *msg.Message](),
		handlers: hashmap.New[uint32, GroupHandler](),
		asm:      stream.NewAssembler(stream.DefaultBufferSize),
		rxChan:   make(chan []byte, rxChanSize),
		done:     make(chan bool),
	}
	b.mailbox = newMailbox(mailboxSize, b.logger)
	if err := b.Option(opts...); err != nil {
		return nil, errors.Wrap(err, "can't set options")
	}
	return b, nil
}

// Option sets the options specified.
func (b *Bus) Option(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return err
		}
	}
	return nil
}

// Init opens the transport and starts the read, process and mailbox
// goroutines.
func (b *Bus) Init() error {
	b.muClose.Lock()
	defer b.muClose.Unlock()

	if !b.isOpen() {
		return ErrClosed
	}
	if b.started {
		return nil
	}

	rwc, err := getTransport(b.transport)
	if err != nil {
		return errors.Wrap(err, "can't open transport")
	}
	b.rwc = rwc
	b.started = true

	go b.readLoop()
	go b.processLoop()
	go b.mailbox.loop(b.done)
	return nil
}

// Close stops the bus. Requests in flight fail with ErrClosed.
func (b *Bus) Close() error {
	b.muClose.Lock()
	defer b.muClose.Unlock()

	select {
	case <-b.done:
		//already closed, nothing to do
		return nil
	default:
		close(b.done)
	}

	if b.rwc != nil {
		return b.rwc.Close()
	}
	return nil
}

// Done is closed once the bus is closed.
func (b *Bus) Done() <-chan bool {
	return b.done
}

// Error returns the error that stopped the bus, if any.
func (b *Bus) Error() error {
	b.muErr.Lock()
	defer b.muErr.Unlock()
	return b.err
}

func (b *Bus) setError(err error) {
	b.muErr.Lock()
	defer b.muErr.Unlock()
	if b.err == nil {
		b.err = err
	}
}

func (b *Bus) isOpen() bool {
	select {
	case <-b.done:
		return false
	default:
		return true
	}
}

func (b *Bus) dispatchError(err error) {
	if err == nil {
		return
	}
	b.logger.Error(err)
	if b.errorHandler != nil {
		b.errorHandler(err)
	}
}

// RegisterGroupHandler installs the handler of a message group. Only one
// handler per group may be installed.
func (b *Bus) RegisterGroupHandler(group uint32, h func(m *msg.Message)) error {
	if h == nil {
		return errors.New("nil group handler")
	}
	if !b.handlers.Insert(group, h) {
		return errors.Errorf("group 0x%x already has a handler", group)
	}
	return nil
}

// UnregisterGroupHandler removes the handler of group. Messages of the group
// are dropped from then on.
func (b *Bus) UnregisterGroupHandler(group uint32) {
	b.handlers.Del(group)
}

// QueueCallback runs f on the mailbox goroutine. It fails instead of
// blocking when the mailbox is full.
func (b *Bus) QueueCallback(f func()) error {
	if !b.isOpen() {
		return ErrClosed
	}
	return b.mailbox.put(f)
}

func (b *Bus) nextMessageID() uint32 {
	for {
		id := atomic.AddUint32(&b.messageID, 1) & msg.MessageIDMask
		if id != 0 {
			return id
		}
	}
}

// SendMessageResponse sends a request and waits for the response carrying
// the same message id.
func (b *Bus) SendMessageResponse(m *msg.Message) (*msg.Message, error) {
	if !b.isOpen() {
		return nil, ErrClosed
	}
	if err := b.Error(); err != nil {
		return nil, err
	}

	id := b.nextMessageID()
	m.AddressID = b.serverID
	m.MessageID = id

	ch := make(chan *msg.Message, 1)
	b.pending.Set(id, ch)
	defer b.pending.Del(id)

	if err := b.write(m.Bytes()); err != nil {
		return nil, err
	}

	select {
	case rsp := <-ch:
		return rsp, nil
	case <-b.done:
		if err := b.Error(); err != nil {
			return nil, err
		}
		return nil, ErrClosed
	case <-time.After(b.timeout):
		err := fmt.Errorf("no response to function 0x%x (id %d)", m.Function, id)
		b.dispatchError(err)
		return nil, err
	}
}

// SendMessage sends a message that expects no response.
func (b *Bus) SendMessage(m *msg.Message) error {
	if !b.isOpen() {
		return ErrClosed
	}
	m.AddressID = b.serverID
	m.MessageID = b.nextMessageID()
	return b.write(m.Bytes())
}

func (b *Bus) write(p []byte) error {
	b.wmu.Lock()
	defer b.wmu.Unlock()

	if b.rwc == nil {
		return errors.New("bus not initialized")
	}
	n, err := b.rwc.Write(p)
	switch {
	case err != nil:
		err = errors.Wrap(err, "can't write message")
	case n != len(p):
		err = fmt.Errorf("short write %d of %d", n, len(p))
	default:
		return nil
	}
	b.fail(err)
	return err
}

// fail records err and closes the bus.
func (b *Bus) fail(err error) {
	b.setError(err)
	b.dispatchError(err)
	b.Close()
}

func (b *Bus) readLoop() {
	defer close(b.rxChan)

	buf := make([]byte, readBufferSize)
	for {
		n, err := b.rwc.Read(buf)

		switch {
		case n == 0 && err == nil:
			// read timeout
			if !b.isOpen() {
				return
			}
			continue

		//callers depend on detecting io.EOF, don't wrap it.
		case err == io.EOF:
			if b.isOpen() {
				b.fail(err)
			}
			return

		case err != nil:
			if b.isOpen() {
				b.fail(errors.Wrap(err, "read error"))
			}
			return
		}

		frames, err := b.asm.Assemble(buf[:n])
		for _, f := range frames {
			select {
			case b.rxChan <- f:
			case <-b.done:
				return
			}
		}
		if err != nil {
			b.fail(errors.Wrap(err, "framing error"))
			return
		}
	}
}

func (b *Bus) processLoop() {
	// waiters see done and give up
	defer b.Close()

	for {
		select {
		case <-b.done:
			return
		case p, ok := <-b.rxChan:
			if !ok {
				return
			}
			b.handleFrame(p)
		}
	}
}

func (b *Bus) handleFrame(p []byte) {
	m, err := msg.Parse(p)
	if err != nil {
		b.logger.Warnf("dropping frame: %v", err)
		return
	}

	if m.IsResponse() {
		ch, ok := b.pending.Get(m.ID())
		if !ok {
			b.logger.Warnf("can't find the request for response %v", m.Header)
			return
		}
		select {
		case ch <- m:
		default:
			b.logger.Warnf("duplicate response %v", m.Header)
		}
		return
	}

	h, ok := b.handlers.Get(m.Group)
	if !ok {
		b.logger.Debugf("no handler for %v", m.Header)
		return
	}
	h(m)
}
