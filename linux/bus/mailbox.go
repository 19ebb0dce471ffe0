package bus

import (
	"fmt"

	"github.com/hedzr/go-ringbuf/v2/mpmc"
	"github.com/pkg/errors"

	"github.com/rigado/hfrm"
)

const mailboxSize = 1024

// mailbox runs queued callbacks one at a time, in order, on its own
// goroutine.
type mailbox struct {
	q      mpmc.RingBuffer[func()]
	wake   chan struct{}
	logger hfrm.Logger
}

func newMailbox(size uint32, l hfrm.Logger) *mailbox {
	return &mailbox{
		q:      mpmc.New[func()](size),
		wake:   make(chan struct{}, 1),
		logger: l,
	}
}

func (mb *mailbox) put(f func()) error {
	if f == nil {
		return errors.New("nil callback")
	}
	if err := mb.q.Enqueue(f); err != nil {
		return errors.Wrap(err, "mailbox full")
	}
	select {
	case mb.wake <- struct{}{}:
	default:
	}
	return nil
}

func (mb *mailbox) loop(done <-chan bool) {
	for {
		select {
		case <-done:
			return
		case <-mb.wake:
		}

		for !mb.q.IsEmpty() {
			f, err := mb.q.Dequeue()
			if err != nil {
				break
			}
			mb.run(f)
		}
	}
}

func (mb *mailbox) run(f func()) {
	defer func() {
		if r := recover(); r != nil {
			mb.logger.Error(fmt.Sprintf("mailbox callback panic: %v", r))
		}
	}()
	f()
}
