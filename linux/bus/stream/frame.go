package stream

import (
	"github.com/pkg/errors"
	"github.com/smallnest/ringbuffer"

	"github.com/rigado/hfrm/msg"
)

// DefaultBufferSize holds a few maximum sized frames.
const DefaultBufferSize = 64 * 1024

// Assembler cuts a byte stream into frames using the length field of the
// message header.
type Assembler struct {
	rb  *ringbuffer.RingBuffer
	max int

	hdr  [msg.HeaderSize]byte
	h    msg.Header
	have bool
}

// NewAssembler returns an assembler buffering up to size bytes. Frames with
// a payload longer than size are rejected.
func NewAssembler(size int) *Assembler {
	if size < msg.HeaderSize {
		size = DefaultBufferSize
	}
	return &Assembler{
		rb:  ringbuffer.New(size),
		max: size,
	}
}

// Assemble consumes b and returns the frames it completed, header included.
// On error the partial state is dropped; the stream can't be resynchronized.
func (a *Assembler) Assemble(b []byte) ([][]byte, error) {
	var out [][]byte
	for len(b) > 0 {
		n, err := a.rb.Write(b)
		if err != nil && !errors.Is(err, ringbuffer.ErrIsFull) && !errors.Is(err, ringbuffer.ErrTooMuchDataToWrite) {
			a.Reset()
			return out, errors.Wrap(err, "can't buffer stream")
		}
		b = b[n:]

		ff, err := a.drain()
		out = append(out, ff...)
		if err != nil {
			a.Reset()
			return out, err
		}
		if n == 0 && len(ff) == 0 {
			a.Reset()
			return out, errors.New("stream buffer overrun")
		}
	}
	return out, nil
}

func (a *Assembler) drain() ([][]byte, error) {
	var out [][]byte
	for {
		if !a.have {
			if a.rb.Length() < msg.HeaderSize {
				return out, nil
			}
			if n, err := a.rb.Read(a.hdr[:]); err != nil || n != msg.HeaderSize {
				return out, errors.Errorf("short header read (%d): %v", n, err)
			}
			h, err := msg.ParseHeader(a.hdr[:])
			if err != nil {
				return out, err
			}
			if int(h.Length) > a.max {
				return out, errors.Errorf("frame too long: %v", h)
			}
			a.h = h
			a.have = true
		}

		if a.rb.Length() < int(a.h.Length) {
			return out, nil
		}
		f := make([]byte, msg.HeaderSize+int(a.h.Length))
		copy(f, a.hdr[:])
		if a.h.Length > 0 {
			if n, err := a.rb.Read(f[msg.HeaderSize:]); err != nil || n != int(a.h.Length) {
				return out, errors.Errorf("short payload read (%d): %v", n, err)
			}
		}
		out = append(out, f)
		a.have = false
	}
}

// Buffered is the number of bytes of incomplete frames held.
func (a *Assembler) Buffered() int {
	n := a.rb.Length()
	if a.have {
		n += msg.HeaderSize
	}
	return n
}

// Reset drops any partial frame.
func (a *Assembler) Reset() {
	a.rb.Reset()
	a.have = false
}
