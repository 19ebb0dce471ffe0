package msg

import (
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"
)

const (
	// HeaderSize is the encoded size of Header.
	HeaderSize = 20

	MessageIDMask = 0x7FFFFFFF
	ResponseMask  = 0x80000000
)

// Header is the fixed prefix of every message exchanged with the server.
// Length counts payload bytes only.
type Header struct {
	AddressID uint32
	MessageID uint32
	Group     uint32
	Function  uint32
	Length    uint32
}

// IsResponse reports whether the response bit of the message id is set.
func (h Header) IsResponse() bool {
	return h.MessageID&ResponseMask != 0
}

// ID returns the message id without the response bit.
func (h Header) ID() uint32 {
	return h.MessageID & MessageIDMask
}

func (h Header) String() string {
	return fmt.Sprintf("addr %d id 0x%08x group 0x%08x fn 0x%08x len %d", h.AddressID, h.MessageID, h.Group, h.Function, h.Length)
}

// Marshal encodes the header into the first HeaderSize bytes of b.
func (h Header) Marshal(b []byte) error {
	if len(b) < HeaderSize {
		return fmt.Errorf("header buffer too small (%d)", len(b))
	}
	binary.LittleEndian.PutUint32(b[0:], h.AddressID)
	binary.LittleEndian.PutUint32(b[4:], h.MessageID)
	binary.LittleEndian.PutUint32(b[8:], h.Group)
	binary.LittleEndian.PutUint32(b[12:], h.Function)
	binary.LittleEndian.PutUint32(b[16:], h.Length)
	return nil
}

// ParseHeader decodes a header from the front of b.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, fmt.Errorf("short header: %d bytes", len(b))
	}
	return Header{
		AddressID: binary.LittleEndian.Uint32(b[0:]),
		MessageID: binary.LittleEndian.Uint32(b[4:]),
		Group:     binary.LittleEndian.Uint32(b[8:]),
		Function:  binary.LittleEndian.Uint32(b[12:]),
		Length:    binary.LittleEndian.Uint32(b[16:]),
	}, nil
}

// Message is a complete frame: header plus function specific payload.
type Message struct {
	Header
	Payload []byte
}

// New builds a message for group/function with the given payload. Ids are
// assigned by the bus when the message is sent.
func New(group, function uint32, payload []byte) *Message {
	return &Message{
		Header:  Header{Group: group, Function: function, Length: uint32(len(payload))},
		Payload: payload,
	}
}

// Size is the total frame size, header included.
func (m *Message) Size() int {
	return HeaderSize + len(m.Payload)
}

// Bytes encodes the full frame.
func (m *Message) Bytes() []byte {
	b := make([]byte, m.Size())
	m.Length = uint32(len(m.Payload))
	m.Header.Marshal(b)
	copy(b[HeaderSize:], m.Payload)
	return b
}

// Parse decodes one frame. Trailing bytes beyond the declared length are
// ignored; a frame shorter than its declared length is an error.
func Parse(b []byte) (*Message, error) {
	h, err := ParseHeader(b)
	if err != nil {
		return nil, err
	}

	end := HeaderSize + int(h.Length)
	if end > len(b) || end < HeaderSize {
		return nil, errors.Errorf("truncated frame: have %d want %d (%v)", len(b), end, h)
	}

	p := make([]byte, h.Length)
	copy(p, b[HeaderSize:end])
	return &Message{Header: h, Payload: p}, nil
}
