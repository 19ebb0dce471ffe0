package msg

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderRoundTrip(t *testing.T) {
	h := Header{AddressID: 7, MessageID: 0x80000005, Group: GroupHandsFreeManager, Function: FunctionDeviceConnected, Length: 10}
	b := make([]byte, HeaderSize)
	require.NoError(t, h.Marshal(b))

	got, err := ParseHeader(b)
	require.NoError(t, err)
	assert.Equal(t, h, got)
	assert.True(t, got.IsResponse())
	assert.Equal(t, uint32(5), got.ID())

	_, err = ParseHeader(b[:HeaderSize-1])
	assert.Error(t, err)
}

func TestParseTruncated(t *testing.T) {
	m := New(GroupHandsFreeManager, FunctionRingIndicationInd, make([]byte, 6))
	b := m.Bytes()

	got, err := Parse(b)
	require.NoError(t, err)
	assert.Equal(t, uint32(6), got.Length)
	assert.Len(t, got.Payload, 6)

	_, err = Parse(b[:len(b)-1])
	assert.Error(t, err)
}

// encodeVariable builds a payload for l holding count tail elements.
func encodeVariable(l Layout, count uint32) []byte {
	p := make([]byte, l.Fixed+int(count)*l.Elem)
	binary.LittleEndian.PutUint32(p[l.CountAt:], count)
	for i := l.Fixed; i < len(p); i++ {
		p[i] = byte(i)
	}
	return p
}

func TestVariableSizeRoundTrip(t *testing.T) {
	tables := []map[uint32]Layout{layouts, responseLayouts}
	for _, tbl := range tables {
		for fn, l := range tbl {
			if !l.Variable() {
				continue
			}
			for _, count := range []uint32{0, 1, uint32(l.Max)} {
				b := New(GroupHandsFreeManager, fn, encodeVariable(l, count)).Bytes()
				assert.Equal(t, l.Size(count), len(b), "%s count %d", l.Name, count)

				m, err := Parse(b)
				require.NoError(t, err)
				n, err := l.Count(m.Payload)
				require.NoError(t, err)
				assert.Equal(t, count, n, l.Name)
				assert.Equal(t, len(b), l.Size(n), l.Name)
				assert.NoError(t, l.Check(m.Size(), m.Payload), l.Name)
			}
		}
	}
}

func TestCheck(t *testing.T) {
	l, ok := Lookup(FunctionDialPhoneNumberInd)
	require.True(t, ok)

	p := encodeVariable(l, 5)
	assert.NoError(t, l.Check(HeaderSize+len(p), p))

	// declared count larger than the tail
	short := p[:len(p)-1]
	assert.Error(t, l.Check(HeaderSize+len(short), short))

	// shorter than the fixed part
	assert.Error(t, l.Check(HeaderSize+l.Fixed-1, p[:l.Fixed-1]))

	f, ok := Lookup(FunctionDeviceConnected)
	require.True(t, ok)
	assert.False(t, f.Variable())
	assert.Equal(t, HeaderSize+10, f.MinSize())
	assert.Error(t, f.Check(HeaderSize+9, make([]byte, 9)))
}

func TestLookupResponse(t *testing.T) {
	l, ok := LookupResponse(FunctionDialPhoneNumber)
	require.True(t, ok)
	assert.Equal(t, statusLayout, l)

	l, ok = LookupResponse(FunctionRegisterEvents)
	require.True(t, ok)
	assert.Equal(t, 8, l.Fixed)

	_, ok = LookupResponse(FunctionDeviceConnected)
	assert.False(t, ok)

	for _, fn := range Functions() {
		assert.True(t, IsCommand(fn) || IsEvent(fn) || fn < FunctionMinimum, "0x%x", fn)
	}
}

func TestReaderWriter(t *testing.T) {
	a := [AddrSize]byte{1, 2, 3, 4, 5, 6}
	w := NewWriter(32).U32(9).Addr(a).String("+1555").Bool(true).U8(7).U16(0x0102)

	r := NewReader(w.Bytes())
	assert.Equal(t, uint32(9), r.U32())
	assert.Equal(t, a, r.Addr())
	assert.Equal(t, "+1555", r.String())
	assert.True(t, r.Bool())
	assert.Equal(t, uint8(7), r.U8())
	assert.Equal(t, uint16(0x0102), r.U16())
	assert.NoError(t, r.Err())
	assert.Equal(t, w.Len(), r.Offset())

	// reads past the end stick
	assert.Zero(t, r.U32())
	assert.Error(t, r.Err())
	assert.Zero(t, r.U8())
}
