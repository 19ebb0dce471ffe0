package msg

import (
	"encoding/binary"
	"fmt"
)

// AddrSize is the encoded size of a Bluetooth device address.
const AddrSize = 6

// Reader walks a payload front to back. The first out of range access sets
// Err and every later read returns the zero value.
type Reader struct {
	b   []byte
	off int
	err error
}

func NewReader(b []byte) *Reader {
	return &Reader{b: b}
}

func (r *Reader) Err() error {
	return r.err
}

// Offset is the number of bytes consumed so far.
func (r *Reader) Offset() int {
	return r.off
}

func (r *Reader) U8() uint8 {
	bb := r.next(1)
	if bb == nil {
		return 0
	}
	return bb[0]
}

func (r *Reader) U16() uint16 {
	bb := r.next(2)
	if bb == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(bb)
}

func (r *Reader) U32() uint32 {
	bb := r.next(4)
	if bb == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(bb)
}

func (r *Reader) I32() int32 {
	return int32(r.U32())
}

func (r *Reader) Bool() bool {
	return r.U32() != 0
}

// Addr reads a device address in wire order.
func (r *Reader) Addr() [AddrSize]byte {
	var a [AddrSize]byte
	copy(a[:], r.next(AddrSize))
	return a
}

// Bytes returns a copy of the next n bytes.
func (r *Reader) Bytes(n int) []byte {
	bb := r.next(n)
	if bb == nil {
		return nil
	}
	out := make([]byte, n)
	copy(out, bb)
	return out
}

// String reads a length-prefixed, NUL terminated string. The length includes
// the terminator.
func (r *Reader) String() string {
	n := r.U32()
	bb := r.next(int(n))
	if len(bb) == 0 {
		return ""
	}
	if bb[len(bb)-1] == 0 {
		bb = bb[:len(bb)-1]
	}
	return string(bb)
}

// Blob reads a length-prefixed byte array.
func (r *Reader) Blob() []byte {
	n := r.U32()
	return r.Bytes(int(n))
}

func (r *Reader) next(n int) []byte {
	if r.err != nil {
		return nil
	}
	bb, err := getBytes(r.b, r.off, n)
	if err != nil {
		r.err = fmt.Errorf("read %d bytes at offset %d of %d: %v", n, r.off, len(r.b), err)
		return nil
	}
	r.off += n
	return bb
}

func getBytes(bytes []byte, start int, count int) ([]byte, error) {
	if count < 0 {
		return nil, fmt.Errorf("negative count")
	}
	if count == 0 {
		return []byte{}, nil
	}
	if bytes == nil || start >= len(bytes) {
		return nil, fmt.Errorf("index error")
	}

	end := start + count
	//end is non-inclusive
	if end > len(bytes) {
		return nil, fmt.Errorf("index error")
	}

	return bytes[start:end], nil
}

// Writer builds a payload front to back.
type Writer struct {
	b []byte
}

func NewWriter(capacity int) *Writer {
	return &Writer{b: make([]byte, 0, capacity)}
}

func (w *Writer) U8(v uint8) *Writer {
	w.b = append(w.b, v)
	return w
}

func (w *Writer) U16(v uint16) *Writer {
	w.b = binary.LittleEndian.AppendUint16(w.b, v)
	return w
}

func (w *Writer) U32(v uint32) *Writer {
	w.b = binary.LittleEndian.AppendUint32(w.b, v)
	return w
}

func (w *Writer) I32(v int32) *Writer {
	return w.U32(uint32(v))
}

func (w *Writer) Bool(v bool) *Writer {
	if v {
		return w.U32(1)
	}
	return w.U32(0)
}

func (w *Writer) Addr(a [AddrSize]byte) *Writer {
	w.b = append(w.b, a[:]...)
	return w
}

func (w *Writer) Raw(b []byte) *Writer {
	w.b = append(w.b, b...)
	return w
}

// String writes s as a NUL terminated string preceded by its length, the
// terminator included.
func (w *Writer) String(s string) *Writer {
	w.U32(uint32(len(s) + 1))
	w.b = append(w.b, s...)
	w.b = append(w.b, 0)
	return w
}

// Blob writes b preceded by its length.
func (w *Writer) Blob(b []byte) *Writer {
	w.U32(uint32(len(b)))
	w.b = append(w.b, b...)
	return w
}

func (w *Writer) Len() int {
	return len(w.b)
}

func (w *Writer) Bytes() []byte {
	return w.b
}
