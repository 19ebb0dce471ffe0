// Package cmd holds the request and response parameters of every command the
// Hands-Free Manager client sends to the server.
package cmd

import (
	"fmt"

	"github.com/rigado/hfrm/msg"
)

// Addr is a device address in wire order (least significant byte first).
type Addr = [msg.AddrSize]byte

type encoder interface {
	encode(w *msg.Writer)
}

func length(e encoder) int {
	w := msg.NewWriter(64)
	e.encode(w)
	return w.Len()
}

func marshal(e encoder, b []byte) error {
	w := msg.NewWriter(len(b))
	e.encode(w)
	if len(b) < w.Len() {
		return fmt.Errorf("buffer too small: %d < %d", len(b), w.Len())
	}
	copy(b, w.Bytes())
	return nil
}

// Marshal encodes c into a freshly allocated payload.
func Marshal(c interface {
	Len() int
	Marshal([]byte) error
}) ([]byte, error) {
	b := make([]byte, c.Len())
	if err := c.Marshal(b); err != nil {
		return nil, err
	}
	return b, nil
}
