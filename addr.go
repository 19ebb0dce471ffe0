package hfrm

import (
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"
	"github.com/rigado/hfrm/msg"
	"github.com/rigado/hfrm/sliceops"
)

// BDAddr is a Bluetooth device address, most significant byte first as it
// is usually printed. The wire carries it reversed.
type BDAddr [6]byte

// ParseBDAddr parses "AA:BB:CC:DD:EE:FF" (separators optional).
func ParseBDAddr(s string) (BDAddr, error) {
	var a BDAddr
	hexStr := strings.Replace(strings.Replace(s, ":", "", -1), "-", "", -1)

	out, err := hex.DecodeString(hexStr)
	if err != nil {
		return a, errors.Wrapf(err, "bad address %q", s)
	}
	if len(out) != len(a) {
		return a, errors.Errorf("bad address %q: want %d bytes, have %d", s, len(a), len(out))
	}
	copy(a[:], out)
	return a, nil
}

func (a BDAddr) String() string {
	s := make([]string, len(a))
	for i, b := range a {
		s[i] = strings.ToUpper(hex.EncodeToString([]byte{b}))
	}
	return strings.Join(s, ":")
}

func (a BDAddr) IsZero() bool {
	return a == BDAddr{}
}

// Wire returns the address in wire order.
func (a BDAddr) Wire() [msg.AddrSize]byte {
	var w [msg.AddrSize]byte
	copy(w[:], sliceops.Reverse(a[:]))
	return w
}

// AddrFromWire converts a wire order address.
func AddrFromWire(w [msg.AddrSize]byte) BDAddr {
	var a BDAddr
	copy(a[:], sliceops.Reverse(w[:]))
	return a
}

// MarshalText lets addresses print as strings in JSON output.
func (a BDAddr) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}
