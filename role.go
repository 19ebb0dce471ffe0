package hfrm

import "fmt"

// Role is the local side of a Hands-Free connection.
type Role uint32

const (
	HandsFree    Role = 0
	AudioGateway Role = 1
)

var roles = [...]Role{HandsFree, AudioGateway}

func (r Role) Valid() bool {
	return r == HandsFree || r == AudioGateway
}

func (r Role) String() string {
	switch r {
	case HandsFree:
		return "handsfree"
	case AudioGateway:
		return "audiogateway"
	default:
		return fmt.Sprintf("role(%d)", uint32(r))
	}
}

// ParseRole accepts the names printed by String plus the short forms hf/ag.
func ParseRole(s string) (Role, error) {
	switch s {
	case "handsfree", "hf", "HandsFree":
		return HandsFree, nil
	case "audiogateway", "ag", "AudioGateway":
		return AudioGateway, nil
	}
	return 0, fmt.Errorf("unknown role %q", s)
}

// ConnectionStatus is the outcome of a connect attempt.
type ConnectionStatus uint32

const (
	StatusSuccess ConnectionStatus = iota
	StatusFailureTimeout
	StatusFailureRefused
	StatusFailureSecurity
	StatusFailureDevicePowerOff
	StatusFailureUnknown
)

var statusNames = []string{
	"success",
	"timeout",
	"refused",
	"security",
	"device powered off",
	"unknown",
}

func (s ConnectionStatus) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("status(%d)", uint32(s))
}

// DisconnectReason ...
type DisconnectReason uint32

const (
	DisconnectNormal DisconnectReason = iota
	DisconnectServiceLevelError
)

// Outgoing connection flags.
const (
	ConnectRequireAuthentication uint32 = 0x00000001
	ConnectRequireEncryption     uint32 = 0x00000002

	connectFlagsMask = ConnectRequireAuthentication | ConnectRequireEncryption
)

// Incoming connection flags.
const (
	IncomingRequireAuthorization  uint32 = 0x00000001
	IncomingRequireAuthentication uint32 = 0x00000002
	IncomingRequireEncryption     uint32 = 0x00000004

	incomingFlagsMask = IncomingRequireAuthorization | IncomingRequireAuthentication | IncomingRequireEncryption
)

type category int

const (
	categoryGeneral category = iota
	categoryControl
	categoryData
	categoryConnect
)

func (c category) String() string {
	switch c {
	case categoryGeneral:
		return "general"
	case categoryControl:
		return "control"
	case categoryData:
		return "data"
	default:
		return "connect"
	}
}
