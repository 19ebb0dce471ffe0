package hfrm

import "github.com/rigado/hfrm/msg"

// Command is a request to the server. See package cmd.
type Command interface {
	Function() uint32
	Len() int
	Marshal([]byte) error
}

// CommandRP receives the response payload of a Command.
type CommandRP interface {
	Unmarshal(b []byte) error
}

// Stack is the server side of the manager. Send performs one request and
// response round trip; a negative server status is returned as an error
// (see ErrorFromStatus).
type Stack interface {
	Initialize() error
	Cleanup() error
	Send(c Command, rp CommandRP) error
}

// MessageBus delivers inbound frames of a group to a handler and runs
// deferred work on its mailbox goroutine.
type MessageBus interface {
	RegisterGroupHandler(group uint32, h func(m *msg.Message)) error
	UnregisterGroupHandler(group uint32)
	QueueCallback(f func()) error
}
