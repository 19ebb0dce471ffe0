package bus

import (
	"fmt"
	"io"
	"time"

	"github.com/rigado/hfrm"
)

// An Option is a configuration function, which configures the bus.
type Option func(*Bus) error

// OptTransportUnixSocket connects to the server's unix domain socket, retrying
// for up to timeout.
func OptTransportUnixSocket(path string, timeout time.Duration) Option {
	return func(b *Bus) error {
		b.transport = transport{socket: &transportSocket{path, timeout}}
		return nil
	}
}

// OptTransportTCP connects to a TCP bridge of the server socket.
func OptTransportTCP(addr string, timeout time.Duration) Option {
	return func(b *Bus) error {
		b.transport = transport{tcp: &transportTCP{addr, timeout}}
		return nil
	}
}

// OptTransportUart talks to a server on the other end of a UART.
func OptTransportUart(path string, baudRate uint) Option {
	return func(b *Bus) error {
		b.transport = transport{uart: &transportUart{path, baudRate}}
		return nil
	}
}

// OptTransport uses an already open connection.
func OptTransport(rwc io.ReadWriteCloser) Option {
	return func(b *Bus) error {
		if rwc == nil {
			return fmt.Errorf("nil transport")
		}
		b.transport = transport{rwc: rwc}
		return nil
	}
}

// OptTimeout sets the request and response timeout.
func OptTimeout(d time.Duration) Option {
	return func(b *Bus) error {
		if d <= 0 {
			return fmt.Errorf("invalid timeout %v", d)
		}
		b.timeout = d
		return nil
	}
}

// OptServerAddressID sets the address id stamped on requests.
func OptServerAddressID(id uint32) Option {
	return func(b *Bus) error {
		b.serverID = id
		return nil
	}
}

// OptErrorHandler sets a function called on transport failures.
func OptErrorHandler(handler func(error)) Option {
	return func(b *Bus) error {
		b.errorHandler = handler
		return nil
	}
}

// OptLogger ...
func OptLogger(l hfrm.Logger) Option {
	return func(b *Bus) error {
		if l == nil {
			return fmt.Errorf("nil logger")
		}
		b.logger = l.ChildLogger(map[string]interface{}{"component": "bus"})
		b.mailbox.logger = b.logger
		return nil
	}
}
