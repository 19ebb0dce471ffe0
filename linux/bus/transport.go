package bus

import (
	"fmt"
	"io"
	"time"

	"github.com/rigado/hfrm/linux/bus/socket"
	"github.com/rigado/hfrm/linux/bus/stream"
)

type transportSocket struct {
	path    string
	timeout time.Duration
}

type transportTCP struct {
	addr    string
	timeout time.Duration
}

type transportUart struct {
	path     string
	baudRate uint
}

type transport struct {
	socket *transportSocket
	tcp    *transportTCP
	uart   *transportUart
	rwc    io.ReadWriteCloser
}

func getTransport(t transport) (io.ReadWriteCloser, error) {
	switch {
	case t.rwc != nil:
		return t.rwc, nil

	case t.socket != nil:
		return socket.NewSocket(t.socket.path, t.socket.timeout)

	case t.tcp != nil:
		return stream.NewTCP(t.tcp.addr, t.tcp.timeout)

	case t.uart != nil:
		so := stream.DefaultSerialOptions()
		so.PortName = t.uart.path
		if t.uart.baudRate != 0 {
			so.BaudRate = t.uart.baudRate
		}
		return stream.NewSerial(so)

	default:
		return nil, fmt.Errorf("no valid transport found")
	}
}
