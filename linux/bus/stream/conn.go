package stream

import (
	"io"
	"net"
	"time"

	"github.com/jacobsa/go-serial/serial"
	"github.com/pkg/errors"
)

type connWithTimeout struct {
	c       net.Conn
	timeout time.Duration
}

// Read reports a read deadline as no data, the way the socket transport
// reports its poll timeout.
func (cwt *connWithTimeout) Read(b []byte) (int, error) {
	// with deadline
	cwt.c.SetReadDeadline(time.Now().Add(cwt.timeout))
	n, err := cwt.c.Read(b)
	if ne, ok := err.(net.Error); ok && ne.Timeout() {
		return n, nil
	}
	return n, err
}

func (cwt *connWithTimeout) Write(b []byte) (int, error) {
	// with deadline
	cwt.c.SetWriteDeadline(time.Now().Add(cwt.timeout))
	return cwt.c.Write(b)
}

func (cwt *connWithTimeout) Close() error {
	return cwt.c.Close()
}

// NewTCP connects to a server exposing the bus on a TCP address, usually a
// socat bridge to the local socket.
func NewTCP(addr string, timeout time.Duration) (io.ReadWriteCloser, error) {
	if timeout <= 0 {
		timeout = time.Second
	}
	c, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, errors.Wrapf(err, "can't dial %s", addr)
	}
	return &connWithTimeout{c, timeout}, nil
}

// DefaultSerialOptions are 115200 8N1 without flow control.
func DefaultSerialOptions() serial.OpenOptions {
	return serial.OpenOptions{
		BaudRate:              115200,
		DataBits:              8,
		StopBits:              1,
		ParityMode:            serial.PARITY_NONE,
		MinimumReadSize:       0,
		InterCharacterTimeout: 100,
	}
}

type serialPort struct {
	io.ReadWriteCloser
}

// Read maps the empty read of an expired inter character timeout to no data.
func (s *serialPort) Read(b []byte) (int, error) {
	n, err := s.ReadWriteCloser.Read(b)
	if n == 0 && err == io.EOF {
		return 0, nil
	}
	return n, err
}

// NewSerial opens a UART carrying the bus.
func NewSerial(opts serial.OpenOptions) (io.ReadWriteCloser, error) {
	// force these
	opts.MinimumReadSize = 0
	if opts.InterCharacterTimeout == 0 {
		opts.InterCharacterTimeout = 100
	}

	sp, err := serial.Open(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "can't open %s", opts.PortName)
	}
	return &serialPort{sp}, nil
}
