//go:build linux
// +build linux

package socket

import (
	"io"
	"sync"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

const (
	readTimeout    = 1000
	unixPollErrors = int16(unix.POLLHUP | unix.POLLNVAL | unix.POLLERR)
	unixPollDataIn = int16(unix.POLLIN)
)

// Socket is a connection to the manager server's unix domain socket as a
// ReadWriteCloser. Read returns 0, nil when no data arrived within a second.
type Socket struct {
	fd   int
	rmu  sync.Mutex
	wmu  sync.Mutex
	done chan int
	cmu  sync.Mutex
}

// NewSocket connects to the server listening on path, retrying until
// timeout expires. A zero timeout tries once.
func NewSocket(path string, timeout time.Duration) (*Socket, error) {
	to := time.Now().Add(timeout)
	for {
		s, err := open(path)
		if err == nil {
			return s, nil
		}
		if !time.Now().Before(to) {
			return nil, err
		}
		<-time.After(250 * time.Millisecond)
	}
}

func open(path string) (*Socket, error) {
	fd, err := unix.Socket(unix.AF_UNIX, unix.SOCK_STREAM|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return nil, errors.Wrap(err, "can't create socket")
	}

	if err := unix.Connect(fd, &unix.SockaddrUnix{Name: path}); err != nil {
		unix.Close(fd)
		return nil, errors.Wrapf(err, "can't connect to %s", path)
	}

	return &Socket{fd: fd, done: make(chan int)}, nil
}

func (s *Socket) Read(p []byte) (int, error) {
	if !s.isOpen() {
		return 0, io.EOF
	}

	var err error
	n := 0
	s.rmu.Lock()
	defer s.rmu.Unlock()
	// dont need to add unixPollErrors, they are always returned
	pfds := []unix.PollFd{{Fd: int32(s.fd), Events: unixPollDataIn}}
	unix.Poll(pfds, readTimeout)
	evts := pfds[0].Revents

	switch {
	case evts&unixPollErrors != 0:
		return 0, io.EOF

	case evts&unixPollDataIn != 0:
		n, err = unix.Read(s.fd, p)
		if n == 0 && err == nil {
			// orderly shutdown by the server
			return 0, io.EOF
		}

	default:
		// no data, read timeout
		return 0, nil
	}

	// check if we are still open since the read takes a while
	if !s.isOpen() {
		return 0, io.EOF
	}
	if n < 0 {
		n = 0
	}
	return n, errors.Wrap(err, "can't read socket")
}

func (s *Socket) Write(p []byte) (int, error) {
	if !s.isOpen() {
		return 0, io.EOF
	}

	s.wmu.Lock()
	defer s.wmu.Unlock()
	n, err := unix.Write(s.fd, p)
	return n, errors.Wrap(err, "can't write socket")
}

func (s *Socket) Close() error {
	s.cmu.Lock()
	defer s.cmu.Unlock()

	select {
	case <-s.done:
		return nil

	default:
		close(s.done)
		s.rmu.Lock()
		err := unix.Close(s.fd)
		s.rmu.Unlock()

		return errors.Wrap(err, "can't close socket")
	}
}

func (s *Socket) isOpen() bool {
	select {
	case <-s.done:
		return false
	default:
		return true
	}
}
