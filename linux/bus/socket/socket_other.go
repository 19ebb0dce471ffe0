//go:build !linux
// +build !linux

package socket

import (
	"fmt"
	"time"
)

// Socket is only available on linux.
type Socket struct{}

// NewSocket is a dummy function for non-Linux platform.
func NewSocket(path string, timeout time.Duration) (*Socket, error) {
	return nil, fmt.Errorf("only available on linux")
}

func (s *Socket) Read(p []byte) (int, error)  { return 0, fmt.Errorf("only available on linux") }
func (s *Socket) Write(p []byte) (int, error) { return 0, fmt.Errorf("only available on linux") }
func (s *Socket) Close() error                { return nil }
