package hfrm

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListSetSemantics(t *testing.T) {
	l := newList()

	assert.False(t, l.Add(nil))
	assert.False(t, l.Add(&entry{handle: 0}))
	assert.True(t, l.Add(&entry{handle: 3}))
	assert.True(t, l.Add(&entry{handle: 1}))
	assert.True(t, l.Add(&entry{handle: 2}))
	assert.False(t, l.Add(&entry{handle: 1}))
	assert.Equal(t, 3, l.Len())

	var order []uint32
	l.Each(func(e *entry) bool {
		order = append(order, e.handle)
		return true
	})
	assert.Equal(t, []uint32{3, 1, 2}, order)
	assert.Equal(t, uint32(3), l.First().handle)

	assert.Nil(t, l.Find(0))
	assert.Nil(t, l.Find(9))
	assert.NotNil(t, l.Find(2))

	assert.Nil(t, l.Remove(0))
	assert.Nil(t, l.Remove(9))
	e := l.Remove(3)
	require.NotNil(t, e)
	assert.Equal(t, uint32(3), e.handle)
	assert.Nil(t, l.Remove(3))
	assert.Equal(t, uint32(1), l.First().handle)
}

func TestListClearClosesWaiters(t *testing.T) {
	l := newList()
	done := make(chan ConnectionStatus, 1)
	require.True(t, l.Add(&entry{handle: 1, done: done}))
	require.True(t, l.Add(&entry{handle: 2}))

	l.Clear()
	assert.Zero(t, l.Len())
	assert.Nil(t, l.First())
	_, ok := <-done
	assert.False(t, ok)
}

func TestAllocHandle(t *testing.T) {
	r := newRegistry()
	assert.Equal(t, uint32(1), r.allocHandle())
	assert.Equal(t, uint32(2), r.allocHandle())

	r.nextHandle = 0x7FFFFFFF
	assert.Equal(t, uint32(0x7FFFFFFF), r.allocHandle())
	assert.Equal(t, uint32(1), r.allocHandle())

	r.nextHandle = 0
	assert.Equal(t, uint32(1), r.allocHandle())
}

func TestRegistryFind(t *testing.T) {
	r := newRegistry()
	require.True(t, r.list(AudioGateway, categoryData).Add(&entry{handle: 5, role: AudioGateway, category: categoryData}))

	assert.Nil(t, r.find(5, categoryGeneral, categoryControl))
	e := r.find(5, categoryData)
	require.NotNil(t, e)
	assert.Equal(t, AudioGateway, e.role)

	r.clear()
	assert.Nil(t, r.find(5, categoryData))
}

func TestErrorFromStatus(t *testing.T) {
	assert.NoError(t, ErrorFromStatus(0))
	assert.NoError(t, ErrorFromStatus(12))
	assert.Equal(t, ErrRoleNotSupported, ErrorFromStatus(ErrRoleNotSupported.Code()))

	err := ErrorFromStatus(-1234)
	var se *StackError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, int32(-1234), se.Code)

	wrapped := errors.Wrap(ErrDevicePoweredDown, "connect")
	assert.True(t, errors.Is(wrapped, ErrDevicePoweredDown))
	assert.Equal(t, int32(-2006), Code(wrapped))
	assert.Equal(t, int32(-1234), Code(errors.Wrap(err, "send")))
	assert.Zero(t, Code(nil))
	assert.Zero(t, Code(errors.New("other")))
}

func TestBDAddr(t *testing.T) {
	a, err := ParseBDAddr("00:11:22:33:44:55")
	require.NoError(t, err)
	assert.Equal(t, testAddr, a)
	assert.Equal(t, "00:11:22:33:44:55", a.String())
	assert.Equal(t, [6]byte{0x55, 0x44, 0x33, 0x22, 0x11, 0x00}, a.Wire())
	assert.Equal(t, a, AddrFromWire(a.Wire()))

	b, err := ParseBDAddr("001122334455")
	require.NoError(t, err)
	assert.Equal(t, a, b)

	for _, s := range []string{"", "00:11:22", "zz:11:22:33:44:55", "00:11:22:33:44:55:66"} {
		_, err := ParseBDAddr(s)
		assert.Error(t, err, s)
	}

	txt, err := a.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "00:11:22:33:44:55", string(txt))
	assert.True(t, BDAddr{}.IsZero())
}

func TestRoleStrings(t *testing.T) {
	for _, s := range []string{"hf", "handsfree", "HandsFree"} {
		r, err := ParseRole(s)
		require.NoError(t, err)
		assert.Equal(t, HandsFree, r)
	}
	r, err := ParseRole("ag")
	require.NoError(t, err)
	assert.Equal(t, AudioGateway, r)
	_, err = ParseRole("headset")
	assert.Error(t, err)

	assert.Equal(t, "audiogateway", AudioGateway.String())
	assert.Equal(t, "role(4)", Role(4).String())
	assert.Equal(t, "device powered off", StatusFailureDevicePowerOff.String())
	assert.Equal(t, "status(40)", ConnectionStatus(40).String())
	assert.Equal(t, "DeviceConnectionStatus", EventType(0x00010003).String())
}
