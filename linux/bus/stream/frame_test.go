package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rigado/hfrm/msg"
)

func testFrame(fn uint32, payload []byte) []byte {
	return msg.New(msg.GroupHandsFreeManager, fn, payload).Bytes()
}

func TestAssembleSplit(t *testing.T) {
	a := NewAssembler(256)
	f := testFrame(msg.FunctionDeviceConnected, []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})

	for i := 0; i < len(f)-1; i++ {
		out, err := a.Assemble(f[i : i+1])
		require.NoError(t, err)
		require.Empty(t, out, "byte %d", i)
	}
	assert.Equal(t, len(f)-1, a.Buffered())

	out, err := a.Assemble(f[len(f)-1:])
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, f, out[0])
	assert.Zero(t, a.Buffered())
}

func TestAssembleMany(t *testing.T) {
	a := NewAssembler(256)
	f1 := testFrame(msg.FunctionDeviceConnected, []byte{1, 2, 3})
	f2 := testFrame(msg.FunctionClientRegistration, nil)
	f3 := testFrame(msg.FunctionSpeakerGainInd, make([]byte, 14))

	var b []byte
	b = append(b, f1...)
	b = append(b, f2...)
	b = append(b, f3[:7]...)

	out, err := a.Assemble(b)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, f1, out[0])
	assert.Equal(t, f2, out[1])

	out, err = a.Assemble(f3[7:])
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, f3, out[0])
}

func TestAssembleLargerThanBuffer(t *testing.T) {
	// frames pass through even when the input exceeds the ring
	a := NewAssembler(64)
	var b []byte
	for i := 0; i < 10; i++ {
		b = append(b, testFrame(msg.FunctionDeviceConnected, make([]byte, 30))...)
	}
	out, err := a.Assemble(b)
	require.NoError(t, err)
	assert.Len(t, out, 10)
}

func TestAssembleTooLong(t *testing.T) {
	a := NewAssembler(64)
	f := testFrame(msg.FunctionAudioDataReceived, make([]byte, 100))

	_, err := a.Assemble(f)
	assert.Error(t, err)
	assert.Zero(t, a.Buffered())
}
