package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameBufferWholeMessageAtOnce(t *testing.T) {
	fb := NewFrameBuffer()
	raw := (&CommandComplete{CommandTag: "SELECT 1"}).Encode(nil)

	frames := fb.Receive(raw)
	require.Len(t, frames, 1)
	assert.Equal(t, byte('C'), frames[0].Type)
	assert.Equal(t, "SELECT 1\x00", string(frames[0].Payload))
}

func TestFrameBufferSplitAcrossChunks(t *testing.T) {
	fb := NewFrameBuffer()
	raw := (&CommandComplete{CommandTag: "SELECT 1"}).Encode(nil)

	// split in the middle of the length prefix and again in the payload.
	frames := fb.Receive(raw[:2])
	assert.Empty(t, frames)

	frames = fb.Receive(raw[2:7])
	assert.Empty(t, frames)

	frames = fb.Receive(raw[7:])
	require.Len(t, frames, 1)
	assert.Equal(t, "SELECT 1\x00", string(frames[0].Payload))
}

func TestFrameBufferMultipleMessagesInOneChunk(t *testing.T) {
	fb := NewFrameBuffer()
	raw := append((&ParseComplete{}).Encode(nil), (&BindComplete{}).Encode(nil)...)

	frames := fb.Receive(raw)
	require.Len(t, frames, 2)
	assert.Equal(t, byte('1'), frames[0].Type)
	assert.Equal(t, byte('2'), frames[1].Type)
}

func TestFrameBufferFlushPreservesPartialMessage(t *testing.T) {
	fb := NewFrameBuffer()
	raw := (&CommandComplete{CommandTag: "SELECT 1"}).Encode(nil)

	fb.Receive(raw[:7]) // past the type+length prefix, into the payload
	flushed := fb.Flush()
	assert.Equal(t, raw[:7], flushed)

	// a fresh buffer fed the rest plus the flushed prefix reassembles cleanly.
	fb2 := NewFrameBuffer()
	frames := fb2.Receive(append(flushed, raw[7:]...))
	require.Len(t, frames, 1)
	assert.Equal(t, byte('C'), frames[0].Type)
}
