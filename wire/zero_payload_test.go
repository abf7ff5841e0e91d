package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlushEncode(t *testing.T) {
	assert.Equal(t, []byte{'H', 0x00, 0x00, 0x00, 0x04}, (&Flush{}).Encode(nil))
}

func TestSyncEncode(t *testing.T) {
	assert.Equal(t, []byte{'S', 0x00, 0x00, 0x00, 0x04}, (&Sync{}).Encode(nil))
}

func TestTerminateEncode(t *testing.T) {
	assert.Equal(t, []byte{'X', 0x00, 0x00, 0x00, 0x04}, (&Terminate{}).Encode(nil))
}

func TestZeroPayloadDecodeRejectsNonEmpty(t *testing.T) {
	require.Error(t, (&Flush{}).Decode([]byte{1}))
	require.Error(t, (&Sync{}).Decode([]byte{1}))
	require.Error(t, (&Terminate{}).Decode([]byte{1}))
	require.Error(t, (&ParseComplete{}).Decode([]byte{1}))
	require.Error(t, (&BindComplete{}).Decode([]byte{1}))
	require.Error(t, (&CloseComplete{}).Decode([]byte{1}))
	require.Error(t, (&NoData{}).Decode([]byte{1}))
	require.Error(t, (&EmptyQueryResponse{}).Decode([]byte{1}))
	require.Error(t, (&PortalSuspended{}).Decode([]byte{1}))
}
