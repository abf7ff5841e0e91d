package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeBackendDispatchesByType(t *testing.T) {
	msg, err := DecodeBackend(Frame{Type: 'Z', Payload: []byte{'I'}})
	require.NoError(t, err)
	rfq, ok := msg.(*ReadyForQuery)
	require.True(t, ok)
	assert.Equal(t, byte('I'), rfq.Status)
}

func TestDecodeBackendUnknownType(t *testing.T) {
	_, err := DecodeBackend(Frame{Type: '?', Payload: nil})
	require.Error(t, err)
}

func TestDecodeFrontendDispatchesByType(t *testing.T) {
	payload := (&Query{SQL: "select 1"}).Encode(nil)[5:]
	msg, err := DecodeFrontend(Frame{Type: 'Q', Payload: payload})
	require.NoError(t, err)
	q, ok := msg.(*Query)
	require.True(t, ok)
	assert.Equal(t, "select 1", q.SQL)
}

func TestDecodeFrontendUnknownType(t *testing.T) {
	_, err := DecodeFrontend(Frame{Type: '?', Payload: nil})
	require.Error(t, err)
}
