package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryEncode(t *testing.T) {
	msg := Query{SQL: "select 1"}

	buf := msg.Encode(nil)

	expected := []byte{
		'Q',
		0x00, 0x00, 0x00, 0x0D, // length: 13 (4 + len("select 1") + 1)
	}
	expected = append(expected, "select 1"...)
	expected = append(expected, 0)

	assert.Equal(t, expected, buf)
}

func TestQueryDecode(t *testing.T) {
	var msg Query
	require.NoError(t, msg.Decode([]byte("select 1\x00")))
	assert.Equal(t, "select 1", msg.SQL)
}

func TestQueryDecodeMissingTerminator(t *testing.T) {
	var msg Query
	require.Error(t, msg.Decode([]byte("select 1")))
}

func TestQueryRoundTrip(t *testing.T) {
	want := Query{SQL: "insert into t values ($1)"}
	buf := want.Encode(nil)

	// strip the 5-byte header the way FrameBuffer would before Decode sees it.
	var got Query
	require.NoError(t, got.Decode(buf[5:]))
	assert.Equal(t, want, got)
}
