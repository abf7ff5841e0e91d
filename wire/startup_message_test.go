package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartupMessageEncodeOrdered(t *testing.T) {
	buf := EncodeOrdered(nil, ProtocolVersionNumber, "jim", "inventory", nil)

	expected := []byte{
		0x00, 0x00, 0x00, 0x25, // length: 37
		0x00, 0x03, 0x00, 0x00, // protocol version 3.0
	}
	expected = append(expected, "user"...)
	expected = append(expected, 0)
	expected = append(expected, "jim"...)
	expected = append(expected, 0)
	expected = append(expected, "database"...)
	expected = append(expected, 0)
	expected = append(expected, "inventory"...)
	expected = append(expected, 0)
	expected = append(expected, 0) // terminator

	assert.Equal(t, expected, buf)
}

func TestStartupMessageRoundTrip(t *testing.T) {
	buf := EncodeOrdered(nil, ProtocolVersionNumber, "jim", "inventory", map[string]string{"application_name": "moses-pg"})

	var got StartupMessage
	require.NoError(t, got.Decode(buf[4:]))
	assert.Equal(t, uint32(ProtocolVersionNumber), got.ProtocolVersion)
	assert.Equal(t, "jim", got.Parameters["user"])
	assert.Equal(t, "inventory", got.Parameters["database"])
	assert.Equal(t, "moses-pg", got.Parameters["application_name"])
}
