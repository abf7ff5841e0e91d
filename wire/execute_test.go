package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteEncode(t *testing.T) {
	msg := Execute{Portal: "portal1", MaxRows: 100}

	buf := msg.Encode(nil)

	expected := []byte{
		'E',
		0x00, 0x00, 0x00, 0x10, // length: 16
	}
	expected = append(expected, "portal1"...)
	expected = append(expected, 0)
	expected = append(expected, 0x00, 0x00, 0x00, 0x64) // MaxRows: 100

	assert.Equal(t, expected, buf)
}

func TestExecuteRoundTrip(t *testing.T) {
	want := Execute{Portal: "", MaxRows: 0}
	buf := want.Encode(nil)

	var got Execute
	require.NoError(t, got.Decode(buf[5:]))
	assert.Equal(t, want, got)
}
