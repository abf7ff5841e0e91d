package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordMessageEncode(t *testing.T) {
	msg := PasswordMessage{Password: "this is a test"}

	buf := msg.Encode(nil)

	expected := []byte{
		'p',
		0x00, 0x00, 0x00, 0x13, // length: 19
	}
	expected = append(expected, "this is a test"...)
	expected = append(expected, 0)

	assert.Equal(t, expected, buf)
}

func TestPasswordMessageRoundTrip(t *testing.T) {
	want := PasswordMessage{Password: "md5deadbeef"}
	buf := want.Encode(nil)

	var got PasswordMessage
	require.NoError(t, got.Decode(buf[5:]))
	assert.Equal(t, want, got)
}
