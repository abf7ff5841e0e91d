package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCancelRequestEncode(t *testing.T) {
	msg := CancelRequest{ProcessID: 1234, SecretKey: 5678}

	buf := msg.Encode(nil)

	expected := []byte{
		0x00, 0x00, 0x00, 0x10, // length: 16
		0x04, 0xD2, 0x16, 0x2E, // cancel request code 80877102
		0x00, 0x00, 0x04, 0xD2, // ProcessID: 1234
		0x00, 0x00, 0x16, 0x2E, // SecretKey: 5678
	}
	assert.Equal(t, expected, buf)
}

func TestCancelRequestRoundTrip(t *testing.T) {
	want := CancelRequest{ProcessID: 99, SecretKey: 424242}
	buf := want.Encode(nil)

	var got CancelRequest
	require.NoError(t, got.Decode(buf[4:]))
	assert.Equal(t, want, got)
}

func TestCancelRequestDecodeBadCode(t *testing.T) {
	var got CancelRequest
	err := got.Decode([]byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0})
	require.Error(t, err)
}
