package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticationMD5Decode(t *testing.T) {
	var msg Authentication
	require.NoError(t, msg.Decode([]byte{
		0x00, 0x00, 0x00, 0x05, // AuthTypeMD5
		'a', 'b', 'c', 'd', // salt
	}))
	assert.Equal(t, uint32(AuthTypeMD5), msg.Type)
	assert.Equal(t, [4]byte{'a', 'b', 'c', 'd'}, msg.Salt)
}

func TestAuthenticationMD5Encode(t *testing.T) {
	msg := Authentication{Type: AuthTypeMD5, Salt: [4]byte{'a', 'b', 'c', 'd'}}

	buf := msg.Encode(nil)

	expected := []byte{
		'R',
		0x00, 0x00, 0x00, 0x0C, // length: 12
		0x00, 0x00, 0x00, 0x05, // AuthTypeMD5
		'a', 'b', 'c', 'd',
	}
	assert.Equal(t, expected, buf)
}

func TestAuthenticationOkRoundTrip(t *testing.T) {
	want := Authentication{Type: AuthTypeOk}
	buf := want.Encode(nil)

	var got Authentication
	require.NoError(t, got.Decode(buf[5:]))
	assert.Equal(t, want, got)
}
