package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackendKeyDataDecode(t *testing.T) {
	src := []byte{
		0x00, 0x00, 0x22, 0xA0, // ProcessID: 8864
		0xD9, 0x0C, 0xAE, 0xDB, // SecretKey
	}

	var msg BackendKeyData
	require.NoError(t, msg.Decode(src))
	assert.Equal(t, uint32(8864), msg.ProcessID)
	assert.Equal(t, uint32(0xD90CAEDB), msg.SecretKey)
}

func TestBackendKeyDataEncode(t *testing.T) {
	msg := BackendKeyData{ProcessID: 8864, SecretKey: 0xD90CAEDB}

	buf := msg.Encode(nil)

	expected := []byte{
		'K',
		0x00, 0x00, 0x00, 0x0C, // length: 12 (4 + 4 + 4)
		0x00, 0x00, 0x22, 0xA0,
		0xD9, 0x0C, 0xAE, 0xDB,
	}
	assert.Equal(t, expected, buf)
}

func TestBackendKeyDataDecodeWrongLen(t *testing.T) {
	var msg BackendKeyData
	err := msg.Decode([]byte{1, 2, 3})
	require.Error(t, err)
}
