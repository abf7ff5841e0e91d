package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParameterDescriptionEncode(t *testing.T) {
	msg := ParameterDescription{ParameterOIDs: []int32{20, 22, 24}}

	buf := msg.Encode(nil)

	expected := []byte{
		't',
		0x00, 0x00, 0x00, 0x12, // length: 18
		0x00, 0x03, // 3 parameters
		0x00, 0x00, 0x00, 0x14, // 20
		0x00, 0x00, 0x00, 0x16, // 22
		0x00, 0x00, 0x00, 0x18, // 24
	}
	assert.Equal(t, expected, buf)
}

func TestParameterDescriptionRoundTrip(t *testing.T) {
	want := ParameterDescription{ParameterOIDs: []int32{1043}}
	buf := want.Encode(nil)

	var got ParameterDescription
	require.NoError(t, got.Decode(buf[5:]))
	assert.Equal(t, want, got)
}
