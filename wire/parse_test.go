package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEncode(t *testing.T) {
	msg := Parse{
		Name:          "statement1",
		Query:         "select * from users where id = $1",
		ParameterOIDs: []uint32{23},
	}

	buf := msg.Encode(nil)

	expected := []byte{
		'P',
		0x00, 0x00, 0x00, 0x37, // length: 55
		0x73, 0x74, 0x61, 0x74, 0x65, 0x6D, 0x65, 0x6E, 0x74, 0x31, 0x00, // "statement1"
		0x73, 0x65, 0x6C, 0x65, 0x63, 0x74, 0x20, 0x2A, 0x20, 0x66, 0x72, 0x6F, 0x6D, 0x20, 0x75, 0x73,
		0x65, 0x72, 0x73, 0x20, 0x77, 0x68, 0x65, 0x72, 0x65, 0x20, 0x69, 0x64, 0x20, 0x3D, 0x20, 0x24,
		0x31, 0x00, // "select * from users where id = $1"
		0x00, 0x01, // 1 parameter OID
		0x00, 0x00, 0x00, 0x17, // 23
	}
	assert.Equal(t, expected, buf)
}

func TestParseRoundTrip(t *testing.T) {
	want := Parse{Name: "stmt1", Query: "select $1", ParameterOIDs: []uint32{23, 1043}}
	buf := want.Encode(nil)

	var got Parse
	require.NoError(t, got.Decode(buf[5:]))
	assert.Equal(t, want, got)
}
