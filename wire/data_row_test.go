package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataRowEncode(t *testing.T) {
	msg := DataRow{Values: [][]byte{[]byte("this"), []byte("is"), []byte("a"), []byte("test")}}

	buf := msg.Encode(nil)

	expected := []byte{
		'D',
		0x00, 0x00, 0x00, 0x21, // length: 33
		0x00, 0x04, // 4 columns
		0x00, 0x00, 0x00, 0x04, 't', 'h', 'i', 's',
		0x00, 0x00, 0x00, 0x02, 'i', 's',
		0x00, 0x00, 0x00, 0x01, 'a',
		0x00, 0x00, 0x00, 0x04, 't', 'e', 's', 't',
	}
	assert.Equal(t, expected, buf)
}

func TestDataRowEncodeNull(t *testing.T) {
	msg := DataRow{Values: [][]byte{nil}}

	buf := msg.Encode(nil)

	expected := []byte{
		'D',
		0x00, 0x00, 0x00, 0x0A, // length: 10
		0x00, 0x01, // 1 column
		0xFF, 0xFF, 0xFF, 0xFF, // -1: NULL
	}
	assert.Equal(t, expected, buf)
}

func TestDataRowDecodeNullRoundTrip(t *testing.T) {
	want := DataRow{Values: [][]byte{[]byte("a"), nil, []byte("b")}}
	buf := want.Encode(nil)

	var got DataRow
	require.NoError(t, got.Decode(buf[5:]))
	assert.Equal(t, want, got)
}
