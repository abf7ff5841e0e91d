package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindEncode(t *testing.T) {
	msg := Bind{
		DestinationPortal: "port1",
		PreparedStatement: "stmt1",
		Parameters:        [][]byte{[]byte("this is a test"), []byte("hello")},
	}

	buf := msg.Encode(nil)

	expected := []byte{
		'B',
		0x00, 0x00, 0x00, 0x31, // length: 49
	}
	expected = append(expected, "port1"...)
	expected = append(expected, 0)
	expected = append(expected, "stmt1"...)
	expected = append(expected, 0)
	expected = append(expected, 0x00, 0x00) // 0 parameter format codes
	expected = append(expected, 0x00, 0x02) // 2 parameters
	expected = append(expected, 0x00, 0x00, 0x00, 0x0E)
	expected = append(expected, "this is a test"...)
	expected = append(expected, 0x00, 0x00, 0x00, 0x05)
	expected = append(expected, "hello"...)
	expected = append(expected, 0x00, 0x00) // 0 result format codes

	assert.Equal(t, expected, buf)
}

func TestBindRoundTrip(t *testing.T) {
	want := Bind{
		DestinationPortal:    "port_1",
		PreparedStatement:    "stmt_1",
		ParameterFormatCodes: []int16{1},
		Parameters:           [][]byte{[]byte("hello"), nil},
		ResultFormatCodes:    []int16{0, 1},
	}

	buf := want.Encode(nil)

	var got Bind
	require.NoError(t, got.Decode(buf[5:]))
	assert.Equal(t, want.DestinationPortal, got.DestinationPortal)
	assert.Equal(t, want.PreparedStatement, got.PreparedStatement)
	assert.Equal(t, want.ParameterFormatCodes, got.ParameterFormatCodes)
	assert.Equal(t, want.Parameters, got.Parameters)
	assert.Equal(t, want.ResultFormatCodes, got.ResultFormatCodes)
}

func TestValidateFormatCodes(t *testing.T) {
	require.NoError(t, ValidateFormatCodes(nil, 3))
	require.NoError(t, ValidateFormatCodes([]int16{1}, 3))
	require.NoError(t, ValidateFormatCodes([]int16{0, 1, 1}, 3))

	require.Error(t, ValidateFormatCodes([]int16{0, 1}, 3))
	require.Error(t, ValidateFormatCodes([]int16{2}, 1))
}
