package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribeStatementEncode(t *testing.T) {
	msg := Describe{ObjectType: DescribeStatement, Name: "statement1"}

	buf := msg.Encode(nil)

	expected := []byte{
		'D',
		0x00, 0x00, 0x00, 0x10, // length: 16
		'S',
	}
	expected = append(expected, "statement1"...)
	expected = append(expected, 0)

	assert.Equal(t, expected, buf)
}

func TestDescribePortalEncode(t *testing.T) {
	msg := Describe{ObjectType: DescribePortal, Name: "portal1"}

	buf := msg.Encode(nil)

	expected := []byte{
		'D',
		0x00, 0x00, 0x00, 0x0D, // length: 13
		'P',
	}
	expected = append(expected, "portal1"...)
	expected = append(expected, 0)

	assert.Equal(t, expected, buf)
}

func TestDescribeRoundTrip(t *testing.T) {
	want := Describe{ObjectType: DescribeStatement, Name: "stmt1"}
	buf := want.Encode(nil)

	var got Describe
	require.NoError(t, got.Decode(buf[5:]))
	assert.Equal(t, want, got)
}
