package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParameterStatusEncode(t *testing.T) {
	msg := ParameterStatus{Name: "city", Value: "Fort Lauderdale"}

	buf := msg.Encode(nil)

	expected := []byte{
		'S',
		0x00, 0x00, 0x00, 0x19, // length: 25
	}
	expected = append(expected, "city"...)
	expected = append(expected, 0)
	expected = append(expected, "Fort Lauderdale"...)
	expected = append(expected, 0)

	assert.Equal(t, expected, buf)
}

func TestParameterStatusRoundTrip(t *testing.T) {
	want := ParameterStatus{Name: "TimeZone", Value: "UTC"}
	buf := want.Encode(nil)

	var got ParameterStatus
	require.NoError(t, got.Decode(buf[5:]))
	assert.Equal(t, want, got)
}
