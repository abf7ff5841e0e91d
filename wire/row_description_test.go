package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowDescriptionEncode(t *testing.T) {
	msg := RowDescription{Columns: []ColumnDescriptor{
		{
			Name:         "name",
			TableOID:     999,
			AttrNum:      1,
			TypeOID:      23,
			TypeLength:   8,
			TypeModifier: -1,
			Format:       0,
		},
	}}

	buf := msg.Encode(nil)

	expected := []byte{
		'T',
		0x00, 0x00, 0x00, 0x1D, // length: 29
		0x00, 0x01, // 1 column
	}
	expected = append(expected, "name"...)
	expected = append(expected, 0)
	expected = append(expected,
		0x00, 0x00, 0x03, 0xE7, // TableOID: 999
		0x00, 0x01, // AttrNum: 1
		0x00, 0x00, 0x00, 0x17, // TypeOID: 23
		0x00, 0x08, // TypeLength: 8
		0xFF, 0xFF, 0xFF, 0xFF, // TypeModifier: -1
		0x00, 0x00, // Format: 0
	)

	assert.Equal(t, expected, buf)
}

func TestRowDescriptionRoundTrip(t *testing.T) {
	want := RowDescription{Columns: []ColumnDescriptor{
		{Name: "id", TableOID: 1, AttrNum: 1, TypeOID: 23, TypeLength: 4, TypeModifier: -1, Format: 0},
		{Name: "name", TableOID: 1, AttrNum: 2, TypeOID: 25, TypeLength: -1, TypeModifier: -1, Format: 0},
	}}
	buf := want.Encode(nil)

	var got RowDescription
	require.NoError(t, got.Decode(buf[5:]))
	assert.Equal(t, want, got)
}
