package wire

import (
	"bytes"
	"encoding/binary"

	"github.com/jec/moses-pg/internal/pgio"
)

// Text/binary format codes used throughout RowDescription, Bind and
// DataRow.
const (
	TextFormat   = 0
	BinaryFormat = 1
)

// ColumnDescriptor is the 7-tuple describing one result column.
type ColumnDescriptor struct {
	Name         string
	TableOID     int32
	AttrNum      int16
	TypeOID      int32
	TypeLength   int16
	TypeModifier int32
	Format       int16
}

// RowDescription carries the column metadata for a result set.
type RowDescription struct {
	Columns []ColumnDescriptor
}

func (*RowDescription) Backend() {}

func (dst *RowDescription) Decode(src []byte) error {
	buf := bytes.NewBuffer(src)

	if buf.Len() < 2 {
		return &invalidMessageFormatErr{messageType: "RowDescription"}
	}
	n := int(binary.BigEndian.Uint16(buf.Next(2)))
	dst.Columns = make([]ColumnDescriptor, n)

	for i := 0; i < n; i++ {
		name, err := buf.ReadBytes(0)
		if err != nil {
			return &invalidMessageFormatErr{messageType: "RowDescription", details: "name"}
		}

		if buf.Len() < 18 {
			return &invalidMessageFormatErr{messageType: "RowDescription", details: "fixed fields"}
		}

		dst.Columns[i] = ColumnDescriptor{
			Name:         string(name[:len(name)-1]),
			TableOID:     int32(binary.BigEndian.Uint32(buf.Next(4))),
			AttrNum:      int16(binary.BigEndian.Uint16(buf.Next(2))),
			TypeOID:      int32(binary.BigEndian.Uint32(buf.Next(4))),
			TypeLength:   int16(binary.BigEndian.Uint16(buf.Next(2))),
			TypeModifier: int32(binary.BigEndian.Uint32(buf.Next(4))),
			Format:       int16(binary.BigEndian.Uint16(buf.Next(2))),
		}
	}

	return nil
}

func (src *RowDescription) Encode(dst []byte) []byte {
	buf, sp := beginMessage(dst, 'T')
	buf = pgio.AppendUint16(buf, uint16(len(src.Columns)))

	for _, c := range src.Columns {
		buf = append(buf, c.Name...)
		buf = append(buf, 0)
		buf = pgio.AppendInt32(buf, c.TableOID)
		buf = pgio.AppendInt16(buf, c.AttrNum)
		buf = pgio.AppendInt32(buf, c.TypeOID)
		buf = pgio.AppendInt16(buf, c.TypeLength)
		buf = pgio.AppendInt32(buf, c.TypeModifier)
		buf = pgio.AppendInt16(buf, c.Format)
	}

	return finishMessage(buf, sp)
}
