package wire

import (
	"bytes"
	"encoding/binary"

	"github.com/jec/moses-pg/internal/pgio"
)

// Parse is the extended-query message that asks the backend to parse SQL
// into a named prepared statement.
type Parse struct {
	Name          string
	Query         string
	ParameterOIDs []uint32
}

func (*Parse) Frontend() {}

func (dst *Parse) Decode(src []byte) error {
	buf := bytes.NewBuffer(src)

	name, err := buf.ReadBytes(0)
	if err != nil {
		return &invalidMessageFormatErr{messageType: "Parse", details: "name"}
	}
	dst.Name = string(name[:len(name)-1])

	sql, err := buf.ReadBytes(0)
	if err != nil {
		return &invalidMessageFormatErr{messageType: "Parse", details: "query"}
	}
	dst.Query = string(sql[:len(sql)-1])

	if buf.Len() < 2 {
		return &invalidMessageFormatErr{messageType: "Parse", details: "oid count"}
	}
	n := int(binary.BigEndian.Uint16(buf.Next(2)))
	dst.ParameterOIDs = nil
	for i := 0; i < n; i++ {
		if buf.Len() < 4 {
			return &invalidMessageFormatErr{messageType: "Parse", details: "oid"}
		}
		dst.ParameterOIDs = append(dst.ParameterOIDs, binary.BigEndian.Uint32(buf.Next(4)))
	}

	return nil
}

func (src *Parse) Encode(dst []byte) []byte {
	dst, sp := beginMessage(dst, 'P')
	dst = append(dst, src.Name...)
	dst = append(dst, 0)
	dst = append(dst, src.Query...)
	dst = append(dst, 0)

	dst = pgio.AppendUint16(dst, uint16(len(src.ParameterOIDs)))
	for _, oid := range src.ParameterOIDs {
		dst = pgio.AppendUint32(dst, oid)
	}

	return finishMessage(dst, sp)
}
