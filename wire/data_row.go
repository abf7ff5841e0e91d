package wire

import (
	"encoding/binary"

	"github.com/jec/moses-pg/internal/pgio"
)

// DataRow carries one row of results. A nil entry in Values represents SQL
// NULL (wire length -1); values are kept as raw, undecoded bytes — text
// decoding to native types belongs to the type-translation layer this
// engine only references abstractly.
type DataRow struct {
	Values [][]byte
}

func (*DataRow) Backend() {}

func (dst *DataRow) Decode(src []byte) error {
	if len(src) < 2 {
		return &invalidMessageFormatErr{messageType: "DataRow"}
	}
	rp := 0
	n := int(binary.BigEndian.Uint16(src[rp:]))
	rp += 2

	dst.Values = make([][]byte, n)
	for i := 0; i < n; i++ {
		if len(src[rp:]) < 4 {
			return &invalidMessageFormatErr{messageType: "DataRow", details: "value length"}
		}
		size := int(int32(binary.BigEndian.Uint32(src[rp:])))
		rp += 4

		if size == -1 {
			dst.Values[i] = nil
			continue
		}
		if len(src[rp:]) < size {
			return &invalidMessageFormatErr{messageType: "DataRow", details: "value"}
		}
		dst.Values[i] = src[rp : rp+size]
		rp += size
	}

	return nil
}

func (src *DataRow) Encode(dst []byte) []byte {
	buf, sp := beginMessage(dst, 'D')
	buf = pgio.AppendUint16(buf, uint16(len(src.Values)))

	for _, v := range src.Values {
		if v == nil {
			buf = pgio.AppendInt32(buf, -1)
			continue
		}
		buf = pgio.AppendInt32(buf, int32(len(v)))
		buf = append(buf, v...)
	}

	return finishMessage(buf, sp)
}
