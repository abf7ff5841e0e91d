package wire

import (
	"encoding/binary"

	"github.com/jec/moses-pg/internal/pgio"
)

// ParameterDescription reports the inferred OID of each parameter of a
// prepared statement, in response to DescribeStatement.
type ParameterDescription struct {
	ParameterOIDs []int32
}

func (*ParameterDescription) Backend() {}

func (dst *ParameterDescription) Decode(src []byte) error {
	if len(src) < 2 {
		return &invalidMessageFormatErr{messageType: "ParameterDescription"}
	}
	n := int(binary.BigEndian.Uint16(src))
	rp := 2

	if len(src[rp:]) < n*4 {
		return &invalidMessageFormatErr{messageType: "ParameterDescription", details: "oids"}
	}
	dst.ParameterOIDs = make([]int32, n)
	for i := 0; i < n; i++ {
		dst.ParameterOIDs[i] = int32(binary.BigEndian.Uint32(src[rp:]))
		rp += 4
	}

	return nil
}

func (src *ParameterDescription) Encode(dst []byte) []byte {
	buf, sp := beginMessage(dst, 't')
	buf = pgio.AppendUint16(buf, uint16(len(src.ParameterOIDs)))
	for _, oid := range src.ParameterOIDs {
		buf = pgio.AppendInt32(buf, oid)
	}
	return finishMessage(buf, sp)
}
