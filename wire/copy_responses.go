package wire

import (
	"encoding/binary"

	"github.com/jec/moses-pg/internal/pgio"
)

// copyResponse is the shared shape of CopyInResponse, CopyOutResponse and
// CopyBothResponse: an overall format byte followed by one format code per
// column. COPY streaming itself is out of scope (see SPEC_FULL.md
// §4.10.2); these exist only so the codec never chokes on a legal backend
// message, matching the teacher's own dispatch table completeness.
type copyResponse struct {
	OverallFormat     int8
	ColumnFormatCodes []int16
}

func decodeCopyResponse(dst *copyResponse, src []byte) error {
	if len(src) < 3 {
		return &invalidMessageFormatErr{messageType: "CopyResponse"}
	}
	dst.OverallFormat = int8(src[0])
	n := int(binary.BigEndian.Uint16(src[1:3]))

	rp := 3
	if len(src[rp:]) < n*2 {
		return &invalidMessageFormatErr{messageType: "CopyResponse", details: "column format codes"}
	}
	dst.ColumnFormatCodes = make([]int16, n)
	for i := 0; i < n; i++ {
		dst.ColumnFormatCodes[i] = int16(binary.BigEndian.Uint16(src[rp:]))
		rp += 2
	}
	return nil
}

func encodeCopyResponse(dst []byte, typeByte byte, src copyResponse) []byte {
	buf, sp := beginMessage(dst, typeByte)
	buf = append(buf, byte(src.OverallFormat))
	buf = pgio.AppendUint16(buf, uint16(len(src.ColumnFormatCodes)))
	for _, fc := range src.ColumnFormatCodes {
		buf = pgio.AppendInt16(buf, fc)
	}
	return finishMessage(buf, sp)
}

type CopyInResponse struct{ copyResponse }

func (*CopyInResponse) Backend() {}
func (dst *CopyInResponse) Decode(src []byte) error { return decodeCopyResponse(&dst.copyResponse, src) }
func (src *CopyInResponse) Encode(dst []byte) []byte {
	return encodeCopyResponse(dst, 'G', src.copyResponse)
}

type CopyOutResponse struct{ copyResponse }

func (*CopyOutResponse) Backend() {}
func (dst *CopyOutResponse) Decode(src []byte) error {
	return decodeCopyResponse(&dst.copyResponse, src)
}
func (src *CopyOutResponse) Encode(dst []byte) []byte {
	return encodeCopyResponse(dst, 'H', src.copyResponse)
}

type CopyBothResponse struct{ copyResponse }

func (*CopyBothResponse) Backend() {}
func (dst *CopyBothResponse) Decode(src []byte) error {
	return decodeCopyResponse(&dst.copyResponse, src)
}
func (src *CopyBothResponse) Encode(dst []byte) []byte {
	return encodeCopyResponse(dst, 'W', src.copyResponse)
}
