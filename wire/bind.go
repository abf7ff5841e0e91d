package wire

import (
	"bytes"
	"encoding/binary"

	"github.com/jec/moses-pg/internal/pgio"
)

// Bind is the extended-query message that binds parameter values to a
// prepared statement, producing a portal.
type Bind struct {
	DestinationPortal    string
	PreparedStatement    string
	ParameterFormatCodes []int16
	Parameters           [][]byte
	ResultFormatCodes    []int16
}

func (*Bind) Frontend() {}

func (dst *Bind) Decode(src []byte) error {
	*dst = Bind{}

	idx := bytes.IndexByte(src, 0)
	if idx < 0 {
		return &invalidMessageFormatErr{messageType: "Bind", details: "portal"}
	}
	dst.DestinationPortal = string(src[:idx])
	rp := idx + 1

	idx = bytes.IndexByte(src[rp:], 0)
	if idx < 0 {
		return &invalidMessageFormatErr{messageType: "Bind", details: "statement"}
	}
	dst.PreparedStatement = string(src[rp : rp+idx])
	rp += idx + 1

	if len(src[rp:]) < 2 {
		return &invalidMessageFormatErr{messageType: "Bind", details: "parameter format count"}
	}
	pfc := int(binary.BigEndian.Uint16(src[rp:]))
	rp += 2

	if pfc > 0 {
		dst.ParameterFormatCodes = make([]int16, pfc)
		if len(src[rp:]) < pfc*2 {
			return &invalidMessageFormatErr{messageType: "Bind", details: "parameter format codes"}
		}
		for i := 0; i < pfc; i++ {
			dst.ParameterFormatCodes[i] = int16(binary.BigEndian.Uint16(src[rp:]))
			rp += 2
		}
	}

	if len(src[rp:]) < 2 {
		return &invalidMessageFormatErr{messageType: "Bind", details: "parameter count"}
	}
	pc := int(binary.BigEndian.Uint16(src[rp:]))
	rp += 2

	if pc > 0 {
		dst.Parameters = make([][]byte, pc)
		for i := 0; i < pc; i++ {
			if len(src[rp:]) < 4 {
				return &invalidMessageFormatErr{messageType: "Bind", details: "parameter length"}
			}
			size := int(int32(binary.BigEndian.Uint32(src[rp:])))
			rp += 4

			if size == -1 {
				continue
			}
			if len(src[rp:]) < size {
				return &invalidMessageFormatErr{messageType: "Bind", details: "parameter value"}
			}
			dst.Parameters[i] = src[rp : rp+size]
			rp += size
		}
	}

	if len(src[rp:]) < 2 {
		return &invalidMessageFormatErr{messageType: "Bind", details: "result format count"}
	}
	rfc := int(binary.BigEndian.Uint16(src[rp:]))
	rp += 2

	dst.ResultFormatCodes = make([]int16, rfc)
	if len(src[rp:]) < rfc*2 {
		return &invalidMessageFormatErr{messageType: "Bind", details: "result format codes"}
	}
	for i := 0; i < rfc; i++ {
		dst.ResultFormatCodes[i] = int16(binary.BigEndian.Uint16(src[rp:]))
		rp += 2
	}

	return nil
}

func (src *Bind) Encode(dst []byte) []byte {
	dst, sp := beginMessage(dst, 'B')

	dst = append(dst, src.DestinationPortal...)
	dst = append(dst, 0)
	dst = append(dst, src.PreparedStatement...)
	dst = append(dst, 0)

	dst = pgio.AppendUint16(dst, uint16(len(src.ParameterFormatCodes)))
	for _, fc := range src.ParameterFormatCodes {
		dst = pgio.AppendInt16(dst, fc)
	}

	dst = pgio.AppendUint16(dst, uint16(len(src.Parameters)))
	for _, p := range src.Parameters {
		if p == nil {
			dst = pgio.AppendInt32(dst, -1)
			continue
		}
		dst = pgio.AppendInt32(dst, int32(len(p)))
		dst = append(dst, p...)
	}

	dst = pgio.AppendUint16(dst, uint16(len(src.ResultFormatCodes)))
	for _, fc := range src.ResultFormatCodes {
		dst = pgio.AppendInt16(dst, fc)
	}

	return finishMessage(dst, sp)
}

// ValidateFormatCodes checks the Bind-encoding rule from the protocol: each
// format code must be 0 (text) or 1 (binary), and a format-code slice must
// either be empty, a single shared code, or exactly one code per value.
func ValidateFormatCodes(codes []int16, valueCount int) error {
	for _, fc := range codes {
		if fc != 0 && fc != 1 {
			return &invalidMessageFormatErr{messageType: "Bind", details: "format code must be 0 or 1"}
		}
	}
	if len(codes) != 0 && len(codes) != 1 && len(codes) != valueCount {
		return &invalidMessageFormatErr{messageType: "Bind", details: "format code count must be 0, 1, or match value count"}
	}
	return nil
}
