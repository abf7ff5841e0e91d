package wire

import (
	"encoding/binary"

	"github.com/jec/moses-pg/internal/pgio"
)

// FunctionCallResponse answers the legacy fastpath function-call protocol.
// No fastpath API is exposed by this engine (see SPEC_FULL.md §4.10.2); the
// decode exists only so the codec stays total over every message the wire
// can legally produce.
type FunctionCallResponse struct {
	Result []byte
}

func (*FunctionCallResponse) Backend() {}

func (dst *FunctionCallResponse) Decode(src []byte) error {
	if len(src) < 4 {
		return &invalidMessageFormatErr{messageType: "FunctionCallResponse"}
	}
	size := int(int32(binary.BigEndian.Uint32(src)))
	if size == -1 {
		dst.Result = nil
		return nil
	}
	if len(src[4:]) < size {
		return &invalidMessageFormatErr{messageType: "FunctionCallResponse", details: "result"}
	}
	dst.Result = src[4 : 4+size]
	return nil
}

func (src *FunctionCallResponse) Encode(dst []byte) []byte {
	buf, sp := beginMessage(dst, 'V')
	if src.Result == nil {
		buf = pgio.AppendInt32(buf, -1)
	} else {
		buf = pgio.AppendInt32(buf, int32(len(src.Result)))
		buf = append(buf, src.Result...)
	}
	return finishMessage(buf, sp)
}
