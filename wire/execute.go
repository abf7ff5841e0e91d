package wire

import (
	"bytes"
	"encoding/binary"

	"github.com/jec/moses-pg/internal/pgio"
)

// Execute asks the backend to run a bound portal, returning at most
// MaxRows rows (0 means unlimited).
type Execute struct {
	Portal  string
	MaxRows uint32
}

func (*Execute) Frontend() {}

func (dst *Execute) Decode(src []byte) error {
	idx := bytes.IndexByte(src, 0)
	if idx < 0 {
		return &invalidMessageFormatErr{messageType: "Execute", details: "portal"}
	}
	dst.Portal = string(src[:idx])
	rp := idx + 1

	if len(src[rp:]) < 4 {
		return &invalidMessageFormatErr{messageType: "Execute", details: "max rows"}
	}
	dst.MaxRows = binary.BigEndian.Uint32(src[rp:])
	return nil
}

func (src *Execute) Encode(dst []byte) []byte {
	dst, sp := beginMessage(dst, 'E')
	dst = append(dst, src.Portal...)
	dst = append(dst, 0)
	dst = pgio.AppendUint32(dst, src.MaxRows)
	return finishMessage(dst, sp)
}
