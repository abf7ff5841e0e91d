package wire

import (
	"encoding/binary"

	"github.com/jec/moses-pg/internal/pgio"
)

// BackendKeyData carries the process ID and secret key used to build a
// CancelRequest on a separate connection.
type BackendKeyData struct {
	ProcessID uint32
	SecretKey uint32
}

func (*BackendKeyData) Backend() {}

func (dst *BackendKeyData) Decode(src []byte) error {
	if len(src) != 8 {
		return &invalidMessageLenErr{messageType: "BackendKeyData", expectedLen: 8, actualLen: len(src)}
	}
	dst.ProcessID = binary.BigEndian.Uint32(src[:4])
	dst.SecretKey = binary.BigEndian.Uint32(src[4:8])
	return nil
}

func (src *BackendKeyData) Encode(dst []byte) []byte {
	buf, sp := beginMessage(dst, 'K')
	buf = pgio.AppendUint32(buf, src.ProcessID)
	buf = pgio.AppendUint32(buf, src.SecretKey)
	return finishMessage(buf, sp)
}
