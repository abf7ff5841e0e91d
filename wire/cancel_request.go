package wire

import (
	"encoding/binary"
	"errors"
)

// cancelRequestCode is the magic code 80877102 (0x04D2162E) that identifies
// a CancelRequest in place of a StartupMessage's protocol version field.
const cancelRequestCode = 80877102

// CancelRequest is sent on a freshly opened, separate connection to ask the
// server to cancel the query in progress on another connection identified
// by ProcessID/SecretKey. Like StartupMessage it carries no type byte.
type CancelRequest struct {
	ProcessID uint32
	SecretKey uint32
}

func (*CancelRequest) Frontend() {}

func (dst *CancelRequest) Decode(src []byte) error {
	if len(src) != 12 {
		return &invalidMessageLenErr{messageType: "CancelRequest", expectedLen: 12, actualLen: len(src)}
	}
	if code := binary.BigEndian.Uint32(src[:4]); code != cancelRequestCode {
		return errors.New("wire: bad cancel request code")
	}
	dst.ProcessID = binary.BigEndian.Uint32(src[4:8])
	dst.SecretKey = binary.BigEndian.Uint32(src[8:12])
	return nil
}

func (src *CancelRequest) Encode(dst []byte) []byte {
	buf, sp := beginUntypedMessage(dst)
	buf = binary.BigEndian.AppendUint32(buf, cancelRequestCode)
	buf = binary.BigEndian.AppendUint32(buf, src.ProcessID)
	buf = binary.BigEndian.AppendUint32(buf, src.SecretKey)
	return finishMessage(buf, sp)
}
