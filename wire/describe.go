package wire

import "bytes"

// Describe kinds.
const (
	DescribeStatement = 'S'
	DescribePortal     = 'P'
)

// Describe asks the backend to send back the parameter and result metadata
// for a prepared statement or portal.
type Describe struct {
	ObjectType byte // 'S' or 'P'
	Name       string
}

func (*Describe) Frontend() {}

func (dst *Describe) Decode(src []byte) error {
	if len(src) < 1 {
		return &invalidMessageFormatErr{messageType: "Describe"}
	}
	dst.ObjectType = src[0]

	idx := bytes.IndexByte(src[1:], 0)
	if idx < 0 {
		return &invalidMessageFormatErr{messageType: "Describe", details: "name"}
	}
	dst.Name = string(src[1 : 1+idx])
	return nil
}

func (src *Describe) Encode(dst []byte) []byte {
	dst, sp := beginMessage(dst, 'D')
	dst = append(dst, src.ObjectType)
	dst = append(dst, src.Name...)
	dst = append(dst, 0)
	return finishMessage(dst, sp)
}
