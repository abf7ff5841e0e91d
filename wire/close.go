package wire

import "bytes"

// Close asks the backend to close a named portal or prepared statement.
type Close struct {
	ObjectType byte // 'S' or 'P'
	Name       string
}

func (*Close) Frontend() {}

func (dst *Close) Decode(src []byte) error {
	if len(src) < 1 {
		return &invalidMessageFormatErr{messageType: "Close"}
	}
	dst.ObjectType = src[0]

	idx := bytes.IndexByte(src[1:], 0)
	if idx < 0 {
		return &invalidMessageFormatErr{messageType: "Close", details: "name"}
	}
	dst.Name = string(src[1 : 1+idx])
	return nil
}

func (src *Close) Encode(dst []byte) []byte {
	dst, sp := beginMessage(dst, 'C')
	dst = append(dst, src.ObjectType)
	dst = append(dst, src.Name...)
	dst = append(dst, 0)
	return finishMessage(dst, sp)
}
