package wire

import "bytes"

// Query is the Simple Query frontend message.
type Query struct {
	SQL string
}

func (*Query) Frontend() {}

func (dst *Query) Decode(src []byte) error {
	idx := bytes.IndexByte(src, 0)
	if idx < 0 {
		return &invalidMessageFormatErr{messageType: "Query"}
	}
	dst.SQL = string(src[:idx])
	return nil
}

func (src *Query) Encode(dst []byte) []byte {
	dst, sp := beginMessage(dst, 'Q')
	dst = append(dst, src.SQL...)
	dst = append(dst, 0)
	return finishMessage(dst, sp)
}
