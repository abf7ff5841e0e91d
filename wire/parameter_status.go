package wire

import "bytes"

// ParameterStatus reports a run-time server parameter (e.g. "server_version",
// "TimeZone") at startup and whenever it changes.
type ParameterStatus struct {
	Name  string
	Value string
}

func (*ParameterStatus) Backend() {}

func (dst *ParameterStatus) Decode(src []byte) error {
	idx := bytes.IndexByte(src, 0)
	if idx < 0 {
		return &invalidMessageFormatErr{messageType: "ParameterStatus", details: "name"}
	}
	dst.Name = string(src[:idx])
	rp := idx + 1

	idx = bytes.IndexByte(src[rp:], 0)
	if idx < 0 {
		return &invalidMessageFormatErr{messageType: "ParameterStatus", details: "value"}
	}
	dst.Value = string(src[rp : rp+idx])
	return nil
}

func (src *ParameterStatus) Encode(dst []byte) []byte {
	buf, sp := beginMessage(dst, 'S')
	buf = append(buf, src.Name...)
	buf = append(buf, 0)
	buf = append(buf, src.Value...)
	buf = append(buf, 0)
	return finishMessage(buf, sp)
}
