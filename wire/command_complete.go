package wire

import "bytes"

// CommandComplete reports the completion tag of a command, e.g. "INSERT 0
// 1", "SELECT 3", "DELETE 10".
type CommandComplete struct {
	CommandTag string
}

func (*CommandComplete) Backend() {}

func (dst *CommandComplete) Decode(src []byte) error {
	idx := bytes.IndexByte(src, 0)
	if idx < 0 {
		return &invalidMessageFormatErr{messageType: "CommandComplete"}
	}
	dst.CommandTag = string(src[:idx])
	return nil
}

func (src *CommandComplete) Encode(dst []byte) []byte {
	buf, sp := beginMessage(dst, 'C')
	buf = append(buf, src.CommandTag...)
	buf = append(buf, 0)
	return finishMessage(buf, sp)
}
