package wire

import "bytes"

// PasswordMessage carries a cleartext password or an MD5-hashed password
// (prefixed "md5"), depending on what authentication step prompted it. The
// password is encoded as a NUL-terminated string.
type PasswordMessage struct {
	Password string
}

func (*PasswordMessage) Frontend() {}

func (dst *PasswordMessage) Decode(src []byte) error {
	idx := bytes.IndexByte(src, 0)
	if idx < 0 {
		return &invalidMessageFormatErr{messageType: "PasswordMessage"}
	}
	dst.Password = string(src[:idx])
	return nil
}

func (src *PasswordMessage) Encode(dst []byte) []byte {
	dst, sp := beginMessage(dst, 'p')
	dst = append(dst, src.Password...)
	dst = append(dst, 0)
	return finishMessage(dst, sp)
}
