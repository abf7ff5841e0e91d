package wire

import (
	"bytes"
	"encoding/binary"
)

// ProtocolVersionNumber is 3.0 encoded as the protocol does: major in the
// high 16 bits, minor in the low 16 bits.
const ProtocolVersionNumber = 3 << 16

// StartupMessage is the very first message a client sends. It carries no
// type byte — only a length prefix — and is detected by context rather
// than by a registry lookup (see the Connection Façade, which is the only
// caller ever in a position to expect one).
type StartupMessage struct {
	ProtocolVersion uint32
	Parameters      map[string]string
}

func (*StartupMessage) Frontend() {}

func (dst *StartupMessage) Decode(src []byte) error {
	if len(src) < 4 {
		return &invalidMessageFormatErr{messageType: "StartupMessage"}
	}
	dst.ProtocolVersion = binary.BigEndian.Uint32(src)
	dst.Parameters = make(map[string]string)

	rp := 4
	for rp < len(src) && src[rp] != 0 {
		idx := bytes.IndexByte(src[rp:], 0)
		if idx < 0 {
			return &invalidMessageFormatErr{messageType: "StartupMessage", details: "key"}
		}
		key := string(src[rp : rp+idx])
		rp += idx + 1

		idx = bytes.IndexByte(src[rp:], 0)
		if idx < 0 {
			return &invalidMessageFormatErr{messageType: "StartupMessage", details: "value"}
		}
		value := string(src[rp : rp+idx])
		rp += idx + 1

		dst.Parameters[key] = value
	}

	return nil
}

// Encode serializes the message. StartupMessage.Parameters is emitted in Go
// map iteration order, which is not stable, so callers that care about
// wire-exact output
// (e.g. the §6 literal test vectors) should use EncodeOrdered instead.
func (src *StartupMessage) Encode(dst []byte) []byte {
	buf, sp := beginUntypedMessage(dst)
	buf = binary.BigEndian.AppendUint32(buf, src.ProtocolVersion)
	for k, v := range src.Parameters {
		buf = append(buf, k...)
		buf = append(buf, 0)
		buf = append(buf, v...)
		buf = append(buf, 0)
	}
	buf = append(buf, 0)
	return finishMessage(buf, sp)
}

// EncodeOrdered serializes the message with parameters written in the
// given key order (user, then database, then anything else), matching the
// byte-exact StartupMessage example in the protocol reference.
func EncodeOrdered(dst []byte, protocolVersion uint32, user, database string, extra map[string]string) []byte {
	buf, sp := beginUntypedMessage(dst)
	buf = binary.BigEndian.AppendUint32(buf, protocolVersion)

	buf = append(buf, "user"...)
	buf = append(buf, 0)
	buf = append(buf, user...)
	buf = append(buf, 0)

	if database != "" {
		buf = append(buf, "database"...)
		buf = append(buf, 0)
		buf = append(buf, database...)
		buf = append(buf, 0)
	}

	for k, v := range extra {
		buf = append(buf, k...)
		buf = append(buf, 0)
		buf = append(buf, v...)
		buf = append(buf, 0)
	}

	buf = append(buf, 0)
	return finishMessage(buf, sp)
}
