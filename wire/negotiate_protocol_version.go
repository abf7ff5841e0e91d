package wire

import (
	"encoding/binary"

	"github.com/jec/moses-pg/internal/pgio"
)

// NegotiateProtocolVersion is sent instead of the normal authentication
// handshake when the server doesn't support the requested minor protocol
// version or one of the requested startup parameters. This engine has no
// use for the downgrade (it speaks exactly 3.0) — receiving one is treated
// as a connection failure, the same as any other unsupported handshake
// response. See SPEC_FULL.md §4.10.2.
type NegotiateProtocolVersion struct {
	NewestMinorProtocol uint32
	UnrecognizedOptions []string
}

func (*NegotiateProtocolVersion) Backend() {}

func (dst *NegotiateProtocolVersion) Decode(src []byte) error {
	if len(src) < 8 {
		return &invalidMessageLenErr{messageType: "NegotiateProtocolVersion", expectedLen: 8, actualLen: len(src)}
	}
	dst.NewestMinorProtocol = binary.BigEndian.Uint32(src[:4])
	n := int(binary.BigEndian.Uint32(src[4:8]))

	rp := 8
	dst.UnrecognizedOptions = make([]string, 0, n)
	for i := 0; i < n; i++ {
		end := rp
		for end < len(src) && src[end] != 0 {
			end++
		}
		if end >= len(src) {
			return &invalidMessageFormatErr{messageType: "NegotiateProtocolVersion"}
		}
		dst.UnrecognizedOptions = append(dst.UnrecognizedOptions, string(src[rp:end]))
		rp = end + 1
	}

	return nil
}

func (src *NegotiateProtocolVersion) Encode(dst []byte) []byte {
	buf, sp := beginMessage(dst, 'v')
	buf = pgio.AppendUint32(buf, src.NewestMinorProtocol)
	buf = pgio.AppendUint32(buf, uint32(len(src.UnrecognizedOptions)))
	for _, opt := range src.UnrecognizedOptions {
		buf = append(buf, opt...)
		buf = append(buf, 0)
	}
	return finishMessage(buf, sp)
}
