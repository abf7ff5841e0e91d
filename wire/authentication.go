package wire

import (
	"encoding/binary"
	"fmt"

	"github.com/jec/moses-pg/internal/pgio"
)

// Authentication request kinds, dispatched from the first uint32 of an 'R'
// message's payload.
const (
	AuthTypeOk          = 0
	AuthTypeKerberosV5  = 2
	AuthTypeCleartext   = 3
	AuthTypeMD5         = 5
	AuthTypeSCM         = 6
	AuthTypeGSS         = 7
	AuthTypeGSSContinue = 8
	AuthTypeSSPI        = 9
)

// Authentication is the single tagged-variant form of every AuthenticationXXX
// backend message: the Type field selects which payload is meaningful.
type Authentication struct {
	Type uint32

	// Salt is populated for AuthTypeMD5.
	Salt [4]byte

	// AuthData carries the remaining bytes for AuthTypeGSSContinue; it is
	// unused for every other type.
	AuthData []byte
}

func (*Authentication) Backend() {}

func (dst *Authentication) Decode(src []byte) error {
	if len(src) < 4 {
		return &invalidMessageFormatErr{messageType: "Authentication"}
	}
	dst.Type = binary.BigEndian.Uint32(src[:4])
	dst.Salt = [4]byte{}
	dst.AuthData = nil

	switch dst.Type {
	case AuthTypeOk, AuthTypeCleartext, AuthTypeKerberosV5, AuthTypeSCM, AuthTypeGSS, AuthTypeSSPI:
		// no further payload
	case AuthTypeMD5:
		if len(src) < 8 {
			return &invalidMessageFormatErr{messageType: "Authentication", details: "md5 salt"}
		}
		copy(dst.Salt[:], src[4:8])
	case AuthTypeGSSContinue:
		dst.AuthData = append([]byte(nil), src[4:]...)
	default:
		return fmt.Errorf("wire: unknown authentication type: %d", dst.Type)
	}

	return nil
}

func (src *Authentication) Encode(dst []byte) []byte {
	buf, sp := beginMessage(dst, 'R')
	buf = pgio.AppendUint32(buf, src.Type)

	switch src.Type {
	case AuthTypeMD5:
		buf = append(buf, src.Salt[:]...)
	case AuthTypeGSSContinue:
		buf = append(buf, src.AuthData...)
	}

	return finishMessage(buf, sp)
}
