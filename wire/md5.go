package wire

import (
	"crypto/md5"
	"encoding/hex"
)

func hexMD5(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// MD5Password computes the "md5" + hex(md5(hex(md5(password+user))+salt))
// response required by AuthTypeMD5.
func MD5Password(user, password string, salt [4]byte) string {
	return "md5" + hexMD5(hexMD5(password+user)+string(salt[:]))
}
