package primitives

import (
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"

	"github.com/weaveiot/spake2p/errs"
)

// PBKDF2SHA256 derives length bytes from password using PBKDF2-HMAC-SHA256,
// the KDF the SPAKE2+ setup code uses to turn a shared passcode into w0s
// and w1s seed material. Per spec §4.5 the only accepted parameters are an
// iteration count of at least 1 and a positive output length; no salt
// length floor is imposed here.
func PBKDF2SHA256(password, salt []byte, iterations, length int) ([]byte, error) {
	if iterations < 1 {
		return nil, errs.New("PBKDF2SHA256", errs.InvalidArgument, nil)
	}
	if length <= 0 {
		return nil, errs.New("PBKDF2SHA256", errs.InvalidArgument, nil)
	}
	return pbkdf2.Key(password, salt, iterations, length, sha256.New), nil
}
