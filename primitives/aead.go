package primitives

import (
	"crypto/aes"

	"github.com/tom-code/gomat/ccm"

	"github.com/weaveiot/spake2p/errs"
)

// AEADTagLength is the AES-CCM tag size the teacher's CASE session
// transport uses (ccm.NewCCM(block, 16, len(nonce))).
const AEADTagLength = 16

// AEADEncrypt seals plaintext under key (16 bytes, AES-128) with nonce and
// associated data aad, using AES-CCM exactly as the teacher's Sigma2/Sigma3
// encryption does.
func AEADEncrypt(key, nonce, plaintext, aad []byte) ([]byte, error) {
	aead, err := newCCM(key, len(nonce))
	if err != nil {
		return nil, err
	}
	return aead.Seal(nil, nonce, plaintext, aad), nil
}

// AEADDecrypt opens ciphertext under key with nonce and aad, returning
// IntegrityCheckFailed if the tag does not verify.
func AEADDecrypt(key, nonce, ciphertext, aad []byte) ([]byte, error) {
	aead, err := newCCM(key, len(nonce))
	if err != nil {
		return nil, err
	}
	pt, err := aead.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, errs.New("AEADDecrypt", errs.IntegrityCheckFailed, err)
	}
	return pt, nil
}

func newCCM(key []byte, nonceLen int) (cipherAEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errs.New("newCCM", errs.InvalidArgument, err)
	}
	aead, err := ccm.NewCCM(block, AEADTagLength, nonceLen)
	if err != nil {
		return nil, errs.New("newCCM", errs.InternalError, err)
	}
	return aead, nil
}

// cipherAEAD is the subset of cipher.AEAD this package relies on; named
// locally so callers don't need to import crypto/cipher just to hold the
// return value.
type cipherAEAD interface {
	Seal(dst, nonce, plaintext, additionalData []byte) []byte
	Open(dst, nonce, ciphertext, additionalData []byte) ([]byte, error)
}
