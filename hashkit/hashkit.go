// Package hashkit is the hash façade consumed by the SPAKE2+ state
// machine and its transcript: one-shot and incremental SHA-256, constant-
// time HMAC-SHA256 verification, and HKDF-SHA256 (spec §4.2). It wraps
// the same standard-library and golang.org/x/crypto primitives the
// teacher uses directly in pase.go's SessionKeys and calc_hash paths.
package hashkit

import (
	"crypto/hmac"
	"crypto/sha256"
	"hash"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/weaveiot/spake2p/errs"
)

// Length is the SHA-256 digest size in bytes.
const Length = sha256.Size

// Sum256 returns the SHA-256 digest of data.
func Sum256(data []byte) [Length]byte {
	return sha256.Sum256(data)
}

// Stream is an incremental SHA-256 context (spec §4.2's Begin/AddData/
// Finish). Calling Begin again on the same Stream resets it, mirroring
// the original header's Hash_SHA256_stream::Begin semantics.
type Stream struct {
	h hash.Hash
}

// NewStream returns a Stream ready for Begin.
func NewStream() *Stream { return &Stream{} }

// Begin (re)initializes the stream, discarding any prior state.
func (s *Stream) Begin() { s.h = sha256.New() }

// AddData feeds data into the running hash. Begin must have been called
// first.
func (s *Stream) AddData(data []byte) error {
	if s.h == nil {
		return errs.New("AddData", errs.InvalidState, nil)
	}
	s.h.Write(data)
	return nil
}

// Finish writes the 32-byte digest into out, which must be at least
// Length bytes.
func (s *Stream) Finish(out []byte) error {
	if s.h == nil {
		return errs.New("Finish", errs.InvalidState, nil)
	}
	if len(out) < Length {
		return errs.New("Finish", errs.BufferTooSmall, nil)
	}
	s.h.Sum(out[:0])
	copy(out, s.h.Sum(nil))
	return nil
}

// HMACSHA256 returns HMAC-SHA256(key, msg).
func HMACSHA256(key, msg []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(msg)
	return mac.Sum(nil)
}

// MacVerify compares the HMAC-SHA256 of msg under key against mac in time
// independent of where the two differ (spec §4.2 and §5's constant-time
// discipline), via crypto/hmac.Equal.
func MacVerify(key, msg, mac []byte) bool {
	return hmac.Equal(HMACSHA256(key, msg), mac)
}

// HKDFSHA256 derives length bytes from ikm per RFC 5869. An empty salt is
// treated as 32 zero bytes by the underlying hkdf.Extract call, and info
// may be empty — both as spec §4.2 requires.
func HKDFSHA256(ikm, salt, info []byte, length int) ([]byte, error) {
	kdf := hkdf.New(sha256.New, ikm, salt, info)
	out := make([]byte, length)
	if _, err := io.ReadFull(kdf, out); err != nil {
		return nil, errs.New("HKDFSHA256", errs.InternalError, err)
	}
	return out, nil
}
