// Package transcript builds the length-prefixed byte string TT that the
// SPAKE2+ state machine hashes into the transcript key (spec §4.3). Each
// field is framed as an 8-byte little-endian length followed by its raw
// bytes, mirroring the teacher's appendLengthAndValue helper in pase.go,
// generalized into a standalone builder that checks the field count.
package transcript

import (
	"encoding/binary"

	"github.com/weaveiot/spake2p/errs"
)

// Builder accumulates TT's length-prefixed fields in the fixed order
// spec §4.3 requires: context, idProver, idVerifier, M, N, pA, pB, Z, V,
// w0. A Builder is single-use; call New for each transcript.
type Builder struct {
	buf  []byte
	next int
}

// fieldCount is the number of TT fields, used only to validate Sum.
const fieldCount = 10

// New returns an empty Builder.
func New() *Builder {
	return &Builder{buf: make([]byte, 0, 512)}
}

// Append frames field with an 8-byte little-endian length prefix and adds
// it to the transcript, in whatever order the caller appends fields.
// Callers are expected to append in the exact spec §4.3 order; Builder
// does not itself enforce field identity, only that Sum sees all of them.
func (b *Builder) Append(field []byte) *Builder {
	var lenBuf [8]byte
	binary.LittleEndian.PutUint64(lenBuf[:], uint64(len(field)))
	b.buf = append(b.buf, lenBuf[:]...)
	b.buf = append(b.buf, field...)
	b.next++
	return b
}

// Sum returns the raw concatenated, length-prefixed transcript bytes TT.
// It does not hash; spec §4.3 hashes TT with hashkit.Sum256. Sum fails
// unless exactly the ten required fields (context, A, B, M, N, pA, pB, Z,
// V, w0) were appended.
func (b *Builder) Sum() ([]byte, error) {
	if b.next != fieldCount {
		return nil, errs.New("Sum", errs.InvalidArgument, nil)
	}
	return b.buf, nil
}

// Bytes returns whatever has been appended so far without the
// fieldCount check, for callers (such as tests) that want partial
// transcripts.
func (b *Builder) Bytes() []byte {
	return b.buf
}
