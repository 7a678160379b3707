// Package group defines the arithmetic façade the SPAKE2+ state machine is
// built against (spec §4.1, §9's "virtual dispatch" re-architected as a
// Go interface), and the P-256 implementation that satisfies it.
//
// FieldElement and Point are ownership-opaque handles over a backend
// representation, following the "owned handles" design note: callers load,
// write, and operate on them only through the Group methods, never by
// reaching into their internals.
package group

import "math/big"

// FieldElement is an integer modulo the group order q, big-endian on the
// wire (spec §3).
type FieldElement struct {
	v *big.Int
}

// Zero reports whether the element is the additive identity.
func (f FieldElement) Zero() bool { return f.v == nil || f.v.Sign() == 0 }

// Zeroize overwrites the element's backing storage. Call before dropping a
// FieldElement that held secret material (spec §5's ClearSecretData).
//
// big.Int.SetInt64(0) only shrinks the Int's word slice length to zero; it
// never overwrites the words still sitting at that backing array's address.
// Bits() returns that backing slice directly (no copy), so we zero every
// word in place before letting go of it.
func (f *FieldElement) Zeroize() {
	if f.v != nil {
		words := f.v.Bits()
		for i := range words {
			words[i] = 0
		}
		f.v.SetInt64(0)
	}
}

// Point is an element of the P-256 group, uncompressed SEC1 on the wire
// (0x04 || X || Y, spec §3).
type Point struct {
	backend any
}

// Group is the capability set the SPAKE2+ state machine requires of its
// arithmetic backend: load/store, random scalar generation, scalar
// multiplication (with and without addition), point inversion, cofactor
// multiplication, validity checking, and the L = w1*G helper (spec §4.1,
// §9). One conforming implementation (P256Group) is selected at
// construction time; the state machine is polymorphic over the interface.
type Group interface {
	// FELoad reduces a big-endian field element mod q.
	FELoad(in []byte) (FieldElement, error)
	// FEWrite renders fe as FieldElementLength big-endian bytes.
	FEWrite(fe FieldElement) ([]byte, error)
	// FEGenerate draws a uniform scalar in [1, q) via rejection sampling.
	FEGenerate() (FieldElement, error)
	// FEMul returns a*b mod q.
	FEMul(a, b FieldElement) (FieldElement, error)
	// FENegate returns -a mod q.
	FENegate(a FieldElement) (FieldElement, error)

	// PointLoad parses an uncompressed SEC1 point, rejecting the identity
	// and off-curve inputs.
	PointLoad(in []byte) (Point, error)
	// PointWrite renders p as PointLength uncompressed SEC1 bytes.
	PointWrite(p Point) ([]byte, error)
	// PointMul returns k*P.
	PointMul(p Point, k FieldElement) (Point, error)
	// PointAddMul returns k1*P1 + k2*P2.
	PointAddMul(p1 Point, k1 FieldElement, p2 Point, k2 FieldElement) (Point, error)
	// PointInvert returns -P.
	PointInvert(p Point) (Point, error)
	// PointCofactorMul returns h*P where h is the curve cofactor (1 for
	// P-256; present for protocol completeness per spec §9 note (c)).
	PointCofactorMul(p Point) (Point, error)
	// PointIsValid reports whether p is on-curve and not the identity.
	PointIsValid(p Point) bool

	// Generator returns the curve base point G.
	Generator() Point
	// ComputeL returns w1*G, the value an accessory stores in place of w1.
	ComputeL(w1 FieldElement) (Point, error)
}
