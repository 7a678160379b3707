package group

import (
	"crypto/elliptic"
	"fmt"
	"math/big"

	"filippo.io/nistec"

	"github.com/weaveiot/spake2p/primitives"
)

// P256Group implements Group over the NIST P-256 curve using
// filippo.io/nistec for point arithmetic and math/big for the scalar field,
// the same pairing the teacher's PASE implementation uses
// (nistec.NewP256Point() for points, *big.Int reduced mod the curve order
// for scalars).
// FieldElementLength and PointLength mirror the top-level package's
// constants of the same name (kP256_FE_Length / kP256_Point_Length in the
// original header); duplicated here rather than imported to avoid an
// import cycle between this package and the state machine that selects it.
const (
	FieldElementLength = 32
	PointLength        = 2*FieldElementLength + 1
)

type P256Group struct {
	order *big.Int
	gx    []byte // uncompressed bytes of the generator
}

// NewP256Group constructs the P-256 arithmetic backend.
func NewP256Group() *P256Group {
	params := elliptic.P256().Params()
	return &P256Group{
		order: new(big.Int).Set(params.N),
		gx:    elliptic.Marshal(params, params.Gx, params.Gy),
	}
}

func (g *P256Group) point(p nistecPoint) Point { return Point{backend: p} }

// nistecPoint is the subset of *nistec.P256Point's method set this package
// relies on; defined so errors surface at the call site rather than via an
// unexported field type mismatch.
type nistecPoint = *nistec.P256Point

func asNistec(p Point) (nistecPoint, error) {
	np, ok := p.backend.(nistecPoint)
	if !ok {
		return nil, fmt.Errorf("group: point from a different backend")
	}
	return np, nil
}

func (g *P256Group) FELoad(in []byte) (FieldElement, error) {
	if len(in) == 0 {
		return FieldElement{}, fmt.Errorf("group: empty field element")
	}
	v := new(big.Int).SetBytes(in)
	v.Mod(v, g.order)
	return FieldElement{v: v}, nil
}

func (g *P256Group) FEWrite(fe FieldElement) ([]byte, error) {
	if fe.v == nil {
		return nil, fmt.Errorf("group: nil field element")
	}
	out := make([]byte, FieldElementLength)
	b := fe.v.Bytes()
	if len(b) > FieldElementLength {
		return nil, fmt.Errorf("group: field element overflow")
	}
	copy(out[FieldElementLength-len(b):], b)
	return out, nil
}

// FEGenerate draws a uniform scalar in [1, q) by rejection sampling on the
// process DRBG, exactly as spec §4.1 requires.
func (g *P256Group) FEGenerate() (FieldElement, error) {
	for {
		raw, err := primitives.DefaultDRBG().GetBytes(FieldElementLength)
		if err != nil {
			return FieldElement{}, err
		}
		v := new(big.Int).SetBytes(raw)
		if v.Sign() != 0 && v.Cmp(g.order) < 0 {
			return FieldElement{v: v}, nil
		}
	}
}

func (g *P256Group) FEMul(a, b FieldElement) (FieldElement, error) {
	if a.v == nil || b.v == nil {
		return FieldElement{}, fmt.Errorf("group: nil field element")
	}
	r := new(big.Int).Mul(a.v, b.v)
	r.Mod(r, g.order)
	return FieldElement{v: r}, nil
}

func (g *P256Group) FENegate(a FieldElement) (FieldElement, error) {
	if a.v == nil {
		return FieldElement{}, fmt.Errorf("group: nil field element")
	}
	r := new(big.Int).Neg(a.v)
	r.Mod(r, g.order)
	return FieldElement{v: r}, nil
}

func (g *P256Group) PointLoad(in []byte) (Point, error) {
	p, err := nistec.NewP256Point().SetBytes(in)
	if err != nil {
		return Point{}, fmt.Errorf("group: invalid point: %w", err)
	}
	if !g.PointIsValid(g.point(p)) {
		return Point{}, fmt.Errorf("group: point is identity or off-curve")
	}
	return g.point(p), nil
}

func (g *P256Group) PointWrite(p Point) ([]byte, error) {
	np, err := asNistec(p)
	if err != nil {
		return nil, err
	}
	b := np.Bytes()
	if len(b) != PointLength {
		return nil, fmt.Errorf("group: point is the identity, has no uncompressed SEC1 encoding")
	}
	return b, nil
}

func (g *P256Group) PointMul(p Point, k FieldElement) (Point, error) {
	np, err := asNistec(p)
	if err != nil {
		return Point{}, err
	}
	if k.v == nil {
		return Point{}, fmt.Errorf("group: nil scalar")
	}
	r, err := nistec.NewP256Point().ScalarMult(np, scalarBytes(k))
	if err != nil {
		return Point{}, fmt.Errorf("group: scalar mult failed: %w", err)
	}
	return g.point(r), nil
}

// PointAddMul returns k1*P1 + k2*P2, computed as two independent scalar
// multiplications followed by an addition. The intermediate k1*P1 or
// k2*P2 may legitimately be the identity (e.g. when a scalar is 0); only
// the final result's validity is the caller's concern, per spec §4.1.
func (g *P256Group) PointAddMul(p1 Point, k1 FieldElement, p2 Point, k2 FieldElement) (Point, error) {
	t1, err := g.PointMul(p1, k1)
	if err != nil {
		return Point{}, err
	}
	t2, err := g.PointMul(p2, k2)
	if err != nil {
		return Point{}, err
	}
	n1, _ := asNistec(t1)
	n2, _ := asNistec(t2)
	return g.point(nistec.NewP256Point().Add(n1, n2)), nil
}

// PointInvert computes -P as (-1 mod q)*P with PointMul, rather than by
// negating the point's coordinates.
func (g *P256Group) PointInvert(p Point) (Point, error) {
	negOne, err := g.FENegate(FieldElement{v: big.NewInt(1)})
	if err != nil {
		return Point{}, err
	}
	return g.PointMul(p, negOne)
}

// PointCofactorMul is a no-op for P-256, whose cofactor is 1 (spec §9 note
// (c)); kept for protocol completeness so callers don't special-case the
// curve.
func (g *P256Group) PointCofactorMul(p Point) (Point, error) {
	return p, nil
}

// PointIsValid reports whether p is on-curve and not the identity. Every
// point produced by PointLoad/PointMul/PointAddMul already went through
// nistec's own curve check; the identity cannot be represented in
// uncompressed SEC1 form (0x04 || X || Y), so a point only fails this
// check if an intermediate computation collapsed to infinity, which
// nistec.Bytes() reports as a length-1 encoding.
func (g *P256Group) PointIsValid(p Point) bool {
	np, err := asNistec(p)
	if err != nil {
		return false
	}
	return len(np.Bytes()) == PointLength
}

func (g *P256Group) Generator() Point {
	p, err := nistec.NewP256Point().SetBytes(g.gx)
	if err != nil {
		panic("group: generator is not a valid point: " + err.Error())
	}
	return g.point(p)
}

func (g *P256Group) ComputeL(w1 FieldElement) (Point, error) {
	return g.PointMul(g.Generator(), w1)
}

func scalarBytes(k FieldElement) []byte {
	out := make([]byte, FieldElementLength)
	b := k.v.Bytes()
	copy(out[FieldElementLength-len(b):], b)
	return out
}

