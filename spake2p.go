// Package spake2p implements the SPAKE2+ password-authenticated key
// exchange state machine bound to P-256/SHA-256/HMAC/HKDF (spec §1, §4.4).
//
// A caller runs PBKDF2 on a shared passcode upstream to obtain (w0, w1),
// provisions the accessory with L = w1*G, and drives a Spake2p instance
// through Init, BeginProver/BeginVerifier, ComputeRoundOne,
// ComputeRoundTwo and KeyConfirm before reading the shared key out of
// GetKeys. See group, hashkit, transcript and primitives for the
// façades this state machine is built on.
package spake2p

import (
	"github.com/weaveiot/spake2p/errs"
	"github.com/weaveiot/spake2p/group"
	"github.com/weaveiot/spake2p/hashkit"
	"github.com/weaveiot/spake2p/primitives"
	"github.com/weaveiot/spake2p/transcript"
)

// Phase is the instance's position in its strictly monotonic lifecycle
// (spec §3): PREINIT -> INIT -> STARTED -> R1 -> R2 -> KC. Calling an
// operation out of phase returns InvalidState and leaves the instance's
// phase unchanged — see DESIGN.md for why this implementation follows
// the state table of spec §4.4 literally rather than the "poisoned
// instance" language of spec §8 scenario 5.
type Phase int

const (
	PhasePreinit Phase = iota
	PhaseInit
	PhaseStarted
	PhaseR1
	PhaseR2
	PhaseKC
)

func (p Phase) String() string {
	switch p {
	case PhasePreinit:
		return "PREINIT"
	case PhaseInit:
		return "INIT"
	case PhaseStarted:
		return "STARTED"
	case PhaseR1:
		return "R1"
	case PhaseR2:
		return "R2"
	case PhaseKC:
		return "KC"
	default:
		return "UNKNOWN"
	}
}

// Role distinguishes the commissioner, who holds the passcode directly
// (w0, w1), from the accessory, who holds only w0 and the verifier point
// L = w1*G (spec §3).
type Role int

const (
	RoleProver Role = iota
	RoleVerifier
)

func (r Role) String() string {
	if r == RoleVerifier {
		return "verifier"
	}
	return "prover"
}

// confirmationKeysInfo is the HKDF info string spec §4.3 specifies for
// deriving Kca||Kcb from Ka.
const confirmationKeysInfo = "ConfirmationKeys"

// Spake2p is the SPAKE2+ state machine (spec §4.4): it owns the role,
// phase, secret scalars (w0 on both roles, w1 on the prover, L on the
// verifier), the per-exchange random scalar, the round-one points, the
// transcript inputs and the derived key schedule (Ka, Ke, Kca, Kcb). An
// instance is single-use and owned exclusively by its caller for the
// duration of one exchange (spec §5); calling Init again resets it.
type Spake2p struct {
	grp group.Group

	phase Phase
	role  Role

	ctx        []byte
	idProver   []byte
	idVerifier []byte

	m, n group.Point // normative SPAKE2+ blinding constants (spec §6)

	w0 group.FieldElement
	w1 group.FieldElement // prover only
	l  group.Point        // verifier only

	xy group.FieldElement // x for the prover, y for the verifier

	x, y group.Point // pA (prover's round-one output), pB (verifier's)
	z, v group.Point

	ka, ke, kca, kcb []byte
}

// NewP256 constructs a Spake2p instance bound to the P-256 arithmetic
// façade and loaded with the normative M, N constants of spec §6 — the
// "P-256/SHA-256/HKDF/HMAC binding" component of spec §2 item 5.
func NewP256() *Spake2p {
	g := group.NewP256Group()
	m, err := g.PointLoad(spake2pMP256)
	if err != nil {
		panic("spake2p: built-in M constant does not load: " + err.Error())
	}
	n, err := g.PointLoad(spake2pNP256)
	if err != nil {
		panic("spake2p: built-in N constant does not load: " + err.Error())
	}
	return &Spake2p{grp: g, m: m, n: n, phase: PhasePreinit}
}

// Phase reports the instance's current phase.
func (s *Spake2p) Phase() Phase { return s.phase }

// Role reports the role most recently set by BeginProver/BeginVerifier.
// It is meaningless before the first successful Begin call.
func (s *Spake2p) Role() Role { return s.role }

// Init resets the instance to INIT and stores context for later
// transcript insertion (spec §4.4). Calling Init again — including after
// reaching KC — restores phase=INIT and erases any prior key schedule
// (spec §8 scenario 6); this is the instance's only reset path.
func (s *Spake2p) Init(context []byte) error {
	s.ClearSecretData()
	s.ctx = cloneBytes(context)
	s.idProver = nil
	s.idVerifier = nil
	s.x = group.Point{}
	s.y = group.Point{}
	s.phase = PhaseInit
	return nil
}

// BeginVerifier moves the instance from INIT to STARTED in the verifier
// role: it loads w0 and the verifier point L = w1*G, and stores the
// prover's and verifier's identities (spec §4.4). idA and idB may be
// empty.
func (s *Spake2p) BeginVerifier(idB, idA, w0in, lIn []byte) error {
	if s.phase != PhaseInit {
		return errs.New("BeginVerifier", errs.InvalidState, nil)
	}
	w0, err := s.grp.FELoad(w0in)
	if err != nil {
		return errs.New("BeginVerifier", errs.InvalidArgument, err)
	}
	l, err := s.grp.PointLoad(lIn)
	if err != nil {
		return errs.New("BeginVerifier", errs.InvalidArgument, err)
	}
	s.w0 = w0
	s.l = l
	s.idProver = cloneBytes(idA)
	s.idVerifier = cloneBytes(idB)
	s.role = RoleVerifier
	s.phase = PhaseStarted
	return nil
}

// BeginProver moves the instance from INIT to STARTED in the prover
// role: it loads w0 and w1, and stores identities (spec §4.4).
func (s *Spake2p) BeginProver(idA, idB, w0in, w1in []byte) error {
	if s.phase != PhaseInit {
		return errs.New("BeginProver", errs.InvalidState, nil)
	}
	w0, err := s.grp.FELoad(w0in)
	if err != nil {
		return errs.New("BeginProver", errs.InvalidArgument, err)
	}
	w1, err := s.grp.FELoad(w1in)
	if err != nil {
		return errs.New("BeginProver", errs.InvalidArgument, err)
	}
	s.w0 = w0
	s.w1 = w1
	s.idProver = cloneBytes(idA)
	s.idVerifier = cloneBytes(idB)
	s.role = RoleProver
	s.phase = PhaseStarted
	return nil
}

// ComputeRoundOne generates the per-exchange random scalar and emits the
// local round-one point: pA = x*G + w0*M for the prover, pB = y*G + w0*N
// for the verifier (spec §4.4). The returned slice is PointLength bytes.
func (s *Spake2p) ComputeRoundOne() ([]byte, error) {
	if s.phase != PhaseStarted {
		return nil, errs.New("ComputeRoundOne", errs.InvalidState, nil)
	}
	xy, err := s.grp.FEGenerate()
	if err != nil {
		s.ClearSecretData()
		return nil, errs.New("ComputeRoundOne", errs.InternalError, err)
	}
	g := s.grp.Generator()

	blindingPoint := s.n
	if s.role == RoleProver {
		blindingPoint = s.m
	}
	p, err := s.grp.PointAddMul(g, xy, blindingPoint, s.w0)
	if err != nil {
		s.ClearSecretData()
		return nil, errs.New("ComputeRoundOne", errs.InternalError, err)
	}
	if !s.grp.PointIsValid(p) {
		s.ClearSecretData()
		return nil, errs.New("ComputeRoundOne", errs.InternalError, nil)
	}

	out, err := s.grp.PointWrite(p)
	if err != nil {
		s.ClearSecretData()
		return nil, errs.New("ComputeRoundOne", errs.InternalError, err)
	}

	s.xy = xy
	if s.role == RoleProver {
		s.x = p
	} else {
		s.y = p
	}
	s.phase = PhaseR1
	return out, nil
}

// ComputeRoundTwo consumes the peer's round-one point, computes Z and V,
// derives the key schedule, and returns this side's key-confirmation MAC
// (spec §4.4). peer must be PointLength bytes encoding an on-curve,
// non-identity point; the returned slice is HashLength bytes.
func (s *Spake2p) ComputeRoundTwo(peer []byte) ([]byte, error) {
	if s.phase != PhaseR1 {
		return nil, errs.New("ComputeRoundTwo", errs.InvalidState, nil)
	}
	if len(peer) != PointLength {
		s.ClearSecretData()
		return nil, errs.New("ComputeRoundTwo", errs.InvalidArgument, nil)
	}
	peerPoint, err := s.grp.PointLoad(peer)
	if err != nil {
		s.ClearSecretData()
		return nil, errs.New("ComputeRoundTwo", errs.InvalidArgument, err)
	}

	z, v, err := s.computeZV(peerPoint)
	if err != nil {
		s.ClearSecretData()
		return nil, err
	}
	s.z, s.v = z, v

	if err := s.deriveKeySchedule(); err != nil {
		s.ClearSecretData()
		return nil, err
	}

	var out []byte
	if s.role == RoleProver {
		pB, err := s.grp.PointWrite(s.y)
		if err != nil {
			s.ClearSecretData()
			return nil, errs.New("ComputeRoundTwo", errs.InternalError, err)
		}
		out = hashkit.HMACSHA256(s.kcb, pB)
	} else {
		pA, err := s.grp.PointWrite(s.x)
		if err != nil {
			s.ClearSecretData()
			return nil, errs.New("ComputeRoundTwo", errs.InternalError, err)
		}
		out = hashkit.HMACSHA256(s.kca, pA)
	}

	s.phase = PhaseR2
	return out, nil
}

// computeZV fills in the peer's round-one point and computes Z and V
// following spec §4.4's ComputeRoundTwo branches, using
// PointAddMul(pX, 1, X, -w0) as the "pX - w0*X" idiom spec §4.4 requires.
func (s *Spake2p) computeZV(peerPoint group.Point) (z, v group.Point, err error) {
	one, err := s.grp.FELoad([]byte{1})
	if err != nil {
		return group.Point{}, group.Point{}, errs.New("ComputeRoundTwo", errs.InternalError, err)
	}
	negW0, err := s.grp.FENegate(s.w0)
	if err != nil {
		return group.Point{}, group.Point{}, errs.New("ComputeRoundTwo", errs.InternalError, err)
	}

	if s.role == RoleProver {
		s.y = peerPoint
		blinded, err := s.grp.PointAddMul(s.y, one, s.n, negW0)
		if err != nil {
			return group.Point{}, group.Point{}, errs.New("ComputeRoundTwo", errs.InternalError, err)
		}
		z, err = s.grp.PointMul(blinded, s.xy)
		if err != nil {
			return group.Point{}, group.Point{}, errs.New("ComputeRoundTwo", errs.InternalError, err)
		}
		v, err = s.grp.PointMul(blinded, s.w1)
		if err != nil {
			return group.Point{}, group.Point{}, errs.New("ComputeRoundTwo", errs.InternalError, err)
		}
	} else {
		s.x = peerPoint
		blinded, err := s.grp.PointAddMul(s.x, one, s.m, negW0)
		if err != nil {
			return group.Point{}, group.Point{}, errs.New("ComputeRoundTwo", errs.InternalError, err)
		}
		z, err = s.grp.PointMul(blinded, s.xy)
		if err != nil {
			return group.Point{}, group.Point{}, errs.New("ComputeRoundTwo", errs.InternalError, err)
		}
		v, err = s.grp.PointMul(s.l, s.xy)
		if err != nil {
			return group.Point{}, group.Point{}, errs.New("ComputeRoundTwo", errs.InternalError, err)
		}
	}

	z, err = s.grp.PointCofactorMul(z)
	if err != nil {
		return group.Point{}, group.Point{}, errs.New("ComputeRoundTwo", errs.InternalError, err)
	}
	v, err = s.grp.PointCofactorMul(v)
	if err != nil {
		return group.Point{}, group.Point{}, errs.New("ComputeRoundTwo", errs.InternalError, err)
	}
	if !s.grp.PointIsValid(z) || !s.grp.PointIsValid(v) {
		return group.Point{}, group.Point{}, errs.New("ComputeRoundTwo", errs.InternalError, nil)
	}
	return z, v, nil
}

// deriveKeySchedule builds TT in the fixed order of spec §4.3 (context,
// idProver, idVerifier, M, N, pA, pB, Z, V, w0), hashes it to split
// Ka||Ke, and derives Kca||Kcb from Ka via HKDF.
func (s *Spake2p) deriveKeySchedule() error {
	mBytes, err := s.grp.PointWrite(s.m)
	if err != nil {
		return errs.New("deriveKeySchedule", errs.InternalError, err)
	}
	nBytes, err := s.grp.PointWrite(s.n)
	if err != nil {
		return errs.New("deriveKeySchedule", errs.InternalError, err)
	}
	xBytes, err := s.grp.PointWrite(s.x)
	if err != nil {
		return errs.New("deriveKeySchedule", errs.InternalError, err)
	}
	yBytes, err := s.grp.PointWrite(s.y)
	if err != nil {
		return errs.New("deriveKeySchedule", errs.InternalError, err)
	}
	zBytes, err := s.grp.PointWrite(s.z)
	if err != nil {
		return errs.New("deriveKeySchedule", errs.InternalError, err)
	}
	vBytes, err := s.grp.PointWrite(s.v)
	if err != nil {
		return errs.New("deriveKeySchedule", errs.InternalError, err)
	}
	w0Bytes, err := s.grp.FEWrite(s.w0)
	if err != nil {
		return errs.New("deriveKeySchedule", errs.InternalError, err)
	}

	tb := transcript.New()
	tb.Append(s.ctx).Append(s.idProver).Append(s.idVerifier).
		Append(mBytes).Append(nBytes).
		Append(xBytes).Append(yBytes).
		Append(zBytes).Append(vBytes).
		Append(w0Bytes)
	tt, err := tb.Sum()
	if err != nil {
		return errs.New("deriveKeySchedule", errs.InternalError, err)
	}

	digest := hashkit.Sum256(tt)
	s.ka = append([]byte(nil), digest[:HashLength/2]...)
	s.ke = append([]byte(nil), digest[HashLength/2:]...)

	kcab, err := hashkit.HKDFSHA256(s.ka, nil, []byte(confirmationKeysInfo), HashLength)
	if err != nil {
		return errs.New("deriveKeySchedule", errs.InternalError, err)
	}
	s.kca = kcab[:HashLength/2]
	s.kcb = kcab[HashLength/2:]
	return nil
}

// KeyConfirm verifies the peer's key-confirmation MAC: the prover expects
// HMAC(Kca, pA), the verifier expects HMAC(Kcb, pB) (spec §4.4). On
// mismatch it returns InvalidSignature and zeroizes the full key schedule
// and w0/w1/xy (spec §7); on success it advances the phase to KC.
func (s *Spake2p) KeyConfirm(peerMAC []byte) error {
	if s.phase != PhaseR2 {
		return errs.New("KeyConfirm", errs.InvalidState, nil)
	}
	if len(peerMAC) != HashLength {
		s.ClearSecretData()
		return errs.New("KeyConfirm", errs.InvalidArgument, nil)
	}

	var key []byte
	var msgPoint group.Point
	if s.role == RoleProver {
		key, msgPoint = s.kca, s.x
	} else {
		key, msgPoint = s.kcb, s.y
	}
	msgBytes, err := s.grp.PointWrite(msgPoint)
	if err != nil {
		s.ClearSecretData()
		return errs.New("KeyConfirm", errs.InternalError, err)
	}

	if !hashkit.MacVerify(key, msgBytes, peerMAC) {
		s.ClearSecretData()
		return errs.New("KeyConfirm", errs.InvalidSignature, nil)
	}
	s.phase = PhaseKC
	return nil
}

// GetKeys returns the confirmed shared encryption key Ke (HashLength/2
// bytes). It fails with InvalidState unless KeyConfirm has succeeded.
func (s *Spake2p) GetKeys() ([]byte, error) {
	if s.phase != PhaseKC {
		return nil, errs.New("GetKeys", errs.InvalidState, nil)
	}
	return append([]byte(nil), s.ke...), nil
}

// ClearSecretData zeroes all secret material the instance currently
// holds: w0, w1, xy, Ka, Ke, Kca, Kcb (spec §3, §5, §7). It does not
// change the phase; Init calls it and then sets phase=INIT itself.
//
// L, Z and V are group.Point values backed by the arithmetic façade's
// opaque handle; the façade does not expose an in-place zeroing
// operation for points (see DESIGN.md), so this drops the references
// instead, which is the best this package can do without reaching into
// the backend's internals.
func (s *Spake2p) ClearSecretData() {
	s.w0.Zeroize()
	s.w1.Zeroize()
	s.xy.Zeroize()
	primitives.ClearSecretData(s.ka)
	primitives.ClearSecretData(s.ke)
	primitives.ClearSecretData(s.kca)
	primitives.ClearSecretData(s.kcb)
	s.ka, s.ke, s.kca, s.kcb = nil, nil, nil, nil
	s.l = group.Point{}
	s.z = group.Point{}
	s.v = group.Point{}
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}
