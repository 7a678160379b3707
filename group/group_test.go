package group

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func TestFieldElementRoundTrip(t *testing.T) {
	g := NewP256Group()
	cases := []string{
		"0000000000000000000000000000000000000000000000000000000000000001",
		"ffffffff00000001000000000000000000000000fffffffffffffffffffffffe",
	}
	for _, hexVal := range cases {
		in, err := hex.DecodeString(hexVal)
		if err != nil {
			t.Fatalf("hex.DecodeString: %v", err)
		}
		fe, err := g.FELoad(in)
		if err != nil {
			t.Fatalf("FELoad: %v", err)
		}
		out, err := g.FEWrite(fe)
		if err != nil {
			t.Fatalf("FEWrite: %v", err)
		}
		fe2, err := g.FELoad(out)
		if err != nil {
			t.Fatalf("FELoad(FEWrite(x)): %v", err)
		}
		out2, err := g.FEWrite(fe2)
		if err != nil {
			t.Fatalf("FEWrite: %v", err)
		}
		if !bytes.Equal(out, out2) {
			t.Fatalf("FELoad(FEWrite(x)) != x mod q: %x != %x", out2, out)
		}
	}
}

func TestPointRoundTrip(t *testing.T) {
	g := NewP256Group()
	gen := g.Generator()
	encoded, err := g.PointWrite(gen)
	if err != nil {
		t.Fatalf("PointWrite: %v", err)
	}
	if len(encoded) != PointLength {
		t.Fatalf("encoded generator length = %d, want %d", len(encoded), PointLength)
	}
	loaded, err := g.PointLoad(encoded)
	if err != nil {
		t.Fatalf("PointLoad: %v", err)
	}
	reencoded, err := g.PointWrite(loaded)
	if err != nil {
		t.Fatalf("PointWrite: %v", err)
	}
	if !bytes.Equal(encoded, reencoded) {
		t.Fatalf("PointLoad(PointWrite(G)) round-trip mismatch")
	}
}

func TestPointLoadRejectsOffCurveAndIdentity(t *testing.T) {
	g := NewP256Group()

	t.Run("wrong prefix byte", func(t *testing.T) {
		encoded, _ := g.PointWrite(g.Generator())
		tampered := append([]byte(nil), encoded...)
		tampered[0] = 0x03
		if _, err := g.PointLoad(tampered); err == nil {
			t.Fatalf("PointLoad accepted a point with an invalid prefix byte")
		}
	})

	t.Run("short input", func(t *testing.T) {
		if _, err := g.PointLoad([]byte{0x04, 0x01}); err == nil {
			t.Fatalf("PointLoad accepted a truncated point")
		}
	})

	t.Run("off curve", func(t *testing.T) {
		encoded, _ := g.PointWrite(g.Generator())
		tampered := append([]byte(nil), encoded...)
		tampered[len(tampered)-1] ^= 0x01
		if _, err := g.PointLoad(tampered); err == nil {
			t.Fatalf("PointLoad accepted an off-curve point")
		}
	})

	t.Run("identity", func(t *testing.T) {
		if _, err := g.PointLoad([]byte{0x00}); err == nil {
			t.Fatalf("PointLoad accepted the identity point")
		}
	})
}

func TestPointMulAndAddMul(t *testing.T) {
	g := NewP256Group()
	gen := g.Generator()

	two, err := g.FELoad([]byte{2})
	if err != nil {
		t.Fatal(err)
	}
	doubled, err := g.PointMul(gen, two)
	if err != nil {
		t.Fatalf("PointMul: %v", err)
	}

	one, err := g.FELoad([]byte{1})
	if err != nil {
		t.Fatal(err)
	}
	summed, err := g.PointAddMul(gen, one, gen, one)
	if err != nil {
		t.Fatalf("PointAddMul: %v", err)
	}

	doubledBytes, _ := g.PointWrite(doubled)
	summedBytes, _ := g.PointWrite(summed)
	if !bytes.Equal(doubledBytes, summedBytes) {
		t.Fatalf("2*G (via PointMul) != G+G (via PointAddMul): %x != %x", doubledBytes, summedBytes)
	}
}

func TestPointInvertIsItsOwnInverse(t *testing.T) {
	g := NewP256Group()
	gen := g.Generator()

	negated, err := g.PointInvert(gen)
	if err != nil {
		t.Fatalf("PointInvert: %v", err)
	}
	roundTrip, err := g.PointInvert(negated)
	if err != nil {
		t.Fatalf("PointInvert: %v", err)
	}

	genBytes, _ := g.PointWrite(gen)
	roundTripBytes, _ := g.PointWrite(roundTrip)
	if !bytes.Equal(genBytes, roundTripBytes) {
		t.Fatalf("-(-G) != G: %x != %x", roundTripBytes, genBytes)
	}

	one, _ := g.FELoad([]byte{1})
	sum, err := g.PointAddMul(gen, one, negated, one)
	if err != nil {
		t.Fatalf("PointAddMul: %v", err)
	}
	if g.PointIsValid(sum) {
		t.Fatalf("G + (-G) is on-curve and non-identity; want the identity")
	}
}

func TestFEGenerateAvoidsZero(t *testing.T) {
	g := NewP256Group()
	for i := 0; i < 64; i++ {
		fe, err := g.FEGenerate()
		if err != nil {
			t.Fatal(err)
		}
		if fe.Zero() {
			t.Fatalf("FEGenerate produced the zero element")
		}
	}
}

func TestComputeL(t *testing.T) {
	g := NewP256Group()
	w1, err := g.FELoad([]byte("deterministic-w1-seed-material"))
	if err != nil {
		t.Fatal(err)
	}
	l, err := g.ComputeL(w1)
	if err != nil {
		t.Fatalf("ComputeL: %v", err)
	}
	if !g.PointIsValid(l) {
		t.Fatalf("ComputeL produced an invalid point")
	}
	direct, err := g.PointMul(g.Generator(), w1)
	if err != nil {
		t.Fatal(err)
	}
	lBytes, _ := g.PointWrite(l)
	directBytes, _ := g.PointWrite(direct)
	if !bytes.Equal(lBytes, directBytes) {
		t.Fatalf("ComputeL(w1) != w1*G: %x != %x", lBytes, directBytes)
	}
}

func TestPointCofactorMulIsNoOp(t *testing.T) {
	g := NewP256Group()
	gen := g.Generator()
	out, err := g.PointCofactorMul(gen)
	if err != nil {
		t.Fatalf("PointCofactorMul: %v", err)
	}
	genBytes, _ := g.PointWrite(gen)
	outBytes, _ := g.PointWrite(out)
	if !bytes.Equal(genBytes, outBytes) {
		t.Fatalf("PointCofactorMul changed the point on a cofactor-1 curve")
	}
}
