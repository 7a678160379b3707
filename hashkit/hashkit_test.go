package hashkit

import (
	"bytes"
	"crypto/sha256"
	"testing"
)

func TestSum256MatchesStdlib(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog")
	got := Sum256(data)
	want := sha256.Sum256(data)
	if got != want {
		t.Fatalf("Sum256 = %x, want %x", got, want)
	}
}

func TestStreamMatchesOneShot(t *testing.T) {
	parts := [][]byte{[]byte("the quick "), []byte("brown fox "), []byte("jumps over the lazy dog")}

	s := NewStream()
	s.Begin()
	for _, p := range parts {
		if err := s.AddData(p); err != nil {
			t.Fatalf("AddData: %v", err)
		}
	}
	out := make([]byte, Length)
	if err := s.Finish(out); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	var joined []byte
	for _, p := range parts {
		joined = append(joined, p...)
	}
	want := Sum256(joined)
	if !bytes.Equal(out, want[:]) {
		t.Fatalf("streamed hash = %x, want %x", out, want)
	}
}

func TestStreamBeginResets(t *testing.T) {
	s := NewStream()
	s.Begin()
	if err := s.AddData([]byte("stale data that must not survive a second Begin")); err != nil {
		t.Fatal(err)
	}

	s.Begin()
	if err := s.AddData([]byte("fresh")); err != nil {
		t.Fatal(err)
	}
	out := make([]byte, Length)
	if err := s.Finish(out); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	want := Sum256([]byte("fresh"))
	if !bytes.Equal(out, want[:]) {
		t.Fatalf("Begin did not reset prior state: got %x, want %x", out, want)
	}
}

func TestStreamRequiresBegin(t *testing.T) {
	s := NewStream()
	if err := s.AddData([]byte("x")); err == nil {
		t.Fatalf("AddData before Begin succeeded, want an error")
	}
	if err := s.Finish(make([]byte, Length)); err == nil {
		t.Fatalf("Finish before Begin succeeded, want an error")
	}
}

func TestFinishRejectsShortBuffer(t *testing.T) {
	s := NewStream()
	s.Begin()
	if err := s.Finish(make([]byte, Length-1)); err == nil {
		t.Fatalf("Finish accepted a buffer shorter than Length")
	}
}

func TestMacVerify(t *testing.T) {
	key := []byte("confirmation key")
	msg := []byte("pB")
	mac := HMACSHA256(key, msg)

	if !MacVerify(key, msg, mac) {
		t.Fatalf("MacVerify rejected a correctly computed MAC")
	}
	tampered := append([]byte(nil), mac...)
	tampered[0] ^= 0xFF
	if MacVerify(key, msg, tampered) {
		t.Fatalf("MacVerify accepted a tampered MAC")
	}
	if MacVerify([]byte("wrong key"), msg, mac) {
		t.Fatalf("MacVerify accepted a MAC under the wrong key")
	}
}

func TestHKDFSHA256IsDeterministicAndInfoSensitive(t *testing.T) {
	ikm := []byte("shared transcript key Ka")

	a, err := HKDFSHA256(ikm, nil, []byte("ConfirmationKeys"), 32)
	if err != nil {
		t.Fatalf("HKDFSHA256: %v", err)
	}
	b, err := HKDFSHA256(ikm, nil, []byte("ConfirmationKeys"), 32)
	if err != nil {
		t.Fatalf("HKDFSHA256: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("HKDFSHA256 is not deterministic: %x != %x", a, b)
	}

	c, err := HKDFSHA256(ikm, nil, []byte("SomethingElse"), 32)
	if err != nil {
		t.Fatalf("HKDFSHA256: %v", err)
	}
	if bytes.Equal(a, c) {
		t.Fatalf("HKDFSHA256 produced identical output for different info strings")
	}

	if len(a) != 32 {
		t.Fatalf("HKDFSHA256 returned %d bytes, want 32", len(a))
	}
}

func TestHKDFSHA256EmptySaltAndInfo(t *testing.T) {
	out, err := HKDFSHA256([]byte("ikm"), nil, nil, 16)
	if err != nil {
		t.Fatalf("HKDFSHA256 with empty salt and info: %v", err)
	}
	if len(out) != 16 {
		t.Fatalf("HKDFSHA256 returned %d bytes, want 16", len(out))
	}
}
