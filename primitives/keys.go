package primitives

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"

	"github.com/weaveiot/spake2p/errs"
)

// P256PrivateKeyLength and P256PublicKeyLength are the fixed-width
// encodings of a P-256 private scalar and an uncompressed SEC1 public
// point, mirroring kP256_PrivateKey_Length / kP256_PublicKey_Length from
// the original header.
const (
	P256PrivateKeyLength = 32
	P256PublicKeyLength  = 65
)

// MaxCSRLength bounds a generated certificate signing request, matching
// kMAX_CSR_Length.
const MaxCSRLength = 512

// ECPKey is the common shape of a P-256 key value: its fixed encoded
// length and raw access to its bytes. P256PublicKeyBytes
// and P256PrivateKeyBytes below implement it, standing in for the
// original header's ECPKey/P256PublicKey/P256PrivateKey class hierarchy.
type ECPKey interface {
	Length() int
	Bytes() []byte
}

// P256PublicKeyBytes is the raw uncompressed SEC1 encoding of a P-256
// public key (0x04 || X || Y).
type P256PublicKeyBytes [P256PublicKeyLength]byte

func (k P256PublicKeyBytes) Length() int   { return P256PublicKeyLength }
func (k P256PublicKeyBytes) Bytes() []byte { return k[:] }

// P256PrivateKeyBytes is the raw, fixed-width big-endian encoding of a
// P-256 private scalar.
type P256PrivateKeyBytes [P256PrivateKeyLength]byte

func (k P256PrivateKeyBytes) Length() int   { return P256PrivateKeyLength }
func (k P256PrivateKeyBytes) Bytes() []byte { return k[:] }

// NewECPKeypair generates a fresh P-256 signing keypair and returns its
// ECPKey-shaped public and private halves alongside the underlying
// *ecdsa.PrivateKey, for callers (such as NewCertificateSigningRequest)
// that need the stdlib type.
func NewECPKeypair() (pub P256PublicKeyBytes, priv P256PrivateKeyBytes, key *ecdsa.PrivateKey, err error) {
	key, err = ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return pub, priv, nil, errs.New("NewECPKeypair", errs.InternalError, err)
	}
	pubBytes := elliptic.Marshal(elliptic.P256(), key.X, key.Y)
	copy(pub[:], pubBytes)
	privBytes := key.D.Bytes()
	copy(priv[P256PrivateKeyLength-len(privBytes):], privBytes)
	return pub, priv, key, nil
}

// NewCertificateSigningRequest builds a PKCS#10 CSR with subject
// commonName for the public half of privkey and signs it with privkey,
// using the same x509.CreateCertificateRequest call the teacher's
// fabric.go uses to mint node certificates. It takes the *ecdsa.PrivateKey
// that NewECPKeypair returns, not the ECPKey-shaped byte values.
func NewCertificateSigningRequest(commonName string, privkey *ecdsa.PrivateKey) ([]byte, error) {
	template := x509.CertificateRequest{
		Subject:            pkix.Name{CommonName: commonName},
		SignatureAlgorithm: x509.ECDSAWithSHA256,
	}
	csr, err := x509.CreateCertificateRequest(rand.Reader, &template, privkey)
	if err != nil {
		return nil, errs.New("NewCertificateSigningRequest", errs.InternalError, err)
	}
	if len(csr) > MaxCSRLength {
		return nil, errs.New("NewCertificateSigningRequest", errs.BufferTooSmall, nil)
	}
	return csr, nil
}

// ClearSecretData overwrites buf with zeroes in place, the Go analogue of
// the original header's ClearSecretData(buf, len) — used to scrub w0s,
// w1s, shared secrets and session keys once a handshake no longer needs
// them (spec §7).
func ClearSecretData(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}
