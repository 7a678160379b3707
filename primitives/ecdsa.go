package primitives

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"

	"github.com/weaveiot/spake2p/errs"
)

// ECDSASign produces a P-256 ECDSA signature over SHA-256(message),
// grounded on the teacher's x509.CreateCertificate signing path in
// fabric.go, generalized to sign arbitrary messages rather than only
// certificate TBS bytes.
func ECDSASign(priv *ecdsa.PrivateKey, message []byte) ([]byte, error) {
	digest := sha256.Sum256(message)
	sig, err := ecdsa.SignASN1(rand.Reader, priv, digest[:])
	if err != nil {
		return nil, errs.New("ECDSASign", errs.InternalError, err)
	}
	return sig, nil
}

// ECDSAVerify reports whether sig is a valid P-256 ECDSA signature over
// SHA-256(message) under pub.
func ECDSAVerify(pub *ecdsa.PublicKey, message, sig []byte) bool {
	digest := sha256.Sum256(message)
	return ecdsa.VerifyASN1(pub, digest[:], sig)
}

// NewECDSAKeypair generates a fresh P-256 ECDSA signing keypair.
func NewECDSAKeypair() (*ecdsa.PrivateKey, error) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, errs.New("NewECDSAKeypair", errs.InternalError, err)
	}
	return priv, nil
}
