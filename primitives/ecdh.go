package primitives

import (
	"crypto/ecdh"
	"crypto/rand"

	"github.com/weaveiot/spake2p/errs"
)

// ECDHKeypair is a P-256 ECDH keypair, grounded on the ephemeral keys the
// teacher's CASE handshake generates with ecdh.P256().GenerateKey.
type ECDHKeypair struct {
	priv *ecdh.PrivateKey
}

// NewECDHKeypair generates a fresh P-256 ECDH keypair.
func NewECDHKeypair() (*ECDHKeypair, error) {
	priv, err := ecdh.P256().GenerateKey(rand.Reader)
	if err != nil {
		return nil, errs.New("NewECDHKeypair", errs.InternalError, err)
	}
	return &ECDHKeypair{priv: priv}, nil
}

// PublicKeyBytes returns the uncompressed SEC1 encoding of the public key.
func (k *ECDHKeypair) PublicKeyBytes() []byte {
	return k.priv.PublicKey().Bytes()
}

// ECDH computes the shared secret with a peer's uncompressed SEC1-encoded
// public key, the same ecdh.PrivateKey.ECDH call the teacher's CASE
// Sigma2/Sigma3 key schedule relies on.
func (k *ECDHKeypair) ECDH(peerPublicKey []byte) ([]byte, error) {
	peer, err := ecdh.P256().NewPublicKey(peerPublicKey)
	if err != nil {
		return nil, errs.New("ECDH", errs.InvalidArgument, err)
	}
	secret, err := k.priv.ECDH(peer)
	if err != nil {
		return nil, errs.New("ECDH", errs.InternalError, err)
	}
	return secret, nil
}
