package spake2p

import "encoding/hex"

// Sizes, from the original CHIPCryptoPAL header (kP256_FE_Length,
// kP256_Point_Length, kSHA256_Hash_Length, kMAX_CSR_Length,
// kMAX_Spake2p_Context_Size, kMAX_Hash_SHA256_Context_Size). The opaque
// context sizes are not normative for this implementation (see DESIGN.md
// open question (b)) but are kept so callers porting fixed-size buffers
// from the original header have a documented upper bound.
const (
	FieldElementLength       = 32
	PointLength              = 2*FieldElementLength + 1
	HashLength               = 32
	MaxECDHSecretLength      = FieldElementLength
	MaxECDSASignatureLength  = 72
	MaxFieldElementLength    = FieldElementLength
	MaxPointLength           = PointLength
	MaxHashLength            = HashLength
	MaxCSRLength             = 512
	P256PrivateKeyLength     = 32
	P256PublicKeyLength      = 65
	MaxSpake2pContextSize    = 1024
	MaxHashSHA256ContextSize = 256

	// RoundOneMessageLength is the wire size of pA/pB: an uncompressed
	// SEC1 P-256 point.
	RoundOneMessageLength = PointLength
	// RoundTwoMessageLength is the wire size of cA/cB: an HMAC-SHA256 tag.
	RoundTwoMessageLength = HashLength
)

// spake2pMP256 and spake2pNP256 are the nothing-up-my-sleeve points from
// the SPAKE2+ draft-01 ciphersuite for P-256, used to blind the password
// scalar w0 in ComputeRoundOne/ComputeRoundTwo.
var (
	spake2pMP256 = mustDecodeHex("04886e2f97ace46e55ba9dd7242579f2993b64e16ef3dcab95afd497333d8fa12f5ff355163e43ce224e0b0e65ff02ac8e5c7be09419c785e0ca547d55a12e2d20")
	spake2pNP256 = mustDecodeHex("04d8bbd6c639c62937b04d997f38c3770719c629d7014d49a24b4f98baa1292b4907d60aa6bfade45008a636337f5168c64d9bd36034808cd564490b1e656edbe7")
)

func mustDecodeHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}
