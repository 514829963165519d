package encoding

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/jeluard/cardano-zkvms/babybear"
)

// DigestLimbs is the number of base-p digits kept from a 32-byte digest.
// p^8 is slightly under 2^248, so a digest at or above p^8 truncates: the
// quotient left after eight divisions is dropped. Commitments produced by
// the proving system are below that bound by construction.
const DigestLimbs = 8

var modulus = new(big.Int).SetUint64(uint64(babybear.Modulus))

// DecomposeDigest splits a 32-byte big-endian digest into 8 canonical
// BabyBear elements by repeated division: limb i is the i-th
// least-significant base-p digit, so limb 0 holds digest mod p. Anything
// beyond the eighth digit is discarded (see DigestLimbs).
func DecomposeDigest(digest [32]byte) [DigestLimbs]uint32 {
	var limbs [DigestLimbs]uint32
	v := new(big.Int).SetBytes(digest[:])
	r := new(big.Int)
	for i := range limbs {
		v.DivMod(v, modulus, r)
		limbs[i] = uint32(r.Uint64())
	}
	return limbs
}

// EncodeCommitment converts a hex digest into its wire encoding: 8 limbs,
// each mapped to Montgomery form and tagged-varint encoded, limb 0 first.
// Output length varies between 16 and 40 bytes with limb magnitude; callers
// must not assume a fixed size.
func EncodeCommitment(digestHex string) ([]byte, error) {
	raw, err := DecodeHex(digestHex)
	if err != nil {
		return nil, err
	}
	if len(raw) != 32 {
		return nil, errors.Wrapf(ErrMalformedHex, "commitment digest is %d bytes, want 32", len(raw))
	}
	var digest [32]byte
	copy(digest[:], raw)

	out := make([]byte, 0, 5*DigestLimbs)
	for _, limb := range DecomposeDigest(digest) {
		out = AppendUint32(out, babybear.ToMontgomery(limb))
	}
	return out, nil
}
