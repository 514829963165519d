// Package babybear implements the host-side codec for the BabyBear prime
// field used by the proving system's arithmetic.
package babybear

import "fmt"

// Modulus is the BabyBear prime, p = 15*2^27 + 1.
const Modulus uint32 = 2013265921

// ToMontgomery maps a canonical field element to Montgomery form,
// v*2^32 mod p. The portable verifier decodes this form on its own; no
// inverse mapping is needed on this side.
//
// The caller must pass a reduced value; v >= Modulus panics rather than
// silently re-reducing so a caller bug surfaces immediately.
func ToMontgomery(v uint32) uint32 {
	if v >= Modulus {
		panic(fmt.Sprintf("babybear: value %d is not reduced mod %d", v, Modulus))
	}
	// v < 2^31, so v*2^32 fits in 63 bits and stays exact in a uint64.
	return uint32((uint64(v) << 32) % uint64(Modulus))
}
