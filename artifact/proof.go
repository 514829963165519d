package artifact

import (
	"github.com/pkg/errors"

	"github.com/jeluard/cardano-zkvms/encoding"
)

// AssembleProof decodes the proof and public-value hex fields and
// concatenates them, proof bytes first. The order is part of the wire
// contract with the portable verifier and must not be swapped.
func AssembleProof(proofHex, publicValuesHex string) ([]byte, error) {
	proof, err := encoding.DecodeHex(proofHex)
	if err != nil {
		return nil, errors.Wrap(err, "proof")
	}
	publicValues, err := encoding.DecodeHex(publicValuesHex)
	if err != nil {
		return nil, errors.Wrap(err, "user public values")
	}
	out := make([]byte, 0, len(proof)+len(publicValues))
	out = append(out, proof...)
	return append(out, publicValues...), nil
}
