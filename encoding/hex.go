package encoding

import (
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"
)

// ErrMalformedHex reports odd-length or non-hex-digit input to a decoder.
var ErrMalformedHex = errors.New("malformed hex input")

// DecodeHex decodes s, accepting an optional 0x prefix. It never truncates
// or zero-pads: any odd-length or non-hex input fails with ErrMalformedHex.
func DecodeHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(s, "0x")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(ErrMalformedHex, err.Error())
	}
	return b, nil
}
