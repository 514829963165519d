package artifact

import (
	"github.com/pkg/errors"

	"github.com/jeluard/cardano-zkvms/encoding"
)

// BuildVerifyingKey returns baseVK ++ encode(exeCommit) ++ encode(vmCommit),
// with no padding or separators. The base key passes through byte-identical;
// a malformed one surfaces only as a verification failure downstream, not as
// a construction error.
func BuildVerifyingKey(baseVK []byte, exeCommitHex, vmCommitHex string) ([]byte, error) {
	exe, err := encoding.EncodeCommitment(exeCommitHex)
	if err != nil {
		return nil, errors.Wrap(err, "app exe commit")
	}
	vm, err := encoding.EncodeCommitment(vmCommitHex)
	if err != nil {
		return nil, errors.Wrap(err, "app vm commit")
	}
	out := make([]byte, 0, len(baseVK)+len(exe)+len(vm))
	out = append(out, baseVK...)
	out = append(out, exe...)
	return append(out, vm...), nil
}
