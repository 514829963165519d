// Package artifact loads the proving system's native output files and
// assembles the byte layouts the portable verifier consumes.
package artifact

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// ErrArtifactMissing reports a required file or field that is absent. A run
// cannot proceed to verification without all of its artifacts.
var ErrArtifactMissing = errors.New("required artifact missing")

// Proof is the proving system's native proof output.
type Proof struct {
	// Hex-encoded STARK proof bytes
	Proof string `json:"proof"`
	// Hex-encoded public values revealed by the guest
	UserPublicValues string `json:"user_public_values"`
	// Proof format version
	Version string `json:"version"`
}

// Commits carries the two application commitments produced at build time.
type Commits struct {
	AppExeCommit string `json:"app_exe_commit"`
	AppVMCommit  string `json:"app_vm_commit"`
}

// LoadProof reads and parses a proof JSON file.
func LoadProof(path string) (*Proof, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(ErrArtifactMissing, "proof file %s: %v", path, err)
	}
	var p Proof
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, errors.Wrapf(err, "parsing proof file %s", path)
	}
	if p.Proof == "" || p.UserPublicValues == "" {
		return nil, errors.Wrapf(ErrArtifactMissing, "proof file %s: empty proof or user_public_values", path)
	}
	return &p, nil
}

// LoadCommits reads and parses a commitment JSON file.
func LoadCommits(path string) (*Commits, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(ErrArtifactMissing, "commitment file %s: %v", path, err)
	}
	var c Commits
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrapf(err, "parsing commitment file %s", path)
	}
	if c.AppExeCommit == "" || c.AppVMCommit == "" {
		return nil, errors.Wrapf(ErrArtifactMissing, "commitment file %s: empty app_exe_commit or app_vm_commit", path)
	}
	return &c, nil
}

// LoadBaseVK reads the base verifying key as an opaque blob. Its internal
// structure is owned by the verifying-key file format; nothing here
// validates it.
func LoadBaseVK(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(ErrArtifactMissing, "verifying key %s: %v", path, err)
	}
	return data, nil
}
