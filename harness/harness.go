// Package harness runs one proof through two independent verification paths,
// the native reference CLI and the portable module, and reports each outcome.
package harness

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/jeluard/cardano-zkvms/artifact"
)

// Outcome is one verification path's terminal result.
type Outcome int

const (
	OutcomePass Outcome = iota
	OutcomeFail
)

func (o Outcome) String() string {
	if o == OutcomePass {
		return "PASS"
	}
	return "FAIL"
}

// Report carries both path outcomes of one run. The harness never collapses
// them into a single verdict: when the paths disagree on identical inputs,
// that disagreement is the caller's signal of an encoding bug and must stay
// visible.
type Report struct {
	Native      Outcome
	NativeErr   error // cause of a native-path failure, nil on pass
	Portable    Outcome
	PortableErr error // cause of a portable-path failure, nil on pass or plain reject
}

// Diverged reports whether the two paths disagreed.
func (r *Report) Diverged() bool {
	return r.Native != r.Portable
}

// NativeVerifier checks the original, uncompressed artifacts through the
// reference implementation, which has its own deserialization path.
type NativeVerifier interface {
	Verify(ctx context.Context, proofPath, commitsPath string) error
}

// PortableVerifier is an instantiated portable module. Safe to call
// repeatedly once loaded.
type PortableVerifier interface {
	Verify(ctx context.Context, proofBytes, vkBytes []byte) (bool, error)
}

// PortableLoader instantiates the portable module. Loading is the only
// suspension point of a run besides the subprocess wait; it happens after
// the native path, at most once per run.
type PortableLoader func(ctx context.Context) (PortableVerifier, error)

// Inputs names the artifact files of one run.
type Inputs struct {
	ProofPath   string
	CommitsPath string
	VKPath      string
}

// Harness owns the collaborators of a verification run. Each Run re-does
// every step against its own buffers; nothing is shared across runs.
type Harness struct {
	native   NativeVerifier
	portable PortableLoader
	comp     *artifact.Compressor
	log      zerolog.Logger
}

// New assembles a harness from its collaborators.
func New(native NativeVerifier, portable PortableLoader, comp *artifact.Compressor, log zerolog.Logger) *Harness {
	return &Harness{native: native, portable: portable, comp: comp, log: log}
}

// Run drives one verification attempt to its terminal state. Missing
// artifacts and encoding errors abort the run before any verification. A
// native-path failure is recorded and the run continues. A portable module
// load failure aborts, since no comparison is possible without it.
func (h *Harness) Run(ctx context.Context, in Inputs) (*Report, error) {
	// Load the four artifacts. No partial verification is meaningful
	// without all of them.
	baseVK, err := artifact.LoadBaseVK(in.VKPath)
	if err != nil {
		return nil, err
	}
	commits, err := artifact.LoadCommits(in.CommitsPath)
	if err != nil {
		return nil, err
	}
	proof, err := artifact.LoadProof(in.ProofPath)
	if err != nil {
		return nil, err
	}
	h.log.Debug().Str("version", proof.Version).Msg("artifacts loaded")

	// Build the portable verifier's inputs.
	vkBytes, err := artifact.BuildVerifyingKey(baseVK, commits.AppExeCommit, commits.AppVMCommit)
	if err != nil {
		return nil, err
	}
	raw, err := artifact.AssembleProof(proof.Proof, proof.UserPublicValues)
	if err != nil {
		return nil, err
	}
	compressed := h.comp.Compress(raw)
	h.log.Info().
		Int("vk_bytes", len(vkBytes)).
		Int("proof_bytes", len(raw)).
		Int("compressed_bytes", len(compressed)).
		Msg("verification artifacts built")

	report := &Report{}

	// Native path. The reference tool deserializes the original files
	// itself, so it gets the file paths, not our encoding.
	if err := h.native.Verify(ctx, in.ProofPath, in.CommitsPath); err != nil {
		report.Native, report.NativeErr = OutcomeFail, err
		h.log.Warn().Err(err).Msg("native verification failed")
	} else {
		report.Native = OutcomePass
		h.log.Info().Msg("native verification passed")
	}

	// Portable path.
	pv, err := h.portable(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "loading portable verifier")
	}
	if c, ok := pv.(interface{ Close(context.Context) error }); ok {
		defer c.Close(ctx)
	}
	ok, err := pv.Verify(ctx, compressed, vkBytes)
	switch {
	case err != nil:
		report.Portable, report.PortableErr = OutcomeFail, err
		h.log.Warn().Err(err).Msg("portable verification errored")
	case !ok:
		report.Portable = OutcomeFail
		h.log.Warn().Msg("portable verification rejected the proof")
	default:
		report.Portable = OutcomePass
		h.log.Info().Msg("portable verification passed")
	}

	if report.Diverged() {
		h.log.Error().
			Stringer("native", report.Native).
			Stringer("portable", report.Portable).
			Msg("verification paths disagree on identical inputs; suspect the artifact encoding")
	}
	return report, nil
}
