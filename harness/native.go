package harness

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// DefaultTimeout bounds one reference verifier invocation. A proof that the
// reference tool cannot check inside this window is recorded as a path
// failure, not retried.
const DefaultTimeout = 120 * time.Second

// ReferenceCLI runs the trusted native verifier as a subprocess, passing it
// the proof-file path and the commitment-file path. Zero exit status means
// the proof verified; stdout and stderr are captured for diagnostics.
type ReferenceCLI struct {
	Bin     string        // binary to invoke, e.g. "cargo"
	Args    []string      // leading arguments, e.g. ["openvm", "verify", "stark"]
	Timeout time.Duration // zero means DefaultTimeout
	Log     zerolog.Logger
}

// Verify blocks until the subprocess exits or the timeout elapses.
func (r *ReferenceCLI) Verify(ctx context.Context, proofPath, commitsPath string) error {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := append(append([]string{}, r.Args...), "--proof", proofPath, "--commits", commitsPath)
	cmd := exec.CommandContext(ctx, r.Bin, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	r.Log.Debug().
		Str("bin", r.Bin).
		Strs("args", args).
		Str("stdout", stdout.String()).
		Str("stderr", stderr.String()).
		Msg("reference verifier finished")

	if ctx.Err() == context.DeadlineExceeded {
		return errors.Wrapf(ctx.Err(), "reference verifier timed out after %s", timeout)
	}
	if err != nil {
		if msg := lastLine(stderr.String()); msg != "" {
			return errors.Wrapf(err, "reference verifier: %s", msg)
		}
		return errors.Wrap(err, "reference verifier")
	}
	return nil
}

// lastLine extracts the most recent stderr line, which the reference tool
// uses for its final error message. Empty when nothing was written.
func lastLine(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	return lines[len(lines)-1]
}
