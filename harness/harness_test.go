package harness

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jeluard/cardano-zkvms/artifact"
)

const (
	testExeCommit = "9182033e4f8c2a71d5b06ce2f14a88ab35790d12c4ef6678aa20b1dce9f00342"
	testVMCommit  = "35790d12c4ef6678aa20b1dce9f003429182033e4f8c2a71d5b06ce2f14a88ab"
	testProofHex  = "0x0102030405060708090a"
	testPVHex     = "0xaabbccdd"
)

type nativeFunc func(ctx context.Context, proofPath, commitsPath string) error

func (f nativeFunc) Verify(ctx context.Context, proofPath, commitsPath string) error {
	return f(ctx, proofPath, commitsPath)
}

type portableStub struct {
	result   bool
	err      error
	gotProof []byte
	gotVK    []byte
	calls    int
}

func (s *portableStub) Verify(ctx context.Context, proofBytes, vkBytes []byte) (bool, error) {
	s.calls++
	s.gotProof = proofBytes
	s.gotVK = vkBytes
	return s.result, s.err
}

func loaderFor(pv PortableVerifier) PortableLoader {
	return func(ctx context.Context) (PortableVerifier, error) { return pv, nil }
}

func writeInputs(t *testing.T) Inputs {
	t.Helper()
	dir := t.TempDir()
	in := Inputs{
		ProofPath:   filepath.Join(dir, "proof.json"),
		CommitsPath: filepath.Join(dir, "commits.json"),
		VKPath:      filepath.Join(dir, "vk.bin"),
	}
	require.NoError(t, os.WriteFile(in.ProofPath,
		[]byte(`{"proof":"`+testProofHex+`","user_public_values":"`+testPVHex+`","version":"1.2.0"}`), 0644))
	require.NoError(t, os.WriteFile(in.CommitsPath,
		[]byte(`{"app_exe_commit":"`+testExeCommit+`","app_vm_commit":"`+testVMCommit+`"}`), 0644))
	require.NoError(t, os.WriteFile(in.VKPath, []byte{0xAA, 0xBB, 0xCC}, 0644))
	return in
}

func newTestHarness(t *testing.T, native NativeVerifier, loader PortableLoader) *Harness {
	t.Helper()
	comp, err := artifact.NewCompressor()
	require.NoError(t, err)
	t.Cleanup(func() { comp.Close() })
	return New(native, loader, comp, zerolog.Nop())
}

func TestRunBothPass(t *testing.T) {
	in := writeInputs(t)
	pv := &portableStub{result: true}
	nativeCalled := false
	h := newTestHarness(t,
		nativeFunc(func(ctx context.Context, proofPath, commitsPath string) error {
			nativeCalled = true
			// the reference tool gets the original file paths, not our encoding
			require.Equal(t, in.ProofPath, proofPath)
			require.Equal(t, in.CommitsPath, commitsPath)
			return nil
		}),
		loaderFor(pv))

	report, err := h.Run(context.Background(), in)
	require.NoError(t, err)
	require.True(t, nativeCalled)
	require.Equal(t, OutcomePass, report.Native)
	require.Equal(t, OutcomePass, report.Portable)
	require.False(t, report.Diverged())

	// the portable path received the assembled vk and the compressed proof
	vkBytes, err := artifact.BuildVerifyingKey([]byte{0xAA, 0xBB, 0xCC}, testExeCommit, testVMCommit)
	require.NoError(t, err)
	require.Equal(t, vkBytes, pv.gotVK)

	raw, err := artifact.AssembleProof(testProofHex, testPVHex)
	require.NoError(t, err)
	dec, err := zstd.NewReader(nil)
	require.NoError(t, err)
	defer dec.Close()
	restored, err := dec.DecodeAll(pv.gotProof, nil)
	require.NoError(t, err)
	require.Equal(t, raw, restored)
}

func TestRunNativeFailureIsRecordedNotFatal(t *testing.T) {
	in := writeInputs(t)
	pv := &portableStub{result: true}
	h := newTestHarness(t,
		nativeFunc(func(ctx context.Context, proofPath, commitsPath string) error {
			return errors.New("exit status 1")
		}),
		loaderFor(pv))

	report, err := h.Run(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, OutcomeFail, report.Native)
	require.Error(t, report.NativeErr)
	require.Equal(t, 1, pv.calls, "portable path must still run after a native failure")
	require.Equal(t, OutcomePass, report.Portable)
	require.True(t, report.Diverged())
}

func TestRunPortableRejectRecorded(t *testing.T) {
	in := writeInputs(t)
	pv := &portableStub{result: false}
	h := newTestHarness(t,
		nativeFunc(func(ctx context.Context, proofPath, commitsPath string) error { return nil }),
		loaderFor(pv))

	report, err := h.Run(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, OutcomeFail, report.Portable)
	require.NoError(t, report.PortableErr)
	require.True(t, report.Diverged())
}

func TestRunPortableCallErrorRecorded(t *testing.T) {
	in := writeInputs(t)
	pv := &portableStub{err: errors.New("trap: unreachable")}
	h := newTestHarness(t,
		nativeFunc(func(ctx context.Context, proofPath, commitsPath string) error { return nil }),
		loaderFor(pv))

	report, err := h.Run(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, OutcomeFail, report.Portable)
	require.Error(t, report.PortableErr)
}

func TestRunPortableLoadFailureIsFatal(t *testing.T) {
	in := writeInputs(t)
	loadErr := errors.New("bad magic number")
	h := newTestHarness(t,
		nativeFunc(func(ctx context.Context, proofPath, commitsPath string) error { return nil }),
		func(ctx context.Context) (PortableVerifier, error) { return nil, loadErr })

	report, err := h.Run(context.Background(), in)
	require.Nil(t, report)
	require.ErrorIs(t, err, loadErr)
}

func TestRunMissingArtifactAbortsBeforeVerification(t *testing.T) {
	in := writeInputs(t)
	require.NoError(t, os.Remove(in.CommitsPath))

	pv := &portableStub{result: true}
	nativeCalled := false
	h := newTestHarness(t,
		nativeFunc(func(ctx context.Context, proofPath, commitsPath string) error {
			nativeCalled = true
			return nil
		}),
		loaderFor(pv))

	report, err := h.Run(context.Background(), in)
	require.Nil(t, report)
	require.ErrorIs(t, err, artifact.ErrArtifactMissing)
	require.False(t, nativeCalled)
	require.Zero(t, pv.calls)
}

func TestRunMalformedProofHexAborts(t *testing.T) {
	in := writeInputs(t)
	require.NoError(t, os.WriteFile(in.ProofPath,
		[]byte(`{"proof":"0xnothex","user_public_values":"`+testPVHex+`","version":"1.2.0"}`), 0644))

	h := newTestHarness(t,
		nativeFunc(func(ctx context.Context, proofPath, commitsPath string) error { return nil }),
		loaderFor(&portableStub{result: true}))

	report, err := h.Run(context.Background(), in)
	require.Nil(t, report)
	require.Error(t, err)
	require.Contains(t, err.Error(), "malformed hex")
}

func TestReferenceCLI(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755))
		return path
	}

	log := zerolog.Nop()

	t.Run("zero exit is success", func(t *testing.T) {
		cli := &ReferenceCLI{Bin: write("pass.sh", "exit 0"), Log: log}
		require.NoError(t, cli.Verify(context.Background(), "p", "c"))
	})

	t.Run("non-zero exit is failure", func(t *testing.T) {
		cli := &ReferenceCLI{Bin: write("fail.sh", "echo boom >&2\nexit 3"), Log: log}
		err := cli.Verify(context.Background(), "p", "c")
		require.Error(t, err)
		require.Contains(t, err.Error(), "boom")
	})

	t.Run("silent non-zero exit keeps a clean message", func(t *testing.T) {
		cli := &ReferenceCLI{Bin: write("silent.sh", "exit 3"), Log: log}
		err := cli.Verify(context.Background(), "p", "c")
		require.Error(t, err)
		require.Contains(t, err.Error(), "exit status 3")
		require.False(t, strings.HasSuffix(err.Error(), ": "))
	})

	t.Run("timeout is failure", func(t *testing.T) {
		cli := &ReferenceCLI{Bin: write("slow.sh", "sleep 10"), Timeout: 100 * time.Millisecond, Log: log}
		err := cli.Verify(context.Background(), "p", "c")
		require.Error(t, err)
		require.Contains(t, err.Error(), "timed out")
	})
}
