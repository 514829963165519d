package harness

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
)

// Exports the portable verifier module must provide. verify_stark takes
// (proofPtr, proofLen, vkPtr, vkLen) in guest memory and returns 1 for a
// valid proof, 0 for an invalid one, and a negative code when it cannot
// deserialize its inputs.
const (
	allocExport  = "alloc"
	verifyExport = "verify_stark"
)

// WasmVerifier hosts the portable verifier module. Instantiation happens
// exactly once per handle; Verify may be called repeatedly afterwards.
type WasmVerifier struct {
	runtime wazero.Runtime
	mod     api.Module
	alloc   api.Function
	verify  api.Function
}

// LoadWasmVerifier returns a PortableLoader that reads the module binary at
// path and instantiates it.
func LoadWasmVerifier(path string) PortableLoader {
	return func(ctx context.Context) (PortableVerifier, error) {
		wasm, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "reading portable verifier module %s", path)
		}
		return NewWasmVerifier(ctx, wasm)
	}
}

// NewWasmVerifier compiles and instantiates the portable module from its
// binary. The caller owns Close.
func NewWasmVerifier(ctx context.Context, wasm []byte) (*WasmVerifier, error) {
	r := wazero.NewRuntime(ctx)
	mod, err := r.Instantiate(ctx, wasm)
	if err != nil {
		r.Close(ctx)
		return nil, errors.Wrap(err, "instantiating portable verifier")
	}
	v := &WasmVerifier{
		runtime: r,
		mod:     mod,
		alloc:   mod.ExportedFunction(allocExport),
		verify:  mod.ExportedFunction(verifyExport),
	}
	if v.alloc == nil || v.verify == nil {
		r.Close(ctx)
		return nil, errors.Errorf("portable verifier module does not export %q and %q", allocExport, verifyExport)
	}
	return v, nil
}

// Verify calls the module's entry point with the compressed proof bytes and
// the assembled verifying key.
func (v *WasmVerifier) Verify(ctx context.Context, proofBytes, vkBytes []byte) (bool, error) {
	proofPtr, err := v.copyIn(ctx, proofBytes)
	if err != nil {
		return false, err
	}
	vkPtr, err := v.copyIn(ctx, vkBytes)
	if err != nil {
		return false, err
	}

	res, err := v.verify.Call(ctx, proofPtr, uint64(len(proofBytes)), vkPtr, uint64(len(vkBytes)))
	if err != nil {
		return false, errors.Wrap(err, "calling portable verifier")
	}
	switch ret := int32(uint32(res[0])); ret {
	case 1:
		return true, nil
	case 0:
		return false, nil
	default:
		return false, errors.Errorf("portable verifier rejected its inputs (code %d)", ret)
	}
}

// copyIn allocates guest memory through the module's own allocator and
// writes data into it.
func (v *WasmVerifier) copyIn(ctx context.Context, data []byte) (uint64, error) {
	res, err := v.alloc.Call(ctx, uint64(len(data)))
	if err != nil {
		return 0, errors.Wrap(err, "allocating guest memory")
	}
	ptr := res[0]
	if !v.mod.Memory().Write(uint32(ptr), data) {
		return 0, errors.Errorf("guest memory write out of range: ptr=%d len=%d", ptr, len(data))
	}
	return ptr, nil
}

// Close releases the runtime and everything instantiated in it.
func (v *WasmVerifier) Close(ctx context.Context) error {
	return v.runtime.Close(ctx)
}
