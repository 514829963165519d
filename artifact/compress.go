package artifact

import (
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

// Compressor compresses assembled proof bytes for the portable verifier,
// whose decompressor expects a zstd frame. The level is fixed at
// zstd.SpeedDefault (level 3) and never varied per call; only the container
// format, not the level, is part of the wire contract.
//
// A Compressor is an explicit handle so each run can own its collaborators
// instead of sharing process-wide state.
type Compressor struct {
	enc *zstd.Encoder
}

// NewCompressor initializes a zstd encoder handle.
func NewCompressor() (*Compressor, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, errors.Wrap(err, "initializing zstd encoder")
	}
	return &Compressor{enc: enc}, nil
}

// Compress returns data as a single zstd frame.
func (c *Compressor) Compress(data []byte) []byte {
	return c.enc.EncodeAll(data, nil)
}

// Close releases the encoder.
func (c *Compressor) Close() error {
	return c.enc.Close()
}
