package compress

// ZstdCompressor implements Codec for zstd-framed XRZ payloads. The default
// build (no cgo build tag) uses the pure-Go klauspost/compress/zstd decoder
// in zstd_pure.go; zstd_cgo.go holds a gozstd-backed implementation behind
// the "nobuild" tag for environments that want the faster cgo codec instead.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
//
// Returns:
//   - ZstdCompressor: New Zstd compressor instance
//
// Example:
//
//	compressor := NewZstdCompressor()
//	compressed, err := compressor.Compress(data)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
