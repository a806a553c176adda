// Package compress implements the decompression side of the XRZ container
// format: an XRK log wrapped in a single compressed stream.
//
// # Overview
//
// An XRZ file has no container header of its own beyond the compressed
// payload: there is no declared algorithm, no length-prefixed chunking, no
// checksum trailer. ByteSource opens the file, peeks at the first bytes, and
// calls Sniff to identify the compression algorithm from its magic (or, for
// zlib, its two-byte CMF/FLG header). GetCodec then resolves the matching
// Codec and a single Decompress call yields the underlying XRK bytes, which
// every other component treats exactly as it would treat a plain .xrk file.
//
// # Interfaces
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// Compress exists on every codec even though parsing never writes an XRZ
// file (writing is out of scope); the underlying libraries provide both
// directions for free, and the test suite uses Compress to build synthetic
// fixtures for each algorithm.
//
// # Supported algorithms
//
//   - None (format.CompressionNone): payload is already raw XRK bytes.
//   - Zstd (format.CompressionZstd): github.com/klauspost/compress/zstd
//     (pure-Go, default) or github.com/valyala/gozstd (cgo, build-tag gated).
//   - S2 (format.CompressionS2): github.com/klauspost/compress/s2.
//   - LZ4 (format.CompressionLZ4): github.com/pierrec/lz4/v4, frame format.
//   - Zlib (format.CompressionZlib): standard library compress/zlib.
//
// # Thread safety
//
// Every Codec implementation here is stateless or pool-backed and safe for
// concurrent use; a single package-level Codec can be shared across however
// many files are being parsed concurrently.
package compress
