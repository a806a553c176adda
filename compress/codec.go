package compress

import (
	"bytes"
	"fmt"

	"github.com/scottsmith/xrklog/format"
)

// Compressor compresses a byte slice. No component in this module writes
// XRZ files (spec: writing XRK/XRZ files is a non-goal), but every codec
// below implements it anyway since the underlying libraries provide both
// directions for free and a Codec is a more natural unit to sniff and hand
// around than a bare Decompressor.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses a byte slice back to its original form.
//
// ByteSource uses a Decompressor to turn an XRZ container's compressed
// payload back into raw XRK bytes before any other component sees it.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec is a factory function that creates a Codec based on the specified compression type.
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	case format.CompressionZlib:
		return NewZlibCompressor(), nil
	default:
		return nil, fmt.Errorf("xrklog: invalid %s compression: %s", target, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
	format.CompressionZlib: NewZlibCompressor(),
}

// GetCodec retrieves a built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("xrklog: unsupported compression type: %s", compressionType)
}

// magic byte prefixes used to recognize a compressed XRZ payload. S2 has no
// fixed magic of its own in block mode; it is only reachable through Sniff
// when the stream-format prefix is present (s2.NewWriter's default framing
// emits one). zlib has no fixed magic at all; it is recognized by its
// two-byte CMF/FLG header in looksLikeZlib instead.
var (
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
	s2Magic   = []byte{0xff, 0x06, 0x00, 0x00, 0x73, 0x32, 0x73, 0x74}
)

// Sniff inspects the leading bytes of data and returns the compression
// algorithm it appears to be encoded with, or CompressionNone if data looks
// like it is already raw (uncompressed) bytes.
//
// XRZ carries no explicit compression-type field (spec §2: "details are
// delegated to the ByteSource collaborator"); observed firmware builds use
// one of a handful of general-purpose stream compressors, so ByteSource
// recognizes them the same way a self-describing container format is
// recognized: by magic prefix.
func Sniff(data []byte) format.CompressionType {
	switch {
	case bytes.HasPrefix(data, zstdMagic):
		return format.CompressionZstd
	case bytes.HasPrefix(data, lz4Magic):
		return format.CompressionLZ4
	case bytes.HasPrefix(data, s2Magic):
		return format.CompressionS2
	case looksLikeZlib(data):
		return format.CompressionZlib
	default:
		return format.CompressionNone
	}
}

// looksLikeZlib checks the two-byte zlib header (CMF/FLG) rather than a
// fixed magic: CMF's low nibble must be 8 (deflate) and the 16-bit
// big-endian header must be a multiple of 31, per RFC 1950.
func looksLikeZlib(data []byte) bool {
	if len(data) < 2 {
		return false
	}

	if data[0]&0x0f != 0x08 {
		return false
	}

	header := uint16(data[0])<<8 | uint16(data[1])

	return header%31 == 0
}
