// Package format defines the small, shared enumerations used across the
// parser: a channel's physical storage type, its sample-record shape, and
// the compression algorithm tagging a decompressed XRZ payload. Keeping
// these as a closed, tagged enum rather than dynamically-typed values lets
// every downstream component (demux, assembler, merge, bytesource) switch
// on a fixed set instead of inspecting values at runtime.
package format

// PhysicalType identifies the raw on-disk representation of a channel's
// samples, as declared by its channel descriptor (spec: "physical_type").
type PhysicalType uint8

const (
	// F32 is a 4-byte IEEE-754 single-precision float.
	F32 PhysicalType = iota + 1
	// F64 is an 8-byte IEEE-754 double-precision float.
	F64
	// I32 is a 4-byte signed integer.
	I32
	// GearEnum is a 1-byte enumerated gear position.
	GearEnum
)

// ByteWidth returns the raw sample width in bytes for this physical type.
func (t PhysicalType) ByteWidth() int {
	switch t {
	case F32:
		return 4
	case F64:
		return 8
	case I32:
		return 4
	case GearEnum:
		return 1
	default:
		return 0
	}
}

// IsFloat reports whether the physical type is a floating-point
// representation. Only float channels are eligible for linear
// interpolation in the merge engine; everything else is step-filled
// regardless of the channel descriptor's Interpolate flag.
func (t PhysicalType) IsFloat() bool {
	return t == F32 || t == F64
}

func (t PhysicalType) String() string {
	switch t {
	case F32:
		return "float32"
	case F64:
		return "float64"
	case I32:
		return "int32"
	case GearEnum:
		return "gear-enum"
	default:
		return "unknown"
	}
}

// RecordShape identifies how a sample record in the sample region encodes
// its timecode(s) and value(s).
type RecordShape uint8

const (
	// ShapeSingleton is a single (timecode_delta, raw_value) record.
	ShapeSingleton RecordShape = iota + 1
	// ShapeBlockPeriodic is a multi-sample record whose timecodes are
	// implicit: base_timecode + k*period.
	ShapeBlockPeriodic
	// ShapeBlockExplicit is a multi-sample record carrying one explicit
	// delta per sample instead of a single period.
	ShapeBlockExplicit
)

func (s RecordShape) String() string {
	switch s {
	case ShapeSingleton:
		return "singleton"
	case ShapeBlockPeriodic:
		return "block-periodic"
	case ShapeBlockExplicit:
		return "block-explicit"
	default:
		return "unknown"
	}
}

// CompressionType identifies the stream-compression algorithm an XRZ
// container's payload was compressed with. ByteSource sniffs this from the
// payload's leading magic bytes; it is never declared explicitly in the
// container.
type CompressionType uint8

const (
	// CompressionNone means the payload is already raw XRK bytes.
	CompressionNone CompressionType = iota + 1
	CompressionZstd
	CompressionS2
	CompressionLZ4
	CompressionZlib
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionS2:
		return "s2"
	case CompressionLZ4:
		return "lz4"
	case CompressionZlib:
		return "zlib"
	default:
		return "unknown"
	}
}
