// Package channel holds the data model the assembler builds and the merge
// engine consumes: a channel descriptor plus its two parallel columns.
package channel

import (
	"fmt"
	"math"

	"github.com/scottsmith/xrklog/format"
)

// Values is a tagged variant over a channel's four possible physical
// representations (spec §9 re-architecture note: "make the channel a
// tagged variant over concrete value types", replacing the source's
// dynamically-typed scalar).
type Values interface {
	// Len returns the number of values.
	Len() int
	// At returns the value at index i widened to float64, for interpolation
	// arithmetic and generic numeric comparisons. It never loses enough
	// precision to matter for a display-oriented time series.
	At(i int) float64
	// PhysicalType reports which concrete representation backs this Values.
	PhysicalType() format.PhysicalType
}

// Float32Values backs format.F32 channels.
type Float32Values []float32

func (v Float32Values) Len() int                        { return len(v) }
func (v Float32Values) At(i int) float64                 { return float64(v[i]) }
func (v Float32Values) PhysicalType() format.PhysicalType { return format.F32 }

// Float64Values backs format.F64 channels.
type Float64Values []float64

func (v Float64Values) Len() int                        { return len(v) }
func (v Float64Values) At(i int) float64                 { return v[i] }
func (v Float64Values) PhysicalType() format.PhysicalType { return format.F64 }

// Int32Values backs format.I32 channels.
type Int32Values []int32

func (v Int32Values) Len() int                        { return len(v) }
func (v Int32Values) At(i int) float64                 { return float64(v[i]) }
func (v Int32Values) PhysicalType() format.PhysicalType { return format.I32 }

// GearValues backs format.GearEnum channels.
type GearValues []uint8

func (v GearValues) Len() int                        { return len(v) }
func (v GearValues) At(i int) float64                 { return float64(v[i]) }
func (v GearValues) PhysicalType() format.PhysicalType { return format.GearEnum }

// NewValuesLike converts a plain []float64 into the Values representation
// matching kind, narrowing as needed. The merge engine uses this to build a
// projected column of the same physical type as the channel it is derived
// from, after computing each value as a float64 (interpolated or held).
func NewValuesLike(kind format.PhysicalType, fs []float64) (Values, error) {
	switch kind {
	case format.F32:
		out := make(Float32Values, len(fs))
		for i, f := range fs {
			out[i] = float32(f)
		}

		return out, nil
	case format.F64:
		out := make(Float64Values, len(fs))
		copy(out, fs)

		return out, nil
	case format.I32:
		out := make(Int32Values, len(fs))
		for i, f := range fs {
			out[i] = int32(math.Round(f))
		}

		return out, nil
	case format.GearEnum:
		out := make(GearValues, len(fs))
		for i, f := range fs {
			out[i] = uint8(math.Round(f))
		}

		return out, nil
	default:
		return nil, fmt.Errorf("xrklog: unknown physical type %v", kind)
	}
}
