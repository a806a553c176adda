package section

import (
	"fmt"

	"github.com/scottsmith/xrklog/errs"
	"github.com/scottsmith/xrklog/format"
)

// Discriminator is the 2-byte little-endian value leading every sample
// record: its low 2 bits carry the record shape, its remaining 14 bits
// carry the 0-based index of the owning channel into the channel directory.
type Discriminator struct {
	ChannelIndex uint16
	Shape        format.RecordShape
}

// ParseDiscriminator unpacks a raw 2-byte discriminator value.
func ParseDiscriminator(raw uint16) (Discriminator, error) {
	shapeBits := raw & DiscriminatorShapeMask

	var shape format.RecordShape
	switch shapeBits {
	case 0:
		shape = format.ShapeSingleton
	case 1:
		shape = format.ShapeBlockPeriodic
	case 2:
		shape = format.ShapeBlockExplicit
	default:
		return Discriminator{}, errs.NewFormatError(-1, errs.ReasonOutOfRange,
			fmt.Sprintf("unknown record shape bits %#x", shapeBits))
	}

	return Discriminator{
		ChannelIndex: raw >> DiscriminatorChannelIndexShift,
		Shape:        shape,
	}, nil
}

// Pack encodes the Discriminator back into its 2-byte wire value.
func (d Discriminator) Pack() (uint16, error) {
	if d.ChannelIndex > DiscriminatorMaxChannelIndex {
		return 0, fmt.Errorf("xrklog: channel index %d exceeds discriminator width", d.ChannelIndex)
	}

	var shapeBits uint16
	switch d.Shape {
	case format.ShapeSingleton:
		shapeBits = 0
	case format.ShapeBlockPeriodic:
		shapeBits = 1
	case format.ShapeBlockExplicit:
		shapeBits = 2
	default:
		return 0, fmt.Errorf("xrklog: unknown record shape %v", d.Shape)
	}

	return (d.ChannelIndex << DiscriminatorChannelIndexShift) | shapeBits, nil
}
