package section

import (
	"fmt"

	"github.com/scottsmith/xrklog/endian"
	"github.com/scottsmith/xrklog/errs"
	"github.com/scottsmith/xrklog/format"
)

// ChannelDescriptor is one fixed-width entry of the channel directory table.
type ChannelDescriptor struct {
	ID           uint16
	Name         string
	Units        string
	DecPts       uint8
	Interpolate  bool
	PhysicalType format.PhysicalType
	Scale        float64
	Offset       float64
}

// Parse decodes a ChannelDescriptor from the leading ChannelDescriptorSize
// bytes of data.
func (c *ChannelDescriptor) Parse(data []byte) error {
	if len(data) < ChannelDescriptorSize {
		return errs.NewFormatError(int64(len(data)), errs.ReasonShortHeader,
			fmt.Sprintf("channel descriptor needs %d bytes, got %d", ChannelDescriptorSize, len(data)))
	}

	engine := endian.GetLittleEndianEngine()

	c.ID = engine.Uint16(data[cdOffID : cdOffID+2])
	c.Name = decodeFixedString(data[cdOffName : cdOffName+cdLenName])
	c.Units = decodeFixedString(data[cdOffUnits : cdOffUnits+cdLenUnits])
	c.DecPts = data[cdOffDecPts]
	c.Interpolate = data[cdOffInterpolate] != 0

	pt := format.PhysicalType(data[cdOffPhysicalType])
	if pt.ByteWidth() == 0 {
		return errs.NewFormatError(int64(cdOffPhysicalType), errs.ReasonOutOfRange,
			fmt.Sprintf("unknown physical type %d for channel %q", data[cdOffPhysicalType], c.Name))
	}
	c.PhysicalType = pt

	c.Scale = floatFromBits(engine.Uint64(data[cdOffScale : cdOffScale+8]))
	c.Offset = floatFromBits(engine.Uint64(data[cdOffOffset : cdOffOffset+8]))

	// A zero scale is never a meaningful calibration; treat it as "absent",
	// defaulting to the identity transform (spec §3: "defaults (1.0, 0.0)
	// when absent").
	if c.Scale == 0 {
		c.Scale = 1.0
	}

	return nil
}

// Bytes serializes the ChannelDescriptor into a ChannelDescriptorSize-byte
// buffer. Used by tests to build fixtures.
func (c *ChannelDescriptor) Bytes() []byte {
	b := make([]byte, ChannelDescriptorSize)

	engine := endian.GetLittleEndianEngine()

	engine.PutUint16(b[cdOffID:cdOffID+2], c.ID)
	copy(b[cdOffName:cdOffName+cdLenName], encodeFixedString(c.Name, cdLenName))
	copy(b[cdOffUnits:cdOffUnits+cdLenUnits], encodeFixedString(c.Units, cdLenUnits))
	b[cdOffDecPts] = c.DecPts

	if c.Interpolate {
		b[cdOffInterpolate] = 1
	}

	b[cdOffPhysicalType] = uint8(c.PhysicalType)

	engine.PutUint64(b[cdOffScale:cdOffScale+8], floatBits(c.Scale))
	engine.PutUint64(b[cdOffOffset:cdOffOffset+8], floatBits(c.Offset))

	return b
}
