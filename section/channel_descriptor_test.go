package section

import (
	"errors"
	"testing"

	"github.com/scottsmith/xrklog/errs"
	"github.com/scottsmith/xrklog/format"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelDescriptor_RoundTrip(t *testing.T) {
	cd := ChannelDescriptor{
		ID:           7,
		Name:         "GPS Latitude",
		Units:        "deg",
		DecPts:       4,
		Interpolate:  true,
		PhysicalType: format.I32,
		Scale:        1e-7,
		Offset:       0,
	}

	buf := cd.Bytes()
	require.Len(t, buf, ChannelDescriptorSize)

	var got ChannelDescriptor
	require.NoError(t, got.Parse(buf))

	assert.Equal(t, cd.ID, got.ID)
	assert.Equal(t, cd.Name, got.Name)
	assert.Equal(t, cd.Units, got.Units)
	assert.Equal(t, cd.DecPts, got.DecPts)
	assert.Equal(t, cd.Interpolate, got.Interpolate)
	assert.Equal(t, cd.PhysicalType, got.PhysicalType)
	assert.InDelta(t, cd.Scale, got.Scale, 1e-15)
	assert.InDelta(t, cd.Offset, got.Offset, 1e-15)
}

func TestChannelDescriptor_ZeroScaleDefaultsToIdentity(t *testing.T) {
	cd := ChannelDescriptor{ID: 1, Name: "RPM", PhysicalType: format.F32}
	buf := cd.Bytes()

	var got ChannelDescriptor
	require.NoError(t, got.Parse(buf))

	assert.Equal(t, 1.0, got.Scale)
}

func TestChannelDescriptor_Parse_UnknownPhysicalType(t *testing.T) {
	cd := ChannelDescriptor{ID: 1, Name: "Bad", PhysicalType: format.F32}
	buf := cd.Bytes()
	buf[cdOffPhysicalType] = 0xff

	var got ChannelDescriptor
	err := got.Parse(buf)

	var fe *errs.FormatError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, errs.ReasonOutOfRange, fe.Reason)
}

func TestChannelDescriptor_Parse_ShortBuffer(t *testing.T) {
	var got ChannelDescriptor
	err := got.Parse(make([]byte, ChannelDescriptorSize-1))
	require.Error(t, err)
}
