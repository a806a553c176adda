package channeldir

import (
	"testing"

	"github.com/scottsmith/xrklog/errs"
	"github.com/scottsmith/xrklog/format"
	"github.com/scottsmith/xrklog/internal/hash"
	"github.com/scottsmith/xrklog/section"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeDescriptors(t *testing.T, cds []section.ChannelDescriptor) []byte {
	t.Helper()

	var buf []byte
	for _, cd := range cds {
		buf = append(buf, cd.Bytes()...)
	}

	return buf
}

func TestRead_Basic(t *testing.T) {
	cds := []section.ChannelDescriptor{
		{ID: 1, Name: "RPM", PhysicalType: format.F32, Scale: 1, Interpolate: true},
		{ID: 2, Name: "GPS Speed", PhysicalType: format.F32, Scale: 1, Interpolate: true},
		{ID: 3, Name: "Gear", PhysicalType: format.GearEnum, Scale: 1},
	}

	diag := errs.NewDiagnostics()
	dir, err := Read(encodeDescriptors(t, cds), len(cds), diag)
	require.NoError(t, err)

	assert.Equal(t, 3, dir.Len())
	assert.Empty(t, diag.Warnings())

	desc, ok := dir.ByName("GPS Speed")
	require.True(t, ok)
	assert.Equal(t, uint16(2), desc.ID)
	assert.Equal(t, hash.ID("GPS Speed"), desc.NameHash)

	byHash, ok := dir.ByNameHash(hash.ID("Gear"))
	require.True(t, ok)
	assert.Equal(t, "Gear", byHash.Name)

	_, ok = dir.ByNameHash(hash.ID("Unknown Channel"))
	assert.False(t, ok)
}

func TestRead_DuplicateName(t *testing.T) {
	cds := []section.ChannelDescriptor{
		{ID: 1, Name: "RPM", PhysicalType: format.F32, Scale: 1},
		{ID: 2, Name: "RPM", PhysicalType: format.F32, Scale: 1},
	}

	diag := errs.NewDiagnostics()
	dir, err := Read(encodeDescriptors(t, cds), len(cds), diag)
	require.NoError(t, err)

	require.Len(t, diag.Warnings(), 1)
	assert.Equal(t, errs.WarningDuplicateChannelName, diag.Warnings()[0].Kind)

	desc, ok := dir.ByName("RPM")
	require.True(t, ok)
	assert.Equal(t, uint16(1), desc.ID, "first occurrence wins the name lookup")
}

func TestRead_ShortBuffer(t *testing.T) {
	diag := errs.NewDiagnostics()
	_, err := Read(make([]byte, section.ChannelDescriptorSize-1), 1, diag)
	assert.Error(t, err)
}
