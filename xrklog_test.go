package xrklog

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/scottsmith/xrklog/format"
	"github.com/scottsmith/xrklog/section"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildFixture assembles a complete, minimal synthetic XRK byte buffer:
// header, one channel descriptor, one lap entry, and a sample region with
// two singleton records for the lone channel. It is not a reference
// capture, only enough to exercise the full Parse pipeline end to end.
func buildFixture(t *testing.T) []byte {
	t.Helper()

	desc := section.ChannelDescriptor{
		ID:           7,
		Name:         "RPM",
		Units:        "rpm",
		DecPts:       0,
		Interpolate:  false,
		PhysicalType: format.F32,
		Scale:        1,
	}
	descBytes := desc.Bytes()

	lap := section.LapEntry{Num: 0, StartTime: 0, EndTime: 1500}
	lapBytes := lap.Bytes()

	disc := section.Discriminator{ChannelIndex: 0, Shape: format.ShapeSingleton}
	raw, err := disc.Pack()
	require.NoError(t, err)

	discBytes := make([]byte, 2)
	binary.LittleEndian.PutUint16(discBytes, raw)

	var sample []byte
	sample = append(sample, discBytes...)
	sample = append(sample, le32(1000)...)
	sample = append(sample, f32(712)...)
	sample = append(sample, discBytes...)
	sample = append(sample, le32(500)...)
	sample = append(sample, f32(732)...)

	hdr := section.Header{
		Version:                1,
		ChannelDirectoryOffset: section.HeaderSize,
		ChannelCount:           1,
		LapTableOffset:         section.HeaderSize + section.ChannelDescriptorSize,
		LapCount:               1,
		SampleRegionOffset:     section.HeaderSize + section.ChannelDescriptorSize + section.LapEntrySize,
		SampleRegionLength:     uint32(len(sample)),
		Driver:                 "CMD",
		Venue:                  "Fuji GP Sh",
	}
	hdrBytes := hdr.Bytes()

	var out []byte
	out = append(out, hdrBytes...)
	out = append(out, descBytes...)
	out = append(out, lapBytes...)
	out = append(out, sample...)

	return out
}

func le32(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)

	return b
}

func f32(v float32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, math.Float32bits(v))

	return b
}

func writeFixture(t *testing.T, name string, data []byte) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	return path
}

func TestParse_EndToEnd(t *testing.T) {
	path := writeFixture(t, "sample.xrk", buildFixture(t))

	lf, err := Parse(path)
	require.NoError(t, err)

	require.Contains(t, lf.Channels, "RPM")

	ch := lf.Channels["RPM"]
	require.Equal(t, 2, ch.Len())

	tc0, v0 := ch.At(0)
	assert.Equal(t, int64(1000), tc0)
	assert.InDelta(t, 712, v0, 1e-3)

	tc1, v1 := ch.At(1)
	assert.Equal(t, int64(1500), tc1)
	assert.InDelta(t, 732, v1, 1e-3)

	require.Equal(t, 1, lf.Laps.Len())
	assert.Equal(t, int64(0), lf.Laps.StartTime[0])
	assert.Equal(t, int64(1500), lf.Laps.EndTime[0])

	assert.Equal(t, "CMD", lf.Metadata["Driver"])
	assert.Equal(t, "Fuji GP Sh", lf.Metadata["Venue"])
}

func TestParse_MissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "does-not-exist.xrk"))
	require.Error(t, err)
}

func TestGetChannelsAsTable(t *testing.T) {
	path := writeFixture(t, "sample.xrk", buildFixture(t))

	lf, err := Parse(path)
	require.NoError(t, err)

	tbl, err := lf.GetChannelsAsTable()
	require.NoError(t, err)

	require.Len(t, tbl.Columns, 1)
	assert.Equal(t, "RPM", tbl.Columns[0].Name)
	assert.Equal(t, []int64{1000, 1500}, tbl.Timecodes)
}

func TestKeyChannels_NoGPSChannelsIsEmptyNotError(t *testing.T) {
	path := writeFixture(t, "sample.xrk", buildFixture(t))

	lf, err := Parse(path)
	require.NoError(t, err)

	speed, lat, lon, alt := lf.KeyChannels()
	assert.Nil(t, speed)
	assert.Nil(t, lat)
	assert.Nil(t, lon)
	assert.Nil(t, alt)
}
