// The fixtures in this file are small, hand-authored byte buffers built to
// exercise the framing rules (singleton, block-periodic, block-explicit,
// resync, truncation) precisely; they are not excerpts of a real AIM log.
package demux

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/scottsmith/xrklog/channel"
	"github.com/scottsmith/xrklog/errs"
	"github.com/scottsmith/xrklog/format"
	"github.com/scottsmith/xrklog/internal/channeldir"
	"github.com/scottsmith/xrklog/section"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func le32(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)

	return b
}

func le16(v uint16) []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, v)

	return b
}

func f32bytes(v float32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, math.Float32bits(v))

	return b
}

func testDir(descs ...channel.Descriptor) channeldir.Directory {
	dir := channeldir.Directory{Entries: descs}

	return dir
}

func discBytes(t *testing.T, channelIdx int, shape format.RecordShape) []byte {
	t.Helper()

	d := section.Discriminator{ChannelIndex: uint16(channelIdx), Shape: shape}

	raw, err := d.Pack()
	require.NoError(t, err)

	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, raw)

	return b
}

func TestDemux_Singleton(t *testing.T) {
	desc := channel.Descriptor{ID: 1, Name: "RPM", PhysicalType: format.F32, Scale: 1}
	dir := testDir(desc)

	var data []byte
	data = append(data, discBytes(t, 0, format.ShapeSingleton)...)
	data = append(data, le32(1000)...) // delta
	data = append(data, f32bytes(712)...)

	data = append(data, discBytes(t, 0, format.ShapeSingleton)...)
	data = append(data, le32(500)...) // delta
	data = append(data, f32bytes(720)...)

	d := New(dir, nil, errs.NewDiagnostics())
	accs, stats, err := d.Run(data)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.ResyncCount)

	acc := accs[1]
	require.NotNil(t, acc)
	require.Equal(t, 2, acc.Len())
	assert.Equal(t, int64(1000), acc.TimecodeAt(0))
	assert.InDelta(t, 712, acc.ValueAt(0), 1e-3)
	assert.Equal(t, int64(1500), acc.TimecodeAt(1))
	assert.InDelta(t, 720, acc.ValueAt(1), 1e-3)
}

func TestDemux_BlockPeriodic(t *testing.T) {
	desc := channel.Descriptor{ID: 5, Name: "Accel X", PhysicalType: format.F32, Scale: 1}
	dir := testDir(desc)

	var data []byte
	data = append(data, discBytes(t, 0, format.ShapeBlockPeriodic)...)
	data = append(data, le32(100)...)  // base delta
	data = append(data, le16(4)...)    // count
	data = append(data, le32(10)...)   // period
	for i := 0; i < 4; i++ {
		data = append(data, f32bytes(float32(i))...)
	}

	d := New(dir, nil, errs.NewDiagnostics())
	accs, _, err := d.Run(data)
	require.NoError(t, err)

	acc := accs[5]
	require.Equal(t, 4, acc.Len())
	assert.Equal(t, []int64{100, 110, 120, 130}, []int64{
		acc.TimecodeAt(0), acc.TimecodeAt(1), acc.TimecodeAt(2), acc.TimecodeAt(3),
	})
}

func TestDemux_BlockExplicit(t *testing.T) {
	desc := channel.Descriptor{ID: 9, Name: "Wheel Speed FL", PhysicalType: format.F32, Scale: 1}
	dir := testDir(desc)

	var data []byte
	data = append(data, discBytes(t, 0, format.ShapeBlockExplicit)...)
	data = append(data, le32(0)...) // base delta
	data = append(data, le16(3)...) // count
	data = append(data, le32(50)...)
	data = append(data, le32(25)...)
	data = append(data, le32(25)...)
	for i := 0; i < 3; i++ {
		data = append(data, f32bytes(float32(100+i))...)
	}

	d := New(dir, nil, errs.NewDiagnostics())
	accs, _, err := d.Run(data)
	require.NoError(t, err)

	acc := accs[9]
	require.Equal(t, 3, acc.Len())
	assert.Equal(t, int64(50), acc.TimecodeAt(0))
	assert.Equal(t, int64(75), acc.TimecodeAt(1))
	assert.Equal(t, int64(100), acc.TimecodeAt(2))
}

func TestDemux_ScaleOffsetApplied(t *testing.T) {
	desc := channel.Descriptor{ID: 2, Name: "GPS Latitude", PhysicalType: format.I32, Scale: 1e-7, Offset: 0}
	dir := testDir(desc)

	var data []byte
	data = append(data, discBytes(t, 0, format.ShapeSingleton)...)
	data = append(data, le32(0)...)
	data = append(data, le32(uint32(int32(353456789)))...)

	d := New(dir, nil, errs.NewDiagnostics())
	accs, _, err := d.Run(data)
	require.NoError(t, err)

	acc := accs[2]
	require.Equal(t, 1, acc.Len())
	assert.InDelta(t, 35.3456789, acc.ValueAt(0), 1e-7)
}

func TestDemux_ProgressCallback(t *testing.T) {
	desc := channel.Descriptor{ID: 1, Name: "RPM", PhysicalType: format.F32, Scale: 1}
	dir := testDir(desc)

	var data []byte
	for i := 0; i < 3; i++ {
		data = append(data, discBytes(t, 0, format.ShapeSingleton)...)
		data = append(data, le32(10)...)
		data = append(data, f32bytes(1)...)
	}

	var calls [][2]int64
	d := New(dir, func(consumed, total int64) { calls = append(calls, [2]int64{consumed, total}) }, errs.NewDiagnostics())

	_, _, err := d.Run(data)
	require.NoError(t, err)

	require.NotEmpty(t, calls)
	last := calls[len(calls)-1]
	assert.Equal(t, int64(len(data)), last[0])
	assert.Equal(t, int64(len(data)), last[1])
}

func TestDemux_UnknownDiscriminatorResyncs(t *testing.T) {
	desc := channel.Descriptor{ID: 1, Name: "RPM", PhysicalType: format.F32, Scale: 1}
	dir := testDir(desc)

	var data []byte
	data = append(data, 0xFF, 0xFF) // garbage: channel index way out of range
	data = append(data, discBytes(t, 0, format.ShapeSingleton)...)
	data = append(data, le32(10)...)
	data = append(data, f32bytes(99)...)

	diag := errs.NewDiagnostics()
	d := New(dir, nil, diag)
	accs, stats, err := d.Run(data)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.ResyncCount)
	require.Len(t, diag.Warnings(), 1)
	assert.Equal(t, errs.WarningUnknownDiscriminator, diag.Warnings()[0].Kind)

	acc := accs[1]
	require.Equal(t, 1, acc.Len())
	assert.InDelta(t, 99, acc.ValueAt(0), 1e-3)
}

func TestDemux_UnrecoverableResync(t *testing.T) {
	desc := channel.Descriptor{ID: 1, Name: "RPM", PhysicalType: format.F32, Scale: 1}
	dir := testDir(desc)

	data := make([]byte, 2048)
	for i := range data {
		data[i] = 0xFF
	}

	d := New(dir, nil, errs.NewDiagnostics())
	_, _, err := d.Run(data)
	require.Error(t, err)

	var fe *errs.FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, errs.ReasonUnrecoverable, fe.Reason)
}

func TestDemux_TruncatedPayload(t *testing.T) {
	desc := channel.Descriptor{ID: 1, Name: "RPM", PhysicalType: format.F32, Scale: 1}
	dir := testDir(desc)

	var data []byte
	data = append(data, discBytes(t, 0, format.ShapeSingleton)...)
	data = append(data, le32(10)...)
	data = append(data, 0x00, 0x01) // only 2 of 4 value bytes present

	d := New(dir, nil, errs.NewDiagnostics())
	_, _, err := d.Run(data)
	require.Error(t, err)

	var fe *errs.FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, errs.ReasonTruncated, fe.Reason)
}
