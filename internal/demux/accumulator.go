package demux

import (
	"encoding/binary"
	"math"

	"github.com/scottsmith/xrklog/channel"
	"github.com/scottsmith/xrklog/internal/pool"
)

// Accumulator holds one channel's in-progress (timecode, value) columns
// while the sample region is being walked. The two columns are backed by
// pooled, growable byte buffers (internal/pool's per-channel buffer pool)
// rather than a typed slice, since the final row count isn't known until
// the channel's last record is committed; Release hands the buffers back
// to the pool once the assembler has copied their contents into the
// channel's permanent, differently-typed storage.
type Accumulator struct {
	desc channel.Descriptor
	// cursor is the channel's last absolute timecode, the basis the next
	// record's delta is added to. Zero-valued for a channel's first record,
	// which is exactly the "session start" starting point spec §4.5 assumes.
	cursor int64

	timecodes *pool.ByteBuffer // 8 little-endian bytes per sample
	values    *pool.ByteBuffer // 8 little-endian bytes per sample (float64, widened)
}

func newAccumulator(desc channel.Descriptor) *Accumulator {
	return &Accumulator{
		desc:      desc,
		timecodes: pool.GetChannelBuffer(),
		values:    pool.GetChannelBuffer(),
	}
}

// Descriptor returns the channel descriptor this accumulator belongs to.
func (a *Accumulator) Descriptor() channel.Descriptor {
	return a.desc
}

// append records one (timecode, value) sample. Timecodes must be supplied
// in strictly increasing order per channel (spec §4.5 "Ordering"); neither
// append nor the demultiplexer checks this, so a zero delta or zero block
// period in the file repeats a timecode, which channel.New then rejects
// when the assembler finalizes the channel.
func (a *Accumulator) append(timecode int64, value float64) {
	var b [8]byte

	binary.LittleEndian.PutUint64(b[:], uint64(timecode))
	a.timecodes.MustWrite(b[:])

	binary.LittleEndian.PutUint64(b[:], math.Float64bits(value))
	a.values.MustWrite(b[:])

	a.cursor = timecode
}

// Len returns the number of samples committed so far.
func (a *Accumulator) Len() int {
	return a.timecodes.Len() / 8
}

// TimecodeAt and ValueAt decode the i-th committed sample. Used by the
// assembler when finalizing; not on the demultiplexer's hot path.
func (a *Accumulator) TimecodeAt(i int) int64 {
	return int64(binary.LittleEndian.Uint64(a.timecodes.Bytes()[i*8 : i*8+8]))
}

func (a *Accumulator) ValueAt(i int) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(a.values.Bytes()[i*8 : i*8+8]))
}

// Release returns the backing buffers to the pool. Must be called exactly
// once, after the assembler has copied out everything it needs.
func (a *Accumulator) Release() {
	pool.PutChannelBuffer(a.timecodes)
	pool.PutChannelBuffer(a.values)
}
