package demux

import (
	"encoding/binary"

	"github.com/scottsmith/xrklog/channel"
	"github.com/scottsmith/xrklog/format"
)

// maxBlockCount bounds a block record's declared sample count. It exists
// only to keep the resync scan's plausibility check from treating an
// arbitrary noise byte as a "valid" count; 65535 (the field's natural
// uint16 range) would accept almost anything.
const maxBlockCount = 1 << 12

// framing describes the on-wire layout of one sample record's header and
// payload, everything after the 2-byte discriminator already consumed by
// awaitDisc. The wire shapes, per spec §4.5:
//
//	Singleton:      [delta uint32][raw_value]
//	BlockPeriodic:   [base_delta uint32][count uint16][period uint32][count * raw_value]
//	BlockExplicit:   [base_delta uint32][count uint16][count * delta uint32][count * raw_value]
//
// For BlockExplicit, each of the count deltas is cumulative from the
// previous sample's timecode, the first delta measured from base (the
// channel's running cursor plus base_delta) — this and the discriminator
// bit layout are the open-question framing decisions recorded in
// DESIGN.md.
type framing struct {
	payloadOff int // absolute offset into data where raw values begin
	deltasOff  int // absolute offset of the explicit delta array (ShapeBlockExplicit only)
	count      int
	baseDelta  uint32
	period     uint32
	totalLen   int // header + payload bytes, measured from headerStart
}

// computeFraming decodes a record's header fields (everything between the
// discriminator and the raw value payload) and reports the full on-wire
// record length. It validates only that the header itself fits in data;
// the payload's fit is the caller's responsibility (readPayload checks it
// as a distinct, explicitly truncation-classified failure; the resync
// scanner checks it as a plausibility gate).
func computeFraming(shape format.RecordShape, desc channel.Descriptor, headerStart int, data []byte) (framing, bool) {
	width := desc.PhysicalType.ByteWidth()

	switch shape {
	case format.ShapeSingleton:
		if headerStart+4 > len(data) {
			return framing{}, false
		}

		baseDelta := binary.LittleEndian.Uint32(data[headerStart : headerStart+4])

		return framing{
			payloadOff: headerStart + 4,
			count:      1,
			baseDelta:  baseDelta,
			totalLen:   4 + width,
		}, true

	case format.ShapeBlockPeriodic:
		if headerStart+10 > len(data) {
			return framing{}, false
		}

		baseDelta := binary.LittleEndian.Uint32(data[headerStart : headerStart+4])
		count := int(binary.LittleEndian.Uint16(data[headerStart+4 : headerStart+6]))
		period := binary.LittleEndian.Uint32(data[headerStart+6 : headerStart+10])

		if count <= 0 || count > maxBlockCount {
			return framing{}, false
		}

		return framing{
			payloadOff: headerStart + 10,
			count:      count,
			baseDelta:  baseDelta,
			period:     period,
			totalLen:   10 + count*width,
		}, true

	case format.ShapeBlockExplicit:
		if headerStart+6 > len(data) {
			return framing{}, false
		}

		baseDelta := binary.LittleEndian.Uint32(data[headerStart : headerStart+4])
		count := int(binary.LittleEndian.Uint16(data[headerStart+4 : headerStart+6]))

		if count <= 0 || count > maxBlockCount {
			return framing{}, false
		}

		deltasOff := headerStart + 6

		return framing{
			payloadOff: deltasOff + count*4,
			deltasOff:  deltasOff,
			count:      count,
			baseDelta:  baseDelta,
			totalLen:   6 + count*4 + count*width,
		}, true

	default:
		return framing{}, false
	}
}
