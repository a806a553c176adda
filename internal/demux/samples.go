package demux

import (
	"encoding/binary"

	"github.com/scottsmith/xrklog/format"
	"github.com/scottsmith/xrklog/section"
)

// commitSamples decodes every raw value in the current record, reconstructs
// each one's absolute timecode from acc's running cursor, applies the
// channel's scale/offset, and appends the result to acc.
func (d *Demultiplexer) commitSamples(acc *Accumulator, shape format.RecordShape, fr framing, width int) {
	switch shape {
	case format.ShapeSingleton:
		tc := acc.cursor + int64(fr.baseDelta)
		d.appendSample(acc, tc, fr.payloadOff, width)

	case format.ShapeBlockPeriodic:
		base := acc.cursor + int64(fr.baseDelta)

		for k := 0; k < fr.count; k++ {
			tc := base + int64(k)*int64(fr.period)
			off := fr.payloadOff + k*width
			d.appendSample(acc, tc, off, width)
		}

	case format.ShapeBlockExplicit:
		// base is the channel's running cursor plus base_delta; it is never
		// itself emitted as a sample timecode, each of the count deltas
		// (cumulative from base) produces one.
		tc := acc.cursor + int64(fr.baseDelta)

		for k := 0; k < fr.count; k++ {
			deltaOff := fr.deltasOff + k*4
			delta := binary.LittleEndian.Uint32(d.data[deltaOff : deltaOff+4])
			tc += int64(delta)

			off := fr.payloadOff + k*width
			d.appendSample(acc, tc, off, width)
		}
	}
}

// appendSample decodes one raw value at off and appends (tc, physical
// value) to acc.
func (d *Demultiplexer) appendSample(acc *Accumulator, tc int64, off, width int) {
	raw, err := section.DecodeRawValue(acc.desc.PhysicalType, d.data[off:off+width])
	if err != nil {
		// Width was already validated by computeFraming/readPayload against
		// the buffer bounds; a decode error here would mean an unsupported
		// physical type, which channeldir.Read already rejected at the
		// directory-parse stage.
		return
	}

	acc.append(tc, acc.desc.Apply(raw))
}
