// Package assembler finalizes the demultiplexer's per-channel accumulators
// into immutable channel.Channel values.
package assembler

import (
	"github.com/scottsmith/xrklog/channel"
	"github.com/scottsmith/xrklog/errs"
	"github.com/scottsmith/xrklog/internal/channeldir"
	"github.com/scottsmith/xrklog/internal/demux"
)

// Assembler drains demux.Accumulator values into channel.Channel values.
type Assembler struct {
	diag *errs.Diagnostics
}

// New returns an Assembler. diag may be nil (warnings are then discarded).
func New(diag *errs.Diagnostics) *Assembler {
	return &Assembler{diag: diag}
}

// Assemble copies every accumulator's columns into freshly allocated,
// non-pooled storage and constructs the channel's final Channel value,
// releasing the accumulator's buffers back to the pool as it goes. Channels
// that appeared in the directory but never received a sample are dropped
// and recorded as a SchemaWarning; a channel entirely absent from accs
// (never emitted a single record) is also skipped the same way. When
// several directory entries share a name, the first of them that produced
// samples keeps the name and the later ones are dropped.
func (a *Assembler) Assemble(dir channeldir.Directory, accs map[uint16]*demux.Accumulator) (map[string]*channel.Channel, error) {
	out := make(map[string]*channel.Channel, len(accs))

	for _, desc := range dir.Entries {
		acc, ok := accs[desc.ID]

		if _, taken := out[desc.Name]; taken {
			if ok {
				acc.Release()
			}

			continue
		}

		if !ok || acc.Len() == 0 {
			a.diag.Warn(errs.WarningEmptyChannelDropped, -1, "channel "+desc.Name+" produced no samples")

			if ok {
				acc.Release()
			}

			continue
		}

		ch, err := a.finalize(acc)
		if err != nil {
			return nil, err
		}

		out[desc.Name] = ch
	}

	return out, nil
}

// finalize copies one accumulator's columns into permanent storage and
// constructs its Channel, releasing the accumulator's pooled buffers.
func (a *Assembler) finalize(acc *demux.Accumulator) (*channel.Channel, error) {
	n := acc.Len()

	timecodes := make([]int64, n)
	raw := make([]float64, n)

	for i := 0; i < n; i++ {
		timecodes[i] = acc.TimecodeAt(i)
		raw[i] = acc.ValueAt(i)
	}

	desc := acc.Descriptor()
	acc.Release()

	values, err := channel.NewValuesLike(desc.PhysicalType, raw)
	if err != nil {
		return nil, err
	}

	return channel.New(desc, timecodes, values)
}
