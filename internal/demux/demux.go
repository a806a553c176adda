// Package demux implements the sample-region demultiplexer: the core
// algorithm that walks an XRK file's interleaved, multi-rate sample
// records and appends each decoded (timecode, value) pair to its owning
// channel's accumulator.
package demux

import (
	"encoding/binary"
	"fmt"

	"github.com/scottsmith/xrklog/channel"
	"github.com/scottsmith/xrklog/errs"
	"github.com/scottsmith/xrklog/internal/channeldir"
	"github.com/scottsmith/xrklog/section"
)

// progressSampleThreshold gates how often the progress callback fires:
// at least once per this many bytes of record data (spec §4.5), plus
// always once more at EOF.
const progressSampleThreshold = 1024 * 1024 // 1 MiB

// maxResyncWindow bounds how far a resync scan looks forward for a
// plausible discriminator before giving up (spec §4.5).
const maxResyncWindow = 1024 // 1 KiB

// ProgressFunc reports demultiplexing progress. Invoked synchronously from
// the parsing call, with monotonically non-decreasing consumed.
type ProgressFunc func(consumed, total int64)

// ParseStats surfaces parse-time statistics gathered while demultiplexing.
type ParseStats struct {
	ResyncCount   int
	BytesConsumed int64
}

// state is the per-record decode state (spec §9 re-architecture note:
// "model explicitly as a state machine").
type state int

const (
	stateAwaitDisc state = iota
	stateReadHeader
	stateReadPayload
	stateCommit
)

// recordCtx holds the in-progress record's decoded framing, reused across
// states within a single runRecord call.
type recordCtx struct {
	disc        section.Discriminator
	desc        channel.Descriptor
	headerStart int
	framing     framing
}

// Demultiplexer walks a sample region and reconstructs per-channel
// accumulators.
type Demultiplexer struct {
	dir      channeldir.Directory
	progress ProgressFunc
	diag     *errs.Diagnostics

	data  []byte
	pos   int
	state state
	rec   recordCtx

	accs              map[uint16]*Accumulator
	stats             ParseStats
	lastReportedBytes int64
}

// New returns a Demultiplexer over the channel directory dir. progress may
// be nil. diag may be nil (warnings are then simply discarded).
func New(dir channeldir.Directory, progress ProgressFunc, diag *errs.Diagnostics) *Demultiplexer {
	return &Demultiplexer{dir: dir, progress: progress, diag: diag}
}

// Run walks data (the sample region only) to completion, returning one
// accumulator per channel id that produced at least one record. On any
// FormatError, already-allocated accumulators are released back to the
// pool before returning.
func (d *Demultiplexer) Run(data []byte) (map[uint16]*Accumulator, ParseStats, error) {
	d.data = data
	d.pos = 0
	d.accs = make(map[uint16]*Accumulator)
	d.stats = ParseStats{}
	d.lastReportedBytes = 0

	total := int64(len(data))

	for d.pos < len(data) {
		d.state = stateAwaitDisc

		if err := d.runRecord(); err != nil {
			d.releaseAll()

			return nil, d.stats, err
		}

		d.maybeReportProgress(total)
	}

	d.stats.BytesConsumed = total

	if d.progress != nil {
		d.progress(total, total)
	}

	return d.accs, d.stats, nil
}

// runRecord drives one record through AwaitDisc -> ReadHeader ->
// ReadPayload -> Commit, advancing d.pos past it on success.
func (d *Demultiplexer) runRecord() error {
	for {
		switch d.state {
		case stateAwaitDisc:
			if err := d.awaitDisc(); err != nil {
				return err
			}

			d.state = stateReadHeader

		case stateReadHeader:
			if err := d.readHeader(); err != nil {
				return err
			}

			d.state = stateReadPayload

		case stateReadPayload:
			if err := d.readPayload(); err != nil {
				return err
			}

			d.state = stateCommit

		case stateCommit:
			d.commit()

			return nil
		}
	}
}

// awaitDisc reads the 2-byte discriminator at d.pos. An unparseable value
// or one naming a channel index outside the directory triggers a bounded
// resync scan rather than failing outright (spec §4.5).
func (d *Demultiplexer) awaitDisc() error {
	if d.pos+2 > len(d.data) {
		return errs.NewFormatError(int64(d.pos), errs.ReasonTruncated, "eof awaiting discriminator")
	}

	raw := binary.LittleEndian.Uint16(d.data[d.pos : d.pos+2])

	disc, err := section.ParseDiscriminator(raw)
	if err == nil && int(disc.ChannelIndex) < d.dir.Len() {
		d.rec.disc = disc
		d.rec.desc = d.dir.Entries[disc.ChannelIndex]
		d.rec.headerStart = d.pos + 2

		return nil
	}

	return d.resync()
}

// resync scans forward from d.pos+1 for a plausible discriminator: one
// that parses, names a known channel, and whose declared record length
// fits within the remaining buffer. The first such position is accepted
// as the start of the next record and recorded as a SchemaWarning.
// Exceeding maxResyncWindow without finding one is unrecoverable.
func (d *Demultiplexer) resync() error {
	start := d.pos

	limit := start + maxResyncWindow
	if limit > len(d.data) {
		limit = len(d.data)
	}

	for p := start + 1; p+2 <= limit; p++ {
		raw := binary.LittleEndian.Uint16(d.data[p : p+2])

		disc, err := section.ParseDiscriminator(raw)
		if err != nil || int(disc.ChannelIndex) >= d.dir.Len() {
			continue
		}

		desc := d.dir.Entries[disc.ChannelIndex]

		fr, ok := computeFraming(disc.Shape, desc, p+2, d.data)
		if !ok || p+2+fr.totalLen > len(d.data) {
			continue
		}

		d.stats.ResyncCount++
		d.diag.Warn(errs.WarningUnknownDiscriminator, int64(start),
			fmt.Sprintf("resynced %d byte(s) forward to channel %q", p-start, desc.Name))

		d.pos = p
		d.rec.disc = disc
		d.rec.desc = desc
		d.rec.headerStart = p + 2

		return nil
	}

	return errs.NewFormatError(int64(start), errs.ReasonUnrecoverable,
		"no plausible discriminator found within the resync window")
}

// readHeader decodes the record's shape-specific header fields.
func (d *Demultiplexer) readHeader() error {
	fr, ok := computeFraming(d.rec.disc.Shape, d.rec.desc, d.rec.headerStart, d.data)
	if !ok {
		return errs.NewFormatError(int64(d.rec.headerStart), errs.ReasonTruncated, "eof reading record header")
	}

	d.rec.framing = fr

	return nil
}

// readPayload validates that the record's declared payload actually fits
// in the remaining buffer. The raw bytes themselves are read in commit.
func (d *Demultiplexer) readPayload() error {
	end := d.rec.headerStart + d.rec.framing.totalLen
	if end > len(d.data) {
		return errs.NewFormatError(int64(d.rec.headerStart), errs.ReasonTruncated,
			"record payload extends past the sample region")
	}

	return nil
}

// commit decodes and appends every sample in the current record to its
// channel's accumulator, reconstructing absolute timecodes from the
// channel's running cursor, then advances d.pos past the record.
func (d *Demultiplexer) commit() {
	desc := d.rec.desc

	acc, ok := d.accs[desc.ID]
	if !ok {
		acc = newAccumulator(desc)
		d.accs[desc.ID] = acc
	}

	width := desc.PhysicalType.ByteWidth()
	fr := d.rec.framing

	d.commitSamples(acc, d.rec.disc.Shape, fr, width)

	d.pos = d.rec.headerStart + fr.totalLen
}

// releaseAll returns every accumulator's backing buffers to the pool. Used
// when Run aborts with an error, since no assembler will run to do it.
func (d *Demultiplexer) releaseAll() {
	for _, acc := range d.accs {
		acc.Release()
	}
}

// maybeReportProgress invokes the progress callback if at least
// progressSampleThreshold bytes have been consumed since the last report.
func (d *Demultiplexer) maybeReportProgress(total int64) {
	if d.progress == nil {
		return
	}

	consumed := int64(d.pos)
	if consumed-d.lastReportedBytes >= progressSampleThreshold {
		d.progress(consumed, total)
		d.lastReportedBytes = consumed
	}
}
