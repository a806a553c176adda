// Package channeldir walks a file's fixed-width channel descriptor table
// into the ordered channel directory the demultiplexer and assembler key
// their work off of.
package channeldir

import (
	"fmt"

	"github.com/scottsmith/xrklog/channel"
	"github.com/scottsmith/xrklog/errs"
	"github.com/scottsmith/xrklog/internal/collision"
	"github.com/scottsmith/xrklog/section"
)

// Directory is the ordered list of channel descriptors declared by a file,
// indexed both by position (matching section.Discriminator's 0-based
// channel index) and by name.
type Directory struct {
	Entries []channel.Descriptor
	byName  map[string]int
}

// Read decodes count consecutive section.ChannelDescriptor entries from
// data, reporting duplicate names via diag instead of failing the parse:
// the first occurrence of a name wins and owns its directory position,
// subsequent duplicates are recorded as warnings and keep their own
// position (so the sample region's discriminator indices stay valid) but
// are not reachable by name.
func Read(data []byte, count int, diag *errs.Diagnostics) (Directory, error) {
	dir := Directory{
		Entries: make([]channel.Descriptor, 0, count),
		byName:  make(map[string]int, count),
	}

	tracker := collision.NewTracker()

	for i := 0; i < count; i++ {
		off := i * section.ChannelDescriptorSize
		if off+section.ChannelDescriptorSize > len(data) {
			return Directory{}, errs.NewFormatError(int64(off), errs.ReasonTruncated,
				fmt.Sprintf("channel descriptor %d extends past the directory data", i))
		}

		var cd section.ChannelDescriptor
		if err := cd.Parse(data[off : off+section.ChannelDescriptorSize]); err != nil {
			return Directory{}, fmt.Errorf("xrklog: channel descriptor %d: %w", i, err)
		}

		desc := channel.Descriptor{
			ID:           cd.ID,
			Name:         cd.Name,
			Units:        cd.Units,
			DecPts:       int(cd.DecPts),
			Interpolate:  cd.Interpolate,
			PhysicalType: cd.PhysicalType,
			Scale:        cd.Scale,
			Offset:       cd.Offset,
		}.WithNameHash()
		dir.Entries = append(dir.Entries, desc)

		if _, duplicate := tracker.Track(desc.Name); duplicate {
			diag.Warn(errs.WarningDuplicateChannelName, int64(off),
				fmt.Sprintf("channel %q at directory index %d duplicates the one at index %d", desc.Name, i, dir.byName[desc.Name]))

			continue
		}

		dir.byName[desc.Name] = i
	}

	return dir, nil
}

// Len returns the number of channel descriptors in the directory.
func (d Directory) Len() int {
	return len(d.Entries)
}

// ByName returns the descriptor for name and whether it was found. A name
// that collided with an earlier entry is not reachable here; only the
// first occurrence is.
func (d Directory) ByName(name string) (channel.Descriptor, bool) {
	i, ok := d.byName[name]
	if !ok {
		return channel.Descriptor{}, false
	}

	return d.Entries[i], true
}

// ByNameHash scans for the first entry whose NameHash matches h. Useful
// when a caller only holds a hash.ID-derived identity (e.g. one computed
// before the directory was read) rather than the literal name.
func (d Directory) ByNameHash(h uint64) (channel.Descriptor, bool) {
	for _, desc := range d.Entries {
		if desc.NameHash == h {
			return desc, true
		}
	}

	return channel.Descriptor{}, false
}
