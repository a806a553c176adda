package channel

import (
	"github.com/scottsmith/xrklog/format"
	"github.com/scottsmith/xrklog/internal/hash"
)

// Descriptor is the Go-native view of a channel's static metadata, built
// from a decoded section.ChannelDescriptor by internal/channeldir.
type Descriptor struct {
	ID           uint16
	Name         string
	Units        string
	DecPts       int
	Interpolate  bool
	PhysicalType format.PhysicalType
	Scale        float64
	Offset       float64

	// NameHash addresses the channel by name independent of its wire ID or
	// directory position, the same way the corpus's blob metrics are
	// addressed by hash.ID(name) rather than a storage-order index.
	NameHash uint64
}

// WithNameHash returns a copy of d with NameHash set from d.Name.
// internal/channeldir calls this once per entry while building a
// Directory.
func (d Descriptor) WithNameHash() Descriptor {
	d.NameHash = hash.ID(d.Name)

	return d
}

// Apply converts a raw decoded sample to engineering units: (raw*Scale)+Offset.
func (d Descriptor) Apply(raw float64) float64 {
	return raw*d.Scale + d.Offset
}
