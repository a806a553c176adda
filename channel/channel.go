package channel

import "fmt"

// Channel is a finished, immutable time series: a descriptor plus two
// parallel columns, timecodes (milliseconds since session start, strictly
// increasing) and values (one of the concrete Values representations).
//
// Invariants (len(Timecodes) == Values.Len(), strictly increasing
// timecodes, value kind matching Descriptor.PhysicalType) are enforced once
// at construction by New, which internal/assembler calls after draining a
// channel's accumulator. Nothing downstream re-validates them.
type Channel struct {
	Descriptor Descriptor
	Timecodes  []int64
	Values     Values
}

// New validates and constructs a Channel. It is the only place these
// invariants are checked; everything else in the module trusts a *Channel
// it is handed.
func New(desc Descriptor, timecodes []int64, values Values) (*Channel, error) {
	if len(timecodes) != values.Len() {
		return nil, fmt.Errorf("xrklog: channel %q: %d timecodes, %d values", desc.Name, len(timecodes), values.Len())
	}

	if values.PhysicalType() != desc.PhysicalType {
		return nil, fmt.Errorf("xrklog: channel %q: descriptor type %v does not match value type %v",
			desc.Name, desc.PhysicalType, values.PhysicalType())
	}

	for i := 1; i < len(timecodes); i++ {
		if timecodes[i] <= timecodes[i-1] {
			return nil, fmt.Errorf("xrklog: channel %q: timecodes not strictly increasing at index %d", desc.Name, i)
		}
	}

	return &Channel{Descriptor: desc, Timecodes: timecodes, Values: values}, nil
}

// Len returns the number of samples in the channel.
func (c *Channel) Len() int {
	return len(c.Timecodes)
}

// At returns the timecode and the value (widened to float64) at index i.
func (c *Channel) At(i int) (timecode int64, value float64) {
	return c.Timecodes[i], c.Values.At(i)
}
