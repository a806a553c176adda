// Package merge joins a set of channels onto a single timecode axis,
// producing a wide table with one column per channel.
package merge

import (
	"strconv"

	"github.com/scottsmith/xrklog/channel"
)

// Column is one channel's projection onto the merged table's union
// timecode axis. Its Values has exactly as many entries as Table.Timecodes.
type Column struct {
	Name   string
	Values channel.Values

	units       string
	decPts      int
	interpolate bool
}

// Metadata materializes this column's descriptor fields as the
// byte-string key/value pairs surfaced at the package boundary: "units",
// "dec_pts", "interpolate" ("True"/"False"). The typed fields are the
// internal representation; this map exists only for callers that want the
// same shape the reference ecosystem exposes.
func (c Column) Metadata() map[string][]byte {
	interpolate := "False"
	if c.interpolate {
		interpolate = "True"
	}

	return map[string][]byte{
		"units":       []byte(c.units),
		"dec_pts":     []byte(strconv.Itoa(c.decPts)),
		"interpolate": []byte(interpolate),
	}
}

// Table is the result of a merge: a shared, sorted, strictly-increasing
// timecode axis plus one Column per input channel, alphabetical by name.
type Table struct {
	Timecodes []int64
	Columns   []Column
}
