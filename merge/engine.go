package merge

import (
	"container/heap"
	"sort"

	"github.com/scottsmith/xrklog/channel"
	"github.com/scottsmith/xrklog/internal/pool"
)

// Engine runs the join described in the package doc: union of every
// channel's timecodes, then a per-channel projection onto that union axis.
type Engine struct{}

// NewEngine returns a ready-to-use Engine. It holds no state; a value type
// would do as well, but matches the constructor convention used elsewhere
// in the module.
func NewEngine() *Engine {
	return &Engine{}
}

// Merge joins channels on a shared timecode axis. An empty input produces
// a Table with a zero-length Timecodes column and no columns at all.
func (e *Engine) Merge(channels map[string]*channel.Channel) (*Table, error) {
	union := unionTimecodes(channels)

	// names is a transient scratch buffer: sorted, walked once below, and
	// never retained past this call (the column order it produces is
	// copied out name-by-name into Table.Columns).
	names, cleanup := pool.GetStringSlice(len(channels))
	defer cleanup()

	i := 0
	for name := range channels {
		names[i] = name
		i++
	}

	sort.Strings(names)

	columns := make([]Column, 0, len(names))

	for _, name := range names {
		ch := channels[name]

		values, err := project(ch, union)
		if err != nil {
			return nil, err
		}

		columns = append(columns, Column{
			Name:        name,
			Values:      values,
			units:       ch.Descriptor.Units,
			decPts:      ch.Descriptor.DecPts,
			interpolate: ch.Descriptor.Interpolate,
		})
	}

	return &Table{Timecodes: union, Columns: columns}, nil
}

// cursor walks one channel's timecodes during the k-way union merge.
type cursor struct {
	ch  *channel.Channel
	pos int
}

// cursorHeap is a min-heap of cursors ordered by their next timecode,
// implementing the union construction's O(N log K) k-way merge.
type cursorHeap []*cursor

func (h cursorHeap) Len() int            { return len(h) }
func (h cursorHeap) Less(i, j int) bool  { return h[i].ch.Timecodes[h[i].pos] < h[j].ch.Timecodes[h[j].pos] }
func (h cursorHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *cursorHeap) Push(x interface{}) { *h = append(*h, x.(*cursor)) }

func (h *cursorHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]

	return item
}

// unionTimecodes computes the sorted, deduplicated union of every
// channel's timecode column via a k-way merge over the (already sorted)
// per-channel columns.
func unionTimecodes(channels map[string]*channel.Channel) []int64 {
	h := make(cursorHeap, 0, len(channels))

	for _, ch := range channels {
		if ch.Len() > 0 {
			h = append(h, &cursor{ch: ch, pos: 0})
		}
	}

	heap.Init(&h)

	var union []int64

	for h.Len() > 0 {
		c := h[0]
		tc := c.ch.Timecodes[c.pos]

		if len(union) == 0 || union[len(union)-1] != tc {
			union = append(union, tc)
		}

		c.pos++

		if c.pos < c.ch.Len() {
			heap.Fix(&h, 0)
		} else {
			heap.Pop(&h)
		}
	}

	return union
}

// project produces ch's value at every timecode in union, via a
// two-pointer walk (O(U+S)) dispatching on the channel's interpolation
// policy: linear interpolation with flat extrapolation for float channels
// flagged interpolate=true, forward-fill (backward-filling before the
// first sample) otherwise.
func project(ch *channel.Channel, union []int64) (channel.Values, error) {
	// out is scratch: NewValuesLike copies it into the channel's own
	// physical representation below, so its pooled backing array is safe
	// to return once that copy is made.
	out, cleanup := pool.GetFloat64Slice(len(union))
	defer cleanup()

	if ch.Len() == 0 {
		for i := range out {
			out[i] = 0
		}

		return channel.NewValuesLike(ch.Descriptor.PhysicalType, out)
	}

	interpolate := ch.Descriptor.Interpolate && ch.Descriptor.PhysicalType.IsFloat()

	pos := 0

	for i, tc := range union {
		for pos+1 < ch.Len() && ch.Timecodes[pos+1] <= tc {
			pos++
		}

		out[i] = projectOne(ch, pos, tc, interpolate)
	}

	return channel.NewValuesLike(ch.Descriptor.PhysicalType, out)
}

// projectOne computes ch's value at tc given pos, the index of the latest
// sample whose timecode is <= tc (or 0 if tc precedes every sample).
func projectOne(ch *channel.Channel, pos int, tc int64, interpolate bool) float64 {
	_, vPos := ch.At(pos)

	sampleTc := ch.Timecodes[pos]
	if tc <= sampleTc || !interpolate || pos+1 >= ch.Len() {
		return vPos
	}

	nextTc, vNext := ch.At(pos + 1)
	if tc >= nextTc {
		return vNext
	}

	span := nextTc - sampleTc
	frac := float64(tc-sampleTc) / float64(span)

	return vPos + (vNext-vPos)*frac
}
