package laptable

import (
	"fmt"

	"github.com/scottsmith/xrklog/errs"
	"github.com/scottsmith/xrklog/section"
)

// Reader decodes a sequence of fixed-width section.LapEntry records into a
// Table.
type Reader struct {
	entrySize int
}

// NewReader returns a Reader for section.LapEntrySize-wide records.
func NewReader() *Reader {
	return &Reader{entrySize: section.LapEntrySize}
}

// Read decodes count consecutive lap entries starting at data[0].
func (r *Reader) Read(data []byte, count int) (Table, error) {
	t := Table{
		Num:       make([]int, 0, count),
		StartTime: make([]int64, 0, count),
		EndTime:   make([]int64, 0, count),
	}

	for i := 0; i < count; i++ {
		off := i * r.entrySize
		if off+r.entrySize > len(data) {
			return Table{}, errs.NewFormatError(int64(off), errs.ReasonTruncated,
				fmt.Sprintf("lap entry %d extends past the lap table data", i))
		}

		var le section.LapEntry
		if err := le.Parse(data[off : off+r.entrySize]); err != nil {
			return Table{}, err
		}

		t.Num = append(t.Num, int(le.Num))
		t.StartTime = append(t.StartTime, le.StartTime)
		t.EndTime = append(t.EndTime, le.EndTime)
	}

	return t, nil
}
