package section

import (
	"fmt"

	"github.com/scottsmith/xrklog/endian"
	"github.com/scottsmith/xrklog/errs"
)

// LapEntry is one fixed-width entry of the lap table.
type LapEntry struct {
	Num       uint32
	StartTime int64
	EndTime   int64
}

// Parse decodes a LapEntry from the leading LapEntrySize bytes of data.
func (l *LapEntry) Parse(data []byte) error {
	if len(data) < LapEntrySize {
		return errs.NewFormatError(int64(len(data)), errs.ReasonShortHeader,
			fmt.Sprintf("lap entry needs %d bytes, got %d", LapEntrySize, len(data)))
	}

	engine := endian.GetLittleEndianEngine()

	l.Num = engine.Uint32(data[leOffNum : leOffNum+4])
	l.StartTime = int64(engine.Uint64(data[leOffStartTime : leOffStartTime+8]))
	l.EndTime = int64(engine.Uint64(data[leOffEndTime : leOffEndTime+8]))

	return nil
}

// Bytes serializes the LapEntry into a LapEntrySize-byte buffer. Used by
// tests to build fixtures.
func (l *LapEntry) Bytes() []byte {
	b := make([]byte, LapEntrySize)

	engine := endian.GetLittleEndianEngine()

	engine.PutUint32(b[leOffNum:leOffNum+4], l.Num)
	engine.PutUint64(b[leOffStartTime:leOffStartTime+8], uint64(l.StartTime))
	engine.PutUint64(b[leOffEndTime:leOffEndTime+8], uint64(l.EndTime))

	return b
}
