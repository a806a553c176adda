package section

import (
	"fmt"
	"math"

	"github.com/scottsmith/xrklog/endian"
	"github.com/scottsmith/xrklog/errs"
	"github.com/scottsmith/xrklog/format"
)

// DecodeRawValue decodes one raw sample of the given physical type from the
// leading pt.ByteWidth() bytes of data, widened to float64. The caller
// still owes the channel's scale/offset transform on top of this.
func DecodeRawValue(pt format.PhysicalType, data []byte) (float64, error) {
	width := pt.ByteWidth()
	if len(data) < width {
		return 0, errs.NewFormatError(int64(len(data)), errs.ReasonTruncated,
			fmt.Sprintf("need %d bytes for %s sample, got %d", width, pt, len(data)))
	}

	engine := endian.GetLittleEndianEngine()

	switch pt {
	case format.F32:
		return float64(math.Float32frombits(engine.Uint32(data[:4]))), nil
	case format.F64:
		return floatFromBits(engine.Uint64(data[:8])), nil
	case format.I32:
		return float64(int32(engine.Uint32(data[:4]))), nil
	case format.GearEnum:
		return float64(data[0]), nil
	default:
		return 0, errs.NewFormatError(-1, errs.ReasonOutOfRange, fmt.Sprintf("unknown physical type %v", pt))
	}
}
