package section

import (
	"fmt"

	"github.com/scottsmith/xrklog/endian"
	"github.com/scottsmith/xrklog/errs"
)

// Header is the fixed preamble at offset 0 of an uncompressed XRK file.
type Header struct {
	Version uint16

	ChannelDirectoryOffset uint32
	ChannelCount           uint16

	LapTableOffset uint32
	LapCount       uint16

	SampleRegionOffset uint32
	SampleRegionLength uint32

	Driver      string
	Venue       string
	LogDate     string
	LogTime     string
	LongComment string
	Session     string
	Series      string
	Vehicle     string

	OdoSystemDistance float64
	OdoSystemTime     string
	OdoUsr1Distance   float64
	OdoUsr1Time       string
	OdoUsr2Distance   float64
	OdoUsr2Time       string
	OdoUsr3Distance   float64
	OdoUsr3Time       string
	OdoUsr4Distance   float64
	OdoUsr4Time       string
}

// Parse decodes a Header from the leading HeaderSize bytes of data.
//
// Returns errs.FormatError{Reason: ReasonShortHeader} if data is too short,
// or errs.FormatError{Reason: ReasonBadMagic} if the magic does not match.
func (h *Header) Parse(data []byte) error {
	if len(data) < HeaderSize {
		return errs.NewFormatError(int64(len(data)), errs.ReasonShortHeader,
			fmt.Sprintf("need %d bytes, got %d", HeaderSize, len(data)))
	}

	if data[0] != Magic[0] || data[1] != Magic[1] || data[2] != Magic[2] || data[3] != Magic[3] {
		return errs.NewFormatError(0, errs.ReasonBadMagic, fmt.Sprintf("got %x", data[offMagic:offMagic+4]))
	}

	engine := endian.GetLittleEndianEngine()

	h.Version = engine.Uint16(data[offVersion : offVersion+2])
	h.ChannelDirectoryOffset = engine.Uint32(data[offChannelDirectoryOffset : offChannelDirectoryOffset+4])
	h.ChannelCount = engine.Uint16(data[offChannelCount : offChannelCount+2])
	h.LapTableOffset = engine.Uint32(data[offLapTableOffset : offLapTableOffset+4])
	h.LapCount = engine.Uint16(data[offLapCount : offLapCount+2])
	h.SampleRegionOffset = engine.Uint32(data[offSampleRegionOffset : offSampleRegionOffset+4])
	h.SampleRegionLength = engine.Uint32(data[offSampleRegionLength : offSampleRegionLength+4])

	h.Driver = decodeFixedString(data[offDriver : offDriver+lenDriver])
	h.Venue = decodeFixedString(data[offVenue : offVenue+lenVenue])
	h.LogDate = decodeFixedString(data[offLogDate : offLogDate+lenLogDate])
	h.LogTime = decodeFixedString(data[offLogTime : offLogTime+lenLogTime])
	h.LongComment = decodeFixedString(data[offLongComment : offLongComment+lenLongComment])
	h.Session = decodeFixedString(data[offSession : offSession+lenSession])
	h.Series = decodeFixedString(data[offSeries : offSeries+lenSeries])
	h.Vehicle = decodeFixedString(data[offVehicle : offVehicle+lenVehicle])

	h.OdoSystemDistance = floatFromBits(engine.Uint64(data[offOdoSystemDistance : offOdoSystemDistance+8]))
	h.OdoSystemTime = decodeFixedString(data[offOdoSystemTime : offOdoSystemTime+lenOdoTime])
	h.OdoUsr1Distance = floatFromBits(engine.Uint64(data[offOdoUsr1Distance : offOdoUsr1Distance+8]))
	h.OdoUsr1Time = decodeFixedString(data[offOdoUsr1Time : offOdoUsr1Time+lenOdoTime])
	h.OdoUsr2Distance = floatFromBits(engine.Uint64(data[offOdoUsr2Distance : offOdoUsr2Distance+8]))
	h.OdoUsr2Time = decodeFixedString(data[offOdoUsr2Time : offOdoUsr2Time+lenOdoTime])
	h.OdoUsr3Distance = floatFromBits(engine.Uint64(data[offOdoUsr3Distance : offOdoUsr3Distance+8]))
	h.OdoUsr3Time = decodeFixedString(data[offOdoUsr3Time : offOdoUsr3Time+lenOdoTime])
	h.OdoUsr4Distance = floatFromBits(engine.Uint64(data[offOdoUsr4Distance : offOdoUsr4Distance+8]))
	h.OdoUsr4Time = decodeFixedString(data[offOdoUsr4Time : offOdoUsr4Time+lenOdoTime])

	return nil
}

// Bytes serializes the Header back into a HeaderSize-byte buffer. Used by
// tests to build fixtures; XRK writing is out of scope for the parser.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)
	copy(b[offMagic:offMagic+4], Magic[:])

	engine := endian.GetLittleEndianEngine()

	engine.PutUint16(b[offVersion:offVersion+2], h.Version)
	engine.PutUint32(b[offChannelDirectoryOffset:offChannelDirectoryOffset+4], h.ChannelDirectoryOffset)
	engine.PutUint16(b[offChannelCount:offChannelCount+2], h.ChannelCount)
	engine.PutUint32(b[offLapTableOffset:offLapTableOffset+4], h.LapTableOffset)
	engine.PutUint16(b[offLapCount:offLapCount+2], h.LapCount)
	engine.PutUint32(b[offSampleRegionOffset:offSampleRegionOffset+4], h.SampleRegionOffset)
	engine.PutUint32(b[offSampleRegionLength:offSampleRegionLength+4], h.SampleRegionLength)

	copy(b[offDriver:offDriver+lenDriver], encodeFixedString(h.Driver, lenDriver))
	copy(b[offVenue:offVenue+lenVenue], encodeFixedString(h.Venue, lenVenue))
	copy(b[offLogDate:offLogDate+lenLogDate], encodeFixedString(h.LogDate, lenLogDate))
	copy(b[offLogTime:offLogTime+lenLogTime], encodeFixedString(h.LogTime, lenLogTime))
	copy(b[offLongComment:offLongComment+lenLongComment], encodeFixedString(h.LongComment, lenLongComment))
	copy(b[offSession:offSession+lenSession], encodeFixedString(h.Session, lenSession))
	copy(b[offSeries:offSeries+lenSeries], encodeFixedString(h.Series, lenSeries))
	copy(b[offVehicle:offVehicle+lenVehicle], encodeFixedString(h.Vehicle, lenVehicle))

	engine.PutUint64(b[offOdoSystemDistance:offOdoSystemDistance+8], floatBits(h.OdoSystemDistance))
	copy(b[offOdoSystemTime:offOdoSystemTime+lenOdoTime], encodeFixedString(h.OdoSystemTime, lenOdoTime))
	engine.PutUint64(b[offOdoUsr1Distance:offOdoUsr1Distance+8], floatBits(h.OdoUsr1Distance))
	copy(b[offOdoUsr1Time:offOdoUsr1Time+lenOdoTime], encodeFixedString(h.OdoUsr1Time, lenOdoTime))
	engine.PutUint64(b[offOdoUsr2Distance:offOdoUsr2Distance+8], floatBits(h.OdoUsr2Distance))
	copy(b[offOdoUsr2Time:offOdoUsr2Time+lenOdoTime], encodeFixedString(h.OdoUsr2Time, lenOdoTime))
	engine.PutUint64(b[offOdoUsr3Distance:offOdoUsr3Distance+8], floatBits(h.OdoUsr3Distance))
	copy(b[offOdoUsr3Time:offOdoUsr3Time+lenOdoTime], encodeFixedString(h.OdoUsr3Time, lenOdoTime))
	engine.PutUint64(b[offOdoUsr4Distance:offOdoUsr4Distance+8], floatBits(h.OdoUsr4Distance))
	copy(b[offOdoUsr4Time:offOdoUsr4Time+lenOdoTime], encodeFixedString(h.OdoUsr4Time, lenOdoTime))

	return b
}
