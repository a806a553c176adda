// Package header decodes the fixed preamble of an XRK file into the
// metadata map a LogFile exposes.
package header

import "github.com/scottsmith/xrklog/section"

// Reader decodes a section.Header and projects it into a metadata map.
type Reader struct{}

// NewReader returns a Reader.
func NewReader() *Reader {
	return &Reader{}
}

// Read parses the fixed preamble at the start of data.
func (r *Reader) Read(data []byte) (section.Header, error) {
	var h section.Header
	if err := h.Parse(data); err != nil {
		return section.Header{}, err
	}

	return h, nil
}

// Metadata projects a decoded Header into the string/float64 map that
// rides on LogFile.Metadata, keyed the way the reference fixtures name
// them.
func Metadata(h section.Header) map[string]any {
	return map[string]any{
		"Driver":                  h.Driver,
		"Venue":                   h.Venue,
		"Log Date":                h.LogDate,
		"Log Time":                h.LogTime,
		"Long Comment":            h.LongComment,
		"Session":                 h.Session,
		"Series":                  h.Series,
		"Vehicle":                 h.Vehicle,
		"Odo/System Distance (km)": h.OdoSystemDistance,
		"Odo/System Time":         h.OdoSystemTime,
		"Odo/Usr 1 Distance (km)": h.OdoUsr1Distance,
		"Odo/Usr 1 Time":         h.OdoUsr1Time,
		"Odo/Usr 2 Distance (km)": h.OdoUsr2Distance,
		"Odo/Usr 2 Time":         h.OdoUsr2Time,
		"Odo/Usr 3 Distance (km)": h.OdoUsr3Distance,
		"Odo/Usr 3 Time":         h.OdoUsr3Time,
		"Odo/Usr 4 Distance (km)": h.OdoUsr4Distance,
		"Odo/Usr 4 Time":         h.OdoUsr4Time,
	}
}
