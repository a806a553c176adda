package header

import (
	"testing"

	"github.com/scottsmith/xrklog/section"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReader_Read(t *testing.T) {
	want := section.Header{
		Version:           1,
		Driver:            "CMD",
		Venue:             "Fuji GP Sh",
		LogDate:           "2024-05-01",
		OdoSystemDistance: 5313.42,
	}

	data := want.Bytes()

	got, err := NewReader().Read(data)
	require.NoError(t, err)
	assert.Equal(t, want.Driver, got.Driver)
	assert.Equal(t, want.Venue, got.Venue)
	assert.InDelta(t, want.OdoSystemDistance, got.OdoSystemDistance, 1e-9)
}

func TestMetadata(t *testing.T) {
	h := section.Header{
		Driver:            "CMD",
		Venue:             "Fuji GP Sh",
		OdoSystemDistance: 5313.42,
	}

	m := Metadata(h)
	assert.Equal(t, "CMD", m["Driver"])
	assert.Equal(t, "Fuji GP Sh", m["Venue"])
	assert.InDelta(t, 5313.42, m["Odo/System Distance (km)"].(float64), 1e-9)
}
