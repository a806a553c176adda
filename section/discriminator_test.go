package section

import (
	"testing"

	"github.com/scottsmith/xrklog/format"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscriminator_PackParse_RoundTrip(t *testing.T) {
	cases := []Discriminator{
		{ChannelIndex: 0, Shape: format.ShapeSingleton},
		{ChannelIndex: 1, Shape: format.ShapeBlockPeriodic},
		{ChannelIndex: 90, Shape: format.ShapeBlockExplicit},
		{ChannelIndex: DiscriminatorMaxChannelIndex, Shape: format.ShapeSingleton},
	}

	for _, d := range cases {
		raw, err := d.Pack()
		require.NoError(t, err)

		got, err := ParseDiscriminator(raw)
		require.NoError(t, err)
		assert.Equal(t, d, got)
	}
}

func TestDiscriminator_Pack_ChannelIndexOverflow(t *testing.T) {
	d := Discriminator{ChannelIndex: DiscriminatorMaxChannelIndex + 1, Shape: format.ShapeSingleton}
	_, err := d.Pack()
	assert.Error(t, err)
}

func TestParseDiscriminator_UnknownShape(t *testing.T) {
	_, err := ParseDiscriminator(0x0003) // shape bits == 3, not assigned
	assert.Error(t, err)
}
