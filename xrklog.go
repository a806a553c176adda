// Package xrklog parses AIM XRK/XRZ data-logger files into structured,
// in-memory time-series channels, and can join those channels onto a
// single timecode axis on demand.
package xrklog

import (
	"github.com/scottsmith/xrklog/channel"
	"github.com/scottsmith/xrklog/errs"
	"github.com/scottsmith/xrklog/internal/assembler"
	"github.com/scottsmith/xrklog/internal/bytesource"
	"github.com/scottsmith/xrklog/internal/channeldir"
	"github.com/scottsmith/xrklog/internal/demux"
	"github.com/scottsmith/xrklog/internal/header"
	"github.com/scottsmith/xrklog/internal/options"
	"github.com/scottsmith/xrklog/laptable"
	"github.com/scottsmith/xrklog/merge"
)

// Metadata is the file-level key/value map decoded from the fixed
// preamble: Driver, Venue, Log Date, Log Time, and the rest of the keys
// internal/header.Metadata produces.
type Metadata map[string]any

// Stats surfaces parse-time statistics.
type Stats struct {
	ResyncCount   int
	BytesConsumed int64
}

// LogFile is the result of Parse: every channel that produced at least
// one sample, the lap table, file metadata, and any non-fatal warnings
// encountered along the way.
type LogFile struct {
	FileName string
	Channels map[string]*channel.Channel
	Laps     laptable.Table
	Metadata Metadata
	Warnings []errs.SchemaWarning
	Stats    Stats
}

// parseConfig holds Parse's optional settings.
type parseConfig struct {
	progress demux.ProgressFunc
	diag     *errs.Diagnostics
}

// Option configures a Parse call. It is an alias over the module's
// generic functional-options type, specialized to *parseConfig.
type Option = options.Option[*parseConfig]

// WithProgress registers a callback invoked periodically (and once more
// at the end) with bytes consumed so far and the sample region's total
// size.
func WithProgress(fn func(consumed, total int64)) Option {
	return options.NoError(func(c *parseConfig) { c.progress = fn })
}

// WithDiagnostics supplies the caller's own Diagnostics collector, so
// warnings can be inspected incrementally rather than only via
// LogFile.Warnings once Parse returns.
func WithDiagnostics(d *errs.Diagnostics) Option {
	return options.NoError(func(c *parseConfig) { c.diag = d })
}

// Parse reads and fully decodes the XRK/XRZ file at path. On any
// IOError or FormatError, it returns (nil, err); no partial LogFile ever
// escapes.
func Parse(path string, opts ...Option) (*LogFile, error) {
	cfg := &parseConfig{}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	if cfg.diag == nil {
		cfg.diag = errs.NewDiagnostics()
	}

	src, err := bytesource.Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	data := src.Bytes()

	hdr, err := header.NewReader().Read(data)
	if err != nil {
		return nil, err
	}

	dirData := data[hdr.ChannelDirectoryOffset:]

	dir, err := channeldir.Read(dirData, int(hdr.ChannelCount), cfg.diag)
	if err != nil {
		return nil, err
	}

	lapData := data[hdr.LapTableOffset:]

	laps, err := laptable.NewReader().Read(lapData, int(hdr.LapCount))
	if err != nil {
		return nil, err
	}

	sampleData := data[hdr.SampleRegionOffset : hdr.SampleRegionOffset+hdr.SampleRegionLength]

	d := demux.New(dir, cfg.progress, cfg.diag)

	accs, stats, err := d.Run(sampleData)
	if err != nil {
		return nil, err
	}

	channels, err := assembler.New(cfg.diag).Assemble(dir, accs)
	if err != nil {
		return nil, err
	}

	return &LogFile{
		FileName: path,
		Channels: channels,
		Laps:     laps,
		Metadata: header.Metadata(hdr),
		Warnings: cfg.diag.Warnings(),
		Stats:    Stats{ResyncCount: stats.ResyncCount, BytesConsumed: stats.BytesConsumed},
	}, nil
}

// KeyChannels returns l's speed, latitude, longitude, and altitude
// channels, by best-effort exact name match against the known AIM GPS
// channel aliases ("GPS Speed", "GPS Latitude", "GPS Longitude", "GPS
// Altitude"). A name absent from the file leaves its slot nil, not an
// error.
func (l *LogFile) KeyChannels() (speed, lat, lon, alt *channel.Channel) {
	speed = l.Channels["GPS Speed"]
	lat = l.Channels["GPS Latitude"]
	lon = l.Channels["GPS Longitude"]
	alt = l.Channels["GPS Altitude"]

	return speed, lat, lon, alt
}

// GetChannelsAsTable joins every channel in l.Channels onto a single
// timecode axis via merge.Engine.
func (l *LogFile) GetChannelsAsTable() (*merge.Table, error) {
	return merge.NewEngine().Merge(l.Channels)
}

// Track parses path and projects its GPS-keyed channels into a plain map
// shaped for a downstream GPS-track consumer: each key is a GPS channel
// name, each value a two-column time/value pair. A channel absent from
// the file is simply omitted from the result, not an error.
func Track(path string) (map[string]any, error) {
	lf, err := Parse(path)
	if err != nil {
		return nil, err
	}

	speed, lat, lon, alt := lf.KeyChannels()

	named := map[string]*channel.Channel{
		"GPS Speed":     speed,
		"GPS Latitude":  lat,
		"GPS Longitude": lon,
		"GPS Altitude":  alt,
	}

	out := make(map[string]any, len(named))

	for name, ch := range named {
		if ch == nil {
			continue
		}

		timecodes := make([]int64, ch.Len())
		values := make([]float64, ch.Len())

		for i := 0; i < ch.Len(); i++ {
			timecodes[i], values[i] = ch.At(i)
		}

		out[name] = map[string]any{
			"timecodes": timecodes,
			"values":    values,
			"units":     ch.Descriptor.Units,
		}
	}

	return out, nil
}
