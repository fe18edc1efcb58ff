package data

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// TimestampLayout is the textual form of Record.Timestamp in the SQL output.
const TimestampLayout = "2006-01-02 15:04:05"

// Record is one synthetic speed-test measurement.
type Record struct {
	TestID            string    `json:"test_id"`
	Timestamp         time.Time `json:"-"`
	Operator          string    `json:"operator"`
	NetworkType       string    `json:"network_type"`
	DownloadMbps      float64   `json:"download_mbps"`
	UploadMbps        float64   `json:"upload_mbps"`
	LatencyMs         float64   `json:"latency_ms"`
	SignalStrengthDBm int       `json:"signal_strength_dbm"`
	DeviceType        string    `json:"device_type"`
	Wilaya            string    `json:"wilaya"`
	Commune           string    `json:"commune"`
	Latitude          float64   `json:"latitude"`
	Longitude         float64   `json:"longitude"`
}

// FormattedTimestamp renders Timestamp with TimestampLayout.
func (r Record) FormattedTimestamp() string { return r.Timestamp.Format(TimestampLayout) }

// Metrics is the per-technology measurement part of a record.
type Metrics struct {
	DownloadMbps      float64
	UploadMbps        float64
	LatencyMs         float64
	SignalStrengthDBm int
}

// Synthesizer draws records from a Config. All randomness, including test
// IDs, comes from the supplied rng so a fixed seed reproduces a run.
// It is not safe for concurrent use.
type Synthesizer struct {
	cfg Config
	rng *rand.Rand
	now func() time.Time
}

// NewSynthesizer validates cfg and binds it to rng.
func NewSynthesizer(cfg Config, rng *rand.Rand) (*Synthesizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidConfig)
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Synthesizer{cfg: cfg, rng: rng, now: now}, nil
}

// Config returns the validated configuration.
func (s *Synthesizer) Config() Config { return s.cfg }

// Generate returns n records drawn one after another.
func (s *Synthesizer) Generate(n int) ([]Record, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCount, n)
	}
	out := make([]Record, 0, n)
	for i := 0; i < n; i++ {
		rec, err := s.Record()
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// Record draws one record with a weighted network technology.
func (s *Synthesizer) Record() (Record, error) {
	region, commune, lat, lon := s.location()
	tech := PickWeighted(s.rng, s.cfg.Technologies)
	return s.finish(region, commune, lat, lon, tech)
}

// RecordFor draws one record with the technology fixed to tech.
func (s *Synthesizer) RecordFor(tech Technology) (Record, error) {
	region, commune, lat, lon := s.location()
	return s.finish(region, commune, lat, lon, tech)
}

func (s *Synthesizer) location() (Region, string, float64, float64) {
	region := s.cfg.Regions[s.rng.Intn(len(s.cfg.Regions))]
	commune := region.SubRegions[s.rng.Intn(len(region.SubRegions))]
	lat := uniform(s.rng, region.LatMin, region.LatMax)
	lon := uniform(s.rng, region.LonMin, region.LonMax)
	return region, commune, lat, lon
}

func (s *Synthesizer) finish(region Region, commune string, lat, lon float64, tech Technology) (Record, error) {
	m := SampleMetrics(s.rng, tech)
	device := s.cfg.Devices[s.rng.Intn(len(s.cfg.Devices))]

	days := s.rng.Intn(s.cfg.MaxAgeDays + 1)
	secs := s.rng.Intn(s.cfg.MaxAgeSeconds + 1)
	ts := s.now().
		Add(-time.Duration(days) * 24 * time.Hour).
		Add(-time.Duration(secs) * time.Second).
		Truncate(time.Second)

	id, err := uuid.NewRandomFromReader(s.rng)
	if err != nil {
		return Record{}, fmt.Errorf("generate test id: %w", err)
	}

	return Record{
		TestID:            id.String(),
		Timestamp:         ts,
		Operator:          s.cfg.Operator,
		NetworkType:       tech.Name,
		DownloadMbps:      m.DownloadMbps,
		UploadMbps:        m.UploadMbps,
		LatencyMs:         m.LatencyMs,
		SignalStrengthDBm: m.SignalStrengthDBm,
		DeviceType:        device,
		Wilaya:            region.Name,
		Commune:           commune,
		Latitude:          lat,
		Longitude:         lon,
	}, nil
}

// PickWeighted draws a technology with probability proportional to its
// Weight. Zero-weight entries are never chosen. techs must have a positive
// total weight.
func PickWeighted(rng *rand.Rand, techs []Technology) Technology {
	total := 0
	for _, t := range techs {
		total += t.Weight
	}
	n := rng.Intn(total)
	for _, t := range techs {
		if n < t.Weight {
			return t
		}
		n -= t.Weight
	}
	return techs[len(techs)-1]
}

// SampleMetrics draws the four metrics uniformly from tech's ranges.
// Continuous values are rounded to two decimals.
func SampleMetrics(rng *rand.Rand, tech Technology) Metrics {
	return Metrics{
		DownloadMbps:      round2(uniform(rng, tech.Download.Min, tech.Download.Max)),
		UploadMbps:        round2(uniform(rng, tech.Upload.Min, tech.Upload.Max)),
		LatencyMs:         round2(uniform(rng, tech.Latency.Min, tech.Latency.Max)),
		SignalStrengthDBm: tech.Signal.Min + rng.Intn(tech.Signal.Max-tech.Signal.Min+1),
	}
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	v := lo + rng.Float64()*(hi-lo)
	if v > hi {
		return hi
	}
	return v
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
