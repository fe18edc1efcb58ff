package data

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidCount is returned when the configured record count is not
	// positive. A zero-row INSERT is not valid SQL, so it is rejected up front.
	ErrInvalidCount  = errors.New("record count must be at least 1")
	ErrInvalidConfig = errors.New("invalid generator config")
)

// Config carries everything the synthesizer needs. The seeder binary uses
// DefaultConfig unchanged; tests build their own.
type Config struct {
	Count      int
	OutputPath string
	Comment    string

	Operator     string
	Regions      []Region
	Technologies []Technology
	Devices      []string

	// Timestamps are Now() minus up to MaxAgeDays whole days and up to
	// MaxAgeSeconds whole seconds, both bounds inclusive.
	MaxAgeDays    int
	MaxAgeSeconds int
	Now           func() time.Time

	// MetricsTextfile, when set, receives a Prometheus textfile snapshot of
	// the run.
	MetricsTextfile string
}

// DefaultConfig returns the compiled-in dataset used to seed the dashboard.
func DefaultConfig() Config {
	return Config{
		Count:         1000,
		OutputPath:    "insert_fake_data.sql",
		Comment:       "Données générées automatiquement pour le dashboard Mobilis",
		Operator:      defaultOperator,
		Regions:       defaultRegions(),
		Technologies:  defaultTechnologies(),
		Devices:       defaultDevices(),
		MaxAgeDays:    30,
		MaxAgeSeconds: 86400,
		Now:           time.Now,
	}
}

// MaxAge is the oldest a generated timestamp can be relative to Now.
func (c Config) MaxAge() time.Duration {
	return time.Duration(c.MaxAgeDays)*24*time.Hour + time.Duration(c.MaxAgeSeconds)*time.Second
}

// Validate checks the config is usable. Count is checked first so callers
// can match ErrInvalidCount directly.
func (c Config) Validate() error {
	if c.Count < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidCount, c.Count)
	}
	if c.OutputPath == "" {
		return fmt.Errorf("%w: empty output path", ErrInvalidConfig)
	}
	if c.Operator == "" {
		return fmt.Errorf("%w: empty operator", ErrInvalidConfig)
	}
	if len(c.Regions) == 0 {
		return fmt.Errorf("%w: no regions", ErrInvalidConfig)
	}
	seen := make(map[string]struct{}, len(c.Regions))
	for _, r := range c.Regions {
		if r.Name == "" {
			return fmt.Errorf("%w: region with empty name", ErrInvalidConfig)
		}
		if _, dup := seen[r.Name]; dup {
			return fmt.Errorf("%w: duplicate region %q", ErrInvalidConfig, r.Name)
		}
		seen[r.Name] = struct{}{}
		if len(r.SubRegions) == 0 {
			return fmt.Errorf("%w: region %q has no sub-regions", ErrInvalidConfig, r.Name)
		}
		if r.LatMin > r.LatMax || r.LonMin > r.LonMax {
			return fmt.Errorf("%w: region %q has inverted bounds", ErrInvalidConfig, r.Name)
		}
	}
	if len(c.Technologies) == 0 {
		return fmt.Errorf("%w: no network technologies", ErrInvalidConfig)
	}
	total := 0
	for _, t := range c.Technologies {
		if t.Weight < 0 {
			return fmt.Errorf("%w: technology %q has negative weight", ErrInvalidConfig, t.Name)
		}
		total += t.Weight
		if t.Download.Min > t.Download.Max || t.Upload.Min > t.Upload.Max ||
			t.Latency.Min > t.Latency.Max || t.Signal.Min > t.Signal.Max {
			return fmt.Errorf("%w: technology %q has an inverted metric range", ErrInvalidConfig, t.Name)
		}
	}
	if total <= 0 {
		return fmt.Errorf("%w: technology weights sum to zero", ErrInvalidConfig)
	}
	if len(c.Devices) == 0 {
		return fmt.Errorf("%w: no device types", ErrInvalidConfig)
	}
	if c.MaxAgeDays < 0 || c.MaxAgeSeconds < 0 {
		return fmt.Errorf("%w: negative history window", ErrInvalidConfig)
	}
	return nil
}
