package pipeline

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/basilisk-io/logref/format"
	"github.com/basilisk-io/logref/internal/options"
)

// Config holds every tunable the driver needs for a compress invocation.
// Decompress needs none of these: they travel inside the file header.
type Config struct {
	WindowSize int
	Threshold  float64
	BlockSize  int
	Compressor format.CompressionType
	Distance   format.DistanceType
	UseApprox  bool
	Q          int
	Logger     zerolog.Logger
}

// Option configures a Config built by NewConfig.
type Option = options.Option[*Config]

// NewConfig returns a Config with the defaults from the CLI-surface
// table, overridden by opts in order.
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		WindowSize: 8,
		Threshold:  0.06,
		BlockSize:  32 * 1024,
		Compressor: format.CompressionNone,
		Distance:   format.DistanceMinHash,
		UseApprox:  true,
		Q:          3,
		Logger:     zerolog.Nop(),
	}

	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	if cfg.WindowSize < 1 {
		return nil, fmt.Errorf("pipeline: window size must be >= 1, got %d", cfg.WindowSize)
	}
	if cfg.BlockSize < 1 {
		return nil, fmt.Errorf("pipeline: block size must be >= 1, got %d", cfg.BlockSize)
	}
	if cfg.Q < 1 {
		return nil, fmt.Errorf("pipeline: q must be >= 1, got %d", cfg.Q)
	}
	if cfg.Threshold < 0 || cfg.Threshold > 1 {
		return nil, fmt.Errorf("pipeline: threshold must be in [0, 1], got %f", cfg.Threshold)
	}

	return cfg, nil
}

// WithWindowSize sets the sliding window's capacity.
func WithWindowSize(n int) Option {
	return options.New(func(c *Config) error {
		c.WindowSize = n
		return nil
	})
}

// WithThreshold sets the distance cutoff for accepting a reference.
func WithThreshold(t float64) Option {
	return options.New(func(c *Config) error {
		c.Threshold = t
		return nil
	})
}

// WithBlockSize sets the maximum number of records per block.
func WithBlockSize(n int) Option {
	return options.New(func(c *Config) error {
		c.BlockSize = n
		return nil
	})
}

// WithCompressor sets the whole-file compression layer applied during
// finalization.
func WithCompressor(t format.CompressionType) Option {
	return options.New(func(c *Config) error {
		c.Compressor = t
		return nil
	})
}

// WithDistance selects the similarity measure used to pick a reference
// line from the window.
func WithDistance(t format.DistanceType) Option {
	return options.New(func(c *Config) error {
		c.Distance = t
		return nil
	})
}

// WithApprox selects the q-gram aligner when true, the exact
// substitution aligner when false.
func WithApprox(useApprox bool) Option {
	return options.New(func(c *Config) error {
		c.UseApprox = useApprox
		return nil
	})
}

// WithQ sets the q-gram length used by the similarity measures and the
// approximate aligner.
func WithQ(q int) Option {
	return options.New(func(c *Config) error {
		c.Q = q
		return nil
	})
}

// WithLogger sets the structured logger the driver emits block-boundary
// events to. The default is a no-op logger.
func WithLogger(logger zerolog.Logger) Option {
	return options.NoError(func(c *Config) {
		c.Logger = logger
	})
}
