package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btclog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "LRUBENCH"

// Implementations the benchmark can drive.
const (
	implLRU       = "lru"
	implReference = "reference"
	implBoth      = "both"
)

// config is the benchmark configuration. Values come from flags, then
// LRUBENCH_* environment variables, then an optional config file.
type config struct {
	Capacity  int     `mapstructure:"capacity"`
	Keys      int     `mapstructure:"keys"`
	Ops       int     `mapstructure:"ops"`
	Workers   int     `mapstructure:"workers"`
	ReadRatio float64 `mapstructure:"read-ratio"`
	Shared    bool    `mapstructure:"shared"`
	Seed      uint64  `mapstructure:"seed"`
	Impl      string  `mapstructure:"impl"`
	LogLevel  string  `mapstructure:"log-level"`
}

func defaultConfig() config {
	return config{
		Capacity:  10000,
		Keys:      20000,
		Ops:       1000000,
		Workers:   4,
		ReadRatio: 0.8,
		Seed:      1,
		Impl:      implBoth,
		LogLevel:  "info",
	}
}

// addFlags registers one flag per config field, using defaults from
// defaultConfig.
func addFlags(fs *pflag.FlagSet) {
	d := defaultConfig()

	fs.String("config", "", "optional config file (yaml, toml or json)")
	fs.Int("capacity", d.Capacity, "cache capacity per cache instance")
	fs.Int("keys", d.Keys, "number of distinct keys in the workload")
	fs.Int("ops", d.Ops, "operations per worker")
	fs.Int("workers", d.Workers, "number of concurrent workers")
	fs.Float64("read-ratio", d.ReadRatio, "fraction of operations that are gets")
	fs.Bool("shared", d.Shared, "share one mutex-guarded cache between workers")
	fs.Uint64("seed", d.Seed, "workload random seed")
	fs.String("impl", d.Impl, "implementation to run: lru, reference or both")
	fs.String("log-level", d.LogLevel, "trace, debug, info, warn, error, critical or off")
}

// loadConfig merges flags, environment and the optional config file.
func loadConfig(fs *pflag.FlagSet) (*config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path,
				err)
		}
	}

	cfg := defaultConfig()
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *config) validate() error {
	var errs []error

	if c.Capacity <= 0 {
		errs = append(errs, fmt.Errorf("capacity must be positive, got %d",
			c.Capacity))
	}
	if c.Keys <= 0 {
		errs = append(errs, fmt.Errorf("keys must be positive, got %d",
			c.Keys))
	}
	if c.Ops < 0 {
		errs = append(errs, fmt.Errorf("ops must not be negative, got %d",
			c.Ops))
	}
	if c.Workers <= 0 {
		errs = append(errs, fmt.Errorf("workers must be positive, got %d",
			c.Workers))
	}
	if c.ReadRatio < 0 || c.ReadRatio > 1 {
		errs = append(errs, fmt.Errorf("read-ratio must be in [0, 1], "+
			"got %v", c.ReadRatio))
	}

	switch c.Impl {
	case implLRU, implReference, implBoth:
	default:
		errs = append(errs, fmt.Errorf("unknown impl %q", c.Impl))
	}

	if _, ok := btclog.LevelFromString(c.LogLevel); !ok {
		errs = append(errs, fmt.Errorf("unknown log level %q",
			c.LogLevel))
	}

	return errors.Join(errs...)
}

// impls lists the implementations selected by c.Impl.
func (c *config) impls() []string {
	if c.Impl == implBoth {
		return []string{implLRU, implReference}
	}
	return []string{c.Impl}
}
