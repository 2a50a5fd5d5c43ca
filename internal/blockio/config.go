package blockio

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds tunables for the FileBackend host-file adapter. It mirrors
// the teacher corpus's viper-backed device configuration: defaults are set
// first, an optional config file is layered on top, and environment
// variables under the CFB_ prefix override both.
type Config struct {
	BigBlockSize     int `mapstructure:"big_block_size"`
	SmallBlockSize   int `mapstructure:"small_block_size"`
	MiniStreamCutoff int `mapstructure:"mini_stream_cutoff"`

	// PageCacheHint is advisory: the in-scope FileBackend does not cache
	// pages across Release calls, but a future caching adapter can read
	// this to size its pool.
	PageCacheHint int `mapstructure:"page_cache_hint"`
}

// LoadConfig loads Config using viper, falling back to spec.md defaults
// when no config file is present.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("cfb-config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("$HOME/.cfb")
	v.AddConfigPath("/etc/cfb")

	v.SetDefault("big_block_size", 512)
	v.SetDefault("small_block_size", 64)
	v.SetDefault("mini_stream_cutoff", 4096)
	v.SetDefault("page_cache_hint", 64)

	v.SetEnvPrefix("CFB")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading cfb config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling cfb config: %w", err)
	}
	return &cfg, nil
}

// DefaultConfig returns the spec.md-default configuration without
// consulting viper, for callers (tests, library use) that don't want
// environment/config-file interference.
func DefaultConfig() *Config {
	return &Config{
		BigBlockSize:     512,
		SmallBlockSize:   64,
		MiniStreamCutoff: 4096,
		PageCacheHint:    64,
	}
}
