package ropemetric

import (
	"fmt"

	"github.com/npillmayer/ropemetric/btree"
	"github.com/npillmayer/ropemetric/chunk"
	"github.com/npillmayer/schuko"
)

// Configuration keys read by ConfigFrom.
const (
	KeyBase      = "ropemetric.base"
	KeyChunkSize = "ropemetric.chunksize"
)

// Config configures the shape of a rope.
type Config struct {
	Base      int // branching parameter t of the tree; 0 selects btree.DefaultBase
	ChunkSize int // target chunk length in bytes; 0 selects chunk.DefaultSize
}

// DefaultConfig returns the configuration with all defaults applied.
func DefaultConfig() Config {
	return Config{Base: btree.DefaultBase, ChunkSize: chunk.DefaultSize}
}

func (cfg Config) normalized() Config {
	if cfg.Base == 0 {
		cfg.Base = btree.DefaultBase
	}
	if cfg.ChunkSize == 0 {
		cfg.ChunkSize = chunk.DefaultSize
	}
	return cfg
}

// Validate checks the configuration after applying defaults.
func (cfg Config) Validate() error {
	cfg = cfg.normalized()
	if err := cfg.tree().Validate(); err != nil {
		return err
	}
	if cfg.ChunkSize < 0 || cfg.ChunkSize > chunk.MaxSize {
		return fmt.Errorf("%w: chunk size must be in [1, %d], is %d",
			ErrInvalidConfig, chunk.MaxSize, cfg.ChunkSize)
	}
	return nil
}

func (cfg Config) tree() btree.Config {
	return btree.Config{Base: cfg.Base}
}

// ConfigFrom reads a rope configuration from an application configuration,
// using keys KeyBase and KeyChunkSize. Unset keys select the defaults; a nil
// configuration yields DefaultConfig().
func ConfigFrom(conf schuko.Configuration) (Config, error) {
	cfg := DefaultConfig()
	if conf == nil {
		return cfg, nil
	}
	if conf.IsSet(KeyBase) {
		cfg.Base = conf.GetInt(KeyBase)
	}
	if conf.IsSet(KeyChunkSize) {
		cfg.ChunkSize = conf.GetInt(KeyChunkSize)
	}
	cfg = cfg.normalized()
	if err := cfg.Validate(); err != nil {
		tracer().Errorf("invalid rope configuration: %v", err)
		return Config{}, err
	}
	return cfg, nil
}
