package btree

import "fmt"

const (
	// DefaultBase is the branching parameter used when none is configured.
	DefaultBase = 2
	// MinBase is the smallest accepted branching parameter.
	MinBase = 2
	// MaxBase is the largest accepted branching parameter.
	MaxBase = 1024
)

// Config configures a metric B+ sum-tree.
type Config struct {
	// Base is the branching parameter t. Zero selects DefaultBase.
	Base int
}

// DefaultConfig returns the configuration with all defaults applied.
func DefaultConfig() Config {
	return Config{Base: DefaultBase}
}

func (cfg Config) normalized() Config {
	if cfg.Base == 0 {
		cfg.Base = DefaultBase
	}
	return cfg
}

// Validate checks the configuration after applying defaults.
func (cfg Config) Validate() error {
	cfg = cfg.normalized()
	if cfg.Base < MinBase || cfg.Base > MaxBase {
		return fmt.Errorf("%w: base must be in [%d, %d], is %d",
			ErrInvalidConfig, MinBase, MaxBase, cfg.Base)
	}
	return nil
}

func (cfg Config) maxLeafChunks() int { return 2*cfg.Base - 1 }
func (cfg Config) minLeafChunks() int { return cfg.Base }
func (cfg Config) maxChildren() int   { return 2 * cfg.Base }
func (cfg Config) minChildren() int   { return cfg.Base }
