package ropemetric

import (
	"errors"
	"testing"

	"github.com/npillmayer/ropemetric/btree"
	"github.com/npillmayer/ropemetric/chunk"
	"github.com/npillmayer/schuko/schukonf/testconfig"
)

func TestConfigFrom(t *testing.T) {
	conf := testconfig.Conf{
		KeyBase:      3,
		KeyChunkSize: "16",
	}
	cfg, err := ConfigFrom(conf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Base != 3 || cfg.ChunkSize != 16 {
		t.Fatalf("expected base 3 and chunk size 16, got %+v", cfg)
	}
}

func TestConfigFromDefaults(t *testing.T) {
	cfg, err := ConfigFrom(testconfig.Conf{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
	cfg, err = ConfigFrom(nil)
	if err != nil || cfg.Base != btree.DefaultBase || cfg.ChunkSize != chunk.DefaultSize {
		t.Fatalf("expected defaults for nil configuration, got %+v, %v", cfg, err)
	}
}

func TestConfigFromRejectsInvalid(t *testing.T) {
	for _, conf := range []testconfig.Conf{
		{KeyBase: 1},
		{KeyChunkSize: -5},
		{KeyChunkSize: chunk.MaxSize + 1},
	} {
		if _, err := ConfigFrom(conf); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("expected ErrInvalidConfig for %v, got %v", conf, err)
		}
	}
}
