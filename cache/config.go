package cache

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-model-attributes/internal/cacheinfra"
)

// Store backends selectable through Config.Backend.
const (
	BackendSturdyc = "sturdyc"
	BackendMap     = "map"
)

var (
	_ Store           = (*cacheinfra.SturdycStore)(nil)
	_ PrefixForgetter = (*cacheinfra.SturdycStore)(nil)
	_ Store           = (*cacheinfra.MapStore)(nil)
	_ PrefixForgetter = (*cacheinfra.MapStore)(nil)
)

// Config exposes store configuration options for consumers of the cache package.
type Config struct {
	// Backend selects the store implementation. Empty means BackendSturdyc.
	Backend            string
	Capacity           int
	NumShards          int
	TTL                time.Duration
	EvictionPercentage int
	EvictionInterval   time.Duration
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() Config {
	cfg := convertFromInternal(cacheinfra.DefaultConfig())
	cfg.Backend = BackendSturdyc
	return cfg
}

// Validate checks whether the configuration values are valid.
// Sizing fields are only checked for the sturdyc backend.
func (c Config) Validate() error {
	if err := validation.ValidateStruct(&c,
		validation.Field(&c.Backend, validation.In(BackendSturdyc, BackendMap)),
	); err != nil {
		return err
	}
	if c.backend() == BackendMap {
		return nil
	}
	return c.toInternal().Validate()
}

// NewStore constructs the store selected by cfg.Backend.
func NewStore(cfg Config) (Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.backend() == BackendMap {
		return cacheinfra.NewMapStore(), nil
	}
	return cacheinfra.NewSturdycStore(cfg.toInternal())
}

func (c Config) backend() string {
	if c.Backend == "" {
		return BackendSturdyc
	}
	return c.Backend
}

func (c Config) toInternal() cacheinfra.Config {
	return cacheinfra.Config{
		Capacity:           c.Capacity,
		NumShards:          c.NumShards,
		TTL:                c.TTL,
		EvictionPercentage: c.EvictionPercentage,
		EvictionInterval:   c.EvictionInterval,
	}
}

func convertFromInternal(cfg cacheinfra.Config) Config {
	return Config{
		Capacity:           cfg.Capacity,
		NumShards:          cfg.NumShards,
		TTL:                cfg.TTL,
		EvictionPercentage: cfg.EvictionPercentage,
		EvictionInterval:   cfg.EvictionInterval,
	}
}
