package cache

import (
	"context"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-model-attributes/internal/cacheinfra"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Backend != BackendSturdyc {
		t.Errorf("expected sturdyc backend, got %q", cfg.Backend)
	}
	if cfg.TTL != cacheinfra.ForeverTTL {
		t.Errorf("expected forever TTL, got %v", cfg.TTL)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected default config to be valid: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		wantField string
	}{
		{
			name: "map backend ignores sizing",
			cfg:  Config{Backend: BackendMap},
		},
		{
			name:      "unknown backend",
			cfg:       Config{Backend: "redis"},
			wantField: "Backend",
		},
		{
			name: "empty backend defaults to sturdyc sizing rules",
			cfg: Config{
				Capacity:           0,
				NumShards:          8,
				TTL:                time.Hour,
				EvictionPercentage: 10,
			},
			wantField: "Capacity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			verrs, ok := err.(validation.Errors)
			if !ok {
				t.Fatalf("expected validation.Errors, got %T (%v)", err, err)
			}
			if verrs[tt.wantField] == nil {
				t.Errorf("expected error on %s, got %v", tt.wantField, verrs)
			}
		})
	}
}

func TestNewStore(t *testing.T) {
	ctx := context.Background()

	for _, cfg := range []Config{DefaultConfig(), {Backend: BackendMap}} {
		t.Run(cfg.backend(), func(t *testing.T) {
			store, err := NewStore(cfg)
			if err != nil {
				t.Fatalf("NewStore failed: %v", err)
			}
			if err := store.PutForever(ctx, "relation_schema-users", []string{"id"}); err != nil {
				t.Fatalf("PutForever failed: %v", err)
			}
			if has, _ := store.Has(ctx, "relation_schema-users"); !has {
				t.Error("expected entry to be stored")
			}
			if _, ok := store.(PrefixForgetter); !ok {
				t.Error("expected in-process stores to support prefix deletion")
			}
		})
	}

	if _, err := NewStore(Config{Backend: "redis"}); err == nil {
		t.Error("expected unknown backend to fail")
	}
}
