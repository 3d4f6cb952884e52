package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if ECS_CONFIG is set
//  3. env (prefix ECS_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("ECS_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: ECS_ADDR, ECS_STORE_BASE_URL, ...
	// Map env keys like ECS_ROW_CAP -> row_cap (flat keys). Preserve
	// underscores to match koanf tags on the struct.
	envProvider := env.Provider("ECS_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "ecs_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Basic validation
	if cfg.Addr == "" {
		return nil, errors.Join(ErrInvalidConfig, errors.New("addr must not be empty"))
	}
	if cfg.StoreBaseURL == "" {
		return nil, errors.Join(ErrInvalidConfig, errors.New("store_base_url must not be empty"))
	}
	if cfg.MinEvents < 1 {
		return nil, errors.Join(ErrInvalidConfig, errors.New("min_events must be at least 1"))
	}
	return &cfg, nil
}
