package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrUnknownVariant is returned when no embedded tuning exists for a variant.
var ErrUnknownVariant = errors.New("config: unknown variant")

// Source records where a loaded config came from.
type Source string

const (
	SourceCustom   Source = "custom"
	SourceUser     Source = "user"
	SourceLocal    Source = "local"
	SourceEmbedded Source = "embedded"
	SourceBuiltin  Source = "builtin"
)

// Loaded is a resolved config together with its origin.
type Loaded struct {
	Config FlappyConfig
	Source Source
	Path   string // Empty for embedded and builtin sources
}

// Load resolves the tuning for a variant.
// Search order: customPath -> ~/.flappy/configs/<variant>.yaml -> ./configs/<variant>.yaml -> embedded default.
// Files are overlaid on the variant's embedded defaults, so they may be partial.
func Load(variant, customPath string) (Loaded, error) {
	if variant == "" {
		variant = DefaultVariant
	}

	base, err := embeddedConfig(variant)
	if errors.Is(err, ErrUnknownVariant) {
		return Loaded{}, fmt.Errorf("%w %q", ErrUnknownVariant, variant)
	}
	source := SourceEmbedded
	if err != nil {
		source = SourceBuiltin // Fallback to hardcoded if embed fails
	}

	// Try custom path first
	if customPath != "" {
		cfg, err := overlayFile(base, customPath)
		if err != nil {
			return Loaded{}, err
		}
		if err := cfg.Validate(); err != nil {
			return Loaded{}, fmt.Errorf("config %s: %w", customPath, err)
		}
		return Loaded{Config: cfg, Source: SourceCustom, Path: customPath}, nil
	}

	// Try user config directory, then local configs directory.
	// Unreadable or invalid files here are skipped rather than reported.
	candidates := []struct {
		path   string
		source Source
	}{
		{userConfigPath(variant + ".yaml"), SourceUser},
		{filepath.Join("configs", variant+".yaml"), SourceLocal},
	}
	for _, c := range candidates {
		if c.path == "" {
			continue
		}
		cfg, err := overlayFile(base, c.path)
		if err != nil {
			continue
		}
		if cfg.Validate() != nil {
			continue
		}
		return Loaded{Config: cfg, Source: c.source, Path: c.path}, nil
	}

	return Loaded{Config: base, Source: source}, nil
}

// overlayFile reads a YAML file and applies it on top of base.
func overlayFile(base FlappyConfig, path string) (FlappyConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".flappy", "configs", filename)
}

// Marshal renders a config as YAML, e.g. for writing a user override file.
func Marshal(cfg FlappyConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: cannot encode: %w", err)
	}
	return data, nil
}
