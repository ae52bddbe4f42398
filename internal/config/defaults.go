package config

import (
	"embed"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/*.yaml
var defaultsFS embed.FS

// DefaultVariant is played when no variant is named.
const DefaultVariant = "classic"

// Variant describes an embedded tuning preset.
type Variant struct {
	ID          string
	Title       string
	Description string
}

// DefaultConfig returns the hardcoded classic tuning.
// It is the last fallback when embedded YAML cannot be parsed.
func DefaultConfig() FlappyConfig {
	return FlappyConfig{
		Title:       "Classic",
		Description: "Gentle gravity with wide pipe spacing.",
		Physics: FlappyPhysics{
			Gravity: 0.3,
			Lift:    -8,
		},
		Obstacles: FlappyObstacles{
			Width:        80,
			SpawnPeriod:  200,
			GapRatio:     0.3333,
			MinTopOffset: 0,
		},
		Avatar: FlappyAvatar{
			XRatio: 0.25,
			Width:  50,
			Height: 36,
		},
		Speed: SpeedRamp{
			Base:      1.5,
			Increment: 0.2,
			Every:     5,
		},
	}
}

// GetDefaultYAML returns the embedded YAML for a variant, or nil if unknown.
func GetDefaultYAML(variant string) []byte {
	data, err := defaultsFS.ReadFile(path.Join("defaults", variant+".yaml"))
	if err != nil {
		return nil
	}
	return data
}

// Variants returns all embedded variants sorted by ID.
func Variants() []Variant {
	entries, err := defaultsFS.ReadDir("defaults")
	if err != nil {
		return nil
	}

	variants := make([]Variant, 0, len(entries))
	for _, e := range entries {
		id := strings.TrimSuffix(e.Name(), ".yaml")
		cfg, err := embeddedConfig(id)
		if err != nil {
			continue
		}
		variants = append(variants, Variant{
			ID:          id,
			Title:       cfg.Title,
			Description: cfg.Description,
		})
	}

	sort.Slice(variants, func(i, j int) bool {
		return variants[i].ID < variants[j].ID
	})
	return variants
}

// embeddedConfig parses the embedded YAML for a variant on top of the classic defaults.
func embeddedConfig(variant string) (FlappyConfig, error) {
	cfg := DefaultConfig()
	data := GetDefaultYAML(variant)
	if data == nil {
		return cfg, ErrUnknownVariant
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}
