package posy

import (
	_ "embed"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("posy: invalid config")

//go:embed greeting.yaml
var greetingYAML []byte

// Config is the full greeting configuration.
type Config struct {
	Window     WindowConfig     `yaml:"window"`
	Loading    LoadingConfig    `yaml:"loading"`
	Field      FieldConfig      `yaml:"field"`
	Effects    EffectsSection   `yaml:"effects"`
	Background BackgroundConfig `yaml:"background"`
	Showcase   ShowcaseConfig   `yaml:"showcase"`
	// Seed makes every random choice reproducible; 0 means non-seeded.
	Seed uint64 `yaml:"seed"`
}

// WindowConfig is the ebiten window setup.
type WindowConfig struct {
	Title      string   `yaml:"title"`
	Width      int      `yaml:"width"`
	Height     int      `yaml:"height"`
	Background HexColor `yaml:"background"`
}

// LoadingConfig drives the loading screen and the load gate's minimum
// duration.
type LoadingConfig struct {
	Messages        []string `yaml:"messages"`
	MessageInterval float64  `yaml:"message_interval"` // seconds per message
	Padding         float64  `yaml:"padding"`          // extra seconds after the last message
	ProgressTick    float64  `yaml:"progress_tick"`    // seconds between progress steps
	ProgressCap     float64  `yaml:"progress_cap"`     // percent reached before ready
	ReadyMessage    string   `yaml:"ready_message"`
	FadeDelay       float64  `yaml:"fade_delay"`
	FadeDuration    float64  `yaml:"fade_duration"`
}

// FieldConfig describes the flower field and its placement.
type FieldConfig struct {
	Title          string  `yaml:"title"`
	Subtitle       string  `yaml:"subtitle"`
	Flowers        int     `yaml:"flowers"`
	Glyphs         []Glyph `yaml:"glyphs"`
	Separation     float64 `yaml:"separation"`
	MaxAttempts    int     `yaml:"max_attempts"`
	FlightDuration float64 `yaml:"flight_duration"`
}

// EffectsSection configures the particle triggers.
type EffectsSection struct {
	SparkleGlyphs  []Glyph `yaml:"sparkle_glyphs"`
	ClickGlyphs    []Glyph `yaml:"click_glyphs"`
	PetalGlyphs    []Glyph `yaml:"petal_glyphs"`
	ConfettiGlyphs []Glyph `yaml:"confetti_glyphs"`
	TrailChance    float64 `yaml:"trail_chance"`
	RainInterval   float64 `yaml:"rain_interval"`
	ConfettiCount  int     `yaml:"confetti_count"`
}

// BackgroundConfig configures the floating hearts.
type BackgroundConfig struct {
	Hearts int `yaml:"hearts"`
}

// ShowcaseConfig configures the final phase.
type ShowcaseConfig struct {
	// Delay is the pause between the last collection and the showcase.
	Delay  float64 `yaml:"delay"`
	Banner string  `yaml:"banner"`
}

// HexColor is a color written as "#rrggbb" in YAML.
type HexColor uint32

// UnmarshalYAML parses "#rrggbb" or "rrggbb".
func (h *HexColor) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "#"), 16, 32)
	if err != nil || v > 0xffffff {
		return fmt.Errorf("line %d: bad color %q", value.Line, s)
	}
	*h = HexColor(v)
	return nil
}

// Color converts to an opaque Color.
func (h HexColor) Color() Color {
	return Hex(uint32(h))
}

// DefaultConfig returns the embedded greeting configuration.
func DefaultConfig() *Config {
	var cfg Config
	if err := yaml.Unmarshal(greetingYAML, &cfg); err != nil {
		panic(fmt.Sprintf("posy: embedded greeting.yaml: %v", err))
	}
	return &cfg
}

// ParseConfig overlays data on the defaults and validates the result.
// Lists present in data replace the default lists entirely.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks ranges and glyph names.
func (c *Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return invalid("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	case len(c.Loading.Messages) == 0:
		return invalid("loading.messages cannot be empty")
	case c.Loading.MessageInterval <= 0:
		return invalid("loading.message_interval must be positive")
	case c.Loading.Padding < 0:
		return invalid("loading.padding cannot be negative")
	case c.Loading.ProgressTick <= 0:
		return invalid("loading.progress_tick must be positive")
	case c.Loading.ProgressCap <= 0 || c.Loading.ProgressCap > 100:
		return invalid("loading.progress_cap must be in (0, 100], got %v", c.Loading.ProgressCap)
	case c.Loading.FadeDelay < 0 || c.Loading.FadeDuration < 0:
		return invalid("loading fade timings cannot be negative")
	case c.Field.Flowers <= 0:
		return invalid("field.flowers must be positive, got %d", c.Field.Flowers)
	case c.Field.Separation < 0:
		return invalid("field.separation cannot be negative")
	case c.Field.MaxAttempts <= 0:
		return invalid("field.max_attempts must be positive")
	case c.Field.FlightDuration < 0:
		return invalid("field.flight_duration cannot be negative")
	case c.Effects.TrailChance < 0 || c.Effects.TrailChance > 1:
		return invalid("effects.trail_chance must be in [0, 1], got %v", c.Effects.TrailChance)
	case c.Effects.RainInterval <= 0:
		return invalid("effects.rain_interval must be positive")
	case c.Effects.ConfettiCount < 0:
		return invalid("effects.confetti_count cannot be negative")
	case c.Background.Hearts < 0:
		return invalid("background.hearts cannot be negative")
	case c.Showcase.Delay < 0:
		return invalid("showcase.delay cannot be negative")
	}

	sets := []struct {
		name   string
		glyphs []Glyph
	}{
		{"field.glyphs", c.Field.Glyphs},
		{"effects.sparkle_glyphs", c.Effects.SparkleGlyphs},
		{"effects.click_glyphs", c.Effects.ClickGlyphs},
		{"effects.petal_glyphs", c.Effects.PetalGlyphs},
		{"effects.confetti_glyphs", c.Effects.ConfettiGlyphs},
	}
	for _, set := range sets {
		if len(set.glyphs) == 0 {
			return invalid("%s cannot be empty", set.name)
		}
		for _, g := range set.glyphs {
			if _, err := ParseGlyph(string(g)); err != nil {
				return invalid("%s: %v", set.name, err)
			}
		}
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

// MinLoadDuration is the load gate's minimum duration for this config.
func (c *Config) MinLoadDuration() float64 {
	return MinLoadDuration(len(c.Loading.Messages), c.Loading.MessageInterval, c.Loading.Padding)
}

// EffectsConfig returns the particle settings.
func (c *Config) EffectsConfig() EffectsConfig {
	return EffectsConfig{
		SparkleGlyphs:  c.Effects.SparkleGlyphs,
		ClickGlyphs:    c.Effects.ClickGlyphs,
		PetalGlyphs:    c.Effects.PetalGlyphs,
		ConfettiGlyphs: c.Effects.ConfettiGlyphs,
		TrailChance:    c.Effects.TrailChance,
	}
}

// Placement returns the flower field constraint for a w by h window.
func (c *Config) Placement(w, h float64) PlacementConstraint {
	pc := FieldConstraint(w, h)
	pc.MinSeparation = c.Field.Separation
	pc.MaxAttempts = c.Field.MaxAttempts
	return pc
}

// Rand returns the session random source.
func (c *Config) Rand() *rand.Rand {
	if c.Seed == 0 {
		return NewRand()
	}
	return SeededRand(c.Seed)
}
