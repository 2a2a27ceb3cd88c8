// Package config holds the configuration surface shared by the time chart
// and the Gantt chart: canvas size, padding, styling and behavior knobs.
//
// Configuration is layered with viper: built-in defaults, then an optional
// YAML file, then CHART2SVG_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Identity modes for Gantt flatten keys.
const (
	// IdentityStable keys each flattened node by its caller key (or name path).
	IdentityStable = "stable"
	// IdentityPass assigns a fresh key to every node on every flatten pass.
	IdentityPass = "pass"
)

// EnvPrefix is the prefix for environment overrides, e.g. CHART2SVG_WIDTH.
const EnvPrefix = "CHART2SVG"

// Padding is the margin reserved around the plot area so tick labels are
// not clipped.
type Padding struct {
	Top    float64 `yaml:"top" mapstructure:"top"`
	Right  float64 `yaml:"right" mapstructure:"right"`
	Bottom float64 `yaml:"bottom" mapstructure:"bottom"`
	Left   float64 `yaml:"left" mapstructure:"left"`
}

// ZoomConfig bounds the viewport scale factor.
type ZoomConfig struct {
	MinScale float64 `yaml:"min_scale" mapstructure:"min_scale"`
	MaxScale float64 `yaml:"max_scale" mapstructure:"max_scale"`
}

// FontConfig styles axis labels.
type FontConfig struct {
	Family string `yaml:"family" mapstructure:"family"`
	Size   int    `yaml:"size" mapstructure:"size"`
}

// ColorConfig holds hex colors used by the renderers.
type ColorConfig struct {
	Background string `yaml:"background" mapstructure:"background"` // SVG background
	Line       string `yaml:"line" mapstructure:"line"`             // time-chart stroke
	Grid       string `yaml:"grid" mapstructure:"grid"`             // tick gridlines
	Text       string `yaml:"text" mapstructure:"text"`             // tick labels
	BarStart   string `yaml:"bar_start" mapstructure:"bar_start"`   // Gantt fill at depth 0
	BarEnd     string `yaml:"bar_end" mapstructure:"bar_end"`       // Gantt fill at the deepest level
}

// CSVConfig controls how the time-series loader reads its input.
type CSVConfig struct {
	DateColumn  string `yaml:"date_column" mapstructure:"date_column"`
	PriceColumn string `yaml:"price_column" mapstructure:"price_column"`
	// Lenient keeps rows with unparsable dates (as the zero time) instead
	// of failing the load.
	Lenient bool `yaml:"lenient" mapstructure:"lenient"`
}

// Config is the complete chart configuration.
type Config struct {
	Width        float64     `yaml:"width" mapstructure:"width"`
	Height       float64     `yaml:"height" mapstructure:"height"`
	Padding      Padding     `yaml:"padding" mapstructure:"padding"`
	RowHeight    float64     `yaml:"row_height" mapstructure:"row_height"`
	TickCount    int         `yaml:"tick_count" mapstructure:"tick_count"`
	TransitionMS int         `yaml:"transition_ms" mapstructure:"transition_ms"`
	Identity     string      `yaml:"identity" mapstructure:"identity"`
	Zoom         ZoomConfig  `yaml:"zoom" mapstructure:"zoom"`
	Font         FontConfig  `yaml:"font" mapstructure:"font"`
	Colors       ColorConfig `yaml:"colors" mapstructure:"colors"`
	CSV          CSVConfig   `yaml:"csv" mapstructure:"csv"`
}

func baseDefaults() Config {
	return Config{
		Width:        800,
		Height:       600,
		RowHeight:    40,
		TickCount:    10,
		TransitionMS: 50,
		Identity:     IdentityStable,
		Zoom:         ZoomConfig{MinScale: 1, MaxScale: 4},
		Font:         FontConfig{Family: "Arial, sans-serif", Size: 10},
		Colors: ColorConfig{
			Background: "#ffffff",
			Line:       "#4285f4",
			Grid:       "#e0e0e0",
			Text:       "#333333",
			BarStart:   "#1f77b4",
			BarEnd:     "#aec7e8",
		},
		CSV: CSVConfig{DateColumn: "date", PriceColumn: "price"},
	}
}

// DefaultTime returns the defaults for the time-series line chart:
// 800x600 with padding 15/20/20/55.
func DefaultTime() Config {
	c := baseDefaults()
	c.Padding = Padding{Top: 15, Right: 20, Bottom: 20, Left: 55}
	return c
}

// DefaultGantt returns the defaults for the Gantt chart. Its Height is
// replaced at render time by RowHeight times the visible node count.
func DefaultGantt() Config {
	c := baseDefaults()
	c.Padding = Padding{Top: 15, Right: 15, Bottom: 15, Left: 55}
	return c
}

// Load layers the YAML file at path (optional) and CHART2SVG_* environment
// variables over defaults. An empty path yields defaults plus environment.
func Load(path string, defaults Config) (Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, defaults)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// setDefaults registers every key so that environment overrides and
// Unmarshal see the full key set.
func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("width", d.Width)
	v.SetDefault("height", d.Height)
	v.SetDefault("padding.top", d.Padding.Top)
	v.SetDefault("padding.right", d.Padding.Right)
	v.SetDefault("padding.bottom", d.Padding.Bottom)
	v.SetDefault("padding.left", d.Padding.Left)
	v.SetDefault("row_height", d.RowHeight)
	v.SetDefault("tick_count", d.TickCount)
	v.SetDefault("transition_ms", d.TransitionMS)
	v.SetDefault("identity", d.Identity)
	v.SetDefault("zoom.min_scale", d.Zoom.MinScale)
	v.SetDefault("zoom.max_scale", d.Zoom.MaxScale)
	v.SetDefault("font.family", d.Font.Family)
	v.SetDefault("font.size", d.Font.Size)
	v.SetDefault("colors.background", d.Colors.Background)
	v.SetDefault("colors.line", d.Colors.Line)
	v.SetDefault("colors.grid", d.Colors.Grid)
	v.SetDefault("colors.text", d.Colors.Text)
	v.SetDefault("colors.bar_start", d.Colors.BarStart)
	v.SetDefault("colors.bar_end", d.Colors.BarEnd)
	v.SetDefault("csv.date_column", d.CSV.DateColumn)
	v.SetDefault("csv.price_column", d.CSV.PriceColumn)
	v.SetDefault("csv.lenient", d.CSV.Lenient)
}

// Validate reports the first invalid setting, wrapped in ErrInvalid.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0:
		return fmt.Errorf("%w: width must be positive, got %v", ErrInvalid, c.Width)
	case c.Height < 0:
		return fmt.Errorf("%w: height must not be negative, got %v", ErrInvalid, c.Height)
	case c.Padding.Top < 0 || c.Padding.Right < 0 || c.Padding.Bottom < 0 || c.Padding.Left < 0:
		return fmt.Errorf("%w: padding must not be negative", ErrInvalid)
	case c.CanvasWidth() <= 0:
		return fmt.Errorf("%w: padding leaves no horizontal plot area", ErrInvalid)
	case c.RowHeight <= 0:
		return fmt.Errorf("%w: row_height must be positive, got %v", ErrInvalid, c.RowHeight)
	case c.TickCount <= 0:
		return fmt.Errorf("%w: tick_count must be positive, got %d", ErrInvalid, c.TickCount)
	case c.TransitionMS < 0:
		return fmt.Errorf("%w: transition_ms must not be negative", ErrInvalid)
	case c.Identity != IdentityStable && c.Identity != IdentityPass:
		return fmt.Errorf("%w: identity must be %q or %q, got %q", ErrInvalid, IdentityStable, IdentityPass, c.Identity)
	case c.Zoom.MinScale <= 0 || c.Zoom.MinScale > c.Zoom.MaxScale:
		return fmt.Errorf("%w: zoom scale extent [%v, %v] is empty", ErrInvalid, c.Zoom.MinScale, c.Zoom.MaxScale)
	}
	return nil
}

// ValidateHeight reports ErrInvalid when the configured height leaves no
// vertical plot area inside the padding. Only charts drawn at the
// configured height need it; the Gantt chart derives its own.
func (c Config) ValidateHeight() error {
	if c.CanvasHeight() <= 0 {
		return fmt.Errorf("%w: height %v leaves no vertical plot area inside padding %v+%v",
			ErrInvalid, c.Height, c.Padding.Top, c.Padding.Bottom)
	}
	return nil
}

// CanvasWidth is the plot width inside the padding.
func (c Config) CanvasWidth() float64 {
	return c.Width - c.Padding.Left - c.Padding.Right
}

// CanvasHeight is the plot height inside the padding.
func (c Config) CanvasHeight() float64 {
	return c.Height - c.Padding.Top - c.Padding.Bottom
}

// ViewBox renders the SVG viewBox attribute "0 0 <width> <height>".
func (c Config) ViewBox() string {
	return "0 0 " + formatNumber(c.Width) + " " + formatNumber(c.Height)
}

// TransitionDuration is TransitionMS as a time.Duration.
func (c Config) TransitionDuration() time.Duration {
	return time.Duration(c.TransitionMS) * time.Millisecond
}

// WithRows returns a copy of c whose Height is derived from n visible rows.
func (c Config) WithRows(n int) Config {
	c.Height = c.RowHeight * float64(n)
	return c
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
