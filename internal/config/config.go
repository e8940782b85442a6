package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/quakeviz/quakeviz/internal/anim"
)

const (
	DefaultStartTime   = 0.0
	DefaultSwitchTime  = 1.0
	DefaultEndTime     = 1.1
	DefaultFastStep    = 0.01
	DefaultSlowStep    = 0.001
	DefaultFadeTime    = 0.01
	DefaultMinSize     = 1.5
	DefaultMaxSize     = 100.0
	DefaultEventWindow = 0.05
	DefaultFPS         = 30
	DefaultWidth       = 960
	DefaultHeight      = 540
)

type Config struct {
	StartTime   float64     `yaml:"start_time"`
	SwitchTime  float64     `yaml:"switch_time"`
	EndTime     float64     `yaml:"end_time"`
	FastStep    float64     `yaml:"fast_step"`
	SlowStep    float64     `yaml:"slow_step"`
	EventWindow float64     `yaml:"event_window"`
	Fade        FadeConfig  `yaml:"fade"`
	Video       VideoConfig `yaml:"video"`
}

type FadeConfig struct {
	Duration float64 `yaml:"duration"`
	MinSize  float64 `yaml:"min_size"`
	MaxSize  float64 `yaml:"max_size"`
}

type VideoConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	FPS    int    `yaml:"fps"`
	Output string `yaml:"output"`
}

func DefaultConfig() *Config {
	return &Config{
		StartTime:   DefaultStartTime,
		SwitchTime:  DefaultSwitchTime,
		EndTime:     DefaultEndTime,
		FastStep:    DefaultFastStep,
		SlowStep:    DefaultSlowStep,
		EventWindow: DefaultEventWindow,
		Fade: FadeConfig{
			Duration: DefaultFadeTime,
			MinSize:  DefaultMinSize,
			MaxSize:  DefaultMaxSize,
		},
		Video: VideoConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			FPS:    DefaultFPS,
			Output: "quakeviz.avi",
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate surfaces degenerate configurations before any frame is
// produced. The switch-time check mirrors the stepper's, so a config
// that validates here cannot fail stepper construction later.
func (c *Config) Validate() error {
	if c.FastStep <= 0 || c.SlowStep <= 0 {
		return fmt.Errorf("config: steps must be positive (fast=%g slow=%g)", c.FastStep, c.SlowStep)
	}
	if c.SwitchTime <= c.StartTime || c.SwitchTime >= c.EndTime {
		return fmt.Errorf("config: switch_time %g outside (%g, %g)", c.SwitchTime, c.StartTime, c.EndTime)
	}
	if c.Fade.Duration <= 0 {
		return fmt.Errorf("config: fade duration must be positive, got %g", c.Fade.Duration)
	}
	if c.Fade.MaxSize < c.Fade.MinSize {
		return fmt.Errorf("config: fade max_size %g below min_size %g", c.Fade.MaxSize, c.Fade.MinSize)
	}
	if c.EventWindow <= 0 {
		return fmt.Errorf("config: event_window must be positive, got %g", c.EventWindow)
	}
	if c.Video.FPS <= 0 || c.Video.Width <= 0 || c.Video.Height <= 0 {
		return fmt.Errorf("config: invalid video geometry %dx%d @ %d fps", c.Video.Width, c.Video.Height, c.Video.FPS)
	}
	return nil
}

// Stepper builds the playback clock described by the config.
func (c *Config) Stepper() (*anim.Stepper, error) {
	return anim.NewStepper(c.StartTime, c.SwitchTime, c.EndTime, c.FastStep, c.SlowStep)
}

// FadeParams bridges to the fade model's parameter set.
func (c *Config) FadeParams() anim.FadeParams {
	return anim.FadeParams{
		Duration: c.Fade.Duration,
		MinSize:  c.Fade.MinSize,
		MaxSize:  c.Fade.MaxSize,
	}
}
