package lib

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/piqueme/gif-capture/lib/anim"
	"github.com/piqueme/gif-capture/lib/framerate"
	"github.com/piqueme/gif-capture/lib/output"
	"gopkg.in/yaml.v3"
)

const (
	DefaultSettingsFile = "gifcap.yaml"

	defaultDuration  = 3 * time.Second
	defaultFrameRate = framerate.T(10)

	maxFrameRate = 50
	maxScale     = 4
)

type Settings struct {
	OutputFilename string        `yaml:"outputFilename"`
	OutputMethod   output.Method `yaml:"outputMethod"`

	Duration  time.Duration `yaml:"duration"`
	FrameRate framerate.T   `yaml:"frameRate"`
	Display   int           `yaml:"display"`

	MaxColors int     `yaml:"maxColors"`
	Quantizer string  `yaml:"quantizer"`
	Dither    bool    `yaml:"dither"`
	Scale     float64 `yaml:"scale"`
	LoopCount int     `yaml:"loopCount"`
	Workers   int     `yaml:"workers"`
}

func DefaultSettings() Settings {
	return Settings{
		OutputFilename: output.DefaultFilename,
		OutputMethod:   output.MethodOverwrite,
		Duration:       defaultDuration,
		FrameRate:      defaultFrameRate,
		MaxColors:      anim.MaxColors,
		Quantizer:      "mediancut",
		Scale:          1,
	}
}

// SettingsFilename is the settings file beside the executable, or in the
// working directory when the executable path is unknown.
func SettingsFilename() string {
	filename := DefaultSettingsFile
	binPath, err := os.Executable()
	if err == nil {
		filename = filepath.Join(filepath.Dir(binPath), DefaultSettingsFile)
	}
	return filename
}

// LoadSettings reads filename over the defaults. A missing file is not an
// error.
func LoadSettings(filename string) (Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return settings, nil
		}
		return settings, err
	}

	if err := yaml.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("parse %v: %w", filename, err)
	}
	return settings, nil
}

func (s Settings) Save(filename string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}

// Validate rejects settings the pipeline cannot run with.
func (s *Settings) Validate() error {
	if err := s.FrameRate.Validate(); err != nil {
		return err
	}

	if s.Duration < 0 {
		return fmt.Errorf("duration must not be negative: %v", s.Duration)
	}
	if s.OutputFilename == "" {
		s.OutputFilename = output.DefaultFilename
	}
	if s.MaxColors < anim.MinColors || s.MaxColors > anim.MaxColors {
		return fmt.Errorf("colors must be within [%v, %v]: %v", anim.MinColors, anim.MaxColors, s.MaxColors)
	}
	if _, ok := anim.QuantizerByName(s.Quantizer); !ok {
		return fmt.Errorf("unknown quantizer: %q (use mediancut or palgen)", s.Quantizer)
	}
	if s.Scale <= 0 || s.Scale > maxScale {
		return fmt.Errorf("scale must be within (0, %v]: %v", maxScale, s.Scale)
	}
	if s.Display < 0 {
		return fmt.Errorf("display index must not be negative: %v", s.Display)
	}
	return nil
}

// clampFrameRate limits the rate to what GIF delays can express and reports
// the rate that was asked for.
func (s *Settings) clampFrameRate() (requested framerate.T, clamped bool) {
	requested = s.FrameRate
	s.FrameRate.Clamp(1, maxFrameRate)
	return requested, s.FrameRate != requested
}

func (s Settings) animOptions() anim.Options {
	quantizer, _ := anim.QuantizerByName(s.Quantizer)
	return anim.Options{
		MaxColors: s.MaxColors,
		Quantizer: quantizer,
		Dither:    s.Dither,
		LoopCount: s.LoopCount,
	}
}
