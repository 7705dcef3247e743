package cliconfig

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultOutput is the file the render command writes when no path is given.
const DefaultOutput = "stress_strain_crf_vni.mp4"

// Config holds CLI configuration for strainviz.
type Config struct {
	Out    string
	Format string // auto, mp4, png, gif or null

	Width  int
	Height int
	FPS    int

	FFmpegBin  string
	X264Preset string
	X264CRF    int
	GIFStride  int

	LungImage string
	Scenario  string
	Preset    string

	Manifest bool
	LogLevel string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Out:        DefaultOutput,
		Format:     "auto",
		Width:      1536,
		Height:     864,
		FPS:        20,
		FFmpegBin:  "ffmpeg",
		X264Preset: "ultrafast",
		X264CRF:    22,
		GIFStride:  4,
		Preset:     "classic",
		LogLevel:   "info",
	}
}

// Validate checks the configuration for errors and normalizes derived
// fields.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("frame size must be positive, got %dx%d", c.Width, c.Height)
	}
	// libx264 with yuv420p needs even dimensions
	if c.Width%2 != 0 || c.Height%2 != 0 {
		return fmt.Errorf("frame size must be even, got %dx%d", c.Width, c.Height)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	if c.X264CRF < 0 || c.X264CRF > 51 {
		return fmt.Errorf("x264 crf must be in [0,51], got %d", c.X264CRF)
	}
	if c.GIFStride < 1 {
		return fmt.Errorf("gif stride must be at least 1, got %d", c.GIFStride)
	}

	c.Format = strings.ToLower(c.Format)
	switch c.Format {
	case "auto", "mp4", "png", "gif", "null":
	default:
		return fmt.Errorf("unknown format %q (auto, mp4, png, gif, null)", c.Format)
	}

	if c.FFmpegBin == "" {
		c.FFmpegBin = "ffmpeg"
	}
	return nil
}

// configSetter helps apply configuration values while respecting flag
// precedence. It only applies values if the corresponding flag hasn't been
// explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
