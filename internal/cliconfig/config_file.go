package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config for the TOML config file. Booleans are
// pointers so an absent key can be told apart from false.
type FileConfig struct {
	Out        string `toml:"out"`
	Format     string `toml:"format"`
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	FPS        int    `toml:"fps"`
	FFmpegBin  string `toml:"ffmpeg_bin"`
	X264Preset string `toml:"x264_preset"`
	X264CRF    int    `toml:"x264_crf"`
	GIFStride  int    `toml:"gif_stride"`
	LungImage  string `toml:"lung_image"`
	Scenario   string `toml:"scenario"`
	Preset     string `toml:"preset"`
	Manifest   *bool  `toml:"manifest"`
	LogLevel   string `toml:"log_level"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.strainviz/config.toml if the user home
// directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".strainviz", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("out", fc.Out, &cfg.Out)
	s.setString("format", fc.Format, &cfg.Format)
	s.setString("ffmpeg", fc.FFmpegBin, &cfg.FFmpegBin)
	s.setString("x264-preset", fc.X264Preset, &cfg.X264Preset)
	s.setString("lung-image", fc.LungImage, &cfg.LungImage)
	s.setString("scenario", fc.Scenario, &cfg.Scenario)
	s.setString("preset", fc.Preset, &cfg.Preset)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	s.setInt("width", fc.Width, &cfg.Width)
	s.setInt("height", fc.Height, &cfg.Height)
	s.setInt("fps", fc.FPS, &cfg.FPS)
	s.setInt("x264-crf", fc.X264CRF, &cfg.X264CRF)
	s.setInt("gif-stride", fc.GIFStride, &cfg.GIFStride)

	s.setBool("manifest", fc.Manifest, &cfg.Manifest)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
