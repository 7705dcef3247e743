package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables
// (STRAINVIZ_*). Env values override the config file but lose to flags
// that were explicitly set.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("out", os.Getenv("STRAINVIZ_OUT"), &cfg.Out)
	s.setString("format", os.Getenv("STRAINVIZ_FORMAT"), &cfg.Format)
	s.setString("ffmpeg", os.Getenv("STRAINVIZ_FFMPEG"), &cfg.FFmpegBin)
	s.setString("x264-preset", os.Getenv("STRAINVIZ_X264_PRESET"), &cfg.X264Preset)
	s.setString("lung-image", os.Getenv("STRAINVIZ_LUNG_IMAGE"), &cfg.LungImage)
	s.setString("scenario", os.Getenv("STRAINVIZ_SCENARIO"), &cfg.Scenario)
	s.setString("preset", os.Getenv("STRAINVIZ_PRESET"), &cfg.Preset)
	s.setString("log-level", os.Getenv("STRAINVIZ_LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setIntFromString("width", os.Getenv("STRAINVIZ_WIDTH"), &cfg.Width); err != nil {
		return err
	}
	if err := s.setIntFromString("height", os.Getenv("STRAINVIZ_HEIGHT"), &cfg.Height); err != nil {
		return err
	}
	if err := s.setIntFromString("fps", os.Getenv("STRAINVIZ_FPS"), &cfg.FPS); err != nil {
		return err
	}
	if err := s.setIntFromString("x264-crf", os.Getenv("STRAINVIZ_X264_CRF"), &cfg.X264CRF); err != nil {
		return err
	}
	if err := s.setIntFromString("gif-stride", os.Getenv("STRAINVIZ_GIF_STRIDE"), &cfg.GIFStride); err != nil {
		return err
	}

	s.setBoolFromString("manifest", os.Getenv("STRAINVIZ_MANIFEST"), &cfg.Manifest)

	return nil
}
