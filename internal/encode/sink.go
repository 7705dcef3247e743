package encode

import (
	"image"
	"path/filepath"
	"strings"
)

// Sink consumes rendered frames in presentation order. Implementations
// are single-writer; Close must be called to finalize the output.
type Sink interface {
	Append(img *image.RGBA) error
	Close() error
}

// Format identifies an output container.
type Format string

const (
	FormatMP4  Format = "mp4"
	FormatPNG  Format = "png"
	FormatGIF  Format = "gif"
	FormatNull Format = "null"
)

// DetectFormat picks a container from an explicit choice, falling back to
// the output path extension. Unknown extensions become a PNG sequence
// directory.
func DetectFormat(choice, path string) Format {
	switch strings.ToLower(choice) {
	case "mp4":
		return FormatMP4
	case "png":
		return FormatPNG
	case "gif":
		return FormatGIF
	case "null":
		return FormatNull
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp4", ".mkv", ".mov":
		return FormatMP4
	case ".gif":
		return FormatGIF
	default:
		return FormatPNG
	}
}
