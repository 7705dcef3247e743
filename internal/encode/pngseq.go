package encode

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// PNGDir writes frames as zero-padded PNG files in a directory.
type PNGDir struct {
	dir    string
	frames int
}

func NewPNGDir(dir string) (*PNGDir, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &PNGDir{dir: dir}, nil
}

func (e *PNGDir) Append(img *image.RGBA) error {
	path := filepath.Join(e.dir, fmt.Sprintf("frame_%06d.png", e.frames))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	e.frames++
	return f.Close()
}

func (e *PNGDir) Close() error {
	return nil
}

// Frames reports how many files were written.
func (e *PNGDir) Frames() int {
	return e.frames
}
