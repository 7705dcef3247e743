package encode

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"os/exec"
	"strconv"
)

// FFmpegOptions configures the ffmpeg child process.
type FFmpegOptions struct {
	Binary  string // defaults to "ffmpeg" on PATH
	Width   int
	Height  int
	FPS     int
	CRF     int
	Preset  string
	OutPath string
}

// FFmpeg pipes raw RGB24 frames into an ffmpeg child process encoding
// H.264. Close flushes stdin and waits for the encoder to finish writing
// the container.
type FFmpeg struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr bytes.Buffer
	row    []byte
	width  int
	height int
	frames int
}

// FFmpegArgs assembles the ffmpeg invocation for raw RGB input on stdin.
func FFmpegArgs(o FFmpegOptions) []string {
	return []string{
		"-y",
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"-s", fmt.Sprintf("%dx%d", o.Width, o.Height),
		"-r", strconv.Itoa(o.FPS),
		"-i", "-",
		"-an",
		"-c:v", "libx264",
		"-preset", o.Preset,
		"-crf", strconv.Itoa(o.CRF),
		"-pix_fmt", "yuv420p",
		"-movflags", "+faststart",
		o.OutPath,
	}
}

// StartFFmpeg launches the encoder process. Canceling ctx kills it.
func StartFFmpeg(ctx context.Context, o FFmpegOptions) (*FFmpeg, error) {
	if o.Binary == "" {
		o.Binary = "ffmpeg"
	}
	if o.Width <= 0 || o.Height <= 0 || o.FPS <= 0 {
		return nil, fmt.Errorf("bad encoder geometry: %dx%d at %d fps", o.Width, o.Height, o.FPS)
	}

	cmd := exec.CommandContext(ctx, o.Binary, FFmpegArgs(o)...)
	e := &FFmpeg{
		cmd:    cmd,
		width:  o.Width,
		height: o.Height,
		row:    make([]byte, o.Width*3),
	}
	cmd.Stderr = &e.stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	e.stdin = stdin

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting %s: %w", o.Binary, err)
	}
	return e, nil
}

// Append streams one frame as packed RGB24.
func (e *FFmpeg) Append(img *image.RGBA) error {
	b := img.Bounds()
	if b.Dx() != e.width || b.Dy() != e.height {
		return fmt.Errorf("frame is %dx%d, encoder wants %dx%d", b.Dx(), b.Dy(), e.width, e.height)
	}
	for y := 0; y < e.height; y++ {
		off := img.PixOffset(b.Min.X, b.Min.Y+y)
		packRGB(e.row, img.Pix[off:off+e.width*4])
		if _, err := e.stdin.Write(e.row); err != nil {
			return fmt.Errorf("writing frame %d: %w (ffmpeg: %s)", e.frames, err, lastLine(e.stderr.Bytes()))
		}
	}
	e.frames++
	return nil
}

// Close finishes the stream and waits for ffmpeg to exit.
func (e *FFmpeg) Close() error {
	if err := e.stdin.Close(); err != nil {
		e.cmd.Wait()
		return err
	}
	if err := e.cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg: %w: %s", err, lastLine(e.stderr.Bytes()))
	}
	return nil
}

// Frames reports how many frames were appended.
func (e *FFmpeg) Frames() int {
	return e.frames
}

// packRGB drops the alpha channel from a row of RGBA pixels.
func packRGB(dst, src []byte) {
	di := 0
	for si := 0; si+3 < len(src); si += 4 {
		dst[di] = src[si]
		dst[di+1] = src[si+1]
		dst[di+2] = src[si+2]
		di += 3
	}
}

func lastLine(b []byte) string {
	lines := bytes.Split(bytes.TrimSpace(b), []byte("\n"))
	return string(lines[len(lines)-1])
}
