package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// fillRect paints a solid axis-aligned rectangle.
func fillRect(dst *image.RGBA, r image.Rectangle, col color.Color) {
	draw.Draw(dst, r, image.NewUniform(col), image.Point{}, draw.Src)
}

// strokeRect draws a border of width w just inside r.
func strokeRect(dst *image.RGBA, r image.Rectangle, w int, col color.Color) {
	fillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+w), col)
	fillRect(dst, image.Rect(r.Min.X, r.Max.Y-w, r.Max.X, r.Max.Y), col)
	fillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+w, r.Max.Y), col)
	fillRect(dst, image.Rect(r.Max.X-w, r.Min.Y, r.Max.X, r.Max.Y), col)
}

// hLine draws a horizontal line of the given thickness centered on y.
func hLine(dst *image.RGBA, x0, x1, y, thickness int, col color.Color) {
	fillRect(dst, image.Rect(x0, y-thickness/2, x1, y+(thickness+1)/2), col)
}

// dashedHLine draws a dashed horizontal line centered on y.
func dashedHLine(dst *image.RGBA, x0, x1, y, thickness, dash, gap int, col color.Color) {
	for x := x0; x < x1; x += dash + gap {
		end := x + dash
		if end > x1 {
			end = x1
		}
		hLine(dst, x, end, y, thickness, col)
	}
}

// strokeLine draws an anti-aliased segment of the given width.
func strokeLine(dst *image.RGBA, x0, y0, x1, y1, width float64, col color.Color) {
	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	// unit normal scaled to half width
	nx := -dy / length * width / 2
	ny := dx / length * width / 2

	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.MoveTo(float32(x0+nx), float32(y0+ny))
	z.LineTo(float32(x1+nx), float32(y1+ny))
	z.LineTo(float32(x1-nx), float32(y1-ny))
	z.LineTo(float32(x0-nx), float32(y0-ny))
	z.ClosePath()
	z.Draw(dst, b, image.NewUniform(col), image.Point{})
}

// fillEllipse paints a solid ellipse by horizontal spans.
func fillEllipse(dst *image.RGBA, cx, cy, rx, ry float64, col color.Color) {
	if rx <= 0 || ry <= 0 {
		return
	}
	top := int(math.Ceil(cy - ry))
	bot := int(math.Floor(cy + ry))
	for y := top; y <= bot; y++ {
		t := (float64(y) + 0.5 - cy) / ry
		if t < -1 || t > 1 {
			continue
		}
		half := rx * math.Sqrt(1-t*t)
		fillRect(dst, image.Rect(int(math.Round(cx-half)), y, int(math.Round(cx+half)), y+1), col)
	}
}

// fillRoundRect paints a rectangle with rounded corners of the given
// radius.
func fillRoundRect(dst *image.RGBA, r image.Rectangle, radius int, col color.Color) {
	if radius <= 0 {
		fillRect(dst, r, col)
		return
	}
	if w := r.Dx() / 2; radius > w {
		radius = w
	}
	if h := r.Dy() / 2; radius > h {
		radius = h
	}
	rf := float64(radius)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		inset := 0
		switch {
		case y < r.Min.Y+radius:
			dy := float64(r.Min.Y+radius-y) - 0.5
			inset = radius - int(math.Round(math.Sqrt(rf*rf-dy*dy)))
		case y >= r.Max.Y-radius:
			dy := float64(y-(r.Max.Y-radius)) + 0.5
			inset = radius - int(math.Round(math.Sqrt(rf*rf-dy*dy)))
		}
		fillRect(dst, image.Rect(r.Min.X+inset, y, r.Max.X-inset, y+1), col)
	}
}
