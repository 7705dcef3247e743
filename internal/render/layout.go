package render

import (
	"image"
	"math"
)

// Layout carves a frame into the title band and three content columns:
// text, lung, gauge. Margins and ratios follow the 16:9 storyboard
// (5% left, 3% right, 10% top and bottom, columns 1.25 : 1.45 : 0.55
// with a 12% spacing unit).
type Layout struct {
	W, H int

	TitleBaseline int

	Text  image.Rectangle
	Lung  image.Rectangle
	Gauge image.Rectangle
}

func NewLayout(w, h int) Layout {
	left := 0.05 * float64(w)
	right := 0.97 * float64(w)
	top := 0.10 * float64(h)
	bottom := 0.90 * float64(h)

	ratios := [3]float64{1.25, 1.45, 0.55}
	const wspace = 0.12
	sum := ratios[0] + ratios[1] + ratios[2]
	// column spacing is wspace times the mean column width
	unit := (right - left) / (sum + 2*wspace*sum/3)
	gap := wspace * sum / 3 * unit

	l := Layout{W: w, H: h, TitleBaseline: int(0.055 * float64(h))}

	x := left
	cols := [3]*image.Rectangle{&l.Text, &l.Lung, &l.Gauge}
	for i, col := range cols {
		*col = image.Rect(int(x), int(top), int(x+ratios[i]*unit), int(bottom))
		x += ratios[i]*unit + gap
	}
	return l
}

// pt maps panel fractions to pixels. Fractions use the storyboard
// convention: x grows right, y grows up from the panel's bottom edge.
func pt(r image.Rectangle, fx, fy float64) (int, int) {
	x := r.Min.X + int(math.Round(fx*float64(r.Dx())))
	y := r.Max.Y - int(math.Round(fy*float64(r.Dy())))
	return x, y
}
