package render

import (
	"image"
	"testing"
)

func TestLayoutColumns(t *testing.T) {
	l := NewLayout(1536, 864)
	frame := image.Rect(0, 0, 1536, 864)

	for name, r := range map[string]image.Rectangle{
		"text": l.Text, "lung": l.Lung, "gauge": l.Gauge,
	} {
		if !r.In(frame) {
			t.Errorf("%s panel %v escapes the frame", name, r)
		}
		if r.Empty() {
			t.Errorf("%s panel is empty", name)
		}
	}

	if l.Text.Max.X >= l.Lung.Min.X {
		t.Error("text and lung panels overlap")
	}
	if l.Lung.Max.X >= l.Gauge.Min.X {
		t.Error("lung and gauge panels overlap")
	}
	if !(l.Lung.Dx() > l.Text.Dx() && l.Text.Dx() > l.Gauge.Dx()) {
		t.Errorf("column widths out of ratio: %d/%d/%d", l.Text.Dx(), l.Lung.Dx(), l.Gauge.Dx())
	}
	if l.Text.Min.Y != l.Lung.Min.Y || l.Lung.Min.Y != l.Gauge.Min.Y {
		t.Error("panels should share the content band")
	}
}

func TestLayoutScalesDown(t *testing.T) {
	l := NewLayout(320, 180)
	if l.Gauge.Max.X > 320 || l.Gauge.Max.Y > 180 {
		t.Errorf("gauge escapes a small frame: %v", l.Gauge)
	}
	if l.Text.Dx() <= 0 {
		t.Error("text column collapsed")
	}
}

func TestPt(t *testing.T) {
	r := image.Rect(100, 100, 300, 200)

	if x, y := pt(r, 0, 0); x != 100 || y != 200 {
		t.Errorf("origin should map to bottom-left, got %d,%d", x, y)
	}
	if x, y := pt(r, 1, 1); x != 300 || y != 100 {
		t.Errorf("(1,1) should map to top-right, got %d,%d", x, y)
	}
	if x, y := pt(r, 0.5, 0.5); x != 200 || y != 150 {
		t.Errorf("center mismapped to %d,%d", x, y)
	}
}
