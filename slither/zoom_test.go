package slither

import "testing"

func TestResizerShape(t *testing.T) {
	r := &Resizer{Scale: 0.25, TrimFirst: true}
	res := r.Resize(NewFrame(500, 300, 3))
	if h, w, d := res.Shape(); h != 74 || w != 124 || d != 3 {
		t.Errorf("unexpected shape %dx%dx%d", h, w, d)
	}
	if w, h := r.OutputSize(500, 300); w != 124 || h != 74 {
		t.Errorf("unexpected output size %dx%d", h, w)
	}

	r.TrimFirst = false
	if w, h := r.OutputSize(500, 300); w != 125 || h != 75 {
		t.Errorf("unexpected output size %dx%d", h, w)
	}
}

func TestResizerConstant(t *testing.T) {
	f := NewFrame(40, 30, 3)
	f.Fill([]uint8{0, 255, 100})
	res := (&Resizer{Scale: 0.25}).Resize(f)
	for i := 0; i < len(res.Pix); i += 3 {
		if px := res.Pix[i : i+3]; px[0] != 0 || px[1] != 255 || px[2] != 100 {
			t.Fatalf("pixel %d changed: %v", i/3, px)
		}
	}
}

func TestResizerCorners(t *testing.T) {
	f := NewFrame(21, 13, 1)
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			f.Pix[y*f.Width+x] = uint8(x*10 + y)
		}
	}
	res := (&Resizer{Scale: 0.5}).Resize(f)
	if res.Width != 10 || res.Height != 6 {
		t.Fatalf("unexpected size %dx%d", res.Height, res.Width)
	}
	corners := [][4]int{
		{0, 0, 0, 0},
		{res.Width - 1, 0, f.Width - 1, 0},
		{0, res.Height - 1, 0, f.Height - 1},
		{res.Width - 1, res.Height - 1, f.Width - 1, f.Height - 1},
	}
	for _, c := range corners {
		actual := res.At(c[0], c[1], 0)
		expected := f.At(c[2], c[3], 0)
		if actual != expected {
			t.Errorf("corner (%d, %d): expected %d but got %d", c[0], c[1], expected, actual)
		}
	}
}

func TestResizerNil(t *testing.T) {
	if (&Resizer{Scale: 0.25}).Resize(nil) != nil {
		t.Error("expected nil")
	}
}
