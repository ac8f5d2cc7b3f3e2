package viewer

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/zabarnes/RattLe/slither"
)

func TestViewerImshow(t *testing.T) {
	v := New("test", 2)
	f := slither.NewFrame(3, 2, 3)
	f.SetPixel(2, 1, []uint8{10, 20, 30})
	if err := v.Imshow(f); err != nil {
		t.Fatal(err)
	}
	if w, h := v.Layout(640, 480); w != 6 || h != 4 {
		t.Errorf("unexpected layout %dx%d", w, h)
	}
	px := v.img.RGBAAt(5, 3)
	if px.R != 10 || px.G != 20 || px.B != 30 || px.A != 0xff {
		t.Errorf("unexpected pixel %v", px)
	}
}

func TestViewerGray(t *testing.T) {
	v := New("test", 1)
	f := slither.NewFrame(2, 2, 1)
	f.Pix[1] = 99
	if err := v.Imshow(f); err != nil {
		t.Fatal(err)
	}
	if px := v.img.RGBAAt(1, 0); px.R != 99 || px.G != 99 || px.B != 99 {
		t.Errorf("unexpected pixel %v", px)
	}
}

func TestViewerDepth(t *testing.T) {
	v := New("test", 1)
	if err := v.Imshow(slither.NewFrame(2, 2, 4)); !errors.Is(err, slither.ErrDepth) {
		t.Errorf("expected ErrDepth but got %v", err)
	}
}

func TestViewerClose(t *testing.T) {
	v := New("test", 0)
	if v.Scale != 1 {
		t.Errorf("unexpected scale %d", v.Scale)
	}
	if w, h := v.Layout(640, 480); w != 640 || h != 480 {
		t.Errorf("unexpected layout %dx%d", w, h)
	}
	if err := v.Close(); err != nil {
		t.Fatal(err)
	}
	if err := v.Close(); err != nil {
		t.Fatal(err)
	}
	if !v.Closed() {
		t.Error("viewer should be closed")
	}
	if err := v.Update(); err != ebiten.Termination {
		t.Errorf("expected termination but got %v", err)
	}
	if err := v.Imshow(slither.NewFrame(1, 1, 3)); err != ErrClosed {
		t.Errorf("expected ErrClosed but got %v", err)
	}
}
