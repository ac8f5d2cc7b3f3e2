// Package viewer shows frames in a desktop window.
package viewer

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/zabarnes/RattLe/slither"
	"golang.org/x/image/draw"
)

var ErrClosed = errors.New("viewer is closed")

// A Viewer is a window displaying the latest frame passed
// to Imshow.
//
// Imshow and Close may be called from any goroutine, but
// Run must be called from the main goroutine.
type Viewer struct {
	Title string

	// Scale is the integer magnification of frames.
	Scale int

	lock    sync.Mutex
	img     *image.RGBA
	dirty   bool
	closed  bool
	texture *ebiten.Image
	width   int
	height  int
}

var _ slither.ImageViewer = &Viewer{}

// New creates a viewer.
// The window is sized by the first frame.
func New(title string, scale int) *Viewer {
	if scale < 1 {
		scale = 1
	}
	return &Viewer{Title: title, Scale: scale}
}

// Imshow replaces the displayed frame.
// Frames must have one (gray) or three (RGB) channels.
func (v *Viewer) Imshow(f *slither.Frame) error {
	src, err := frameImage(f)
	if err != nil {
		return err
	}
	bounds := image.Rect(0, 0, f.Width*v.Scale, f.Height*v.Scale)
	scaled := image.NewRGBA(bounds)
	draw.NearestNeighbor.Scale(scaled, bounds, src, src.Bounds(), draw.Src, nil)

	v.lock.Lock()
	defer v.lock.Unlock()
	if v.closed {
		return ErrClosed
	}
	v.img = scaled
	v.dirty = true
	return nil
}

// Close stops the window.
// It is safe to call Close more than once.
func (v *Viewer) Close() error {
	v.lock.Lock()
	v.closed = true
	v.lock.Unlock()
	return nil
}

// Closed reports whether Close has been called.
func (v *Viewer) Closed() bool {
	v.lock.Lock()
	defer v.lock.Unlock()
	return v.closed
}

// Run opens the window and blocks until the viewer is
// closed or the window is dismissed.
func (v *Viewer) Run() error {
	ebiten.SetWindowTitle(v.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	err := ebiten.RunGame(v)
	v.Close()
	return err
}

// Update implements ebiten.Game.
func (v *Viewer) Update() error {
	v.lock.Lock()
	defer v.lock.Unlock()
	if v.closed {
		return ebiten.Termination
	}
	if v.img != nil {
		w, h := v.img.Bounds().Dx(), v.img.Bounds().Dy()
		if w != v.width || h != v.height {
			v.width, v.height = w, h
			ebiten.SetWindowSize(w, h)
		}
	}
	return nil
}

// Draw implements ebiten.Game.
func (v *Viewer) Draw(screen *ebiten.Image) {
	v.lock.Lock()
	defer v.lock.Unlock()
	if v.img == nil {
		return
	}
	b := v.img.Bounds()
	if v.texture == nil || v.texture.Bounds().Size() != b.Size() {
		if v.texture != nil {
			v.texture.Deallocate()
		}
		v.texture = ebiten.NewImage(b.Dx(), b.Dy())
		v.dirty = true
	}
	if v.dirty {
		v.texture.WritePixels(v.img.Pix)
		v.dirty = false
	}
	screen.DrawImage(v.texture, nil)
}

// Layout implements ebiten.Game.
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	v.lock.Lock()
	defer v.lock.Unlock()
	if v.img == nil {
		return outsideWidth, outsideHeight
	}
	return v.img.Bounds().Dx(), v.img.Bounds().Dy()
}

func frameImage(f *slither.Frame) (*image.RGBA, error) {
	if f.Depth != 1 && f.Depth != 3 {
		return nil, fmt.Errorf("imshow: %w: %d", slither.ErrDepth, f.Depth)
	}
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for i := 0; i < f.Width*f.Height; i++ {
		px := f.Pix[i*f.Depth : (i+1)*f.Depth]
		dst := img.Pix[i*4 : i*4+4]
		if f.Depth == 1 {
			dst[0], dst[1], dst[2] = px[0], px[0], px[0]
		} else {
			dst[0], dst[1], dst[2] = px[0], px[1], px[2]
		}
		dst[3] = 0xff
	}
	return img, nil
}
