package slither

import (
	"errors"
	"fmt"
)

var ErrBadCrop = errors.New("bad crop rectangle")

// A Cropper restricts frames to a fixed viewport.
type Cropper struct {
	Top    int `json:"top"`
	Left   int `json:"left"`
	Height int `json:"height"`
	Width  int `json:"width"`
}

// OutputShape returns the (height, width, depth) of
// cropped frames.
func (c *Cropper) OutputShape() (int, int, int) {
	return c.Height, c.Width, 3
}

// Validate checks that the rectangle fits inside a source
// frame of the given size.
func (c *Cropper) Validate(srcWidth, srcHeight int) error {
	if c.Top < 0 || c.Left < 0 || c.Height <= 0 || c.Width <= 0 {
		return fmt.Errorf("%w: top=%d left=%d height=%d width=%d", ErrBadCrop,
			c.Top, c.Left, c.Height, c.Width)
	}
	if c.Top+c.Height > srcHeight || c.Left+c.Width > srcWidth {
		return fmt.Errorf("%w: [%d:%d, %d:%d] exceeds %dx%d frame", ErrBadCrop,
			c.Top, c.Top+c.Height, c.Left, c.Left+c.Width, srcHeight, srcWidth)
	}
	return nil
}

// Crop copies the viewport out of f.
// A nil frame is passed through, since remotes produce
// nil observations while they are connecting.
func (c *Cropper) Crop(f *Frame) (*Frame, error) {
	if f == nil {
		return nil, nil
	}
	if err := c.Validate(f.Width, f.Height); err != nil {
		return nil, err
	}
	res := NewFrame(c.Width, c.Height, f.Depth)
	rowSize := c.Width * f.Depth
	for y := 0; y < c.Height; y++ {
		srcIdx := ((y+c.Top)*f.Width + c.Left) * f.Depth
		copy(res.Pix[y*rowSize:(y+1)*rowSize], f.Pix[srcIdx:srcIdx+rowSize])
	}
	return res, nil
}
