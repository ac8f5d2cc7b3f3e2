package slither

import (
	"errors"
	"fmt"
)

var (
	ErrFrameSize = errors.New("frame data does not match its dimensions")
	ErrDepth     = errors.New("unsupported channel depth")
)

// A Frame is a row-major pixel grid with Depth interleaved
// channels per pixel.
type Frame struct {
	Width  int
	Height int
	Depth  int

	Pix []uint8
}

// NewFrame creates a black frame.
func NewFrame(width, height, depth int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Depth:  depth,
		Pix:    make([]uint8, width*height*depth),
	}
}

// FrameFromPixels wraps raw HWC pixel data.
// The data is not copied.
func FrameFromPixels(width, height, depth int, pix []uint8) (*Frame, error) {
	if width < 0 || height < 0 || depth <= 0 || len(pix) != width*height*depth {
		return nil, fmt.Errorf("%w: %dx%dx%d with %d values", ErrFrameSize,
			height, width, depth, len(pix))
	}
	return &Frame{Width: width, Height: height, Depth: depth, Pix: pix}, nil
}

// Copy creates a deep copy of the frame.
func (f *Frame) Copy() *Frame {
	res := *f
	res.Pix = append([]uint8(nil), f.Pix...)
	return &res
}

// At returns the value of channel d of pixel (x, y).
func (f *Frame) At(x, y, d int) uint8 {
	return f.Pix[(y*f.Width+x)*f.Depth+d]
}

// Pixel returns the channels of pixel (x, y).
// The result aliases the frame.
func (f *Frame) Pixel(x, y int) []uint8 {
	idx := (y*f.Width + x) * f.Depth
	return f.Pix[idx : idx+f.Depth]
}

// SetPixel overwrites the channels of pixel (x, y).
func (f *Frame) SetPixel(x, y int, c []uint8) {
	copy(f.Pixel(x, y), c)
}

// Fill sets every pixel to c.
func (f *Frame) Fill(c []uint8) {
	for i := 0; i < len(f.Pix); i += f.Depth {
		copy(f.Pix[i:i+f.Depth], c)
	}
}

// Shape returns (height, width, depth).
func (f *Frame) Shape() (int, int, int) {
	return f.Height, f.Width, f.Depth
}

// Concat joins frames horizontally.
// All frames must share a height and a depth.
func Concat(frames ...*Frame) (*Frame, error) {
	if len(frames) == 0 {
		return nil, errors.New("concat: no frames")
	}
	height, depth := frames[0].Height, frames[0].Depth
	var width int
	for _, f := range frames {
		if f.Height != height || f.Depth != depth {
			return nil, fmt.Errorf("concat: %w: %dx%dx%d vs %dx%dx%d", ErrFrameSize,
				f.Height, f.Width, f.Depth, height, frames[0].Width, depth)
		}
		width += f.Width
	}
	res := NewFrame(width, height, depth)
	for y := 0; y < height; y++ {
		dst := res.Pix[y*width*depth:]
		for _, f := range frames {
			row := f.Pix[y*f.Width*depth : (y+1)*f.Width*depth]
			dst = dst[copy(dst, row):]
		}
	}
	return res, nil
}
