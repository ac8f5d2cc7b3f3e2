package slither

import "math"

// The pole of the quadratic B-spline prefilter.
var quadraticPole = math.Sqrt(8) - 3

// A Resizer scales frames with quadratic spline
// interpolation.
//
// The corner pixels of the input map exactly onto the
// corner pixels of the output.
// When TrimFirst is set, the first row and column of every
// result are dropped; downstream coordinates are
// calibrated against this.
type Resizer struct {
	Scale     float64
	TrimFirst bool
}

// OutputSize returns the (width, height) of resized
// frames.
func (r *Resizer) OutputSize(width, height int) (int, int) {
	w := int(math.RoundToEven(float64(width) * r.Scale))
	h := int(math.RoundToEven(float64(height) * r.Scale))
	if r.TrimFirst {
		w, h = w-1, h-1
	}
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return w, h
}

// Resize scales every channel of f.
func (r *Resizer) Resize(f *Frame) *Frame {
	if f == nil {
		return nil
	}
	outW := int(math.RoundToEven(float64(f.Width) * r.Scale))
	outH := int(math.RoundToEven(float64(f.Height) * r.Scale))
	xTaps := splineTaps(f.Width, outW)
	yTaps := splineTaps(f.Height, outH)

	res := NewFrame(outW, outH, f.Depth)
	plane := make([]float64, f.Width*f.Height)
	for d := 0; d < f.Depth; d++ {
		for i := range plane {
			plane[i] = float64(f.Pix[i*f.Depth+d])
		}
		prefilterPlane(plane, f.Width, f.Height)
		for y, yt := range yTaps {
			for x, xt := range xTaps {
				var sum float64
				for j := 0; j < 3; j++ {
					row := plane[yt.idx[j]*f.Width:]
					for i := 0; i < 3; i++ {
						sum += yt.weight[j] * xt.weight[i] * row[xt.idx[i]]
					}
				}
				res.Pix[(y*outW+x)*f.Depth+d] = roundUint8(sum)
			}
		}
	}

	if r.TrimFirst {
		return trimFirst(res)
	}
	return res
}

func trimFirst(f *Frame) *Frame {
	if f.Width == 0 || f.Height == 0 {
		return NewFrame(0, 0, f.Depth)
	}
	c := &Cropper{Top: 1, Left: 1, Height: f.Height - 1, Width: f.Width - 1}
	if c.Height == 0 || c.Width == 0 {
		return NewFrame(c.Width, c.Height, f.Depth)
	}
	res, _ := c.Crop(f)
	return res
}

type splineTap struct {
	idx    [3]int
	weight [3]float64
}

// splineTaps computes the quadratic B-spline sample points
// and weights for each output coordinate along one axis.
func splineTaps(inSize, outSize int) []splineTap {
	step := 1.0
	if outSize > 1 {
		step = float64(inSize-1) / float64(outSize-1)
	}
	res := make([]splineTap, outSize)
	for i := range res {
		pos := float64(i) * step
		center := math.Floor(pos + 0.5)
		t := pos - center
		c := int(center)
		res[i] = splineTap{
			idx: [3]int{
				mirrorIndex(c-1, inSize),
				mirrorIndex(c, inSize),
				mirrorIndex(c+1, inSize),
			},
			weight: [3]float64{
				0.5 * (0.5 - t) * (0.5 - t),
				0.75 - t*t,
				0.5 * (0.5 + t) * (0.5 + t),
			},
		}
	}
	return res
}

// prefilterPlane converts samples into quadratic B-spline
// coefficients in place, along both axes.
func prefilterPlane(plane []float64, width, height int) {
	line := make([]float64, height)
	for x := 0; x < width; x++ {
		for y := range line {
			line[y] = plane[y*width+x]
		}
		prefilterLine(line)
		for y, v := range line {
			plane[y*width+x] = v
		}
	}
	for y := 0; y < height; y++ {
		prefilterLine(plane[y*width : (y+1)*width])
	}
}

// prefilterLine runs the causal and anti-causal recursive
// filters with mirror-symmetric boundaries.
func prefilterLine(c []float64) {
	n := len(c)
	if n < 2 {
		return
	}
	z := quadraticPole
	gain := (1 - z) * (1 - 1/z)
	for i := range c {
		c[i] *= gain
	}

	zn := math.Pow(z, float64(n-1))
	z2n := zn * zn / z
	sum := c[0] + zn*c[n-1]
	zk := z
	for k := 1; k < n-1; k++ {
		sum += (zk + z2n) * c[k]
		zk *= z
		z2n /= z
	}
	c[0] = sum / (1 - zn*zn)

	for k := 1; k < n; k++ {
		c[k] += z * c[k-1]
	}
	c[n-1] = (z / (z*z - 1)) * (c[n-1] + z*c[n-2])
	for k := n - 2; k >= 0; k-- {
		c[k] = z * (c[k+1] - c[k])
	}
}

// mirrorIndex reflects an index about the first and last
// samples (c b | a b c d | c b).
func mirrorIndex(i, size int) int {
	if size == 1 {
		return 0
	}
	period := 2*size - 2
	i %= period
	if i < 0 {
		i += period
	}
	if i >= size {
		i = period - i
	}
	return i
}

func roundUint8(x float64) uint8 {
	if x <= 0 {
		return 0
	} else if x >= 255 {
		return 255
	}
	return uint8(x + 0.5)
}
