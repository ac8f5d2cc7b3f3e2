package slither

import (
	"math"

	"github.com/unixpickle/essentials"
)

// A LabelMap assigns a connected component to every pixel.
// Label 0 is background; labels 1..N are numbered in
// raster order of each component's first pixel.
type LabelMap struct {
	Width  int
	Height int
	Labels []int
}

// At returns the label of pixel (x, y).
func (l *LabelMap) At(x, y int) int {
	return l.Labels[y*l.Width+x]
}

// Mode returns the most frequent non-zero label inside r,
// preferring the smaller label on ties.
// It returns NoLabel if r contains no labeled pixels.
// The rectangle is clipped to the map.
func (l *LabelMap) Mode(r Rect) int {
	counts := map[int]int{}
	for y := essentials.MaxInt(r.Top, 0); y < essentials.MinInt(r.Bottom, l.Height); y++ {
		for x := essentials.MaxInt(r.Left, 0); x < essentials.MinInt(r.Right, l.Width); x++ {
			if label := l.At(x, y); label != 0 {
				counts[label]++
			}
		}
	}
	best, bestCount := NoLabel, 0
	for label, count := range counts {
		if count > bestCount || (count == bestCount && label < best) {
			best, bestCount = label, count
		}
	}
	return best
}

// Label finds the 4-connected components of the non-zero
// pixels in a single-channel image.
func Label(img []uint8, width, height int) (*LabelMap, int) {
	res := &LabelMap{Width: width, Height: height, Labels: make([]int, len(img))}
	var count int
	var queue []int
	for start, v := range img {
		if v == 0 || res.Labels[start] != 0 {
			continue
		}
		count++
		res.Labels[start] = count
		queue = append(queue[:0], start)
		for len(queue) > 0 {
			idx := queue[len(queue)-1]
			queue = queue[:len(queue)-1]
			x, y := idx%width, idx/width
			for _, n := range [4][2]int{{x - 1, y}, {x + 1, y}, {x, y - 1}, {x, y + 1}} {
				if n[0] < 0 || n[0] >= width || n[1] < 0 || n[1] >= height {
					continue
				}
				nIdx := n[1]*width + n[0]
				if img[nIdx] != 0 && res.Labels[nIdx] == 0 {
					res.Labels[nIdx] = count
					queue = append(queue, nIdx)
				}
			}
		}
	}
	return res, count
}

// erode applies a grey erosion with a height x width
// window.
// Even windows extend towards lower indices, and borders
// are handled by half-sample reflection.
func erode(img []uint8, width, height, winHeight, winWidth int) []uint8 {
	res := make([]uint8, len(img))
	y0, x0 := -(winHeight / 2), -(winWidth / 2)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			low := uint8(255)
			for dy := y0; dy < y0+winHeight; dy++ {
				row := reflectIndex(y+dy, height) * width
				for dx := x0; dx < x0+winWidth; dx++ {
					if v := img[row+reflectIndex(x+dx, width)]; v < low {
						low = v
					}
				}
			}
			res[y*width+x] = low
		}
	}
	return res
}

// gaussianBlur smooths a single-channel image with a
// separable Gaussian truncated at four standard
// deviations.
// Each pass truncates its result to 8 bits, so faint halos
// around blobs stay non-zero.
func gaussianBlur(img []uint8, width, height int, sigma float64) []uint8 {
	if sigma <= 0 {
		return append([]uint8(nil), img...)
	}
	kernel := gaussianKernel(sigma)
	radius := len(kernel) / 2

	tmp := make([]uint8, len(img))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var sum float64
			for i, w := range kernel {
				sum += w * float64(img[reflectIndex(y+i-radius, height)*width+x])
			}
			tmp[y*width+x] = truncateUint8(sum)
		}
	}

	res := make([]uint8, len(img))
	for y := 0; y < height; y++ {
		row := tmp[y*width : (y+1)*width]
		for x := 0; x < width; x++ {
			var sum float64
			for i, w := range kernel {
				sum += w * float64(row[reflectIndex(x+i-radius, width)])
			}
			res[y*width+x] = truncateUint8(sum)
		}
	}
	return res
}

func gaussianKernel(sigma float64) []float64 {
	radius := int(4*sigma + 0.5)
	kernel := make([]float64, 2*radius+1)
	var sum float64
	for i := range kernel {
		x := float64(i - radius)
		kernel[i] = math.Exp(-0.5 * x * x / (sigma * sigma))
		sum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// reflectIndex maps an index onto [0, size) by mirroring
// about the edges (d c b a | a b c d | d c b a).
func reflectIndex(i, size int) int {
	if size == 1 {
		return 0
	}
	period := 2 * size
	i %= period
	if i < 0 {
		i += period
	}
	if i >= size {
		i = period - 1 - i
	}
	return i
}

func truncateUint8(x float64) uint8 {
	if x <= 0 {
		return 0
	} else if x >= 255 {
		return 255
	}
	return uint8(x)
}
