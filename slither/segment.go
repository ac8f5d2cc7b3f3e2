package slither

import (
	"fmt"
	"math"
)

// NoLabel is the self label used when no blob covers the
// self-reference region.
// It never matches a real label.
const NoLabel = -1

// Class is the semantic class of a pixel.
type Class int

const (
	Background Class = iota
	Food
	Self
	Enemy
)

func (c Class) String() string {
	switch c {
	case Background:
		return "background"
	case Food:
		return "food"
	case Self:
		return "self"
	case Enemy:
		return "enemy"
	default:
		return fmt.Sprintf("Class(%d)", int(c))
	}
}

// A Rect is a half-open rectangle [Top:Bottom, Left:Right].
type Rect struct {
	Top    int `json:"top"`
	Left   int `json:"left"`
	Bottom int `json:"bottom"`
	Right  int `json:"right"`
}

// Palette stores the RGB color of each class.
type Palette struct {
	Background [3]uint8 `json:"background"`
	Food       [3]uint8 `json:"food"`
	Self       [3]uint8 `json:"self"`
	Enemy      [3]uint8 `json:"enemy"`
}

// Color returns the color for a class.
func (p *Palette) Color(c Class) [3]uint8 {
	switch c {
	case Food:
		return p.Food
	case Self:
		return p.Self
	case Enemy:
		return p.Enemy
	default:
		return p.Background
	}
}

// SegmentConfig stores the thresholds of a Segmenter.
//
// SelfRegion is in the coordinates of the cropped
// viewport and is only meaningful for it.
type SegmentConfig struct {
	AbsThreshold   uint8   `json:"abs_threshold"`
	RelThreshold   float64 `json:"rel_threshold"`
	ErosionHeight  int     `json:"erosion_height"`
	ErosionWidth   int     `json:"erosion_width"`
	BlurSigma      float64 `json:"blur_sigma"`
	SnakeThreshold int     `json:"snake_threshold"`
	SelfRegion     Rect    `json:"self_region"`
	Palette        Palette `json:"palette"`
}

// DefaultSegmentConfig returns the thresholds calibrated
// for the 300x500 Slither.io viewport.
func DefaultSegmentConfig() SegmentConfig {
	return SegmentConfig{
		AbsThreshold:   115,
		RelThreshold:   30,
		ErosionHeight:  2,
		ErosionWidth:   2,
		BlurSigma:      0.35,
		SnakeThreshold: 235,
		SelfRegion:     Rect{Top: 145, Left: 245, Bottom: 155, Right: 255},
		Palette: Palette{
			Food:  [3]uint8{0, 0, 255},
			Self:  [3]uint8{0, 255, 0},
			Enemy: [3]uint8{255, 0, 0},
		},
	}
}

// A Segmentation is the result of segmenting a frame.
type Segmentation struct {
	// Frame is the recolored frame.
	Frame *Frame

	Labels *LabelMap
	Count  int

	// SelfLabel is the label of the controlled snake, or
	// NoLabel.
	SelfLabel int

	// Sizes[l] is the pixel count of label l.
	// Sizes[0] is unused.
	Sizes []int

	snakeThreshold int
}

// Class returns the class assigned to a label.
func (s *Segmentation) Class(label int) Class {
	if label <= 0 || label > s.Count {
		return Background
	}
	return classify(s.Sizes[label], label, s.SelfLabel, s.snakeThreshold)
}

// Classes returns the number of components in each class.
func (s *Segmentation) Classes() map[Class]int {
	res := map[Class]int{}
	for l := 1; l <= s.Count; l++ {
		res[s.Class(l)]++
	}
	return res
}

// A Segmenter recolors frames into background, food, self
// and enemy pixels.
type Segmenter struct {
	Config SegmentConfig
}

// Segment returns the recolored version of f.
// The input frame is not modified.
func (s *Segmenter) Segment(f *Frame) (*Frame, error) {
	seg, err := s.Analyze(f)
	if err != nil {
		return nil, err
	}
	return seg.Frame, nil
}

// Analyze segments a frame and returns the intermediate
// labeling along with the recolored frame.
func (s *Segmenter) Analyze(f *Frame) (*Segmentation, error) {
	if f.Depth != 3 {
		return nil, fmt.Errorf("segment: %w: %d", ErrDepth, f.Depth)
	}
	cfg := &s.Config

	mask := s.chromaMask(f)
	mask = erode(mask, f.Width, f.Height, cfg.ErosionHeight, cfg.ErosionWidth)
	mask = gaussianBlur(mask, f.Width, f.Height, cfg.BlurSigma)

	labels, count := Label(mask, f.Width, f.Height)
	sizes := make([]int, count+1)
	for _, l := range labels.Labels {
		sizes[l]++
	}

	res := &Segmentation{
		Frame:          NewFrame(f.Width, f.Height, 3),
		Labels:         labels,
		Count:          count,
		SelfLabel:      labels.Mode(cfg.SelfRegion),
		Sizes:          sizes,
		snakeThreshold: cfg.SnakeThreshold,
	}
	bg := cfg.Palette.Background
	res.Frame.Fill(bg[:])
	for i, l := range labels.Labels {
		if l == 0 {
			continue
		}
		c := cfg.Palette.Color(res.Class(l))
		copy(res.Frame.Pix[i*3:i*3+3], c[:])
	}
	return res, nil
}

// chromaMask zeroes near-black pixels, then marks every
// pixel far enough from gray.
// The result is the green channel of the masked frame.
func (s *Segmenter) chromaMask(f *Frame) []uint8 {
	abs := s.Config.AbsThreshold
	mask := make([]uint8, f.Width*f.Height)
	for i := range mask {
		px := f.Pix[i*3 : i*3+3]
		r, g, b := px[0], px[1], px[2]
		if r < abs && g < abs && b < abs {
			r, g, b = 0, 0, 0
		}
		fr, fg, fb := float64(r), float64(g), float64(b)
		mean := (fr + fg + fb) / 3
		diff := math.Abs(mean-fr) + math.Abs(mean-fg) + math.Abs(mean-fb)

		// The whole frame is painted white first, so only the
		// achromatic pixels end up zeroed.
		mask[i] = 255
		if diff < s.Config.RelThreshold {
			mask[i] = 0
		}
	}
	return mask
}

func classify(size, label, selfLabel, threshold int) Class {
	if size < threshold {
		return Food
	} else if label == selfLabel {
		return Self
	}
	return Enemy
}
