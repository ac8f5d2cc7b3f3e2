package slither

import (
	"errors"
	"reflect"
	"testing"
)

func TestSegmenterClasses(t *testing.T) {
	f := testViewport()
	original := f.Copy()

	seg := &Segmenter{Config: DefaultSegmentConfig()}
	res, err := seg.Analyze(f)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(f, original) {
		t.Error("input frame was modified")
	}

	if res.Count != 3 {
		t.Fatalf("expected 3 components but got %d", res.Count)
	}
	expectedSizes := []int{0, 117, 285, 285}
	if !reflect.DeepEqual(res.Sizes[1:], expectedSizes[1:]) {
		t.Errorf("expected sizes %v but got %v", expectedSizes[1:], res.Sizes[1:])
	}
	if res.SelfLabel != 3 {
		t.Errorf("expected self label 3 but got %d", res.SelfLabel)
	}
	expectedClasses := map[Class]int{Food: 1, Enemy: 1, Self: 1}
	if actual := res.Classes(); !reflect.DeepEqual(actual, expectedClasses) {
		t.Errorf("expected classes %v but got %v", expectedClasses, actual)
	}

	counts := colorCounts(res.Frame)
	expectedCounts := map[[3]uint8]int{
		{0, 0, 255}: 117,
		{255, 0, 0}: 285,
		{0, 255, 0}: 285,
		{0, 0, 0}:   300*500 - 117 - 285*2,
	}
	if !reflect.DeepEqual(counts, expectedCounts) {
		t.Errorf("expected colors %v but got %v", expectedCounts, counts)
	}
}

func TestSegmenterBackground(t *testing.T) {
	f := NewFrame(500, 300, 3)
	f.Fill([]uint8{90, 100, 110})
	res, err := (&Segmenter{Config: DefaultSegmentConfig()}).Analyze(f)
	if err != nil {
		t.Fatal(err)
	}
	if res.Count != 0 || res.SelfLabel != NoLabel {
		t.Errorf("expected no components but got %d (self %d)", res.Count, res.SelfLabel)
	}
	for _, x := range res.Frame.Pix {
		if x != 0 {
			t.Fatal("expected a black frame")
		}
	}
}

func TestSegmenterGray(t *testing.T) {
	// Bright gray pixels pass the absolute threshold but are
	// still achromatic.
	f := NewFrame(500, 300, 3)
	f.Fill([]uint8{200, 200, 210})
	res, err := (&Segmenter{Config: DefaultSegmentConfig()}).Analyze(f)
	if err != nil {
		t.Fatal(err)
	}
	if res.Count != 0 {
		t.Errorf("expected no components but got %d", res.Count)
	}
}

func TestSegmenterResegment(t *testing.T) {
	seg := &Segmenter{Config: DefaultSegmentConfig()}
	first, err := seg.Analyze(testViewport())
	if err != nil {
		t.Fatal(err)
	}
	second, err := seg.Analyze(first.Frame)
	if err != nil {
		t.Fatal(err)
	}
	allowed := map[[3]uint8]bool{
		{0, 0, 0}: true, {0, 0, 255}: true, {0, 255, 0}: true, {255, 0, 0}: true,
	}
	for c := range colorCounts(second.Frame) {
		if !allowed[c] {
			t.Errorf("unexpected color %v", c)
		}
	}
	if second.Count != first.Count {
		t.Errorf("expected %d components but got %d", first.Count, second.Count)
	}
	if second.SelfLabel != first.SelfLabel {
		t.Errorf("expected self label %d but got %d", first.SelfLabel, second.SelfLabel)
	}
	expected := map[Class]int{Food: 1, Self: 1, Enemy: 1}
	if actual := second.Classes(); !reflect.DeepEqual(actual, expected) {
		t.Errorf("expected classes %v but got %v", expected, actual)
	}
	for l := 1; l <= first.Count; l++ {
		if second.Class(l) != first.Class(l) {
			t.Errorf("label %d: class %s became %s", l, first.Class(l), second.Class(l))
		}
	}
}

func TestSegmenterDepth(t *testing.T) {
	_, err := (&Segmenter{Config: DefaultSegmentConfig()}).Segment(NewFrame(4, 4, 1))
	if !errors.Is(err, ErrDepth) {
		t.Errorf("expected ErrDepth but got %v", err)
	}
}

// testViewport creates a dark 300x500 viewport with a
// small blue blob, a red snake, and a green snake over the
// self region.
func testViewport() *Frame {
	f := NewFrame(500, 300, 3)
	f.Fill([]uint8{20, 30, 25})
	fillRect(f, Rect{Top: 20, Left: 20, Bottom: 30, Right: 30}, []uint8{0, 0, 200})
	fillRect(f, Rect{Top: 60, Left: 300, Bottom: 76, Right: 316}, []uint8{200, 0, 0})
	fillRect(f, Rect{Top: 142, Left: 242, Bottom: 158, Right: 258}, []uint8{0, 200, 0})
	return f
}

func fillRect(f *Frame, r Rect, c []uint8) {
	for y := r.Top; y < r.Bottom; y++ {
		for x := r.Left; x < r.Right; x++ {
			f.SetPixel(x, y, c)
		}
	}
}

func colorCounts(f *Frame) map[[3]uint8]int {
	res := map[[3]uint8]int{}
	for i := 0; i < len(f.Pix); i += 3 {
		res[[3]uint8{f.Pix[i], f.Pix[i+1], f.Pix[i+2]}]++
	}
	return res
}
