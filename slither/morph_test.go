package slither

import (
	"reflect"
	"testing"
)

func TestLabel(t *testing.T) {
	img := []uint8{
		0, 1, 1, 0, 0,
		0, 0, 1, 0, 1,
		1, 0, 0, 0, 1,
		1, 0, 1, 0, 0,
	}
	labels, count := Label(img, 5, 4)
	if count != 4 {
		t.Fatalf("expected 4 components but got %d", count)
	}
	expected := []int{
		0, 1, 1, 0, 0,
		0, 0, 1, 0, 2,
		3, 0, 0, 0, 2,
		3, 0, 4, 0, 0,
	}
	if !reflect.DeepEqual(labels.Labels, expected) {
		t.Errorf("expected %v but got %v", expected, labels.Labels)
	}
}

func TestLabelDiagonal(t *testing.T) {
	img := []uint8{
		1, 0,
		0, 1,
	}
	if _, count := Label(img, 2, 2); count != 2 {
		t.Errorf("diagonal pixels should not connect (got %d components)", count)
	}
}

func TestLabelMapMode(t *testing.T) {
	l := &LabelMap{Width: 4, Height: 2, Labels: []int{
		2, 2, 1, 0,
		1, 0, 3, 3,
	}}
	cases := []struct {
		Rect     Rect
		Expected int
	}{
		{Rect{0, 0, 2, 4}, 1},
		{Rect{0, 0, 1, 2}, 2},
		{Rect{1, 2, 2, 4}, 3},
		{Rect{0, 3, 1, 4}, NoLabel},
		{Rect{-5, -5, 10, 10}, 1},
	}
	for i, c := range cases {
		if actual := l.Mode(c.Rect); actual != c.Expected {
			t.Errorf("case %d: expected %d but got %d", i, c.Expected, actual)
		}
	}
}

func TestErode(t *testing.T) {
	img := []uint8{
		9, 9, 9, 9,
		9, 9, 9, 9,
		9, 9, 1, 9,
		9, 9, 9, 9,
	}
	expected := []uint8{
		9, 9, 9, 9,
		9, 9, 9, 9,
		9, 9, 1, 1,
		9, 9, 1, 1,
	}
	if actual := erode(img, 4, 4, 2, 2); !reflect.DeepEqual(actual, expected) {
		t.Errorf("expected %v but got %v", expected, actual)
	}
}

func TestGaussianBlurHalo(t *testing.T) {
	img := make([]uint8, 25)
	img[12] = 255
	res := gaussianBlur(img, 5, 5, 0.35)
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			dx, dy := x-2, y-2
			plus := (dx == 0 && (dy == 0 || dy == 1 || dy == -1)) ||
				(dy == 0 && (dx == 1 || dx == -1))
			if plus != (res[y*5+x] != 0) {
				t.Errorf("unexpected value %d at (%d, %d)", res[y*5+x], x, y)
			}
		}
	}
	if res[12] >= 255 {
		t.Errorf("center should be attenuated: %d", res[12])
	}
}

func TestReflectIndex(t *testing.T) {
	for _, c := range [][3]int{{-1, 5, 0}, {-2, 5, 1}, {5, 5, 4}, {6, 5, 3}, {2, 5, 2}, {-3, 1, 0}} {
		if actual := reflectIndex(c[0], c[1]); actual != c[2] {
			t.Errorf("reflectIndex(%d, %d): expected %d but got %d", c[0], c[1], c[2], actual)
		}
	}
}
