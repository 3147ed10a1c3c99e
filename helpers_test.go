package plater

import (
	"fmt"
	"math"
)

// testModel is a synthetic square footprint used across test files to
// exercise LoadPart and the search pipeline without a real mesh parser.
type testModel struct {
	widthMM, heightMM float64
}

func (m *testModel) PutFaceOnPlate(Orientation) Model { return m }

func (m *testModel) Pixelize(precision, spacing float64) (*Bitmap, error) {
	margin := int(math.Ceil(spacing / precision))
	w := int(m.widthMM*1000/precision) + 2*margin
	h := int(m.heightMM*1000/precision) + 2*margin
	bmp := NewBitmap(w, h)
	for y := margin; y < h-margin; y++ {
		for x := margin; x < w-margin; x++ {
			bmp.SetOccupied(x, y)
		}
	}
	return bmp, nil
}

func (m *testModel) Min() Point3 { return Point3{} }
func (m *testModel) Max() Point3 {
	return Point3{X: m.widthMM * 1000, Y: m.heightMM * 1000}
}

// testLoader resolves a filename to a square whose side in mm is looked up
// from sizes.
type testLoader struct {
	sizes map[string]float64
}

func (l *testLoader) Load(path string) (Model, error) {
	size, ok := l.sizes[path]
	if !ok {
		return nil, fmt.Errorf("unknown part %q", path)
	}
	return &testModel{widthMM: size, heightMM: size}, nil
}

// squarePart builds a Part directly (bypassing LoadPart) with a single
// rotation: an NxN filled square bitmap. Useful for Placer/SearchEngine
// tests that don't need a real rotation fan.
func squarePart(filename string, side int) *Part {
	bmp := filledSquare(side)
	return &Part{
		filename: filename,
		width:    float64(side * 500),
		height:   float64(side * 500),
		deltaR:   math.Pi / 2,
		bmp:      []*Bitmap{bmp},
		surface:  bmp.Width() * bmp.Height(),
	}
}
