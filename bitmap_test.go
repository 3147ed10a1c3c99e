package plater

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func filledSquare(n int) *Bitmap {
	b := NewBitmap(n, n)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			b.SetOccupied(x, y)
		}
	}
	return b
}

func TestBitmapDensity(t *testing.T) {
	b := NewBitmap(4, 2)
	assert.Equal(t, 0.0, b.Density())
	b.SetOccupied(0, 0)
	b.SetOccupied(1, 0)
	assert.Equal(t, 2.0/8.0, b.Density())
	assert.Equal(t, 2, b.Pixels())
}

func TestBitmapSetIgnoresOutOfRange(t *testing.T) {
	b := NewBitmap(3, 3)
	b.SetOccupied(-1, 0)
	b.SetOccupied(3, 3)
	assert.Equal(t, 0, b.Pixels())
}

func TestBitmapRotate90IsExactSwap(t *testing.T) {
	b := NewBitmap(10, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 10; x++ {
			b.SetOccupied(x, y)
		}
	}

	rotated := b.Rotate(math.Pi / 2)
	assert.Equal(t, 4, rotated.Width())
	assert.Equal(t, 10, rotated.Height())
	assert.Equal(t, b.Pixels(), rotated.Pixels())
}

func TestBitmapRotate180IsExactSwap(t *testing.T) {
	b := filledSquare(6)
	rotated := b.Rotate(math.Pi)
	assert.Equal(t, 6, rotated.Width())
	assert.Equal(t, 6, rotated.Height())
	assert.Equal(t, b.Pixels(), rotated.Pixels())
}

func TestBitmapRoundTripRotation(t *testing.T) {
	b := filledSquare(20)
	forward := b.Rotate(math.Pi / 5)
	back := forward.Rotate(-math.Pi / 5)

	diff := math.Abs(float64(back.Pixels() - b.Pixels()))
	assert.LessOrEqual(t, diff, float64(b.Pixels())*0.01)
}

func TestBitmapTrimEmptyYields1x1(t *testing.T) {
	b := NewBitmap(10, 10)
	trimmed := b.Trim()
	assert.Equal(t, 1, trimmed.Width())
	assert.Equal(t, 1, trimmed.Height())
	assert.Equal(t, 0.0, trimmed.CenterX())
	assert.Equal(t, 0.0, trimmed.CenterY())
}

func TestBitmapTrimTight(t *testing.T) {
	b := NewBitmap(10, 10)
	b.SetOccupied(3, 4)
	b.SetOccupied(5, 6)
	trimmed := b.Trim()
	assert.Equal(t, 3, trimmed.Width())
	assert.Equal(t, 3, trimmed.Height())
	assert.True(t, trimmed.Get(0, 0))
	assert.True(t, trimmed.Get(2, 2))
}

func TestBitmapTrimIdempotent(t *testing.T) {
	b := NewBitmap(12, 9)
	b.SetOccupied(2, 2)
	b.SetOccupied(7, 5)
	b.SetOccupied(4, 3)

	once := b.Trim()
	twice := once.Trim()
	assert.True(t, once.Equal(twice))
}

func TestBitmapOverlapsAndStamp(t *testing.T) {
	plate := NewBitmap(20, 20)
	part := filledSquare(5)

	assert.False(t, plate.Overlaps(part, 0, 0))
	plate.Stamp(part, 0, 0)
	assert.Equal(t, 25, plate.Pixels())

	assert.True(t, plate.Overlaps(part, 2, 2))
	assert.False(t, plate.Overlaps(part, 10, 10))
}

func TestBitmapStampIgnoresOutOfRange(t *testing.T) {
	plate := NewBitmap(10, 10)
	part := filledSquare(5)
	plate.Stamp(part, 8, 8) // only the top-left 2x2 of part lands on-plate
	assert.Equal(t, 4, plate.Pixels())
}
