package plater

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPlateRectangleDimensions(t *testing.T) {
	shape := PlateShape{Rectangle: true, Width: 1000, Height: 2000}
	p := NewPlate(shape, 10)
	assert.Equal(t, 100, p.Bitmap().Width())
	assert.Equal(t, 200, p.Bitmap().Height())
}

func TestNewPlateCircleDimensions(t *testing.T) {
	shape := PlateShape{Rectangle: false, Diameter: 500}
	p := NewPlate(shape, 10)
	assert.Equal(t, 50, p.Bitmap().Width())
	assert.Equal(t, 50, p.Bitmap().Height())
}

func TestPlateFitsRectangleBounds(t *testing.T) {
	shape := PlateShape{Rectangle: true, Width: 100, Height: 100}
	p := NewPlate(shape, 1)
	bmp := filledSquare(10)

	assert.True(t, p.fits(bmp, 0, 0))
	assert.True(t, p.fits(bmp, 90, 90))
	assert.False(t, p.fits(bmp, 91, 0))
	assert.False(t, p.fits(bmp, -1, 0))
}

func TestPlateFitsCircleBounds(t *testing.T) {
	shape := PlateShape{Rectangle: false, Diameter: 100}
	p := NewPlate(shape, 1)
	bmp := filledSquare(4)

	assert.True(t, p.fits(bmp, 48, 48)) // centred, well within the inscribed disk
	assert.False(t, p.fits(bmp, 0, 0))  // corner square falls outside the disk
}

func TestPlacePlacementCentersInstance(t *testing.T) {
	shape := PlateShape{Rectangle: true, Width: 1000, Height: 1000}
	p := NewPlate(shape, 10) // 100x100 px plate
	part := squarePart("sq.stl", 4)

	inst := p.place(part, 0, 10, 20)
	assert.Equal(t, part, inst.Part())
	assert.Equal(t, 0, inst.Rotation())
	wantCx := int(10*10 + part.Bitmap(0).CenterX()*10)
	wantCy := int(20*10 + part.Bitmap(0).CenterY()*10)
	assert.Equal(t, wantCx, inst.CenterX())
	assert.Equal(t, wantCy, inst.CenterY())

	assert.Equal(t, 16, p.Bitmap().Pixels())
	assert.Len(t, p.Instances(), 1)
}

func TestBoundingDiagonalEmptyPlateIsZero(t *testing.T) {
	shape := PlateShape{Rectangle: true, Width: 1000, Height: 1000}
	p := NewPlate(shape, 10)
	assert.Equal(t, 0.0, p.BoundingDiagonal())
}

func TestBoundingDiagonalTracksOccupiedExtent(t *testing.T) {
	shape := PlateShape{Rectangle: true, Width: 1000, Height: 1000}
	p := NewPlate(shape, 10)
	part := squarePart("sq.stl", 3)
	p.place(part, 0, 0, 0)

	assert.InDelta(t, 3*1.41421356, p.BoundingDiagonal(), 0.01)
}
