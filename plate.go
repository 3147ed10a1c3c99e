package plater

import "math"

// PartInstance is a placed Part: a rotation index and an integer (cx, cy)
// centre in micron space. Its lifetime equals its containing Plate
// (spec §3).
type PartInstance struct {
	part *Part
	k    int
	cx   int
	cy   int
}

func (i *PartInstance) Part() *Part { return i.part }
func (i *PartInstance) Rotation() int { return i.k }
func (i *PartInstance) CenterX() int  { return i.cx }
func (i *PartInstance) CenterY() int  { return i.cy }

// AngleRadians returns the micron-space rotation angle this instance was
// placed at: k * Part.DeltaR().
func (i *PartInstance) AngleRadians() float64 {
	return float64(i.k) * i.part.deltaR
}

// Plate is a growing raster representing one build plate plus the list of
// placed part instances (spec §3). During placement it mutates (bitmap
// union with each newly stamped Part); once sealed by the Placer it is
// appended to a Solution and not modified further.
type Plate struct {
	shape     PlateShape
	precision float64
	bitmap    *Bitmap
	instances []*PartInstance
}

// NewPlate allocates an empty plate raster sized to hold shape at the
// given precision (microns/pixel).
func NewPlate(shape PlateShape, precision float64) *Plate {
	var w, h int
	if shape.Rectangle {
		w = int(shape.Width / precision)
		h = int(shape.Height / precision)
	} else {
		w = int(shape.Diameter / precision)
		h = w
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return &Plate{shape: shape, precision: precision, bitmap: NewBitmap(w, h)}
}

func (p *Plate) Bitmap() *Bitmap               { return p.bitmap }
func (p *Plate) Instances() []*PartInstance    { return p.instances }
func (p *Plate) InstanceCount() int            { return len(p.instances) }

// fits reports whether a w×h bitmap placed at pixel offset (x, y) lies
// entirely within the plate's bounds and, for a circular plate, within the
// inscribed disk (spec §4.3).
func (p *Plate) fits(bmp *Bitmap, x, y int) bool {
	w, h := p.bitmap.Width(), p.bitmap.Height()
	if x < 0 || y < 0 || x+bmp.Width() > w || y+bmp.Height() > h {
		return false
	}
	if p.shape.Rectangle {
		return true
	}
	// Circle: every occupied cell of bmp, placed at (x,y), must lie
	// within the inscribed disk of the plate raster.
	cx, cy := float64(w)/2, float64(h)/2
	r := float64(w) / 2
	for by := 0; by < bmp.Height(); by++ {
		for bx := 0; bx < bmp.Width(); bx++ {
			if !bmp.Get(bx, by) {
				continue
			}
			px, py := float64(x+bx), float64(y+by)
			dx, dy := px-cx+0.5, py-cy+0.5
			if dx*dx+dy*dy > r*r {
				return false
			}
		}
	}
	return true
}

// place stamps part's rotation k onto the plate at pixel offset (x, y) and
// records a PartInstance. The caller (Placer) is responsible for having
// already verified fit and non-overlap.
func (p *Plate) place(part *Part, k, x, y int) *PartInstance {
	bmp := part.bmp[k]
	p.bitmap.Stamp(bmp, x, y)
	inst := &PartInstance{
		part: part,
		k:    k,
		cx:   int(float64(x)*p.precision + bmp.CenterX()*p.precision),
		cy:   int(float64(y)*p.precision + bmp.CenterY()*p.precision),
	}
	p.instances = append(p.instances, inst)
	return inst
}

// BoundingDiagonal returns the pixel-space diagonal of the tight bounding
// box of this plate's occupied cells, used by Solution scoring (spec §4.4).
func (p *Plate) BoundingDiagonal() float64 {
	minX, minY, maxX, maxY := p.bitmap.Width(), p.bitmap.Height(), -1, -1
	bmp := p.bitmap
	for y := 0; y < bmp.Height(); y++ {
		for x := 0; x < bmp.Width(); x++ {
			if !bmp.Get(x, y) {
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}
	if maxX < 0 {
		return 0
	}
	dx := float64(maxX - minX + 1)
	dy := float64(maxY - minY + 1)
	return math.Sqrt(dx*dx + dy*dy)
}
