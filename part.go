package plater

import "math"

// Part is a model plus a pre-computed fan of rotated, trimmed bitmaps
// (spec §3). It is identified by filename, which doubles as its unique
// key within a Request's part registry.
type Part struct {
	filename string

	// width, height are the footprint size in microns, including the
	// 2×spacing margin (spec §4.2 step 3).
	width, height float64

	// deltaR is the rotation granularity (radians) this Part's fan was
	// built with.
	deltaR float64

	// bmp[0] is the pixelised bitmap as produced (not trimmed); bmp[k] for
	// k >= 1 is the trimmed, rotated bitmap for orientation k*deltaR. Any
	// entry is nil if that rotation doesn't fit the plate (spec §3 sentinel).
	bmp []*Bitmap

	// surface is the unrotated bitmap's rectangular area in pixels,
	// used as the default sort key (spec §4.2 step 2).
	surface int
}

// Filename returns the Part's unique key.
func (p *Part) Filename() string { return p.filename }

// Width and Height return the footprint size in microns.
func (p *Part) Width() float64  { return p.width }
func (p *Part) Height() float64 { return p.height }

// Surface returns the unrotated bitmap's rectangular pixel area.
func (p *Part) Surface() int { return p.surface }

// DeltaR returns the rotation granularity this Part's fan was built with.
func (p *Part) DeltaR() float64 { return p.deltaR }

// Rotations returns the size of the rotation fan, R = ceil(2π/deltaR).
func (p *Part) Rotations() int { return len(p.bmp) }

// Bitmap returns the bitmap for rotation index k, or nil if that rotation
// is infeasible (too big for the plate it was loaded against).
func (p *Part) Bitmap(k int) *Bitmap { return p.bmp[k] }

// Density returns the occupied-cell density of the unrotated bitmap,
// used by the DENSITY_INC/DENSITY_DEC sort modes.
func (p *Part) Density() float64 { return p.bmp[0].Density() }

// PlateShape describes the bed a Part (or Plate) must fit within.
type PlateShape struct {
	// Rectangle, if true, means Width/Height bound the plate. Otherwise
	// the plate is a circle of the given Diameter.
	Rectangle       bool
	Width, Height   float64 // microns, rectangle mode
	Diameter        float64 // microns, circle mode
}

// fitsPlate reports whether a w×h-pixel bitmap (at the given precision)
// fits the plate shape, per spec §4.2 step 5 and its circular-plate
// addendum.
func fitsPlate(shape PlateShape, precision float64, w, h int) bool {
	wMicron := float64(w) * precision
	hMicron := float64(h) * precision
	if shape.Rectangle {
		return wMicron < shape.Width && hMicron < shape.Height
	}
	diag := math.Sqrt(wMicron*wMicron + hMicron*hMicron)
	return diag <= shape.Diameter
}

// LoadPart performs the Part::load algorithm (spec §4.2): reorient the
// model onto the requested face, pixelise it, compute the footprint size,
// build the rotation fan by rotating and trimming bmp[0], and drop any
// rotation that doesn't fit the plate. It returns the number of feasible
// rotations; zero means the part is too big for the plate and the whole
// Request must fail before search starts (spec §7, PartInfeasible).
func LoadPart(loader MeshLoader, filename string, precision, deltaR, spacing float64, orientation Orientation, shape PlateShape) (*Part, int, error) {
	model, err := loader.Load(filename)
	if err != nil {
		return nil, 0, ioError(err, "loading "+filename)
	}
	model = model.PutFaceOnPlate(orientation)

	bmp0, err := model.Pixelize(precision, spacing)
	if err != nil {
		return nil, 0, ioError(err, "pixelizing "+filename)
	}

	minP, maxP := model.Min(), model.Max()

	part := &Part{
		filename: filename,
		width:    (maxP.X - minP.X) + 2*spacing,
		height:   (maxP.Y - minP.Y) + 2*spacing,
		deltaR:   deltaR,
		surface:  bmp0.Width() * bmp0.Height(),
	}

	rotations := int(math.Ceil((2 * math.Pi) / deltaR))
	part.bmp = make([]*Bitmap, rotations)
	part.bmp[0] = bmp0
	for k := 1; k < rotations; k++ {
		part.bmp[k] = bmp0.Rotate(float64(k) * deltaR).Trim()
	}

	feasible := 0
	for k, bmp := range part.bmp {
		if bmp == nil {
			continue
		}
		if fitsPlate(shape, precision, bmp.Width(), bmp.Height()) {
			feasible++
		} else {
			part.bmp[k] = nil
		}
	}

	if feasible == 0 {
		return part, 0, partInfeasibleError(filename)
	}
	return part, feasible, nil
}
