package plater

import (
	"math"

	"github.com/kelindar/bitmap"
)

// Bitmap is a rectangular binary raster of width w and height h, measured
// in pixels. It is the compact representation a Part's rotation fan and a
// Plate's accumulated occupancy are built from (spec §4.1).
//
// The occupied cells are backed by github.com/kelindar/bitmap, the same
// growable bitset kelindar-noise preallocates with Grow before marking
// cells in its spatial-hash grid (sparse.go's SSI1/SSI2). We reuse that
// storage here for the same reason: a flat row-major grid of w*h bits that
// never needs to resize once allocated.
type Bitmap struct {
	w, h int
	// cx, cy is the raster's centre offset, in pixel space. It need not be
	// the geometric centre of the w×h rectangle: trim() and rotate()
	// translate it to track where the original model's origin now falls.
	cx, cy float64
	pixels int
	bits   bitmap.Bitmap
}

// NewBitmap returns an empty w×h Bitmap centred at (w/2, h/2).
func NewBitmap(w, h int) *Bitmap {
	assertf(w > 0 && h > 0, "NewBitmap: non-positive dimensions %dx%d", w, h)
	b := &Bitmap{w: w, h: h, cx: float64(w) / 2, cy: float64(h) / 2}
	if n := w * h; n > 1 {
		b.bits.Grow(uint32(n - 1))
	}
	return b
}

func (b *Bitmap) Width() int         { return b.w }
func (b *Bitmap) Height() int        { return b.h }
func (b *Bitmap) Pixels() int        { return b.pixels }
func (b *Bitmap) CenterX() float64 { return b.cx }
func (b *Bitmap) CenterY() float64 { return b.cy }

// Density returns the fraction of cells that are occupied.
func (b *Bitmap) Density() float64 {
	return float64(b.pixels) / float64(b.w*b.h)
}

func (b *Bitmap) idx(x, y int) uint32 { return uint32(y*b.w + x) }

// Get reports whether (x, y) is occupied. Out-of-range coordinates are
// always unoccupied.
func (b *Bitmap) Get(x, y int) bool {
	if x < 0 || y < 0 || x >= b.w || y >= b.h {
		return false
	}
	return b.bits.Contains(b.idx(x, y))
}

// set marks (x, y) occupied, keeping the pixel counter consistent. Caller
// must have already bounds-checked x, y.
func (b *Bitmap) set(x, y int) {
	idx := b.idx(x, y)
	if !b.bits.Contains(idx) {
		b.bits.Set(idx)
		b.pixels++
	}
}

// SetOccupied marks (x, y) as occupied; out-of-range coordinates are a
// no-op. Exposed for external collaborators that rasterise a model's
// footprint into a Bitmap (spec §4.1's pixelize).
func (b *Bitmap) SetOccupied(x, y int) {
	if x < 0 || y < 0 || x >= b.w || y >= b.h {
		return
	}
	b.set(x, y)
}

// Clone returns a deep, independent copy.
func (b *Bitmap) Clone() *Bitmap {
	dst := NewBitmap(b.w, b.h)
	dst.cx, dst.cy = b.cx, b.cy
	for y := 0; y < b.h; y++ {
		for x := 0; x < b.w; x++ {
			if b.Get(x, y) {
				dst.set(x, y)
			}
		}
	}
	return dst
}

// Equal reports bitwise equality: same dimensions and identical occupied
// cells. Centre offsets are not compared — two bitmaps can carry the same
// raster with a different notion of where their "origin" sits.
func (b *Bitmap) Equal(other *Bitmap) bool {
	if other == nil || b.w != other.w || b.h != other.h {
		return false
	}
	for y := 0; y < b.h; y++ {
		for x := 0; x < b.w; x++ {
			if b.Get(x, y) != other.Get(x, y) {
				return false
			}
		}
	}
	return true
}

// Rotate returns a new Bitmap whose content is self rotated about its
// centre offset by theta radians. The destination is sized to bound the
// rotated rectangle; nearest-neighbour sampling via inverse mapping fills
// its cells (spec §4.1).
//
// Exact multiples of 90° are special-cased to integral cos/sin so the
// rotation is an exact rectangle swap with no floating-point growth, per
// the edge-case rule in spec §4.1.
func (b *Bitmap) Rotate(theta float64) *Bitmap {
	cos, sin := math.Cos(theta), math.Sin(theta)
	if k := math.Round(theta / (math.Pi / 2)); math.Abs(theta-k*(math.Pi/2)) < 1e-9 {
		switch steps := int(math.Mod(k, 4)+4) % 4; steps {
		case 0:
			cos, sin = 1, 0
		case 1:
			cos, sin = 0, 1
		case 2:
			cos, sin = -1, 0
		case 3:
			cos, sin = 0, -1
		}
	}

	corners := [4][2]float64{
		{0, 0}, {float64(b.w), 0}, {0, float64(b.h)}, {float64(b.w), float64(b.h)},
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range corners {
		dx, dy := c[0]-b.cx, c[1]-b.cy
		rx := dx*cos - dy*sin
		ry := dx*sin + dy*cos
		minX, maxX = math.Min(minX, rx), math.Max(maxX, rx)
		minY, maxY = math.Min(minY, ry), math.Max(maxY, ry)
	}

	newW := int(math.Ceil(maxX - minX))
	newH := int(math.Ceil(maxY - minY))
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}
	newCx, newCy := -minX, -minY

	dst := NewBitmap(newW, newH)
	dst.cx, dst.cy = newCx, newCy

	// Inverse rotation maps a destination sample back to source space.
	// cos(-theta) == cos(theta) and sin(-theta) == -sin(theta) exactly, so
	// reusing cos/sin (including any 90°-snap above) keeps this exact too.
	invCos, invSin := cos, -sin

	for dy := 0; dy < newH; dy++ {
		for dx := 0; dx < newW; dx++ {
			rx := float64(dx) + 0.5 - newCx
			ry := float64(dy) + 0.5 - newCy
			sx := rx*invCos - ry*invSin
			sy := rx*invSin + ry*invCos
			srcX := int(math.Floor(sx + b.cx))
			srcY := int(math.Floor(sy + b.cy))
			if b.Get(srcX, srcY) {
				dst.set(dx, dy)
			}
		}
	}
	return dst
}

// Trim returns a new Bitmap cropped to the tight axis-aligned occupied
// bounding box, with the centre offset translated to match. An empty
// source yields a 1×1 empty Bitmap centred at (0, 0) (spec §4.1 edge case).
func (b *Bitmap) Trim() *Bitmap {
	minX, minY, maxX, maxY := b.w, b.h, -1, -1
	for y := 0; y < b.h; y++ {
		for x := 0; x < b.w; x++ {
			if b.Get(x, y) {
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
	}
	if maxX < 0 {
		dst := NewBitmap(1, 1)
		dst.cx, dst.cy = 0, 0
		return dst
	}

	newW, newH := maxX-minX+1, maxY-minY+1
	dst := NewBitmap(newW, newH)
	dst.cx = b.cx - float64(minX)
	dst.cy = b.cy - float64(minY)
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if b.Get(x, y) {
				dst.set(x-minX, y-minY)
			}
		}
	}
	return dst
}

// Overlaps reports whether other, placed at pixel offset (ox, oy), shares
// any occupied cell with self. Cells of other that map outside self count
// as non-overlapping — off-plate placement is rejected by the Placer, not
// here (spec §4.1).
func (b *Bitmap) Overlaps(other *Bitmap, ox, oy int) bool {
	for y := 0; y < other.h; y++ {
		for x := 0; x < other.w; x++ {
			if !other.Get(x, y) {
				continue
			}
			if b.Get(x+ox, y+oy) {
				return true
			}
		}
	}
	return false
}

// Stamp unions other into self at pixel offset (ox, oy), in place. Cells
// of other that are unoccupied or fall outside self are ignored; the
// occupied-cell counter is kept consistent (spec §4.1).
func (b *Bitmap) Stamp(other *Bitmap, ox, oy int) {
	for y := 0; y < other.h; y++ {
		for x := 0; x < other.w; x++ {
			if !other.Get(x, y) {
				continue
			}
			sx, sy := x+ox, y+oy
			if sx < 0 || sy < 0 || sx >= b.w || sy >= b.h {
				continue
			}
			b.set(sx, sy)
		}
	}
}
