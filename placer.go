package plater

import "sort"

// SortKind selects the ordering the placement queue is built in
// (spec §4.3).
type SortKind int

const (
	SortSurfaceDec SortKind = iota
	SortSurfaceInc
	SortHeightDec
	SortHeightInc
	SortWidthDec
	SortWidthInc
	SortDensityInc
	SortDensityDec
	SortShuffle
)

// SortMode is a sort kind plus the shuffle seed used when Kind is
// SortShuffle (the spec's "SHUFFLE+n").
type SortMode struct {
	Kind        SortKind
	ShuffleSeed uint32
}

// Gravity is the tie-breaker that biases placement toward a plate corner
// (spec §4.3, glossary).
type Gravity int

const (
	GravityYX Gravity = iota // bottom rows first, ties by left
	GravityXY                // left columns first, ties by bottom
	GravityEQ                // diagonal, ties by smaller y
)

// Strategy is the tuple a single Placer runs with (spec §4.4 glossary:
// "strategy tuple"). RotateOffset is 0 (start at rotation 0) or 1 (start
// at rotation R/2). RotateDirection is 0 (ascending index) or 1
// (descending, modulo R).
type Strategy struct {
	Sort            SortMode
	Gravity         Gravity
	RotateOffset    int
	RotateDirection int
}

// PartQuantity pairs a loaded Part with the number of copies requested.
type PartQuantity struct {
	Part     *Part
	Quantity int
}

// PlacementInput is everything a Placer needs that doesn't vary across
// strategies within one Request: plate shape, precision, scan granularity,
// and the parts to place.
type PlacementInput struct {
	Shape     PlateShape
	Precision float64
	// Delta is the scan step in microns; spec default is 2*precision.
	// A value of exactly Precision makes the scan exhaustive.
	Delta float64
	Parts []PartQuantity
}

// Placer attempts to lay out every requested part copy on the smallest
// number of plates using one deterministic strategy tuple (spec §4.3).
type Placer struct {
	input    PlacementInput
	strategy Strategy
}

// NewPlacer returns a Placer for the given input and strategy.
func NewPlacer(input PlacementInput, strategy Strategy) *Placer {
	return &Placer{input: input, strategy: strategy}
}

// Strategy returns the strategy tuple this Placer runs with.
func (pl *Placer) Strategy() Strategy { return pl.strategy }

type queueItem struct {
	part *Part
	copy int
}

// buildQueue expands (Part, quantity) pairs into a multiset of
// (Part, copy-index) pairs, ordered per the Placer's SortMode.
func (pl *Placer) buildQueue() []queueItem {
	var items []queueItem
	for _, pq := range pl.input.Parts {
		for c := 0; c < pq.Quantity; c++ {
			items = append(items, queueItem{part: pq.Part, copy: c})
		}
	}

	switch pl.strategy.Sort.Kind {
	case SortSurfaceDec:
		sort.SliceStable(items, func(i, j int) bool { return items[i].part.Surface() > items[j].part.Surface() })
	case SortSurfaceInc:
		sort.SliceStable(items, func(i, j int) bool { return items[i].part.Surface() < items[j].part.Surface() })
	case SortHeightDec:
		sort.SliceStable(items, func(i, j int) bool { return items[i].part.Height() > items[j].part.Height() })
	case SortHeightInc:
		sort.SliceStable(items, func(i, j int) bool { return items[i].part.Height() < items[j].part.Height() })
	case SortWidthDec:
		sort.SliceStable(items, func(i, j int) bool { return items[i].part.Width() > items[j].part.Width() })
	case SortWidthInc:
		sort.SliceStable(items, func(i, j int) bool { return items[i].part.Width() < items[j].part.Width() })
	case SortDensityInc:
		sort.SliceStable(items, func(i, j int) bool { return items[i].part.Density() < items[j].part.Density() })
	case SortDensityDec:
		sort.SliceStable(items, func(i, j int) bool { return items[i].part.Density() > items[j].part.Density() })
	case SortShuffle:
		order := deterministicShuffle(pl.strategy.Sort.ShuffleSeed, len(items))
		shuffled := make([]queueItem, len(items))
		for i, idx := range order {
			shuffled[i] = items[idx]
		}
		items = shuffled
	}
	return items
}

// Run places every requested copy onto as few plates as possible and
// returns the resulting Solution. cancelled is polled between parts so a
// long-running Placer can be abandoned cooperatively (spec §5).
func (pl *Placer) Run(cancelled func() bool) (*Solution, error) {
	queue := pl.buildQueue()

	var plates []*Plate
	current := NewPlate(pl.input.Shape, pl.input.Precision)
	plates = append(plates, current)

	for _, item := range queue {
		if cancelled != nil && cancelled() {
			return nil, ErrNoSolution
		}
		if pl.placeOn(current, item.part) {
			continue
		}
		current = NewPlate(pl.input.Shape, pl.input.Precision)
		plates = append(plates, current)
		if !pl.placeOn(current, item.part) {
			assertf(false, "part %s does not fit an empty plate", item.part.Filename())
		}
	}

	return NewSolution(plates), nil
}

// placeOn attempts to place one copy of part on plate, trying rotations in
// the order its strategy's RotateOffset/RotateDirection dictate, and
// committing the minimum-gravity candidate of the first rotation that
// admits one (spec §4.3).
func (pl *Placer) placeOn(plate *Plate, part *Part) bool {
	r := part.Rotations()
	start := 0
	if pl.strategy.RotateOffset == 1 {
		start = r / 2
	}
	dir := 1
	if pl.strategy.RotateDirection == 1 {
		dir = -1
	}

	for step := 0; step < r; step++ {
		k := ((start+dir*step)%r + r) % r
		bmp := part.Bitmap(k)
		if bmp == nil {
			continue
		}
		x, y, found := pl.bestCandidate(plate, bmp)
		if !found {
			continue
		}
		plate.place(part, k, x, y)
		return true
	}
	return false
}

// bestCandidate scans candidate integer pixel positions for bmp on plate,
// stepping by Delta/Precision pixels, and returns the one minimising the
// strategy's gravity score (spec §4.3).
func (pl *Placer) bestCandidate(plate *Plate, bmp *Bitmap) (x, y int, found bool) {
	// delta/precision truncates toward zero; guarded below so a Delta
	// smaller than Precision still scans every pixel instead of stalling.
	step := int(pl.input.Delta / pl.input.Precision)
	if step < 1 {
		step = 1
	}

	w, h := plate.bitmap.Width(), plate.bitmap.Height()
	bestScore := 0.0
	for py := 0; py+bmp.Height() <= h; py += step {
		for px := 0; px+bmp.Width() <= w; px += step {
			if !plate.fits(bmp, px, py) {
				continue
			}
			if plate.bitmap.Overlaps(bmp, px, py) {
				continue
			}
			score := gravityScore(pl.strategy.Gravity, px, py, w, h)
			if !found || score < bestScore {
				found, bestScore, x, y = true, score, px, py
			}
		}
	}
	return x, y, found
}

// gravityScore implements the three gravity heuristics (spec §4.3). Scan
// order (y ascending, then x ascending) combined with a strict-less
// comparison in bestCandidate gives each the documented tie-break for free.
func gravityScore(g Gravity, x, y, w, h int) float64 {
	switch g {
	case GravityYX:
		return float64(y)*float64(w) + float64(x)
	case GravityXY:
		return float64(x)*float64(h) + float64(y)
	default: // GravityEQ
		return float64(x + y)
	}
}
