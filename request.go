package plater

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"
	"sync"

	"v.io/x/lib/vlog"
)

// Default constants from spec §6.
const (
	DefaultPrecision        = 500.0 // microns per pixel
	DefaultSpacing          = 1500.0
	DefaultDeltaR           = math.Pi / 2
	DefaultDelta            = 1000.0
	DefaultPlateSizeMM      = 150.0
	DefaultRandomIterations = 3
	DefaultNbThreads        = 1
	DefaultPattern          = "plate_%03d"
)

// Request is the immutable-once-built input to the core, plus the
// orchestration that turns it into a Solution (spec §3, §6; grounded on
// original_source/plater/Request.cpp). It owns the Parts it loads.
type Request struct {
	Shape            PlateShape
	Precision        float64
	DeltaR           float64
	Spacing          float64
	Delta            float64
	NbThreads        int
	RandomIterations int
	// SingleSort selects REQUEST_SINGLE_SORT (only SURFACE_DEC) instead of
	// the full multi-sort strategy space. The original constructor never
	// initialises this (spec §9 Open Question); we default it explicitly
	// to false, i.e. REQUEST_MULTIPLE_SORT, the non-trivial path.
	SingleSort bool
	// Pattern names output plate files (e.g. "plate_%03d"); the core never
	// writes files itself (spec §1, §6) but carries the setting along for
	// a caller that does.
	Pattern string

	loader MeshLoader

	mu         sync.Mutex
	parts      map[string]*Part
	order      []string // insertion order, for deterministic queue building
	quantities map[string]int

	hasError bool
	err      error

	engine *SearchEngine
}

// NewRequest returns a Request seeded with spec §6's default constants and
// a rectangular 150x150mm plate.
func NewRequest(loader MeshLoader) *Request {
	return &Request{
		Shape:            PlateShape{Rectangle: true, Width: DefaultPlateSizeMM * 1000, Height: DefaultPlateSizeMM * 1000},
		Precision:        DefaultPrecision,
		DeltaR:           DefaultDeltaR,
		Spacing:          DefaultSpacing,
		Delta:            DefaultDelta,
		NbThreads:        DefaultNbThreads,
		RandomIterations: DefaultRandomIterations,
		Pattern:          DefaultPattern,
		loader:           loader,
		parts:            make(map[string]*Part),
		quantities:       make(map[string]int),
	}
}

// SetPlateSize configures a rectangular plate from millimetre dimensions,
// storing them internally in microns (spec §6).
func (r *Request) SetPlateSize(widthMM, heightMM float64) {
	r.Shape = PlateShape{Rectangle: true, Width: widthMM * 1000, Height: heightMM * 1000}
}

// SetPlateDiameter configures a circular plate from a millimetre diameter.
func (r *Request) SetPlateDiameter(diameterMM float64) {
	r.Shape = PlateShape{Rectangle: false, Diameter: diameterMM * 1000}
}

// HasError and Err expose the fatal request-level error, if any (spec §7):
// set once, by AddPart, when loading a part fails (the mesh loader or
// pixeliser fails, or the part admits zero feasible rotations).
func (r *Request) HasError() bool { return r.hasError }
func (r *Request) Err() error     { return r.err }

// AddPart loads filename at the Request's configured precision/spacing/
// rotation granularity and registers quantity copies of it, replicating
// Request::addPart. Once the Request has a fatal error, further AddPart
// calls are no-ops, matching the original's `!hasError` guard.
func (r *Request) AddPart(filename string, quantity int, orientation Orientation) error {
	if r.hasError {
		return r.err
	}
	if filename == "" || quantity == 0 {
		return nil
	}

	vlog.Infof("plater: loading %s (quantity %d, orientation %s)", filename, quantity, orientation)
	part, _, err := LoadPart(r.loader, filename, r.Precision, r.DeltaR, r.Spacing, orientation, r.Shape)
	if err != nil {
		r.hasError = true
		r.err = err
		return err
	}

	r.mu.Lock()
	if _, exists := r.parts[filename]; !exists {
		r.order = append(r.order, filename)
	}
	r.parts[filename] = part
	r.quantities[filename] = quantity
	r.mu.Unlock()
	return nil
}

// ReadParts parses a textual request body, one part per line
// (spec §6), calling AddPart for each. Parsing stops at the first
// AddPart error, matching Request::readParts's early return.
func (r *Request) ReadParts(body io.Reader) error {
	r.parts = make(map[string]*Part)
	r.quantities = make(map[string]int)
	r.order = nil
	r.hasError = false
	r.err = nil

	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		filename, quantity, orientation, ok := parseRequestLine(scanner.Text())
		if !ok {
			continue
		}
		if err := r.AddPart(filename, quantity, orientation); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// parseRequestLine implements the external interface's textual format
// (spec §6): "filename [quantity [orientation]]", comments beginning with
// '#', default quantity 1, default orientation "bottom". The filename may
// contain spaces; the quantity token is identified as the rightmost
// numeric token (spec §9 design note) — fragile, so a quoted-filename
// form is tried first and preferred when present.
func parseRequestLine(raw string) (filename string, quantity int, orientation Orientation, ok bool) {
	if raw == "" || raw[0] == '#' {
		return "", 0, "", false
	}
	line := strings.TrimSpace(raw)
	if line == "" {
		return "", 0, "", false
	}

	if strings.HasPrefix(line, `"`) {
		if end := strings.Index(line[1:], `"`); end >= 0 {
			filename = line[1 : 1+end]
			rest := strings.Fields(line[1+end+1:])
			quantity, orientation = 1, OrientationBottom
			if len(rest) >= 1 {
				if q, err := strconv.Atoi(rest[0]); err == nil {
					quantity = q
				}
			}
			if len(rest) >= 2 {
				orientation = Orientation(rest[1])
			}
			return filename, quantity, orientation, true
		}
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", 0, "", false
	}

	numericIdx := -1
	for i := len(fields) - 1; i > 0; i-- {
		if _, err := strconv.Atoi(fields[i]); err == nil {
			numericIdx = i
			break
		}
	}
	if numericIdx < 0 {
		return strings.Join(fields, " "), 1, OrientationBottom, true
	}

	filename = strings.Join(fields[:numericIdx], " ")
	quantity, _ = strconv.Atoi(fields[numericIdx])
	orientation = OrientationBottom
	if numericIdx+1 < len(fields) {
		orientation = Orientation(fields[numericIdx+1])
	}
	return filename, quantity, orientation, true
}

// Process runs the SearchEngine over every loaded part and returns the
// best Solution found, replicating Request::process (spec §9 design
// notes: the engine-local state it mutates — best solution, first error —
// is read only after Process returns, never shared mutable state).
func (r *Request) Process() (*Solution, error) {
	if r.hasError {
		return nil, r.err
	}

	var partQuantities []PartQuantity
	for _, filename := range r.order {
		partQuantities = append(partQuantities, PartQuantity{
			Part:     r.parts[filename],
			Quantity: r.quantities[filename],
		})
	}

	if r.Shape.Rectangle {
		vlog.Infof("plater: plate size %gx%g microns", r.Shape.Width, r.Shape.Height)
	} else {
		vlog.Infof("plater: plate diameter %g microns (circle)", r.Shape.Diameter)
	}

	input := PlacementInput{Shape: r.Shape, Precision: r.Precision, Delta: r.Delta, Parts: partQuantities}
	r.engine = NewSearchEngine(input, r.NbThreads, r.RandomIterations, r.SingleSort)

	solution, err := r.engine.Run()
	if err != nil {
		return nil, err
	}
	vlog.Infof("plater: solution has %d plate(s), score %g", solution.PlateCount(), solution.Score())
	return solution, nil
}

// Cancel requests cooperative cancellation of an in-flight Process call
// (spec §5). It is a no-op before Process has started its SearchEngine.
func (r *Request) Cancel() {
	if r.engine != nil {
		r.engine.Cancel()
	}
}
