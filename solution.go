package plater

// Solution is an ordered list of Plates with a derived scalar score
// (spec §3, §4.4, §4.5). It is immutable after emission and owns its
// Plates.
type Solution struct {
	plates []*Plate
}

// NewSolution wraps an ordered slice of sealed Plates into a Solution.
func NewSolution(plates []*Plate) *Solution {
	return &Solution{plates: plates}
}

// PlateCount returns the number of plates in the solution.
func (s *Solution) PlateCount() int { return len(s.plates) }

// Plate returns the plate at the given 0-based index.
func (s *Solution) Plate(i int) *Plate { return s.plates[i] }

// Plates returns the ordered list of plates.
func (s *Solution) Plates() []*Plate { return s.plates }

// Score is plateCount + 0.1*bboxDiagonal(lastPlate). Lower is better. The
// last plate is used because it is the only non-saturated one.
func (s *Solution) Score() float64 {
	if len(s.plates) == 0 {
		return 0
	}
	last := s.plates[len(s.plates)-1]
	return float64(len(s.plates)) + 0.1*last.BoundingDiagonal()
}
