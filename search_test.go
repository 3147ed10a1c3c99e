package plater

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrategiesSingleSortCount(t *testing.T) {
	e := NewSearchEngine(PlacementInput{}, 1, 3, true)
	strategies := e.strategies()
	assert.Len(t, strategies, 1*2*2*2) // one sort x rotateOffset x rotateDirection x gravity
	for _, s := range strategies {
		assert.Equal(t, SortSurfaceDec, s.Sort.Kind)
		assert.NotEqual(t, GravityEQ, s.Gravity)
	}
}

func TestStrategiesMultiSortCount(t *testing.T) {
	e := NewSearchEngine(PlacementInput{}, 1, 3, false)
	strategies := e.strategies()
	// 8 fixed sorts + 3 shuffle iterations, x rotateOffset x rotateDirection x gravity
	assert.Len(t, strategies, (8+3)*2*2*2)
}

func TestNewSearchEngineClampsThreads(t *testing.T) {
	e := NewSearchEngine(PlacementInput{}, 0, 0, true)
	assert.Equal(t, 1, e.nbThreads)
}

func TestSearchEngineRunEmptyInputYieldsOnePlateSolution(t *testing.T) {
	input := PlacementInput{
		Shape:     PlateShape{Rectangle: true, Width: 1000, Height: 1000},
		Precision: 10,
		Delta:     10,
	}
	e := NewSearchEngine(input, 2, 1, true)
	solution, err := e.Run()
	require.NoError(t, err)
	assert.Equal(t, 1, solution.PlateCount())
	assert.Empty(t, solution.Plate(0).Instances())
}

func TestSearchEngineRunFindsBestAcrossStrategies(t *testing.T) {
	part := squarePart("sq.stl", 5)
	input := PlacementInput{
		Shape:     PlateShape{Rectangle: true, Width: 20, Height: 20},
		Precision: 1,
		Delta:     1,
		Parts:     []PartQuantity{{Part: part, Quantity: 16}},
	}
	e := NewSearchEngine(input, 4, 1, true)
	solution, err := e.Run()
	require.NoError(t, err)
	assert.Equal(t, 1, solution.PlateCount()) // 16 copies of a 5x5 square fill a 20x20 plate exactly
	assert.False(t, e.HasError())
}

func TestSearchEngineRunIsDeterministicWithOneThread(t *testing.T) {
	part := squarePart("sq.stl", 4)
	input := PlacementInput{
		Shape:     PlateShape{Rectangle: true, Width: 16, Height: 16},
		Precision: 1,
		Delta:     1,
		Parts:     []PartQuantity{{Part: part, Quantity: 10}},
	}

	e1 := NewSearchEngine(input, 1, 1, false)
	s1, err := e1.Run()
	require.NoError(t, err)

	e2 := NewSearchEngine(input, 1, 1, false)
	s2, err := e2.Run()
	require.NoError(t, err)

	assert.Equal(t, s1.Score(), s2.Score())
	assert.Equal(t, s1.PlateCount(), s2.PlateCount())
}

func TestSearchEngineCancelBeforeRunYieldsNoSolution(t *testing.T) {
	part := squarePart("sq.stl", 5)
	input := PlacementInput{
		Shape:     PlateShape{Rectangle: true, Width: 20, Height: 20},
		Precision: 1,
		Delta:     1,
		Parts:     []PartQuantity{{Part: part, Quantity: 4}},
	}
	e := NewSearchEngine(input, 2, 1, true)
	e.Cancel()

	_, err := e.Run()
	assert.ErrorIs(t, err, ErrNoSolution)
}
