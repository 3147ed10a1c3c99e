package plater

import (
	"sync"
	"sync/atomic"

	"v.io/x/lib/vlog"
)

// searchResult is what a worker goroutine publishes once its Placer
// finishes (spec §4.3 "Output" / §5 "Shared resources").
type searchResult struct {
	strategy Strategy
	solution *Solution
	err      error
}

// SearchEngine enumerates every strategy tuple for a Request, dispatches
// Placers to a bounded worker pool, and keeps the minimum-score Solution
// (spec §4.4).
type SearchEngine struct {
	input            PlacementInput
	nbThreads        int
	randomIterations int
	singleSort       bool

	cancelled int32 // atomic bool, observed by both engine and workers (spec §5)
	stop      int32 // atomic bool, set once a 1-plate Solution is seen

	mu       sync.Mutex
	firstErr error
}

// NewSearchEngine builds an engine for the given placement input. nbThreads
// < 1 is treated as 1. singleSort selects the REQUEST_SINGLE_SORT strategy
// space (spec §4.4); otherwise the full multi-sort space is used, expanded
// with randomIterations SHUFFLE+n sort modes.
func NewSearchEngine(input PlacementInput, nbThreads, randomIterations int, singleSort bool) *SearchEngine {
	if nbThreads < 1 {
		nbThreads = 1
	}
	return &SearchEngine{input: input, nbThreads: nbThreads, randomIterations: randomIterations, singleSort: singleSort}
}

// Cancel requests cooperative cancellation: no further strategies are
// dispatched, and already-running Placers observe it between parts.
func (e *SearchEngine) Cancel() { atomic.StoreInt32(&e.cancelled, 1) }

func (e *SearchEngine) isCancelled() bool { return atomic.LoadInt32(&e.cancelled) == 1 }
func (e *SearchEngine) isStopped() bool   { return atomic.LoadInt32(&e.stop) == 1 }

// HasError and Err expose the first-error record (spec §7): the engine
// surfaces the first genuine error it saw, distinct from ErrNoSolution
// which cancellation alone can produce.
func (e *SearchEngine) HasError() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.firstErr != nil
}

func (e *SearchEngine) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.firstErr
}

func (e *SearchEngine) setFirstErr(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.firstErr == nil {
		e.firstErr = err
	}
}

// strategies enumerates the Cartesian product from spec §4.4. Gravity only
// ever takes two of its three values here — GravityEQ is excluded, a
// preserved quirk of the source's `gravity < PLACER_GRAVITY_EQ` loop bound
// (spec §9) — even though a Placer can still be constructed with it
// directly.
func (e *SearchEngine) strategies() []Strategy {
	var sorts []SortMode
	if e.singleSort {
		sorts = []SortMode{{Kind: SortSurfaceDec}}
	} else {
		sorts = []SortMode{
			{Kind: SortSurfaceDec}, {Kind: SortSurfaceInc},
			{Kind: SortHeightDec}, {Kind: SortHeightInc},
			{Kind: SortWidthDec}, {Kind: SortWidthInc},
			{Kind: SortDensityInc}, {Kind: SortDensityDec},
		}
		for n := 0; n < e.randomIterations; n++ {
			sorts = append(sorts, SortMode{Kind: SortShuffle, ShuffleSeed: uint32(n)})
		}
	}

	gravities := []Gravity{GravityYX, GravityXY}

	var out []Strategy
	for _, sm := range sorts {
		for rotateOffset := 0; rotateOffset < 2; rotateOffset++ {
			for rotateDirection := 0; rotateDirection < 2; rotateDirection++ {
				for _, g := range gravities {
					out = append(out, Strategy{
						Sort:            sm,
						Gravity:         g,
						RotateOffset:    rotateOffset,
						RotateDirection: rotateDirection,
					})
				}
			}
		}
	}
	return out
}

// Run dispatches every strategy to a bounded pool of nbThreads worker
// goroutines and returns the minimum-score Solution found, or
// ErrNoSolution if cancellation left nothing to return (spec §5).
//
// Completions are drained from a results channel rather than polled on a
// 50ms timer: the source's sleep-based loop (spec §9) becomes ordinary
// blocking channel receives here.
func (e *SearchEngine) Run() (*Solution, error) {
	strategies := e.strategies()
	vlog.Infof("plater: dispatching %d strategies across %d workers", len(strategies), e.nbThreads)

	jobs := make(chan Strategy)
	results := make(chan searchResult)

	var workers sync.WaitGroup
	for i := 0; i < e.nbThreads; i++ {
		workers.Add(1)
		go func() {
			defer workers.Done()
			for strategy := range jobs {
				placer := NewPlacer(e.input, strategy)
				solution, err := placer.Run(e.isCancelled)
				results <- searchResult{strategy: strategy, solution: solution, err: err}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, strategy := range strategies {
			if e.isCancelled() || e.isStopped() {
				return
			}
			jobs <- strategy
		}
	}()

	go func() {
		workers.Wait()
		close(results)
	}()

	var best *Solution
	for res := range results {
		if res.err != nil {
			if res.err != ErrNoSolution {
				e.setFirstErr(res.err)
			}
			continue
		}
		if best == nil || res.solution.Score() < best.Score() {
			best = res.solution
		}
		if res.solution.PlateCount() == 1 {
			atomic.StoreInt32(&e.stop, 1)
		}
	}

	if best == nil {
		return nil, ErrNoSolution
	}
	vlog.Infof("plater: solution found, %d plate(s), score %g", best.PlateCount(), best.Score())
	return best, nil
}
