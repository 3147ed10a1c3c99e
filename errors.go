package plater

import "github.com/pkg/errors"

// Error taxonomy (spec §7). Placers and Bitmaps never surface recoverable
// errors themselves — every invariant is enforced at construction, so a
// Part is either valid or the Request fails before search starts. These
// sentinels are wrapped with github.com/pkg/errors so a caller can
// errors.Is against the taxonomy. errors.Cause on an ioError recovers the
// ErrIOFailure sentinel itself, not the original collaborator error — that
// error is folded into the message text by ioError, not kept as the cause.
var (
	// ErrPartInfeasible: a part admits zero feasible rotations. Fatal to
	// the request; no search is attempted.
	ErrPartInfeasible = errors.New("part too big for the plate")

	// ErrIOFailure: a mesh-loader or serialiser collaborator failed.
	ErrIOFailure = errors.New("io failure")

	// ErrNoSolution: search completed with no Solution. Only reachable
	// under cancellation. Non-fatal; callers should report it.
	ErrNoSolution = errors.New("no solution")

	// errInternal: invariant violation. Programmer error.
	errInternal = errors.New("internal invariant violation")
)

// partInfeasibleError wraps ErrPartInfeasible with the offending filename.
func partInfeasibleError(filename string) error {
	return errors.Wrapf(ErrPartInfeasible, "%s (bed too small? try more angles?)", filename)
}

// ioError reports a collaborator failure as an ErrIOFailure, with cause's
// text folded into the message (cause itself is not preserved as the
// unwrap target — errors.Cause returns ErrIOFailure, not cause).
func ioError(cause error, context string) error {
	return errors.Wrapf(ErrIOFailure, "%s: %v", context, cause)
}

// assertf panics with errInternal-style context; reserved for invariants
// that must never trigger from valid input (non-positive bitmap dimensions,
// a part that does not fit an empty plate). Mirrors the original's "this
// should never happen" asserts.
func assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(errors.Wrapf(errInternal, format, args...))
	}
}
