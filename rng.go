package plater

import "math/bits"

// xxhash64 implements an unrolled xxhash that produces the same output as
// xxh3, used to turn an arbitrary (seed, index) pair into a deterministic
// stream of bits. Every SHUFFLE+n sort mode's permutation is built through
// it (via hashIntN below), so a given Request produces a bit-identical
// Solution across runs and across machines.
//
// Source: https://github.com/zeebo/xxh3
func xxhash64(v, seed uint64) uint64 {
	x := v ^ (0x1cad21f72c81017c ^ 0xdb979083e96dd4de) + seed
	x ^= bits.RotateLeft64(x, 49) ^ bits.RotateLeft64(x, 24)
	x *= 0x9fb21c651e98df25
	x ^= (x >> 35) + 4
	x *= 0x9fb21c651e98df25
	x ^= (x >> 28)
	return x
}

// hashIntN returns a deterministic int in [0, n) derived from (seed, x).
// Panics if n <= 0, matching the teacher's IntN.
func hashIntN(seed uint32, n int, x uint64) int {
	if n <= 0 {
		panic("plater: invalid argument to hashIntN")
	}
	return int(xxhash64(x, uint64(seed)) % uint64(n))
}

// deterministicShuffle returns a permutation of [0, length) seeded by seed.
// It is a Fisher-Yates shuffle driven by hashIntN instead of math/rand, so
// the same (seed, length) pair always yields the same permutation — required
// by the SHUFFLE+n sort mode's determinism property (spec §8).
func deterministicShuffle(seed uint32, length int) []int {
	order := make([]int, length)
	for i := range order {
		order[i] = i
	}
	for i := length - 1; i > 0; i-- {
		j := hashIntN(seed, i+1, uint64(i))
		order[i], order[j] = order[j], order[i]
	}
	return order
}
