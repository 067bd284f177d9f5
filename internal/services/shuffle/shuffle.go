// Package shuffle produces uniform random permutations.
package shuffle

import "github.com/mcoot/teamdraft/internal/dependencies/random"

// Shuffle returns a uniformly random permutation of seq using Fisher–Yates.
// The input slice is never modified.
func Shuffle[T any](rnd random.Random, seq []T) []T {
	out := make([]T, len(seq))
	copy(out, seq)
	for i := len(out) - 1; i > 0; i-- {
		j := rnd.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
