package pokemon

import "math/rand/v2"

// MaxDexNumber bounds random species selection to the first three generations.
const MaxDexNumber = 386

// RandomDexNumbers draws n distinct national dex numbers.
func RandomDexNumbers(rng *rand.Rand, n int) []int {
	seen := make(map[int]bool, n)
	var ids []int
	for len(ids) < n && len(ids) < MaxDexNumber {
		id := rng.IntN(MaxDexNumber) + 1
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}
