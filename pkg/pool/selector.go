package pool

import (
	"cmp"
	"math/rand/v2"
)

// pickP2C draws two distinct indices in [0, readyLen) using the
// shift-on-collision trick (uniform, O(1), no rejection loop), compares
// their loads via loadAt, and returns the less-loaded one. Ties favour the
// first draw. It reports ok == false when readyLen == 0.
func pickP2C[M cmp.Ordered](readyLen int, rng *rand.Rand, loadAt func(int) M) (int, bool) {
	switch readyLen {
	case 0:
		return 0, false
	case 1:
		return 0, true
	default:
		a := rng.IntN(readyLen)
		b := rng.IntN(readyLen - 1)
		if b >= a {
			b++
		}
		if cmp.Compare(loadAt(a), loadAt(b)) <= 0 {
			return a, true
		}
		return b, true
	}
}
