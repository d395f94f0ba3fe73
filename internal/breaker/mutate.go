package breaker

import (
	"math/rand"

	"github.com/verte-zerg/vigenplay/internal/cipher"
)

// Cumulative thresholds of the mutation kinds; the rest swaps two columns.
const (
	cellSwapBelow = 0.80
	reverseBelow  = 0.88
	rowSwapBelow  = 0.94
)

type cells = [cipher.TableCells]byte

// mutate applies one random neighbourhood move to the table letters in place.
// The letters stay a permutation.
func mutate(c *cells, rng *rand.Rand) {
	r := rng.Float64()
	switch {
	case r < cellSwapBelow:
		i, j := rng.Intn(cipher.TableCells), rng.Intn(cipher.TableCells)
		c[i], c[j] = c[j], c[i]
	case r < reverseBelow:
		for i, j := 0, cipher.TableCells-1; i < j; i, j = i+1, j-1 {
			c[i], c[j] = c[j], c[i]
		}
	case r < rowSwapBelow:
		swapRows(c, rng.Intn(cipher.TableSide), rng.Intn(cipher.TableSide))
	default:
		swapColumns(c, rng.Intn(cipher.TableSide), rng.Intn(cipher.TableSide))
	}
}

func swapRows(c *cells, r1, r2 int) {
	for col := 0; col < cipher.TableSide; col++ {
		a, b := r1*cipher.TableSide+col, r2*cipher.TableSide+col
		c[a], c[b] = c[b], c[a]
	}
}

func swapColumns(c *cells, c1, c2 int) {
	for row := 0; row < cipher.TableSide; row++ {
		a, b := row*cipher.TableSide+c1, row*cipher.TableSide+c2
		c[a], c[b] = c[b], c[a]
	}
}
