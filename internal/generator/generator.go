// Package generator produces random keys, key tables and sample plaintext.
package generator

import (
	"math/rand"
	"strings"
	"time"

	"github.com/verte-zerg/vigenplay/internal/alphabet"
	"github.com/verte-zerg/vigenplay/internal/cipher"
)

// Generator draws everything from one explicit source so runs can be replayed.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a Generator that repeats its output for equal seeds.
func NewWithSeed(seed int64) *Generator {
	return FromRand(rand.New(rand.NewSource(seed)))
}

// FromRand wraps an existing source. The Generator is not safe for
// concurrent use, same as the source.
func FromRand(rnd *rand.Rand) *Generator {
	return &Generator{rnd: rnd}
}

// Seeds draws n seeds for independent sub-generators.
func (g *Generator) Seeds(n int) []int64 {
	seeds := make([]int64, n)
	for i := range seeds {
		seeds[i] = g.rnd.Int63()
	}
	return seeds
}

// SubstitutionKey returns length uniformly random letters.
func (g *Generator) SubstitutionKey(length int) string {
	if length <= 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		b.WriteByte(alphabet.Letter(g.rnd.Intn(alphabet.Size)))
	}
	return b.String()
}

// TableCells returns a uniformly random permutation of the 25 table letters.
func (g *Generator) TableCells() [cipher.TableCells]byte {
	var cells [cipher.TableCells]byte
	n := 0
	for i := 0; i < alphabet.Size; i++ {
		if alphabet.Letters[i] == alphabet.Merged {
			continue
		}
		cells[n] = alphabet.Letters[i]
		n++
	}
	g.rnd.Shuffle(len(cells), func(i, j int) {
		cells[i], cells[j] = cells[j], cells[i]
	})
	return cells
}

// DigramKey returns a random full-table key; BuildTable(key) reproduces it.
func (g *Generator) DigramKey() string {
	cells := g.TableCells()
	return string(cells[:])
}

// Plaintext joins count words drawn uniformly from words.
func (g *Generator) Plaintext(words []string, count int) string {
	if len(words) == 0 || count <= 0 {
		return ""
	}
	result := make([]string, 0, count)
	for i := 0; i < count; i++ {
		result = append(result, words[g.rnd.Intn(len(words))])
	}
	return strings.Join(result, " ")
}
