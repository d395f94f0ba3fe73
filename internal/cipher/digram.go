package cipher

import (
	"strings"

	"github.com/verte-zerg/vigenplay/internal/alphabet"
)

const (
	// TableSide is the width and height of the digram key table.
	TableSide = 5
	// TableCells is the number of letters held by a key table.
	TableCells = TableSide * TableSide
)

// Direction selects encryption (+1) or decryption (-1) shifts.
type Direction int

const (
	Encrypting Direction = 1
	Decrypting Direction = -1
)

// Digram is an ordered pair of letters.
type Digram [2]byte

// Table is a 5x5 key table. The zero value is not usable; build one with
// BuildTable or TableFromCells.
type Table struct {
	cells [TableCells]byte
	pos   [alphabet.Size]int8
}

// BuildTable dedupes the key letters in order of first appearance and appends
// the rest of the alphabet, skipping the merged letter.
func BuildTable(key string) Table {
	var cells [TableCells]byte
	var seen [alphabet.Size]bool
	n := 0
	add := func(ch byte) {
		if ch == alphabet.Merged {
			ch = alphabet.MergedInto
		}
		idx := alphabet.Index(ch)
		if idx < 0 || seen[idx] || n == TableCells {
			return
		}
		seen[idx] = true
		cells[n] = ch
		n++
	}
	normalized := alphabet.Normalize(key)
	for i := 0; i < len(normalized); i++ {
		add(normalized[i])
	}
	for i := 0; i < alphabet.Size; i++ {
		if alphabet.Letters[i] == alphabet.Merged {
			continue
		}
		add(alphabet.Letters[i])
	}
	return TableFromCells(cells)
}

// TableFromCells indexes a permutation of the 25 table letters. The cells are
// trusted to be a permutation; callers outside the breaker should use BuildTable.
func TableFromCells(cells [TableCells]byte) Table {
	t := Table{cells: cells}
	for i := range t.pos {
		t.pos[i] = -1
	}
	for i, ch := range cells {
		if idx := alphabet.Index(ch); idx >= 0 {
			t.pos[idx] = int8(i)
		}
	}
	if mi := alphabet.Index(alphabet.MergedInto); t.pos[mi] >= 0 {
		t.pos[alphabet.Index(alphabet.Merged)] = t.pos[mi]
	}
	return t
}

// Cells returns a copy of the table letters in row-major order.
func (t Table) Cells() [TableCells]byte {
	return t.cells
}

// String renders the table as its 25 letters in row-major order.
func (t Table) String() string {
	return string(t.cells[:])
}

// Grid renders the table as five space-separated rows.
func (t Table) Grid() string {
	var b strings.Builder
	for r := 0; r < TableSide; r++ {
		for c := 0; c < TableSide; c++ {
			if c > 0 {
				b.WriteByte(' ')
			}
			b.WriteByte(t.cells[r*TableSide+c])
		}
		if r < TableSide-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Position returns the row and column of a letter; the merged letter shares
// its partner's cell. Letters outside the alphabet report (-1, -1).
func (t Table) Position(letter byte) (row, col int) {
	idx := alphabet.Index(letter)
	if idx < 0 || t.pos[idx] < 0 {
		return -1, -1
	}
	p := int(t.pos[idx])
	return p / TableSide, p % TableSide
}

// At returns the letter in the given cell.
func (t Table) At(row, col int) byte {
	return t.cells[row*TableSide+col]
}

// Pairs splits a message into digrams, padding doubled letters and an odd
// trailing letter with the filler.
func Pairs(message string) []Digram {
	m := []byte(alphabet.Normalize(message))
	for i, ch := range m {
		if ch == alphabet.Merged {
			m[i] = alphabet.MergedInto
		}
	}
	out := make([]Digram, 0, len(m)/2+1)
	for i := 0; i < len(m); {
		a := m[i]
		if i+1 >= len(m) || m[i+1] == a {
			out = append(out, Digram{a, alphabet.Filler})
			i++
			continue
		}
		out = append(out, Digram{a, m[i+1]})
		i += 2
	}
	return out
}

// SubstitutePair applies the row, column or rectangle rule to one digram.
func (t Table) SubstitutePair(p Digram, dir Direction) Digram {
	r1, c1 := t.Position(p[0])
	r2, c2 := t.Position(p[1])
	if r1 < 0 || r2 < 0 {
		return p
	}
	d := int(dir)
	switch {
	case r1 == r2:
		return Digram{t.At(r1, mod5(c1+d)), t.At(r2, mod5(c2+d))}
	case c1 == c2:
		return Digram{t.At(mod5(r1+d), c1), t.At(mod5(r2+d), c2)}
	default:
		return Digram{t.At(r1, c2), t.At(r2, c1)}
	}
}

// EncryptDigram pads the plaintext into digrams and substitutes each one.
func EncryptDigram(plaintext string, t Table) string {
	pairs := Pairs(plaintext)
	out := make([]byte, 0, len(pairs)*2)
	for _, p := range pairs {
		s := t.SubstitutePair(p, Encrypting)
		out = append(out, s[0], s[1])
	}
	return string(out)
}

// DecryptDigram substitutes every ciphertext digram backwards. Padding is kept.
func DecryptDigram(ciphertext string, t Table) (string, error) {
	c := []byte(alphabet.Normalize(ciphertext))
	if len(c)%2 != 0 {
		return "", ErrOddLengthCiphertext
	}
	out := make([]byte, len(c))
	t.DecryptInto(out, c)
	return string(out), nil
}

// DecryptInto decrypts normalised, even-length letters from src into dst.
// It allocates nothing and is the hot path of the key search.
func (t Table) DecryptInto(dst, src []byte) {
	for i := 0; i+1 < len(src); i += 2 {
		s := t.SubstitutePair(Digram{src[i], src[i+1]}, Decrypting)
		dst[i], dst[i+1] = s[0], s[1]
	}
}

func mod5(v int) int {
	v %= TableSide
	if v < 0 {
		v += TableSide
	}
	return v
}
