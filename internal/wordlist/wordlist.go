// Package wordlist loads word lists and rates how much of a text they cover.
package wordlist

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/verte-zerg/vigenplay/internal/alphabet"
)

// LoadWords reads one word per line from the provided file path.
func LoadWords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = file.Close()
	}()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	return words, nil
}

// Dictionary is a set of normalised words.
type Dictionary struct {
	words  map[string]struct{}
	maxLen int
}

// NewDictionary normalises words; entries left with fewer than
// MinWordLength letters are ignored.
func NewDictionary(words []string) *Dictionary {
	d := &Dictionary{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		n := alphabet.Normalize(w)
		if len(n) < MinWordLength {
			continue
		}
		d.words[n] = struct{}{}
		d.maxLen = max(d.maxLen, len(n))
	}
	return d
}

// LoadDictionary reads a word file, keeping the entries accepted by EnglishWords.
func LoadDictionary(path string) (*Dictionary, error) {
	words, err := LoadWords(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load dictionary: %w", err)
	}
	d := NewDictionary(Filter(words, EnglishWords))
	if d.Len() == 0 {
		return nil, fmt.Errorf("dictionary %s has no usable words", path)
	}
	return d, nil
}

// Len returns the number of distinct words.
func (d *Dictionary) Len() int {
	return len(d.words)
}

// Contains reports whether the normalised word is in the dictionary.
func (d *Dictionary) Contains(word string) bool {
	_, ok := d.words[alphabet.Normalize(word)]
	return ok
}

// Readability returns the largest fraction of letters of text that can be
// covered by non-overlapping dictionary words.
func (d *Dictionary) Readability(text string) float64 {
	t := alphabet.Normalize(text)
	if len(t) == 0 || len(d.words) == 0 {
		return 0
	}
	// best[i] is the most letters of t[:i] covered by words.
	best := make([]int, len(t)+1)
	for i := 1; i <= len(t); i++ {
		best[i] = best[i-1]
		for l := MinWordLength; l <= d.maxLen && l <= i; l++ {
			if _, ok := d.words[t[i-l:i]]; ok {
				best[i] = max(best[i], best[i-l]+l)
			}
		}
	}
	return float64(best[len(t)]) / float64(len(t))
}
