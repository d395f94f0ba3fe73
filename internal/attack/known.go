package attack

import (
	"errors"
	"strings"

	"github.com/verte-zerg/vigenplay/internal/alphabet"
	"github.com/verte-zerg/vigenplay/internal/cipher"
)

// UnknownKeyLetter marks key positions no fragment covers.
const UnknownKeyLetter = '?'

// Errors of the known plaintext helpers.
var (
	ErrAlignmentOutOfRange = errors.New("known plaintext does not fit the ciphertext at this offset")
	ErrInvalidKeyLength    = errors.New("key length must be positive")
	ErrKeyConflict         = errors.New("key fragment contradicts itself for this key length")
)

// RecoverKeyFragment derives the substitution key letters covering a known
// plaintext fragment. The fragment is digram-encrypted with digramKey and
// aligned at offset letters into the normalised ciphertext; each key letter
// is the ciphertext letter minus the intermediate letter.
func RecoverKeyFragment(ciphertext, known, digramKey string, offset int) (string, error) {
	intermediate := cipher.EncryptDigram(known, cipher.BuildTable(digramKey))
	ct := alphabet.Normalize(ciphertext)
	if offset < 0 || offset+len(intermediate) > len(ct) {
		return "", ErrAlignmentOutOfRange
	}
	segment := ct[offset : offset+len(intermediate)]
	frag := make([]byte, len(intermediate))
	for i := range frag {
		frag[i] = alphabet.Letter(alphabet.Index(segment[i]) - alphabet.Index(intermediate[i]))
	}
	return string(frag), nil
}

// KeyPhase is the key position used for the ciphertext letter at offset.
func KeyPhase(offset, keyLength int) (int, error) {
	if keyLength <= 0 {
		return 0, ErrInvalidKeyLength
	}
	if offset < 0 {
		return 0, ErrAlignmentOutOfRange
	}
	return offset % keyLength, nil
}

// AssembleKey folds a fragment recovered at offset into a key of keyLength
// letters. Positions the fragment does not reach are UnknownKeyLetter.
func AssembleKey(fragment string, offset, keyLength int) (string, error) {
	phase, err := KeyPhase(offset, keyLength)
	if err != nil {
		return "", err
	}
	key := []byte(strings.Repeat(string(UnknownKeyLetter), keyLength))
	for i := 0; i < len(fragment); i++ {
		pos := (phase + i) % keyLength
		if key[pos] != UnknownKeyLetter && key[pos] != fragment[i] {
			return "", ErrKeyConflict
		}
		key[pos] = fragment[i]
	}
	return string(key), nil
}
