package cipher

import (
	"strings"

	"github.com/verte-zerg/vigenplay/internal/alphabet"
)

// MinSubstitutionKeyLength is the shortest substitution key the composed cipher accepts.
const MinSubstitutionKeyLength = 10

// Encrypt applies the digram cipher and then the substitution cipher.
func Encrypt(plaintext, digramKey, substitutionKey string) (string, error) {
	if err := checkSubstitutionKey(substitutionKey); err != nil {
		return "", err
	}
	intermediate := EncryptDigram(plaintext, BuildTable(digramKey))
	return EncryptSubstitution(intermediate, substitutionKey)
}

// Decrypt peels the substitution layer, reverses the digram cipher and strips
// the padding the digram cipher inserted.
func Decrypt(ciphertext, digramKey, substitutionKey string) (string, error) {
	if err := checkSubstitutionKey(substitutionKey); err != nil {
		return "", err
	}
	intermediate, err := DecryptSubstitution(ciphertext, substitutionKey)
	if err != nil {
		return "", err
	}
	padded, err := DecryptDigram(intermediate, BuildTable(digramKey))
	if err != nil {
		return "", err
	}
	return StripPadding(padded), nil
}

// StripPadding drops a filler sitting between two identical letters and a
// trailing filler. A filler that belonged to the plaintext in either place is
// lost as well.
func StripPadding(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	n := len(text)
	for i := 0; i < n; {
		b.WriteByte(text[i])
		switch {
		case i+2 < n && text[i+1] == alphabet.Filler && text[i] == text[i+2]:
			i += 2
		case i+1 == n-1 && text[i+1] == alphabet.Filler:
			i += 2
		default:
			i++
		}
	}
	return b.String()
}

func checkSubstitutionKey(key string) error {
	if len(alphabet.Normalize(key)) < MinSubstitutionKeyLength {
		return ErrWeakKey
	}
	return nil
}
