package cipher

import "github.com/verte-zerg/vigenplay/internal/alphabet"

// EncryptSubstitution adds the cyclically repeated key to the plaintext letter by letter.
func EncryptSubstitution(plaintext, key string) (string, error) {
	return shiftText(plaintext, key, 1)
}

// DecryptSubstitution subtracts the cyclically repeated key from the ciphertext.
func DecryptSubstitution(ciphertext, key string) (string, error) {
	return shiftText(ciphertext, key, -1)
}

func shiftText(text, key string, sign int) (string, error) {
	k := alphabet.Normalize(key)
	if k == "" {
		return "", ErrInvalidKey
	}
	t := alphabet.Normalize(text)
	return string(shiftLetters([]byte(t), k, sign)), nil
}

// shiftLetters works in place on normalised letters; key must be non-empty and normalised.
func shiftLetters(letters []byte, key string, sign int) []byte {
	for i, ch := range letters {
		shift := alphabet.Index(key[i%len(key)])
		letters[i] = alphabet.Letter(alphabet.Index(ch) + sign*shift)
	}
	return letters
}
