// Package cipher implements the polyalphabetic substitution cipher, the 5x5
// digram cipher and their two-stage composition.
package cipher

import "errors"

var (
	// ErrInvalidKey is returned when a key contains no letters.
	ErrInvalidKey = errors.New("cipher: key contains no letters")
	// ErrWeakKey is returned when the composed cipher gets a short substitution key.
	ErrWeakKey = errors.New("cipher: substitution key must contain at least 10 letters")
	// ErrOddLengthCiphertext is returned when digram ciphertext has an odd letter count.
	ErrOddLengthCiphertext = errors.New("cipher: digram ciphertext length must be even")
)
