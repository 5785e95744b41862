package shortener

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Base62 character set (0-9, A-Z, a-z) - 62 characters total.
// Base62 instead of base64 avoids characters that need URL escaping.
const base62Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// CodeGenerator produces fixed-length random short codes from the base62
// alphabet using crypto/rand. At the default length of 7 there are
// 62^7 ~ 3.5e12 codes; with 10 million mappings stored, a fresh draw
// collides with probability ~3e-6, which the bounded insert-retry loop in
// the service absorbs.
type CodeGenerator struct {
	length int
}

// NewCodeGenerator creates a generator for codes of the given length,
// clamped to the 4..12 range the config layer also enforces.
func NewCodeGenerator(length int) *CodeGenerator {
	if length < 4 {
		length = 4
	}
	if length > 12 {
		length = 12
	}
	return &CodeGenerator{length: length}
}

// Length reports the configured code length
func (g *CodeGenerator) Length() int {
	return g.length
}

// Generate creates one random base62 code. Codes are non-sequential, so the
// space cannot be walked by enumeration; uniqueness is still arbitrated by
// the store's unique index, never assumed here.
func (g *CodeGenerator) Generate() (string, error) {
	result := make([]byte, g.length)
	max := big.NewInt(int64(len(base62Chars)))

	for i := range result {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("short code generation: %w", err)
		}
		result[i] = base62Chars[n.Int64()]
	}

	return string(result), nil
}
