package shortener

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCodeGenerator_ClampsLength(t *testing.T) {
	assert.Equal(t, 4, NewCodeGenerator(2).Length())
	assert.Equal(t, 7, NewCodeGenerator(7).Length())
	assert.Equal(t, 12, NewCodeGenerator(20).Length())
}

func TestGenerate_LengthAndAlphabet(t *testing.T) {
	g := NewCodeGenerator(7)

	for i := 0; i < 100; i++ {
		code, err := g.Generate()
		require.NoError(t, err)
		assert.Len(t, code, 7)

		for _, c := range code {
			assert.True(t, strings.ContainsRune(base62Chars, c),
				"unexpected character %q in code %q", c, code)
		}
	}
}

func TestGenerate_NoDuplicatesInLargeSample(t *testing.T) {
	g := NewCodeGenerator(7)

	seen := make(map[string]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		code, err := g.Generate()
		require.NoError(t, err)

		_, dup := seen[code]
		require.False(t, dup, "duplicate code %q after %d draws", code, i)
		seen[code] = struct{}{}
	}
}

