package random

import (
	"crypto/rand"
	"math/big"
	mathrand "math/rand/v2"
)

var allowedLetters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")

// Letters generates n cryptographically random letters, e.g. for unique in-memory database names.
func Letters(n uint) (string, error) {
	letters := make([]rune, n)
	for i := range letters {
		letterIndex, err := rand.Int(rand.Reader, big.NewInt(int64(len(allowedLetters))))
		if err != nil {
			return "", err
		}
		letters[i] = allowedLetters[letterIndex.Int64()]
	}
	return string(letters), nil
}

// Source provides the randomness for persona, secret, and opening line selection.
// Production code uses NewSource; tests use NewSeededSource for deterministic picks.
type Source interface {
	// IntN returns a uniformly random int in [0, n). Panics if n <= 0.
	IntN(n int) int
}

type pcgSource struct {
	rng *mathrand.Rand
}

func (s pcgSource) IntN(n int) int {
	return s.rng.IntN(n)
}

// NewSource returns a Source seeded from the runtime.
func NewSource() Source {
	return pcgSource{rng: mathrand.New(mathrand.NewPCG(mathrand.Uint64(), mathrand.Uint64()))}
}

// NewSeededSource returns a deterministic Source for tests.
func NewSeededSource(seed uint64) Source {
	return pcgSource{rng: mathrand.New(mathrand.NewPCG(seed, seed))}
}

// Pick returns a uniformly random element of items. Panics on an empty slice,
// callers guard for non-empty inputs.
func Pick[T any](source Source, items []T) T {
	return items[source.IntN(len(items))]
}
