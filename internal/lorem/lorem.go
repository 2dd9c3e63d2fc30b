// Package lorem generates placeholder text for the seeded document.
package lorem

import (
	"strings"
	"sync"

	"github.com/brianvoe/gofakeit/v7"
)

// DefaultSentences is the sentence count of a freshly seeded document.
const DefaultSentences = 15

const (
	minWordsPerSentence = 5
	maxWordsPerSentence = 15
)

// Generator produces lorem ipsum sentences. Safe for concurrent use.
type Generator struct {
	mu    sync.Mutex
	faker *gofakeit.Faker
}

// New creates a Generator. Seed 0 picks a random seed; any other seed
// yields a reproducible sequence.
func New(seed uint64) *Generator {
	return &Generator{faker: gofakeit.New(seed)}
}

// Sentences returns n space-separated sentences. n <= 0 yields "".
func (g *Generator) Sentences(n int) string {
	if n <= 0 {
		return ""
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]string, n)
	for i := range out {
		out[i] = g.faker.LoremIpsumSentence(g.faker.IntRange(minWordsPerSentence, maxWordsPerSentence))
	}
	return strings.Join(out, " ")
}
