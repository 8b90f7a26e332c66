// Package recommend picks series suggestions for a detail view.
package recommend

import (
	"math/rand/v2"
	"slices"

	"aniverse/models"
)

// Sampling bounds. The pool prefers genre matches once it has at least
// minOverlap of them.
const (
	minOverlap = 3
	minCount   = 3
	maxCount   = 5
)

// Rand is the randomness a Sampler draws from.
type Rand interface {
	Shuffle(n int, swap func(i, j int))
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }
func (globalRand) IntN(n int) int                     { return rand.IntN(n) }

// Sampler selects a random subset of series related to the current one.
// It keeps no state between calls.
type Sampler struct {
	rnd Rand
}

// NewSampler creates a sampler. A nil r uses the process-wide source.
func NewSampler(r Rand) *Sampler {
	if r == nil {
		r = globalRand{}
	}
	return &Sampler{rnd: r}
}

// Candidates returns the series of library other than slug.
func (s *Sampler) Candidates(slug string, library []models.LibraryEntry) []models.LibraryEntry {
	out := make([]models.LibraryEntry, 0, len(library))
	for _, entry := range library {
		if entry.Type != models.EntryTypeSeries || entry.Slug == "" || entry.Slug == slug {
			continue
		}
		out = append(out, entry)
	}
	return out
}

// Pool returns the candidates sharing a genre with genres when there are
// enough of them, otherwise all candidates.
func (s *Sampler) Pool(genres []string, candidates []models.LibraryEntry) []models.LibraryEntry {
	var overlap []models.LibraryEntry
	for _, c := range candidates {
		if sharesGenre(genres, c.Genres) {
			overlap = append(overlap, c)
		}
	}

	if len(overlap) >= minOverlap {
		return overlap
	}
	return slices.Clone(candidates)
}

// Sample returns between 3 and 5 suggestions for slug, fewer when the
// library is small. library is not modified.
func (s *Sampler) Sample(slug string, genres []string, library []models.LibraryEntry) []models.LibraryEntry {
	pool := s.Pool(genres, s.Candidates(slug, library))

	s.rnd.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	count := min(maxCount, minCount+s.rnd.IntN(maxCount-minCount+1), len(pool))
	return pool[:count]
}

func sharesGenre(a, b []string) bool {
	for _, g := range a {
		if slices.Contains(b, g) {
			return true
		}
	}
	return false
}
