// Package docnum provides random document-number generation for the four
// transaction namespaces. Numbers are drawn at random from a five-digit
// range and retried against the set already in use; they are identifiers,
// not sequence positions, and carry no ordering meaning.
package docnum

import (
	"fmt"
	"math/rand"
	"regexp"
	"time"
)

const (
	// suffixMin and suffixMax bound the random draw, inclusive.
	suffixMin = 10001
	suffixMax = 99999

	// maxAttempts caps the retry loop before falling back to a
	// timestamp-derived suffix.
	maxAttempts = 1000
)

// Source supplies randomness and time. The default uses a seeded
// math/rand and the wall clock; tests inject fixed values.
type Source interface {
	// IntN returns a non-negative pseudo-random number in [0, n).
	IntN(n int) int
	// Now returns the current time.
	Now() time.Time
}

type systemSource struct {
	rng *rand.Rand
}

// NewSource returns the default randomness source.
func NewSource() Source {
	return &systemSource{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSeededSource returns a deterministic source for tests.
func NewSeededSource(seed int64, now time.Time) Source {
	return &seededSource{
		rng: rand.New(rand.NewSource(seed)),
		now: now,
	}
}

type seededSource struct {
	rng *rand.Rand
	now time.Time
}

func (s *seededSource) IntN(n int) int { return s.rng.Intn(n) }
func (s *seededSource) Now() time.Time { return s.now }

func (s *systemSource) IntN(n int) int { return s.rng.Intn(n) }
func (s *systemSource) Now() time.Time { return time.Now() }

// Generate draws a suffix not present in taken and formats it under prefix.
// taken holds the digit strings already in use in the namespace, as
// extracted by TakenSuffixes. After maxAttempts collisions it falls back to
// the last five digits of the current unix-millisecond timestamp, shifted
// into range when below suffixMin. The fallback is not re-checked against
// taken; with the namespace nearly full, termination wins over uniqueness.
func Generate(prefix string, taken map[string]struct{}, src Source) string {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		n := suffixMin + src.IntN(suffixMax-suffixMin+1)
		suffix := fmt.Sprintf("%05d", n)
		if _, used := taken[suffix]; !used {
			return prefix + "-" + suffix
		}
	}

	n := src.Now().UnixMilli() % 100000
	if n < suffixMin {
		n += suffixMin
	}
	return fmt.Sprintf("%s-%05d", prefix, n)
}

// suffixPattern matches PREFIX-digits and captures the digit run.
// Numbers in any other shape (hand-entered, imported) never collide with
// generated ones and are ignored.
func suffixPattern(prefix string) *regexp.Regexp {
	return regexp.MustCompile("^" + regexp.QuoteMeta(prefix) + `-(\d+)$`)
}

// TakenSuffixes extracts the suffix strings in use from existing document
// numbers under prefix. Suffixes are compared as strings, so "5001" and
// "05001" are distinct, matching the format the generator emits.
func TakenSuffixes(prefix string, numbers []string) map[string]struct{} {
	re := suffixPattern(prefix)
	taken := make(map[string]struct{}, len(numbers))
	for _, num := range numbers {
		if m := re.FindStringSubmatch(num); m != nil {
			taken[m[1]] = struct{}{}
		}
	}
	return taken
}
