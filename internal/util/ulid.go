package util

import (
	"io"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// IDSequence hands out reproducible ULIDs: the same seed and clock always
// yield the same identifiers. Sample records use it so listings are stable
// between runs.
type IDSequence struct {
	mu      sync.Mutex
	at      time.Time
	step    time.Duration
	entropy io.Reader
}

// NewIDSequence starts a sequence at the given instant. Each call to Next
// advances the clock by step.
func NewIDSequence(seed int64, start time.Time, step time.Duration) *IDSequence {
	return &IDSequence{
		at:      start,
		step:    step,
		entropy: ulid.Monotonic(rand.New(rand.NewSource(seed)), 0),
	}
}

// Next returns the next ULID string of the sequence.
func (s *IDSequence) Next() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := ulid.MustNew(ulid.Timestamp(s.at), s.entropy)
	s.at = s.at.Add(s.step)
	return id.String()
}

// ParseULID parses a ULID string and returns its timestamp.
func ParseULID(s string) (time.Time, error) {
	id, err := ulid.Parse(s)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(id.Time()), nil
}

// ValidateULID checks if a string is a valid ULID.
func ValidateULID(s string) bool {
	_, err := ulid.Parse(s)
	return err == nil
}

// ShortID returns the last 7 characters of an ID in lowercase.
// For ULIDs, the last part has more entropy than the first (timestamp) part.
func ShortID(id string) string {
	if len(id) <= 7 {
		return strings.ToLower(id)
	}
	return strings.ToLower(id[len(id)-7:])
}
