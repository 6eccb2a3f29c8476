package model

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"time"
)

// Base36 character set (lowercase)
const base36Chars = "0123456789abcdefghijklmnopqrstuvwxyz"

// IDSuffixLength is the length of the random part of a record ID.
const IDSuffixLength = 6

// ID format: millisecond timestamp, dash, base36 suffix.
// Example: 1756382400000-k3x9qf
var idRegex = regexp.MustCompile(`^\d{10,16}-[0-9a-z]{` + fmt.Sprint(IDSuffixLength) + `}$`)

// NewID creates a new record ID from the current time and a random suffix.
// IDs are treated as collision-free by construction: the millisecond
// timestamp plus six base36 characters is adequate for a single-process
// store. There is no collision check on insert.
func NewID() string {
	return NewIDAt(time.Now())
}

// NewIDAt creates a record ID for the given timestamp.
func NewIDAt(t time.Time) string {
	return fmt.Sprintf("%d-%s", t.UnixMilli(), randomBase36(IDSuffixLength))
}

// ValidateID checks if an ID has the generated format.
// IDs supplied by callers (seed documents, imports) may use other formats,
// so this is only used where the store generated the ID itself.
func ValidateID(id string) error {
	if !idRegex.MatchString(id) {
		return ErrInvalidID
	}
	return nil
}

// randomBase36 generates a random base36 string of the given length.
func randomBase36(length int) string {
	result := make([]byte, length)
	max := big.NewInt(int64(len(base36Chars)))

	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails if the system source is broken;
			// fall back to a fixed character rather than panic.
			result[i] = '0'
			continue
		}
		result[i] = base36Chars[n.Int64()]
	}

	return string(result)
}
