package record

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// idSuffixLength is the number of random characters after the timestamp.
const idSuffixLength = 9

// IDGenerator produces task identities.
type IDGenerator interface {
	Generate() string
}

// TimestampIDGenerator generates "<unix-millis>-<suffix>" identities where
// the suffix is nine lowercase hex characters taken from a random UUID.
//
// Two calls within the same millisecond share a prefix but draw
// independent suffixes (36 bits of randomness).
//
// Thread-safety: safe for concurrent use if Now is.
type TimestampIDGenerator struct {
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// Generate returns a new identity.
func (g TimestampIDGenerator) Generate() string {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	random := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strconv.FormatInt(now().UnixMilli(), 10) + "-" + random[:idSuffixLength]
}

// GenerateID returns a new identity from the wall clock.
func GenerateID() string {
	return TimestampIDGenerator{}.Generate()
}
