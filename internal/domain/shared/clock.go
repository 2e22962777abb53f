package shared

import (
	"time"

	"github.com/google/uuid"
)

// ISOLayout renders timestamps the way the stored records carry them (millisecond precision, UTC)
const ISOLayout = "2006-01-02T15:04:05.000Z07:00"

// ISO formats t in ISOLayout
func ISO(t time.Time) string {
	return t.UTC().Format(ISOLayout)
}

// Clock is the timestamp source for every date and createdAt field
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC, truncated to the millisecond precision the stores keep
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// IDGenerator produces unique string ids for new records
type IDGenerator interface {
	NewID() string
}

// RandomIDs issues random (v4) UUIDs
type RandomIDs struct{}

func (RandomIDs) NewID() string {
	return uuid.NewString()
}

// TimeOrderedIDs issues v7 UUIDs, whose leading bits are the creation timestamp.
// Activity entries use these so ids sort by time and stay unique within a millisecond.
type TimeOrderedIDs struct{}

func (TimeOrderedIDs) NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
