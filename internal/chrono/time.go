package chrono

import (
	"time"
)

var tokyo *time.Location

func init() {
	var err error
	tokyo, err = time.LoadLocation("Asia/Tokyo")
	if err != nil {
		tokyo = time.FixedZone("JST", 9*60*60)
	}
}

// Tokyo returns a [*time.Location] for Asia/Tokyo, the timezone of the scraped site.
func Tokyo() *time.Location {
	return tokyo
}

// TimeAPI is the interface that anything depending on the system clock should use.
type TimeAPI interface {
	// Now returns the current time, the timezone of the time will default to Asia/Tokyo.
	Now() time.Time
}

// StandardTime is the standard implementation of TimeAPI using the standard library.
type StandardTime struct{}

// NewStandardTime is the constructor of StandardTime.
func NewStandardTime() StandardTime {
	return StandardTime{}
}

func (s StandardTime) Now() time.Time {
	return time.Now().In(tokyo)
}

// FixedTime always returns the same instant.
type FixedTime struct {
	At time.Time
}

func (f FixedTime) Now() time.Time {
	return f.At
}
