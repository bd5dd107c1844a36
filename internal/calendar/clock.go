package calendar

import (
	"time"
)

// KST is Korea Standard Time. Korea observes no daylight saving, so a fixed
// zone avoids depending on the host's tzdata.
var KST = time.FixedZone("KST", 9*60*60)

// Clock resolves "today". Every day cap, week window and streak keys off it.
type Clock interface {
	Today() Date
	Now() time.Time
}

// ZoneClock reads the wall clock in a fixed location.
type ZoneClock struct {
	Location *time.Location
}

// NewZoneClock loads the named location, falling back to KST when the name is
// empty or unknown to the host.
func NewZoneClock(name string) ZoneClock {
	if name == "" || name == "Asia/Seoul" {
		return ZoneClock{Location: KST}
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return ZoneClock{Location: KST}
	}
	return ZoneClock{Location: loc}
}

func (c ZoneClock) Now() time.Time {
	return time.Now().In(c.location())
}

func (c ZoneClock) Today() Date {
	return DateOf(time.Now(), c.location())
}

func (c ZoneClock) location() *time.Location {
	if c.Location == nil {
		return KST
	}
	return c.Location
}

// FixedClock always reports the same day. Used by tests.
type FixedClock struct {
	Day Date
}

func (c FixedClock) Today() Date { return c.Day }

func (c FixedClock) Now() time.Time { return c.Day.Time().Add(12 * time.Hour) }
