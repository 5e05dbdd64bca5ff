// Package biztime provides business timezone handling. Work intervals are
// stored as unix seconds (UTC by definition); the business timezone only
// affects how timestamps are rendered into ticket comments and feeds.
package biztime

import (
	"fmt"
	"sync"
	"time"
)

const (
	// DefaultTimezone is the default business timezone.
	DefaultTimezone = "UTC"

	// StampLayout is the layout used when rendering interval boundaries
	// into ticket comments.
	StampLayout = "2006-01-02 15:04:05 MST"
)

var (
	bizLocation     *time.Location
	bizLocationOnce sync.Once
	initErr         error
)

// Init initializes the business timezone. Should be called once at startup.
// An empty tz falls back to UTC.
func Init(tz string) error {
	bizLocationOnce.Do(func() {
		if tz == "" {
			tz = DefaultTimezone
		}
		bizLocation, initErr = time.LoadLocation(tz)
	})
	return initErr
}

// Location returns the business timezone location, initializing with the
// default when Init was never called.
func Location() *time.Location {
	if bizLocation == nil {
		if err := Init(""); err != nil {
			panic(fmt.Sprintf("biztime: failed to auto-initialize: %v", err))
		}
	}
	return bizLocation
}

// NowUnix returns the current time as unix seconds.
func NowUnix() int64 {
	return time.Now().Unix()
}

// FromUnix converts unix seconds into a time in the business timezone.
func FromUnix(ts int64) time.Time {
	return time.Unix(ts, 0).In(Location())
}

// FormatUnix renders unix seconds with StampLayout in the business timezone.
func FormatUnix(ts int64) string {
	return FromUnix(ts).Format(StampLayout)
}
