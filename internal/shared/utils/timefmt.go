package utils

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// HumanDuration renders the span between two unix timestamps as a rough
// human-readable duration ("12 minutes", "2 hours", "3 days").
func HumanDuration(fromUnix, toUnix int64) string {
	from := time.Unix(fromUnix, 0)
	to := time.Unix(toUnix, 0)
	if !to.After(from) {
		return "no time"
	}
	return strings.TrimSpace(humanize.RelTime(from, to, "", ""))
}

// HumanDurationSince renders the span between a unix timestamp and now.
func HumanDurationSince(fromUnix int64) string {
	return HumanDuration(fromUnix, time.Now().Unix())
}
