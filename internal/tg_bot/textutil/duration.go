// Package textutil holds the small text helpers shared by command handlers:
// mute duration parsing, argument splitting and HTML escaping.
package textutil

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Week is not provided by the time package.
const Week = 7 * 24 * time.Hour

// MaxDuration is the longest representable duration, about 292 years.
const MaxDuration = time.Duration(math.MaxInt64)

var durationToken = regexp.MustCompile(`(?i)(\d+)([smhdw])`)

var durationUnits = map[string]time.Duration{
	"s": time.Second,
	"m": time.Minute,
	"h": time.Hour,
	"d": 24 * time.Hour,
	"w": Week,
}

// ParseDuration sums every <integer><unit> token of text, unit being one of
// s, m, h, d or w in any case. "2h30m" is two and a half hours.
// Text without any token, and unknown suffixes, contribute nothing, so the
// result is zero when nothing matched. Sums beyond the range of
// time.Duration saturate at MaxDuration.
func ParseDuration(text string) time.Duration {
	var total time.Duration
	for _, m := range durationToken.FindAllStringSubmatch(text, -1) {
		unit := durationUnits[strings.ToLower(m[2])]
		value, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil || value > int64(MaxDuration/unit) {
			// only overflow can fail, the token is all digits
			return MaxDuration
		}
		d := time.Duration(value) * unit
		if total > MaxDuration-d {
			return MaxDuration
		}
		total += d
	}
	return total
}

var humanUnits = []struct {
	name string
	size time.Duration
}{
	{"week", Week},
	{"day", 24 * time.Hour},
	{"hour", time.Hour},
	{"minute", time.Minute},
	{"second", time.Second},
}

// HumanizeDuration formats d as "2 hours, 30 minutes", omitting zero units.
// Non-positive durations are "0 seconds".
func HumanizeDuration(d time.Duration) string {
	seconds := int64(d / time.Second)
	if seconds <= 0 {
		return "0 seconds"
	}

	var parts []string
	for _, u := range humanUnits {
		size := int64(u.size / time.Second)
		if seconds < size {
			continue
		}
		count := seconds / size
		seconds %= size
		suffix := "s"
		if count == 1 {
			suffix = ""
		}
		parts = append(parts, fmt.Sprintf("%d %s%s", count, u.name, suffix))
	}
	return strings.Join(parts, ", ")
}
