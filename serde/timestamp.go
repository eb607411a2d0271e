package serde

import (
	"math"
	"strconv"
	"time"
)

// httpDateLayout is the IMF-fixdate layout used in HTTP headers.
const httpDateLayout = "Mon, 02 Jan 2006 15:04:05 GMT"

// FormatTimestamp returns the textual representation of the time for the
// given format.
func FormatTimestamp(t time.Time, format TimestampFormatKind) string {
	switch format {
	case TimestampRFC3339:
		return t.UTC().Format(time.RFC3339Nano)
	case TimestampHTTPDate:
		return t.UTC().Format(httpDateLayout)
	default:
		return strconv.FormatFloat(EpochSeconds(t), 'f', -1, 64)
	}
}

// ParseTimestamp parses the textual representation of a time for the given
// format.
func ParseTimestamp(format TimestampFormatKind, value string) (time.Time, error) {
	switch format {
	case TimestampRFC3339:
		t, err := time.Parse(time.RFC3339Nano, value)
		if err != nil {
			return time.Time{}, NewDecodeError("an RFC 3339 date-time", "'"+value+"'")
		}

		return t, nil
	case TimestampHTTPDate:
		t, err := time.Parse(httpDateLayout, value)
		if err != nil {
			return time.Time{}, NewDecodeError("an IMF-fixdate", "'"+value+"'")
		}

		return t, nil
	default:
		secs, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return time.Time{}, NewDecodeError("a number of epoch seconds", "'"+value+"'")
		}

		return FromEpochSeconds(secs), nil
	}
}

// EpochSeconds returns the number of seconds since the epoch, with the
// sub-second part as fraction.
func EpochSeconds(t time.Time) float64 {
	return float64(t.Unix()) + float64(t.Nanosecond())/1e9
}

// FromEpochSeconds returns the time for a number of seconds since the epoch.
func FromEpochSeconds(secs float64) time.Time {
	whole, frac := math.Modf(secs)
	return time.Unix(int64(whole), int64(math.Round(frac*1e9))).UTC()
}
