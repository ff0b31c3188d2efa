package cdf

import (
	"math"
	"time"
)

// unixEpochSeconds is 1970-01-01T00:00:00Z counted from 0000-01-01T00:00:00Z.
const unixEpochSeconds = 62167219200

// EpochTime converts a CDF_EPOCH value, milliseconds since
// 0000-01-01T00:00:00.000, to a UTC time.
func EpochTime(ms float64) time.Time {
	t := ms - unixEpochSeconds*1000
	sec := math.Floor(t / 1000)
	nsec := math.Round((t - sec*1000) * 1e6)
	return time.Unix(int64(sec), int64(nsec)).UTC()
}

// Epoch16Time converts a CDF_EPOCH16 value, seconds since
// 0000-01-01T00:00:00 plus picoseconds, to a UTC time. Sub-nanosecond
// precision is truncated.
func Epoch16Time(sec, psec float64) time.Time {
	return time.Unix(int64(sec)-unixEpochSeconds, int64(psec/1000)).UTC()
}

// TimeEpoch converts t to a CDF_EPOCH value.
func TimeEpoch(t time.Time) float64 {
	return float64(t.Unix()+unixEpochSeconds)*1000 + float64(t.Nanosecond())/1e6
}
