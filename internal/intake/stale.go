package intake

import "time"

// DateLayout is the stored item_date format. Dates in this layout order
// lexicographically.
const DateLayout = "2006-01-02"

// StaleCutoff returns the latest item date that counts as stale on the day
// now falls on in loc: the later of one calendar year ago and 365 days ago.
// Taking the later bound keeps both "exactly a year" and "365 days" stale
// across leap years.
func StaleCutoff(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := now.In(loc).Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, loc)

	cutoff := today.AddDate(-1, 0, 0)
	if days := today.AddDate(0, 0, -365); days.After(cutoff) {
		cutoff = days
	}
	return cutoff.Format(DateLayout)
}

// IsStale reports whether a found item dated itemDate (YYYY-MM-DD) should go
// straight to the archive.
func IsStale(itemDate string, now time.Time, loc *time.Location) bool {
	return itemDate <= StaleCutoff(now, loc)
}
