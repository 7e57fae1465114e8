package service

import "time"

// Clock returns the current time. The location of the returned time is the
// zone all calendar math runs in.
type Clock func() time.Time

// SystemClock reads the wall clock in loc.
func SystemClock(loc *time.Location) Clock {
	return func() time.Time { return time.Now().In(loc) }
}

// FixedClock always returns t.
func FixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func monthStart(year int, month time.Month, loc *time.Location) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, loc)
}

// graceEnd is the instant the grace period of the month starting at start
// closes: 00:00 on day GraceDays+1 of the following month. Until then costs
// for that month are accepted and its report stays live.
func graceEnd(start time.Time) time.Time {
	return start.AddDate(0, 1, GraceDays)
}
