package db

import "time"

// Clock returns the current time for server-assigned timestamps.
type Clock func() time.Time

// SystemClock is the production clock.
func SystemClock() time.Time {
	return time.Now().UTC()
}

// stamp reads the clock and truncates to the microsecond precision Firestore
// stores, so returned values equal what a later read yields.
func stamp(now Clock) time.Time {
	return now().UTC().Truncate(time.Microsecond)
}
