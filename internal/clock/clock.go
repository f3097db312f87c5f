package clock

import "time"

// NowFunc is the time source for report timestamps and durations. Tests
// override it for deterministic elapsed values.
var NowFunc = time.Now

// Now returns the current time via NowFunc.
func Now() time.Time {
	return NowFunc()
}
