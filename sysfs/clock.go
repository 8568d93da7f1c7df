package sysfs

import (
	"time"

	"golang.org/x/sys/unix"
)

// Now returns the current time from the coarse real-time clock, the
// same cached, periodically-updated clock source Linux sysfs itself
// reads for inode timestamps, rather than a fresh high-resolution
// read on every call. If the clock is unavailable it falls back to
// time.Now.
func Now() time.Time {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_REALTIME_COARSE, &ts); err != nil {
		return time.Now()
	}
	return time.Unix(ts.Sec, ts.Nsec)
}
