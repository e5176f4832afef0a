// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import "time"

const dayMillis = int64(24 * time.Hour / time.Millisecond)

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// DaysElapsed returns the number of whole days between epoch and now.
// Partial days count for nothing and a now before epoch yields zero.
func DaysElapsed(epoch, now time.Time) int64 {
	elapsed := now.UnixMilli() - epoch.UnixMilli()
	if elapsed <= 0 {
		return 0
	}
	return elapsed / dayMillis
}

// Accrued returns base plus dailyIncrement for every whole day since epoch.
// Negative inputs are treated as zero.
func Accrued(base, dailyIncrement int64, epoch, now time.Time) int64 {
	if base < 0 {
		base = 0
	}
	if dailyIncrement < 0 {
		dailyIncrement = 0
	}
	return base + DaysElapsed(epoch, now)*dailyIncrement
}
