/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package activitylog

import (
	"fmt"
	"time"
)

// ticks are 100ns units counted from 0001-01-01T00:00:00Z
const (
	maxTicks       int64 = 3155378975999999999
	unixEpochTicks int64 = 621355968000000000
	ticksPerSecond int64 = 10_000_000
	nanosPerTick   int64 = 100
)

// InversedTimeKey renders t as a fixed-width 19-digit key that sorts in
// descending time order, so that ascending row-key scans return the newest
// entries first.
func InversedTimeKey(t time.Time) string {
	t = t.UTC()
	ticks := unixEpochTicks + t.Unix()*ticksPerSecond + int64(t.Nanosecond())/nanosPerTick
	return fmt.Sprintf("%019d", maxTicks-ticks+1)
}
