package bus

import "time"

// spinWait busy-waits for d. time.Sleep cannot resolve microseconds on a
// stock kernel, and the protocol needs a bounded settle time rather than a
// scheduler wakeup.
func spinWait(d time.Duration) {
	if d <= 0 {
		return
	}
	start := time.Now()
	for time.Since(start) < d {
	}
}
