package scraper

import "time"

// maxRetries bounds retries after the initial request, so a transient
// failure is attempted 1+maxRetries times in total.
const maxRetries = 3

// backoffDelay returns the wait before retry number retry (1-based),
// doubling from a one second base. Pure so retry behavior is testable
// without real network latency.
func backoffDelay(retry int) time.Duration {
	if retry < 1 {
		retry = 1
	}
	return time.Second << (retry - 1)
}
