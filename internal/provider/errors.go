package provider

import (
	"fmt"
	"math"
	"time"
)

// RateLimitError reports that the remote API's rate limit is exhausted.
// Wait carries a concrete retry-after duration so callers can show users a
// wait time instead of a generic failure.
type RateLimitError struct {
	Service string
	Limit   int
	ResetAt time.Time
	Wait    time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s rate limit exceeded. Try again in %d minutes.", e.Service, int(e.Wait.Minutes()))
}

// ResolutionError represents an HTTP failure the provider cannot interpret
// further. The original status and message pass through so the caller can
// decide whether to retry, queue, or reject the build request.
type ResolutionError struct {
	StatusCode int
	Message    string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("ref resolution failed (status %d): %s", e.StatusCode, e.Message)
}

// RetryWait rounds the time until a rate limit resets up to the next
// five-minute boundary, plus one interval of slack, so the advertised wait
// always lands past the actual reset.
func RetryWait(untilReset time.Duration) time.Duration {
	intervals := int(math.Ceil(untilReset.Seconds() / 300))
	if intervals < 0 {
		intervals = 0
	}
	return time.Duration(1+intervals) * 5 * time.Minute
}
