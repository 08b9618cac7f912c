package wallet

import "time"

// CAS retry policy. Attempts bound the conflict loop; the delay gives the
// winning writer's commit time to become visible before the re-read.
const (
	MaxCASAttempts = 3
	CASRetryDelay  = 100 * time.Millisecond
)
