// Package lifecycle holds shared constants for component start/stop handling.
package lifecycle

import "time"

// DefaultTimeout bounds graceful startup and shutdown of infrastructure
// components (database pool, HTTP server, publishers).
const DefaultTimeout = 10 * time.Second
