// Package lifecycle holds shared process lifecycle settings.
package lifecycle

import "time"

// DefaultTimeout bounds graceful shutdown of deliveries and stores.
const DefaultTimeout = 10 * time.Second
