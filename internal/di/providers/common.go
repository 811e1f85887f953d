package providers

import "time"

// shutdownTimeout bounds graceful shutdown of each managed service.
const shutdownTimeout = 30 * time.Second
