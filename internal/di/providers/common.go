package providers

import "time"

// shutdownTimeout bounds how long graceful shutdown may drain requests.
const shutdownTimeout = 30 * time.Second
