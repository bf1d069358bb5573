package httpserver

import "time"

// ShutdownTimeout bounds the graceful drain on exit. Uploads still in flight
// past this point are abandoned; their staged files are removed by the sweep
// on the next boot.
const ShutdownTimeout = 15 * time.Second
