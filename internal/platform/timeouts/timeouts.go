// Package timeouts defines the server and client deadlines used by the
// bookings binary.
package timeouts

import "time"

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Read caps the time spent reading a whole request, body included.
const Read = 15 * time.Second

// Write caps the time spent writing a response, exports included.
const Write = 30 * time.Second

// Idle limits how long keep-alive connections wait for the next request.
const Idle = 60 * time.Second

// Shutdown limits how long servers wait for in-flight requests during
// graceful shutdown.
const Shutdown = 5 * time.Second

// HealthCheck caps a single storage ping issued by the health endpoint.
const HealthCheck = 2 * time.Second

// GRPCDial caps the wait time when dialing the gRPC health endpoint.
const GRPCDial = 2 * time.Second
