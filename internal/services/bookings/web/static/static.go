package static

import "embed"

// FS exposes bookings UI assets for HTTP serving.
//
//go:embed *.css
var FS embed.FS
