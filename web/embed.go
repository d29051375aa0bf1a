// Package web holds the browser client: HTML templates and static assets,
// compiled into the binary.
package web

import "embed"

// FS contains templates/*.html and static/*.
//
//go:embed templates static
var FS embed.FS
