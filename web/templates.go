// Package web holds the embedded admin templates so the server binary can
// render them regardless of its working directory.
package web

import "embed"

//go:embed templates/*.html
var Templates embed.FS
