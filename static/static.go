// Package static embeds the API documentation served under /static and /docs.
package static

import "embed"

//go:embed openapi.json openapi.html
var Files embed.FS
