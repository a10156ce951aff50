// Package templates embeds the HTML templates served by the web UI.
package templates

import "embed"

//go:embed base.html pages/*.html partials/*.html
var FS embed.FS
