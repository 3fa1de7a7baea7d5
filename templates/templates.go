package templates

import "embed"

// FS holds the built-in catalog templates. A custom templates directory
// overrides them by file name.
//
//go:embed catalog/*.tmpl
var FS embed.FS
