// Package schemas holds the JSON Schema documents for every JSON artifact the
// CLI reads or writes. The files are embedded so validation works from any
// working directory.
package schemas

import "embed"

// FS contains all *.schema.json files in this directory.
//
//go:embed *.schema.json
var FS embed.FS
