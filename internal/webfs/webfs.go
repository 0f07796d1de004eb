// Package webfs provides the embedded installer front end.
package webfs

import (
	"embed"
	"io/fs"
)

//go:embed all:frontend
var FS embed.FS

// Assets returns the front end rooted at its index.html, as the Wails asset
// server expects.
func Assets() (fs.FS, error) {
	return fs.Sub(FS, "frontend")
}
