// Package shaders embeds the GLSL programs of the demos.
package shaders

import (
	"embed"
	"io/fs"
)

//go:embed *.vert *.frag
var files embed.FS

// FS returns the embedded shader sources.
func FS() fs.FS {
	return files
}

// Paths returns the vertex and fragment stage of the named program.
func Paths(name string) (vertex, fragment string) {
	return name + ".vert", name + ".frag"
}

// Has reports whether both stages of the named program are embedded.
func Has(name string) bool {
	vert, frag := Paths(name)
	_, errV := fs.Stat(files, vert)
	_, errF := fs.Stat(files, frag)
	return errV == nil && errF == nil
}
