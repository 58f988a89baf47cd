// Package model defines the data structures shared by the preamble engine.
package model

import "path/filepath"

// Path represents a file system path.
type Path string

// Dir returns the directory containing the path.
func (p Path) Dir() Path {
	return Path(filepath.Dir(string(p)))
}

// Ext returns the file extension of the path, including the leading dot.
func (p Path) Ext() string {
	return filepath.Ext(string(p))
}

// String implements fmt.Stringer.
func (p Path) String() string {
	return string(p)
}

// File represents a candidate source file discovered under a root.
type File struct {
	// FullPath is the path as produced by walking the root.
	FullPath Path
	// ShortPath is FullPath relative to Root, used for filtering and display.
	ShortPath Path
	// Root is the scan root the file was discovered under.
	Root Path
}

// Template is the plain preamble text bound to its anchor directory.
type Template struct {
	Anchor Path
	Text   string
}
