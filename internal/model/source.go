// Package model defines the data structures shared by the manifest parser,
// the status engine and the renderers.
package model

// Path represents a file system path.
type Path string

// String returns the path as a plain string.
func (p Path) String() string {
	return string(p)
}

// Directive is one tokenized manifest line.
type Directive struct {
	ID     string
	Fields []string
	Line   int // 1-based physical line; 0 means not line-specific
}

// Mapping pairs a path inside the source repository with a path inside the
// destination repository. Both are manifest-relative and may use either
// separator.
type Mapping struct {
	Source      string `json:"source" yaml:"source"`
	Destination string `json:"destination" yaml:"destination"`
}

// Block is a SourceRepo directive together with the Sync mappings that follow it.
type Block struct {
	Name     string
	Line     int
	Mappings []Mapping
}

// ResolvedRepo is a Block whose source repository name has been mapped to a
// filesystem location.
type ResolvedRepo struct {
	Block
	Root Path
}
