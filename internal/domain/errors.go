package domain

import (
	"errors"
	"fmt"

	"gitsync.dev/pkg/gitsync/internal/adapter"
	m "gitsync.dev/pkg/gitsync/internal/model"
)

var (
	// ErrInvalidManifest is wrapped by every ParseError.
	ErrInvalidManifest = errors.New("invalid manifest")
	// ErrManifestNotFound is returned when the manifest file is absent.
	ErrManifestNotFound = errors.New("manifest not found")
	// ErrRepoRootNotFound is returned when no enclosing repository exists.
	ErrRepoRootNotFound = adapter.ErrRepoRootNotFound
	// ErrSourceRootMissing is wrapped by every BlockError.
	ErrSourceRootMissing = errors.New("source repository does not exist")
)

// ErrorKind identifies the class of a manifest syntax error.
type ErrorKind int

const (
	// ErrKindTokenize is a malformed line, such as an unterminated quote.
	ErrKindTokenize ErrorKind = iota + 1
	// ErrKindFieldCount is a known directive with the wrong number of fields.
	ErrKindFieldCount
	// ErrKindUnexpectedDirective is an identifier other than SourceRepo where a block must start.
	ErrKindUnexpectedDirective
	// ErrKindEmptyField is a repository name or path that is empty or only whitespace.
	ErrKindEmptyField
)

func (k ErrorKind) String() string {
	switch k {
	case ErrKindTokenize:
		return "tokenize"
	case ErrKindFieldCount:
		return "field-count"
	case ErrKindUnexpectedDirective:
		return "unexpected-directive"
	case ErrKindEmptyField:
		return "empty-field"
	default:
		return "unknown"
	}
}

// ParseError describes the first syntax error found in a manifest. Line is the
// 1-based physical line; 0 means the error is not tied to a line.
type ParseError struct {
	Line      int
	Kind      ErrorKind
	Directive string // identifier of the offending directive, if any
	Count     int    // number of fields found, for ErrKindFieldCount
	Message   string
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return e.Message
	}

	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// Unwrap lets callers match any syntax error with errors.Is(err, ErrInvalidManifest).
func (e *ParseError) Unwrap() error {
	return ErrInvalidManifest
}

// BlockError reports a SourceRepo whose resolved root is not a directory.
type BlockError struct {
	Name string
	Path m.Path
}

func (e *BlockError) Error() string {
	return fmt.Sprintf("SourceRepo %s does not exist at '%s'", e.Name, e.Path)
}

// Unwrap lets callers match with errors.Is(err, ErrSourceRootMissing).
func (e *BlockError) Unwrap() error {
	return ErrSourceRootMissing
}
