// Package domain contains the manifest parser, the repository resolver and
// the status engine behind the gitsync CLI.
package domain

import (
	"fmt"
	"io"
	"strings"

	m "gitsync.dev/pkg/gitsync/internal/model"
)

const (
	// DirectiveSourceRepo starts a block and names the source repository.
	DirectiveSourceRepo = "SourceRepo"
	// DirectiveSync maps a source file to a destination path.
	DirectiveSync = "Sync"

	sourceRepoFieldCount = 1
	syncFieldCount       = 2
)

// ParseManifest tokenizes and parses a manifest.
func ParseManifest(r io.Reader) ([]m.Block, error) {
	return Parse(NewDirectiveReader(r))
}

// Parse builds the ordered list of blocks described by src.
//
//	manifest := block*
//	block    := "SourceRepo" name syncLine*
//	syncLine := "Sync" srcPath dstPath
//
// The first error aborts parsing and no blocks are returned.
func Parse(src DirectiveSource) ([]m.Block, error) {
	blocks := []m.Block{}

	directive, ok, err := src.Next()

	for {
		if err != nil {
			return nil, err
		}

		if !ok {
			return blocks, nil
		}

		block, headerErr := parseBlockHeader(directive)
		if headerErr != nil {
			return nil, headerErr
		}

		// Collect Sync lines until something else (or the end) shows up; that
		// directive becomes the candidate for the next block header.
		for {
			directive, ok, err = src.Next()
			if err != nil || !ok || directive.ID != DirectiveSync {
				break
			}

			mapping, syncErr := parseSync(directive)
			if syncErr != nil {
				return nil, syncErr
			}

			block.Mappings = append(block.Mappings, mapping)
		}

		blocks = append(blocks, block)
	}
}

func parseBlockHeader(directive m.Directive) (m.Block, error) {
	if directive.ID != DirectiveSourceRepo {
		return m.Block{}, &ParseError{
			Line:      directive.Line,
			Kind:      ErrKindUnexpectedDirective,
			Directive: directive.ID,
			Message:   fmt.Sprintf("expected %s but got %s", DirectiveSourceRepo, directive.ID),
		}
	}

	if err := checkFieldCount(directive, sourceRepoFieldCount, "argument"); err != nil {
		return m.Block{}, err
	}

	if err := checkNotBlank(directive, "repository name", directive.Fields[0]); err != nil {
		return m.Block{}, err
	}

	return m.Block{
		Name:     directive.Fields[0],
		Line:     directive.Line,
		Mappings: []m.Mapping{},
	}, nil
}

func parseSync(directive m.Directive) (m.Mapping, error) {
	if err := checkFieldCount(directive, syncFieldCount, "arguments"); err != nil {
		return m.Mapping{}, err
	}

	if err := checkNotBlank(directive, "source path", directive.Fields[0]); err != nil {
		return m.Mapping{}, err
	}

	if err := checkNotBlank(directive, "destination path", directive.Fields[1]); err != nil {
		return m.Mapping{}, err
	}

	return m.Mapping{Source: directive.Fields[0], Destination: directive.Fields[1]}, nil
}

func checkFieldCount(directive m.Directive, want int, noun string) error {
	if len(directive.Fields) == want {
		return nil
	}

	return &ParseError{
		Line:      directive.Line,
		Kind:      ErrKindFieldCount,
		Directive: directive.ID,
		Count:     len(directive.Fields),
		Message: fmt.Sprintf("expected %s directive to have %d %s but got %d",
			directive.ID, want, noun, len(directive.Fields)),
	}
}

func checkNotBlank(directive m.Directive, what, value string) error {
	if strings.TrimSpace(value) != "" {
		return nil
	}

	return &ParseError{
		Line:      directive.Line,
		Kind:      ErrKindEmptyField,
		Directive: directive.ID,
		Count:     len(directive.Fields),
		Message:   fmt.Sprintf("%s directive has an empty %s", directive.ID, what),
	}
}
