package controller

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
	m "gitsync.dev/pkg/gitsync/internal/model"
)

const diffContextLines = 3

// UnifiedDiff renders the changes needed to turn the destination file into
// the source file.
func UnifiedDiff(read ContentReader, source, destination m.Path) (string, error) {
	src, err := read(source)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", source, err)
	}

	dst, err := read(destination)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", destination, err)
	}

	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(dst)),
		B:        difflib.SplitLines(string(src)),
		FromFile: string(destination),
		ToFile:   string(source),
		Context:  diffContextLines,
	})
}
