// Package paths parses the file lists passed to --assignment-files and
// derives display names from the validated paths.
package paths

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// pathPattern matches one or more segments of non-separator characters,
	// each optionally preceded by a single '/'.
	pathPattern = regexp.MustCompile(`(/?[^:/\x00]+)+`)

	// segmentPattern matches a single run of non-separator characters.
	segmentPattern = regexp.MustCompile(`[^:/\x00]+`)
)

// Group is the ordered list of files making up one assignment or tutorial.
type Group []string

// String joins the group back into its command-line form.
func (g Group) String() string {
	return strings.Join(g, " ")
}

// ValidationError reports a malformed or empty path list.
type ValidationError struct {
	Input  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Input == "" {
		return e.Reason
	}
	return fmt.Sprintf("%q is not a valid path: %s", e.Input, e.Reason)
}

// ParseGroup splits raw on spaces and validates every token as a path.
// Empty tokens produced by repeated spaces are dropped.
func ParseGroup(raw string) (Group, error) {
	tokens := make(Group, 0, strings.Count(raw, " ")+1)
	for _, tok := range strings.Split(raw, " ") {
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	if len(tokens) == 0 {
		return nil, &ValidationError{Reason: "no file paths have been supplied"}
	}

	if err := tokens.Validate(); err != nil {
		return nil, err
	}
	return tokens, nil
}

// Validate checks that g is non-empty and that every entry is a well-formed
// path.
func (g Group) Validate() error {
	if len(g) == 0 {
		return &ValidationError{Reason: "no file paths have been supplied"}
	}
	for _, tok := range g {
		if err := ValidatePath(tok); err != nil {
			return err
		}
	}
	return nil
}

// ValidatePath reports whether tok is a single well-formed path: segments
// free of ':', '/' and NUL, joined by single slashes, with an optional
// leading slash.
func ValidatePath(tok string) error {
	switch {
	case tok == "":
		return &ValidationError{Reason: "empty path"}
	case strings.ContainsRune(tok, 0):
		return &ValidationError{Input: tok, Reason: "contains a NUL character"}
	case strings.ContainsRune(tok, ':'):
		return &ValidationError{Input: tok, Reason: "contains ':'"}
	case strings.HasSuffix(tok, "/"):
		return &ValidationError{Input: tok, Reason: "ends with a path separator"}
	}
	if m := pathPattern.FindString(tok); m != tok {
		return &ValidationError{Input: tok, Reason: "empty path segment"}
	}
	return nil
}

// Name returns the last path segment of path, or "" when path holds no
// segment at all.
func Name(path string) string {
	segs := segmentPattern.FindAllString(path, -1)
	if len(segs) == 0 {
		return ""
	}
	return segs[len(segs)-1]
}
