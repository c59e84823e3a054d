// Package lang maps source file extensions to fenced code block tags.
package lang

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// MaxExtensionLen is the longest extension, not counting the dot, that can
// be matched against a Table.
const MaxExtensionLen = 3

var extensionPattern = regexp.MustCompile(`\.[^:/\x00]{1,3}`)

// Table maps an extension, dot included, to a code block tag.
type Table map[string]string

// DefaultTable returns the built-in C/C++ mapping.
func DefaultTable() Table {
	return Table{
		".c":   "c",
		".h":   "c",
		".cpp": "cpp",
		".hpp": "cpp",
	}
}

// MissingExtensionError is returned when a file name has no extension.
type MissingExtensionError struct {
	Name string
	Path string
}

func (e *MissingExtensionError) Error() string {
	return fmt.Sprintf("no extension was found for file with name '%s' on path '%s'", e.Name, e.Path)
}

// UnsupportedExtensionError is returned when the extension is not in the table.
// TooLong is set when the extension exceeds MaxExtensionLen characters.
type UnsupportedExtensionError struct {
	Ext     string
	Path    string
	TooLong bool
}

func (e *UnsupportedExtensionError) Error() string {
	if e.TooLong {
		return fmt.Sprintf("unsupported extension %s on path '%s': extensions are limited to %d characters",
			e.Ext, e.Path, MaxExtensionLen)
	}
	return fmt.Sprintf("unsupported extension %s on path '%s'", e.Ext, e.Path)
}

// Resolve returns the tag for the file called name. path is only used in
// error messages.
func (t Table) Resolve(name, path string) (string, error) {
	locs := extensionPattern.FindAllStringIndex(name, -1)
	if len(locs) == 0 {
		return "", &MissingExtensionError{Name: name, Path: path}
	}

	last := locs[len(locs)-1]
	if last[1] != len(name) {
		return "", &UnsupportedExtensionError{Ext: name[last[0]:], Path: path, TooLong: true}
	}

	ext := name[last[0]:last[1]]
	tag, ok := t[ext]
	if !ok {
		return "", &UnsupportedExtensionError{Ext: ext, Path: path}
	}
	return tag, nil
}

// Merge returns a copy of t with the entries of extra added or replaced.
func (t Table) Merge(extra map[string]string) Table {
	out := make(Table, len(t)+len(extra))
	for k, v := range t {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// Validate checks that every key can actually be matched by Resolve.
func (t Table) Validate() error {
	for _, ext := range t.Extensions() {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("extension %q must start with '.'", ext)
		}
		if n := len(ext) - 1; n < 1 || n > MaxExtensionLen {
			return fmt.Errorf("extension %q must have 1 to %d characters after the dot", ext, MaxExtensionLen)
		}
		if strings.ContainsAny(ext, ":/\x00") {
			return fmt.Errorf("extension %q contains a path separator", ext)
		}
		if strings.TrimSpace(t[ext]) == "" {
			return fmt.Errorf("extension %q has an empty tag", ext)
		}
	}
	return nil
}

// Extensions returns the table keys in sorted order.
func (t Table) Extensions() []string {
	exts := make([]string, 0, len(t))
	for ext := range t {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
