// Package outline reads a generated report back into its section and file
// structure.
package outline

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const filePrefix = "File:"

// File is one embedded source file.
type File struct {
	Name string
	Lang string
	Body string
}

// Section is one "## Assignment N" or "## Tutorial N" block.
type Section struct {
	Title string
	Files []File
}

// Outline is the structure of a report.
type Outline struct {
	Title    string
	Sections []Section
}

// FileCount returns the number of files across all sections.
func (o *Outline) FileCount() int {
	n := 0
	for _, s := range o.Sections {
		n += len(s.Files)
	}
	return n
}

// Parse builds an Outline from Markdown source.
func Parse(src []byte) (*Outline, error) {
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	out := &Outline{}
	var section *Section
	var pending *File

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			title := nodeText(node, src)
			switch node.Level {
			case 1:
				if out.Title == "" {
					out.Title = title
				}
			case 2:
				out.Sections = append(out.Sections, Section{Title: title})
				section = &out.Sections[len(out.Sections)-1]
				pending = nil
			case 3:
				if section == nil || !strings.HasPrefix(title, filePrefix) {
					continue
				}
				section.Files = append(section.Files, File{
					Name: strings.TrimSpace(strings.TrimPrefix(title, filePrefix)),
				})
				pending = &section.Files[len(section.Files)-1]
			}
		case *ast.FencedCodeBlock:
			if pending == nil {
				continue
			}
			pending.Lang = string(node.Language(src))
			pending.Body = blockBody(node, src)
			pending = nil
		}
	}

	if out.Title == "" {
		return nil, fmt.Errorf("no report title found")
	}
	return out, nil
}

func nodeText(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

func blockBody(n *ast.FencedCodeBlock, src []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(src))
	}
	return b.String()
}
