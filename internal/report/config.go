package report

import (
	"fmt"

	"weekmd/internal/paths"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Kind selects the wording used in headings.
type Kind int

const (
	KindAssignment Kind = iota
	KindTutorial
)

func (k Kind) String() string {
	if k == KindTutorial {
		return "Tutorial"
	}
	return "Assignment"
}

// KindFor maps the --tutorial flag to a Kind.
func KindFor(tutorial bool) Kind {
	if tutorial {
		return KindTutorial
	}
	return KindAssignment
}

// Config describes one report. It is built once from validated input and
// handed to a Writer.
type Config struct {
	Name          string
	Class         string
	StudentNumber uint32
	Week          uint8
	Kind          Kind
	Groups        []paths.Group
	Output        string
}

// DefaultOutput is the file name used when no output path is given.
func DefaultOutput(week uint8) string {
	return fmt.Sprintf("week%d.md", week)
}

// OutputPath returns Output, or DefaultOutput when it is empty.
func (c *Config) OutputPath() string {
	if c.Output != "" {
		return c.Output
	}
	return DefaultOutput(c.Week)
}

// Validate checks the student fields and that at least one non-empty group
// of well-formed paths is present.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Name, validation.Required),
		validation.Field(&c.Class, validation.Required),
		validation.Field(&c.Kind, validation.In(KindAssignment, KindTutorial)),
		validation.Field(&c.Groups, validation.Required, validation.Each(validation.Required)),
	)
}
