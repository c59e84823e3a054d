package report

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"weekmd/internal/lang"
	"weekmd/internal/outline"
	"weekmd/internal/paths"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func fixedClock() time.Time {
	return time.Date(2026, time.March, 4, 10, 30, 0, 0, time.Local)
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestWriteLayout(t *testing.T) {
	dir := t.TempDir()
	mainC := writeSource(t, dir, "main.c", "int main(void) {\n\treturn 0;\n}\n")
	utilH := writeSource(t, dir, "inc/util.h", "int add(int, int);\n")

	cfg := &Config{
		Name:          "Ada Lovelace",
		Class:         "CS101",
		StudentNumber: 42,
		Week:          5,
		Groups:        []paths.Group{{mainC, utilH}},
	}

	var buf bytes.Buffer
	require.NoError(t, NewWriter(WithClock(fixedClock)).Write(&buf, cfg))

	want := "# Assignment week 5  \n" +
		"  \n" +
		"Name: Ada Lovelace  \n" +
		"Student number: 42  \n" +
		"Class: CS101  \n" +
		"Date: 04/03/2026  \n" +
		"  \n" +
		"## Assignment 1  \n" +
		"  \n" +
		"### File: main.c  \n" +
		"  \n" +
		"```c\n" +
		"int main(void) {\n\treturn 0;\n}\n" +
		"```  \n" +
		"### File: util.h  \n" +
		"  \n" +
		"```c\n" +
		"int add(int, int);\n" +
		"```  \n"
	assert.Equal(t, want, buf.String())
}

func TestWriteTutorialWording(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "a.cpp", "int a;\n")

	cfg := &Config{
		Name:   "A",
		Class:  "B",
		Week:   9,
		Kind:   KindTutorial,
		Groups: []paths.Group{{src}, {src}},
	}

	var buf bytes.Buffer
	require.NoError(t, NewWriter(WithClock(fixedClock)).Write(&buf, cfg))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "# Tutorial week 9  \n"))
	assert.Contains(t, out, "## Tutorial 1  \n")
	assert.Contains(t, out, "## Tutorial 2  \n")
	assert.NotContains(t, out, "Assignment")
}

func TestWriteAddsNewlineBeforeClosingFence(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "foo.c", "int x;")

	cfg := &Config{Name: "A", Class: "B", Week: 1, Groups: []paths.Group{{src}}}

	var buf bytes.Buffer
	require.NoError(t, NewWriter(WithClock(fixedClock)).Write(&buf, cfg))
	assert.True(t, strings.HasSuffix(buf.String(), "```c\nint x;\n```  \n"), buf.String())
}

func TestGenerateDefaultOutput(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeSource(t, dir, "foo.c", "int x;")

	g, err := paths.ParseGroup("foo.c")
	require.NoError(t, err)

	cfg := &Config{
		Name:          "A",
		Class:         "B",
		StudentNumber: 1,
		Week:          3,
		Groups:        []paths.Group{g},
	}
	require.NoError(t, Generate(cfg, WithClock(fixedClock)))

	data, err := os.ReadFile(filepath.Join(dir, "week3.md"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# Assignment week 3"))

	o, err := outline.Parse(data)
	require.NoError(t, err)
	require.Len(t, o.Sections, 1)
	require.Len(t, o.Sections[0].Files, 1)
	assert.Equal(t, "c", o.Sections[0].Files[0].Lang)
	assert.Equal(t, "int x;\n", o.Sections[0].Files[0].Body)
}

func TestGenerateGroupsInOrder(t *testing.T) {
	dir := t.TempDir()
	first := writeSource(t, dir, "one/a.c", "int a;\n")
	second := writeSource(t, dir, "two/b.cpp", "int b;\n")
	out := filepath.Join(dir, "report.md")

	cfg := &Config{
		Name:   "A",
		Class:  "B",
		Week:   2,
		Groups: []paths.Group{{first}, {second}},
		Output: out,
	}
	require.NoError(t, Generate(cfg, WithClock(fixedClock)))

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	o, err := outline.Parse(data)
	require.NoError(t, err)
	require.Len(t, o.Sections, 2)
	assert.Equal(t, "Assignment 1", o.Sections[0].Title)
	assert.Equal(t, "a.c", o.Sections[0].Files[0].Name)
	assert.Equal(t, "Assignment 2", o.Sections[1].Title)
	assert.Equal(t, "b.cpp", o.Sections[1].Files[0].Name)
	assert.Equal(t, "cpp", o.Sections[1].Files[0].Lang)
}

func TestGenerateMissingInput(t *testing.T) {
	dir := t.TempDir()
	present := writeSource(t, dir, "ok.c", "int ok;\n")
	missing := filepath.Join(dir, "gone.c")
	out := filepath.Join(dir, "week1.md")

	cfg := &Config{
		Name:   "A",
		Class:  "B",
		Week:   1,
		Groups: []paths.Group{{present, missing}},
		Output: out,
	}
	err := Generate(cfg, WithClock(fixedClock))
	require.Error(t, err)

	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr), "expected *IOError, got %T", err)
	assert.Equal(t, "read", ioErr.Op)
	assert.Equal(t, missing, ioErr.Path)
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	data, rerr := os.ReadFile(out)
	require.NoError(t, rerr)
	assert.Contains(t, string(data), "### File: ok.c")
	assert.NotContains(t, string(data), "gone.c")
}

func TestGenerateUnsupportedExtensionStops(t *testing.T) {
	dir := t.TempDir()
	first := writeSource(t, dir, "a.c", "int a;\n")
	py := writeSource(t, dir, "b.py", "print(1)\n")
	last := writeSource(t, dir, "c.c", "int c;\n")

	cfg := &Config{
		Name:   "A",
		Class:  "B",
		Week:   1,
		Groups: []paths.Group{{first}, {py}, {last}},
		Output: filepath.Join(dir, "out.md"),
	}
	err := Generate(cfg, WithClock(fixedClock))

	var uerr *lang.UnsupportedExtensionError
	require.True(t, errors.As(err, &uerr), "expected *UnsupportedExtensionError, got %T", err)
	assert.Equal(t, ".py", uerr.Ext)

	data, rerr := os.ReadFile(cfg.Output)
	require.NoError(t, rerr)
	assert.Contains(t, string(data), "## Assignment 2")
	assert.NotContains(t, string(data), "## Assignment 3")
}

func TestGenerateRejectsInvalidConfigBeforeIO(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "never.md")

	tests := []struct {
		name string
		cfg  *Config
	}{
		{"no groups", &Config{Name: "A", Class: "B", Output: out}},
		{"empty group", &Config{Name: "A", Class: "B", Groups: []paths.Group{{}}, Output: out}},
		{"bad path", &Config{Name: "A", Class: "B", Groups: []paths.Group{{"a/"}}, Output: out}},
		{"no name", &Config{Class: "B", Groups: []paths.Group{{"a.c"}}, Output: out}},
		{"no class", &Config{Name: "A", Groups: []paths.Group{{"a.c"}}, Output: out}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, Generate(tt.cfg))
			_, err := os.Stat(out)
			assert.True(t, os.IsNotExist(err), "output must not be created")
		})
	}
}

func TestGenerateUnwritableOutput(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "a.c", "int a;\n")

	cfg := &Config{
		Name:   "A",
		Class:  "B",
		Groups: []paths.Group{{src}},
		Output: filepath.Join(dir, "missing-dir", "out.md"),
	}
	err := Generate(cfg)

	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr), "expected *IOError, got %T", err)
	assert.Equal(t, "create", ioErr.Op)
}

func TestGenerateTruncatesExistingOutput(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "a.c", "int a;\n")
	out := writeSource(t, dir, "week1.md", strings.Repeat("stale\n", 1000))

	cfg := &Config{Name: "A", Class: "B", Week: 1, Groups: []paths.Group{{src}}, Output: out}
	require.NoError(t, Generate(cfg, WithClock(fixedClock)))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "stale")
}

func TestWithTable(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "lib.cc", "int f();\n")

	cfg := &Config{Name: "A", Class: "B", Groups: []paths.Group{{src}}}

	var buf bytes.Buffer
	err := NewWriter().Write(&buf, cfg)
	require.Error(t, err)

	buf.Reset()
	table := lang.DefaultTable().Merge(map[string]string{".cc": "cpp"})
	require.NoError(t, NewWriter(WithTable(table)).Write(&buf, cfg))
	assert.Contains(t, buf.String(), "```cpp\n")
}

func TestWriteLogsFiles(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "a.c", "int a;\n")

	core, logs := observer.New(zapcore.DebugLevel)
	cfg := &Config{Name: "A", Class: "B", Groups: []paths.Group{{src}}}

	var buf bytes.Buffer
	require.NoError(t, NewWriter(WithLogger(zap.New(core))).Write(&buf, cfg))

	entries := logs.FilterMessage("Embedding file").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "c", entries[0].ContextMap()["tag"])
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteReportsSinkErrors(t *testing.T) {
	cfg := &Config{Name: "A", Class: "B", Groups: []paths.Group{{"a.c"}}, Output: "x.md"}
	err := NewWriter().Write(failingWriter{}, cfg)

	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr), "expected *IOError, got %T", err)
	assert.Equal(t, "write", ioErr.Op)
	assert.Equal(t, "x.md", ioErr.Path)
}

func TestKind(t *testing.T) {
	assert.Equal(t, "Assignment", KindFor(false).String())
	assert.Equal(t, "Tutorial", KindFor(true).String())
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, "week12.md", (&Config{Week: 12}).OutputPath())
	assert.Equal(t, "out.md", (&Config{Week: 12, Output: "out.md"}).OutputPath())
}
