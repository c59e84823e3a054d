// Package report renders submitted source files into a weekly Markdown report.
package report

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"weekmd/internal/lang"
	"weekmd/internal/paths"

	"go.uber.org/zap"
)

// DateLayout is the DD/MM/YYYY layout used on the Date line.
const DateLayout = "02/01/2006"

// Clock supplies the date printed in the header.
type Clock func() time.Time

// IOError wraps a failure to create, read or write a file.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Option configures a Writer.
type Option func(*Writer)

// WithClock sets the clock used for the Date line.
func WithClock(c Clock) Option {
	return func(w *Writer) {
		if c != nil {
			w.clock = c
		}
	}
}

// WithTable replaces the extension table.
func WithTable(t lang.Table) Option {
	return func(w *Writer) {
		if t != nil {
			w.table = t
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(w *Writer) {
		if l != nil {
			w.logger = l
		}
	}
}

// Writer emits reports. The zero value is not usable; use NewWriter.
type Writer struct {
	table  lang.Table
	clock  Clock
	logger *zap.Logger
}

// NewWriter returns a Writer using the default table, time.Now and a no-op
// logger unless overridden.
func NewWriter(opts ...Option) *Writer {
	w := &Writer{
		table:  lang.DefaultTable(),
		clock:  time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Generate validates cfg, creates or truncates its output file and writes the
// report into it. On failure the output keeps whatever was written before the
// failing file.
func Generate(cfg *Config, opts ...Option) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid report config: %w", err)
	}
	return NewWriter(opts...).WriteFile(cfg)
}

// WriteFile writes the report for cfg to cfg.OutputPath().
func (w *Writer) WriteFile(cfg *Config) (err error) {
	path := cfg.OutputPath()
	f, err := os.Create(path)
	if err != nil {
		return &IOError{Op: "create", Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &IOError{Op: "close", Path: path, Err: cerr}
		}
	}()

	buf := bufio.NewWriter(f)
	werr := w.Write(buf, cfg)
	if ferr := buf.Flush(); ferr != nil && werr == nil {
		werr = &IOError{Op: "write", Path: path, Err: ferr}
	}
	if werr != nil {
		return werr
	}

	w.logger.Info("Report written",
		zap.String("path", path),
		zap.Int("groups", len(cfg.Groups)))
	return nil
}

// Write emits the full document for cfg to out.
func (w *Writer) Write(out io.Writer, cfg *Config) error {
	e := &emitter{out: out, path: cfg.OutputPath()}
	w.writeHeader(e, cfg)
	if e.err != nil {
		return e.err
	}

	for i, group := range cfg.Groups {
		w.logger.Debug("Writing group", zap.Int("index", i+1), zap.Int("files", len(group)))
		e.printf("## %s %d  \n  \n", cfg.Kind, i+1)
		if e.err != nil {
			return e.err
		}
		if err := w.writeGroup(e, group); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeHeader(e *emitter, cfg *Config) {
	e.printf("# %s week %d  \n", cfg.Kind, cfg.Week)
	e.printf("  \n")
	e.printf("Name: %s  \n", cfg.Name)
	e.printf("Student number: %d  \n", cfg.StudentNumber)
	e.printf("Class: %s  \n", cfg.Class)
	e.printf("Date: %s  \n", w.clock().Format(DateLayout))
	e.printf("  \n")
}

func (w *Writer) writeGroup(e *emitter, group paths.Group) error {
	for _, path := range group {
		name := paths.Name(path)
		tag, err := w.table.Resolve(name, path)
		if err != nil {
			return err
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return &IOError{Op: "read", Path: path, Err: err}
		}
		w.logger.Debug("Embedding file",
			zap.String("path", path),
			zap.String("tag", tag),
			zap.Int("bytes", len(content)))

		e.printf("### File: %s  \n  \n", name)
		e.printf("```%s\n", tag)
		e.write(content)
		if len(content) > 0 && !bytes.HasSuffix(content, []byte("\n")) {
			e.printf("\n")
		}
		e.printf("```  \n")
		if e.err != nil {
			return e.err
		}
	}
	return nil
}

// emitter records the first write error and ignores writes after it.
type emitter struct {
	out  io.Writer
	path string
	err  error
}

func (e *emitter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	if _, err := fmt.Fprintf(e.out, format, args...); err != nil {
		e.err = &IOError{Op: "write", Path: e.path, Err: err}
	}
}

func (e *emitter) write(p []byte) {
	if e.err != nil {
		return
	}
	if _, err := e.out.Write(p); err != nil {
		e.err = &IOError{Op: "write", Path: e.path, Err: err}
	}
}
