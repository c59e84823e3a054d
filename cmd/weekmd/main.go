package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"weekmd/internal/config"
	"weekmd/internal/logging"
	"weekmd/internal/paths"
	"weekmd/internal/report"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

// generateOptions holds the flags of the root command.
type generateOptions struct {
	name          string
	class         string
	studentNumber uint32
	files         []string
	tutorial      bool
	week          uint8
	output        string
	date          string
	preview       bool
	watch         bool
}

// cli carries state shared by all commands of one invocation.
type cli struct {
	verbose    bool
	configPath string

	logger  *zap.Logger
	profile *config.Config

	gen generateOptions
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:   "weekmd",
		Short: "Assemble weekly assignment or tutorial sources into a Markdown report",
		Long: `weekmd collects the source files of one or more assignments into a single
Markdown document. Every file is embedded as a fenced code block tagged with
its language, under a header carrying the student's details and the date.

Each --assignment-files flag is one assignment (or tutorial, with --tutorial);
its value is a space-separated list of paths.

Example:
  weekmd -n "Ada Lovelace" -c CS101 -s 1234567 -w 3 \
    -a "lab3/main.c lab3/list.h" -a "lab3/extra.cpp"`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
		RunE: c.runGenerate,
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&c.configPath, "config", "", "Profile file (default: ./"+config.DefaultFileName+")")

	// Report flags
	flags := rootCmd.Flags()
	flags.StringVarP(&c.gen.name, "name", "n", "", "Student name (required unless set in the profile)")
	flags.StringVarP(&c.gen.class, "class", "c", "", "Class identifier (required unless set in the profile)")
	flags.Uint32VarP(&c.gen.studentNumber, "student-number", "s", 0, "Student number (required unless set in the profile)")
	flags.StringArrayVarP(&c.gen.files, "assignment-files", "a", nil, "Space-separated files of one assignment; repeat once per assignment")
	flags.BoolVarP(&c.gen.tutorial, "tutorial", "t", false, "Title sections \"Tutorial\" instead of \"Assignment\"")
	flags.Uint8VarP(&c.gen.week, "week", "w", 0, "Week number")
	flags.StringVarP(&c.gen.output, "output-file", "o", "", "Output file (default: week<N>.md)")
	flags.StringVar(&c.gen.date, "date", "", "Report date as DD/MM/YYYY (default: today)")
	flags.BoolVar(&c.gen.preview, "preview", false, "Render the written report in the terminal")
	flags.BoolVar(&c.gen.watch, "watch", false, "Regenerate the report whenever an input file changes")
	_ = rootCmd.MarkFlagRequired("assignment-files")
	_ = rootCmd.MarkFlagRequired("week")

	rootCmd.AddCommand(newLanguagesCmd(c))
	rootCmd.AddCommand(newOutlineCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// setup loads the profile and builds the logger.
func (c *cli) setup(cmd *cobra.Command, args []string) error {
	path := c.configPath
	if path == "" {
		path = config.DefaultPath()
	} else if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("config file: %w", err)
	}

	profile, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := profile.Validate(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	c.profile = profile

	logger, err := logging.New(profile.Logging.Options(c.verbose))
	if err != nil {
		return err
	}
	c.logger = logger
	logging.For(logger, logging.CategoryConfig).Debug("Profile loaded", zap.String("path", path))
	return nil
}

// buildReportConfig parses every group and fills student details, falling
// back to the profile for flags that were not set. It performs no I/O.
func (c *cli) buildReportConfig(cmd *cobra.Command) (*report.Config, error) {
	groups := make([]paths.Group, 0, len(c.gen.files))
	for i, raw := range c.gen.files {
		g, err := paths.ParseGroup(raw)
		if err != nil {
			return nil, fmt.Errorf("--assignment-files #%d: %w", i+1, err)
		}
		groups = append(groups, g)
	}

	flags := cmd.Flags()
	student := c.profile.Student
	var missing []string

	name := c.gen.name
	if !flags.Changed("name") {
		name = student.Name
	}
	if name == "" {
		missing = append(missing, "name")
	}

	class := c.gen.class
	if !flags.Changed("class") {
		class = student.Class
	}
	if class == "" {
		missing = append(missing, "class")
	}

	number := c.gen.studentNumber
	if !flags.Changed("student-number") {
		if student.StudentNumber == nil {
			missing = append(missing, "student-number")
		} else {
			number = *student.StudentNumber
		}
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf(`required flag(s) "%s" not set`, strings.Join(missing, `", "`))
	}

	return &report.Config{
		Name:          name,
		Class:         class,
		StudentNumber: number,
		Week:          c.gen.week,
		Kind:          report.KindFor(c.gen.tutorial),
		Groups:        groups,
		Output:        c.gen.output,
	}, nil
}

func (c *cli) clock() (report.Clock, error) {
	if c.gen.date == "" {
		return time.Now, nil
	}
	d, err := time.ParseInLocation(report.DateLayout, c.gen.date, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid --date %q (expected DD/MM/YYYY): %w", c.gen.date, err)
	}
	return func() time.Time { return d }, nil
}

func (c *cli) runGenerate(cmd *cobra.Command, args []string) error {
	log := logging.For(c.logger, logging.CategoryCLI)

	cfg, err := c.buildReportConfig(cmd)
	if err != nil {
		return err
	}
	clock, err := c.clock()
	if err != nil {
		return err
	}

	opts := []report.Option{
		report.WithTable(c.profile.LanguageTable()),
		report.WithClock(clock),
		report.WithLogger(logging.For(c.logger, logging.CategoryReport)),
	}

	log.Debug("Generating report",
		zap.String("output", cfg.OutputPath()),
		zap.Int("groups", len(cfg.Groups)),
		zap.Stringer("kind", cfg.Kind))
	if err := report.Generate(cfg, opts...); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printWritten(out, cfg)

	if c.gen.preview {
		if err := printPreview(out, cfg.OutputPath()); err != nil {
			return err
		}
	}
	if c.gen.watch {
		return c.watchAndRegenerate(cmd.Context(), out, cfg, opts)
	}
	return nil
}
