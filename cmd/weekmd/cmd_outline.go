package main

import (
	"fmt"
	"os"
	"strings"

	"weekmd/internal/outline"

	"github.com/spf13/cobra"
)

func newOutlineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "outline [report.md]",
		Short: "Show the sections and files of a generated report",
		Long: `Parses a report written by weekmd and prints its structure: the title,
each assignment or tutorial section, and every embedded file with its
code block tag and line count.

Example:
  weekmd outline week3.md`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read report: %w", err)
			}
			o, err := outline.Parse(data)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, titleStyle.Render(o.Title))
			for _, s := range o.Sections {
				fmt.Fprintf(out, "  %s\n", s.Title)
				for _, f := range s.Files {
					lang := f.Lang
					if lang == "" {
						lang = "untagged"
					}
					fmt.Fprintf(out, "    %s %s\n", f.Name,
						mutedStyle.Render(fmt.Sprintf("(%s, %s)", lang, plural(strings.Count(f.Body, "\n"), "line"))))
				}
			}
			return nil
		},
	}
}
