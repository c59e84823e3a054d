package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLanguagesCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the file extensions that can be embedded",
		Long: `Prints the extension to code block tag table in effect, including any
entries added under "languages:" in the profile.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table := c.profile.LanguageTable()
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("%-10s %s", "EXTENSION", "TAG")))
			for _, ext := range table.Extensions() {
				fmt.Fprintf(out, "%-10s %s\n", ext, table[ext])
			}
			return nil
		},
	}
}
