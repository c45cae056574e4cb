package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/campus-ats/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog [name]",
	Short: "List predefined jobs or print one as JobRequirement JSON",
	Long:  "Without arguments, list the names of the predefined job requirements. With a name, print that job; names match case-insensitively and partially.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCatalog,
}

var catalogOutput string

func init() {
	catalogCmd.Flags().StringVarP(&catalogOutput, "out", "o", "", "Path to output JobRequirement JSON file (stdout when omitted)")

	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(cmd *cobra.Command, args []string) error {
	c := catalog.Default()

	if len(args) == 0 {
		for _, name := range c.Names() {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	}

	job, ok := c.Get(args[0])
	if !ok {
		return fmt.Errorf("unknown job %q (available: %v)", args[0], c.Names())
	}
	return writeJSON(cmd.OutOrStdout(), catalogOutput, job)
}
