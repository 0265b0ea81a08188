package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tkaine/mdstruct/internal/mdfile"
)

var tailCmd = &cobra.Command{
	Use:   "tail <file>",
	Short: "Append the sentinel tail heading",
	Long: `tail appends "` + mdfile.TailHeading + `" as the last line of the file, giving
section-oriented consumers a terminal boundary after the real content.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := mdfile.AppendTail(args[0]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tailCmd)
}
