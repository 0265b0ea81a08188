package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tkaine/mdstruct/internal/mdfile"
	"github.com/tkaine/mdstruct/internal/parse"
	"github.com/tkaine/mdstruct/internal/render"
)

var (
	stripOutput  string
	stripNewFile bool
)

var stripCmd = &cobra.Command{
	Use:   "strip <file>",
	Short: "Remove chapter numbering from headings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := mdfile.Read(args[0])
		if err != nil {
			return err
		}

		doc := parse.Build(content)
		out := render.Markdown(doc.Root, false)

		dest := mdfile.OutputPath(args[0], stripOutput)
		if stripNewFile && stripOutput == "" {
			dest = mdfile.DerivedPath(args[0], "unnumed")
		}
		if err := mdfile.Write(dest, out); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), dest)
		return nil
	},
}

func init() {
	stripCmd.Flags().StringVarP(&stripOutput, "output", "o", "", "write result to this path instead of in place")
	stripCmd.Flags().BoolVar(&stripNewFile, "new", false, "write result next to the input as <name>.unnumed.md")
	rootCmd.AddCommand(stripCmd)
}
