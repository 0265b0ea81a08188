package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tkaine/mdstruct/internal/mdfile"
	"github.com/tkaine/mdstruct/internal/mdtree"
	"github.com/tkaine/mdstruct/internal/numbering"
	"github.com/tkaine/mdstruct/internal/parse"
	"github.com/tkaine/mdstruct/internal/render"
)

var (
	numberIgnoreH1 bool
	numberCJK      bool
	numberCJKAll   bool
	numberOutput   string
	numberNewFile  bool
)

var numberCmd = &cobra.Command{
	Use:   "number <file>",
	Short: "Add chapter numbering to headings",
	Long: `number strips any existing numbering prefixes from headings, then
assigns fresh hierarchical chapter numbers. With --cjk the top level uses
Chinese ordinals and sublevels stay Arabic; --cjk-all uses Chinese
ordinals at every level.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := mdfile.Read(args[0])
		if err != nil {
			return err
		}

		doc := parse.Build(content)
		numbering.Apply(doc.Root, numberPolicy())
		out := render.Markdown(doc.Root, true)

		dest := mdfile.OutputPath(args[0], numberOutput)
		if numberNewFile && numberOutput == "" {
			dest = mdfile.DerivedPath(args[0], "numed")
		}
		if err := mdfile.Write(dest, out); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), dest)
		return nil
	},
}

func numberPolicy() mdtree.Policy {
	return mdtree.Policy{
		IgnoreFirstLevel:  numberIgnoreH1,
		LocalizedOrdinals: numberCJK || numberCJKAll,
		ArabicSublevels:   !numberCJKAll,
	}
}

func init() {
	numberCmd.Flags().BoolVar(&numberIgnoreH1, "ignore-h1", false, "leave level-1 headings unnumbered and number from level 2")
	numberCmd.Flags().BoolVar(&numberCJK, "cjk", false, "Chinese ordinals at the top level, Arabic numbering below")
	numberCmd.Flags().BoolVar(&numberCJKAll, "cjk-all", false, "Chinese ordinals at every level")
	numberCmd.Flags().StringVarP(&numberOutput, "output", "o", "", "write result to this path instead of in place")
	numberCmd.Flags().BoolVar(&numberNewFile, "new", false, "write result next to the input as <name>.numed.md")
	rootCmd.AddCommand(numberCmd)
}
