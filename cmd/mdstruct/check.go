package main

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/tkaine/mdstruct/internal/mdfile"
	"github.com/tkaine/mdstruct/internal/parse"
	"github.com/tkaine/mdstruct/internal/validate"
)

var (
	checkOKStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))

	checkErrStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	checkDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Validate heading structure",
	Long: `check verifies that every heading uses 1-6 '#' characters followed by
exactly one space and a title, and that heading levels only deepen one
step at a time. All violations are reported, with line numbers.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := mdfile.Read(args[0])
		if err != nil {
			return err
		}

		doc := parse.Build(content)
		report := validate.Check(doc.Root)

		out := cmd.OutOrStdout()
		if report.Valid {
			fmt.Fprintln(out, checkOKStyle.Render("✓ heading structure OK"))
			if report.Note != "" {
				fmt.Fprintln(out, checkDimStyle.Render(report.Note))
				return nil
			}
			fmt.Fprintln(out, checkDimStyle.Render(fmt.Sprintf("%d headings", report.HeadingCount)))
			levels := make([]int, 0, len(report.LevelCounts))
			for lv := range report.LevelCounts {
				levels = append(levels, lv)
			}
			sort.Ints(levels)
			for _, lv := range levels {
				fmt.Fprintln(out, checkDimStyle.Render(fmt.Sprintf("  h%d: %d", lv, report.LevelCounts[lv])))
			}
			return nil
		}

		fmt.Fprintln(out, checkErrStyle.Render(fmt.Sprintf("✗ %d violation(s)", len(report.Violations))))
		for _, v := range report.Violations {
			fmt.Fprintln(out, "  "+v.String())
		}
		return fmt.Errorf("%s: invalid heading structure", args[0])
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
