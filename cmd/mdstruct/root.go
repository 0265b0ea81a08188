package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mdstruct",
	Short: "Markdown heading structure toolkit",
	Long: `mdstruct parses Markdown documents into a heading tree and can number
chapters, strip existing numbering, validate heading structure, and
localize remote images. It also runs as an HTTP service (see "serve").`,
	SilenceUsage: true,
}
