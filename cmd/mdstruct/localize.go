package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/tkaine/mdstruct/internal/localize"
	"github.com/tkaine/mdstruct/internal/mdfile"
	"github.com/tkaine/mdstruct/internal/parse"
	"github.com/tkaine/mdstruct/internal/render"
)

var (
	localizeDir         string
	localizePattern     string
	localizeTimeout     time.Duration
	localizeConcurrency int
	localizeOutput      string
)

var localizeCmd = &cobra.Command{
	Use:   "localize <file>",
	Short: "Download remote images and rewrite references to local paths",
	Long: `localize downloads every remote image the document references into an
asset directory next to the file and rewrites the references to relative
local paths. Failed downloads are reported; the rest of the document is
still rewritten.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := mdfile.Read(args[0])
		if err != nil {
			return err
		}

		log := slog.New(slog.NewTextHandler(os.Stderr, nil))
		loc := localize.New(localize.Config{
			Dir:           filepath.Join(filepath.Dir(args[0]), localizeDir),
			RefDir:        localizeDir,
			Pattern:       localizePattern,
			Timeout:       localizeTimeout,
			MaxConcurrent: localizeConcurrency,
		}, log)

		doc := parse.Build(content)
		results, err := loc.Run(cmd.Context(), doc.Root)
		if err != nil {
			return err
		}

		dest := mdfile.OutputPath(args[0], localizeOutput)
		if err := mdfile.Write(dest, render.Markdown(doc.Root, false)); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		failed := 0
		for _, r := range results {
			if r.Error != "" {
				failed++
				fmt.Fprintln(out, checkErrStyle.Render("✗ "+r.URL)+" "+checkDimStyle.Render(r.Error))
				continue
			}
			fmt.Fprintln(out, checkOKStyle.Render("✓ ")+r.URL+" -> "+r.LocalPath)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d images failed to download", failed, len(results))
		}
		return nil
	},
}

func init() {
	localizeCmd.Flags().StringVar(&localizeDir, "dir", "assets", "asset directory, relative to the document")
	localizeCmd.Flags().StringVar(&localizePattern, "pattern", "img_{index}_{hash}", "asset file name pattern")
	localizeCmd.Flags().DurationVar(&localizeTimeout, "timeout", 10*time.Second, "per-download timeout")
	localizeCmd.Flags().IntVar(&localizeConcurrency, "concurrency", 4, "maximum parallel downloads")
	localizeCmd.Flags().StringVarP(&localizeOutput, "output", "o", "", "write result to this path instead of in place")
	rootCmd.AddCommand(localizeCmd)
}
