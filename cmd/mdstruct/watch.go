package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/tkaine/mdstruct/internal/mdfile"
	"github.com/tkaine/mdstruct/internal/numbering"
	"github.com/tkaine/mdstruct/internal/parse"
	"github.com/tkaine/mdstruct/internal/render"
)

const watchDebounce = 300 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch <file>...",
	Short: "Re-number files whenever they change",
	Long: `watch monitors the given Markdown files and re-applies chapter
numbering in place after every save. Numbering is idempotent, so a file
that is already numbered is left untouched and does not re-trigger.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		targets := make(map[string]bool, len(args))
		dirs := make(map[string]bool)
		for _, arg := range args {
			if err := mdfile.CheckPath(arg); err != nil {
				return err
			}
			abs, err := filepath.Abs(arg)
			if err != nil {
				return err
			}
			targets[abs] = true
			dirs[filepath.Dir(abs)] = true
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return err
		}
		defer watcher.Close()

		// Watch directories, not files: editors that write via
		// rename-and-replace would otherwise drop the watch.
		for dir := range dirs {
			if err := watcher.Add(dir); err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "watching %d file(s)\n", len(targets))

		pending := make(map[string]*time.Timer)
		renumbered := make(chan string)
		for {
			select {
			case <-cmd.Context().Done():
				return nil
			case path := <-renumbered:
				fmt.Fprintln(out, checkOKStyle.Render("✓ ")+path)
			case ev, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				abs, err := filepath.Abs(ev.Name)
				if err != nil || !targets[abs] {
					continue
				}
				if t, ok := pending[abs]; ok {
					t.Stop()
				}
				path := abs
				pending[abs] = time.AfterFunc(watchDebounce, func() {
					if changed, err := renumberInPlace(path); err != nil {
						fmt.Fprintln(out, checkErrStyle.Render("✗ ")+path+" "+err.Error())
					} else if changed {
						// The loop may already be gone on cancellation.
						select {
						case renumbered <- path:
						case <-cmd.Context().Done():
						}
					}
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				fmt.Fprintln(out, checkErrStyle.Render("watch error: "+err.Error()))
			}
		}
	},
}

// renumberInPlace applies numbering and reports whether the file changed.
// Writing only on change keeps our own writes from re-triggering the watch.
func renumberInPlace(path string) (bool, error) {
	content, err := mdfile.Read(path)
	if err != nil {
		return false, err
	}
	doc := parse.Build(content)
	numbering.Apply(doc.Root, numberPolicy())
	out := render.Markdown(doc.Root, true)
	if out == content {
		return false, nil
	}
	return true, mdfile.Write(path, out)
}

func init() {
	watchCmd.Flags().BoolVar(&numberIgnoreH1, "ignore-h1", false, "leave level-1 headings unnumbered and number from level 2")
	watchCmd.Flags().BoolVar(&numberCJK, "cjk", false, "Chinese ordinals at the top level, Arabic numbering below")
	watchCmd.Flags().BoolVar(&numberCJKAll, "cjk-all", false, "Chinese ordinals at every level")
	rootCmd.AddCommand(watchCmd)
}
