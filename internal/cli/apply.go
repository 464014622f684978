package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/anchoredit/anchoredit/internal/lineedit"
	"github.com/anchoredit/anchoredit/internal/linediff"
	"github.com/anchoredit/anchoredit/internal/textfile"
)

var (
	applyEditsPath string
	applyDryRun    bool
)

var applyCmd = &cobra.Command{
	Use:   "apply <file>",
	Short: "Apply a JSON batch of anchor-based edits to a file",
	Long: `Apply reads a JSON array of edit operations (from --edits or stdin) and
applies it to the file as one atomic batch. Operations reference lines by the
LINE:HASH anchors printed by "read" and "grep". On any stale anchor the file
is left untouched and the refreshed anchors are printed.`,
	Args: cobra.ExactArgs(1),
	RunE: runApply,
}

func init() {
	applyCmd.Flags().StringVar(&applyEditsPath, "edits", "-", `JSON edits file, or "-" for stdin`)
	applyCmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "validate and print the diff without writing")
	RootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	log := logger(cfg)

	var raw []byte
	if applyEditsPath == "-" {
		raw, err = io.ReadAll(cmd.InOrStdin())
	} else {
		raw, err = os.ReadFile(applyEditsPath)
	}
	if err != nil {
		return fmt.Errorf("read edits: %w", err)
	}

	edits, err := lineedit.DecodeBatch(raw)
	if err != nil {
		return err
	}
	if len(edits) == 0 {
		return fmt.Errorf("no edit operations in batch")
	}

	f, err := textfile.Load(args[0])
	if err != nil {
		return err
	}

	original := f.Content
	res, err := lineedit.Apply(cmd.Context(), original, edits)
	if err != nil {
		log.Debug().Str("file", args[0]).Err(err).Msg("apply failed")
		return err
	}

	if !applyDryRun {
		if err := f.Save(res.NewContent); err != nil {
			return err
		}
	}
	log.Debug().Str("file", args[0]).Int("edits", len(edits)).
		Int("first_changed_line", res.FirstChangedLine).Bool("dry_run", applyDryRun).Msg("applied")

	out := cmd.OutOrStdout()
	if applyDryRun {
		fmt.Fprintf(out, "would edit %s", args[0])
	} else {
		fmt.Fprintf(out, "edited %s", args[0])
	}
	if res.FirstChangedLine > 0 {
		fmt.Fprintf(out, " (first change at line %d)", res.FirstChangedLine)
	}
	fmt.Fprintln(out)
	for _, w := range res.Warnings {
		fmt.Fprintf(out, "warning: %s\n", w)
	}
	for _, n := range res.Noops {
		fmt.Fprintf(out, "note: edit %d (%s) was already applied\n", n.EditIndex+1, n.Location)
	}
	if res.Diff != "" {
		// Re-render at the configured context width when it differs from the
		// engine default.
		diff := res.Diff
		if cfg.DiffContext != linediff.DefaultContext {
			diff = linediff.Render(linediff.Compute(splitLines(original), splitLines(res.NewContent)), cfg.DiffContext)
		}
		fmt.Fprintln(out, diff)
	}
	return nil
}

func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	var lines []string
	start := 0
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			lines = append(lines, content[start:i])
			start = i + 1
		}
	}
	if start < len(content) {
		lines = append(lines, content[start:])
	}
	return lines
}
