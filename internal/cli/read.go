package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/anchoredit/anchoredit/internal/hashline"
	"github.com/anchoredit/anchoredit/internal/textfile"
)

var readPage int

var readCmd = &cobra.Command{
	Use:   "read <file>",
	Short: "List a file's lines in anchored LINE:HASH|content form",
	Args:  cobra.ExactArgs(1),
	RunE:  runRead,
}

func init() {
	readCmd.Flags().IntVar(&readPage, "page", 1, "1-based page to show")
	RootCmd.AddCommand(readCmd)
}

func runRead(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	f, err := textfile.Load(args[0])
	if err != nil {
		return err
	}
	var lines []string
	if f.Content != "" {
		lines = strings.Split(strings.TrimSuffix(f.Content, "\n"), "\n")
	}

	totalPages := (len(lines) + cfg.PageLines - 1) / cfg.PageLines
	if totalPages == 0 {
		totalPages = 1
	}
	if readPage < 1 || readPage > totalPages {
		return fmt.Errorf("page %d out of range: %s has %d line(s), %d page(s)", readPage, args[0], len(lines), totalPages)
	}

	lo := (readPage - 1) * cfg.PageLines
	hi := lo + cfg.PageLines
	if hi > len(lines) {
		hi = len(lines)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: lines %d-%d of %d (page %d/%d)\n", args[0], lo+1, hi, len(lines), readPage, totalPages)
	fmt.Fprint(cmd.OutOrStdout(), hashline.FormatLines(lines[lo:hi], lo))
	return nil
}
