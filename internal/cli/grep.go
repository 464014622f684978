package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anchoredit/anchoredit/internal/filegrep"
	"github.com/anchoredit/anchoredit/internal/textfile"
)

var grepContext int

var grepCmd = &cobra.Command{
	Use:   "grep <file> <pattern>",
	Short: "Search a file, printing anchored matches with context",
	Args:  cobra.ExactArgs(2),
	RunE:  runGrep,
}

func init() {
	grepCmd.Flags().IntVar(&grepContext, "context", -1, "context lines around each match (default from config)")
	RootCmd.AddCommand(grepCmd)
}

func runGrep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	contextLines := grepContext
	if contextLines < 0 {
		contextLines = cfg.GrepContext
	}

	f, err := textfile.Load(args[0])
	if err != nil {
		return err
	}
	matches, err := filegrep.Search(f.Content, args[1], 0)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "no matches for %q in %s\n", args[1], args[0])
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d match(es) for %q in %s\n", len(matches), args[1], args[0])
	fmt.Fprintln(cmd.OutOrStdout(), filegrep.Render(f.Content, matches, contextLines))
	return nil
}
