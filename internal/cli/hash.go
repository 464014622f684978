package cli

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anchoredit/anchoredit/internal/hashline"
)

var hashCmd = &cobra.Command{
	Use:   "hash [text...]",
	Short: "Print the two-hex-digit anchor hash of each argument (or stdin line)",
	Long: `Hash prints the anchor hash the engine computes for a line of text: all
whitespace is removed before hashing, so "x := 1" and "x:=1" share a hash.
With no arguments, lines are read from stdin and printed in anchored
LINE:HASH|content form.`,
	RunE: runHash,
}

func init() {
	RootCmd.AddCommand(hashCmd)
}

func runHash(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if len(args) > 0 {
		for _, a := range args {
			fmt.Fprintf(out, "%s %s\n", hashline.Hash(a), a)
		}
		return nil
	}
	sc := bufio.NewScanner(cmd.InOrStdin())
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	n := 0
	for sc.Scan() {
		n++
		fmt.Fprintln(out, hashline.Format(n, sc.Text()))
	}
	return sc.Err()
}
