package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/anchoredit/anchoredit/internal/edittools"
)

var toolsJSON bool

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Describe the LLM tool surface (read_file, edit_file, grep_file)",
	Args:  cobra.NoArgs,
	RunE:  runTools,
}

func init() {
	toolsCmd.Flags().BoolVar(&toolsJSON, "json", false, "emit machine-readable tool descriptors")
	RootCmd.AddCommand(toolsCmd)
}

func runTools(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	tools := edittools.All()

	if toolsJSON {
		type descriptor struct {
			Name        string         `json:"name"`
			Description string         `json:"description"`
			Parameters  map[string]any `json:"parameters"`
			Required    []string       `json:"required"`
		}
		descriptors := make([]descriptor, 0, len(tools))
		for _, tool := range tools {
			info := tool.Info()
			descriptors = append(descriptors, descriptor(info))
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(descriptors)
	}

	for i, tool := range tools {
		if i > 0 {
			fmt.Fprintln(out)
		}
		info := tool.Info()
		fmt.Fprintf(out, "%s (required: %s)\n", info.Name, strings.Join(info.Required, ", "))
		for _, line := range strings.Split(info.Description, "\n") {
			fmt.Fprintf(out, "  %s\n", line)
		}
	}
	return nil
}
