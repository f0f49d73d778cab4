package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/agusespa/testsmith/internal/prompts"
	"github.com/spf13/cobra"
)

func NewPromptsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prompts",
		Short: "Inspect the system prompts sent to the model",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List prompt names",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tDESCRIPTION")
			for _, name := range prompts.ListPrompts() {
				p, err := prompts.GetPrompt(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%s\n", p.Name, p.Description)
			}
			return w.Flush()
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show <name>",
		Short: "Print a prompt's raw template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := prompts.GetPrompt(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), p.Template)
			return nil
		},
	})
	return cmd
}
