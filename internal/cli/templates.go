package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/agusespa/testsmith/internal/templates"
	"github.com/spf13/cobra"
)

func NewTemplatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List and render test-case templates",
	}
	cmd.AddCommand(newTemplatesListCmd())
	cmd.AddCommand(newTemplatesRenderCmd())
	return cmd
}

func newTemplatesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tCATEGORY\tDESCRIPTION")
			for _, info := range templates.List() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", info.Name, info.Category, info.Description)
			}
			return w.Flush()
		},
	}
}

func newTemplatesRenderCmd() *cobra.Command {
	var params map[string]string

	cmd := &cobra.Command{
		Use:   "render <name>",
		Short: "Render a template into a test case",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := templates.Params{}
			for k, v := range params {
				p[k] = v
			}
			tc, err := templates.Render(args[0], p)
			if err != nil {
				return err
			}
			return writeJSON(cmd, tc)
		},
	}

	cmd.Flags().StringToStringVar(&params, "param", nil, "Template parameter key=value (repeatable)")
	return cmd
}
