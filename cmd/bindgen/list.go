package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/wippyai/bbgo/bindgen"
)

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list <schema>",
		Short: "Print the resolved methods of a schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			decls, err := loadSchema(rootOpts, args[0])
			if err != nil {
				return err
			}
			methods, err := bindgen.Resolve(decls)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, m := range methods {
				fmt.Fprintf(w, "%s\t%s\n", m.Name, m.Signature())
			}
			return w.Flush()
		},
	}
}
