package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/honeybbq/sfbootconfig/pkg/sfbootconfig"
)

func newParseCmd(a *app) *cobra.Command {
	var (
		sections     []string
		unrecognized bool
	)
	cmd := &cobra.Command{
		Use:   "parse [file|-]",
		Short: "Decode a saved sfboot report without running sfboot",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if len(args) == 0 || args[0] == "-" {
				data, err = io.ReadAll(a.stdin)
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("read report: %w", err)
			}

			b := a.backend(sfbootconfig.ParseOptions{Sections: sections, KeepUnrecognized: unrecognized})
			cfg, err := b.Decode(cmd.Context(), data)
			if err != nil {
				return err
			}
			return a.printer(cmd).Config(cfg)
		},
	}
	cmd.Flags().StringSliceVar(&sections, "section", nil, "only decode these sections")
	cmd.Flags().BoolVar(&unrecognized, "unrecognized", false, "list report labels missing from the attribute table")
	return cmd
}
