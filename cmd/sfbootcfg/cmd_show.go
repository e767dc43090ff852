package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/honeybbq/sfbootconfig/backend/sfboot"
	"github.com/honeybbq/sfbootconfig/pkg/sfbootconfig"
)

func newShowCmd(a *app) *cobra.Command {
	var (
		scope        string
		unrecognized bool
	)
	cmd := &cobra.Command{
		Use:   "show [section...]",
		Short: "Run sfboot and print the decoded report",
		Long: `Runs sfboot without arguments and prints every reported section.

--scope global prints the NIC-wide attributes once, as section "global".
--scope adapter prints only the per-port attributes of each adapter.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			b := a.backend(sfbootconfig.ParseOptions{Sections: args, KeepUnrecognized: unrecognized})
			p := a.printer(cmd)

			switch scope {
			case "all":
				cfg, err := b.Read(ctx)
				if err != nil {
					return err
				}
				for _, name := range args {
					if cfg.Section(name) == nil {
						return fmt.Errorf("sfboot did not report section %q", name)
					}
				}
				return p.Config(cfg)
			case "global":
				global, err := sfboot.NewGlobalResource(b, b.Dictionary()).Get(ctx)
				if err != nil {
					return err
				}
				return p.Sections(global)
			case "adapter":
				sections, err := sfboot.NewAdapterResource(b, b.Dictionary()).Get(ctx)
				if err != nil {
					return err
				}
				return p.Sections(sections...)
			default:
				return fmt.Errorf("unknown scope %q (valid: all, global, adapter)", scope)
			}
		},
	}
	cmd.Flags().StringVar(&scope, "scope", "all", "all, global or adapter")
	cmd.Flags().BoolVar(&unrecognized, "unrecognized", false, "list report labels missing from the attribute table")
	return cmd
}
