package main

import (
	"github.com/spf13/cobra"

	domain "github.com/honeybbq/sfbootconfig/domain/sfboot"
	"github.com/honeybbq/sfbootconfig/internal/format"
)

func newAttributesCmd(a *app) *cobra.Command {
	var markdown bool
	cmd := &cobra.Command{
		Use:   "attributes",
		Short: "List the attributes sfbootcfg understands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := a.printer(cmd)
			if markdown {
				p = p.WithMode(format.Markdown)
			}
			return p.Attributes(domain.DefaultDictionary())
		},
	}
	cmd.Flags().BoolVar(&markdown, "markdown", false, "render the table as Markdown")
	return cmd
}
