package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/honeybbq/sfbootconfig/backend/sfboot"
	"github.com/honeybbq/sfbootconfig/internal/format"
	"github.com/honeybbq/sfbootconfig/pkg/sfbootconfig"
	"github.com/honeybbq/sfbootconfig/pkg/targetlock"
)

func newTaskCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Run a flat JSON parameter set read from stdin",
		Long: `Reads a JSON object such as
  {"adapter": "enp196s0f1np1", "link_speed": "10g", "boot_image": "optionrom"}
from stdin. "adapter" selects the target, every other key is an attribute.
Prints {"sfboot": <reported config>} as JSON.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := io.ReadAll(a.stdin)
			if err != nil {
				return fmt.Errorf("read params: %w", err)
			}
			params, err := sfbootconfig.UnmarshalMapJSON(data)
			if err != nil {
				return err
			}

			b := a.backend(sfbootconfig.ParseOptions{})
			unlock, err := a.locks.Lock(cmd.Context(), taskLockKey(params))
			if err != nil {
				return err
			}
			defer unlock()

			result, err := sfboot.RunTask(cmd.Context(), b, params)
			if err != nil {
				return err
			}
			out := a.out
			if out == format.Table {
				out = format.JSON
			}
			return format.NewPrinter(cmd.OutOrStdout(), out).Map(result)
		},
	}
	return cmd
}

func taskLockKey(params map[string]any) string {
	if name, ok := params[sfboot.TaskAdapterKey].(string); ok && name != "" {
		return name
	}
	return targetlock.GlobalKey
}
