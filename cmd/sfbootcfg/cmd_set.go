package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	domain "github.com/honeybbq/sfbootconfig/domain/sfboot"
	"github.com/honeybbq/sfbootconfig/pkg/nxerrors"
	"github.com/honeybbq/sfbootconfig/pkg/sfbootconfig"
	sfsync "github.com/honeybbq/sfbootconfig/pkg/sync"
	"github.com/honeybbq/sfbootconfig/pkg/targetlock"
)

func newSetCmd(a *app) *cobra.Command {
	var (
		adapter string
		verify  bool
	)
	cmd := &cobra.Command{
		Use:   "set key=value...",
		Short: "Push attributes to sfboot and print what it reports afterwards",
		Example: `  sfbootcfg set boot_image=uefi vi_count=1024
  sfbootcfg set --adapter enp196s0f1np1 link_speed=auto pf_vlans=0,100 --verify`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			b := a.backend(sfbootconfig.ParseOptions{})

			attrs, err := parseAssignments(b.Dictionary(), args)
			if err != nil {
				return err
			}

			key := adapter
			if key == "" {
				key = targetlock.GlobalKey
			}
			var cfg *domain.Config
			err = a.locks.Do(ctx, key, func(ctx context.Context) error {
				var err error
				cfg, err = b.Apply(ctx, attrs, adapter)
				return err
			})
			if err != nil {
				return err
			}

			p := a.printer(cmd)
			if adapter != "" && cfg.Section(adapter) != nil {
				err = p.Sections(cfg.Section(adapter))
			} else {
				err = p.Config(cfg)
			}
			if err != nil || !verify {
				return err
			}

			cs := sfsync.Verify(adapter, attrs, cfg)
			if err := p.Diff(cs); err != nil {
				return err
			}
			return cs.Diff.Err()
		},
	}
	cmd.Flags().StringVarP(&adapter, "adapter", "i", "", "apply to this adapter only")
	cmd.Flags().BoolVar(&verify, "verify", false, "fail unless sfboot reports every requested value")
	return cmd
}

// parseAssignments turns key=value arguments into attributes typed the way
// the attribute's rule decodes them, so --verify compares like with like.
func parseAssignments(dict *domain.Dictionary, args []string) (domain.Attributes, error) {
	attrs := make(domain.Attributes, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, nxerrors.New(nxerrors.KindValidation, fmt.Errorf("expected key=value, got %q", arg))
		}
		if _, known := dict.Lookup(name); !known {
			return nil, nxerrors.New(nxerrors.KindValidation, fmt.Errorf("unknown attribute %q (see sfbootcfg attributes)", name))
		}
		attrs[name] = dict.Coerce(name, domain.String(strings.TrimSpace(value)))
	}
	return attrs, nil
}
