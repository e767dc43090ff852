package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/honeybbq/sfbootconfig/backend/sfboot"
	domain "github.com/honeybbq/sfbootconfig/domain/sfboot"
	"github.com/honeybbq/sfbootconfig/pkg/sfbootconfig"
	sfsync "github.com/honeybbq/sfbootconfig/pkg/sync"
	"github.com/honeybbq/sfbootconfig/pkg/targetlock"
)

func newApplyCmd(a *app) *cobra.Command {
	var (
		files    []string
		parallel int
		verify   bool
	)
	cmd := &cobra.Command{
		Use:   "apply -f state.yaml [-f more.yaml]",
		Short: "Apply a desired-state file: global attributes first, then each adapter",
		Long: `Loads and merges the desired-state files (later files override earlier
keys, lists are replaced), applies the global attributes once and then
each adapter's attributes with -i <adapter>.

  global:
    boot_image: uefi
  adapters:
    enp196s0f1np1:
      link_speed: auto
      pf_vlans: [0, 100]`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if parallel < 1 {
				return fmt.Errorf("--parallel must be at least 1")
			}
			state, err := sfbootconfig.LoadStates(files...)
			if err != nil {
				return err
			}
			b := a.backend(sfbootconfig.ParseOptions{})
			global, adapters, err := state.Resolve(b.Dictionary())
			if err != nil {
				return err
			}
			if state.Empty() {
				fmt.Fprintln(cmd.OutOrStdout(), "nothing to apply")
				return nil
			}

			var (
				reported []*domain.Section
				diffs    []*sfsync.DiffResult
			)
			if len(global) > 0 {
				res := sfboot.NewGlobalResource(b, b.Dictionary())
				var section *domain.Section
				err := a.locks.Do(ctx, targetlock.GlobalKey, func(ctx context.Context) error {
					var err error
					section, err = res.Set(ctx, sfboot.GlobalName, global)
					return err
				})
				if err != nil {
					return fmt.Errorf("global: %w", err)
				}
				reported = append(reported, section)
				diffs = append(diffs, sfsync.Diff(global, section))
			}

			targets := state.Targets()
			sections := make([]*domain.Section, len(targets))
			targetDiffs := make([]*sfsync.DiffResult, len(targets))
			res := sfboot.NewAdapterResource(b, b.Dictionary())

			g, gctx := errgroup.WithContext(ctx)
			g.SetLimit(parallel)
			for i, name := range targets {
				i, name := i, name
				attrs := adapters[name]
				if len(attrs) == 0 {
					continue
				}
				g.Go(func() error {
					return a.locks.Do(gctx, name, func(ctx context.Context) error {
						section, err := res.Set(ctx, name, attrs)
						if err != nil {
							return fmt.Errorf("%s: %w", name, err)
						}
						a.logger.Info("adapter applied", zap.String("adapter", name), zap.Int("attributes", len(attrs)))
						sections[i] = section
						targetDiffs[i] = sfsync.Diff(attrs, section)
						return nil
					})
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}
			reported = append(reported, sections...)
			diffs = append(diffs, targetDiffs...)

			if err := a.printer(cmd).Sections(reported...); err != nil {
				return err
			}
			if !verify {
				return nil
			}
			var errs []error
			for _, d := range diffs {
				if err := d.Err(); err != nil {
					errs = append(errs, err)
				}
			}
			return errors.Join(errs...)
		},
	}
	cmd.Flags().StringArrayVarP(&files, "file", "f", nil, "desired-state YAML file (repeatable)")
	cmd.Flags().IntVar(&parallel, "parallel", 1, "adapters applied concurrently")
	cmd.Flags().BoolVar(&verify, "verify", false, "fail unless sfboot reports every requested value")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
