package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ark-forge/mcp-eu-ai-act/engine"
	"github.com/ark-forge/mcp-eu-ai-act/logger"
	"github.com/ark-forge/mcp-eu-ai-act/output"
)

func (a *app) scanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Detect AI frameworks in a project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := a.projectRoot(args)
			if err != nil {
				return err
			}
			res, err := a.engine().Scan(cmd.Context(), root, engine.ScanOptions{FollowImports: a.cfg.FollowImports})
			if err != nil {
				return err
			}
			return a.out.Write(output.KindScan, res)
		},
	}
	a.flags.BindFollowImports(cmd.Flags())
	return cmd
}

func (a *app) gdprCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gdpr [path]",
		Short: "Detect personal-data processing in a project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := a.projectRoot(args)
			if err != nil {
				return err
			}
			res, err := a.engine().ScanPersonalData(cmd.Context(), root, engine.ScanOptions{FollowImports: a.cfg.FollowImports})
			if err != nil {
				return err
			}
			return a.out.Write(output.KindGDPR, res)
		},
	}
	a.flags.BindFollowImports(cmd.Flags())
	return cmd
}

func (a *app) checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [path]",
		Short: "Evaluate the compliance checklist of a risk category",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := a.projectRoot(args)
			if err != nil {
				return err
			}
			res, err := a.engine().CheckCompliance(cmd.Context(), root, a.cfg.RiskCategory)
			if err != nil {
				return err
			}
			return a.out.Write(output.KindCompliance, res)
		},
	}
	a.flags.BindRisk(cmd.Flags())
	return cmd
}

func (a *app) reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [path]",
		Short: "Scan, check and assemble a compliance report",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := a.projectRoot(args)
			if err != nil {
				return err
			}
			res, err := a.engine().Report(cmd.Context(), root, a.cfg.RiskCategory, engine.ReportOptions{
				FollowImports: a.cfg.FollowImports,
				Correlate:     a.cfg.Correlate,
			})
			if err != nil {
				return err
			}
			return a.out.Write(output.KindReport, res)
		},
	}
	a.flags.BindRisk(cmd.Flags())
	a.flags.BindFollowImports(cmd.Flags())
	a.flags.BindCorrelate(cmd.Flags())
	return cmd
}

func (a *app) combinedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "combined [path]",
		Short: "Correlate AI framework usage with personal-data processing",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := a.projectRoot(args)
			if err != nil {
				return err
			}
			res, err := a.engine().CombinedReport(cmd.Context(), root, a.cfg.RiskCategory, engine.ScanOptions{FollowImports: a.cfg.FollowImports})
			if err != nil {
				return err
			}
			return a.out.Write(output.KindCombined, res)
		},
	}
	a.flags.BindRisk(cmd.Flags())
	a.flags.BindFollowImports(cmd.Flags())
	return cmd
}

func (a *app) watchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [path]",
		Short: "Rerun the combined report whenever project sources change",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := a.projectRoot(args)
			if err != nil {
				return err
			}
			eng := a.engine()
			opts := engine.ScanOptions{FollowImports: a.cfg.FollowImports}
			// A bad tier or a missing root fails here, before watching starts.
			first, err := eng.CombinedReport(cmd.Context(), root, a.cfg.RiskCategory, opts)
			if err != nil {
				return err
			}
			w := newWatcher(root, a.cfg)
			w.run = func(ctx context.Context) error {
				res, err := eng.CombinedReport(ctx, root, a.cfg.RiskCategory, opts)
				if err != nil {
					return err
				}
				return a.out.Write(output.KindCombined, res)
			}
			w.onError = func(err error) {
				logger.Errorf("Rescan of %s failed: %v", root, err)
				a.fail(err)
			}
			if err := a.out.Write(output.KindCombined, first); err != nil {
				return err
			}
			return w.Run(cmd.Context())
		},
	}
	a.flags.BindRisk(cmd.Flags())
	a.flags.BindFollowImports(cmd.Flags())
	a.flags.BindDebounce(cmd.Flags())
	return cmd
}
