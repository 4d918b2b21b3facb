package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/launch-economics/internal/deploy"
	"github.com/rovshanmuradov/launch-economics/internal/export"
	"github.com/rovshanmuradov/launch-economics/internal/plan"
	"github.com/rovshanmuradov/launch-economics/internal/preview"
)

func (a *app) evaluatePlans(ctx context.Context, path string) ([]preview.Report, error) {
	done := a.log.TrackPerformance("evaluate_plans")
	defer done()

	plans, err := plan.NewManager(a.log.WithComponent("plan")).LoadPlans(path)
	if err != nil {
		return nil, err
	}

	svc := preview.NewService(a.allocator, a.simulator, a.cfg.Slippage(), a.cfg.Workers, a.log.Logger)
	return svc.EvaluateAll(ctx, plans)
}

func writeReport(w io.Writer, r *preview.Report) error {
	status := "ready"
	if !r.Ready() {
		status = "blocked"
	}
	fmt.Fprintf(w, "== %s [%s] %s\n", r.Plan, r.Symbol, status)
	writeDisplay(w, r.Display)
	if r.MaxDisplay != nil {
		fmt.Fprint(w, "at max rate: ")
		writeDisplay(w, *r.MaxDisplay)
	}
	if err := writeRecipients(w, r.Rates); err != nil {
		return err
	}
	if r.InitialBuy {
		fmt.Fprintf(w, "initial buy %g: %.4f tokens, impact %.4f%% (%s), min out %.0f\n",
			r.BuyIn, r.Pricing.TokensReceived, r.Pricing.PriceImpact, r.Severity, r.MinTokensOut)
		if r.ImpactWarning != "" {
			fmt.Fprintf(w, "  %s\n", r.ImpactWarning)
		}
	}
	if !r.FeeCheck.Valid {
		fmt.Fprintf(w, "  error: %s\n", r.FeeCheck.Error)
	}
	writeCheck(w, r.Distribution)
	return nil
}

func newPreviewCmd(a *app) *cobra.Command {
	var (
		exportDir string
		format    string
		onlyReady bool
	)

	cmd := &cobra.Command{
		Use:   "preview [plans.yaml]",
		Short: "Evaluate launch plans and optionally export the reports",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reports, err := a.evaluatePlans(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if a.jsonOutput {
				if err := writeJSON(w, reports); err != nil {
					return err
				}
			} else {
				for i := range reports {
					if err := writeReport(w, &reports[i]); err != nil {
						return err
					}
				}
			}

			if exportDir == "" {
				return nil
			}
			exportFormat, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			path, err := export.NewReportExporter(a.log.WithComponent("export")).ExportReports(reports, export.ExportOptions{
				Format:    exportFormat,
				OnlyReady: onlyReady,
				OutputDir: exportDir,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "exported to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&exportDir, "export", "", "write reports to this directory")
	cmd.Flags().StringVar(&format, "format", "csv", "export format: csv or json")
	cmd.Flags().BoolVar(&onlyReady, "only-ready", false, "export only plans that passed validation")

	return cmd
}

func newRenderCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "render [plans.yaml]",
		Short: "Build SDK token configs for ready plans (dry run, nothing is deployed)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reports, err := a.evaluatePlans(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			builder := deploy.NewBuilder(a.log.Logger)
			backend := deploy.NewDryRunBackend(a.log.WithComponent("deploy"))
			opts := deploy.SubmitOptions{
				Retries:    a.cfg.DeployRetries,
				RetryDelay: a.cfg.RetryDelay(),
				Logger:     a.log.WithComponent("deploy"),
			}

			configs := make([]deploy.TokenConfig, 0, len(reports))
			var failed []error
			for _, r := range reports {
				planLog := a.log.WithPlan(r.Plan)
				cfg, err := builder.Build(r)
				if err != nil {
					planLog.Warn("Plan skipped", zap.Error(err))
					failed = append(failed, err)
					continue
				}
				if _, err := deploy.Submit(cmd.Context(), backend, cfg, opts); err != nil && !errors.Is(err, deploy.ErrDryRun) {
					a.log.LogError("Plan submission failed", err,
						zap.String("plan", r.Plan), zap.String("symbol", cfg.Symbol))
					failed = append(failed, err)
					continue
				}
				planLog.Debug("Token config rendered", zap.String("symbol", cfg.Symbol))
				configs = append(configs, cfg)
			}

			if err := writeJSON(cmd.OutOrStdout(), configs); err != nil {
				return err
			}
			return errors.Join(failed...)
		},
	}
}
