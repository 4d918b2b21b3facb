package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rovshanmuradov/launch-economics/internal/pricing"
)

type simulateOutput struct {
	BuyIn        float64                `json:"buy_in"`
	Result       pricing.Result         `json:"result"`
	Severity     pricing.ImpactSeverity `json:"severity"`
	Warning      string                 `json:"warning,omitempty"`
	MinTokensOut float64                `json:"min_tokens_out"`
}

func newSimulateCmd(a *app) *cobra.Command {
	var (
		buyIn     float64
		marketCap float64
		supply    float64
		sweep     []float64
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Estimate tokens received and price impact of an initial buy",
		RunE: func(cmd *cobra.Command, _ []string) error {
			buyIns := sweep
			if len(buyIns) == 0 {
				buyIns = []float64{buyIn}
			}

			results := a.simulator.Sweep(buyIns, marketCap, supply)
			slippage := a.cfg.Slippage()

			out := make([]simulateOutput, 0, len(results))
			for i, r := range results {
				severity := pricing.Severity(r.PriceImpact)
				out = append(out, simulateOutput{
					BuyIn:        buyIns[i],
					Result:       r,
					Severity:     severity,
					Warning:      pricing.Warning(severity),
					MinTokensOut: pricing.MinTokensOut(r, slippage),
				})
			}

			w := cmd.OutOrStdout()
			if a.jsonOutput {
				return writeJSON(w, out)
			}
			for _, o := range out {
				if o.Result.IsZero() {
					fmt.Fprintf(w, "buy-in %g: no initial buy (non-positive buy-in or market cap)\n", o.BuyIn)
					continue
				}
				fmt.Fprintf(w, "buy-in %g: %.4f tokens, impact %.4f%% (%s), effective price %.6e, new price %.6e, min out %.0f\n",
					o.BuyIn,
					o.Result.TokensReceived,
					o.Result.PriceImpact,
					o.Severity,
					o.Result.EffectivePrice,
					o.Result.NewPrice,
					o.MinTokensOut)
				if o.Warning != "" {
					fmt.Fprintf(w, "  %s\n", o.Warning)
				}
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&buyIn, "buy-in", 0, "initial buy amount in the paired asset")
	cmd.Flags().Float64Var(&marketCap, "market-cap", 0, "starting market cap in the paired asset")
	cmd.Flags().Float64Var(&supply, "supply", 0, "total token supply (default from config)")
	cmd.Flags().Float64SliceVar(&sweep, "sweep", nil, "simulate several buy-in sizes, comma separated")

	return cmd
}
