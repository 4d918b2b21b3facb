package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rovshanmuradov/launch-economics/internal/fees"
)

// errInvalid makes the process exit non-zero after the findings were printed.
var errInvalid = errors.New("validation failed")

func newFeeCheckCmd(a *app) *cobra.Command {
	var (
		mode    string
		bps     int
		baseBps int
		maxBps  int
	)

	cmd := &cobra.Command{
		Use:   "fee-check",
		Short: "Validate a fee rate and show how it splits",
		RunE: func(cmd *cobra.Command, _ []string) error {
			feeMode, err := fees.ParseFeeMode(mode)
			if err != nil {
				return err
			}
			settings := fees.Static(bps)
			if feeMode == fees.FeeModeDynamic {
				settings = fees.Dynamic(baseBps, maxBps)
			}

			check := settings.Check(a.allocator)
			display := a.allocator.DisplayInfo(settings.PreviewBps())

			w := cmd.OutOrStdout()
			if a.jsonOutput {
				if err := writeJSON(w, struct {
					Settings fees.FeeSettings `json:"settings"`
					Check    fees.FeeRateCheck `json:"check"`
					Display  fees.FeeDisplay   `json:"display"`
				}{settings, check, display}); err != nil {
					return err
				}
			} else {
				writeDisplay(w, display)
				if check.Valid {
					fmt.Fprintln(w, "fee rate is valid")
				} else {
					fmt.Fprintf(w, "  error: %s\n", check.Error)
				}
			}

			if !check.Valid {
				return errInvalid
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "static", "fee mode: static or dynamic")
	cmd.Flags().IntVar(&bps, "bps", 0, "static fee rate in bps")
	cmd.Flags().IntVar(&baseBps, "base-bps", 0, "dynamic base fee in bps")
	cmd.Flags().IntVar(&maxBps, "max-bps", 0, "dynamic max fee in bps")

	return cmd
}

func newAllocateCmd(a *app) *cobra.Command {
	var (
		bps        int
		recipients []string
		payee      string
	)

	cmd := &cobra.Command{
		Use:   "allocate",
		Short: "Finalize a fee distribution with the mandatory platform share",
		Example: `  launchctl allocate --platform 0xabc... --bps 100 --simple 0x111...
  launchctl allocate --bps 100 --recipient 0x111...:5000:Creator --recipient 0x222...:2500`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if payee == "" && len(recipients) == 0 {
				return errors.New("either --simple or at least one --recipient is required")
			}

			var distribution []fees.RewardRecipient
			if payee != "" {
				distribution = a.allocator.SimpleSplit(payee)
			} else {
				requested := make([]fees.RewardRecipient, 0, len(recipients))
				for _, s := range recipients {
					r, err := parseRecipient(s)
					if err != nil {
						return err
					}
					requested = append(requested, r)
				}
				distribution = a.allocator.Allocate(bps, requested)
			}

			check := a.allocator.ValidateDistribution(distribution)
			rates := a.allocator.EffectiveRates(bps, distribution)

			w := cmd.OutOrStdout()
			if a.jsonOutput {
				if err := writeJSON(w, struct {
					Recipients []fees.RewardRecipient `json:"recipients"`
					Check      fees.DistributionCheck `json:"check"`
					Rates      []fees.RecipientRate   `json:"rates"`
				}{distribution, check, rates}); err != nil {
					return err
				}
			} else {
				if err := writeRecipients(w, rates); err != nil {
					return err
				}
				writeCheck(w, check)
			}

			if !check.Valid {
				return errInvalid
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&bps, "bps", 100, "fee rate in bps used for effective rates")
	cmd.Flags().StringArrayVar(&recipients, "recipient", nil, "recipient as address:bps[:label], repeatable")
	cmd.Flags().StringVar(&payee, "simple", "", "use the simple split with this payee")

	return cmd
}
