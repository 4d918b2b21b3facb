// =============================================
// File: internal/preview/service.go
// =============================================
package preview

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rovshanmuradov/launch-economics/internal/fees"
	"github.com/rovshanmuradov/launch-economics/internal/plan"
	"github.com/rovshanmuradov/launch-economics/internal/pricing"
)

// DefaultWorkers limits concurrent evaluations when none is configured.
const DefaultWorkers = 4

// Service собирает превью запуска: комиссии, распределение и первоначальную покупку.
type Service struct {
	allocator *fees.Allocator
	simulator *pricing.Simulator
	slippage  pricing.SlippageConfig
	workers   int
	logger    *zap.Logger
}

// NewService wires the fee allocator and the pricing simulator. slippage is the
// default policy for plans that do not carry their own.
func NewService(allocator *fees.Allocator, simulator *pricing.Simulator, slippage pricing.SlippageConfig, workers int, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Service{
		allocator: allocator,
		simulator: simulator,
		slippage:  slippage,
		workers:   workers,
		logger:    logger.Named("preview"),
	}
}

// Evaluate builds the report for a single plan. It never fails: problems are
// recorded in the report's checks.
func (s *Service) Evaluate(p *plan.Plan) Report {
	feeBps := p.Fee.PreviewBps()

	report := Report{
		PlanID:   p.ID,
		Plan:     p.Name,
		Symbol:   p.Symbol,
		Fee:      p.Fee,
		FeeCheck: p.Fee.Check(s.allocator),
		Split:    p.Split,
		Display:  s.allocator.DisplayInfo(feeBps),
	}

	if p.Fee.Mode == fees.FeeModeDynamic && p.Fee.Dynamic != nil {
		maxDisplay := s.allocator.DisplayInfo(p.Fee.Dynamic.MaxBps)
		report.MaxDisplay = &maxDisplay
	}

	switch p.Split {
	case plan.SplitCustom:
		report.Recipients = s.allocator.Allocate(feeBps, p.Recipients)
	default:
		report.Recipients = s.allocator.SimpleSplit(p.Payee)
	}
	report.Distribution = s.allocator.ValidateDistribution(report.Recipients)
	report.Rates = s.allocator.EffectiveRates(feeBps, report.Recipients)

	report.Slippage = s.slippage
	if p.Slippage != nil {
		report.Slippage = *p.Slippage
	}

	if p.HasInitialBuy() {
		report.InitialBuy = true
		report.BuyIn = p.BuyIn
		report.MarketCap = p.MarketCap
		report.Pricing = s.simulator.Simulate(p.PricingInput())
		report.Severity = pricing.Severity(report.Pricing.PriceImpact)
		report.ImpactWarning = pricing.Warning(report.Severity)
		report.MinTokensOut = pricing.MinTokensOut(report.Pricing, report.Slippage)
	} else {
		report.Severity = pricing.SeverityNone
	}

	s.logger.Debug("Plan evaluated",
		zap.String("plan", p.Name),
		zap.Bool("ready", report.Ready()),
		zap.Int("recipients", len(report.Recipients)),
		zap.String("severity", string(report.Severity)))

	return report
}

// EvaluateAll evaluates plans concurrently and returns reports in input order.
func (s *Service) EvaluateAll(ctx context.Context, plans []*plan.Plan) ([]Report, error) {
	for i, p := range plans {
		if p == nil {
			return nil, fmt.Errorf("plan %d is nil", i)
		}
	}

	reports := make([]Report, len(plans))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, p := range plans {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			reports[i] = s.Evaluate(p)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("evaluate plans: %w", err)
	}

	ready := 0
	for i := range reports {
		if reports[i].Ready() {
			ready++
		}
	}
	s.logger.Info("Plans evaluated", zap.Int("total", len(reports)), zap.Int("ready", ready))

	return reports, nil
}
