package deploy

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/launch-economics/internal/fees"
	"github.com/rovshanmuradov/launch-economics/internal/plan"
	"github.com/rovshanmuradov/launch-economics/internal/preview"
	"github.com/rovshanmuradov/launch-economics/internal/pricing"
)

const (
	testPlatform = "0xabcdefabcdefabcdefabcdefabcdefabcdefabcd"
	addrA        = "0x1111111111111111111111111111111111111111"
)

func evaluate(t *testing.T, p *plan.Plan) preview.Report {
	t.Helper()
	alloc, err := fees.NewAllocator(fees.DefaultConfig(testPlatform), zap.NewNop())
	require.NoError(t, err)
	svc := preview.NewService(alloc, pricing.NewSimulator(0, nil),
		pricing.SlippageConfig{Type: pricing.SlippagePercent, Value: 1}, 1, zap.NewNop())
	return svc.Evaluate(p)
}

func readyPlan() *plan.Plan {
	return &plan.Plan{
		Name:      "Alpha",
		Symbol:    "ALP",
		Payee:     addrA,
		Fee:       fees.Static(100),
		Split:     plan.SplitSimple,
		BuyIn:     0.1,
		MarketCap: 10,
	}
}

func TestBuild(t *testing.T) {
	report := evaluate(t, readyPlan())

	cfg, err := NewBuilder(zap.NewNop()).Build(report)
	require.NoError(t, err)

	assert.Equal(t, "Alpha", cfg.Name)
	assert.Equal(t, "ALP", cfg.Symbol)
	assert.Equal(t, fees.Static(100), cfg.Fee)
	require.Len(t, cfg.Recipients, 2)
	assert.Equal(t, fees.TotalBps, fees.SumBps(cfg.Recipients))
	require.NotNil(t, cfg.InitialBuy)
	assert.Equal(t, 0.1, cfg.InitialBuy.Amount)
	assert.Equal(t, report.MinTokensOut, cfg.InitialBuy.MinTokensOut)

	// the config owns its recipient slice
	cfg.Recipients[0].Bps = 1
	assert.Equal(t, 7500, report.Recipients[0].Bps)
}

func TestBuildWithoutInitialBuy(t *testing.T) {
	p := readyPlan()
	p.BuyIn = 0

	cfg, err := NewBuilder(nil).Build(evaluate(t, p))
	require.NoError(t, err)
	assert.Nil(t, cfg.InitialBuy)
}

func TestBuildRejectsUnreadyReport(t *testing.T) {
	p := readyPlan()
	p.Fee = fees.Static(10)
	p.Symbol = ""

	_, err := NewBuilder(nil).Build(evaluate(t, p))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotReady)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Alpha", verr.Plan)
	require.Len(t, verr.Errors, 2)
	assert.Contains(t, verr.Errors[0], "below minimum")
	assert.Equal(t, "token symbol is required", verr.Errors[1])
}

type fakeBackend struct {
	calls    atomic.Int32
	failures int32
	err      error
}

func (f *fakeBackend) Deploy(_ context.Context, _ TokenConfig) (string, error) {
	n := f.calls.Add(1)
	if n <= f.failures {
		return "", f.err
	}
	return "0x9999999999999999999999999999999999999999", nil
}

func fastOptions(retries int) SubmitOptions {
	return SubmitOptions{Retries: retries, RetryDelay: time.Millisecond, Logger: zap.NewNop()}
}

func TestSubmitRetriesTransientErrors(t *testing.T) {
	backend := &fakeBackend{failures: 2, err: errors.New("rpc timeout")}

	address, err := Submit(context.Background(), backend, TokenConfig{Symbol: "ALP"}, fastOptions(3))
	require.NoError(t, err)
	assert.NotEmpty(t, address)
	assert.Equal(t, int32(3), backend.calls.Load())
}

func TestSubmitGivesUpAfterRetries(t *testing.T) {
	backend := &fakeBackend{failures: 10, err: errors.New("rpc timeout")}

	_, err := Submit(context.Background(), backend, TokenConfig{Symbol: "ALP"}, fastOptions(2))
	require.Error(t, err)
	assert.Equal(t, int32(3), backend.calls.Load())
}

func TestSubmitStopsOnPermanentError(t *testing.T) {
	rejected := errors.New("symbol already taken")
	backend := &fakeBackend{failures: 10, err: backoff.Permanent(rejected)}

	_, err := Submit(context.Background(), backend, TokenConfig{Symbol: "ALP"}, fastOptions(5))
	require.Error(t, err)
	assert.ErrorIs(t, err, rejected)
	assert.Equal(t, int32(1), backend.calls.Load())
}

func TestSubmitDryRun(t *testing.T) {
	cfg, err := NewBuilder(nil).Build(evaluate(t, readyPlan()))
	require.NoError(t, err)

	_, err = Submit(context.Background(), NewDryRunBackend(zap.NewNop()), cfg, fastOptions(3))
	assert.ErrorIs(t, err, ErrDryRun)
}
