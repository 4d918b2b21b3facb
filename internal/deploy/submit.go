package deploy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
)

// ErrDryRun is returned by DryRunBackend after the config was rendered.
var ErrDryRun = errors.New("dry run: token was not deployed")

const (
	DefaultRetries    = 3
	DefaultRetryDelay = 500 * time.Millisecond
)

// Backend deploys a token and returns its address. Errors wrapped with
// backoff.Permanent are not retried.
type Backend interface {
	Deploy(ctx context.Context, cfg TokenConfig) (string, error)
}

// SubmitOptions tunes the retry policy.
type SubmitOptions struct {
	Retries    int
	RetryDelay time.Duration
	Logger     *zap.Logger
}

// Submit deploys cfg, retrying transient backend errors with exponential backoff.
func Submit(ctx context.Context, backend Backend, cfg TokenConfig, opts SubmitOptions) (string, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Retries < 0 {
		opts.Retries = DefaultRetries
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = DefaultRetryDelay
	}

	backoffPolicy := backoff.NewExponentialBackOff()
	backoffPolicy.InitialInterval = opts.RetryDelay
	backoffPolicy.MaxInterval = opts.RetryDelay * 10

	notify := func(err error, duration time.Duration) {
		logger.Warn("Deployment failed, retrying",
			zap.String("symbol", cfg.Symbol),
			zap.Error(err),
			zap.Duration("backoff", duration))
	}

	operation := func() (string, error) {
		address, err := backend.Deploy(ctx, cfg)
		if err == nil {
			return address, nil
		}
		if errors.Is(err, ErrDryRun) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", backoff.Permanent(err)
		}
		return "", err
	}

	address, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoffPolicy),
		backoff.WithMaxTries(uint(opts.Retries+1)),
		backoff.WithNotify(notify))
	if err != nil {
		if !errors.Is(err, ErrDryRun) {
			logger.Error("Deployment failed", zap.String("symbol", cfg.Symbol), zap.Error(err))
		}
		return "", fmt.Errorf("deploy %s: %w", cfg.Symbol, err)
	}

	logger.Info("Token deployed", zap.String("symbol", cfg.Symbol), zap.String("address", address))
	return address, nil
}

// DryRunBackend logs the rendered config instead of deploying it.
type DryRunBackend struct {
	logger *zap.Logger
}

// NewDryRunBackend creates a DryRunBackend.
func NewDryRunBackend(logger *zap.Logger) *DryRunBackend {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DryRunBackend{logger: logger}
}

// Deploy always returns ErrDryRun.
func (d *DryRunBackend) Deploy(_ context.Context, cfg TokenConfig) (string, error) {
	payload, err := json.Marshal(cfg)
	if err != nil {
		return "", backoff.Permanent(fmt.Errorf("marshal token config: %w", err))
	}
	d.logger.Info("Dry run token config",
		zap.String("symbol", cfg.Symbol),
		zap.ByteString("config", payload))
	return "", ErrDryRun
}
