// =============================================
// File: internal/deploy/config.go
// =============================================
package deploy

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/rovshanmuradov/launch-economics/internal/fees"
	"github.com/rovshanmuradov/launch-economics/internal/preview"
)

// ErrNotReady is wrapped by ValidationError.
var ErrNotReady = errors.New("launch plan is not ready for deployment")

// InitialBuy is the optional buy executed together with pool creation.
type InitialBuy struct {
	Amount       float64 `json:"amount"`
	MinTokensOut float64 `json:"min_tokens_out"`
}

// TokenConfig is handed to the deployment SDK as is. Recipients already
// include the platform entry and sum to fees.TotalBps.
type TokenConfig struct {
	Name       string                 `json:"name"`
	Symbol     string                 `json:"symbol"`
	Fee        fees.FeeSettings       `json:"fee"`
	Recipients []fees.RewardRecipient `json:"recipients"`
	InitialBuy *InitialBuy            `json:"initial_buy,omitempty"`
}

// ValidationError lists every reason a plan cannot be deployed.
type ValidationError struct {
	Plan   string
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("plan %q: %s", e.Plan, strings.Join(e.Errors, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrNotReady
}

// Builder turns evaluated plans into SDK token configs.
type Builder struct {
	logger *zap.Logger
}

// NewBuilder creates a Builder.
func NewBuilder(logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{logger: logger.Named("deploy")}
}

// Build refuses reports that did not pass the review checks.
func (b *Builder) Build(report preview.Report) (TokenConfig, error) {
	problems := report.Problems()
	if strings.TrimSpace(report.Symbol) == "" {
		problems = append(problems, "token symbol is required")
	}
	if !report.Ready() || len(problems) > 0 {
		if len(problems) == 0 {
			problems = []string{"plan failed validation"}
		}
		return TokenConfig{}, &ValidationError{Plan: report.Plan, Errors: problems}
	}

	cfg := TokenConfig{
		Name:       report.Plan,
		Symbol:     report.Symbol,
		Fee:        report.Fee,
		Recipients: append([]fees.RewardRecipient(nil), report.Recipients...),
	}
	if report.InitialBuy {
		cfg.InitialBuy = &InitialBuy{
			Amount:       report.BuyIn,
			MinTokensOut: report.MinTokensOut,
		}
	}

	b.logger.Debug("Token config built",
		zap.String("name", cfg.Name),
		zap.String("symbol", cfg.Symbol),
		zap.String("fee_mode", string(cfg.Fee.Mode)),
		zap.Int("recipients", len(cfg.Recipients)),
		zap.Bool("initial_buy", cfg.InitialBuy != nil))

	return cfg, nil
}
