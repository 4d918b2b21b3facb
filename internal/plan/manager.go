package plan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/rovshanmuradov/launch-economics/internal/fees"
	"github.com/rovshanmuradov/launch-economics/internal/pricing"
)

// Manager loads and parses launch plan definitions.
type Manager struct {
	logger *zap.Logger
}

type feeData struct {
	Mode    string `yaml:"mode"`
	Bps     int    `yaml:"bps"`
	BaseBps int    `yaml:"base_bps"`
	MaxBps  int    `yaml:"max_bps"`
}

type recipientData struct {
	Address string `yaml:"address"`
	Admin   string `yaml:"admin"`
	Bps     int    `yaml:"bps"`
	Label   string `yaml:"label"`
}

// PlanFile represents the structure of the plans YAML file
type PlanFile struct {
	Plans []struct {
		Name        string                  `yaml:"name"`
		Symbol      string                  `yaml:"symbol"`
		Payee       string                  `yaml:"payee"`
		Fee         feeData                 `yaml:"fee"`
		Split       string                  `yaml:"split"`
		Recipients  []recipientData         `yaml:"recipients"`
		BuyIn       float64                 `yaml:"buy_in"`
		MarketCap   float64                 `yaml:"market_cap"`
		TotalSupply float64                 `yaml:"total_supply"`
		Slippage    *pricing.SlippageConfig `yaml:"slippage"`
	} `yaml:"plans"`
}

// NewManager constructs a Manager with the given logger.
func NewManager(logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{logger: logger}
}

func buildFee(d feeData) (fees.FeeSettings, error) {
	mode, err := fees.ParseFeeMode(d.Mode)
	if err != nil {
		return fees.FeeSettings{}, err
	}
	if mode == fees.FeeModeDynamic {
		return fees.Dynamic(d.BaseBps, d.MaxBps), nil
	}
	return fees.Static(d.Bps), nil
}

// buildRecipients keeps addresses as written: malformed ones are reported by
// the distribution check, not dropped here.
func buildRecipients(data []recipientData) []fees.RewardRecipient {
	recipients := make([]fees.RewardRecipient, 0, len(data))
	for _, d := range data {
		addr := strings.TrimSpace(d.Address)
		admin := strings.TrimSpace(d.Admin)
		if admin == "" {
			admin = addr
		}
		recipients = append(recipients, fees.RewardRecipient{
			Recipient: addr,
			Admin:     admin,
			Bps:       d.Bps,
			Label:     d.Label,
		})
	}
	return recipients
}

// Parse decodes plans from YAML bytes, skipping invalid entries.
func (m *Manager) Parse(data []byte) ([]*Plan, error) {
	var file PlanFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if len(file.Plans) == 0 {
		return nil, fmt.Errorf("no plans found in file")
	}

	plans := make([]*Plan, 0, len(file.Plans))
	for i, p := range file.Plans {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			m.logger.Warn("Skipping plan without name", zap.Int("index", i))
			continue
		}

		fee, err := buildFee(p.Fee)
		if err != nil {
			m.logger.Warn("Skipping plan with invalid fee", zap.String("plan", name), zap.Error(err))
			continue
		}

		split, err := parseSplit(p.Split)
		if err != nil {
			m.logger.Warn("Skipping plan with invalid split", zap.String("plan", name), zap.Error(err))
			continue
		}

		plan := &Plan{
			ID:          i,
			Name:        name,
			Symbol:      strings.ToUpper(strings.TrimSpace(p.Symbol)),
			Fee:         fee,
			Split:       split,
			BuyIn:       p.BuyIn,
			MarketCap:   p.MarketCap,
			TotalSupply: p.TotalSupply,
			Slippage:    p.Slippage,
			CreatedAt:   time.Now(),
		}

		switch split {
		case SplitSimple:
			payee, err := fees.NormalizeAddress(p.Payee)
			if err != nil {
				m.logger.Warn("Skipping simple split with invalid payee",
					zap.String("plan", name),
					zap.String("payee", p.Payee))
				continue
			}
			plan.Payee = payee
		case SplitCustom:
			if len(p.Recipients) == 0 {
				m.logger.Warn("Skipping custom split without recipients", zap.String("plan", name))
				continue
			}
			plan.Recipients = buildRecipients(p.Recipients)
		}

		if plan.BuyIn < 0 || (plan.BuyIn > 0 && plan.MarketCap <= 0) {
			m.logger.Warn("Skipping plan with invalid initial buy",
				zap.String("plan", name),
				zap.Float64("buy_in", plan.BuyIn),
				zap.Float64("market_cap", plan.MarketCap))
			continue
		}

		if plan.Slippage != nil {
			if err := plan.Slippage.Validate(); err != nil {
				m.logger.Warn("Skipping plan with invalid slippage", zap.String("plan", name), zap.Error(err))
				continue
			}
		}

		plans = append(plans, plan)
	}

	if len(plans) == 0 {
		return nil, fmt.Errorf("no valid plans loaded")
	}

	m.logger.Info("Loaded plans", zap.Int("count", len(plans)))
	return plans, nil
}

// LoadPlans reads plans from a YAML file
func (m *Manager) LoadPlans(path string) ([]*Plan, error) {
	if filepath.IsAbs(path) {
		m.logger.Debug("Using absolute path for plans file", zap.String("path", path))
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return m.Parse(data)
}
