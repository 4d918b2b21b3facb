package plan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/launch-economics/internal/fees"
	"github.com/rovshanmuradov/launch-economics/internal/pricing"
)

const plansYAML = `
plans:
  - name: Simple launch
    symbol: smp
    payee: "0x1111111111111111111111111111111111111111"
    fee:
      bps: 100
    buy_in: 0.1
    market_cap: 10
  - name: Custom launch
    fee:
      mode: dynamic
      base_bps: 50
      max_bps: 300
    split: custom
    recipients:
      - address: "0x2222222222222222222222222222222222222222"
        bps: 5000
        label: Creator
      - address: "0x3333333333333333333333333333333333333333"
        admin: "0x4444444444444444444444444444444444444444"
        bps: 2500
    slippage:
      type: percent
      value: 2
  - name: ""
    payee: "0x1111111111111111111111111111111111111111"
  - name: Bad fee mode
    fee:
      mode: stepped
  - name: Bad payee
    payee: "nope"
  - name: Custom without recipients
    split: custom
  - name: Buy without market cap
    payee: "0x1111111111111111111111111111111111111111"
    buy_in: 1
  - name: Bad slippage
    payee: "0x1111111111111111111111111111111111111111"
    slippage:
      type: percent
      value: 150
`

func TestParsePlans(t *testing.T) {
	m := NewManager(zap.NewNop())

	plans, err := m.Parse([]byte(plansYAML))
	require.NoError(t, err)
	require.Len(t, plans, 2)

	simple := plans[0]
	assert.Equal(t, "Simple launch", simple.Name)
	assert.Equal(t, "SMP", simple.Symbol)
	assert.Equal(t, SplitSimple, simple.Split)
	assert.Equal(t, "0x1111111111111111111111111111111111111111", simple.Payee)
	assert.Equal(t, fees.Static(100), simple.Fee)
	assert.True(t, simple.HasInitialBuy())
	assert.Equal(t, pricing.Input{BuyIn: 0.1, MarketCap: 10}, simple.PricingInput())
	assert.Nil(t, simple.Slippage)

	custom := plans[1]
	assert.Equal(t, 1, custom.ID)
	assert.Equal(t, SplitCustom, custom.Split)
	assert.Equal(t, fees.Dynamic(50, 300), custom.Fee)
	require.Len(t, custom.Recipients, 2)
	assert.Equal(t, custom.Recipients[0].Recipient, custom.Recipients[0].Admin)
	assert.Equal(t, "0x4444444444444444444444444444444444444444", custom.Recipients[1].Admin)
	assert.Equal(t, "Creator", custom.Recipients[0].Label)
	assert.False(t, custom.HasInitialBuy())
	require.NotNil(t, custom.Slippage)
	assert.Equal(t, pricing.SlippagePercent, custom.Slippage.Type)
}

func TestParseKeepsMalformedRecipientAddresses(t *testing.T) {
	m := NewManager(nil)
	plans, err := m.Parse([]byte(`
plans:
  - name: Typo
    split: custom
    recipients:
      - address: "0x12"
        bps: 7500
`))
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "0x12", plans[0].Recipients[0].Recipient)
}

func TestParseErrors(t *testing.T) {
	m := NewManager(zap.NewNop())

	tests := []struct {
		name    string
		content string
	}{
		{"empty file", ""},
		{"no plans", "plans: []"},
		{"invalid yaml", "plans: [name: x"},
		{"nothing valid", "plans:\n  - name: Bad\n    split: weird\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Parse([]byte(tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadPlans(t *testing.T) {
	m := NewManager(zap.NewNop())
	path := filepath.Join(t.TempDir(), "plans.yaml")
	require.NoError(t, os.WriteFile(path, []byte(plansYAML), 0600))

	plans, err := m.LoadPlans(path)
	require.NoError(t, err)
	assert.Len(t, plans, 2)

	_, err = m.LoadPlans(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
