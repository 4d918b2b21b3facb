// =============================
// File: internal/pricing/simulator.go
// =============================
package pricing

import (
	"go.uber.org/zap"
)

// DefaultTotalSupply is the token supply assumed when none is given.
const DefaultTotalSupply = 100_000_000_000

// Input описывает параметры первоначальной покупки.
type Input struct {
	BuyIn       float64 `json:"buy_in"`       // сумма в парном активе
	MarketCap   float64 `json:"market_cap"`   // целевая капитализация в парном активе
	TotalSupply float64 `json:"total_supply"` // общее предложение токена
}

// Result содержит оценку покупки по формуле постоянного произведения.
// Для некорректного входа все поля равны нулю.
type Result struct {
	TokensReceived float64 `json:"tokens_received"`
	PriceImpact    float64 `json:"price_impact"` // в процентах
	NewPrice       float64 `json:"new_price"`
	EffectivePrice float64 `json:"effective_price"`
	InitialPrice   float64 `json:"initial_price"`
}

// IsZero reports whether no simulation was available.
func (r Result) IsZero() bool {
	return r == Result{}
}

// SimulateBuy оценивает покупку buyIn по пулу x*y=k, где весь supply изначально
// оценён в marketCap.
//
// Формула: newTokenReserve = supply*marketCap / (marketCap + buyIn),
// tokensReceived = supply - newTokenReserve.
func SimulateBuy(buyIn, marketCap, totalSupply float64) Result {
	if buyIn <= 0 || marketCap <= 0 {
		return Result{}
	}
	if totalSupply <= 0 {
		totalSupply = DefaultTotalSupply
	}

	tokenReserve := totalSupply
	pairedReserve := marketCap
	k := tokenReserve * pairedReserve

	newPairedReserve := pairedReserve + buyIn
	newTokenReserve := k / newPairedReserve
	tokensReceived := tokenReserve - newTokenReserve

	initialPrice := pairedReserve / tokenReserve
	newPrice := newPairedReserve / newTokenReserve

	// buyIn пренебрежимо мал относительно marketCap
	if tokensReceived <= 0 {
		return Result{InitialPrice: initialPrice, NewPrice: initialPrice, EffectivePrice: initialPrice}
	}

	return Result{
		TokensReceived: tokensReceived,
		PriceImpact:    (newPrice - initialPrice) / initialPrice * 100,
		NewPrice:       newPrice,
		EffectivePrice: buyIn / tokensReceived,
		InitialPrice:   initialPrice,
	}
}

// Simulate runs SimulateBuy for in.
func (in Input) Simulate() Result {
	return SimulateBuy(in.BuyIn, in.MarketCap, in.TotalSupply)
}

// Simulator wraps SimulateBuy with a default supply and debug logging.
type Simulator struct {
	totalSupply float64
	logger      *zap.Logger
}

// NewSimulator creates a simulator. A non-positive supply selects DefaultTotalSupply.
func NewSimulator(totalSupply float64, logger *zap.Logger) *Simulator {
	if totalSupply <= 0 {
		totalSupply = DefaultTotalSupply
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Simulator{totalSupply: totalSupply, logger: logger}
}

// TotalSupply returns the supply used when an input leaves it empty.
func (s *Simulator) TotalSupply() float64 {
	return s.totalSupply
}

// Simulate estimates a buy. A zero TotalSupply in the input uses the simulator default.
func (s *Simulator) Simulate(in Input) Result {
	if in.TotalSupply <= 0 {
		in.TotalSupply = s.totalSupply
	}
	result := in.Simulate()

	if result.IsZero() {
		s.logger.Debug("Buy simulation skipped: non-positive input",
			zap.Float64("buy_in", in.BuyIn),
			zap.Float64("market_cap", in.MarketCap))
		return result
	}

	s.logger.Debug("Buy simulation",
		zap.Float64("buy_in", in.BuyIn),
		zap.Float64("market_cap", in.MarketCap),
		zap.Float64("total_supply", in.TotalSupply),
		zap.Float64("tokens_received", result.TokensReceived),
		zap.Float64("price_impact_pct", result.PriceImpact),
		zap.Float64("effective_price", result.EffectivePrice))

	return result
}

// Sweep simulates several buy-in sizes against the same market cap, e.g. for
// a preview table.
func (s *Simulator) Sweep(buyIns []float64, marketCap, totalSupply float64) []Result {
	results := make([]Result, 0, len(buyIns))
	for _, buyIn := range buyIns {
		results = append(results, s.Simulate(Input{BuyIn: buyIn, MarketCap: marketCap, TotalSupply: totalSupply}))
	}
	return results
}
