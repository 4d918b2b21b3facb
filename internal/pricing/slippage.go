// internal/pricing/slippage.go
package pricing

import (
	"fmt"
	"math"
)

// SlippageType определяет тип политики проскальзывания
type SlippageType string

const (
	// SlippageFixed использует фиксированное значение minTokensOut
	SlippageFixed SlippageType = "fixed"
	// SlippagePercent использует процент от ожидаемого выхода
	SlippagePercent SlippageType = "percent"
	// SlippageNone не ограничивает minTokensOut
	SlippageNone SlippageType = "none"
)

// SlippageConfig конфигурирует политику проскальзывания для первоначальной покупки
type SlippageConfig struct {
	Type SlippageType `json:"type" yaml:"type"`
	// Value содержит значение для выбранной политики:
	// - для SlippageFixed: точное значение minTokensOut
	// - для SlippagePercent: процент допустимого проскальзывания (1.0 = 1%)
	// - для SlippageNone: игнорируется
	Value float64 `json:"value" yaml:"value"`
}

// Validate проверяет параметры политики
func (c SlippageConfig) Validate() error {
	switch c.Type {
	case SlippageFixed:
		if c.Value < 0 {
			return fmt.Errorf("fixed min tokens out cannot be negative")
		}
	case SlippagePercent:
		if c.Value < 0 || c.Value > 100 {
			return fmt.Errorf("slippage must be between 0 and 100, got %.2f", c.Value)
		}
	case SlippageNone, "":
	default:
		return fmt.Errorf("unsupported slippage type: %q", c.Type)
	}
	return nil
}

// MinTokensOut вычисляет минимальное количество токенов для первоначальной покупки
func MinTokensOut(result Result, config SlippageConfig) float64 {
	switch config.Type {
	case SlippageFixed:
		return config.Value
	case SlippagePercent:
		// Например, при проскальзывании 1% минимум составит 99% от ожидаемого
		multiplier := 1.0 - (config.Value / 100.0)
		return math.Max(0, math.Floor(result.TokensReceived*multiplier))
	default:
		// Без ограничения
		return 0
	}
}
