// =============================
// File: internal/fees/config.go
// =============================
package fees

import (
	"errors"
	"fmt"
)

// TotalBps is the whole LP-distributable fee pool: 10000 bps = 100%.
const TotalBps = 10000

const (
	DefaultPlatformShareBps  = 2500 // платформа получает 25% LP-комиссий
	DefaultProtocolFeeBps    = 2000 // 20% от комиссии удерживается протоколом
	DefaultMaxFeeBps         = 2000 // потолок пользовательской комиссии, 20%
	DefaultMinFeeBps         = 25   // минимальный ненулевой шаг, 0.25%
	DefaultMaxUserRecipients = 6
)

// Config holds the platform carve-out and fee bounds shared by the allocator
// and the display helper.
type Config struct {
	PlatformAddress   string
	PlatformAdmin     string
	PlatformShareBps  int
	ProtocolFeeBps    int
	MaxFeeBps         int
	MinFeeBps         int
	MaxUserRecipients int
}

// DefaultConfig возвращает конфигурацию с константами по умолчанию для указанного адреса платформы.
func DefaultConfig(platformAddress string) Config {
	return Config{
		PlatformAddress:   platformAddress,
		PlatformAdmin:     platformAddress,
		PlatformShareBps:  DefaultPlatformShareBps,
		ProtocolFeeBps:    DefaultProtocolFeeBps,
		MaxFeeBps:         DefaultMaxFeeBps,
		MinFeeBps:         DefaultMinFeeBps,
		MaxUserRecipients: DefaultMaxUserRecipients,
	}
}

// UserBudgetBps is the part of the pool left for user-defined recipients.
func (c Config) UserBudgetBps() int {
	return TotalBps - c.PlatformShareBps
}

// MaxRecipients includes the synthesized platform entry.
func (c Config) MaxRecipients() int {
	return c.MaxUserRecipients + 1
}

// Validate checks the config for programmer errors. User-editable values are
// never validated here.
func (c Config) Validate() error {
	if !IsValidAddress(c.PlatformAddress) {
		return fmt.Errorf("platform address %q: %w", c.PlatformAddress, ErrInvalidAddress)
	}
	if c.PlatformAdmin != "" && !IsValidAddress(c.PlatformAdmin) {
		return fmt.Errorf("platform admin %q: %w", c.PlatformAdmin, ErrInvalidAddress)
	}
	if c.PlatformShareBps < 0 || c.PlatformShareBps > TotalBps {
		return fmt.Errorf("platform share must be between 0 and %d bps, got %d", TotalBps, c.PlatformShareBps)
	}
	if c.ProtocolFeeBps < 0 || c.ProtocolFeeBps > TotalBps {
		return fmt.Errorf("protocol fee must be between 0 and %d bps, got %d", TotalBps, c.ProtocolFeeBps)
	}
	if c.MinFeeBps < 0 || c.MaxFeeBps < c.MinFeeBps || c.MaxFeeBps > TotalBps {
		return fmt.Errorf("invalid fee bounds: min %d, max %d", c.MinFeeBps, c.MaxFeeBps)
	}
	if c.MaxUserRecipients <= 0 {
		return errors.New("max user recipients must be positive")
	}
	return nil
}
