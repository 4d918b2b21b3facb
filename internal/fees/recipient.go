package fees

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// ErrInvalidAddress is returned for strings that are not 20-byte hex addresses.
var ErrInvalidAddress = errors.New("invalid hex address")

const (
	LabelCreator  = "Creator"
	LabelPlatform = "Platform"
)

// RewardRecipient is one payee of the LP-distributable fee pool.
type RewardRecipient struct {
	Recipient  string `json:"recipient"`
	Admin      string `json:"admin"`
	Bps        int    `json:"bps"`
	Label      string `json:"label,omitempty"`
	IsPlatform bool   `json:"is_platform,omitempty"`
	IsDefault  bool   `json:"is_default,omitempty"`
}

// NewRecipient builds a recipient with checksummed addresses. An empty admin
// defaults to the recipient itself.
func NewRecipient(recipient, admin string, bps int, label string) (RewardRecipient, error) {
	addr, err := NormalizeAddress(recipient)
	if err != nil {
		return RewardRecipient{}, fmt.Errorf("recipient: %w", err)
	}
	adminAddr := addr
	if strings.TrimSpace(admin) != "" {
		adminAddr, err = NormalizeAddress(admin)
		if err != nil {
			return RewardRecipient{}, fmt.Errorf("admin: %w", err)
		}
	}
	return RewardRecipient{
		Recipient: addr,
		Admin:     adminAddr,
		Bps:       bps,
		Label:     label,
	}, nil
}

// IsValidAddress reports whether s is a 0x-prefixed 20-byte hex address.
func IsValidAddress(s string) bool {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return false
	}
	return common.IsHexAddress(s)
}

// NormalizeAddress returns the EIP-55 checksummed form of s.
func NormalizeAddress(s string) (string, error) {
	if !IsValidAddress(s) {
		return "", fmt.Errorf("%q: %w", s, ErrInvalidAddress)
	}
	return common.HexToAddress(strings.TrimSpace(s)).Hex(), nil
}

// SameAddress compares two addresses ignoring case and surrounding spaces.
// Malformed strings are compared textually so the allocator never fails on them.
func SameAddress(a, b string) bool {
	if IsValidAddress(a) && IsValidAddress(b) {
		return common.HexToAddress(strings.TrimSpace(a)) == common.HexToAddress(strings.TrimSpace(b))
	}
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func addressKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// SumBps returns the total share of the list.
func SumBps(recipients []RewardRecipient) int {
	total := 0
	for _, r := range recipients {
		total += r.Bps
	}
	return total
}

// WithoutPlatform strips the synthesized platform entry, e.g. before feeding a
// previous allocation back into Allocate.
func WithoutPlatform(recipients []RewardRecipient) []RewardRecipient {
	out := make([]RewardRecipient, 0, len(recipients))
	for _, r := range recipients {
		if r.IsPlatform {
			continue
		}
		out = append(out, r)
	}
	return out
}
