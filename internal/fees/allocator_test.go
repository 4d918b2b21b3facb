package fees

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testPlatform = "0xabcdefabcdefabcdefabcdefabcdefabcdefabcd"
	addrA        = "0x1000000000000000000000000000000000000001"
	addrB        = "0x2000000000000000000000000000000000000002"
	addrC        = "0x3000000000000000000000000000000000000003"
)

func newTestAllocator(t *testing.T) *Allocator {
	t.Helper()
	a, err := NewAllocator(DefaultConfig(testPlatform), zap.NewNop())
	require.NoError(t, err)
	return a
}

func user(addr string, bps int) RewardRecipient {
	return RewardRecipient{Recipient: addr, Admin: addr, Bps: bps}
}

func TestNewAllocatorRejectsBadPlatformAddress(t *testing.T) {
	_, err := NewAllocator(DefaultConfig("not-an-address"), zap.NewNop())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidAddress)

	cfg := DefaultConfig(testPlatform)
	cfg.PlatformShareBps = TotalBps + 1
	_, err = NewAllocator(cfg, nil)
	assert.Error(t, err)
}

func TestSimpleSplit(t *testing.T) {
	a := newTestAllocator(t)

	got := a.SimpleSplit(addrA)
	require.Len(t, got, 2)

	assert.Equal(t, addrA, got[0].Recipient)
	assert.Equal(t, 7500, got[0].Bps)
	assert.Equal(t, LabelCreator, got[0].Label)
	assert.True(t, got[0].IsDefault)
	assert.False(t, got[0].IsPlatform)

	assert.Equal(t, testPlatform, got[1].Recipient)
	assert.Equal(t, 2500, got[1].Bps)
	assert.Equal(t, LabelPlatform, got[1].Label)
	assert.True(t, got[1].IsDefault)
	assert.True(t, got[1].IsPlatform)

	assert.Equal(t, TotalBps, SumBps(got))
	assert.True(t, a.ValidateDistribution(got).Valid)
}

func TestAllocate(t *testing.T) {
	tests := []struct {
		name     string
		input    []RewardRecipient
		wantBps  []int // user entries only, platform is checked separately
		platform int
	}{
		{
			name:     "empty list gives the whole pool to the platform",
			input:    nil,
			wantBps:  []int{},
			platform: TotalBps,
		},
		{
			name:     "exact budget is kept as is",
			input:    []RewardRecipient{user(addrA, 5000), user(addrB, 2500)},
			wantBps:  []int{5000, 2500},
			platform: 2500,
		},
		{
			name:     "overage is taken from the last entry",
			input:    []RewardRecipient{user(addrA, 5000), user(addrB, 5000)},
			wantBps:  []int{5000, 2500},
			platform: 2500,
		},
		{
			name:     "overage larger than the last entry moves backwards",
			input:    []RewardRecipient{user(addrA, 7000), user(addrB, 1000), user(addrC, 2000)},
			wantBps:  []int{7000, 500, 0},
			platform: 2500,
		},
		{
			name:     "shortfall goes to the last entry",
			input:    []RewardRecipient{user(addrA, 3000), user(addrB, 2000)},
			wantBps:  []int{3000, 4500},
			platform: 2500,
		},
		{
			name:     "negative shares are clamped",
			input:    []RewardRecipient{user(addrA, -500), user(addrB, 7500)},
			wantBps:  []int{0, 7500},
			platform: 2500,
		},
		{
			name: "platform entries are dropped and re-synthesized",
			input: []RewardRecipient{
				user(addrA, 4000),
				{Recipient: addrC, Bps: 3000, IsPlatform: true},
				user("0x"+strings.ToUpper(testPlatform[2:]), 3000),
				user(addrB, 3500),
			},
			wantBps:  []int{4000, 3500},
			platform: 2500,
		},
		{
			name:     "single entry far above the budget",
			input:    []RewardRecipient{user(addrA, 50000)},
			wantBps:  []int{7500},
			platform: 2500,
		},
		{
			name:     "shares near MaxInt do not overflow the sum",
			input:    []RewardRecipient{user(addrA, math.MaxInt), user(addrB, math.MaxInt)},
			wantBps:  []int{7500, 0},
			platform: 2500,
		},
		{
			name:     "MinInt share is clamped to zero",
			input:    []RewardRecipient{user(addrA, math.MinInt), user(addrB, 1000)},
			wantBps:  []int{0, 7500},
			platform: 2500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAllocator(t)
			got := a.Allocate(100, tt.input)

			require.NotEmpty(t, got)
			last := got[len(got)-1]
			assert.True(t, last.IsPlatform)
			assert.Equal(t, testPlatform, last.Recipient)
			assert.Equal(t, tt.platform, last.Bps)

			users := got[:len(got)-1]
			gotBps := make([]int, 0, len(users))
			for _, r := range users {
				assert.False(t, r.IsPlatform)
				gotBps = append(gotBps, r.Bps)
			}
			assert.Equal(t, tt.wantBps, gotBps)
			assert.Equal(t, TotalBps, SumBps(got))
		})
	}
}

func TestAllocateAlwaysSumsToTotal(t *testing.T) {
	a := newTestAllocator(t)

	for n := 0; n <= DefaultMaxUserRecipients; n++ {
		for _, share := range []int{math.MinInt, -1, 0, 1, 999, 1250, 1500, 7500, 10000, math.MaxInt} {
			input := make([]RewardRecipient, 0, n)
			for i := 0; i < n; i++ {
				input = append(input, user(fmt.Sprintf("0x%040d", i+1), share))
			}
			got := a.Allocate(100, input)
			assert.Equal(t, TotalBps, SumBps(got), "n=%d share=%d", n, share)
			assert.True(t, a.ValidateDistribution(got).Valid, "n=%d share=%d", n, share)
			for _, r := range got {
				assert.GreaterOrEqual(t, r.Bps, 0)
			}
		}
	}
}

func TestAllocateDoesNotMutateInput(t *testing.T) {
	a := newTestAllocator(t)
	input := []RewardRecipient{user(addrA, 6000), user(addrB, 6000)}
	snapshot := append([]RewardRecipient(nil), input...)

	_ = a.Allocate(100, input)

	assert.Equal(t, snapshot, input)
}

func TestAllocateIsIdempotent(t *testing.T) {
	a := newTestAllocator(t)
	inputs := [][]RewardRecipient{
		nil,
		{user(addrA, 100)},
		{user(addrA, 6000), user(addrB, 6000), user(addrC, 6000)},
		{user(addrA, 2500), user(testPlatform, 2500), user(addrB, 2500)},
	}

	for _, input := range inputs {
		first := a.Allocate(100, input)
		second := a.Allocate(100, WithoutPlatform(first))
		assert.Equal(t, first, second)
		assert.Equal(t, first, a.Allocate(100, input))
	}
}

func TestEffectiveRates(t *testing.T) {
	a := newTestAllocator(t)

	rates := a.EffectiveRates(100, a.SimpleSplit(addrA))
	require.Len(t, rates, 2)
	assert.Equal(t, "60", rates[0].RateBps.String())
	assert.Equal(t, "20", rates[1].RateBps.String())
}
