package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rovshanmuradov/launch-economics/internal/deploy"
	"github.com/rovshanmuradov/launch-economics/internal/fees"
)

const (
	testPlatform = "0xabcdefabcdefabcdefabcdefabcdefabcdefabcd"
	addrA        = "0x1111111111111111111111111111111111111111"
	addrB        = "0x2222222222222222222222222222222222222222"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--platform", testPlatform, "--log-file="}, args...))
	err := root.Execute()
	return stdout.String(), err
}

func TestSimulateCommand(t *testing.T) {
	out, err := run(t, "simulate", "--buy-in", "0.1", "--market-cap", "10", "--json")
	require.NoError(t, err)

	var results []simulateOutput
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.InDelta(t, 2.01, results[0].Result.PriceImpact, 1e-9)
	assert.Equal(t, "low", string(results[0].Severity))
	assert.Positive(t, results[0].MinTokensOut)
}

func TestSimulateSweepText(t *testing.T) {
	out, err := run(t, "simulate", "--sweep", "0,0.1,5", "--market-cap", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "buy-in 0: no initial buy")
	assert.Contains(t, out, "(extreme)")
}

func TestFeeCheckCommand(t *testing.T) {
	out, err := run(t, "fee-check", "--bps", "100")
	require.NoError(t, err)
	assert.Contains(t, out, "fee rate is valid")
	assert.Contains(t, out, "protocol 0.2%")

	out, err = run(t, "fee-check", "--bps", "5000")
	assert.ErrorIs(t, err, errInvalid)
	assert.Contains(t, out, "exceeds maximum")

	_, err = run(t, "fee-check", "--mode", "dynamic", "--base-bps", "300", "--max-bps", "100")
	assert.ErrorIs(t, err, errInvalid)

	_, err = run(t, "fee-check", "--mode", "tiered")
	assert.Error(t, err)
}

func TestAllocateCommand(t *testing.T) {
	out, err := run(t, "allocate", "--json", "--bps", "100",
		"--recipient", addrA+":5000:Creator",
		"--recipient", addrB+":1000")
	require.NoError(t, err)

	var decoded struct {
		Recipients []fees.RewardRecipient `json:"recipients"`
		Check      fees.DistributionCheck `json:"check"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded.Recipients, 3)
	assert.Equal(t, 3500, decoded.Recipients[1].Bps)
	assert.Equal(t, 2500, decoded.Recipients[2].Bps)
	assert.True(t, decoded.Check.Valid)

	out, err = run(t, "allocate", "--simple", addrA)
	require.NoError(t, err)
	assert.Contains(t, out, "75%")
	assert.Contains(t, out, "Platform *")

	out, err = run(t, "allocate", "--recipient", "0x12:7500")
	assert.ErrorIs(t, err, errInvalid)
	assert.Contains(t, out, "invalid address")

	_, err = run(t, "allocate", "--recipient", addrA+":lots")
	assert.Error(t, err)

	_, err = run(t, "allocate")
	assert.Error(t, err)
}

func TestMissingPlatform(t *testing.T) {
	t.Setenv("LAUNCH_PLATFORM_ADDRESS", "")
	root := NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"--log-file=", "simulate", "--buy-in", "1", "--market-cap", "10"})
	assert.Error(t, root.Execute())
}

func TestPlatformFlagOverridesConfigFile(t *testing.T) {
	t.Setenv("LAUNCH_PLATFORM_ADDRESS", "")
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_fee_bps: 1500\n"), 0600))

	out, err := run(t, "--config", path, "fee-check", "--bps", "100")
	require.NoError(t, err)
	assert.Contains(t, out, "fee rate is valid")

	// the file's max fee is still in effect
	out, err = run(t, "--config", path, "fee-check", "--bps", "1600")
	assert.ErrorIs(t, err, errInvalid)
	assert.Contains(t, out, "exceeds maximum")

	root := NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"--log-file=", "--config", path, "fee-check", "--bps", "100"})
	assert.Error(t, root.Execute())
}

const cliPlans = `
plans:
  - name: Alpha
    symbol: alp
    payee: "0x1111111111111111111111111111111111111111"
    fee:
      bps: 100
    buy_in: 0.1
    market_cap: 10
  - name: Beta
    symbol: bet
    fee:
      bps: 5000
    split: custom
    recipients:
      - address: "0x2222222222222222222222222222222222222222"
        bps: 7500
`

func writePlans(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plans.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cliPlans), 0600))
	return path
}

func TestPreviewCommand(t *testing.T) {
	exportDir := t.TempDir()

	out, err := run(t, "preview", writePlans(t), "--export", exportDir, "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, "== Alpha [ALP] ready")
	assert.Contains(t, out, "== Beta [BET] blocked")

	entries, err := os.ReadDir(exportDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ".json", filepath.Ext(entries[0].Name()))

	_, err = run(t, "preview", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestRenderCommand(t *testing.T) {
	out, err := run(t, "render", writePlans(t))
	// Beta is blocked by its fee rate
	require.Error(t, err)
	assert.ErrorIs(t, err, deploy.ErrNotReady)

	var configs []deploy.TokenConfig
	require.NoError(t, json.Unmarshal([]byte(out), &configs))
	require.Len(t, configs, 1)
	assert.Equal(t, "ALP", configs[0].Symbol)
	assert.Equal(t, fees.TotalBps, fees.SumBps(configs[0].Recipients))
	require.NotNil(t, configs[0].InitialBuy)
}
