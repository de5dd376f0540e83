package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-search/internal/model"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("catalog:\n  driver: fixture\nobservability:\n  log_level: error\n"), 0o644))

	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := Execute()
	return out.String(), err
}

// resetFlags returns every flag to its default so runs do not see each
// other's arguments.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func TestTransportCommand(t *testing.T) {
	out, err := run(t, "transport", "--vehicle-type", "motorcycle")
	require.NoError(t, err)

	var res model.CategoryResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, model.TypeTransportResults, res.Type)
	assert.Len(t, res.Results, 2)
}

func TestCombinedCommandWithoutCategory(t *testing.T) {
	out, err := run(t, "combined", "--budget", "300")
	assert.ErrorIs(t, err, errUsage)
	assert.Contains(t, out, `"type": "error"`)
}

func TestMultiCommand(t *testing.T) {
	out, err := run(t, "multi", "--transport", "--items", "-l", "Penang")
	require.NoError(t, err)

	var res model.MultiResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Len(t, res.Results, 2)
	assert.Equal(t, model.TypeTransportResults, res.Results[0].Type)
	assert.Equal(t, model.TypeItemResults, res.Results[1].Type)
}

func TestMultiCommandPerCategoryFlags(t *testing.T) {
	out, err := run(t, "multi", "--transport", "--accommodation", "-l", "Penang",
		"--transport-vehicle-type", "motorcycle", "--accommodation-property-type", "villa")
	require.NoError(t, err)

	var res model.MultiResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Len(t, res.Results, 2)
	require.Len(t, res.Results[0].Results, 1)
	assert.Equal(t, "T006", res.Results[0].Results[0].ListingID)
	require.Len(t, res.Results[1].Results, 1)
	assert.Equal(t, "A004", res.Results[1].Results[0].ListingID)
}

func TestGetCommand(t *testing.T) {
	out, err := run(t, "get", "A009")
	require.NoError(t, err)

	var res model.SearchResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "A009", res.ListingID)
	assert.Equal(t, model.CategoryAccommodation, res.Category)

	_, err = run(t, "get", "Z999")
	assert.ErrorContains(t, err, "not found")
}
