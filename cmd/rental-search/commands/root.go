package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"rental-search/internal/app"
	"rental-search/internal/config"
)

var (
	cfgFile string
	order   string
	timeout time.Duration

	svc *app.App
)

// errUsage marks a search that was answered with an error result. The
// result itself has already been printed.
var errUsage = errors.New("search request rejected")

var rootCmd = &cobra.Command{
	Use:   "rental-search",
	Short: "Search the rental marketplace catalog",
	Long: `rental-search queries the marketplace catalog for vehicles, stays and
rentable items, and assembles bundles that fit a combined trip budget.
Results are printed as JSON.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		path := cfgFile
		if path == "" {
			path = os.Getenv("CONFIG_FILE")
		}
		cfg, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if order != "" {
			cfg.Ranking.Order = order
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		svc, err = app.New(cmd.Context(), cfg, app.NewLogger(cfg), false)
		if err != nil {
			return fmt.Errorf("build service: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (defaults to $CONFIG_FILE)")
	rootCmd.PersistentFlags().StringVar(&order, "order", "", "ranking order: price or rating (overrides config)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "overall search timeout")
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if svc != nil {
		_ = svc.Close()
		svc = nil
	}
	return err
}

func searchContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), timeout)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// optionalFloat returns a pointer to v only when the flag was given, so
// an explicit zero is still a constraint.
func optionalFloat(cmd *cobra.Command, name string, v float64) *float64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &v
}
