package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cloud-ru/mcp-recouvrement-go/internal/calculations"
	"github.com/cloud-ru/mcp-recouvrement-go/internal/config"
	"github.com/cloud-ru/mcp-recouvrement-go/internal/tariffs"
	"github.com/cloud-ru/mcp-recouvrement-go/internal/tools"
	"github.com/cloud-ru/mcp-recouvrement-go/internal/tracing"
)

var (
	cfg             *config.Config
	calc            *calculations.Calculator
	registry        *tools.Registry
	shutdownTracing tracing.ShutdownFunc
	jsonOutput      bool
)

var rootCmd = &cobra.Command{
	Use:   "recouvrement",
	Short: "Calcul de recouvrement de créances OHADA/UEMOA",
	Long: "Computes accrued and future interest, majoration, bailiff émoluments, procedural costs " +
		"and the legal mention for OHADA/UEMOA debt recovery.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		tables, err := loadTables(cfg.Tariffs.File)
		if err != nil {
			return fmt.Errorf("load tariffs: %w", err)
		}
		calc = calculations.NewCalculator(tables, calculations.WithLogger(zap.L()))

		tracer, shutdown, err := tracing.InitTracing(cmd.Context(), cfg.OTel)
		if err != nil {
			return fmt.Errorf("init tracing: %w", err)
		}
		shutdownTracing = shutdown

		registry = tools.NewRegistry(cfg, calc, tracer)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if shutdownTracing != nil {
			if err := shutdownTracing(context.Background()); err != nil {
				zap.L().Warn("tracing shutdown failed", zap.Error(err))
			}
		}
		_ = zap.L().Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print results as JSON")
}

func loadTables(path string) (tariffs.Tables, error) {
	if path == "" {
		return tariffs.Default(), nil
	}
	zap.L().Info("loading tariff tables", zap.String("file", path))
	return tariffs.Load(path)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
