package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/prodflow/jobshop/core/model"
	"github.com/prodflow/jobshop/core/planner"
	"github.com/prodflow/jobshop/infra/logger"
	"github.com/prodflow/jobshop/infra/metrics"
)

var solveCmd = &cobra.Command{
	Use:   "solve <request-file>",
	Short: "Solve a scheduling request and print the result as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  solve,
}

func init() {
	rootCmd.AddCommand(solveCmd)
}

func solve(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg.Logging.Apply()
	logg := logger.New("solve")

	req, err := model.LoadRequest(args[0])
	if err != nil {
		return fmt.Errorf("load request: %w", err)
	}
	if req.Config.IsZero() {
		req.Config = cfg.Solver
	}

	if cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, cfg.Metrics.PrometheusAddr, logg); err != nil {
				logg.Errorf("prom server: %v", err)
			}
		}()
	}

	result, err := planner.New(logg).Schedule(ctx, req)
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
