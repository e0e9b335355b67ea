package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/agenthands/followgraph/internal/core"
	"github.com/agenthands/followgraph/internal/core/report"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Collect friend lists, print the report and write the JSON summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close(context.Background())

		res, err := a.execute(ctx)
		if err != nil {
			return err
		}
		return report.WriteText(cmd.OutOrStdout(), res.Report)
	},
}

// execute runs the pipeline over the loaded roster and writes output files. Nothing is
// written unless the whole run succeeded.
func (a *app) execute(ctx context.Context) (*core.Result, error) {
	res, err := a.pipeline.Run(ctx, a.roster)
	if err != nil {
		return nil, err
	}

	if a.cfg.Output.DOTPath != "" {
		if err := os.WriteFile(a.cfg.Output.DOTPath, res.DOT, 0o644); err != nil {
			return nil, fmt.Errorf("failed to write graph to '%s': %w", a.cfg.Output.DOTPath, err)
		}
		a.logger.Info("graph written", zap.String("path", a.cfg.Output.DOTPath))
	}

	if err := res.Summary.WriteJSON(a.cfg.Output.JSONPath); err != nil {
		return nil, err
	}
	a.logger.Info("summary written", zap.String("path", a.cfg.Output.JSONPath), zap.String("run_id", res.RunID))

	return res, nil
}
