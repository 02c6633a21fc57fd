package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"algebraics/internal/enumerate"
	"algebraics/internal/export"
	"algebraics/internal/solve"
)

func newRootsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "roots [x_min y_min x_max y_max]",
		Short: "Enumerate polynomials and stream their roots",
		Long: `Enumerates polynomials with the configured strategy and bounds, finds the
roots of each and writes every root set to stdout. Polynomials whose roots
were not found within the iteration budget are skipped.

Passing a rectangle keeps only roots inside it, from (x_min + y_min*i) to
(x_max + y_max*i).

Example:
  algebraic roots --strategy dense --max-length 10 -- -2 -2 2 2`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 4 {
				return fmt.Errorf("expected 0 or 4 viewport arguments, got %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			viewport, err := a.viewport(args)
			if err != nil {
				return err
			}

			strategy, err := enumerate.ParseStrategy(a.cfg.Enumeration.Strategy)
			if err != nil {
				return err
			}
			seq, err := enumerate.Stream(strategy, a.cfg.Bounds())
			if err != nil {
				return err
			}

			w, err := export.NewWriter(export.Format(a.cfg.Output.Format), cmd.OutOrStdout(), viewport)
			if err != nil {
				return err
			}
			solver, err := solve.New(a.cfg.SolveOptions(), a.logger)
			if err != nil {
				return err
			}

			a.logger.Info("enumerating",
				zap.String("strategy", string(strategy)),
				zap.Int("max_length", a.cfg.Enumeration.MaxLength),
				zap.Int("max_degree", a.cfg.Enumeration.MaxDegree),
				zap.Int("workers", a.cfg.Solver.Workers))

			runErr := solver.Each(cmd.Context(), seq, w.Write)
			if err := w.Flush(); err != nil && runErr == nil {
				runErr = fmt.Errorf("failed to flush output: %w", err)
			}
			solver.LogStats()
			return runErr
		},
	}
}

// viewport reads the rectangle from the positional arguments, falling back
// to the configured one.
func (a *app) viewport(args []string) (export.Viewport, error) {
	if len(args) == 0 {
		return export.ParseViewport(a.cfg.Output.Viewport)
	}
	names := []string{"x_min", "y_min", "x_max", "y_max"}
	bounds := make([]float64, len(args))
	for i, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return export.Viewport{}, fmt.Errorf("invalid %s: %w", names[i], err)
		}
		bounds[i] = v
	}
	return export.ParseViewport(bounds)
}
