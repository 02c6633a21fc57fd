package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"algebraics/internal/export"
	"algebraics/internal/poly"
	"algebraics/internal/solve"
)

var errNoConvergence = errors.New("roots not found within the iteration budget")

func newSolveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "solve [coefficients...]",
		Short: "Find the roots of a single polynomial",
		Long: `Finds every root of one polynomial. Coefficients are given constant term
first and may be complex, e.g. 1+2i.

Example:
  algebraic solve -- -6 11 -6 1   # (x-1)(x-2)(x-3)`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			coeffs := make([]complex128, len(args))
			for i, arg := range args {
				c, err := strconv.ParseComplex(arg, 128)
				if err != nil {
					return fmt.Errorf("invalid coefficient %q: %w", arg, err)
				}
				coeffs[i] = c
			}
			p := poly.New(coeffs...)

			solver, err := solve.New(a.cfg.SolveOptions(), a.logger)
			if err != nil {
				return err
			}
			r, ok := solver.Solve(p)
			if !ok {
				return fmt.Errorf("%s: %w", p, errNoConvergence)
			}

			w, err := export.NewWriter(export.Format(a.cfg.Output.Format), cmd.OutOrStdout(), export.Viewport{})
			if err != nil {
				return err
			}
			if err := w.Write(r); err != nil {
				return err
			}
			return w.Flush()
		},
	}
}
