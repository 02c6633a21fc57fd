package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"algebraics/internal/enumerate"
)

func newCountCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Count the polynomials an enumeration produces without solving them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			strategy, err := enumerate.ParseStrategy(a.cfg.Enumeration.Strategy)
			if err != nil {
				return err
			}
			seq, err := enumerate.Stream(strategy, a.cfg.Bounds())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), enumerate.Count(seq))
			return err
		},
	}
}
