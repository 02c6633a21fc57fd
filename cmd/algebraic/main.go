package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"algebraics/internal/config"
	"algebraics/internal/logging"
)

// app carries what every subcommand needs once the root command has
// loaded configuration.
type app struct {
	configPath string
	verbose    bool

	// flag values, applied over the config only when set
	strategy  string
	maxLength int
	maxDegree int
	workers   int
	seed      uint64
	format    string

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "algebraic",
		Short: "Enumerate integer polynomials and compute their complex roots",
		Long: `algebraic walks integer-coefficient polynomials up to a length bound and
finds every complex root of each with Newton's method and deflation.

Roots are streamed as JSON lines, CSV or text for a renderer to draw.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd.Flags())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", config.DefaultPath, "path to the YAML config file")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	pf.StringVar(&a.strategy, "strategy", "", "enumeration strategy: composition or dense")
	pf.IntVar(&a.maxLength, "max-length", 0, "length bound of the enumeration")
	pf.IntVar(&a.maxDegree, "max-degree", 0, "degree bound of the composition enumeration")
	pf.IntVar(&a.workers, "workers", 0, "number of polynomials solved concurrently")
	pf.Uint64Var(&a.seed, "seed", 0, "seed for the random initial guesses")
	pf.StringVar(&a.format, "format", "", "output format: jsonl, csv or text")

	rootCmd.AddCommand(
		newRootsCmd(a),
		newSolveCmd(a),
		newCountCmd(a),
		newConfigCmd(a),
	)
	return rootCmd
}

// init loads .env, the config file and environment, applies explicitly set
// flags, validates the result and builds the logger.
func (a *app) init(flags *pflag.FlagSet) error {
	_ = godotenv.Load()

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if flags.Changed("strategy") {
		cfg.Enumeration.Strategy = a.strategy
	}
	if flags.Changed("max-length") {
		cfg.Enumeration.MaxLength = a.maxLength
	}
	if flags.Changed("max-degree") {
		cfg.Enumeration.MaxDegree = a.maxDegree
	}
	if flags.Changed("workers") {
		cfg.Solver.Workers = a.workers
	}
	if flags.Changed("seed") {
		cfg.Polynomial.Seed = a.seed
	}
	if flags.Changed("format") {
		cfg.Output.Format = a.format
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging, a.verbose)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
