package main

import (
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"screenline/adapters/excel"
	"screenline/adapters/postgres"
	"screenline/app"
	"screenline/domain/core"
	"screenline/domain/screening"
	"screenline/internal"
	"screenline/internal/config"
	"screenline/ports"
)

func main() {
	rootCmd := newScreenCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newScreenCmd() *cobra.Command {
	var (
		input      string
		output     string
		alpha      float64
		confidence string
		outcomeCol string
		workers    int
		toDatabase bool
		runIDFlag  string
	)

	cmd := &cobra.Command{
		Use:   "screen",
		Short: "Screen binary event columns for association with a binary outcome",
		Long: `Screen runs univariate significance tests over every event column in a
member dataset: events below a confidence-calibrated minimum frequency are
dropped, and each survivor gets a G-test and Fisher's exact test against the
outcome, producing a table of effect sizes and significance levels.

Example: screen --input members.csv --output results.csv --confidence high`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// .env is optional; explicit env vars and flags win.
			_ = godotenv.Load()

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			if input != "" {
				cfg.Paths.InputFile = input
			}
			if output != "" {
				cfg.Paths.OutputFile = output
			}
			if cmd.Flags().Changed("alpha") {
				cfg.Screen.Alpha = alpha
			}
			if confidence != "" {
				cfg.Screen.ConfidenceTier = screening.ConfidenceTier(confidence)
			}
			if outcomeCol != "" {
				cfg.Screen.OutcomeCol = outcomeCol
			}
			if cmd.Flags().Changed("workers") {
				cfg.Screen.Workers = workers
			}

			// Flags bypass the Load-time validation, so validate again.
			if err := cfg.Validate(); err != nil {
				return err
			}

			if cfg.Paths.InputFile == "" {
				return fmt.Errorf("input file is required (--input or SCREEN_INPUT_FILE)")
			}
			if cfg.Paths.OutputFile == "" && !toDatabase {
				return fmt.Errorf("output file is required (--output or SCREEN_OUTPUT_FILE)")
			}

			return runScreen(cmd, cfg, toDatabase, runIDFlag)
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "Input CSV or XLSX file of members and events")
	cmd.Flags().StringVar(&output, "output", "", "Output CSV file for the result table")
	cmd.Flags().Float64Var(&alpha, "alpha", 0.05, "Significance threshold")
	cmd.Flags().StringVar(&confidence, "confidence", "", "Confidence tier for the frequency filter (low, medium, high)")
	cmd.Flags().StringVar(&outcomeCol, "outcome", "", "Binary outcome column name")
	cmd.Flags().IntVar(&workers, "workers", 1, "Concurrent per-event tests")
	cmd.Flags().BoolVar(&toDatabase, "to-database", false, "Persist results to DATABASE_URL instead of a file")
	cmd.Flags().StringVar(&runIDFlag, "run-id", "", "Reuse an existing run identifier instead of generating one")

	return cmd
}

func runScreen(cmd *cobra.Command, cfg *config.Config, toDatabase bool, runIDFlag string) error {
	logger := internal.DefaultLogger
	ctx := cmd.Context()

	reader := excel.NewDataReader(logger)
	ds, err := reader.Load(ctx, cfg.Paths.InputFile)
	if err != nil {
		return err
	}

	runID := core.NewRunID()
	if runIDFlag != "" {
		if runID, err = core.ParseRunID(runIDFlag); err != nil {
			return err
		}
	}

	service := app.NewScreeningService(logger)
	results, err := service.Screen(ctx, runID, ds, cfg.Screen)
	if err != nil {
		return err
	}

	var sink ports.ResultSink
	destination := cfg.Paths.OutputFile
	if toDatabase {
		if cfg.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is required with --to-database")
		}
		db, err := sqlx.Connect("postgres", cfg.Database.URL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()
		sink = postgres.NewResultRepository(db)
		destination = "" // default results table
	} else {
		sink = excel.NewResultWriter(logger)
	}

	return sink.Persist(ctx, runID, destination, results)
}
