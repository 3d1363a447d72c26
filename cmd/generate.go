package cmd

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/shoplore/ordersynth/internal/backfill"
	"github.com/shoplore/ordersynth/internal/config"
	"github.com/shoplore/ordersynth/internal/gen"
	"github.com/shoplore/ordersynth/internal/loader"
	"github.com/shoplore/ordersynth/internal/transform"
)

var (
	generateCount   int
	generateDataDir string
	generateSeed    int64
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate synthetic orders and load them into the warehouse",
	Long: `Train the generator on the historical CSVs, generate synthetic
order clusters over the trailing 30 days, clean them with the production
transforms and upsert them into the configured database.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if generateDataDir != "" {
			cfg.DataDir = generateDataDir
		}

		l := loader.New(cfg.Database.Provider)
		return runPipeline(cmd.Context(), cfg, l, generateCount, nil, newRand(generateSeed))
	},
}

// runPipeline wires the trainer, transforms and loader into a Runner and
// executes it against the configured database.
func runPipeline(ctx context.Context, cfg *config.Config, l loader.Loader, count int, window *gen.DateWindow, rng *rand.Rand) error {
	dbURL, err := cfg.GetDatabaseURL()
	if err != nil {
		return err
	}

	if err := l.Connect(ctx, dbURL); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer l.Close()

	if err := l.Ping(ctx); err != nil {
		return fmt.Errorf("database is not reachable: %w", err)
	}

	trainer := gen.NewTrainer(cfg.DataDir, rng)
	runner := &backfill.Runner{
		Train: func() (*gen.Snapshot, *gen.TextModel, error) {
			snap, model := trainer.Train()
			return snap, model, nil
		},
		Transform: func(table string, rows []map[string]any) ([]map[string]any, error) {
			return transform.Clean(table, rows), nil
		},
		Load: func(ctx context.Context, tables map[string][]map[string]any) error {
			return loader.LoadBatch(ctx, l, tables, cfg.LoadBatchSize)
		},
		Rand:      rng,
		ChunkSize: cfg.ChunkSize,
	}

	committed, err := runner.Run(ctx, count, window)
	if err != nil {
		color.Red("❌ Run failed with %d/%d orders committed: %v", committed, count, err)
		return err
	}

	color.Green("🎉 Successfully generated and loaded %d orders.", committed)
	return nil
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().IntVar(&generateCount, "count", 10, "Number of orders to generate")
	generateCmd.Flags().StringVar(&generateDataDir, "data-dir", "", "Path to historical CSVs for training")
	generateCmd.Flags().Int64Var(&generateSeed, "seed", 0, "Random seed (0 = non-deterministic)")
}
