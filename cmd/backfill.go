package cmd

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/shoplore/ordersynth/internal/config"
	"github.com/shoplore/ordersynth/internal/gen"
	"github.com/shoplore/ordersynth/internal/loader"
)

var (
	backfillCount     int
	backfillDataDir   string
	backfillChunkSize int
	backfillSeed      int64
)

var backfillCmd = &cobra.Command{
	Use:   "backfill",
	Short: "Backfill synthetic orders over the historical gap",
	Long: `Generate orders dated between the end of the historical dataset
and now, in fixed-size chunks, loading each chunk before generating the
next. A failed chunk aborts the run; earlier chunks stay committed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if backfillDataDir != "" {
			cfg.DataDir = backfillDataDir
		}
		if backfillChunkSize > 0 {
			cfg.ChunkSize = backfillChunkSize
		}

		start, err := cfg.BackfillStartDate()
		if err != nil {
			return err
		}
		window := &gen.DateWindow{Start: start, End: time.Now()}

		color.Cyan("🕰  Backfilling from %s to %s...",
			window.Start.Format("2006-01-02"), window.End.Format("2006-01-02"))
		color.Cyan("🎯 Target: %d orders.", backfillCount)

		l := loader.New(cfg.Database.Provider)
		return runPipeline(cmd.Context(), cfg, l, backfillCount, window, newRand(backfillSeed))
	},
}

func init() {
	rootCmd.AddCommand(backfillCmd)
	backfillCmd.Flags().IntVar(&backfillCount, "count", 5000, "Total number of orders to generate")
	backfillCmd.Flags().StringVar(&backfillDataDir, "data-dir", "", "Path to historical CSVs for training")
	backfillCmd.Flags().IntVar(&backfillChunkSize, "chunk-size", 0, "Orders per chunk (default from config)")
	backfillCmd.Flags().Int64Var(&backfillSeed, "seed", 0, "Random seed (0 = non-deterministic)")
}
