package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/shoplore/ordersynth/internal/config"
	"github.com/shoplore/ordersynth/internal/gen"
)

var (
	inspectDataDir string
	inspectSeed    int64
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Train only and show what was learned",
	Long:  `Run a training pass over the historical CSVs and print the learned pool sizes. Needs no database.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if inspectDataDir != "" {
			cfg.DataDir = inspectDataDir
		}

		trainer := gen.NewTrainer(cfg.DataDir, newRand(inspectSeed))
		snap, model := trainer.Train()

		fmt.Println()
		fmt.Print(snap.Stats())
		if model.Trained() {
			color.Green("📝 Text model trained; sample: %q", model.Generate(trainer.Rand, 20))
		} else {
			color.Yellow("⚠️  Text model untrained; reviews will use the fallback message")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringVar(&inspectDataDir, "data-dir", "", "Path to historical CSVs for training")
	inspectCmd.Flags().Int64Var(&inspectSeed, "seed", 0, "Random seed (0 = non-deterministic)")
}
