package cmd

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	Version = "1.3.0"
)

func showBanner() {
	green := color.New(color.FgGreen, color.Bold)
	green.Println("  ┌─────────────────────────────────────┐")
	green.Println("  │   ordersynth — synthetic orders     │")
	green.Println("  └─────────────────────────────────────┘")
	color.New(color.FgCyan, color.Bold).Print("  Version: ")
	color.New(color.FgYellow, color.Bold).Printf("%s\n", Version)
}

var rootCmd = &cobra.Command{
	Use:   "ordersynth",
	Short: "Generate and load synthetic e-commerce orders",
	Long: `
ordersynth learns simple distributions from the historical Olist CSV
exports, then generates internally consistent synthetic order clusters
(customer, order, items, payment, review) and upserts them into the
warehouse in foreign-key dependency order.`,

	Run: func(cmd *cobra.Command, args []string) {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Printf("ordersynth CLI version %s\n", Version)
			return
		}
		showBanner()
		fmt.Println()
		cmd.Help()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./ordersynth.config.json)")
	rootCmd.Flags().BoolP("version", "v", false, "Show CLI version")
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env")
		godotenv.Load(".env.local")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("json")
		viper.SetConfigName("ordersynth.config")
	}

	viper.AutomaticEnv()

	viper.ReadInConfig()
}

// newRand builds the run's single random source. Seed 0 means
// non-deterministic.
func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
