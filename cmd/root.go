package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/intelligrit/salesmap/internal/config"
	"github.com/intelligrit/salesmap/internal/logging"
	"github.com/intelligrit/salesmap/internal/mockdata"
	"github.com/intelligrit/salesmap/internal/store"
)

var (
	verbose    bool
	configPath string
	envPath    string
	cfg        *config.Config
	logger     *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "salesmap",
	Short: "Render and explore regional sales performance on a map of Nigeria",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A missing .env is normal; anything else is worth reporting.
		if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", envPath, err)
		}

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		logger, err = logging.New(verbose)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "salesmap.toml", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&envPath, "env", ".env", "Path to environment file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func Execute() error {
	return rootCmd.Execute()
}

// newStore generates the configured dataset in memory.
func newStore() *store.Store {
	idx := cfg.Index()
	return store.New(mockdata.New(idx, cfg.Data.Seed, mockdata.WithColors(cfg.RegionColors())))
}
