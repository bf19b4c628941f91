package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jafarshop/metasync/internal/config"
)

var quiet bool

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "metasync",
		Short:         "Export, compare, and import Shopify metafield definitions across stores",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress interactive prompts and progress output")
	cmd.AddCommand(
		newExportCmd(),
		newCompareCmd(),
		newImportCmd(),
		newListCmd(),
	)
	return cmd
}

// setup loads configuration and builds the run logger. The .env load is
// best-effort; config.Load discovers .env through viper as well, so live
// commands fail later with a clear ConfigurationError when credentials are
// genuinely absent.
func setup() (*config.Config, *zap.Logger, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	cfg.Quiet = quiet

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = logger.With(zap.String("run_id", uuid.NewString()))
	return cfg, logger, nil
}

func newLogger(level string) (*zap.Logger, error) {
	if strings.EqualFold(level, "debug") {
		return zap.NewDevelopment()
	}
	logCfg := zap.NewProductionConfig()
	if err := logCfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", level, err)
	}
	return logCfg.Build()
}

var stdin = bufio.NewReader(os.Stdin)

// confirmPrompt asks a yes/no question on stdin. Anything but an explicit
// yes counts as no.
func confirmPrompt(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	line, err := stdin.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
