package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cliffyan/go-game-search-mcp/internal/config"
	"github.com/cliffyan/go-game-search-mcp/internal/engine"
	"github.com/cliffyan/go-game-search-mcp/internal/logger"
	"github.com/cliffyan/go-game-search-mcp/internal/provider"
)

var (
	configPath string
	logLevel   string

	cfg     *config.Config
	manager *engine.Manager
)

var rootCmd = &cobra.Command{
	Use:   "gamesearch",
	Short: "gamesearch searches game stores and prints normalized results.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// 结果输出到 stdout，日志写到 stderr
		logger.Log.SetOutput(os.Stderr)

		if configPath != "" {
			loaded, err := config.LoadFromFile(configPath)
			if err != nil {
				return err
			}
			cfg = loaded
		} else {
			cfg = config.Load()
		}

		if err := logger.InitLoggerTo(os.Stderr, logLevelFor(cfg, logLevel), cfg.Log.File); err != nil {
			return err
		}

		manager = engine.NewManager(cfg, provider.Default())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error); overrides log.level from the config")
}

// logLevelFor 命令行参数优先，其次为配置文件中的 log.level
func logLevelFor(c *config.Config, flagLevel string) string {
	if flagLevel != "" {
		return flagLevel
	}
	return c.Log.Level
}

// ExecuteContext 执行命令行
func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
