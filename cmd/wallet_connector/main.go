package main

import (
	"os"

	"wallet_connector/internal/pkg/logger"

	"github.com/urfave/cli/v2"
)

func main() {
	app := newApp(os.Stdout)
	if err := app.Run(os.Args); err != nil {
		logger.Fatal("wallet_connector failed", "error", err)
	}
	logger.Sync()
}

const (
	configFlagName   = "config"
	logLevelFlagName = "log-level"
)

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    configFlagName,
			Usage:   "Path to the YAML configuration file",
			Value:   "config/config.yml",
			EnvVars: []string{"CONFIG_PATH"},
		},
		&cli.StringFlag{
			Name:    logLevelFlagName,
			Usage:   "Log level override (debug, info, warn, error)",
			EnvVars: []string{"LOG_LEVEL"},
		},
	}
}
