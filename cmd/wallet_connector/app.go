package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"wallet_connector/internal/app/provider"
	"wallet_connector/internal/app/service"
	"wallet_connector/internal/infrastructure/configloader"
	"wallet_connector/internal/infrastructure/restapi"
	"wallet_connector/internal/infrastructure/walletkit"
	"wallet_connector/internal/pkg/logger"
	"wallet_connector/internal/pkg/metrics"
	"wallet_connector/internal/pkg/utils"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// errChainsUnhealthy is returned by the check command when a chain could not be read.
var errChainsUnhealthy = errors.New("one or more chains failed the status check")

// bootstrap is what every command needs: the loaded config and the single builder.
type bootstrap struct {
	cfg     *configloader.Config
	builder *service.ConfigBuilder
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:   "wallet_connector",
		Usage:  "Builds and serves the wallet-connection configuration of the Charity DAO front-end",
		Flags:  globalFlags(),
		Writer: out,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Serve the wallet configuration over HTTP",
				Action: runServe,
			},
			{
				Name:   "print",
				Usage:  "Print the wallet configuration as JSON",
				Action: runPrint,
			},
			{
				Name:   "check",
				Usage:  "Dial every configured chain and report its status",
				Action: runCheck,
			},
		},
	}
}

func setup(c *cli.Context) (*bootstrap, error) {
	cfg, err := configloader.LoadOrDefault(c.String(configFlagName))
	if err != nil {
		return nil, err
	}
	if lvl := c.String(logLevelFlagName); lvl != "" {
		cfg.Logging.Level = lvl
	}
	if err := logger.Init(cfg.Logging.Level); err != nil {
		return nil, err
	}

	appLogger := logger.NewSlogAdapter()
	builder := service.NewConfigBuilderFromConfig(cfg, provider.OSEnv{}, appLogger)
	return &bootstrap{cfg: cfg, builder: builder}, nil
}

func runPrint(c *cli.Context) error {
	b, err := setup(c)
	if err != nil {
		return err
	}
	walletCfg, err := b.builder.Build()
	if err != nil {
		return err
	}

	out, err := json.Marshal(walletCfg)
	if err != nil {
		return fmt.Errorf("failed to encode wallet configuration: %w", err)
	}
	_, err = fmt.Fprintln(c.App.Writer, string(out))
	return err
}

func runCheck(c *cli.Context) error {
	b, err := setup(c)
	if err != nil {
		return err
	}
	walletCfg, err := b.builder.Build()
	if err != nil {
		return err
	}
	defer walletCfg.Close()

	ctx, cancel := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return reportStatuses(c.App.Writer, walletCfg.CheckChains(ctx))
}

func reportStatuses(w io.Writer, statuses []walletkit.ChainStatus) error {
	failed := 0
	for _, s := range statuses {
		if s.OK() {
			fmt.Fprintf(w, "%-16s chain=%-9d block=%-10d gas=%s gwei rpc=%s\n", s.Identifier, s.ChainID, s.BlockNumber, s.GasPriceGwei, s.RPCURL)
			continue
		}
		failed++
		fmt.Fprintf(w, "%-16s chain=%-9d ERROR %s\n", s.Identifier, s.ChainID, s.Error)
	}
	if failed > 0 {
		return fmt.Errorf("%w (%d of %d)", errChainsUnhealthy, failed, len(statuses))
	}
	return nil
}

func runServe(c *cli.Context) error {
	b, err := setup(c)
	if err != nil {
		return err
	}
	cfg := b.cfg
	appLogger := logger.NewSlogAdapter()

	// Build eagerly so a broken configuration fails at startup rather than on first request.
	walletCfg, err := b.builder.Build()
	if err != nil {
		return err
	}
	defer walletCfg.Close()

	metrics.MustRegisterMetrics(prometheus.DefaultRegisterer)

	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := restapi.SetupRouter(restapi.NewWalletConfigHandler(b.builder, b.builder.Networks(), appLogger), restapi.RouterOptions{
		AllowedOrigins:  cfg.Server.AllowedOrigins,
		AccessLog:       logger.Zap().Named("http"),
		Metrics:         promhttp.Handler(),
		SwaggerEnabled:  cfg.Swagger.Enabled,
		SwaggerPath:     cfg.Swagger.Path,
		SwaggerSpecFile: cfg.Swagger.SpecFile,
	})

	srv := &http.Server{
		Addr:         ":" + utils.GetEnv("PORT", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		appLogger.Info("Starting HTTP server", "address", srv.Addr, "chains", len(walletCfg.Chains()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	appLogger.Info("Shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	appLogger.Info("HTTP server stopped")
	return nil
}
