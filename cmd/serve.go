package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/practice-evaluator/internal/api"
	"github.com/spigell/practice-evaluator/internal/metrics"
	"github.com/spigell/practice-evaluator/internal/pipeline"
	"github.com/spigell/practice-evaluator/internal/tracing"
)

const (
	readHeaderTimeout = 10 * time.Second
	idleTimeout       = 2 * time.Minute
	shutdownTimeout   = 30 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP evaluation server",
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("listen", "l", "", "address to listen on (default :8080)")

	viper.BindPFlag("listen", serveCmd.Flags().Lookup("listen"))
}

func serve() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := buildLogger()
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer logger.Sync()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the practice-evaluator", zap.String("version", version))

	recorder := metrics.NewRecorder()

	tp, err := tracing.NewProvider(ctx, config.Tracing)
	if err != nil {
		logger.Fatal("building the tracer provider", zap.Error(err))
	}
	logger.Info("tracing configured", zap.String("exporter", config.Tracing.Exporter))

	svc, err := buildService(ctx, config, logger, false,
		pipeline.WithMetrics(recorder),
		pipeline.WithTracerProvider(tp),
	)
	if err != nil {
		logger.Fatal("building the evaluator", zap.Error(err))
	}

	handler := api.NewServer(svc, logger.Named("api"),
		api.WithMetrics(recorder),
		api.WithRequestTimeout(config.Server.RequestTimeout),
	)

	srv := &http.Server{
		Addr:              config.Listen,
		Handler:           handler,
		ReadTimeout:       config.Server.ReadTimeout,
		WriteTimeout:      config.Server.WriteTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		IdleTimeout:       idleTimeout,
	}

	failed := make(chan error, 1)
	go func() {
		logger.Info("starting HTTP server", zap.String("addr", config.Listen))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			failed <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down server")
	case err := <-failed:
		logger.Fatal("HTTP server failed", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}

	if err := tp.Shutdown(shutdownCtx); err != nil {
		logger.Error("flushing traces failed", zap.Error(err))
	}

	logger.Info("server stopped")
}
