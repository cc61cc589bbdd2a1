package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/voyagehq/sofdesk/internal/ai"
	"github.com/voyagehq/sofdesk/internal/config"
	"github.com/voyagehq/sofdesk/internal/extract"
	"github.com/voyagehq/sofdesk/internal/handler"
	"github.com/voyagehq/sofdesk/internal/middleware"
	"github.com/voyagehq/sofdesk/internal/pipeline"
	"github.com/voyagehq/sofdesk/internal/schedule"
	"github.com/voyagehq/sofdesk/internal/structure"
	"github.com/voyagehq/sofdesk/internal/summary"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "sofdesk",
		Short: "sofdesk document intake server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run sofdesk server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("--config is required")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(
				cfg.LogConfig.File,
				cfg.LogConfig.Level,
				int(cfg.LogConfig.FileCount),
				int(cfg.LogConfig.FileSize),
				int(cfg.LogConfig.KeepDays),
				cfg.LogConfig.Console,
			)
			logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))
			return runServer(cfg)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func runServer(cfg *config.Config) error {
	gateway, err := ai.NewGateway(cfg.AI)
	if err != nil {
		return fmt.Errorf("init provider gateway: %w", err)
	}
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.String("backend", gateway.Backend()),
		zap.String("model", gateway.Model()),
	)

	extractService := extract.NewService(gateway)
	structureService := structure.NewService(gateway)
	summaryService := summary.NewService(gateway)
	pipe := pipeline.NewService(extractService, structureService, summaryService, summary.FallbackSummary)

	deps := handler.RouterDeps{
		Documents:      handler.NewDocumentHandler(pipe, cfg.MaxUploadBytes),
		ThrottleWindow: time.Duration(cfg.UploadThrottleSeconds) * time.Second,
	}

	engine, err := webapi.NewEngine(
		"/api/v1",
		fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.CORS(cfg.CORSOrigins),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := schedule.NewScheduler()
	if err := scheduler.AddJob(schedule.NewPipelineStatsJob(pipe), cfg.StatsCron); err != nil {
		return fmt.Errorf("schedule stats job: %w", err)
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", fmt.Sprintf("0.0.0.0:%d", cfg.Port)))
	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}
