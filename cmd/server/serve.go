package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"komarabo/internal/auth"
	"komarabo/internal/config"
	apphttp "komarabo/internal/http"
	"komarabo/internal/repository/sqlite"
	"komarabo/internal/service"
	"komarabo/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		if err := cfg.ValidateServe(); err != nil {
			return err
		}
		return serve(cmd.Context(), cfg, logger)
	},
}

func serve(parent context.Context, cfg config.Config, logger *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := openDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	userRepo := sqlite.NewUserRepository(db)
	issueRepo := sqlite.NewIssueRepository(db)
	commentRepo := sqlite.NewCommentRepository(db)
	productRepo := sqlite.NewProductRepository(db)
	configRepo := sqlite.NewSiteConfigRepository(db)

	userService := service.NewUserService(userRepo)
	for _, hash := range cfg.AdminHashes() {
		if err := userService.SetAdmin(ctx, hash, true); err != nil {
			logger.WithError(err).WithField("user_hash", hash).Warn("bootstrap admin")
			continue
		}
		logger.WithField("user_hash", hash).Info("granted admin")
	}

	archiver, err := buildArchiver(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("setup storage: %w", err)
	}

	handler := apphttp.NewHandler(apphttp.Options{
		Users:        userService,
		Issues:       service.NewIssueService(userService, issueRepo, commentRepo),
		Products:     service.NewProductService(userService, productRepo, configRepo, archiver, logger),
		Admin:        service.NewAdminService(userService, userRepo, issueRepo, commentRepo, productRepo, configRepo),
		Tokens:       auth.NewIssuer(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute),
		RequireToken: cfg.Auth.RequireToken,
		Logger:       logger,
	})

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
	return nil
}

// buildArchiver returns nil when no bucket is configured; sealed logs then live only in sqlite.
func buildArchiver(ctx context.Context, cfg config.Config, logger *logrus.Logger) (storage.Archiver, error) {
	if cfg.Storage.Bucket == "" {
		logger.Info("storage bucket not set, sealed prompt logs will not be archived")
		return nil, nil
	}

	loadOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.Storage.Region),
	}
	if cfg.AWS.Profile != "" {
		loadOpts = append(loadOpts, awscfg.WithSharedConfigProfile(cfg.AWS.Profile))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
			o.UsePathStyle = true
		}
	})
	logger.Infof("archiving sealed prompt logs to s3 bucket %s (region %s)", cfg.Storage.Bucket, cfg.Storage.Region)
	return storage.NewS3Archiver(client, cfg.Storage.Bucket, cfg.Storage.KeyPrefix), nil
}
