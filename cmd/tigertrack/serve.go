package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/api"
	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/auth"
	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/config"
	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/photostore"
	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/photostore/local"
	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/photostore/s3"
	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/store"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the background sweeper",
		Args:  cobra.NoArgs,
		RunE:  withApp(serve),
	}
	cmd.Flags().StringP("addr", "a", "", "listen address (default: :8080)")
	cmd.Flags().StringP("admin-user", "u", "", "admin username on first run (default: Admin)")
	cmd.Flags().String("photos-dir", "", "photo directory for the local backend (default: photos)")
	return cmd
}

func serve(ctx context.Context, cmd *cobra.Command, a *app) error {
	// First run: create the admin account and print its password once.
	if n, err := store.CountAdmins(ctx, a.db); err != nil {
		return err
	} else if n == 0 {
		password, err := createAdmin(ctx, a.db, a.cfg.Admin.User)
		if err != nil {
			return err
		}
		printAdmin(cmd.OutOrStdout(), a.cfg.DB, a.cfg.Admin.User, password)
	}

	photos, err := newPhotoStore(ctx, a.cfg.Photos)
	if err != nil {
		return err
	}

	jwtSecret, err := store.GetJWTSecret(ctx, a.db)
	if err != nil {
		return fmt.Errorf("loading JWT secret: %w", err)
	}
	sessions := auth.NewSessions(jwtSecret, a.cfg.TokenTTL)

	server := &http.Server{
		Addr:              a.cfg.Addr,
		Handler:           api.LoggingMiddleware(api.NewRouter(a.db, a.svc, sessions, photos)),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sweeperDone := make(chan struct{})
	go func() {
		defer close(sweeperDone)
		a.svc.RunSweeper(ctx, a.cfg.Sweep.Interval)
	}()

	go func() {
		<-ctx.Done()
		a.log.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			a.log.Error("server forced to shutdown", "error", err)
		}
	}()

	a.log.Info("server started", "addr", a.cfg.Addr, "photos", a.cfg.Photos.Backend, "sweep_interval", a.cfg.Sweep.Interval)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		stop()
		<-sweeperDone
		return fmt.Errorf("server error: %w", err)
	}

	<-sweeperDone
	a.log.Info("server stopped, closing database")
	return nil
}

// newPhotoStore returns the configured photo backend.
func newPhotoStore(ctx context.Context, cfg config.PhotosConfig) (photostore.Store, error) {
	switch cfg.Backend {
	case "s3":
		return s3.New(ctx, s3.Config{
			Bucket:          cfg.S3.Bucket,
			Region:          cfg.S3.Region,
			Endpoint:        cfg.S3.Endpoint,
			PathStyle:       cfg.S3.PathStyle,
			Prefix:          cfg.S3.Prefix,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
		})
	default:
		return local.New(cfg.Dir)
	}
}
