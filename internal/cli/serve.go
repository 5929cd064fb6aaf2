package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/szto/foxy-reminder/internal/api/auth_api"
	"github.com/szto/foxy-reminder/internal/api/middlewares"
	"github.com/szto/foxy-reminder/internal/api/reminder_api"
	"github.com/szto/foxy-reminder/internal/api/reminder_pages"
	"github.com/szto/foxy-reminder/internal/config"
	"github.com/szto/foxy-reminder/internal/database"
	"github.com/szto/foxy-reminder/internal/repository/auth_repository"
	"github.com/szto/foxy-reminder/internal/repository/reminder_repository"
	"github.com/szto/foxy-reminder/internal/services/auth_services"
	"github.com/szto/foxy-reminder/internal/services/reminder_services"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Addr string
}

func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the reminders HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(opts)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", "", "listen address (overrides config)")

	return cmd
}

func loadConfig(opts *RootOptions) (*config.Config, error) {
	if opts.ConfigPath != "" {
		return config.LoadFile(opts.ConfigPath)
	}
	return config.Load(), nil
}

func setupLogging(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	log.Logger = log.Level(lvl).Output(zerolog.ConsoleWriter{
		Out: os.Stderr, TimeFormat: "2006-01-02_15:04:05",
	})
}

func setupCORS(cfg *config.Config, router http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.CorsOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})
	return c.Handler(router)
}

func runServer(opts *ServeOptions) error {
	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return err
	}
	if opts.Addr != "" {
		cfg.ListenAddr = opts.Addr
	}

	setupLogging(cfg.LogLevel)

	db, err := database.NewConnection(cfg.DBDriver, cfg.DSN)
	if err != nil {
		return err
	}
	defer db.Close()
	log.Info().Str("driver", cfg.DBDriver).Msg("database connection successful")

	// AUTH
	userRepo := auth_repository.NewUserRepo(db)
	authSvc := auth_services.NewAuthService(userRepo, cfg.SessionSecret)
	authHandler := auth_api.NewAuthHandler(authSvc, cfg.CookieName)

	// REMINDERS
	reminderRepo := reminder_repository.NewReminderRepo(db)
	reminderSvc := reminder_services.NewReminderService(reminderRepo)
	reminderHandler := reminder_api.NewReminderHandler(reminderSvc, authSvc, cfg.CookieName)

	renderer, err := reminder_pages.NewRenderer()
	if err != nil {
		return err
	}
	pagesHandler := reminder_pages.NewPagesHandler(reminderSvc, authSvc, cfg.CookieName, renderer)

	router := mux.NewRouter()
	authHandler.AuthRoutes(router)
	reminderHandler.ReminderRoutes(router)
	pagesHandler.PagesRoutes(router)

	handler := middlewares.RequestLogger(setupCORS(cfg, router))

	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: handler,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.ListenAddr).Msg("server listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}

	return nil
}
