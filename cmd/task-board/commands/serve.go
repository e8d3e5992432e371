package commands

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"task-board/internal/config"
	"task-board/internal/logging"
	"task-board/internal/middleware"
	"task-board/internal/web"
)

// shutdownTimeout - сколько ждём завершения активных запросов при остановке.
const shutdownTimeout = 10 * time.Second

func newServeCommand(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web interface",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.Server.Addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a.watchConfig()
			return a.serve(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}

// newRouter навешивает общесервисные middleware на роутер веб-интерфейса.
// Роуты живут в internal/web, здесь только обвязка.
func (a *app) newRouter() http.Handler {
	handler := web.NewHandler(a.projects, a.tasks,
		web.WithLogger(a.log),
		web.WithBannerTTL(a.cfg.Banner.SuccessTTL, a.cfg.Banner.ErrorTTL),
	)

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(a.log))
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.RequestTimeoutMiddleware(a.cfg.Server.RequestTimeout))
	r.Use(middleware.HTMLHeaderMiddleware)

	r.Mount("/", handler.Router())
	return r
}

func (a *app) serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           a.newRouter(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.WithFields(logrus.Fields{
			"addr": addr,
			"api":  a.cfg.API.BaseURL,
		}).Info("server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	a.log.Info("server stopped")
	return nil
}

// watchConfig подхватывает изменения файла конфигурации на лету.
// Без перезапуска меняется только уровень логирования, остальное
// читается при старте.
func (a *app) watchConfig() {
	a.loader.Watch(func(cfg *config.Config) {
		if err := logging.SetLevel(a.log, cfg.Logger.Level); err != nil {
			a.log.WithError(err).Warn("config reload: log level")
			return
		}
		a.log.WithField("level", a.log.GetLevel().String()).Info("config reloaded")
	}, func(err error) {
		a.log.WithError(err).Warn("config reload rejected")
	})
}
