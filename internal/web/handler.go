// Package web - браузерный интерфейс к проектам и задачам.
//
// Страницы рендерятся на сервере (html/template), формы отправляются
// обычным POST, после успешного изменения - редирект 303 с уведомлением
// в flash-cookie. Ошибки валидации возвращают ту же форму с кодом 422,
// ошибки API - с кодом 502 и уведомлением об ошибке.
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	appMiddleware "task-board/internal/middleware"
	"task-board/internal/projects"
	"task-board/internal/tasks"
)

// Handler - HTTP-слой веб-интерфейса.
//
// Здесь только HTTP: роуты, разбор форм, коды ответов и рендер.
// Сценарии (валидация, команды, вызовы API) живут в сервисах.
type Handler struct {
	projects *projects.Service
	tasks    *tasks.Service
	log      logrus.FieldLogger

	successTTL time.Duration
	errorTTL   time.Duration
}

// Option настраивает Handler.
type Option func(*Handler)

// WithLogger задаёт логгер.
func WithLogger(l logrus.FieldLogger) Option {
	return func(h *Handler) { h.log = l }
}

// WithBannerTTL задаёт время жизни уведомлений об успехе и ошибке.
func WithBannerTTL(success, failure time.Duration) Option {
	return func(h *Handler) {
		if success > 0 {
			h.successTTL = success
		}
		if failure > 0 {
			h.errorTTL = failure
		}
	}
}

// NewHandler создаёт Handler поверх сервисов.
func NewHandler(projectSvc *projects.Service, taskSvc *tasks.Service, opts ...Option) *Handler {
	h := &Handler{
		projects:   projectSvc,
		tasks:      taskSvc,
		log:        logrus.StandardLogger(),
		successTTL: 5 * time.Second,
		errorTTL:   7 * time.Second,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Router собирает роутер веб-интерфейса.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/projects", http.StatusFound)
	})

	r.Route("/projects", func(r chi.Router) {
		r.Get("/", h.listProjects)
		r.Post("/", h.createProject)
		r.Get("/new", h.newProject)
		r.Get("/{id}", h.showProject)
		r.Post("/{id}", h.updateProject)
		r.Get("/{id}/edit", h.editProject)
		r.Post("/{id}/delete", h.deleteProject)
		r.Get("/{id}/tasks/new", h.newTask)
		r.Post("/{id}/tasks", h.createTask)
	})

	r.Route("/tasks", func(r chi.Router) {
		r.With(appMiddleware.JSONHeaderMiddleware).Post("/validate", h.validateTask)
		r.Get("/{id}", h.showTask)
		r.Post("/{id}", h.updateTask)
		r.Get("/{id}/edit", h.editTask)
		r.Post("/{id}/status", h.changeTaskStatus)
		r.Post("/{id}/assign", h.assignTask)
		r.Post("/{id}/delete", h.deleteTask)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		h.renderError(w, r, http.StatusNotFound, "Página no encontrada.")
	})
	return r
}

// now - "сегодня" для новых форм, по тем же часам, что и валидация.
func (h *Handler) now() time.Time {
	return h.tasks.Validator().Now()
}

// handleContextError делает понятную обработку ошибок отмены/таймаута.
//
// Возвращает true, если ошибка обработана и дальше отвечать не нужно.
func (h *Handler) handleContextError(w http.ResponseWriter, r *http.Request, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, context.Canceled):
		// Клиент ушёл, отвечать уже некому.
		h.log.WithField("path", r.URL.Path).Debug("request canceled")
		return true
	case errors.Is(err, context.DeadlineExceeded):
		h.renderError(w, r, http.StatusGatewayTimeout, msgTimeout)
		return true
	default:
		return false
	}
}
