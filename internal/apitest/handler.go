package apitest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	appMiddleware "task-board/internal/middleware"
	"task-board/internal/projects"
	"task-board/internal/tasks"
)

// Handler - HTTP-слой поддельного API.
//
// Здесь лежит всё, что относится к HTTP: роуты, парсинг JSON, коды ответов.
// Ответы повторяют контракт настоящего API: POST -> 201 с телом,
// PUT и DELETE -> 204 без тела, ошибки -> {"message": "..."}.
type Handler struct {
	store *Store
}

// NewHandler создаёт Handler поверх хранилища.
func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// Router собирает HTTP-роутер API.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(appMiddleware.JSONHeaderMiddleware)

	r.Route("/Projects", func(r chi.Router) {
		r.Get("/", h.listProjects)
		r.Post("/", h.createProject)
		r.Get("/{id}", h.getProject)
		r.Put("/{id}", h.updateProject)
		r.Delete("/{id}", h.deleteProject)
	})

	r.Route("/TaskItems", func(r chi.Router) {
		r.Post("/", h.createTask)
		r.Get("/project/{projectId}", h.listTasks)
		r.Get("/{id}", h.getTask)
		r.Put("/{id}", h.updateTask)
		r.Delete("/{id}", h.deleteTask)
	})
	return r
}

// writeJSON пишет статус и JSON-тело.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError пишет ошибку в формате API.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

func (h *Handler) listProjects(w http.ResponseWriter, r *http.Request) {
	if h.handleContextError(w, r.Context().Err()) {
		return
	}
	writeJSON(w, http.StatusOK, h.store.Projects())
}

func (h *Handler) getProject(w http.ResponseWriter, r *http.Request) {
	p, ok := h.store.Project(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "Proyecto no encontrado.")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) createProject(w http.ResponseWriter, r *http.Request) {
	var cmd projects.CreateProjectCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido.")
		return
	}
	if cmd.Name == "" {
		writeError(w, http.StatusBadRequest, "El nombre del proyecto es obligatorio.")
		return
	}
	writeJSON(w, http.StatusCreated, h.store.CreateProject(cmd))
}

func (h *Handler) updateProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var cmd projects.UpdateProjectCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido.")
		return
	}
	if cmd.ID != id {
		writeError(w, http.StatusBadRequest, "El ID del proyecto no coincide con la URL.")
		return
	}
	if _, ok := h.store.UpdateProject(id, cmd); !ok {
		writeError(w, http.StatusNotFound, "Proyecto no encontrado.")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteProject(w http.ResponseWriter, r *http.Request) {
	if !h.store.DeleteProject(chi.URLParam(r, "id")) {
		writeError(w, http.StatusNotFound, "Proyecto no encontrado.")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listTasks(w http.ResponseWriter, r *http.Request) {
	if h.handleContextError(w, r.Context().Err()) {
		return
	}
	writeJSON(w, http.StatusOK, h.store.TasksByProject(chi.URLParam(r, "projectId")))
}

func (h *Handler) getTask(w http.ResponseWriter, r *http.Request) {
	t, ok := h.store.Task(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "Tarea no encontrada.")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *Handler) createTask(w http.ResponseWriter, r *http.Request) {
	var cmd tasks.CreateTaskCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido.")
		return
	}
	if cmd.Title == "" {
		writeError(w, http.StatusBadRequest, "El título es obligatorio.")
		return
	}

	created, err := h.store.CreateTask(cmd)
	if errors.Is(err, errProjectNotFound) {
		writeError(w, http.StatusBadRequest, "El proyecto indicado no existe.")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) updateTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var cmd tasks.UpdateTaskCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido.")
		return
	}
	if cmd.ID != id {
		writeError(w, http.StatusBadRequest, "El ID de la tarea no coincide con la URL.")
		return
	}
	if !cmd.Status.Valid() || !cmd.Priority.Valid() {
		writeError(w, http.StatusBadRequest, "Estado o prioridad inválidos.")
		return
	}
	if _, ok := h.store.UpdateTask(id, cmd); !ok {
		writeError(w, http.StatusNotFound, "Tarea no encontrada.")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteTask(w http.ResponseWriter, r *http.Request) {
	if !h.store.DeleteTask(chi.URLParam(r, "id")) {
		writeError(w, http.StatusNotFound, "Tarea no encontrada.")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleContextError делает понятную обработку ошибок отмены/таймаута.
func (h *Handler) handleContextError(w http.ResponseWriter, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, context.Canceled):
		// Клиент ушёл, отвечать уже некому.
		return true
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "Tiempo de espera agotado.")
		return true
	default:
		return false
	}
}
