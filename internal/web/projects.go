package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"task-board/internal/apiclient"
	"task-board/internal/forms"
	"task-board/internal/projects"
	"task-board/internal/tasks"
)

type projectsPage struct {
	layout
	Projects  []projects.ProjectDto
	LoadError string
}

type projectFormPage struct {
	layout
	Edit   bool
	Action string
	ID     string
	Status string
	Form   projects.Fields
	Errors forms.FieldErrors
}

type projectPage struct {
	layout
	Project    projects.ProjectDto
	Tasks      []tasks.TaskItemDto
	TasksError string
	Statuses   []tasks.TaskStatus
}

// projectFields читает поля проекта из тела формы.
func projectFields(r *http.Request) projects.Fields {
	return projects.Fields{
		Name:        r.PostFormValue(projects.FieldName),
		Description: r.PostFormValue(projects.FieldDescription),
		StartDate:   r.PostFormValue(projects.FieldStartDate),
		EndDate:     r.PostFormValue(projects.FieldEndDate),
	}
}

func (h *Handler) listProjects(w http.ResponseWriter, r *http.Request) {
	page := projectsPage{layout: layout{Title: "Gestión de Proyectos", Path: r.URL.Path}}
	page.Banner = takeFlash(w, r)

	list, err := h.projects.List(r.Context())
	if h.handleContextError(w, r, err) {
		return
	}
	if err != nil {
		h.log.WithError(err).Warn("list projects")
		page.LoadError = failure(errLoadProjects, err)
		h.render(w, http.StatusBadGateway, pageProjects, page)
		return
	}

	page.Projects = list
	h.render(w, http.StatusOK, pageProjects, page)
}

func (h *Handler) newProject(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, pageProjectForm, projectFormPage{
		layout: layout{Title: "Crear Nuevo Proyecto", Path: r.URL.Path},
		Action: "/projects",
		Form:   projects.NewCreateForm(h.now()).Fields,
	})
}

func (h *Handler) createProject(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Formulario inválido.")
		return
	}
	form := projects.CreateForm{Fields: projectFields(r)}
	page := projectFormPage{
		layout: layout{Title: "Crear Nuevo Proyecto", Path: "/projects/new"},
		Action: "/projects",
		Form:   form.Fields,
	}

	_, errs, err := h.projects.Submit(r.Context(), form)
	if h.handleContextError(w, r, err) {
		return
	}
	switch {
	case !errs.Valid():
		page.Errors = errs
		h.render(w, http.StatusUnprocessableEntity, pageProjectForm, page)
	case err != nil:
		h.log.WithError(err).Warn("create project")
		page.Banner = h.errorBanner(failure(errCreateProject, err))
		h.render(w, http.StatusBadGateway, pageProjectForm, page)
	default:
		redirectWithFlash(w, r, "/projects", h.successBanner(msgProjectCreated))
	}
}

// loadProject достаёт проект или сам отвечает страницей ошибки.
func (h *Handler) loadProject(w http.ResponseWriter, r *http.Request, id string) (*projects.ProjectDto, bool) {
	p, err := h.projects.Get(r.Context(), id)
	if h.handleContextError(w, r, err) {
		return nil, false
	}
	switch {
	case apiclient.IsNotFound(err), err == nil && p == nil:
		h.renderError(w, r, http.StatusNotFound, msgProjectNotFound)
		return nil, false
	case err != nil:
		h.log.WithError(err).WithField("project_id", id).Warn("get project")
		h.renderError(w, r, http.StatusBadGateway, failure(errLoadProject, err))
		return nil, false
	}
	return p, true
}

func (h *Handler) editProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, ok := h.loadProject(w, r, id)
	if !ok {
		return
	}

	form := projects.NewEditForm(*p)
	h.render(w, http.StatusOK, pageProjectForm, projectFormPage{
		layout: layout{Title: "Editar Proyecto", Path: r.URL.Path},
		Edit:   true,
		Action: "/projects/" + id,
		ID:     form.ID,
		Status: form.Status,
		Form:   form.Fields,
	})
}

func (h *Handler) updateProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Formulario inválido.")
		return
	}

	form := projects.EditForm{Fields: projectFields(r), ID: id, Status: r.PostFormValue("status")}
	page := projectFormPage{
		layout: layout{Title: "Editar Proyecto", Path: "/projects/" + id + "/edit"},
		Edit:   true,
		Action: "/projects/" + id,
		ID:     id,
		Status: form.Status,
		Form:   form.Fields,
	}

	_, errs, err := h.projects.Submit(r.Context(), form)
	if h.handleContextError(w, r, err) {
		return
	}
	switch {
	case !errs.Valid():
		page.Errors = errs
		h.render(w, http.StatusUnprocessableEntity, pageProjectForm, page)
	case err != nil:
		h.log.WithError(err).WithField("project_id", id).Warn("update project")
		page.Banner = h.errorBanner(failure(errUpdateProject, err))
		h.render(w, http.StatusBadGateway, pageProjectForm, page)
	default:
		redirectWithFlash(w, r, "/projects", h.successBanner(msgProjectUpdated))
	}
}

func (h *Handler) deleteProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := h.projects.Delete(r.Context(), id)
	if h.handleContextError(w, r, err) {
		return
	}
	if err != nil {
		h.log.WithError(err).WithField("project_id", id).Warn("delete project")
		redirectWithFlash(w, r, "/projects", h.errorBanner(failure(errDeleteProject, err)))
		return
	}
	redirectWithFlash(w, r, "/projects", h.successBanner(msgProjectDeleted))
}

func (h *Handler) showProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	banner := takeFlash(w, r)

	p, ok := h.loadProject(w, r, id)
	if !ok {
		return
	}

	page := projectPage{
		layout:   layout{Title: p.Name, Banner: banner, Path: r.URL.Path},
		Project:  *p,
		Statuses: tasks.Statuses,
	}

	list, err := h.tasks.ListByProject(r.Context(), id)
	if h.handleContextError(w, r, err) {
		return
	}
	if err != nil {
		h.log.WithError(err).WithField("project_id", id).Warn("list tasks")
		page.TasksError = failure(errLoadTasks, err)
	}
	page.Tasks = list
	h.render(w, http.StatusOK, pageProject, page)
}
