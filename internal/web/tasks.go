package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"task-board/internal/apiclient"
	"task-board/internal/forms"
	"task-board/internal/tasks"
)

// Поля, которые браузер присылает в форме задачи.
var (
	createFormFields = []string{
		tasks.FieldTitle,
		tasks.FieldDescription,
		tasks.FieldDueDate,
		tasks.FieldAssignedToUserID,
	}
	editFormFields = append(append([]string{}, createFormFields...),
		tasks.FieldProjectID,
		tasks.FieldStatus,
		tasks.FieldPriority,
		tasks.FieldCompletionDate,
	)
)

// errNoTask - API ответило на GET задачи пустым телом.
var errNoTask = errors.New(msgTaskNotFound)

// Режимы формы в скрытом поле "mode" (нужно только для проверки на лету).
const (
	modeCreate = "create"
	modeEdit   = "edit"
)

// fieldProjectName - скрытое поле с названием проекта для заголовка формы.
const fieldProjectName = "projectName"

type taskFormPage struct {
	layout
	Edit        bool
	Action      string
	Cancel      string
	ProjectName string
	Form        tasks.EditForm
	Errors      forms.FieldErrors
	Statuses    []tasks.TaskStatus
	Priorities  []tasks.TaskPriority
}

type taskPage struct {
	layout
	Task tasks.TaskItemDto
}

// fillTaskForm переносит присланные поля в форму через SetField:
// неизвестные форме поля не принимаются.
func fillTaskForm(r *http.Request, state tasks.FormState, fields []string) (tasks.FormState, error) {
	for _, field := range fields {
		values, ok := r.PostForm[field]
		if !ok {
			continue
		}
		var err error
		if state, err = tasks.SetField(state, field, values[0]); err != nil {
			return nil, err
		}
	}
	return state, nil
}

// editView - общее представление формы для шаблона.
func editView(state tasks.FormState) tasks.EditForm {
	switch f := state.(type) {
	case tasks.CreateForm:
		return tasks.EditForm{TaskFields: f.TaskFields}
	case tasks.EditForm:
		return f
	default:
		return tasks.EditForm{}
	}
}

// taskFormPage собирает страницу формы. Path всегда указывает на GET-адрес
// формы: после неудачного POST ссылка "закрыть" не должна вести на POST-роут.
// ProjectName при повторном показе берётся из скрытого поля формы.
func (h *Handler) taskFormPage(r *http.Request, state tasks.FormState) taskFormPage {
	page := taskFormPage{
		Form:        editView(state),
		ProjectName: r.PostFormValue(fieldProjectName),
		Statuses:    tasks.Statuses,
		Priorities:  tasks.Priorities,
	}
	if f, ok := state.(tasks.EditForm); ok {
		page.Edit = true
		page.Title = "Editar Tarea"
		page.Action = "/tasks/" + f.ID
		page.Path = "/tasks/" + f.ID + "/edit"
	} else {
		page.Title = "Crear Nueva Tarea"
		page.Action = "/projects/" + page.Form.ProjectID + "/tasks"
		page.Path = "/projects/" + page.Form.ProjectID + "/tasks/new"
	}
	page.Cancel = "/projects/" + page.Form.ProjectID
	return page
}

// loadTask достаёт задачу или сам отвечает страницей ошибки.
func (h *Handler) loadTask(w http.ResponseWriter, r *http.Request, id string) (*tasks.TaskItemDto, bool) {
	t, err := h.tasks.Get(r.Context(), id)
	if h.handleContextError(w, r, err) {
		return nil, false
	}
	switch {
	case apiclient.IsNotFound(err), err == nil && t == nil:
		h.renderError(w, r, http.StatusNotFound, msgTaskNotFound)
		return nil, false
	case err != nil:
		h.log.WithError(err).WithField("task_id", id).Warn("get task")
		h.renderError(w, r, http.StatusBadGateway, failure(errLoadTask, err))
		return nil, false
	}
	return t, true
}

func (h *Handler) newTask(w http.ResponseWriter, r *http.Request) {
	p, ok := h.loadProject(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	page := h.taskFormPage(r, tasks.NewCreateForm(p.ID, h.now()))
	page.ProjectName = p.Name
	h.render(w, http.StatusOK, pageTaskForm, page)
}

func (h *Handler) createTask(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Formulario inválido.")
		return
	}

	// Проект берётся из URL, а не из тела формы.
	state, err := fillTaskForm(r, tasks.CreateForm{TaskFields: tasks.TaskFields{ProjectID: projectID}}, createFormFields)
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Formulario inválido.")
		return
	}

	page := h.taskFormPage(r, state)
	_, errs, err := h.tasks.Submit(r.Context(), state)
	if h.handleContextError(w, r, err) {
		return
	}
	switch {
	case !errs.Valid():
		page.Errors = errs
		h.render(w, http.StatusUnprocessableEntity, pageTaskForm, page)
	case err != nil:
		h.log.WithError(err).WithField("project_id", projectID).Warn("create task")
		page.Banner = h.errorBanner(failure(errCreateTask, err))
		h.render(w, http.StatusBadGateway, pageTaskForm, page)
	default:
		redirectWithFlash(w, r, "/projects/"+projectID, h.successBanner(msgTaskCreated))
	}
}

func (h *Handler) showTask(w http.ResponseWriter, r *http.Request) {
	t, ok := h.loadTask(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	h.render(w, http.StatusOK, pageTask, taskPage{
		layout: layout{Title: t.Title, Path: r.URL.Path},
		Task:   *t,
	})
}

func (h *Handler) editTask(w http.ResponseWriter, r *http.Request) {
	t, ok := h.loadTask(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	page := h.taskFormPage(r, tasks.NewEditForm(*t))
	page.ProjectName = t.ProjectName
	h.render(w, http.StatusOK, pageTaskForm, page)
}

func (h *Handler) updateTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Formulario inválido.")
		return
	}

	state, err := fillTaskForm(r, tasks.EditForm{ID: id}, editFormFields)
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Formulario inválido.")
		return
	}

	page := h.taskFormPage(r, state)
	_, errs, err := h.tasks.Submit(r.Context(), state)
	if h.handleContextError(w, r, err) {
		return
	}
	switch {
	case !errs.Valid():
		page.Errors = errs
		h.render(w, http.StatusUnprocessableEntity, pageTaskForm, page)
	case err != nil:
		h.log.WithError(err).WithField("task_id", id).Warn("update task")
		page.Banner = h.errorBanner(failure(errUpdateTask, err))
		h.render(w, http.StatusBadGateway, pageTaskForm, page)
	default:
		redirectWithFlash(w, r, projectURL(page.Form.ProjectID), h.successBanner(msgTaskUpdated))
	}
}

// projectURL - страница проекта или список проектов, если проект неизвестен.
func projectURL(id string) string {
	if id == "" {
		return "/projects"
	}
	return "/projects/" + id
}

// backTo - страница проекта из скрытого поля формы.
func backTo(r *http.Request) string {
	return projectURL(r.PostFormValue(tasks.FieldProjectID))
}

func (h *Handler) changeTaskStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Formulario inválido.")
		return
	}
	status := tasks.TaskStatus(r.PostFormValue(tasks.FieldStatus))

	t, err := h.tasks.Get(r.Context(), id)
	if h.handleContextError(w, r, err) {
		return
	}
	if err == nil && t == nil {
		err = errNoTask
	}
	if err != nil {
		redirectWithFlash(w, r, backTo(r), h.errorBanner(failure(errStatusTask, err)))
		return
	}
	target := projectURL(t.ProjectID)

	changed, err := h.tasks.ChangeStatus(r.Context(), *t, status)
	if h.handleContextError(w, r, err) {
		return
	}
	switch {
	case errors.Is(err, tasks.ErrInvalidStatus):
		redirectWithFlash(w, r, target, h.errorBanner(errStatusTask+": Estado inválido."))
	case err != nil:
		h.log.WithError(err).WithField("task_id", id).Warn("change task status")
		redirectWithFlash(w, r, target, h.errorBanner(failure(errStatusTask, err)))
	case !changed:
		redirectWithFlash(w, r, target, nil)
	default:
		redirectWithFlash(w, r, target, h.successBanner(statusChanged(t.Title, status)))
	}
}

func (h *Handler) assignTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Formulario inválido.")
		return
	}
	userID := r.PostFormValue(tasks.FieldAssignedToUserID)

	t, err := h.tasks.Get(r.Context(), id)
	if h.handleContextError(w, r, err) {
		return
	}
	if err == nil && t == nil {
		err = errNoTask
	}
	if err != nil {
		redirectWithFlash(w, r, backTo(r), h.errorBanner(failure(errAssignTask, err)))
		return
	}
	target := projectURL(t.ProjectID)

	errs, err := h.tasks.Assign(r.Context(), *t, userID)
	if h.handleContextError(w, r, err) {
		return
	}
	if !errs.Valid() {
		redirectWithFlash(w, r, target, h.errorBanner(errAssignTask+": "+errs[tasks.FieldAssignedToUserID]))
		return
	}
	if err != nil {
		h.log.WithError(err).WithField("task_id", id).Warn("assign task")
		redirectWithFlash(w, r, target, h.errorBanner(failure(errAssignTask, err)))
		return
	}
	redirectWithFlash(w, r, target, h.successBanner(msgTaskAssigned))
}

func (h *Handler) deleteTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Formulario inválido.")
		return
	}

	err := h.tasks.Delete(r.Context(), id)
	if h.handleContextError(w, r, err) {
		return
	}
	if err != nil {
		h.log.WithError(err).WithField("task_id", id).Warn("delete task")
		redirectWithFlash(w, r, backTo(r), h.errorBanner(failure(errDeleteTask, err)))
		return
	}
	redirectWithFlash(w, r, backTo(r), h.successBanner(msgTaskDeleted))
}

// validateTask проверяет одно поле формы "на лету".
//
// Тело - вся форма (как при отправке), ?field= - какое поле проверить.
// Ответ - JSON {"<поле>": "<сообщение>"}, пустой объект, если поле валидно.
func (h *Handler) validateTask(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Formulario inválido."})
		return
	}

	var (
		state  tasks.FormState
		fields []string
	)
	if r.PostFormValue("mode") == modeEdit {
		state, fields = tasks.EditForm{ID: r.PostFormValue(tasks.FieldID)}, editFormFields
	} else {
		state, fields = tasks.CreateForm{TaskFields: tasks.TaskFields{ProjectID: r.PostFormValue(tasks.FieldProjectID)}}, createFormFields
	}

	field := r.URL.Query().Get("field")
	if !contains(fields, field) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Campo desconocido."})
		return
	}

	state, err := fillTaskForm(r, state, fields)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Formulario inválido."})
		return
	}

	errs := h.tasks.Validator().ValidateField(state, field)
	if errs == nil {
		errs = forms.FieldErrors{}
	}
	writeJSON(w, http.StatusOK, errs)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
