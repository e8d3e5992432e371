package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"task-board/internal/forms"
	"task-board/internal/tasks"
)

//go:embed templates/*.html
var templateFS embed.FS

// Страницы. Каждая собирается из layout.html и своего файла.
const (
	pageProjects    = "projects.html"
	pageProjectForm = "project_form.html"
	pageProject     = "project.html"
	pageTaskForm    = "task_form.html"
	pageTask        = "task.html"
	pageError       = "error.html"
)

var funcs = template.FuncMap{
	"date": forms.DateOnly,
	"deref": func(p *string) string {
		return forms.Value(p)
	},
	"statusClass": func(s tasks.TaskStatus) string {
		switch s {
		case tasks.StatusCompleted:
			return "success"
		case tasks.StatusInProgress:
			return "primary"
		case tasks.StatusCanceled:
			return "danger"
		default:
			return "info"
		}
	},
	"confirmDeleteProject": confirmDeleteProject,
	"confirmDeleteTask":    confirmDeleteTask,
}

var pages = mustParsePages(pageProjects, pageProjectForm, pageProject, pageTaskForm, pageTask, pageError)

func mustParsePages(names ...string) map[string]*template.Template {
	out := make(map[string]*template.Template, len(names))
	for _, name := range names {
		t := template.Must(template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name))
		out[name] = t
	}
	return out
}

// layout - общие данные всех страниц.
type layout struct {
	Title  string
	Banner *Banner
	Path   string // для ссылки "закрыть уведомление"
}

// render рендерит страницу в буфер и только потом пишет ответ,
// чтобы ошибка шаблона не оставила полстраницы с кодом 200.
func (h *Handler) render(w http.ResponseWriter, status int, page string, data any) {
	t, ok := pages[page]
	if !ok {
		h.log.WithField("page", page).Error("unknown page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		h.log.WithError(err).WithField("page", page).Error("render page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// errorPage - страница с сообщением и ссылкой назад.
type errorPage struct {
	layout
	Message string
	Back    string
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.render(w, status, pageError, errorPage{
		layout:  layout{Title: fmt.Sprintf("%d", status), Path: r.URL.Path},
		Message: message,
		Back:    "/projects",
	})
}
