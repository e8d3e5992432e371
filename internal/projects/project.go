// Package projects - проекты: модель API, формы, команды, клиент и сервис.
//
// Устроен так же, как пакет tasks, но без собственных правил валидации
// полей: на границе команды проверяется только то, без чего запрос
// заведомо бессмысленный (имя и дата начала).
package projects

import (
	"time"

	"task-board/internal/forms"
)

// ProjectDto - проект в том виде, в каком его отдаёт API.
type ProjectDto struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	StartDate   string  `json:"startDate"`
	EndDate     *string `json:"endDate"`
	Status      string  `json:"status"`
}

// CreateProjectCommand - тело POST /Projects.
type CreateProjectCommand struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
	StartDate   string  `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate     *string `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateProjectCommand - тело PUT /Projects/{id}.
type UpdateProjectCommand struct {
	ID          string  `json:"id" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
	StartDate   string  `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate     *string `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
	Status      string  `json:"status"`
}

// Имена полей формы проекта.
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldStartDate   = "startDate"
	FieldEndDate     = "endDate"
)

var messages = forms.Messages{
	FieldName: {
		"required": "El nombre del proyecto es requerido.",
	},
	FieldStartDate: {
		"required": "La fecha de inicio es requerida.",
		"datetime": "La fecha de inicio no es una fecha válida.",
	},
	FieldEndDate: {
		"datetime": "La fecha de fin no es una fecha válida.",
	},
}

// FormState - форма проекта: CreateForm или EditForm.
type FormState interface {
	projectFields() Fields
}

// Fields - общие поля формы проекта, сырые строки.
type Fields struct {
	Name        string
	Description string
	StartDate   string // YYYY-MM-DD
	EndDate     string // YYYY-MM-DD или пусто
}

// CreateForm - форма создания проекта.
type CreateForm struct {
	Fields
}

// EditForm - форма редактирования проекта. Статус сохраняется как был.
type EditForm struct {
	Fields
	ID     string
	Status string
}

func (f CreateForm) projectFields() Fields { return f.Fields }
func (f EditForm) projectFields() Fields   { return f.Fields }

// NewCreateForm - пустая форма, дата начала - сегодня.
func NewCreateForm(now time.Time) CreateForm {
	return CreateForm{Fields: Fields{StartDate: forms.Today(now)}}
}

// NewEditForm - форма по данным проекта из API.
func NewEditForm(p ProjectDto) EditForm {
	return EditForm{
		Fields: Fields{
			Name:        p.Name,
			Description: forms.Value(p.Description),
			StartDate:   forms.DateOnly(p.StartDate),
			EndDate:     forms.DateOnly(forms.Value(p.EndDate)),
		},
		ID:     p.ID,
		Status: p.Status,
	}
}

// Command строит команду создания. Пустые строки становятся null.
func (f CreateForm) Command() CreateProjectCommand {
	return CreateProjectCommand{
		Name:        f.Name,
		Description: forms.Nullable(f.Description),
		StartDate:   f.StartDate,
		EndDate:     forms.Nullable(f.EndDate),
	}
}

// Command строит команду обновления.
func (f EditForm) Command() UpdateProjectCommand {
	return UpdateProjectCommand{
		ID:          f.ID,
		Name:        f.Name,
		Description: forms.Nullable(f.Description),
		StartDate:   f.StartDate,
		EndDate:     forms.Nullable(f.EndDate),
		Status:      f.Status,
	}
}
