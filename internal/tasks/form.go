package tasks

import (
	"errors"
	"fmt"
	"time"

	"task-board/internal/forms"
)

// ErrUnknownField - у формы нет поля с таким именем.
var ErrUnknownField = errors.New("unknown form field")

// Имена полей формы. Совпадают с JSON-именами в командах и ключами FieldErrors.
const (
	FieldProjectID        = "projectId"
	FieldTitle            = "title"
	FieldDescription      = "description"
	FieldDueDate          = "dueDate"
	FieldAssignedToUserID = "assignedToUserId"
	FieldID               = "id"
	FieldStatus           = "status"
	FieldPriority         = "priority"
	FieldCompletionDate   = "completionDate"
)

// FormState - редактируемое состояние формы задачи.
//
// Это закрытое объединение из двух вариантов: CreateForm (создание)
// и EditForm (редактирование). Режим формы определяется её типом,
// поэтому статус и приоритет физически есть только у EditForm.
type FormState interface {
	taskFields() TaskFields
}

// TaskFields - поля, общие для создания и редактирования.
//
// Значения - сырые строки из формы. Пустая строка в необязательном поле
// означает "значение отсутствует".
type TaskFields struct {
	ProjectID        string
	Title            string
	Description      string
	DueDate          string // YYYY-MM-DD
	AssignedToUserID string
}

// CreateForm - форма создания задачи.
type CreateForm struct {
	TaskFields
}

// EditForm - форма редактирования существующей задачи.
type EditForm struct {
	TaskFields
	ID             string
	Status         TaskStatus
	Priority       TaskPriority
	CompletionDate string // YYYY-MM-DD или пусто
}

func (f CreateForm) taskFields() TaskFields { return f.TaskFields }
func (f EditForm) taskFields() TaskFields   { return f.TaskFields }

// NewCreateForm открывает пустую форму создания задачи в проекте.
// Срок по умолчанию - сегодняшняя дата.
func NewCreateForm(projectID string, now time.Time) CreateForm {
	return CreateForm{TaskFields: TaskFields{
		ProjectID: projectID,
		DueDate:   forms.Today(now),
	}}
}

// NewEditForm открывает форму редактирования по данным задачи из API.
// Даты переводятся из ISO 8601 в YYYY-MM-DD для полей типа date.
func NewEditForm(task TaskItemDto) EditForm {
	return EditForm{
		TaskFields: TaskFields{
			ProjectID:        task.ProjectID,
			Title:            task.Title,
			Description:      forms.Value(task.Description),
			DueDate:          forms.DateOnly(task.DueDate),
			AssignedToUserID: forms.Value(task.AssignedToUserID),
		},
		ID:             task.ID,
		Status:         task.Status,
		Priority:       task.Priority,
		CompletionDate: forms.DateOnly(forms.Value(task.CompletionDate)),
	}
}

// set меняет одно общее поле. false - поле не общее.
func (f *TaskFields) set(field, value string) bool {
	switch field {
	case FieldProjectID:
		f.ProjectID = value
	case FieldTitle:
		f.Title = value
	case FieldDescription:
		f.Description = value
	case FieldDueDate:
		f.DueDate = value
	case FieldAssignedToUserID:
		f.AssignedToUserID = value
	default:
		return false
	}
	return true
}

// SetField возвращает копию формы с изменённым полем: так форма меняется
// на каждое нажатие клавиши или выбор в списке.
//
// Поля режима редактирования (id, status, priority, completionDate)
// у CreateForm нет, попытка их задать даёт ErrUnknownField.
func SetField(state FormState, field, value string) (FormState, error) {
	switch f := state.(type) {
	case CreateForm:
		if !f.set(field, value) {
			return state, fmt.Errorf("create form: %w: %q", ErrUnknownField, field)
		}
		return f, nil
	case *CreateForm:
		return SetField(*f, field, value)
	case EditForm:
		if f.set(field, value) {
			return f, nil
		}
		switch field {
		case FieldID:
			f.ID = value
		case FieldStatus:
			f.Status = TaskStatus(value)
		case FieldPriority:
			f.Priority = TaskPriority(value)
		case FieldCompletionDate:
			f.CompletionDate = value
		default:
			return state, fmt.Errorf("edit form: %w: %q", ErrUnknownField, field)
		}
		return f, nil
	case *EditForm:
		return SetField(*f, field, value)
	default:
		return state, fmt.Errorf("unsupported form state %T", state)
	}
}
