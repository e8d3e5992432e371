package tasks

import "task-board/internal/forms"

// Command - запрос на изменение: CreateTaskCommand или UpdateTaskCommand.
//
// Команды - значения: после построения их не меняют, а при необходимости
// строят новую.
type Command interface {
	isCommand()
}

// CreateTaskCommand - тело POST /TaskItems.
//
// Статуса и приоритета здесь нет: их выставляет сервер.
type CreateTaskCommand struct {
	ProjectID        string  `json:"projectId"`
	Title            string  `json:"title"`
	Description      *string `json:"description"`
	DueDate          string  `json:"dueDate"` // YYYY-MM-DD
	AssignedToUserID *string `json:"assignedToUserId"`
}

// UpdateTaskCommand - тело PUT /TaskItems/{id}.
type UpdateTaskCommand struct {
	ID               string       `json:"id"`
	ProjectID        string       `json:"projectId"`
	Title            string       `json:"title"`
	Description      *string      `json:"description"`
	DueDate          string       `json:"dueDate"`
	Status           TaskStatus   `json:"status"`
	Priority         TaskPriority `json:"priority"`
	CompletionDate   *string      `json:"completionDate"`
	AssignedToUserID *string      `json:"assignedToUserId"`
}

func (CreateTaskCommand) isCommand() {}
func (UpdateTaskCommand) isCommand() {}

// Command строит команду создания из формы.
//
// Форма должна быть уже провалидирована: повторной проверки здесь нет.
func (f CreateForm) Command() CreateTaskCommand {
	return CreateTaskCommand{
		ProjectID:        f.ProjectID,
		Title:            f.Title,
		Description:      forms.Nullable(f.Description),
		DueDate:          f.DueDate,
		AssignedToUserID: forms.Nullable(f.AssignedToUserID),
	}
}

// Command строит команду обновления из формы.
//
// Форма должна быть уже провалидирована. Если статус или приоритет пусты,
// они так и уйдут в команду.
func (f EditForm) Command() UpdateTaskCommand {
	return UpdateTaskCommand{
		ID:               f.ID,
		ProjectID:        f.ProjectID,
		Title:            f.Title,
		Description:      forms.Nullable(f.Description),
		DueDate:          f.DueDate,
		Status:           f.Status,
		Priority:         f.Priority,
		CompletionDate:   forms.Nullable(f.CompletionDate),
		AssignedToUserID: forms.Nullable(f.AssignedToUserID),
	}
}

// ToCommand проецирует провалидированную форму в команду нужного вида:
// CreateForm -> CreateTaskCommand, EditForm -> UpdateTaskCommand.
func ToCommand(state FormState) Command {
	switch f := state.(type) {
	case CreateForm:
		return f.Command()
	case *CreateForm:
		return f.Command()
	case EditForm:
		return f.Command()
	case *EditForm:
		return f.Command()
	default:
		return nil
	}
}
