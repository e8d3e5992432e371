package tasks

import "task-board/internal/forms"

// updateFromDto копирует поля задачи в команду обновления как есть.
func updateFromDto(task TaskItemDto) UpdateTaskCommand {
	return UpdateTaskCommand{
		ID:               task.ID,
		ProjectID:        task.ProjectID,
		Title:            task.Title,
		Description:      task.Description,
		DueDate:          task.DueDate,
		Status:           task.Status,
		Priority:         task.Priority,
		CompletionDate:   task.CompletionDate,
		AssignedToUserID: task.AssignedToUserID,
	}
}

// WithStatus - команда обновления, совпадающая с задачей во всём, кроме статуса.
//
// Поля не валидируются (задача из API считается валидной), даты копируются
// без переформатирования - для этого есть NormalizeDates.
func WithStatus(task TaskItemDto, status TaskStatus) UpdateTaskCommand {
	cmd := updateFromDto(task)
	cmd.Status = status
	return cmd
}

// WithAssignee - то же, что WithStatus, но меняется исполнитель.
// nil снимает исполнителя.
func WithAssignee(task TaskItemDto, userID *string) UpdateTaskCommand {
	cmd := updateFromDto(task)
	cmd.AssignedToUserID = userID
	return cmd
}

// NormalizeDates переводит даты команды из ISO 8601 в YYYY-MM-DD.
func NormalizeDates(cmd UpdateTaskCommand) UpdateTaskCommand {
	cmd.DueDate = forms.DateOnly(cmd.DueDate)
	cmd.CompletionDate = forms.NullableDate(cmd.CompletionDate)
	return cmd
}
