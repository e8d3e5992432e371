package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"task-board/internal/apiclient"
	"task-board/internal/tasks"
)

var (
	errTaskNotFound  = errors.New("La tarea no fue encontrada o no existe.")
	errInvalidStatus = errors.New("Error al cambiar el estado de la tarea: Estado inválido.")
)

func newTasksCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"task", "t"},
		Short:   "Manage tasks",
	}
	cmd.AddCommand(
		newTasksListCommand(a),
		newTasksGetCommand(a),
		newTasksCreateCommand(a),
		newTasksUpdateCommand(a),
		newTasksStatusCommand(a),
		newTasksAssignCommand(a),
		newTasksDeleteCommand(a),
	)
	return cmd
}

// getTask загружает задачу; "не найдено" и пустой ответ дают errTaskNotFound.
func (a *app) getTask(cmd *cobra.Command, id string) (*tasks.TaskItemDto, error) {
	t, err := a.tasks.Get(cmd.Context(), id)
	switch {
	case apiclient.IsNotFound(err), err == nil && t == nil:
		return nil, errTaskNotFound
	case err != nil:
		return nil, failed("Error al cargar la tarea", err)
	}
	return t, nil
}

func newTasksListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list <projectId>",
		Short: "List tasks of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.tasks.ListByProject(cmd.Context(), args[0])
			if err != nil {
				return failed("Error al cargar las tareas", err)
			}
			return a.printTasks(cmd.OutOrStdout(), list)
		},
	}
}

func newTasksGetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.getTask(cmd, args[0])
			if err != nil {
				return err
			}
			return a.printTask(cmd.OutOrStdout(), t)
		},
	}
}

// taskFlag - флаг CLI и поле формы, в которое он попадает.
type taskFlag struct {
	name  string
	field string
	usage string
	value string
}

func createTaskFlags() []*taskFlag {
	return []*taskFlag{
		{name: "title", field: tasks.FieldTitle, usage: "task title"},
		{name: "description", field: tasks.FieldDescription, usage: "task description"},
		{name: "due-date", field: tasks.FieldDueDate, usage: "due date, YYYY-MM-DD (default today)"},
		{name: "assignee", field: tasks.FieldAssignedToUserID, usage: "assigned user GUID"},
	}
}

func editTaskFlags() []*taskFlag {
	return append(createTaskFlags(),
		&taskFlag{name: "status", field: tasks.FieldStatus, usage: "Pending, InProgress, Completed or Canceled"},
		&taskFlag{name: "priority", field: tasks.FieldPriority, usage: "Low, Medium or High"},
		&taskFlag{name: "completion-date", field: tasks.FieldCompletionDate, usage: "completion date, YYYY-MM-DD"},
	)
}

func bindTaskFlags(cmd *cobra.Command, flags []*taskFlag) {
	for _, f := range flags {
		cmd.Flags().StringVar(&f.value, f.name, "", f.usage)
	}
}

// applyTaskFlags меняет форму теми же шагами, что и ввод в браузере:
// по одному полю через SetField, и только для явно заданных флагов.
func applyTaskFlags(cmd *cobra.Command, state tasks.FormState, flags []*taskFlag) (tasks.FormState, error) {
	for _, f := range flags {
		if !cmd.Flags().Changed(f.name) {
			continue
		}
		next, err := tasks.SetField(state, f.field, f.value)
		if err != nil {
			return state, err
		}
		state = next
	}
	return state, nil
}

func newTasksCreateCommand(a *app) *cobra.Command {
	flags := createTaskFlags()

	cmd := &cobra.Command{
		Use:   "create <projectId>",
		Short: "Create a task in a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := applyTaskFlags(cmd, tasks.NewCreateForm(args[0], a.tasks.Validator().Now()), flags)
			if err != nil {
				return err
			}

			t, errs, err := a.tasks.Submit(cmd.Context(), state)
			if !errs.Valid() {
				return printFieldErrors(cmd.ErrOrStderr(), errs)
			}
			if err != nil {
				return failed("Error al crear la tarea", err)
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "Tarea creada exitosamente!")
			if t != nil {
				return a.printTask(cmd.OutOrStdout(), t)
			}
			return nil
		},
	}
	bindTaskFlags(cmd, flags)
	return cmd
}

func newTasksUpdateCommand(a *app) *cobra.Command {
	flags := editTaskFlags()

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a task (only the given flags change)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.getTask(cmd, args[0])
			if err != nil {
				return err
			}
			state, err := applyTaskFlags(cmd, tasks.NewEditForm(*t), flags)
			if err != nil {
				return err
			}

			_, errs, err := a.tasks.Submit(cmd.Context(), state)
			if !errs.Valid() {
				return printFieldErrors(cmd.ErrOrStderr(), errs)
			}
			if err != nil {
				return failed("Error al actualizar la tarea", err)
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "Tarea actualizada exitosamente!")
			return nil
		},
	}
	bindTaskFlags(cmd, flags)
	return cmd
}

func newTasksStatusCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "status <id> <status>",
		Short:     "Change task status",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"Pending", "InProgress", "Completed", "Canceled"},
		RunE: func(cmd *cobra.Command, args []string) error {
			status := tasks.TaskStatus(args[1])
			if !status.Valid() {
				return errInvalidStatus
			}
			t, err := a.getTask(cmd, args[0])
			if err != nil {
				return err
			}

			changed, err := a.tasks.ChangeStatus(cmd.Context(), *t, status)
			if err != nil {
				return failed("Error al cambiar el estado de la tarea", err)
			}
			if changed {
				fmt.Fprintf(cmd.ErrOrStderr(), "Estado de la tarea \"%s\" actualizado a \"%s\"!\n", t.Title, status)
			}
			return nil
		},
	}
}

func newTasksAssignCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "assign <id> [userId]",
		Short: "Assign a task to a user (no user clears the assignment)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var userID string
			if len(args) == 2 {
				userID = args[1]
			}
			t, err := a.getTask(cmd, args[0])
			if err != nil {
				return err
			}

			errs, err := a.tasks.Assign(cmd.Context(), *t, userID)
			if !errs.Valid() {
				return printFieldErrors(cmd.ErrOrStderr(), errs)
			}
			if err != nil {
				return failed("Error al asignar la tarea", err)
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "Tarea asignada exitosamente!")
			return nil
		},
	}
}

func newTasksDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.tasks.Delete(cmd.Context(), args[0]); err != nil {
				return failed("Error al eliminar la tarea", err)
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "Tarea eliminada exitosamente!")
			return nil
		},
	}
}
