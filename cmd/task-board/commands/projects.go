package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"task-board/internal/apiclient"
	"task-board/internal/projects"
)

var errProjectNotFound = errors.New("El proyecto no fue encontrado o no existe.")

// failed - ошибка API в том же виде, что и в веб-интерфейсе:
// "<префикс>: <сообщение API>".
func failed(prefix string, err error) error {
	return fmt.Errorf("%s: %s", prefix, apiclient.Message(err))
}

func newProjectsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project", "p"},
		Short:   "Manage projects",
	}
	cmd.AddCommand(
		newProjectsListCommand(a),
		newProjectsGetCommand(a),
		newProjectsCreateCommand(a),
		newProjectsUpdateCommand(a),
		newProjectsDeleteCommand(a),
	)
	return cmd
}

func newProjectsListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.projects.List(cmd.Context())
			if err != nil {
				return failed("Error al cargar proyectos", err)
			}
			return a.printProjects(cmd.OutOrStdout(), list)
		},
	}
}

func newProjectsGetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.projects.Get(cmd.Context(), args[0])
			switch {
			case apiclient.IsNotFound(err), err == nil && p == nil:
				return errProjectNotFound
			case err != nil:
				return failed("Error al cargar el proyecto", err)
			}
			return a.printProject(cmd.OutOrStdout(), p)
		},
	}
}

// projectFlags - поля проекта из флагов.
type projectFlags struct {
	name        string
	description string
	startDate   string
	endDate     string
}

func (f *projectFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "project name")
	cmd.Flags().StringVar(&f.description, "description", "", "project description")
	cmd.Flags().StringVar(&f.startDate, "start-date", "", "start date, YYYY-MM-DD")
	cmd.Flags().StringVar(&f.endDate, "end-date", "", "end date, YYYY-MM-DD")
}

// apply переносит в форму только явно заданные флаги.
func (f *projectFlags) apply(cmd *cobra.Command, fields *projects.Fields) {
	if cmd.Flags().Changed("name") {
		fields.Name = f.name
	}
	if cmd.Flags().Changed("description") {
		fields.Description = f.description
	}
	if cmd.Flags().Changed("start-date") {
		fields.StartDate = f.startDate
	}
	if cmd.Flags().Changed("end-date") {
		fields.EndDate = f.endDate
	}
}

func newProjectsCreateCommand(a *app) *cobra.Command {
	var flags projectFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			form := projects.NewCreateForm(time.Now())
			flags.apply(cmd, &form.Fields)

			p, errs, err := a.projects.Submit(cmd.Context(), form)
			if !errs.Valid() {
				return printFieldErrors(cmd.ErrOrStderr(), errs)
			}
			if err != nil {
				return failed("Error al crear el proyecto", err)
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "Proyecto creado exitosamente!")
			if p != nil {
				return a.printProject(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
	flags.bind(cmd)
	return cmd
}

func newProjectsUpdateCommand(a *app) *cobra.Command {
	var flags projectFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a project (only the given flags change)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.projects.Get(cmd.Context(), args[0])
			switch {
			case apiclient.IsNotFound(err), err == nil && p == nil:
				return errProjectNotFound
			case err != nil:
				return failed("Error al cargar el proyecto", err)
			}

			form := projects.NewEditForm(*p)
			flags.apply(cmd, &form.Fields)

			_, errs, err := a.projects.Submit(cmd.Context(), form)
			if !errs.Valid() {
				return printFieldErrors(cmd.ErrOrStderr(), errs)
			}
			if err != nil {
				return failed("Error al actualizar el proyecto", err)
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "Proyecto actualizado exitosamente!")
			return nil
		},
	}
	flags.bind(cmd)
	return cmd
}

func newProjectsDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a project and its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.projects.Delete(cmd.Context(), args[0]); err != nil {
				return failed("Error al eliminar el proyecto", err)
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "Proyecto eliminado exitosamente!")
			return nil
		},
	}
}
