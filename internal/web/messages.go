package web

import (
	"fmt"

	"task-board/internal/apiclient"
	"task-board/internal/tasks"
)

// Тексты уведомлений.
const (
	msgProjectCreated = "Proyecto creado exitosamente!"
	msgProjectUpdated = "Proyecto actualizado exitosamente!"
	msgProjectDeleted = "Proyecto eliminado exitosamente!"

	msgTaskCreated  = "Tarea creada exitosamente!"
	msgTaskUpdated  = "Tarea actualizada exitosamente!"
	msgTaskDeleted  = "Tarea eliminada exitosamente!"
	msgTaskAssigned = "Tarea asignada exitosamente!"

	msgProjectNotFound = "El proyecto no fue encontrado o no existe."
	msgTaskNotFound    = "La tarea no fue encontrada o no existe."
	msgTimeout         = "Tiempo de espera agotado."
)

// Префиксы ошибок: к ним дописывается сообщение API.
const (
	errCreateProject = "Error al crear el proyecto"
	errUpdateProject = "Error al actualizar el proyecto"
	errDeleteProject = "Error al eliminar el proyecto"
	errLoadProjects  = "Error al cargar proyectos"
	errLoadProject   = "Error al cargar el proyecto"

	errCreateTask = "Error al crear la tarea"
	errUpdateTask = "Error al actualizar la tarea"
	errStatusTask = "Error al cambiar el estado de la tarea"
	errAssignTask = "Error al asignar la tarea"
	errDeleteTask = "Error al eliminar la tarea"
	errLoadTasks  = "Error al cargar las tareas"
	errLoadTask   = "Error al cargar la tarea"
)

// failure - "<префикс>: <сообщение API>".
func failure(prefix string, err error) string {
	return fmt.Sprintf("%s: %s", prefix, apiclient.Message(err))
}

func statusChanged(title string, status tasks.TaskStatus) string {
	return fmt.Sprintf(`Estado de la tarea "%s" actualizado a "%s"!`, title, status)
}

func confirmDeleteProject(name string) string {
	return fmt.Sprintf(`¿Estás seguro de que quieres eliminar el proyecto "%s"? Esta acción no se puede deshacer.`, name)
}

func confirmDeleteTask(title string) string {
	return fmt.Sprintf(`¿Estás seguro de que quieres eliminar la tarea "%s"?`, title)
}
