package tasks

import (
	"context"
	"fmt"

	"task-board/internal/apiclient"
)

const (
	tasksEndpoint    = "/TaskItems"
	byProjectSegment = "project"
)

// Client - фасад ресурса задач: одна операция - один HTTP-вызов.
type Client struct {
	api *apiclient.Client
}

// NewClient создаёт клиента задач поверх транспорта.
func NewClient(api *apiclient.Client) *Client {
	return &Client{api: api}
}

// ListByProject - GET /TaskItems/project/{projectId}.
func (c *Client) ListByProject(ctx context.Context, projectID string) ([]TaskItemDto, error) {
	list, err := apiclient.Get[[]TaskItemDto](ctx, c.api, apiclient.Path(tasksEndpoint, byProjectSegment, projectID))
	if err != nil {
		return nil, fmt.Errorf("list tasks of project %s: %w", projectID, err)
	}
	if list == nil {
		return []TaskItemDto{}, nil
	}
	return *list, nil
}

// Get - GET /TaskItems/{id}.
func (c *Client) Get(ctx context.Context, id string) (*TaskItemDto, error) {
	task, err := apiclient.Get[TaskItemDto](ctx, c.api, apiclient.Path(tasksEndpoint, id))
	if err != nil {
		return nil, fmt.Errorf("get task %s: %w", id, err)
	}
	return task, nil
}

// Create - POST /TaskItems. Результат nil, если API ответило без тела.
func (c *Client) Create(ctx context.Context, cmd CreateTaskCommand) (*TaskItemDto, error) {
	task, err := apiclient.Post[TaskItemDto](ctx, c.api, tasksEndpoint, cmd)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

// Update - PUT /TaskItems/{id}. Результат nil, если API ответило без тела.
func (c *Client) Update(ctx context.Context, id string, cmd UpdateTaskCommand) (*TaskItemDto, error) {
	task, err := apiclient.Put[TaskItemDto](ctx, c.api, apiclient.Path(tasksEndpoint, id), cmd)
	if err != nil {
		return nil, fmt.Errorf("update task %s: %w", id, err)
	}
	return task, nil
}

// Delete - DELETE /TaskItems/{id}.
func (c *Client) Delete(ctx context.Context, id string) error {
	if err := apiclient.Delete(ctx, c.api, apiclient.Path(tasksEndpoint, id)); err != nil {
		return fmt.Errorf("delete task %s: %w", id, err)
	}
	return nil
}

// ChangeStatus отправляет задачу с новым статусом (PUT /TaskItems/{id}).
// Остальные поля берутся из task, даты уходят в формате YYYY-MM-DD.
func (c *Client) ChangeStatus(ctx context.Context, task TaskItemDto, status TaskStatus) (*TaskItemDto, error) {
	return c.Update(ctx, task.ID, NormalizeDates(WithStatus(task, status)))
}

// Assign отправляет задачу с новым исполнителем (PUT /TaskItems/{id}).
// nil снимает исполнителя.
func (c *Client) Assign(ctx context.Context, task TaskItemDto, userID *string) (*TaskItemDto, error) {
	return c.Update(ctx, task.ID, NormalizeDates(WithAssignee(task, userID)))
}
