package projects

import (
	"context"
	"fmt"

	"task-board/internal/apiclient"
)

const projectsEndpoint = "/Projects"

// Client - фасад ресурса проектов.
type Client struct {
	api *apiclient.Client
}

// NewClient создаёт клиента проектов поверх транспорта.
func NewClient(api *apiclient.Client) *Client {
	return &Client{api: api}
}

// List - GET /Projects.
func (c *Client) List(ctx context.Context) ([]ProjectDto, error) {
	list, err := apiclient.Get[[]ProjectDto](ctx, c.api, projectsEndpoint)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	if list == nil {
		return []ProjectDto{}, nil
	}
	return *list, nil
}

// Get - GET /Projects/{id}.
func (c *Client) Get(ctx context.Context, id string) (*ProjectDto, error) {
	p, err := apiclient.Get[ProjectDto](ctx, c.api, apiclient.Path(projectsEndpoint, id))
	if err != nil {
		return nil, fmt.Errorf("get project %s: %w", id, err)
	}
	return p, nil
}

// Create - POST /Projects.
func (c *Client) Create(ctx context.Context, cmd CreateProjectCommand) (*ProjectDto, error) {
	p, err := apiclient.Post[ProjectDto](ctx, c.api, projectsEndpoint, cmd)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return p, nil
}

// Update - PUT /Projects/{id}.
func (c *Client) Update(ctx context.Context, id string, cmd UpdateProjectCommand) (*ProjectDto, error) {
	p, err := apiclient.Put[ProjectDto](ctx, c.api, apiclient.Path(projectsEndpoint, id), cmd)
	if err != nil {
		return nil, fmt.Errorf("update project %s: %w", id, err)
	}
	return p, nil
}

// Delete - DELETE /Projects/{id}.
func (c *Client) Delete(ctx context.Context, id string) error {
	if err := apiclient.Delete(ctx, c.api, apiclient.Path(projectsEndpoint, id)); err != nil {
		return fmt.Errorf("delete project %s: %w", id, err)
	}
	return nil
}
