package apiclient

import (
	"context"
	"net/http"
)

// Send выполняет запрос и декодирует ответ в *T.
// Для успешного ответа без тела возвращает nil, nil.
func Send[T any](ctx context.Context, c *Client, method, path string, body any) (*T, error) {
	var out T
	decoded, err := c.Do(ctx, method, path, body, &out)
	if err != nil {
		return nil, err
	}
	if !decoded {
		return nil, nil
	}
	return &out, nil
}

// Get - GET path.
func Get[T any](ctx context.Context, c *Client, path string) (*T, error) {
	return Send[T](ctx, c, http.MethodGet, path, nil)
}

// Post - POST path с JSON-телом.
func Post[T any](ctx context.Context, c *Client, path string, body any) (*T, error) {
	return Send[T](ctx, c, http.MethodPost, path, body)
}

// Put - PUT path с JSON-телом.
func Put[T any](ctx context.Context, c *Client, path string, body any) (*T, error) {
	return Send[T](ctx, c, http.MethodPut, path, body)
}

// Delete - DELETE path, тело ответа игнорируется.
func Delete(ctx context.Context, c *Client, path string) error {
	_, err := c.Do(ctx, http.MethodDelete, path, nil, nil)
	return err
}
