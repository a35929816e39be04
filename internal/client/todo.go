package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"plearn/backend/internal/model"
	"plearn/backend/internal/retry"
)

// ListTasks returns the tasks of userID.
func (c *Client) ListTasks(ctx context.Context, userID string) ([]model.Task, error) {
	resp, err := c.send(ctx, retry.Once, http.MethodGet, "/api/todo?user_id="+url.QueryEscape(userID), "", nil)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, resp.apiError()
	}
	var tasks []model.Task
	if err := json.Unmarshal(resp.body, &tasks); err != nil {
		return nil, fmt.Errorf("could not decode tasks: %w", err)
	}
	return tasks, nil
}

// CreateTask stores a new task and returns the server's copy.
func (c *Client) CreateTask(ctx context.Context, task model.Task) (*model.Task, error) {
	resp, err := c.sendJSON(ctx, retry.Once, http.MethodPost, "/api/todo", task)
	if err != nil {
		return nil, err
	}
	return decodeTask(resp)
}

// UpdateTask replaces a task and returns the server's copy.
func (c *Client) UpdateTask(ctx context.Context, task model.Task) (*model.Task, error) {
	resp, err := c.sendJSON(ctx, retry.Once, http.MethodPut, "/api/todo/"+url.PathEscape(task.ID), task)
	if err != nil {
		return nil, err
	}
	return decodeTask(resp)
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	resp, err := c.send(ctx, retry.Once, http.MethodDelete, "/api/todo/"+url.PathEscape(id), "", nil)
	if err != nil {
		return err
	}
	if !resp.ok() {
		return resp.apiError()
	}
	return nil
}

// CompleteTasks marks every active task of userID as done.
func (c *Client) CompleteTasks(ctx context.Context, userID string) error {
	resp, err := c.send(ctx, retry.Once, http.MethodPatch, "/api/todo?user_id="+url.QueryEscape(userID), "", nil)
	if err != nil {
		return err
	}
	if !resp.ok() {
		return resp.apiError()
	}
	return nil
}

func decodeTask(resp *response) (*model.Task, error) {
	if !resp.ok() {
		return nil, resp.apiError()
	}
	var task model.Task
	if err := json.Unmarshal(resp.body, &task); err != nil {
		return nil, fmt.Errorf("could not decode task: %w", err)
	}
	return &task, nil
}
