package taskclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"task-dashboard/internal/auth"
	"task-dashboard/internal/domain"
)

const maxErrorBody = 512

// Client talks to the external task service.
type Client struct {
	logger  *logrus.Logger
	baseURL *url.URL
	http    *http.Client
}

func New(logger *logrus.Logger, baseURL string, timeout time.Duration) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/") + "/")
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, baseURL)
	}

	return &Client{
		logger:  logger,
		baseURL: base,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

type statusPayload struct {
	Status domain.TaskStatus `json:"status"`
}

// ListTasks calls GET /tasks. Rows that cannot be decoded as a task are
// logged and skipped. Task ids must be numeric.
func (c *Client) ListTasks(ctx context.Context, cred auth.Credential) ([]domain.Task, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "tasks", cred, nil)
	if err != nil {
		return nil, err
	}

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var rows []json.RawMessage
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}

	tasks := make([]domain.Task, 0, len(rows))
	for i, row := range rows {
		var task domain.Task
		if err := json.Unmarshal(row, &task); err != nil {
			c.logger.WithContext(ctx).WithError(err).WithField("row", i).Warn("skipping malformed task")
			continue
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// UpdateStatus calls PUT /tasks/{id}. The response body is ignored.
func (c *Client) UpdateStatus(ctx context.Context, cred auth.Credential, id int64, status domain.TaskStatus) error {
	payload, err := json.Marshal(statusPayload{Status: status})
	if err != nil {
		return err
	}

	req, err := c.newRequest(ctx, http.MethodPut, "tasks/"+strconv.FormatInt(id, 10), cred, payload)
	if err != nil {
		return err
	}

	_, err = c.do(req)
	return err
}

func (c *Client) newRequest(ctx context.Context, method, path string, cred auth.Credential, payload []byte) (*http.Request, error) {
	endpoint := c.baseURL.ResolveReference(&url.URL{Path: path})

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), body)
	if err != nil {
		return nil, err
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	// raw token, no scheme prefix
	if !cred.Empty() {
		req.Header.Set("Authorization", string(cred))
	}

	return req, nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	c.logger.WithContext(req.Context()).WithFields(logrus.Fields{
		"method":   req.Method,
		"url":      req.URL.String(),
		"status":   resp.StatusCode,
		"duration": time.Since(start),
	}).Debug("task service call")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := strings.TrimSpace(string(body))
		if len(msg) > maxErrorBody {
			msg = msg[:maxErrorBody]
		}
		return nil, &StatusError{Code: resp.StatusCode, Body: msg}
	}
	return body, nil
}
