// Package api is a thin HTTP/JSON client for the TeamTrack server.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dkaledin/teamtrack/internal/common"
	"github.com/dkaledin/teamtrack/internal/report"
)

// Client talks to one TeamTrack server and keeps the current token pair.
// It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) tokens() (string, string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken, c.refreshToken
}

func (c *Client) setTokens(pair *TokenPair) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if pair == nil {
		c.accessToken, c.refreshToken = "", ""
		return
	}
	c.accessToken, c.refreshToken = pair.AccessToken, pair.RefreshToken
}

// statusError maps HTTP failure statuses onto the shared sentinels so
// callers use errors.Is the same way they do against services.
func statusError(status int, body []byte) error {
	var payload struct {
		Error json.RawMessage `json:"error"`
	}
	detail := strings.TrimSpace(string(body))
	if json.Unmarshal(body, &payload) == nil && len(payload.Error) > 0 {
		detail = strings.Trim(string(payload.Error), `"`)
	}

	switch status {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", common.ErrorValidation, detail)
	case http.StatusUnauthorized:
		return common.ErrorUnauthorized
	case http.StatusForbidden:
		return common.ErrorForbidden
	case http.StatusNotFound:
		return common.ErrorNotFound
	case http.StatusConflict:
		return common.ErrorAlreadyExists
	default:
		return fmt.Errorf("server error (%d): %s", status, detail)
	}
}

// do performs one JSON round trip. A nil out skips decoding.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var reqBody io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("error encoding request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if access, _ := c.tokens(); access != "" {
		req.Header.Set("Authorization", "Bearer "+access)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return statusError(resp.StatusCode, body)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}
	return nil
}

func (c *Client) Register(ctx context.Context, email, password string) error {
	in := map[string]string{"email": email, "password": password}
	return c.do(ctx, http.MethodPost, "/v1/auth/register", in, nil)
}

// Login authenticates and stores the issued token pair on the client.
func (c *Client) Login(ctx context.Context, email, password string) error {
	in := map[string]string{"email": email, "password": password}
	var out struct {
		Tokens TokenPair `json:"tokens"`
	}
	if err := c.do(ctx, http.MethodPost, "/v1/auth/login", in, &out); err != nil {
		return err
	}
	c.setTokens(&out.Tokens)
	return nil
}

// Refresh trades the stored refresh token for a new pair.
func (c *Client) Refresh(ctx context.Context) error {
	_, refresh := c.tokens()
	in := map[string]string{"refresh_token": refresh}
	var out struct {
		Tokens TokenPair `json:"tokens"`
	}
	if err := c.do(ctx, http.MethodPost, "/v1/auth/refresh", in, &out); err != nil {
		return err
	}
	c.setTokens(&out.Tokens)
	return nil
}

// Logout revokes the refresh token server-side and forgets both tokens.
func (c *Client) Logout(ctx context.Context) error {
	_, refresh := c.tokens()
	in := map[string]string{"refresh_token": refresh}
	err := c.do(ctx, http.MethodPost, "/v1/auth/logout", in, nil)
	c.setTokens(nil)
	return err
}

// GetProfile returns common.ErrorNotFound when the profile has not been
// created yet; callers use that to drive the name-selection step.
func (c *Client) GetProfile(ctx context.Context) (*Profile, error) {
	var out struct {
		Profile Profile `json:"profile"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out.Profile, nil
}

func (c *Client) CreateProfile(ctx context.Context, displayName string) (*Profile, error) {
	in := map[string]string{"display_name": displayName}
	var out struct {
		Profile Profile `json:"profile"`
	}
	if err := c.do(ctx, http.MethodPost, "/v1/profile", in, &out); err != nil {
		return nil, err
	}
	return &out.Profile, nil
}

// ListTasksOptions narrow and order the task listing.
type ListTasksOptions struct {
	AllDates bool
	Search   string
	SortBy   string // "" (newest first) or "title"
}

func (c *Client) ListTasks(ctx context.Context, opts ListTasksOptions) ([]Task, *TodayStats, error) {
	q := url.Values{}
	if opts.AllDates {
		q.Set("scope", "all")
	}
	if opts.Search != "" {
		q.Set("q", opts.Search)
	}
	if opts.SortBy != "" {
		q.Set("sort", opts.SortBy)
	}
	path := "/v1/tasks"
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var out struct {
		Tasks []Task     `json:"tasks"`
		Today TodayStats `json:"today"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, nil, err
	}
	return out.Tasks, &out.Today, nil
}

func (c *Client) CreateTask(ctx context.Context, in *TaskInput) (*Task, error) {
	var out struct {
		Task Task `json:"task"`
	}
	if err := c.do(ctx, http.MethodPost, "/v1/tasks", in, &out); err != nil {
		return nil, err
	}
	return &out.Task, nil
}

func (c *Client) UpdateTask(ctx context.Context, id string, in *TaskInput) (*Task, error) {
	var out struct {
		Task Task `json:"task"`
	}
	if err := c.do(ctx, http.MethodPut, "/v1/tasks/"+id, in, &out); err != nil {
		return nil, err
	}
	return &out.Task, nil
}

func (c *Client) GetTask(ctx context.Context, id string) (*Task, error) {
	var out struct {
		Task Task `json:"task"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/tasks/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out.Task, nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/v1/tasks/"+id, nil, nil)
}

// GetReport fetches the aggregated team report. A zero date means "now".
func (c *Client) GetReport(ctx context.Context, date time.Time, mode report.Mode) (*report.Report, error) {
	q := url.Values{}
	if !date.IsZero() {
		q.Set("date", date.Format("2006-01-02"))
	}
	q.Set("mode", string(mode))

	var out struct {
		Report report.Report `json:"report"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/reports?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return &out.Report, nil
}

// DownloadExport fetches the plain-text export and its suggested file
// name.
func (c *Client) DownloadExport(ctx context.Context, date time.Time) (string, string, error) {
	path := "/v1/reports/export"
	if !date.IsZero() {
		path += "?date=" + date.Format("2006-01-02")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return "", "", err
	}
	if access, _ := c.tokens(); access != "" {
		req.Header.Set("Authorization", "Bearer "+access)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", fmt.Errorf("error reading response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return "", "", statusError(resp.StatusCode, body)
	}

	fileName := "tasks-export.txt"
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			if name := params["filename"]; name != "" {
				fileName = name
			}
		}
	}
	return string(body), fileName, nil
}

// DeliverExport asks the server to push the export somewhere: "s3"
// uploads and returns a presigned URL, "email" mails it to the
// recipient.
func (c *Client) DeliverExport(ctx context.Context, delivery, recipient string, date time.Time) (string, error) {
	in := map[string]string{"delivery": delivery}
	if recipient != "" {
		in["recipient"] = recipient
	}
	if !date.IsZero() {
		in["date"] = date.Format("2006-01-02")
	}

	var out struct {
		Export struct {
			FileName    string `json:"file_name"`
			DownloadURL string `json:"download_url"`
		} `json:"export"`
		Status    string `json:"status"`
		Recipient string `json:"recipient"`
	}
	if err := c.do(ctx, http.MethodPost, "/v1/reports/export", in, &out); err != nil {
		return "", err
	}
	if out.Export.DownloadURL != "" {
		return out.Export.DownloadURL, nil
	}
	return out.Recipient, nil
}
