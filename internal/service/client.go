// Package service is the HTTP client for the contract-analysis backend.
// The backend owns upload storage, clause extraction, answer generation,
// chat persistence, and report generation; the console consumes those
// capabilities strictly through the request/response contracts here.
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client issues calls against the analysis service.
type Client struct {
	base           *url.URL
	http           *http.Client
	logger         *slog.Logger
	extractCeiling time.Duration
}

// New creates a Client from the given configuration. The general call
// timeout applies to every request except clause extraction, which gets
// its own much longer ceiling.
func New(cfg *Config, logger *slog.Logger) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base_url: %w", err)
	}

	scoped := logger.With("component", "service")

	return &Client{
		base: base,
		http: &http.Client{
			Timeout: cfg.TimeoutDuration(),
			Transport: &loggingTransport{
				next:   http.DefaultTransport,
				logger: scoped,
			},
		},
		logger:         scoped,
		extractCeiling: cfg.ExtractTimeoutDuration(),
	}, nil
}

// Upload sends a PDF to the service and returns its registration.
func (c *Client) Upload(ctx context.Context, filename string, data io.Reader) (*UploadResult, error) {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)

	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}
	if _, err := io.Copy(part, data); err != nil {
		return nil, fmt.Errorf("copy upload data: %w", err)
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("finalize upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/api/upload/"), &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	var result UploadResult
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Extract requests clause extraction and risk scoring for an uploaded
// document. This is the dominant-latency call: it runs under the
// configured extraction ceiling rather than the general timeout, and the
// result is all-or-nothing.
func (c *Client) Extract(ctx context.Context, documentID string) (*AnalysisResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.extractCeiling)
	defer cancel()

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.endpoint("/api/extract/"+url.PathEscape(documentID)),
		nil,
	)
	if err != nil {
		return nil, err
	}

	var result AnalysisResult
	if err := c.doUntimed(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Chat sends one user query and returns the generated answer with its
// source references.
func (c *Client) Chat(ctx context.Context, chat ChatRequest) (*ChatAnswer, error) {
	payload, err := json.Marshal(chat)
	if err != nil {
		return nil, fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/api/chat/"), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var answer ChatAnswer
	if err := c.do(req, &answer); err != nil {
		return nil, err
	}
	return &answer, nil
}

// History returns up to limit persisted turns for a session, oldest first.
func (c *Client) History(ctx context.Context, sessionID string, limit int) ([]HistoryTurn, error) {
	endpoint := c.endpoint("/api/chat/history/" + url.PathEscape(sessionID))
	if limit > 0 {
		endpoint += "?limit=" + strconv.Itoa(limit)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var result historyResponse
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	return result.History, nil
}

// ClearSession deletes all server-side conversation history for a session.
func (c *Client) ClearSession(ctx context.Context, sessionID string) error {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodDelete,
		c.endpoint("/api/chat/session/"+url.PathEscape(sessionID)),
		nil,
	)
	if err != nil {
		return err
	}

	var ack clearResponse
	return c.do(req, &ack)
}

// Export streams the generated report spreadsheet for a document into w,
// returning the number of bytes written.
func (c *Client) Export(ctx context.Context, documentID string, w io.Writer) (int64, error) {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		c.endpoint("/api/export/"+url.PathEscape(documentID)),
		nil,
	)
	if err != nil {
		return 0, err
	}

	res, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return 0, responseError(res)
	}

	return io.Copy(w, res.Body)
}

// Health probes the service's liveness endpoint. It never returns an
// error: any failure degrades to unhealthy.
func (c *Client) Health(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/health"), nil)
	if err != nil {
		return false
	}

	res, err := c.http.Do(req)
	if err != nil {
		return false
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return false
	}

	var health healthResponse
	if err := json.NewDecoder(res.Body).Decode(&health); err != nil {
		return false
	}
	return health.Status == "healthy"
}

func (c *Client) endpoint(path string) string {
	return c.base.JoinPath(path).String()
}

func (c *Client) do(req *http.Request, v any) error {
	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	return decode(res, v)
}

// doUntimed bypasses the client-level timeout so the request deadline is
// governed solely by its context. Used by Extract.
func (c *Client) doUntimed(req *http.Request, v any) error {
	untimed := &http.Client{Transport: c.http.Transport}
	res, err := untimed.Do(req)
	if err != nil {
		return err
	}
	return decode(res, v)
}

func decode(res *http.Response, v any) error {
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return responseError(res)
	}

	if v == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// responseError extracts the optional detail field from a non-success
// body. A missing or unparseable detail leaves Detail empty for the
// caller's stage-generic fallback.
func responseError(res *http.Response) error {
	svcErr := &Error{Status: res.StatusCode}

	body, err := io.ReadAll(io.LimitReader(res.Body, 1<<16))
	if err != nil {
		return svcErr
	}

	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		svcErr.Detail = payload.Detail
	}
	return svcErr
}
