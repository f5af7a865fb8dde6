package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

// Firebase talks to a Realtime Database over its REST API:
// GET/PUT/POST {base}/{path}.json. POST generates the child key server-side.
type Firebase struct {
	baseURL string
	auth    string
	client  *retryablehttp.Client
	logger  *zap.Logger
}

// NewFirebase creates a REST client for the database at baseURL. retries is the
// number of automatic retries on transport errors and 5xx responses.
func NewFirebase(baseURL, auth string, retries int, logger *zap.Logger) *Firebase {
	client := retryablehttp.NewClient()
	client.RetryMax = retries
	client.RetryWaitMin = 200 * time.Millisecond
	client.RetryWaitMax = 2 * time.Second
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler
	client.Logger = &leveledZap{logger: logger.Named("firebase_http").Sugar()}

	return &Firebase{
		baseURL: strings.TrimRight(baseURL, "/"),
		auth:    auth,
		client:  client,
		logger:  logger.Named("firebase"),
	}
}

func (f *Firebase) Read(ctx context.Context, path string) (json.RawMessage, bool, error) {
	body, err := f.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, false, err
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil, false, nil
	}
	return json.RawMessage(trimmed), true, nil
}

func (f *Firebase) Write(ctx context.Context, path string, v interface{}) error {
	if len(splitPath(path)) == 0 {
		return ErrInvalidPath
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	_, err = f.do(ctx, http.MethodPut, path, payload)
	return err
}

func (f *Firebase) Push(ctx context.Context, basePath string, v interface{}) (string, error) {
	if len(splitPath(basePath)) == 0 {
		return "", ErrInvalidPath
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", basePath, err)
	}

	body, err := f.do(ctx, http.MethodPost, basePath, payload)
	if err != nil {
		return "", err
	}

	var resp struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decode push response: %w", err)
	}
	if resp.Name == "" {
		return "", fmt.Errorf("push to %s returned no key", basePath)
	}
	return resp.Name, nil
}

func (f *Firebase) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var body interface{}
	if payload != nil {
		body = payload
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, f.endpoint(path), body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		f.logger.Warn("Store request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%s %s: unexpected status %d: %s", method, path, resp.StatusCode, snippet(data))
	}

	return data, nil
}

func (f *Firebase) endpoint(path string) string {
	segments := splitPath(path)
	escaped := make([]string, len(segments))
	for i, seg := range segments {
		escaped[i] = url.PathEscape(seg)
	}

	u := f.baseURL + "/" + strings.Join(escaped, "/") + ".json"
	if f.auth != "" {
		u += "?auth=" + url.QueryEscape(f.auth)
	}
	return u
}

func snippet(b []byte) string {
	const max = 200
	s := strings.TrimSpace(string(b))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}

// leveledZap adapts a sugared zap logger to retryablehttp.LeveledLogger.
type leveledZap struct {
	logger *zap.SugaredLogger
}

func (l *leveledZap) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Errorw(msg, keysAndValues...)
}

func (l *leveledZap) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debugw(msg, keysAndValues...)
}

func (l *leveledZap) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debugw(msg, keysAndValues...)
}

func (l *leveledZap) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warnw(msg, keysAndValues...)
}
