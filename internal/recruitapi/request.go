package recruitapi

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/spigell/hire-assistant/internal/logger"
)

const (
	contentType     = "application/json"
	contentEncoding = "gzip"
	requestIDHeader = "X-Request-ID"
	// How much of a response body goes to debug logs.
	maxLogBody = 300
)

type Item interface{}

// getItems makes a GET request and returns the raw items of a JSON array response.
func (c *Client) getItems(ctx context.Context, url string) ([]Item, error) {
	var items []Item
	if err := c.getJSON(ctx, url, &items); err != nil {
		return nil, err
	}

	c.logger.Debug("got items from api", zap.String("url", url), zap.Int("count", len(items)))

	return items, nil
}

// decodeItems converts raw JSON items into typed records using their json tags.
func decodeItems(items []Item, target interface{}) error {
	cfg := &mapstructure.DecoderConfig{
		Metadata: nil,
		Result:   target,
		TagName:  "json",
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return err
	}

	return decoder.Decode(items)
}

func (c *Client) getJSON(ctx context.Context, url string, target interface{}) error {
	req, err := c.newRequest(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)

	return c.do(req, http.StatusOK, target)
}

func (c *Client) sendJSON(ctx context.Context, method, url string, payload interface{}, want int, target interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := c.newRequest(ctx, method, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)

	return c.do(req, want, target)
}

func (c *Client) deleteResource(ctx context.Context, url string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}

	return c.do(req, http.StatusNoContent, nil)
}

// postFile uploads a single file as a multipart form and decodes the response into target.
func (c *Client) postFile(ctx context.Context, url, field, filename, fileType string, content io.Reader, target interface{}) error {
	var b bytes.Buffer
	w := multipart.NewWriter(&b)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, field, escapeQuotes(filename)))
	header.Set("Content-Type", fileType)

	part, err := w.CreatePart(header)
	if err != nil {
		return err
	}

	if _, err = io.Copy(part, content); err != nil {
		return err
	}
	if err = w.Close(); err != nil {
		return err
	}

	req, err := c.newRequest(ctx, http.MethodPost, url, &b)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	return c.do(req, http.StatusCreated, target)
}

func (c *Client) newRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}

	if c.token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", contentType)
	req.Header.Set("Accept-Encoding", contentEncoding)
	req.Header.Set(requestIDHeader, uuid.NewString())

	return req, nil
}

// do sends the request and decodes the body into target when the status matches want.
// 200 is accepted for every method since some deployments do not use 201/204.
func (c *Client) do(req *http.Request, want int, target interface{}) error {
	c.logger.Debug("make request",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.String(logger.FieldRequestID, req.Header.Get(requestIDHeader)),
	)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := readBody(resp)
	if err != nil {
		return err
	}

	if resp.StatusCode != want && resp.StatusCode != http.StatusOK {
		c.logger.Debug("unexpected status from api",
			zap.String("url", req.URL.String()),
			zap.Int("status", resp.StatusCode),
			zap.String("body_preview", logger.TruncateForLog(string(data), maxLogBody)),
		)
		return &HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Detail:     parseDetail(data),
		}
	}

	if target == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

func readBody(resp *http.Response) ([]byte, error) {
	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gzipReader.Close()
		reader = gzipReader
	}

	return io.ReadAll(reader)
}

// parseDetail reads the FastAPI style {"detail": ...} error body.
// Validation failures come as a list of objects with a "msg" field.
func parseDetail(data []byte) string {
	var body struct {
		Detail any `json:"detail"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}

	switch detail := body.Detail.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(detail)
	case []any:
		messages := make([]string, 0, len(detail))
		for _, entry := range detail {
			if m, ok := entry.(map[string]any); ok {
				if msg, ok := m["msg"].(string); ok && strings.TrimSpace(msg) != "" {
					messages = append(messages, strings.TrimSpace(msg))
				}
			}
		}
		return strings.Join(messages, "; ")
	default:
		raw, err := json.Marshal(detail)
		if err != nil {
			return fmt.Sprintf("%v", detail)
		}
		return string(raw)
	}
}

func escapeQuotes(s string) string {
	return strings.NewReplacer("\\", "\\\\", `"`, "\\\"").Replace(s)
}
