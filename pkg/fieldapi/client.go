// pkg/fieldapi/client.go
//
// Thin consumer of the upstream fields/crops REST backend. The backend
// is a black box: this client only knows the four endpoints the
// drawing workflow relies on. A bearer token is attached when the
// session carries one, otherwise the user id is passed explicitly.
package fieldapi

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
)

// Session is the acting user's identity, passed in by the caller
// rather than read from ambient state.
type Session struct {
	UserID string
	Token  string
}

type RemoteField struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

type RemoteCrop struct {
	Name    string `json:"name"`
	FieldID int64  `json:"field_id"`
}

type Client struct {
	base  string
	httpc *http.Client
}

func New(base string) *Client {
	return &Client{
		base:  strings.TrimRight(base, "/"),
		httpc: &http.Client{Timeout: 15 * time.Second},
	}
}

// CreateField posts a new field with its center encoded as "lat,lon"
// and returns the backend-assigned id.
func (c *Client) CreateField(ctx context.Context, sess Session, location string) (string, error) {
	body := map[string]any{"location": location}
	if sess.Token == "" && sess.UserID != "" {
		body["user_id"] = sess.UserID
	}
	var out struct {
		Field struct {
			ID int64 `json:"id"`
		} `json:"field"`
	}
	if err := c.post(ctx, sess, "/fields", body, &out); err != nil {
		return "", err
	}
	if out.Field.ID == 0 {
		return "", fmt.Errorf("create field: no id in response")
	}
	return strconv.FormatInt(out.Field.ID, 10), nil
}

// CreateCrop links a crop to an already-created field. Only the
// success/failure status is consumed.
func (c *Client) CreateCrop(ctx context.Context, sess Session, name, fieldID, plantingDate string) error {
	body := map[string]any{
		"name":          name,
		"field_id":      fieldID,
		"planting_date": plantingDate,
	}
	if sess.Token == "" && sess.UserID != "" {
		body["user_id"] = sess.UserID
	}
	return c.post(ctx, sess, "/crops", body, nil)
}

func (c *Client) ListFields(ctx context.Context, sess Session) ([]RemoteField, error) {
	var out struct {
		Fields []RemoteField `json:"fields"`
	}
	if err := c.get(ctx, sess, "/fields", &out); err != nil {
		return nil, err
	}
	return out.Fields, nil
}

func (c *Client) ListCrops(ctx context.Context, sess Session) ([]RemoteCrop, error) {
	var out struct {
		Crops []RemoteCrop `json:"crops"`
	}
	if err := c.get(ctx, sess, "/crops", &out); err != nil {
		return nil, err
	}
	return out.Crops, nil
}

func (c *Client) post(ctx context.Context, sess Session, path string, body any, out any) error {
	b, _ := json.Marshal(body)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, sess, out)
}

func (c *Client) get(ctx context.Context, sess Session, path string, out any) error {
	u := c.base + path
	if sess.UserID != "" {
		u += "?user_id=" + url.QueryEscape(sess.UserID)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	return c.do(req, sess, out)
}

func (c *Client) do(req *http.Request, sess Session, out any) error {
	if sess.Token != "" {
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("%s %s: status %d: %s", req.Method, req.URL.Path, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
