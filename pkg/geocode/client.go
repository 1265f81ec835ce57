// pkg/geocode/client.go
//
// Nominatim client for free-text address search and reverse lookup.
// Lookups are best-effort: a slow or unreachable service means
// "unavailable", never a fatal condition for the caller.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const userAgent = "CropTech Field Tracking"

// ErrNotFound means the query produced no match; callers surface it as
// an informational message, not a failure.
var ErrNotFound = errors.New("address not found")

type Result struct {
	Lat         float64
	Lon         float64
	DisplayName string
}

type Client struct {
	base  string
	httpc *http.Client
}

func New(base string) *Client {
	return &Client{
		base:  strings.TrimRight(base, "/"),
		httpc: &http.Client{Timeout: 10 * time.Second},
	}
}

// Search resolves free text to the single best match. Multiple matches
// are truncated to the first by the limit=1 query.
func (c *Client) Search(ctx context.Context, q string) (*Result, error) {
	u := fmt.Sprintf("%s/search?format=json&q=%s&limit=1", c.base, url.QueryEscape(q))
	var rows []struct {
		Lat         string `json:"lat"`
		Lon         string `json:"lon"`
		DisplayName string `json:"display_name"`
	}
	if err := c.getJSON(ctx, u, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	lat, err1 := strconv.ParseFloat(rows[0].Lat, 64)
	lon, err2 := strconv.ParseFloat(rows[0].Lon, 64)
	if err1 != nil || err2 != nil {
		return nil, fmt.Errorf("geocode: bad coordinates %q,%q", rows[0].Lat, rows[0].Lon)
	}
	return &Result{Lat: lat, Lon: lon, DisplayName: rows[0].DisplayName}, nil
}

// Reverse maps a coordinate back to a display name.
func (c *Client) Reverse(ctx context.Context, lat, lon float64) (string, error) {
	u := fmt.Sprintf("%s/reverse?format=json&lat=%f&lon=%f", c.base, lat, lon)
	var out struct {
		DisplayName string `json:"display_name"`
	}
	if err := c.getJSON(ctx, u, &out); err != nil {
		return "", err
	}
	if out.DisplayName == "" {
		return "", ErrNotFound
	}
	return out.DisplayName, nil
}

func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("geocode: status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
