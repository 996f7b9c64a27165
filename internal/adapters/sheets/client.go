// Package sheets reads player name lists from a Google spreadsheet via
// the v4 values REST endpoint. Access is read-only with an API key, so
// the sheet must be link-readable; service-account auth is out of scope
// here.
package sheets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const defaultBaseURL = "https://sheets.googleapis.com/v4/spreadsheets"

// Client fetches cell ranges from one spreadsheet.
type Client struct {
	httpClient *http.Client
	baseURL    string
	sheetID    string
	apiKey     string
	userAgent  string
}

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client (tests use this).
func WithHTTPClient(c *http.Client) Option {
	return func(s *Client) {
		if c != nil {
			s.httpClient = c
		}
	}
}

// WithBaseURL overrides the API base URL (tests use this).
func WithBaseURL(u string) Option {
	return func(s *Client) {
		if u != "" {
			s.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// NewClient creates a client for the given spreadsheet id and API key.
func NewClient(sheetID, apiKey string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    defaultBaseURL,
		sheetID:    sheetID,
		apiKey:     apiKey,
		userAgent:  "fastbreak/1.0",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PlayerList is a bound range within the spreadsheet, usable as a
// player list source for one tab (e.g. "roster!A:Z").
type PlayerList struct {
	client    *Client
	cellRange string
}

// List binds a cell range so it satisfies the app's player list source
// contract.
func (c *Client) List(cellRange string) *PlayerList {
	return &PlayerList{client: c, cellRange: cellRange}
}

// Players fetches the range and extracts player names. The first row
// is treated as a header when it contains a "Player" column; names are
// read from that column, otherwise from the first column starting at
// the first row. Order is preserved.
func (l *PlayerList) Players(ctx context.Context) ([]string, error) {
	body, err := l.client.fetchRange(ctx, l.cellRange)
	if err != nil {
		return nil, err
	}
	return parseNames(body), nil
}

func (c *Client) fetchRange(ctx context.Context, cellRange string) ([]byte, error) {
	u := fmt.Sprintf("%s/%s/values/%s?key=%s",
		c.baseURL, url.PathEscape(c.sheetID), url.PathEscape(cellRange), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchSheet, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchSheet, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchSheet, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrFetchSheet, resp.StatusCode)
	}
	return body, nil
}

// parseNames pulls player names out of a values response. The payload
// shape is {"values": [[cell, ...], ...]}.
func parseNames(body []byte) []string {
	rows := gjson.GetBytes(body, "values").Array()
	if len(rows) == 0 {
		return nil
	}

	nameCol := 0
	start := 0
	header := rows[0].Array()
	for i, cell := range header {
		if strings.EqualFold(strings.TrimSpace(cell.String()), "Player") {
			nameCol = i
			start = 1
			break
		}
	}

	var names []string
	for _, row := range rows[start:] {
		cells := row.Array()
		if nameCol >= len(cells) {
			continue
		}
		name := strings.TrimSpace(cells[nameCol].String())
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	return names
}
