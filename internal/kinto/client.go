package kinto

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/inovacc/kollect/internal/application"
)

const defaultTimeout = 30 * time.Second

// Config configures a Client. BaseURL points at the server API root,
// e.g. "http://127.0.0.1:8888/v1". Credentials are optional; when both
// are set every request carries HTTP basic auth.
type Config struct {
	BaseURL  string
	Username string
	Password string
	Timeout  time.Duration
}

// Client talks to a record server. All methods are safe for concurrent
// use and honor the passed context for cancellation.
type Client struct {
	httpClient *http.Client
	baseURL    string
	username   string
	password   string
	logger     *slog.Logger
}

// New creates a record server client from an explicit configuration.
func New(cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("server base URL is required")
	}

	if logger == nil {
		logger = slog.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		username:   cfg.Username,
		password:   cfg.Password,
		logger:     logger,
	}, nil
}

// ListRecords fetches the first page of a collection. Sort keys use the
// wire convention: a plain column name sorts ascending, a "-" prefix
// descending. A nil limit leaves the result set uncapped.
func (c *Client) ListRecords(ctx context.Context, res Resource, sortKeys []string, limit *int) (Page, error) {
	endpoint := c.baseURL + res.RecordsPath()

	q := url.Values{}
	if len(sortKeys) > 0 {
		q.Set("_sort", strings.Join(sortKeys, ","))
	}

	if limit != nil {
		q.Set("_limit", strconv.Itoa(*limit))
	}

	if encoded := q.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	return c.fetchPage(ctx, endpoint)
}

// FetchPage follows a Next-Page cursor URL obtained from a previous
// listing.
func (c *Client) FetchPage(ctx context.Context, pageURL string) (Page, error) {
	return c.fetchPage(ctx, pageURL)
}

// GetRecord fetches the canonical copy of a single record.
func (c *Client) GetRecord(ctx context.Context, res Resource, id string) (Record, error) {
	var envelope struct {
		Data Record `json:"data"`
	}

	if _, err := c.do(ctx, http.MethodGet, c.baseURL+res.RecordPath(id), nil, &envelope); err != nil {
		return Record{}, err
	}

	return envelope.Data, nil
}

// CreateRecord adds a record to the collection. The server assigns the
// id and last_modified timestamp.
func (c *Client) CreateRecord(ctx context.Context, res Resource, body RecordBody) (Record, error) {
	var envelope struct {
		Data Record `json:"data"`
	}

	payload := map[string]RecordBody{"data": body}
	if _, err := c.do(ctx, http.MethodPost, c.baseURL+res.RecordsPath(), payload, &envelope); err != nil {
		return Record{}, err
	}

	return envelope.Data, nil
}

// UpdateRecord patches an existing record's writable fields.
func (c *Client) UpdateRecord(ctx context.Context, res Resource, id string, body RecordBody) (Record, error) {
	var envelope struct {
		Data Record `json:"data"`
	}

	payload := map[string]RecordBody{"data": body}
	if _, err := c.do(ctx, http.MethodPatch, c.baseURL+res.RecordPath(id), payload, &envelope); err != nil {
		return Record{}, err
	}

	return envelope.Data, nil
}

// DeleteRecord removes a record and returns its tombstone data.
func (c *Client) DeleteRecord(ctx context.Context, res Resource, id string) (Record, error) {
	var envelope struct {
		Data Record `json:"data"`
	}

	if _, err := c.do(ctx, http.MethodDelete, c.baseURL+res.RecordPath(id), nil, &envelope); err != nil {
		return Record{}, err
	}

	return envelope.Data, nil
}

func (c *Client) fetchPage(ctx context.Context, endpoint string) (Page, error) {
	var envelope struct {
		Data []Record `json:"data"`
	}

	header, err := c.do(ctx, http.MethodGet, endpoint, nil, &envelope)
	if err != nil {
		return Page{}, err
	}

	page := Page{
		Objects:  envelope.Data,
		NextPage: header.Get("Next-Page"),
	}

	if total := header.Get("Total-Records"); total != "" {
		if n, err := strconv.Atoi(total); err == nil {
			page.Total = n
		}
	}

	return page, nil
}

// do performs an HTTP request against the record server, decoding the
// response into result when it is non-nil. The response headers are
// returned so listings can read pagination metadata.
func (c *Client) do(ctx context.Context, method, endpoint string, payload, result any) (http.Header, error) {
	c.logger.Debug("record server request",
		slog.String("method", method),
		slog.String("url", endpoint),
	)

	var bodyReader io.Reader

	if payload != nil {
		bodyBytes, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}

		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", application.UserAgent)

	if c.username != "" || c.password != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 400 {
		return nil, c.decodeError(resp)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return resp.Header, nil
}

// decodeError turns an error response into an *APIError when the body
// carries the protocol error payload, falling back to the raw body.
func (c *Client) decodeError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Code != 0 {
		return &apiErr
	}

	return fmt.Errorf("API error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
}
