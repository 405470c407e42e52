// Package airtable implements the narrow REST contract the portal uses
// against its remote record store: list with a server-side filter formula,
// opaque-offset pagination, get by id, single-record create, and partial
// field patch. Linked-record fields travel as arrays of foreign record ids.
package airtable

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"portal-coordinadores/internal/config"
)

const defaultAPIBaseURL = "https://api.airtable.com/v0"

// SortField is one server-side sort instruction. Direction is "asc" or "desc".
type SortField struct {
	Field     string
	Direction string
}

// ListOptions narrows a List call. Zero values are omitted from the request.
type ListOptions struct {
	FilterByFormula string
	Sort            []SortField
	PageSize        int
	MaxRecords      int
	Offset          string // opaque cursor from a previous page
}

// Page is one page of a list response. Offset is non-empty when more
// records remain.
type Page struct {
	Records []Record `json:"records"`
	Offset  string   `json:"offset"`
}

// API is the store surface the domain services depend on. Satisfied by
// *Client; tests substitute fakes.
type API interface {
	List(ctx context.Context, table string, opts ListOptions) (Page, error)
	ListAll(ctx context.Context, table string, opts ListOptions) ([]Record, error)
	Get(ctx context.Context, table, id string) (*Record, error)
	Create(ctx context.Context, table string, fields map[string]any) (*Record, error)
	Update(ctx context.Context, table, id string, fields map[string]any) (*Record, error)
}

// Client talks to one Airtable base over HTTPS with a static bearer token.
type Client struct {
	baseURL string
	baseID  string
	apiKey  string
	http    *http.Client
}

var _ API = (*Client)(nil)

// NewClient builds a client for the given base. Credentials may be empty;
// in that case every call fails with config.ErrMissingCredentials, which
// read paths upstream translate into empty results.
func NewClient(apiKey, baseID string) *Client {
	baseURL := strings.TrimSpace(os.Getenv("AIRTABLE_API_URL"))
	if baseURL == "" {
		baseURL = defaultAPIBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		baseID:  baseID,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) creds() error {
	if c.apiKey == "" || c.baseID == "" {
		return config.ErrMissingCredentials
	}
	return nil
}

// List fetches a single page from table.
func (c *Client) List(ctx context.Context, table string, opts ListOptions) (Page, error) {
	if err := c.creds(); err != nil {
		return Page{}, err
	}

	params := url.Values{}
	if opts.FilterByFormula != "" {
		params.Set("filterByFormula", opts.FilterByFormula)
	}
	for i, s := range opts.Sort {
		params.Set(fmt.Sprintf("sort[%d][field]", i), s.Field)
		params.Set(fmt.Sprintf("sort[%d][direction]", i), s.Direction)
	}
	if opts.PageSize > 0 {
		params.Set("pageSize", strconv.Itoa(opts.PageSize))
	}
	if opts.MaxRecords > 0 {
		params.Set("maxRecords", strconv.Itoa(opts.MaxRecords))
	}
	if opts.Offset != "" {
		params.Set("offset", opts.Offset)
	}

	endpoint := c.tableURL(table)
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var page Page
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &page); err != nil {
		return Page{}, err
	}
	return page, nil
}

// ListAll follows the offset cursor until the table (as filtered) is
// exhausted, concatenating all pages.
func (c *Client) ListAll(ctx context.Context, table string, opts ListOptions) ([]Record, error) {
	var all []Record
	for {
		page, err := c.List(ctx, table, opts)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Records...)
		if page.Offset == "" {
			return all, nil
		}
		opts.Offset = page.Offset
	}
}

// Get fetches one record by id. A missing record yields ErrNotFound.
func (c *Client) Get(ctx context.Context, table, id string) (*Record, error) {
	if err := c.creds(); err != nil {
		return nil, err
	}
	var rec Record
	if err := c.do(ctx, http.MethodGet, c.tableURL(table)+"/"+url.PathEscape(id), nil, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Create inserts a single record. One HTTP call per record; the portal
// never uses bulk create.
func (c *Client) Create(ctx context.Context, table string, fields map[string]any) (*Record, error) {
	if err := c.creds(); err != nil {
		return nil, err
	}
	body := map[string]any{"fields": fields, "typecast": true}
	var rec Record
	if err := c.do(ctx, http.MethodPost, c.tableURL(table), body, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Update patches the given fields of one record, leaving the rest untouched.
func (c *Client) Update(ctx context.Context, table, id string, fields map[string]any) (*Record, error) {
	if err := c.creds(); err != nil {
		return nil, err
	}
	body := map[string]any{"fields": fields, "typecast": true}
	var rec Record
	if err := c.do(ctx, http.MethodPatch, c.tableURL(table)+"/"+url.PathEscape(id), body, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *Client) tableURL(table string) string {
	return c.baseURL + "/" + url.PathEscape(c.baseID) + "/" + url.PathEscape(table)
}

func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("airtable: encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("airtable: %s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp.StatusCode, raw)
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("airtable: decode response: %w", err)
		}
	}
	return nil
}

// EscapeFormulaString escapes a value for interpolation into a single-quoted
// filterByFormula string literal. Backslashes go first so an input ending
// in one cannot neutralize the escaped quote.
func EscapeFormulaString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, "'", `\'`)
}
