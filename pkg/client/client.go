// Package client is a typed HTTP client for the finboard API. Each method
// maps to one endpoint and reports failures as errors carrying the
// server-provided message, falling back to a per-operation default.
package client

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

	"finboard/internal/dto"
)

type Client struct {
	baseURL string
	httpc   *http.Client
	tokens  TokenStore
}

// New creates a client for the API at baseURL. The token store is required;
// use NewMemoryTokenStore for a process-local session.
func New(baseURL string, tokens TokenStore) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 30 * time.Second},
		tokens:  tokens,
	}
}

// TransactionFilter holds the optional list predicates. Zero-valued string
// fields and nil dates mean "no filter"; there are no sentinel values.
type TransactionFilter struct {
	Category  string
	Type      string
	Status    string
	Search    string
	StartDate *time.Time
	EndDate   *time.Time
}

func (f TransactionFilter) query() url.Values {
	q := url.Values{}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.Type != "" {
		q.Set("type", f.Type)
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.StartDate != nil {
		q.Set("startDate", f.StartDate.Format("2006-01-02"))
	}
	if f.EndDate != nil {
		q.Set("endDate", f.EndDate.Format("2006-01-02"))
	}
	return q
}

// APIError is a non-2xx response decoded into the server's message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

func (c *Client) Register(ctx context.Context, username, email, password string) (*dto.AuthResponse, error) {
	req := dto.RegisterRequest{Username: username, Email: email, Password: password}
	var resp dto.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/user/auth/register", nil, req, &resp, "Registration failed"); err != nil {
		return nil, err
	}
	c.tokens.Set(resp.AccessToken)
	return &resp, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
	req := dto.LoginRequest{Email: email, Password: password}
	var resp dto.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/user/auth/login", nil, req, &resp, "Login failed"); err != nil {
		return nil, err
	}
	c.tokens.Set(resp.AccessToken)
	return &resp, nil
}

// Logout drops the stored token. Purely client-side.
func (c *Client) Logout() {
	c.tokens.Clear()
}

func (c *Client) ListTransactions(ctx context.Context, f TransactionFilter, page, limit int) (*dto.TransactionListResponse, error) {
	q := f.query()
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var resp dto.TransactionListResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/transactions", q, nil, &resp, "Failed to fetch transactions"); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) CreateTransaction(ctx context.Context, req *dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	var resp dto.MutationResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/transactions", nil, req, &resp, "Failed to create transaction"); err != nil {
		return nil, err
	}
	return &resp.Transaction, nil
}

func (c *Client) UpdateTransaction(ctx context.Context, id string, req *dto.UpdateTransactionRequest) (*dto.TransactionResponse, error) {
	var resp dto.MutationResponse
	if err := c.do(ctx, http.MethodPut, "/api/v1/transactions/"+id, nil, req, &resp, "Failed to update transaction"); err != nil {
		return nil, err
	}
	return &resp.Transaction, nil
}

func (c *Client) DeleteTransaction(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/transactions/"+id, nil, nil, nil, "Failed to delete transaction")
}

func (c *Client) DashboardSummary(ctx context.Context) (*dto.DashboardSummaryResponse, error) {
	var resp dto.DashboardSummaryResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/dashboard/summary", nil, nil, &resp, "Failed to fetch dashboard data"); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) RecentTransactions(ctx context.Context) ([]dto.TransactionResponse, error) {
	var resp dto.RecentTransactionsResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/dashboard/recent-transactions", nil, nil, &resp, "Failed to fetch recent transactions"); err != nil {
		return nil, err
	}
	return resp.Transactions, nil
}

// ExportCSV downloads the filtered transactions in CSV form.
func (c *Client) ExportCSV(ctx context.Context, f TransactionFilter) (string, error) {
	body, err := c.doRaw(ctx, http.MethodGet, "/api/v1/transactions/export", f.query(), nil, "Failed to export transactions")
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, fallback string) error {
	raw, err := c.doRaw(ctx, method, path, query, body, fallback)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}

func (c *Client) doRaw(ctx context.Context, method, path string, query url.Values, body any, fallback string) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Get(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			Status:  resp.StatusCode,
			Message: serverMessage(raw, fallback),
		}
	}

	return raw, nil
}

// serverMessage pulls the most specific message out of an error payload.
func serverMessage(raw []byte, fallback string) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Errors  []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
		if len(payload.Errors) > 0 {
			parts := make([]string, 0, len(payload.Errors))
			for _, e := range payload.Errors {
				parts = append(parts, e.Field+": "+e.Message)
			}
			return strings.Join(parts, "; ")
		}
	}
	return fallback
}
