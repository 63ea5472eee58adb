// Package client talks to the storefront cart API over HTTP and keeps an
// optimistic local mirror of a user's cart.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ecoshop/internal/domain"
)

// APIError is a non-2xx response from the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Unwrap lets callers match API failures against the domain sentinels.
func (e *APIError) Unwrap() error {
	switch {
	case e.Status == http.StatusNotFound:
		return domain.ErrNotFound
	case e.Status == http.StatusBadRequest:
		return domain.ErrValidation
	}
	return nil
}

type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a Client for the API at baseURL. A nil httpClient gets a
// default client with a 10 second timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

type cartItemPayload struct {
	UserID    int64 `json:"user_id"`
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

func (c *Client) AddToCart(ctx context.Context, userID, productID int64, quantity int) error {
	return c.do(ctx, http.MethodPost, "/cart/add", cartItemPayload{userID, productID, quantity}, nil)
}

func (c *Client) UpdateCart(ctx context.Context, userID, productID int64, quantity int) error {
	return c.do(ctx, http.MethodPost, "/cart/update", cartItemPayload{userID, productID, quantity}, nil)
}

func (c *Client) RemoveFromCart(ctx context.Context, userID, productID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/cart/%d/%d", userID, productID), nil, nil)
}

func (c *Client) ClearCart(ctx context.Context, userID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/cart/clear/%d", userID), nil, nil)
}

func (c *Client) Cart(ctx context.Context, userID int64) ([]domain.CartItem, error) {
	var items []domain.CartItem
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/cart/%d", userID), nil, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.CartItem{}
	}
	return items, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		msg := strings.TrimSpace(string(payload))
		if json.Unmarshal(payload, &e) == nil && e.Error != "" {
			msg = e.Error
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if out == nil || len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
