// Package joomla is a thin client for the Joomla content REST API. It owns
// header construction and the request/response exchange; interpreting status
// codes and payloads is left to the caller.
package joomla

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	articlesPath   = "/api/index.php/v1/content/articles"
	categoriesPath = "/api/index.php/v1/content/categories"

	userAgent = "JoomlaArticlesMCP/1.0"
)

type Client struct {
	baseURL    string
	token      string
	HTTPClient *http.Client
}

// NewClient builds a client for the Joomla instance at baseURL. Each call
// uses a fresh request on the shared pooled transport; timeout bounds the
// whole exchange.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type Response struct {
	*http.Response
	Body []byte
}

func (r *Response) DecodeJSON(target any) error {
	return json.Unmarshal(r.Body, target)
}

// Text returns the response body as a string, for verbatim surfacing in
// result and error messages.
func (r *Response) Text() string {
	return string(r.Body)
}

func (c *Client) ListArticles(ctx context.Context) (*Response, error) {
	return c.request(ctx, http.MethodGet, articlesPath, nil)
}

func (c *Client) ListCategories(ctx context.Context) (*Response, error) {
	return c.request(ctx, http.MethodGet, categoriesPath, nil)
}

func (c *Client) GetArticle(ctx context.Context, id int64) (*Response, error) {
	return c.request(ctx, http.MethodGet, fmt.Sprintf("%s/%d", articlesPath, id), nil)
}

func (c *Client) CreateArticle(ctx context.Context, payload CreatePayload) (*Response, error) {
	return c.request(ctx, http.MethodPost, articlesPath, payload)
}

func (c *Client) UpdateArticle(ctx context.Context, id int64, patch map[string]any) (*Response, error) {
	return c.request(ctx, http.MethodPatch, fmt.Sprintf("%s/%d", articlesPath, id), patch)
}

func (c *Client) DeleteArticle(ctx context.Context, id int64) (*Response, error) {
	return c.request(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", articlesPath, id), nil)
}

func (c *Client) request(ctx context.Context, method, path string, body any) (*Response, error) {
	var reqBody io.Reader
	hasBody := body != nil

	if hasBody {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/vnd.api+json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Authorization", "Bearer "+c.token)
	if hasBody {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Response{
		Response: resp,
		Body:     respBody,
	}, nil
}
