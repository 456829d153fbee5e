// Package wordpress is a small client for the wp/v2 REST API.
package wordpress

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"

	"wordpress-posts/internal/models"
)

const apiPrefix = "/wp-json/wp/v2/"

// Credentials identify a site and the application password used for Basic auth.
type Credentials struct {
	SiteURL  string
	Username string
	Password string
}

func (c Credentials) Complete() bool {
	return c.SiteURL != "" && c.Username != "" && c.Password != ""
}

// Doer is satisfied by *http.Client and the instrumented common client.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	creds      Credentials
	baseURL    string
	httpClient Doer
}

func NewClient(creds Credentials, httpClient Doer) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		creds:      creds,
		baseURL:    strings.TrimRight(creds.SiteURL, "/") + apiPrefix,
		httpClient: httpClient,
	}
}

// SiteURL returns the normalized site root.
func (c *Client) SiteURL() string {
	return strings.TrimSuffix(c.baseURL, apiPrefix)
}

// APIError is a non-2xx response. Message holds the remote "message" field
// when the body carried one.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	body := e.Body
	if len(body) > 200 {
		body = body[:200]
	}
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, body)
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status, Body: string(body)}
	var payload struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		apiErr.Code = payload.Code
		apiErr.Message = payload.Message
	}
	return apiErr
}

// Request performs an authenticated JSON call against endpoint (relative to
// /wp-json/wp/v2/) and decodes the response into out when it is non-nil.
func (c *Client) Request(ctx context.Context, method, endpoint string, query url.Values, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(jsonData)
	}

	u := c.baseURL + strings.TrimLeft(endpoint, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	req.SetBasicAuth(c.creds.Username, c.creds.Password)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, respBody)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}

func (c *Client) ListPosts(ctx context.Context, params models.ListPostsParams) ([]models.Post, error) {
	var posts []models.Post
	if err := c.Request(ctx, http.MethodGet, "posts", params.Values(), nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *Client) GetPost(ctx context.Context, id int64) (*models.Post, error) {
	var post models.Post
	if err := c.Request(ctx, http.MethodGet, "posts/"+strconv.FormatInt(id, 10), nil, nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *Client) CreatePost(ctx context.Context, data *models.PostWrite) (*models.Post, error) {
	var post models.Post
	if err := c.Request(ctx, http.MethodPost, "posts", nil, data, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePost sends a partial update; WordPress accepts POST on the item route.
func (c *Client) UpdatePost(ctx context.Context, id int64, data *models.PostWrite) (*models.Post, error) {
	var post models.Post
	if err := c.Request(ctx, http.MethodPost, "posts/"+strconv.FormatInt(id, 10), nil, data, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// UploadMedia posts data as the "file" part of a multipart body.
func (c *Client) UploadMedia(ctx context.Context, filename, contentType string, data []byte) (*models.Media, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(filename)))
	header.Set("Content-Type", contentType)

	part, err := mw.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("failed to create multipart part: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write multipart body: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"media", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var media models.Media
	if err := c.do(req, &media); err != nil {
		return nil, err
	}
	return &media, nil
}

func (c *Client) GetMedia(ctx context.Context, id int64) (*models.Media, error) {
	var media models.Media
	if err := c.Request(ctx, http.MethodGet, "media/"+strconv.FormatInt(id, 10), nil, nil, &media); err != nil {
		return nil, err
	}
	return &media, nil
}
