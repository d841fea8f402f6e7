// Package api is the HTTP client contactctl uses to talk to a contactbook server.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kutbudev/contactbook/internal/config"
	"github.com/kutbudev/contactbook/pkg/models"
)

// DefaultBaseURL is used when neither CONTACTBOOK_URL nor the config file name a server.
const DefaultBaseURL = "http://localhost:3000"

// Error is a non-2xx answer. Message is the server's "msg" field when present.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("API request failed with status %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// CreateContactRequest is the body of POST /contact.
type CreateContactRequest struct {
	FullName string  `json:"full_name"`
	Email    string  `json:"email"`
	Address  *string `json:"address,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Groups   []uint  `json:"groups"`
}

// UpdateContactRequest only carries the fields to change.
type UpdateContactRequest struct {
	FullName *string `json:"full_name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Address  *string `json:"address,omitempty"`
	Phone    *string `json:"phone,omitempty"`
}

func (r UpdateContactRequest) Empty() bool {
	return r.FullName == nil && r.Email == nil && r.Address == nil && r.Phone == nil
}

type CreateGroupRequest struct {
	Name     string `json:"name"`
	Contacts []uint `json:"contacts"`
}

type UpdateGroupRequest struct {
	Name *string `json:"name,omitempty"`
}

type DeletedContact struct {
	ID       uint   `json:"id"`
	FullName string `json:"full_name"`
}

type DeletedGroup struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// NewClient resolves the server from CONTACTBOOK_URL, then ~/.contactctl/config.json.
func NewClient() *Client {
	baseURL := os.Getenv("CONTACTBOOK_URL")
	if baseURL == "" {
		if cfg, err := config.LoadConfig(); err == nil && cfg.BaseURL != "" {
			baseURL = cfg.BaseURL
		}
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return New(baseURL, nil)
}

// New builds a client for baseURL. A nil httpClient gets a 30s timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: httpClient,
	}
}

// makeRequest sends body as JSON and decodes a successful response into out.
func (c *Client) makeRequest(ctx context.Context, method, endpoint string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return decodeError(resp.StatusCode, respBody)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}

func decodeError(status int, body []byte) error {
	var payload struct {
		Msg string `json:"msg"`
	}
	msg := strings.TrimSpace(string(body))
	if err := json.Unmarshal(body, &payload); err == nil && payload.Msg != "" {
		msg = payload.Msg
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &Error{StatusCode: status, Message: msg}
}

func idPath(prefix string, id uint) string {
	return prefix + "/" + strconv.FormatUint(uint64(id), 10)
}

// Contact API methods
func (c *Client) ListContacts(ctx context.Context) ([]models.ContactView, error) {
	var contacts []models.ContactView
	if err := c.makeRequest(ctx, http.MethodGet, "/contact/all", nil, &contacts); err != nil {
		return nil, err
	}
	return contacts, nil
}

func (c *Client) GetContact(ctx context.Context, id uint) (*models.ContactView, error) {
	var contact models.ContactView
	if err := c.makeRequest(ctx, http.MethodGet, idPath("/contact", id), nil, &contact); err != nil {
		return nil, err
	}
	return &contact, nil
}

func (c *Client) CreateContact(ctx context.Context, in CreateContactRequest) (*models.ContactView, error) {
	if in.Groups == nil {
		in.Groups = []uint{}
	}
	var contact models.ContactView
	if err := c.makeRequest(ctx, http.MethodPost, "/contact", in, &contact); err != nil {
		return nil, err
	}
	return &contact, nil
}

func (c *Client) UpdateContact(ctx context.Context, id uint, in UpdateContactRequest) (*models.ContactView, error) {
	var contact models.ContactView
	if err := c.makeRequest(ctx, http.MethodPut, idPath("/contact", id), in, &contact); err != nil {
		return nil, err
	}
	return &contact, nil
}

func (c *Client) DeleteContact(ctx context.Context, id uint) (*DeletedContact, error) {
	var resp struct {
		Deleted DeletedContact `json:"deleted"`
	}
	if err := c.makeRequest(ctx, http.MethodDelete, idPath("/contact", id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Deleted, nil
}

// Group API methods
func (c *Client) ListGroups(ctx context.Context) ([]models.GroupView, error) {
	var groups []models.GroupView
	if err := c.makeRequest(ctx, http.MethodGet, "/group", nil, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

func (c *Client) GetGroup(ctx context.Context, id uint) (*models.GroupView, error) {
	var group models.GroupView
	if err := c.makeRequest(ctx, http.MethodGet, idPath("/group", id), nil, &group); err != nil {
		return nil, err
	}
	return &group, nil
}

func (c *Client) CreateGroup(ctx context.Context, in CreateGroupRequest) (*models.GroupView, error) {
	if in.Contacts == nil {
		in.Contacts = []uint{}
	}
	var group models.GroupView
	if err := c.makeRequest(ctx, http.MethodPost, "/group", in, &group); err != nil {
		return nil, err
	}
	return &group, nil
}

func (c *Client) UpdateGroup(ctx context.Context, id uint, in UpdateGroupRequest) (*models.GroupView, error) {
	var group models.GroupView
	if err := c.makeRequest(ctx, http.MethodPut, idPath("/group", id), in, &group); err != nil {
		return nil, err
	}
	return &group, nil
}

func (c *Client) DeleteGroup(ctx context.Context, id uint) (*DeletedGroup, error) {
	var resp struct {
		Deleted DeletedGroup `json:"deleted"`
	}
	if err := c.makeRequest(ctx, http.MethodDelete, idPath("/group", id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Deleted, nil
}

// Ping checks that the server answers on /ping.
func (c *Client) Ping(ctx context.Context) error {
	return c.makeRequest(ctx, http.MethodGet, "/ping", nil, nil)
}
