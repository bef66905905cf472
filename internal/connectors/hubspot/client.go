package hubspot

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

	"golang.org/x/oauth2"

	"github.com/forgepoint/hublink/internal/core/domain"
	"github.com/forgepoint/hublink/internal/core/ports/driven"
	"github.com/forgepoint/hublink/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.ObjectClient = (*Client)(nil)

const (
	// DefaultPageLimit is the fixed page size for collection fetches.
	DefaultPageLimit = 50

	// searchTimeout bounds the search request; collection fetches rely on
	// the transport default.
	searchTimeout = 30 * time.Second
)

// Client fetches raw CRM objects from the HubSpot v3 API.
type Client struct {
	cfg *Config
}

// NewClient creates a HubSpot API client.
func NewClient(cfg *Config) *Client {
	return &Client{cfg: cfg}
}

// objectPage is the envelope of collection and search responses.
type objectPage struct {
	Results []domain.RawObject `json:"results"`
}

// apiError is the structured error body HubSpot returns on failures.
type apiError struct {
	Message string `json:"message"`
	Errors  []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// FetchObjects issues a collection GET for the object type with the fixed
// property and association lists. A non-200 response is logged and degrades
// to an empty result.
func (c *Client) FetchObjects(ctx context.Context, objectType, accessToken string, limit int) ([]domain.RawObject, error) {
	if limit <= 0 {
		limit = DefaultPageLimit
	}

	params := url.Values{
		"limit":      {strconv.Itoa(limit)},
		"properties": {strings.Join(DefaultProperties(objectType), ",")},
	}
	if assoc := AssociationsFor(objectType); len(assoc) > 0 {
		params.Set("associations", strings.Join(assoc, ","))
	}
	endpoint := fmt.Sprintf("%s/crm/v3/objects/%s?%s", c.cfg.apiBaseURL(), objectType, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create fetch request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.authorizedClient(ctx, accessToken).Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", objectType, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		logger.Warn("failed to fetch %s: %d - %s", objectType, resp.StatusCode, string(body))
		return nil, nil
	}

	var page objectPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", objectType, err)
	}
	return page.Results, nil
}

// SearchObjects issues a search POST for the object type. A non-200
// response yields an UpstreamError carrying the vendor status and the best
// message that could be parsed from the body.
func (c *Client) SearchObjects(ctx context.Context, objectType, accessToken, query string) ([]domain.RawObject, error) {
	ctx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()

	payload, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, fmt.Errorf("encode search payload: %w", err)
	}

	endpoint := fmt.Sprintf("%s/crm/v3/objects/%s/search", c.cfg.apiBaseURL(), objectType)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.authorizedClient(ctx, accessToken).Do(req)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", objectType, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		logger.Warn("hubspot search failed: %d - %s", resp.StatusCode, string(body))
		return nil, &domain.UpstreamError{
			StatusCode: resp.StatusCode,
			Message:    "hubspot search failed: " + searchErrorMessage(body),
		}
	}

	var page objectPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return page.Results, nil
}

// authorizedClient builds a bearer-authorized HTTP client for the token.
func (c *Client) authorizedClient(ctx context.Context, accessToken string) *http.Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	return oauth2.NewClient(ctx, src)
}

// searchErrorMessage extracts a readable message from an error body,
// falling back to the raw text when the body is not structured.
func searchErrorMessage(body []byte) string {
	var parsed apiError
	if err := json.Unmarshal(body, &parsed); err != nil || parsed.Message == "" {
		return string(body)
	}
	msg := parsed.Message
	if len(parsed.Errors) > 0 {
		details := make([]string, 0, len(parsed.Errors))
		for _, e := range parsed.Errors {
			details = append(details, e.Message)
		}
		msg += " - Details: " + strings.Join(details, "; ")
	}
	return msg
}
