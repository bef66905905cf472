// Package hubspot implements the HubSpot CRM connector: the OAuth
// authorization-code flow and the object fetch/search client.
package hubspot

import "strings"

// HubSpot OAuth and API endpoints.
const (
	defaultAuthURL = "https://app.hubspot.com/oauth/authorize"
	//nolint:gosec // G101: Not credentials, OAuth endpoint URL
	defaultTokenURL   = "https://api.hubapi.com/oauth/v1/token"
	defaultAPIBaseURL = "https://api.hubapi.com"
	defaultAppBaseURL = "https://app.hubspot.com"
)

// defaultScopes are the OAuth scopes requested during authorization.
var defaultScopes = []string{
	"crm.objects.contacts.read",
	"crm.objects.companies.read",
	"crm.objects.deals.read",
	"crm.schemas.contacts.read",
	"crm.schemas.companies.read",
	"oauth",
}

// Config holds the HubSpot app credentials and endpoint configuration.
// It is injected at construction so tests can point the connector at
// doubles instead of the live API.
type Config struct {
	// ClientID and ClientSecret identify the OAuth app.
	ClientID     string
	ClientSecret string
	// RedirectURI is the registered OAuth callback URL.
	RedirectURI string
	// AuthURL and TokenURL override the OAuth endpoints (optional).
	AuthURL  string
	TokenURL string
	// APIBaseURL overrides the CRM API base (optional).
	APIBaseURL string
	// AppBaseURL overrides the web app base used for record URLs (optional).
	AppBaseURL string
	// Scopes overrides the requested OAuth scopes (optional).
	Scopes []string
}

func (c *Config) authURL() string {
	if c.AuthURL != "" {
		return c.AuthURL
	}
	return defaultAuthURL
}

func (c *Config) tokenURL() string {
	if c.TokenURL != "" {
		return c.TokenURL
	}
	return defaultTokenURL
}

func (c *Config) apiBaseURL() string {
	if c.APIBaseURL != "" {
		return strings.TrimRight(c.APIBaseURL, "/")
	}
	return defaultAPIBaseURL
}

// AppURL returns the web app base used for canonical record URLs.
func (c *Config) AppURL() string {
	if c.AppBaseURL != "" {
		return strings.TrimRight(c.AppBaseURL, "/")
	}
	return defaultAppBaseURL
}

func (c *Config) scopes() []string {
	if len(c.Scopes) > 0 {
		return c.Scopes
	}
	return defaultScopes
}
