package hubspot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgepoint/hublink/internal/adapters/driven/cache"
	"github.com/forgepoint/hublink/internal/core/domain"
)

func testConfig(tokenURL string) *Config {
	return &Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURI:  "http://localhost:8001/integrations/hubspot/oauth2callback",
		TokenURL:     tokenURL,
	}
}

// tokenServer serves a canned token exchange response and records the
// received form values.
func tokenServer(t *testing.T, status int, body string, form *url.Values) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if form != nil {
			*form = r.PostForm
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

// authorizeAndState runs Authorize and returns the encoded state parameter
// from the generated authorization URL.
func authorizeAndState(t *testing.T, handler *OAuthHandler, userID, orgID string) string {
	t.Helper()
	authURL, err := handler.Authorize(context.Background(), userID, orgID)
	require.NoError(t, err)

	parsed, err := url.Parse(authURL)
	require.NoError(t, err)
	state := parsed.Query().Get("state")
	require.NotEmpty(t, state)
	return state
}

func TestAuthorize_BuildsAuthorizationURL(t *testing.T) {
	store := cache.NewMemoryStore()
	handler := NewOAuthHandler(testConfig(""), store)

	authURL, err := handler.Authorize(context.Background(), "user-1", "org-1")
	require.NoError(t, err)

	parsed, err := url.Parse(authURL)
	require.NoError(t, err)
	assert.Equal(t, "app.hubspot.com", parsed.Host)
	assert.Equal(t, "/oauth/authorize", parsed.Path)

	q := parsed.Query()
	assert.Equal(t, "client-id", q.Get("client_id"))
	assert.Equal(t, "http://localhost:8001/integrations/hubspot/oauth2callback", q.Get("redirect_uri"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Contains(t, q.Get("scope"), "crm.objects.contacts.read")
	assert.Contains(t, q.Get("scope"), "oauth")

	// The state parameter decodes back to the caller's identity.
	pkg, err := domain.DecodeState(q.Get("state"))
	require.NoError(t, err)
	assert.Equal(t, "user-1", pkg.UserID)
	assert.Equal(t, "org-1", pkg.OrgID)
	assert.NotEmpty(t, pkg.Token)
}

func TestAuthorize_CachesStatePackage(t *testing.T) {
	store := cache.NewMemoryStore()
	handler := NewOAuthHandler(testConfig(""), store)

	state := authorizeAndState(t, handler, "user-1", "org-1")
	pkg, err := domain.DecodeState(state)
	require.NoError(t, err)

	saved, err := store.Get(context.Background(), "hubspot_state:org-1:user-1")
	require.NoError(t, err)
	require.NotNil(t, saved)

	var savedPkg domain.StatePackage
	require.NoError(t, json.Unmarshal(saved, &savedPkg))
	assert.Equal(t, pkg.Token, savedPkg.Token)
}

func TestAuthorize_TokensAreUnique(t *testing.T) {
	store := cache.NewMemoryStore()
	handler := NewOAuthHandler(testConfig(""), store)

	first := authorizeAndState(t, handler, "user-1", "org-1")
	second := authorizeAndState(t, handler, "user-1", "org-1")
	assert.NotEqual(t, first, second)
}

func TestCallback_Success(t *testing.T) {
	var form url.Values
	srv := tokenServer(t, http.StatusOK, `{"access_token":"tok","refresh_token":"ref","expires_in":1800}`, &form)
	defer srv.Close()

	store := cache.NewMemoryStore()
	handler := NewOAuthHandler(testConfig(srv.URL), store)
	state := authorizeAndState(t, handler, "user-1", "org-1")

	html, err := handler.Callback(context.Background(), url.Values{
		"code":  {"auth-code"},
		"state": {state},
	})
	require.NoError(t, err)
	assert.Contains(t, html, "window.close()")

	// Exchange sent the expected form fields.
	assert.Equal(t, "authorization_code", form.Get("grant_type"))
	assert.Equal(t, "client-id", form.Get("client_id"))
	assert.Equal(t, "client-secret", form.Get("client_secret"))
	assert.Equal(t, "auth-code", form.Get("code"))

	// Credentials cached verbatim, state consumed.
	ctx := context.Background()
	saved, err := store.Get(ctx, "hubspot_credentials:org-1:user-1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"access_token":"tok","refresh_token":"ref","expires_in":1800}`, string(saved))

	gone, err := store.Get(ctx, "hubspot_state:org-1:user-1")
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestCallback_VendorError(t *testing.T) {
	handler := NewOAuthHandler(testConfig(""), cache.NewMemoryStore())

	_, err := handler.Callback(context.Background(), url.Values{
		"error":             {"access_denied"},
		"error_description": {"User denied access"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "User denied access")
}

func TestCallback_VendorErrorWithoutDescription(t *testing.T) {
	handler := NewOAuthHandler(testConfig(""), cache.NewMemoryStore())

	_, err := handler.Callback(context.Background(), url.Values{"error": {"access_denied"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unknown error")
}

func TestCallback_MissingParameters(t *testing.T) {
	handler := NewOAuthHandler(testConfig(""), cache.NewMemoryStore())

	tests := []struct {
		name  string
		query url.Values
	}{
		{name: "missing code", query: url.Values{"state": {"abc"}}},
		{name: "missing state", query: url.Values{"code": {"abc"}}},
		{name: "empty query", query: url.Values{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := handler.Callback(context.Background(), tt.query)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestCallback_MalformedState(t *testing.T) {
	handler := NewOAuthHandler(testConfig(""), cache.NewMemoryStore())

	_, err := handler.Callback(context.Background(), url.Values{
		"code":  {"auth-code"},
		"state": {"%%%not-base64%%%"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCallback_ExpiredState(t *testing.T) {
	handler := NewOAuthHandler(testConfig(""), cache.NewMemoryStore())

	// A well-formed state that was never cached (or has expired).
	pkg := domain.StatePackage{Token: "tok", UserID: "user-1", OrgID: "org-1"}
	encoded, err := pkg.Encode()
	require.NoError(t, err)

	_, err = handler.Callback(context.Background(), url.Values{
		"code":  {"auth-code"},
		"state": {encoded},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "expired")
}

func TestCallback_ForgedToken(t *testing.T) {
	store := cache.NewMemoryStore()
	handler := NewOAuthHandler(testConfig(""), store)
	state := authorizeAndState(t, handler, "user-1", "org-1")

	// Re-encode the state with a different token but the same identity.
	pkg, err := domain.DecodeState(state)
	require.NoError(t, err)
	pkg.Token += "X"
	forged, err := pkg.Encode()
	require.NoError(t, err)

	_, err = handler.Callback(context.Background(), url.Values{
		"code":  {"auth-code"},
		"state": {forged},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "mismatch")
}

func TestCallback_ExchangeFailure(t *testing.T) {
	srv := tokenServer(t, http.StatusBadRequest, `{"status":"error","message":"invalid code"}`, nil)
	defer srv.Close()

	store := cache.NewMemoryStore()
	handler := NewOAuthHandler(testConfig(srv.URL), store)
	state := authorizeAndState(t, handler, "user-1", "org-1")

	_, err := handler.Callback(context.Background(), url.Values{
		"code":  {"bad-code"},
		"state": {state},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "invalid code")
}

func TestCredentials_OneTimeRead(t *testing.T) {
	store := cache.NewMemoryStore()
	handler := NewOAuthHandler(testConfig(""), store)
	ctx := context.Background()

	blob := []byte(`{"access_token":"tok","refresh_token":"ref"}`)
	require.NoError(t, store.Put(ctx, "hubspot_credentials:org-1:user-1", blob, 10*time.Minute))

	creds, err := handler.Credentials(ctx, "user-1", "org-1")
	require.NoError(t, err)
	assert.Equal(t, "tok", creds.AccessToken)
	assert.Equal(t, "ref", creds.RefreshToken)

	// Second read finds nothing.
	_, err = handler.Credentials(ctx, "user-1", "org-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCredentials_NotFound(t *testing.T) {
	handler := NewOAuthHandler(testConfig(""), cache.NewMemoryStore())

	_, err := handler.Credentials(context.Background(), "user-1", "org-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "re-authorize")
}

func TestCredentials_InvalidBlobIsNotConsumed(t *testing.T) {
	store := cache.NewMemoryStore()
	handler := NewOAuthHandler(testConfig(""), store)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "hubspot_credentials:org-1:user-1", []byte(`{"refresh_token":"only"}`), 10*time.Minute))

	_, err := handler.Credentials(ctx, "user-1", "org-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// The blob stays cached when validation fails.
	saved, err := store.Get(ctx, "hubspot_credentials:org-1:user-1")
	require.NoError(t, err)
	assert.NotNil(t, saved)
}
