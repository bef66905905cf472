package hubspot

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/forgepoint/hublink/internal/core/domain"
	"github.com/forgepoint/hublink/internal/core/ports/driven"
	"github.com/forgepoint/hublink/internal/logger"
)

// Ensure OAuthHandler implements the interface.
var _ driven.OAuthFlow = (*OAuthHandler)(nil)

const (
	// stateTTL bounds how long a pending authorization or cached credential
	// blob survives in the transient store.
	stateTTL = 600 * time.Second

	// stateTokenBytes is the entropy of the anti-forgery token.
	stateTokenBytes = 32

	// exchangeTimeout bounds the token exchange request.
	exchangeTimeout = 30 * time.Second
)

// closeWindowHTML is the confirmation page returned after a successful
// callback. Its sole purpose is to auto-close the OAuth popup.
const closeWindowHTML = `<html>
    <head><title>HubSpot Integration</title></head>
    <body>
        <h2>HubSpot integration successful!</h2>
        <p>You can close this window.</p>
        <script>
            setTimeout(() => {
                window.close();
            }, 1000);
        </script>
    </body>
</html>`

// OAuthHandler implements the HubSpot authorization-code flow: anti-forgery
// state generation/validation, the code-for-token exchange, and transient
// credential caching.
type OAuthHandler struct {
	cfg    *Config
	store  driven.TransientStore
	client *http.Client
}

// NewOAuthHandler creates a HubSpot OAuth handler backed by the given
// transient store.
func NewOAuthHandler(cfg *Config, store driven.TransientStore) *OAuthHandler {
	return &OAuthHandler{
		cfg:    cfg,
		store:  store,
		client: &http.Client{Timeout: exchangeTimeout},
	}
}

func stateKey(orgID, userID string) string {
	return fmt.Sprintf("hubspot_state:%s:%s", orgID, userID)
}

func credentialsKey(orgID, userID string) string {
	return fmt.Sprintf("hubspot_credentials:%s:%s", orgID, userID)
}

// Authorize generates the state package, caches it, and returns the vendor
// authorization URL.
func (h *OAuthHandler) Authorize(ctx context.Context, userID, orgID string) (string, error) {
	token, err := randomToken()
	if err != nil {
		return "", fmt.Errorf("%w: authorization setup failed: %v", domain.ErrInternal, err)
	}

	pkg := domain.StatePackage{Token: token, UserID: userID, OrgID: orgID}
	encoded, err := pkg.Encode()
	if err != nil {
		return "", fmt.Errorf("%w: authorization setup failed: %v", domain.ErrInternal, err)
	}

	raw, err := json.Marshal(pkg)
	if err != nil {
		return "", fmt.Errorf("%w: authorization setup failed: %v", domain.ErrInternal, err)
	}
	if err := h.store.Put(ctx, stateKey(orgID, userID), raw, stateTTL); err != nil {
		return "", fmt.Errorf("%w: authorization setup failed: %v", domain.ErrInternal, err)
	}

	params := url.Values{
		"client_id":     {h.cfg.ClientID},
		"redirect_uri":  {h.cfg.RedirectURI},
		"scope":         {strings.Join(h.cfg.scopes(), " ")},
		"state":         {encoded},
		"response_type": {"code"},
	}
	return h.cfg.authURL() + "?" + params.Encode(), nil
}

// Callback validates the redirect query, exchanges the code for a token,
// caches the credential blob and drops the state entry. Returns the
// auto-closing confirmation page.
func (h *OAuthHandler) Callback(ctx context.Context, query url.Values) (string, error) {
	if query.Get("error") != "" {
		desc := query.Get("error_description")
		if desc == "" {
			desc = "Unknown error"
		}
		return "", fmt.Errorf("%w: %s", domain.ErrInvalidInput, desc)
	}

	code := query.Get("code")
	encodedState := query.Get("state")
	if code == "" || encodedState == "" {
		return "", fmt.Errorf("%w: missing code or state parameter", domain.ErrInvalidInput)
	}

	pkg, err := domain.DecodeState(encodedState)
	if err != nil {
		return "", err
	}

	saved, err := h.store.Get(ctx, stateKey(pkg.OrgID, pkg.UserID))
	if err != nil {
		return "", fmt.Errorf("%w: reading saved state: %v", domain.ErrInternal, err)
	}
	if saved == nil {
		return "", fmt.Errorf("%w: state expired or not found", domain.ErrInvalidInput)
	}

	var savedPkg domain.StatePackage
	if err := json.Unmarshal(saved, &savedPkg); err != nil {
		return "", fmt.Errorf("%w: reading saved state: %v", domain.ErrInternal, err)
	}
	if pkg.Token != savedPkg.Token {
		return "", fmt.Errorf("%w: state mismatch - potential CSRF attack", domain.ErrInvalidInput)
	}

	credentials, err := h.exchangeCode(ctx, code)
	if err != nil {
		return "", err
	}

	// Store credentials and drop the state entry as independent operations.
	// Neither is rolled back if the other fails.
	var (
		wg             sync.WaitGroup
		putErr, delErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		putErr = h.store.Put(ctx, credentialsKey(pkg.OrgID, pkg.UserID), credentials, stateTTL)
	}()
	go func() {
		defer wg.Done()
		delErr = h.store.Delete(ctx, stateKey(pkg.OrgID, pkg.UserID))
	}()
	wg.Wait()
	if putErr != nil {
		return "", fmt.Errorf("%w: storing credentials: %v", domain.ErrInternal, putErr)
	}
	if delErr != nil {
		return "", fmt.Errorf("%w: clearing state: %v", domain.ErrInternal, delErr)
	}

	logger.Debug("hubspot oauth callback complete for org=%s user=%s", pkg.OrgID, pkg.UserID)
	return closeWindowHTML, nil
}

// Credentials returns the cached credential blob and deletes it. A second
// read for the same org/user returns not-found.
func (h *OAuthHandler) Credentials(ctx context.Context, userID, orgID string) (domain.Credentials, error) {
	key := credentialsKey(orgID, userID)

	raw, err := h.store.Get(ctx, key)
	if err != nil {
		return domain.Credentials{}, fmt.Errorf("%w: reading credentials: %v", domain.ErrInternal, err)
	}
	if raw == nil {
		return domain.Credentials{}, fmt.Errorf("%w: no hubspot credentials found, please re-authorize", domain.ErrNotFound)
	}

	creds, err := domain.ParseCredentials(raw)
	if err != nil {
		return domain.Credentials{}, err
	}

	// One-time use: drop the blob once it has been read successfully.
	if err := h.store.Delete(ctx, key); err != nil {
		return domain.Credentials{}, fmt.Errorf("%w: clearing credentials: %v", domain.ErrInternal, err)
	}

	return creds, nil
}

// exchangeCode swaps the authorization code for the vendor token response.
// Returns the raw response body so the blob round-trips into the store
// unmodified.
func (h *OAuthHandler) exchangeCode(ctx context.Context, code string) ([]byte, error) {
	data := url.Values{}
	data.Set("grant_type", "authorization_code")
	data.Set("client_id", h.cfg.ClientID)
	data.Set("client_secret", h.cfg.ClientSecret)
	data.Set("redirect_uri", h.cfg.RedirectURI)
	data.Set("code", code)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.cfg.tokenURL(), strings.NewReader(data.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: create token request: %v", domain.ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: token exchange request: %v", domain.ErrInternal, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read token response: %v", domain.ErrInternal, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: failed to exchange code for token: %s", domain.ErrInvalidInput, string(body))
	}

	return body, nil
}

// randomToken returns a URL-safe token with stateTokenBytes of entropy.
func randomToken() (string, error) {
	buf := make([]byte, stateTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
