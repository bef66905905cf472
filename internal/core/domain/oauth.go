package domain

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// StatePackage is the anti-forgery token bundled with user/org context and
// round-tripped through the OAuth redirect. The encoded form travels via the
// client; a copy is cached server-side and the two are compared
// byte-for-byte on callback.
type StatePackage struct {
	Token  string `json:"state"`
	UserID string `json:"user_id"`
	OrgID  string `json:"org_id"`
}

// Encode serialises the state package as URL-safe base64 of its JSON form.
func (s StatePackage) Encode() (string, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encode state: %w", err)
	}
	return base64.URLEncoding.EncodeToString(raw), nil
}

// DecodeState reverses Encode. Any decode failure is an input error since
// the value arrives from the redirect query string.
func DecodeState(encoded string) (StatePackage, error) {
	raw, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return StatePackage{}, fmt.Errorf("%w: invalid state parameter: %v", ErrInvalidInput, err)
	}
	var s StatePackage
	if err := json.Unmarshal(raw, &s); err != nil {
		return StatePackage{}, fmt.Errorf("%w: invalid state parameter: %v", ErrInvalidInput, err)
	}
	return s, nil
}

// Credentials is the vendor-issued token payload, cached transiently and
// consumed once. AccessToken is the only field this module requires; the
// rest is kept so the blob round-trips intact.
type Credentials struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
	ExpiresIn    int    `json:"expires_in,omitempty"`
}

// ParseCredentials decodes a credential blob and verifies it carries an
// access token. This is the single typed deserialisation step at the store
// and API boundary.
func ParseCredentials(raw []byte) (Credentials, error) {
	var c Credentials
	if err := json.Unmarshal(raw, &c); err != nil {
		return Credentials{}, fmt.Errorf("%w: invalid credentials format: %v", ErrInvalidInput, err)
	}
	if c.AccessToken == "" {
		return Credentials{}, fmt.Errorf("%w: missing access_token in credentials", ErrInvalidInput)
	}
	return c, nil
}
