// Package plaid is a thin client for the Plaid Identity Verification REST
// API. It wraps exactly the four calls this app makes — create, get and list
// verification sessions, and create a Link token. There is no retry or
// backoff; a failed call propagates to the caller's handler.
package plaid

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-idv-api/internal/config"
	"github.com/go-idv-api/internal/domain"
)

const apiVersion = "2020-09-14"

// environments maps PLAID_ENV to its API base URL.
var environments = map[string]string{
	"sandbox":    "https://sandbox.plaid.com",
	"production": "https://production.plaid.com",
}

// Client calls the Plaid API with credentials from config.
type Client struct {
	httpClient *http.Client
	baseURL    string
	clientID   string
	secret     string
}

// NewClient builds a Client for the configured environment. When
// cfg.PlaidEndpointURL is set it overrides the environment base URL, mirroring
// the LocalStack override on the DynamoDB side.
func NewClient(cfg *config.Config) *Client {
	baseURL := cfg.PlaidEndpointURL
	if baseURL == "" {
		baseURL = environments[cfg.PlaidEnv]
		if baseURL == "" {
			baseURL = environments["sandbox"]
		}
	}
	return &Client{
		httpClient: http.DefaultClient,
		baseURL:    baseURL,
		clientID:   cfg.PlaidClientID,
		secret:     cfg.PlaidSecret,
	}
}

// CreateIdentityVerification opens a new verification session.
func (c *Client) CreateIdentityVerification(ctx context.Context, req *domain.CreateIDVRequest) (*domain.IdentityVerification, error) {
	var out domain.IdentityVerification
	if err := c.post(ctx, "/identity_verification/create", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetIdentityVerification fetches the full record for one session.
func (c *Client) GetIdentityVerification(ctx context.Context, sessionID string) (*domain.IdentityVerification, error) {
	body := struct {
		IdentityVerificationID string `json:"identity_verification_id"`
	}{IdentityVerificationID: sessionID}
	var out domain.IdentityVerification
	if err := c.post(ctx, "/identity_verification/get", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListIdentityVerifications returns all sessions for a user under the given
// template. The API paginates with a cursor; the sample reads only the first
// page, which is plenty for a handful of test attempts.
func (c *Client) ListIdentityVerifications(ctx context.Context, clientUserID, templateID string) ([]domain.IdentityVerification, error) {
	body := struct {
		ClientUserID string `json:"client_user_id"`
		TemplateID   string `json:"template_id"`
	}{ClientUserID: clientUserID, TemplateID: templateID}
	var out struct {
		IdentityVerifications []domain.IdentityVerification `json:"identity_verifications"`
	}
	if err := c.post(ctx, "/identity_verification/list", body, &out); err != nil {
		return nil, err
	}
	return out.IdentityVerifications, nil
}

// CreateLinkToken obtains a widget initialization token for an
// identity-verification Link flow.
func (c *Client) CreateLinkToken(ctx context.Context, req *domain.LinkTokenRequest) (*domain.LinkToken, error) {
	var out domain.LinkToken
	if err := c.post(ctx, "/link/token/create", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// post sends a JSON request with the Plaid auth headers and decodes either
// the success body into out or an error body into a domain.ExternalError.
func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("PLAID-CLIENT-ID", c.clientID)
	req.Header.Set("PLAID-SECRET", c.secret)
	req.Header.Set("Plaid-Version", apiVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: read response: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		extErr := &domain.ExternalError{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(data, extErr); err != nil || extErr.ErrorCode == "" {
			extErr.ErrorCode = "OTHER_ERROR"
			extErr.ErrorMessage = fmt.Sprintf("%s returned status %d", path, resp.StatusCode)
		}
		return extErr
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", path, err)
	}
	return nil
}
