package oidcidp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/graciegould/snaglet/internal/auth"
	"github.com/graciegould/snaglet/internal/logger"
)

// Client talks to an OIDC identity provider: token verification via
// the issuer's discovery document and signing keys, account lookup and
// claim mutation via the provider's admin REST API authenticated with
// service credentials.
type Client struct {
	verifier     *oidc.IDTokenVerifier
	adminBaseURL string
	httpClient   *http.Client
}

type Config struct {
	IssuerURL string
	ClientID  string // audience expected in bearer tokens

	AdminBaseURL      string // admin REST API root
	AdminClientID     string
	AdminClientSecret string
}

func New(ctx context.Context, cfg Config) (*Client, error) {

	if cfg.IssuerURL == "" || cfg.ClientID == "" || cfg.AdminBaseURL == "" {
		return nil, errors.New("identity provider config missing required fields")
	}
	if cfg.AdminClientID == "" || cfg.AdminClientSecret == "" {
		return nil, errors.New("identity provider admin credentials missing")
	}

	oidcProvider, err := oidc.NewProvider(ctx, cfg.IssuerURL)
	if err != nil {
		return nil, fmt.Errorf("failed to init oidc provider: %w", err)
	}

	verifier := oidcProvider.Verifier(&oidc.Config{
		ClientID: cfg.ClientID,
	})

	adminCreds := &clientcredentials.Config{
		ClientID:     cfg.AdminClientID,
		ClientSecret: cfg.AdminClientSecret,
		TokenURL:     oidcProvider.Endpoint().TokenURL,
	}

	httpClient := adminCreds.Client(ctx)
	httpClient.Timeout = 10 * time.Second

	logger.Info("identity provider ready", map[string]any{
		"issuer": cfg.IssuerURL,
	})

	return &Client{
		verifier:     verifier,
		adminBaseURL: cfg.AdminBaseURL,
		httpClient:   httpClient,
	}, nil
}

// VerifyToken checks the raw bearer token against the provider's
// signing keys and returns the identity it asserts. Verification
// failures map to auth.ErrInvalidCredential; failures reaching the
// provider for keys map to auth.ErrProviderUnavailable.
func (c *Client) VerifyToken(ctx context.Context, rawToken string) (*auth.Identity, error) {

	idToken, err := c.verifier.Verify(ctx, rawToken)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			return nil, fmt.Errorf("%w: %v", auth.ErrProviderUnavailable, err)
		}
		return nil, fmt.Errorf("%w: %v", auth.ErrInvalidCredential, err)
	}

	var claims map[string]any
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("%w: claims parse failed: %v", auth.ErrInvalidCredential, err)
	}

	if idToken.Subject == "" {
		return nil, fmt.Errorf("%w: token missing subject", auth.ErrInvalidCredential)
	}

	email, _ := claims["email"].(string)

	return &auth.Identity{
		SubjectID: idToken.Subject,
		Email:     email,
		Claims:    claims,
	}, nil
}

type accountPayload struct {
	SubjectID string         `json:"subjectId"`
	Email     string         `json:"email"`
	Claims    map[string]any `json:"claims"`
}

// LookupByEmail resolves an email to the account registered under it
// at the provider.
func (c *Client) LookupByEmail(ctx context.Context, email string) (*auth.Identity, error) {

	endpoint := c.adminBaseURL + "/accounts?email=" + url.QueryEscape(email)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", auth.ErrProviderUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", auth.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", auth.ErrTargetNotFound, email)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: account lookup returned %d", auth.ErrProviderUnavailable, resp.StatusCode)
	}

	var account accountPayload
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&account); err != nil {
		return nil, fmt.Errorf("%w: account decode failed: %v", auth.ErrProviderUnavailable, err)
	}

	if account.SubjectID == "" {
		return nil, fmt.Errorf("%w: account response missing subjectId", auth.ErrProviderUnavailable)
	}

	return &auth.Identity{
		SubjectID: account.SubjectID,
		Email:     account.Email,
		Claims:    account.Claims,
	}, nil
}

// SetClaims merges claims into the account's claim set at the
// provider. The provider applies the merge server-side, so repeating
// a grant is a no-op there and this call stays idempotent.
func (c *Client) SetClaims(ctx context.Context, subjectID string, claims map[string]any) error {

	body, err := json.Marshal(map[string]any{"claims": claims})
	if err != nil {
		return fmt.Errorf("%w: claims encode failed: %v", auth.ErrProviderUnavailable, err)
	}

	endpoint := c.adminBaseURL + "/accounts/" + url.PathEscape(subjectID) + "/claims"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", auth.ErrProviderUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", auth.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", auth.ErrTargetNotFound, subjectID)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("%w: claim update returned %d", auth.ErrProviderUnavailable, resp.StatusCode)
	}

	return nil
}
