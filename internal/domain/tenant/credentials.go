// Package tenant holds the per-request credential model.
//
// The server is stateless and multi-tenant: every inbound tool call carries
// its own StratusPay access token in transport metadata, and a fresh upstream
// client is built from it for the lifetime of that one request. No process-wide
// state ever holds a bearer token.
package tenant

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Header names recognized at the HTTP transport boundary.
const (
	// AccessTokenHeader carries the tenant's StratusPay API bearer token. Required.
	AccessTokenHeader = "X-StratusPay-Access-Token"
	// APIVersionHeader optionally overrides the upstream API version for this request.
	APIVersionHeader = "X-StratusPay-API-Version"
)

// Environment variables used by the stdio transport, where no per-request
// headers exist and the process serves a single tenant.
const (
	AccessTokenEnv = "STRATUSPAY_ACCESS_TOKEN"
	APIVersionEnv  = "STRATUSPAY_API_VERSION"
)

// Credentials scopes exactly one upstream client for the lifetime of one
// inbound request. It is never persisted and never shared across requests.
type Credentials struct {
	// AccessToken is the tenant's StratusPay API bearer token.
	AccessToken string
	// APIVersion optionally overrides the server's default API version header.
	APIVersion string
}

// MissingCredentialsError indicates the access token was absent or empty.
// It is raised before any downstream component runs and must surface as a
// transport-level rejection, not as a tool error result.
type MissingCredentialsError struct {
	// Source names where the token was looked for (header or env var).
	Source string
}

// Error returns a human-readable description of the missing credentials.
func (e *MissingCredentialsError) Error() string {
	return fmt.Sprintf("missing StratusPay access token: %s is required", e.Source)
}

// FromHeader extracts credentials from inbound HTTP request headers.
// Returns a *MissingCredentialsError if the access token header is absent or blank.
func FromHeader(h http.Header) (Credentials, error) {
	token := strings.TrimSpace(h.Get(AccessTokenHeader))
	if token == "" {
		return Credentials{}, &MissingCredentialsError{Source: AccessTokenHeader + " header"}
	}
	return Credentials{
		AccessToken: token,
		APIVersion:  strings.TrimSpace(h.Get(APIVersionHeader)),
	}, nil
}

// FromEnv extracts credentials from the process environment (stdio mode).
// Returns a *MissingCredentialsError if the token env var is absent or blank.
func FromEnv() (Credentials, error) {
	token := strings.TrimSpace(os.Getenv(AccessTokenEnv))
	if token == "" {
		return Credentials{}, &MissingCredentialsError{Source: AccessTokenEnv + " environment variable"}
	}
	return Credentials{
		AccessToken: token,
		APIVersion:  strings.TrimSpace(os.Getenv(APIVersionEnv)),
	}, nil
}

// Fingerprint returns a short non-reversible identifier for the tenant,
// suitable for log fields and metric labels. The raw token must never be
// logged; the fingerprint is an xxhash so different tenants get distinct,
// stable labels.
func (c Credentials) Fingerprint() string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(c.AccessToken))
}

// credentialsKey is the context key type for per-request credentials.
type credentialsKey struct{}

// NewContext returns a context carrying the given credentials.
func NewContext(ctx context.Context, creds Credentials) context.Context {
	return context.WithValue(ctx, credentialsKey{}, creds)
}

// FromContext retrieves credentials previously stored with NewContext.
// The second return value reports whether credentials were present.
func FromContext(ctx context.Context) (Credentials, bool) {
	creds, ok := ctx.Value(credentialsKey{}).(Credentials)
	return creds, ok
}
