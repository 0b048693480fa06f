// Package motorpress provides a typed Go client for the MotorPress content
// platform. It wraps the backend's GraphQL endpoint and its small set of
// REST endpoints behind repository-style methods for articles, search,
// favorites, profiles and OAuth sign-in.
//
// Basic usage:
//
//	client, err := motorpress.NewClient(&motorpress.Config{
//		AuthToken: token, // optional; omit for anonymous reads
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	articles, err := client.GetArticles(ctx, &types.ArticlesRequest{Limit: 10})
//	if err != nil {
//		log.Fatal(err)
//	}
package motorpress

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/motorpress/go-motorpress-api-wrapper/internal"
	"github.com/motorpress/go-motorpress-api-wrapper/pkg/types"
)

const (
	// DefaultAPIBaseURL is the production MotorPress API origin.
	DefaultAPIBaseURL = "https://api.motorpress.io"
	// DefaultCDNBaseURL is the asset CDN bare filenames are qualified against.
	DefaultCDNBaseURL = "https://cdn.motorpress.io"
	// DefaultCacheSeconds is the cache window advertised for anonymous GraphQL reads.
	DefaultCacheSeconds = 300
	// DefaultUserAgent is the default user agent string.
	DefaultUserAgent = "go-motorpress-api-wrapper/0.1"
	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 30 * time.Second
)

// Config holds the configuration for the MotorPress client. Every field is
// optional; zero values resolve to the defaults above. The resolved
// configuration is immutable for the lifetime of the client: changing auth
// means constructing a new client, never mutating an existing one.
type Config struct {
	// APIBaseURL is the backend origin. GraphQL posts to
	// APIBaseURL + "/api/graphql"; REST paths are resolved against it.
	APIBaseURL string

	// CDNBaseURL is prefixed onto bare asset filenames by the response
	// transform stage.
	CDNBaseURL string

	// AuthToken is the backend-issued bearer token. When set, it is attached
	// to every request and response caching is disabled entirely, since
	// authenticated responses are user-specific.
	AuthToken string

	// CacheSeconds is the default cache window for anonymous GraphQL reads.
	// Defaults to DefaultCacheSeconds if zero; individual calls may override
	// or disable it.
	CacheSeconds int

	// IdentityProviderURL and IdentityProviderKey are the coordinates of the
	// third-party identity provider. OAuth features are enabled iff both are
	// present.
	IdentityProviderURL string
	IdentityProviderKey string

	// NewIdentityProvider constructs the identity-provider client from the
	// coordinates above. It is invoked lazily, at most once per client, the
	// first time a sign-in method needs it. Leaving it nil models the
	// provider SDK being unavailable: sign-in methods then fail with a
	// ConfigError instead of crashing at startup.
	NewIdentityProvider IdentityProviderFactory

	// NativeAuthorizer renders the native (mobile) authorization flow.
	// Required only by SignInWithProviderNative.
	NativeAuthorizer NativeAuthorizer

	// HTTPClient to use for requests.
	// Defaults to a client with DefaultTimeout if not specified.
	HTTPClient *http.Client

	// UserAgent identifies the application to the backend.
	UserAgent string

	// RequestsPerMinute and RateLimitBurst tune the client-side rate
	// limiter. Zero values use the transport defaults.
	RequestsPerMinute float64
	RateLimitBurst    int

	// Logger for structured diagnostics.
	// Optional. If provided, transport and auth failures are logged through
	// it; if nil, diagnostics are dropped.
	Logger *slog.Logger
}

// resolve merges the supplied overrides over the defaults, field by field,
// returning a new value. It performs no URL validation and has no side
// effects; the same overrides always yield the same result.
func resolve(overrides *Config) Config {
	cfg := Config{}
	if overrides != nil {
		cfg = *overrides
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = DefaultAPIBaseURL
	}
	if cfg.CDNBaseURL == "" {
		cfg.CDNBaseURL = DefaultCDNBaseURL
	}
	if cfg.CacheSeconds == 0 {
		cfg.CacheSeconds = DefaultCacheSeconds
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: DefaultTimeout}
	}
	return cfg
}

// GraphQLOptions carries the per-call knobs of a GraphQL fetch.
type GraphQLOptions struct {
	// OperationName names the operation inside a multi-operation document.
	OperationName string
	// CacheSeconds overrides the configured default cache window. A value of
	// zero explicitly disables storage. Nil means "use the default".
	CacheSeconds *int
	// NoCache forces a no-store directive regardless of any cache window.
	NoCache bool
}

// Client is the main MotorPress API client. All repository methods are safe
// for concurrent use: the resolved configuration is read-only after
// construction and the transport holds no per-call state.
type Client struct {
	transport *internal.Client
	config    Config
	auth      *AuthService
}

// NewClient creates a new MotorPress client from the provided configuration.
// A nil config resolves to all defaults (anonymous access against the
// production backend). The configuration value is copied; later mutation of
// the caller's struct has no effect on the client.
func NewClient(config *Config) (*Client, error) {
	cfg := resolve(config)

	transport, err := internal.NewClient(
		cfg.HTTPClient,
		cfg.APIBaseURL,
		cfg.CDNBaseURL,
		cfg.AuthToken,
		cfg.UserAgent,
		cfg.CacheSeconds,
		&internal.RateLimitConfig{
			RequestsPerMinute: cfg.RequestsPerMinute,
			Burst:             cfg.RateLimitBurst,
		},
		cfg.Logger,
	)
	if err != nil {
		return nil, err
	}

	c := &Client{
		transport: transport,
		config:    cfg,
	}
	c.auth = newAuthService(c)
	return c, nil
}

// Auth returns the OAuth/session repository bound to this client.
func (c *Client) Auth() *AuthService {
	return c.auth
}

// GraphQL issues a raw GraphQL operation through the transport layer. Domain
// repositories are thin callers of this method; it is exported so external
// repositories can compose the same transport and caching policy.
//
// The returned result is never nil and never the product of a panic or an
// escaped transport error; see types.GraphQLResult for the discrimination
// contract.
func (c *Client) GraphQL(ctx context.Context, query string, variables map[string]any, opts *GraphQLOptions) *types.GraphQLResult {
	var internalOpts *internal.GraphQLOptions
	if opts != nil {
		internalOpts = &internal.GraphQLOptions{
			OperationName: opts.OperationName,
			CacheSeconds:  opts.CacheSeconds,
			NoCache:       opts.NoCache,
		}
	}
	return c.transport.GraphQL(ctx, query, variables, internalOpts)
}

// Rest issues a raw REST call through the transport layer. Caching is never
// attempted for REST calls; see types.RESTResult for the result contract.
func (c *Client) Rest(ctx context.Context, method, path string, body any) *types.RESTResult {
	return c.transport.Rest(ctx, method, path, body)
}

func (c *Client) logWarn(msg string, args ...any) {
	if c.config.Logger != nil {
		c.config.Logger.Warn(msg, args...)
	}
}

func (c *Client) logDebug(msg string, args ...any) {
	if c.config.Logger != nil {
		c.config.Logger.Debug(msg, args...)
	}
}
