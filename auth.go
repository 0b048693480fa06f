package motorpress

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	pkgerrs "github.com/motorpress/go-motorpress-api-wrapper/pkg/errors"
	"github.com/motorpress/go-motorpress-api-wrapper/pkg/types"
	"github.com/motorpress/go-motorpress-api-wrapper/pkg/validation"
	"golang.org/x/oauth2"
)

// Exchange endpoints on the MotorPress backend.
const (
	loginSessionPath = "/api/users/login-supabase"
	loginOAuthPath   = "/api/users/login-oauth"
	refreshTokenPath = "/api/users/refresh-token"
	oauthTagGoogle   = "google"
	oauthTagGeneric  = "oauth"
)

// ProviderSignInOptions customizes a web (redirect) sign-in.
type ProviderSignInOptions struct {
	// RedirectTo is the URL the provider sends the browser back to.
	RedirectTo string
	// Scopes optionally overrides the provider's default scope list.
	Scopes []string
	// SkipBrowserRedirect asks the provider client to return the raw
	// authorization URL instead of navigating to it.
	SkipBrowserRedirect bool
}

// IdentityProvider is the capability an identity-provider SDK exposes to the
// web sign-in flow. Implementations wrap the actual SDK; the wrapper never
// loads one itself, so a missing SDK is a recoverable configuration error
// rather than a startup crash.
type IdentityProvider interface {
	// SignIn starts the provider authorization flow for the named provider.
	// When opts.SkipBrowserRedirect is set, it returns the authorization URL
	// instead of performing the redirect.
	SignIn(ctx context.Context, provider string, opts *ProviderSignInOptions) (string, error)

	// Session returns the ad-hoc session established after a redirect
	// callback, or nil when none exists.
	Session(ctx context.Context) (*types.OAuthSession, error)

	// SignOut clears the provider-side session.
	SignOut(ctx context.Context) error
}

// IdentityProviderFactory constructs an IdentityProvider from the configured
// coordinates. The AuthService invokes it lazily, at most once.
type IdentityProviderFactory func(providerURL, providerKey string) (IdentityProvider, error)

// NativeAuthorizeOptions carries the flow parameters the wrapper decides on
// behalf of the authorizer.
type NativeAuthorizeOptions struct {
	// State is the CSRF token for this attempt, freshly generated per call.
	State string
	// Issuer is set for OpenID Connect-style providers; authorizers should
	// then request and return an ID token alongside the access token.
	Issuer string
}

// NativeAuthorizer renders a native (in-app) authorization flow.
// Implementations wrap a platform authorization SDK; leaving the capability
// unset models that SDK being unavailable.
type NativeAuthorizer interface {
	Authorize(ctx context.Context, conf *oauth2.Config, opts *NativeAuthorizeOptions) (*types.NativeAuthResult, error)
}

// AuthService bridges a third-party identity provider and the backend's own
// token issuance. Per sign-in attempt it walks Idle → ProviderRedirectIssued
// → CallbackReceived → BackendTokenExchanged, terminal on success, with any
// error short-circuiting to a failed terminal state.
//
// Failure semantics: configuration problems (OAuth disabled, missing client
// ID or redirect URI, absent SDK) are returned as errors — they are
// programmer errors and fail loudly. Network and backend-exchange failures
// are expected runtime conditions and are reported as nil results with a
// logged diagnostic, so callers treat them exactly like "session expired".
//
// The service never stores tokens: every session or login response it
// produces is handed to the caller, who owns storage and disposal.
type AuthService struct {
	client *Client

	// The identity-provider client is constructed lazily, at most once per
	// service, under providerOnce. Concurrent first calls observe a single
	// construction.
	providerOnce sync.Once
	provider     IdentityProvider
	providerErr  error
}

func newAuthService(client *Client) *AuthService {
	return &AuthService{client: client}
}

// OAuthEnabled reports whether identity-provider features are configured.
// True iff both the provider URL and the provider key are present. Pure
// predicate, no I/O.
func (s *AuthService) OAuthEnabled() bool {
	return s.client.config.IdentityProviderURL != "" && s.client.config.IdentityProviderKey != ""
}

// identityProvider returns the memoized provider client, constructing it on
// first use.
func (s *AuthService) identityProvider() (IdentityProvider, error) {
	s.providerOnce.Do(func() {
		if !s.OAuthEnabled() {
			s.providerErr = &pkgerrs.ConfigError{
				Message: "OAuth is not enabled: identity provider URL and key are required",
			}
			return
		}
		factory := s.client.config.NewIdentityProvider
		if factory == nil {
			s.providerErr = &pkgerrs.ConfigError{
				Field:   "NewIdentityProvider",
				Message: "identity provider SDK is not available",
			}
			return
		}
		s.provider, s.providerErr = factory(
			s.client.config.IdentityProviderURL,
			s.client.config.IdentityProviderKey,
		)
	})
	return s.provider, s.providerErr
}

// SignInWithProvider initiates a web sign-in with the named provider. On the
// default path the provider client performs the browser redirect and the
// returned URL is empty; when opts.SkipBrowserRedirect is set the raw
// authorization URL is returned instead.
func (s *AuthService) SignInWithProvider(ctx context.Context, provider string, opts *ProviderSignInOptions) (string, error) {
	if !validation.IsValidProvider(provider) {
		return "", &pkgerrs.ConfigError{Field: "provider", Message: fmt.Sprintf("invalid provider name %q", provider)}
	}

	p, err := s.identityProvider()
	if err != nil {
		return "", err
	}
	if opts == nil {
		opts = &ProviderSignInOptions{}
	}

	redirectURL, err := p.SignIn(ctx, provider, opts)
	if err != nil {
		return "", &pkgerrs.AuthError{Provider: provider, Message: "provider sign-in failed", Err: err}
	}
	return redirectURL, nil
}

// HandleCallback completes a web sign-in after the provider redirected back.
// It reads the session the provider SDK established and exchanges its access
// token for the backend's own credentials.
//
// An absent session and a failed exchange are both expected runtime
// conditions: HandleCallback reports them as (nil, nil) with a logged
// diagnostic. Only configuration problems return an error.
func (s *AuthService) HandleCallback(ctx context.Context) (*types.LoginResponse, error) {
	p, err := s.identityProvider()
	if err != nil {
		return nil, err
	}

	session, err := p.Session(ctx)
	if err != nil {
		s.client.logWarn("reading provider session failed", "error", err)
		return nil, nil
	}
	if session == nil || session.AccessToken == "" {
		s.client.logWarn("oauth callback without an established session")
		return nil, nil
	}

	return s.exchangeSession(ctx, session.AccessToken), nil
}

// exchangeSession trades a provider session token for backend credentials.
func (s *AuthService) exchangeSession(ctx context.Context, accessToken string) *types.LoginResponse {
	result := s.client.Rest(ctx, "POST", loginSessionPath, map[string]string{
		"accessToken": accessToken,
	})
	return s.decodeLogin("session exchange", result)
}

// SignInWithProviderNative runs the native (mobile) sign-in for the named
// provider: it validates the per-provider client ID and the redirect URI,
// selects the provider's endpoints, invokes the native authorization flow
// and exchanges the resulting token with the backend.
//
// Validation failures return a ConfigError naming the missing field; a
// failed authorization or exchange returns (nil, nil) with a logged
// diagnostic.
func (s *AuthService) SignInWithProviderNative(ctx context.Context, provider string, nativeConfig *types.NativeOAuthConfig) (*types.LoginResponse, error) {
	profile, ok := nativeProviders[provider]
	if !ok {
		return nil, &pkgerrs.ConfigError{Field: "provider", Message: fmt.Sprintf("unsupported provider %q", provider)}
	}
	if nativeConfig == nil {
		return nil, &pkgerrs.ConfigError{Field: "nativeConfig", Message: "native OAuth config is required"}
	}
	clientID := nativeConfig.ClientIDs[provider]
	if clientID == "" {
		return nil, &pkgerrs.ConfigError{
			Field:   "clientId",
			Message: fmt.Sprintf("missing OAuth client ID for provider %q", provider),
		}
	}
	if nativeConfig.RedirectURI == "" {
		return nil, &pkgerrs.ConfigError{
			Field:   "redirectUri",
			Message: fmt.Sprintf("missing redirect URI for provider %q", provider),
		}
	}
	authorizer := s.client.config.NativeAuthorizer
	if authorizer == nil {
		return nil, &pkgerrs.ConfigError{
			Field:   "NativeAuthorizer",
			Message: "native authorization SDK is not available",
		}
	}

	scopes := nativeConfig.Scopes
	if len(scopes) == 0 {
		scopes = profile.scopes
	}
	conf := &oauth2.Config{
		ClientID:    clientID,
		RedirectURL: nativeConfig.RedirectURI,
		Scopes:      scopes,
		Endpoint:    profile.endpoint,
	}

	result, err := authorizer.Authorize(ctx, conf, &NativeAuthorizeOptions{
		State:  uuid.NewString(),
		Issuer: profile.issuer,
	})
	if err != nil {
		s.client.logWarn("native authorization failed", "provider", provider, "error", err)
		return nil, nil
	}

	return s.ExchangeOAuthToken(ctx, result), nil
}

// ExchangeOAuthToken trades a native authorization result for backend
// credentials. An ID token is preferred over a plain access token when both
// are present, because only the ID token carries verifiable identity claims;
// the exchange is then tagged "google", otherwise with the generic "oauth"
// tag. When no usable token exists the method returns nil without any
// network call.
func (s *AuthService) ExchangeOAuthToken(ctx context.Context, result *types.NativeAuthResult) *types.LoginResponse {
	if result == nil {
		return nil
	}

	token, tag := result.AccessToken, oauthTagGeneric
	if result.IDToken != "" {
		token, tag = result.IDToken, oauthTagGoogle
	}
	if token == "" {
		s.client.logDebug("oauth exchange skipped: no usable token")
		return nil
	}

	restResult := s.client.Rest(ctx, "POST", loginOAuthPath, map[string]string{
		"token":    token,
		"provider": tag,
	})
	return s.decodeLogin("oauth token exchange", restResult)
}

// RefreshToken renews a backend credential pair from a refresh token. Any
// failure returns nil rather than an error, so callers treat a failed
// refresh identically to "session expired".
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) *types.LoginResponse {
	if refreshToken == "" {
		return nil
	}

	result := s.client.Rest(ctx, "POST", refreshTokenPath, map[string]string{
		"refreshToken": refreshToken,
	})
	return s.decodeLogin("token refresh", result)
}

// SignOut clears the identity-provider session, best effort. It neither
// clears nor knows about backend tokens; those belong to the caller. Calling
// SignOut on a client without OAuth configured is a no-op.
func (s *AuthService) SignOut(ctx context.Context) error {
	if !s.OAuthEnabled() {
		return nil
	}
	p, err := s.identityProvider()
	if err != nil {
		return err
	}
	return p.SignOut(ctx)
}

// decodeLogin folds a REST exchange result into a login response, reporting
// every failure as nil with a diagnostic.
func (s *AuthService) decodeLogin(operation string, result *types.RESTResult) *types.LoginResponse {
	if result.Failed() {
		s.client.logWarn(operation+" failed", "error", result.Error)
		return nil
	}
	if len(result.Data) == 0 {
		s.client.logWarn(operation + " returned an empty response")
		return nil
	}

	var login types.LoginResponse
	if err := json.Unmarshal(result.Data, &login); err != nil {
		s.client.logWarn(operation+" returned an undecodable response", "error", err)
		return nil
	}
	if login.Token == "" {
		s.client.logWarn(operation + " response carries no token")
		return nil
	}
	return &login
}
