// Package types contains the wire and domain types exchanged with the
// MotorPress backend: GraphQL and REST result envelopes, articles and their
// relations, profiles, and the OAuth/session artifacts produced during
// sign-in.
package types

import "encoding/json"

// GraphQLError is a single entry of a GraphQL error array, carried verbatim
// from the backend response.
type GraphQLError struct {
	Message    string         `json:"message"`
	Path       []any          `json:"path,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

// GraphQLResult is the discriminated result of a GraphQL fetch. Exactly one
// of Data and Errors is populated: on success Data holds the (already
// CDN-transformed) payload and Errors is nil; on any failure Data is nil and
// Errors holds at least one entry.
type GraphQLResult struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors,omitempty"`
}

// Failed reports whether the result carries errors instead of data.
func (r *GraphQLResult) Failed() bool {
	return len(r.Errors) > 0
}

// RESTResult is the result of a REST fetch. Error is the empty string on
// success; Data may be nil even on success (e.g. a 204 No Content response).
type RESTResult struct {
	Data  json.RawMessage
	Error string
}

// Failed reports whether the REST call ended in an error.
func (r *RESTResult) Failed() bool {
	return r.Error != ""
}

// ArticleImage is one element of an article's image gallery. URL is a fully
// qualified asset URL once the response has passed the transform stage.
type ArticleImage struct {
	ID      string `json:"id,omitempty"`
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

// Engine is the powertrain relation attached to an article.
type Engine struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Article is a single content entry. Image fields hold fully qualified URLs;
// timestamps are ISO 8601 strings as delivered by the backend.
type Article struct {
	ID              string         `json:"id"`
	Slug            string         `json:"slug"`
	Title           string         `json:"title"`
	Excerpt         string         `json:"excerpt,omitempty"`
	Body            string         `json:"body,omitempty"`
	MainImage       string         `json:"mainImage,omitempty"`
	CoverImage      string         `json:"coverImage,omitempty"`
	BackgroundImage string         `json:"backgroundImage,omitempty"`
	Images          []ArticleImage `json:"images,omitempty"`
	PublishedAt     string         `json:"publishedAt,omitempty"`
	UpdatedAt       string         `json:"updatedAt,omitempty"`
	Tags            []string       `json:"tags,omitempty"`
	Author          *Profile       `json:"author,omitempty"`
	Engine          *Engine        `json:"engine,omitempty"`
	FavoritesCount  int            `json:"favoritesCount,omitempty"`
	Favorited       bool           `json:"favorited,omitempty"`
}

// Profile is a public author/user profile.
type Profile struct {
	Username  string `json:"username"`
	Bio       string `json:"bio,omitempty"`
	Image     string `json:"image,omitempty"`
	Following bool   `json:"following,omitempty"`
}

// User is the authenticated account as reported by the backend.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
	Bio      string `json:"bio,omitempty"`
	Image    string `json:"image,omitempty"`
}

// LoginResponse is the backend's own credential pair, obtained by exchanging
// an identity-provider token. It supersedes the OAuthSession for subsequent
// authenticated calls. The wrapper never stores it; ownership transfers to
// the caller on return.
type LoginResponse struct {
	User         *User  `json:"user"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// SessionUser is the identity attached to a provider session.
type SessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
}

// OAuthSession is the ad-hoc session an identity provider establishes after
// a redirect sign-in. Its lifetime is one sign-in call; the wrapper never
// persists it.
type OAuthSession struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token,omitempty"`
	ExpiresAt    int64       `json:"expires_at,omitempty"`
	User         SessionUser `json:"user"`
}

// NativeAuthResult is the token pair produced by a native authorization
// flow. IDToken is only present for OpenID Connect providers.
type NativeAuthResult struct {
	AccessToken string
	IDToken     string
}

// NativeOAuthConfig carries the per-provider client identifiers and the
// redirect URI used by the native sign-in flow. It is constructed fresh per
// sign-in attempt and never cached by the wrapper.
type NativeOAuthConfig struct {
	// ClientIDs maps provider name to that provider's OAuth client ID.
	ClientIDs map[string]string
	// RedirectURI is the app-scheme redirect shared by all providers.
	RedirectURI string
	// Scopes optionally overrides the provider's default scope list.
	Scopes []string
}

// ArticlesRequest parametrizes a paged article listing. Zero values are
// omitted from the query variables, letting the backend apply its defaults.
type ArticlesRequest struct {
	Limit  int
	Offset int
	// Tag and Author filter the listing. They are always sent as GraphQL
	// variables, never spliced into the query text.
	Tag    string
	Author string
	// Preset selects a named field preset; Fields, when non-empty, takes
	// precedence over Preset entirely.
	Preset string
	Fields []string
}
