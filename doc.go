// Package motorpress provides a typed Go client for the MotorPress content
// platform, covering its GraphQL content API, its REST mutation endpoints
// and its OAuth/session exchange.
//
// # Overview
//
// The wrapper runs identically in server processes, CLIs and mobile
// runtimes. It turns typed requests into HTTP calls with a consistent
// caching and auth policy, builds GraphQL selection sets from field presets,
// rewrites bare asset filenames into fully qualified CDN URLs throughout a
// response, and bridges third-party identity providers and the backend's own
// token issuance.
//
// # Features
//
//   - GraphQL and REST fetchers with uniform, never-panicking result shapes
//   - Field presets (minimal/standard/full) and explicit field selection
//   - Deep, idempotent asset-URL rewriting of nested responses
//   - Web and native OAuth sign-in with backend token exchange and refresh
//   - Client-side rate limiting and structured logging via slog
//
// # Quick Start
//
//	client, err := motorpress.NewClient(&motorpress.Config{})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	articles, err := client.GetArticles(ctx, &types.ArticlesRequest{
//		Limit:  10,
//		Preset: string(query.PresetMinimal),
//	})
//
// # Authentication
//
// Anonymous clients may read content; responses are then cacheable for a
// bounded window. Passing Config.AuthToken attaches a bearer token to every
// request and disables caching entirely. The token is obtained out of band,
// typically from a prior OAuth sign-in:
//
//	login, err := client.Auth().HandleCallback(ctx)
//	if err != nil {
//		log.Fatal(err) // configuration problem
//	}
//	if login == nil {
//		// expected runtime failure: no session, or the exchange failed
//		return
//	}
//	authed, err := motorpress.NewClient(&motorpress.Config{AuthToken: login.Token})
//
// The wrapper never persists tokens; storage is the caller's concern, and a
// new token means a new client.
//
// # Error Handling
//
// Configuration mistakes surface as *errors.ConfigError synchronously.
// Transport, protocol and network failures never escape the transport layer
// as panics or raw errors; they are folded into the typed result of each
// call. Expected absences ("not found", "not authenticated", "refresh
// failed") are nil results, not errors.
package motorpress
