package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/motorpress/go-motorpress-api-wrapper/pkg/types"
)

// graphQLPath is the single endpoint every GraphQL operation posts to.
const graphQLPath = "/api/graphql"

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

// graphQLRequest is the wire body of a GraphQL POST.
type graphQLRequest struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables,omitempty"`
	OperationName string         `json:"operationName,omitempty"`
}

// GraphQL posts a query to the backend's GraphQL endpoint and normalizes
// every outcome into a GraphQLResult. The result is never nil and exactly
// one of its channels is populated:
//
//   - a non-success HTTP status yields a single synthetic error embedding
//     the literal fragment "HTTP <status>";
//   - a GraphQL-level error array in a 200 response is surfaced verbatim;
//   - network and decode failures are converted to the same shape, never
//     escaping as errors or panics;
//   - on success, Data has already passed through the asset-URL transform.
//
// Caching is attempted only when no bearer token is configured and NoCache
// is unset. Authenticated responses are user-specific and must never be
// cached; anonymous responses advertise a bounded max-age to reduce backend
// load.
func (c *Client) GraphQL(ctx context.Context, query string, variables map[string]any, opts *GraphQLOptions) *types.GraphQLResult {
	if opts == nil {
		opts = &GraphQLOptions{}
	}

	encoded, err := json.Marshal(&graphQLRequest{
		Query:         query,
		Variables:     variables,
		OperationName: opts.OperationName,
	})
	if err != nil {
		return c.graphQLFailure(opts, fmt.Sprintf("encode request body: %v", err))
	}

	req, err := c.newRequest(ctx, http.MethodPost, graphQLPath, bytes.NewReader(encoded))
	if err != nil {
		return c.graphQLFailure(opts, err.Error())
	}
	req.Header.Set("Cache-Control", c.graphQLCacheControl(opts))

	raw, status, err := c.do(req)
	if err != nil {
		return c.graphQLFailure(opts, err.Error())
	}
	if status < 200 || status >= 300 {
		return c.graphQLFailure(opts, httpStatusMessage(status))
	}

	var envelope types.GraphQLResult
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return c.graphQLFailure(opts, fmt.Sprintf("decode response body: %v", err))
	}
	if envelope.Failed() {
		c.logWarn("graphql operation returned errors",
			"operation", opts.OperationName, "count", len(envelope.Errors))
		return &types.GraphQLResult{Errors: envelope.Errors}
	}

	c.logDebug("graphql operation succeeded", "operation", opts.OperationName)
	return &types.GraphQLResult{Data: TransformAssetURLs(envelope.Data, c.cdnBase)}
}

func (c *Client) graphQLFailure(opts *GraphQLOptions, message string) *types.GraphQLResult {
	c.logWarn("graphql request failed", "operation", opts.OperationName, "error", message)
	return &types.GraphQLResult{Errors: []types.GraphQLError{{Message: message}}}
}

// graphQLCacheControl reproduces the caching decision exactly: caching is
// attempted only for anonymous, cache-permitted calls; the effective window
// is the per-call override when given, else the configured default; a zero
// window, or caching not being attempted at all, forces no-store.
func (c *Client) graphQLCacheControl(opts *GraphQLOptions) string {
	if c.authToken != "" || opts.NoCache {
		return "no-store"
	}
	seconds := c.defaultCacheSeconds
	if opts.CacheSeconds != nil {
		seconds = *opts.CacheSeconds
	}
	if seconds <= 0 {
		return "no-store"
	}
	return fmt.Sprintf("max-age=%d", seconds)
}
