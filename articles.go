package motorpress

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	pkgerrs "github.com/motorpress/go-motorpress-api-wrapper/pkg/errors"
	"github.com/motorpress/go-motorpress-api-wrapper/pkg/query"
	"github.com/motorpress/go-motorpress-api-wrapper/pkg/types"
	"github.com/motorpress/go-motorpress-api-wrapper/pkg/validation"
)

// Every filter value travels as a GraphQL variable. Query text is assembled
// only from the static templates below plus the field-builder output; user
// input is never spliced into it.
const (
	articlesQueryTemplate = `query Articles($limit: Int, $offset: Int, $tag: String, $author: String) {
  articles(limit: $limit, offset: $offset, tag: $tag, author: $author) {
%s  }
}`

	articleQueryTemplate = `query Article($slug: String!) {
  article(slug: $slug) {
%s  }
}`

	searchQueryTemplate = `query SearchArticles($term: String!, $limit: Int) {
  searchArticles(term: $term, limit: $limit) {
%s  }
}`
)

// GetArticles retrieves a page of articles, optionally filtered by tag or
// author. A nil request fetches the first page with the standard field
// preset and the backend's default page size.
func (c *Client) GetArticles(ctx context.Context, request *types.ArticlesRequest) ([]*types.Article, error) {
	if request == nil {
		request = &types.ArticlesRequest{}
	}

	variables := map[string]any{}
	if request.Limit > 0 {
		variables["limit"] = request.Limit
	}
	if request.Offset > 0 {
		variables["offset"] = request.Offset
	}
	if request.Tag != "" {
		variables["tag"] = request.Tag
	}
	if request.Author != "" {
		variables["author"] = request.Author
	}

	q := fmt.Sprintf(articlesQueryTemplate, indent(query.Build(selection(request.Preset, request.Fields)), "    "))

	result := c.GraphQL(ctx, q, variables, &GraphQLOptions{OperationName: "Articles"})
	if result.Failed() {
		return nil, graphQLError("GetArticles", result)
	}

	var envelope struct {
		Articles []*types.Article `json:"articles"`
	}
	if err := json.Unmarshal(result.Data, &envelope); err != nil {
		return nil, &pkgerrs.RequestError{Operation: "GetArticles", Message: "decode articles payload", Err: err}
	}
	return envelope.Articles, nil
}

// GetArticle retrieves a single article by slug with the requested field
// selection (nil means the standard preset). A missing article is an
// expected outcome and returns (nil, nil), not an error.
func (c *Client) GetArticle(ctx context.Context, slug string, sel *query.Request) (*types.Article, error) {
	if !validation.IsValidSlug(slug) {
		return nil, &pkgerrs.ConfigError{Field: "slug", Message: fmt.Sprintf("invalid article slug %q", slug)}
	}

	q := fmt.Sprintf(articleQueryTemplate, indent(query.Build(sel), "    "))
	variables := map[string]any{"slug": slug}

	result := c.GraphQL(ctx, q, variables, &GraphQLOptions{OperationName: "Article"})
	if result.Failed() {
		return nil, graphQLError("GetArticle", result)
	}

	var envelope struct {
		Article *types.Article `json:"article"`
	}
	if err := json.Unmarshal(result.Data, &envelope); err != nil {
		return nil, &pkgerrs.RequestError{Operation: "GetArticle", Message: "decode article payload", Err: err}
	}
	if envelope.Article == nil {
		c.logDebug("article not found", "slug", slug)
		return nil, nil
	}
	return envelope.Article, nil
}

// SearchArticles performs a full-text search. The search term is passed as a
// GraphQL variable, so it may contain any characters.
func (c *Client) SearchArticles(ctx context.Context, term string, limit int) ([]*types.Article, error) {
	if term == "" {
		return nil, &pkgerrs.ConfigError{Field: "term", Message: "search term is required"}
	}

	variables := map[string]any{"term": term}
	if limit > 0 {
		variables["limit"] = limit
	}

	q := fmt.Sprintf(searchQueryTemplate, indent(query.Build(&query.Request{Preset: query.PresetMinimal}), "    "))

	result := c.GraphQL(ctx, q, variables, &GraphQLOptions{OperationName: "SearchArticles"})
	if result.Failed() {
		return nil, graphQLError("SearchArticles", result)
	}

	var envelope struct {
		SearchArticles []*types.Article `json:"searchArticles"`
	}
	if err := json.Unmarshal(result.Data, &envelope); err != nil {
		return nil, &pkgerrs.RequestError{Operation: "SearchArticles", Message: "decode search payload", Err: err}
	}
	return envelope.SearchArticles, nil
}

// FavoriteArticle marks an article as a favorite of the authenticated user
// and returns the updated article.
func (c *Client) FavoriteArticle(ctx context.Context, slug string) (*types.Article, error) {
	return c.setFavorite(ctx, "FavoriteArticle", "POST", slug)
}

// UnfavoriteArticle removes an article from the authenticated user's
// favorites and returns the updated article.
func (c *Client) UnfavoriteArticle(ctx context.Context, slug string) (*types.Article, error) {
	return c.setFavorite(ctx, "UnfavoriteArticle", "DELETE", slug)
}

func (c *Client) setFavorite(ctx context.Context, operation, method, slug string) (*types.Article, error) {
	if !validation.IsValidSlug(slug) {
		return nil, &pkgerrs.ConfigError{Field: "slug", Message: fmt.Sprintf("invalid article slug %q", slug)}
	}

	path := "/api/articles/" + url.PathEscape(slug) + "/favorite"
	result := c.Rest(ctx, method, path, nil)
	if result.Failed() {
		return nil, &pkgerrs.RequestError{Operation: operation, URL: path, Message: result.Error}
	}
	if len(result.Data) == 0 {
		return nil, nil
	}

	var envelope struct {
		Article *types.Article `json:"article"`
	}
	if err := json.Unmarshal(result.Data, &envelope); err != nil {
		return nil, &pkgerrs.RequestError{Operation: operation, Message: "decode article payload", Err: err}
	}
	return envelope.Article, nil
}

// selection assembles a field-builder request from the flat request fields.
func selection(preset string, fields []string) *query.Request {
	return &query.Request{Preset: query.Preset(preset), Fields: fields}
}

// graphQLError folds a failed GraphQL result into a single RequestError.
func graphQLError(operation string, result *types.GraphQLResult) error {
	message := "graphql request failed"
	if len(result.Errors) > 0 {
		message = result.Errors[0].Message
	}
	return &pkgerrs.RequestError{Operation: operation, Message: message}
}

// indent prefixes every non-empty line of a fragment, keeping the generated
// query text readable in logs.
func indent(fragment, prefix string) string {
	if fragment == "" {
		return ""
	}
	var buf bytes.Buffer
	start := 0
	for i := 0; i <= len(fragment); i++ {
		if i == len(fragment) || fragment[i] == '\n' {
			buf.WriteString(prefix)
			buf.WriteString(fragment[start:i])
			buf.WriteByte('\n')
			start = i + 1
		}
	}
	return buf.String()
}
