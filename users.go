package motorpress

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	pkgerrs "github.com/motorpress/go-motorpress-api-wrapper/pkg/errors"
	"github.com/motorpress/go-motorpress-api-wrapper/pkg/types"
	"github.com/motorpress/go-motorpress-api-wrapper/pkg/validation"
)

// GetCurrentUser returns the account behind the configured bearer token.
// An unauthenticated client is an expected condition and yields (nil, nil);
// transport failures are returned as errors.
func (c *Client) GetCurrentUser(ctx context.Context) (*types.User, error) {
	result := c.Rest(ctx, "GET", "/api/user", nil)
	if result.Failed() {
		if !c.transport.Authenticated() {
			c.logDebug("current user requested without a token")
			return nil, nil
		}
		return nil, &pkgerrs.RequestError{Operation: "GetCurrentUser", URL: "/api/user", Message: result.Error}
	}

	var envelope struct {
		User *types.User `json:"user"`
	}
	if err := json.Unmarshal(result.Data, &envelope); err != nil {
		return nil, &pkgerrs.RequestError{Operation: "GetCurrentUser", Message: "decode user payload", Err: err}
	}
	return envelope.User, nil
}

// GetProfile retrieves a public profile by username. A missing profile is an
// expected outcome and returns (nil, nil).
func (c *Client) GetProfile(ctx context.Context, username string) (*types.Profile, error) {
	if !validation.IsValidUsername(username) {
		return nil, &pkgerrs.ConfigError{Field: "username", Message: fmt.Sprintf("invalid username %q", username)}
	}

	path := "/api/profiles/" + url.PathEscape(username)
	result := c.Rest(ctx, "GET", path, nil)
	if result.Failed() {
		return nil, &pkgerrs.RequestError{Operation: "GetProfile", URL: path, Message: result.Error}
	}
	if len(result.Data) == 0 {
		return nil, nil
	}

	var envelope struct {
		Profile *types.Profile `json:"profile"`
	}
	if err := json.Unmarshal(result.Data, &envelope); err != nil {
		return nil, &pkgerrs.RequestError{Operation: "GetProfile", Message: "decode profile payload", Err: err}
	}
	return envelope.Profile, nil
}

// FollowProfile follows a profile on behalf of the authenticated user and
// returns the updated profile.
func (c *Client) FollowProfile(ctx context.Context, username string) (*types.Profile, error) {
	return c.setFollowing(ctx, "FollowProfile", "POST", username)
}

// UnfollowProfile removes a follow and returns the updated profile.
func (c *Client) UnfollowProfile(ctx context.Context, username string) (*types.Profile, error) {
	return c.setFollowing(ctx, "UnfollowProfile", "DELETE", username)
}

func (c *Client) setFollowing(ctx context.Context, operation, method, username string) (*types.Profile, error) {
	if !validation.IsValidUsername(username) {
		return nil, &pkgerrs.ConfigError{Field: "username", Message: fmt.Sprintf("invalid username %q", username)}
	}

	path := "/api/profiles/" + url.PathEscape(username) + "/follow"
	result := c.Rest(ctx, method, path, nil)
	if result.Failed() {
		return nil, &pkgerrs.RequestError{Operation: operation, URL: path, Message: result.Error}
	}
	if len(result.Data) == 0 {
		return nil, nil
	}

	var envelope struct {
		Profile *types.Profile `json:"profile"`
	}
	if err := json.Unmarshal(result.Data, &envelope); err != nil {
		return nil, &pkgerrs.RequestError{Operation: operation, Message: "decode profile payload", Err: err}
	}
	return envelope.Profile, nil
}
