package motorpress

import (
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

// Provider names accepted by the sign-in methods.
const (
	ProviderGoogle   = "google"
	ProviderDiscord  = "discord"
	ProviderGitHub   = "github"
	ProviderFacebook = "facebook"
)

// providerProfile describes one native provider. Google is OpenID
// Connect-style and carries an issuer; the others authenticate with plain
// authorization/token endpoint pairs and never produce an ID token.
type providerProfile struct {
	endpoint oauth2.Endpoint
	issuer   string
	scopes   []string
}

var nativeProviders = map[string]providerProfile{
	ProviderGoogle: {
		endpoint: endpoints.Google,
		issuer:   "https://accounts.google.com",
		scopes:   []string{"openid", "email", "profile"},
	},
	ProviderDiscord: {
		// endpoints.Discord exists only in oauth2 >= v0.27.0, which needs
		// Go 1.23+; these are the identical upstream values.
		endpoint: oauth2.Endpoint{
			AuthURL:  "https://discord.com/oauth2/authorize",
			TokenURL: "https://discord.com/api/oauth2/token",
		},
		scopes: []string{"identify", "email"},
	},
	ProviderGitHub: {
		endpoint: endpoints.GitHub,
		scopes:   []string{"read:user", "user:email"},
	},
	ProviderFacebook: {
		endpoint: endpoints.Facebook,
		scopes:   []string{"email", "public_profile"},
	},
}
