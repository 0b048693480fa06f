// Package validation provides input validators for identifiers sent to the
// MotorPress backend. Repositories call these before issuing a request so
// malformed input fails locally instead of producing a confusing 404.
package validation

import "regexp"

// Regular expressions for validating MotorPress identifier formats
var (
	// slugRegex matches article slugs (lowercase alphanumeric segments joined by hyphens)
	slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

	// usernameRegex matches valid usernames (3-30 chars, alphanumeric + underscore + hyphen)
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,30}$`)

	// providerRegex matches identity-provider names (short lowercase words)
	providerRegex = regexp.MustCompile(`^[a-z][a-z0-9]{1,31}$`)
)

// IsValidSlug checks if a string is a valid article slug
func IsValidSlug(s string) bool {
	return s != "" && slugRegex.MatchString(s)
}

// IsValidUsername checks if a string is a valid username
func IsValidUsername(s string) bool {
	return usernameRegex.MatchString(s)
}

// IsValidProvider checks if a string is a plausible identity-provider name
func IsValidProvider(s string) bool {
	return providerRegex.MatchString(s)
}
