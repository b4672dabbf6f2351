package truegate

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
)

// TokenClaims is the decoded payload of a portal session token. The codec
// never verifies signatures; the token is an opaque credential minted by
// the server and the client only reads the embedded identity out of it.
type TokenClaims struct {
	jwt.RegisteredClaims
	Email         string   `json:"email,omitempty"`
	FirstName     string   `json:"firstName,omitempty"`
	LastName      string   `json:"lastName,omitempty"`
	Name          string   `json:"name,omitempty"`
	BirthDate     string   `json:"birthDate,omitempty"`
	Gender        string   `json:"gender,omitempty"`
	UserRole      string   `json:"role,omitempty"`
	ContactNumber string   `json:"contactNumber,omitempty"`
	AllowedIPs    []string `json:"allowedIps,omitempty"`
	Verified      *bool    `json:"verified,omitempty"`
}

// DecodeToken parses the claims segment of a dot-delimited bearer token
// without contacting the network. Any structural failure (missing
// segments, bad base64url, bad JSON) comes back as a decode error; it
// never panics past the caller.
func DecodeToken(token string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryAuth, "unable to decode session token").
			WithTextCode(textCodeTokenDecode)
	}
	return claims, nil
}

// LiveAt reports whether the claims are usable at the given instant. A
// missing expiry fails closed: the token counts as already expired.
func (c *TokenClaims) LiveAt(now time.Time) bool {
	if c == nil || c.RegisteredClaims.ExpiresAt == nil {
		return false
	}
	return c.RegisteredClaims.ExpiresAt.Time.After(now)
}

// Live is LiveAt against the wall clock.
func (c *TokenClaims) Live() bool {
	return c.LiveAt(time.Now())
}

// UserID returns the subject identifier.
func (c *TokenClaims) UserID() string {
	return c.RegisteredClaims.Subject
}

// GivenName returns the first-name claim, falling back to the first word
// of the combined display name.
func (c *TokenClaims) GivenName() string {
	if c.FirstName != "" {
		return c.FirstName
	}
	return nameSegment(c.Name, 0)
}

// FamilyName returns the last-name claim, falling back to the second word
// of the combined display name.
func (c *TokenClaims) FamilyName() string {
	if c.LastName != "" {
		return c.LastName
	}
	return nameSegment(c.Name, 1)
}

// Role returns the role claim, defaulting to the regular user role.
func (c *TokenClaims) Role() UserRole {
	if role, ok := ParseRole(c.UserRole); ok {
		return role
	}
	return RoleUser
}

// IsVerified defaults to true when the claim is absent. The portal server
// omits the flag for legacy tokens, so absence is treated permissively.
func (c *TokenClaims) IsVerified() bool {
	return c.Verified == nil || *c.Verified
}

func nameSegment(name string, idx int) string {
	parts := strings.Fields(name)
	if idx < len(parts) {
		return parts[idx]
	}
	return ""
}
