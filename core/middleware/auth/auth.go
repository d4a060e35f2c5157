package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"member-api/core/apperror"
	"member-api/core/authz"
	"member-api/core/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// LocalsKey is the fiber Locals key holding the request identity.
const LocalsKey = "identity"

// GrantClientCredentials is the gty claim value of machine tokens.
const GrantClientCredentials = "client-credentials"

// Config holds configuration for the auth middleware.
type Config struct {
	// Secret is the HMAC secret tokens are signed with.
	Secret string
}

// Claims are the JWT claims understood by the API.
type Claims struct {
	Handle    string   `json:"handle,omitempty"`
	Roles     []string `json:"roles,omitempty"`
	Scope     string   `json:"scope,omitempty"`
	GrantType string   `json:"gty,omitempty"`
	jwt.RegisteredClaims
}

// Identity converts validated claims to an authz identity.
func (c *Claims) Identity() *authz.Identity {
	return &authz.Identity{
		UserID:    c.Subject,
		Handle:    c.Handle,
		Roles:     c.Roles,
		Scopes:    utils.ToStringSlice(c.Scope),
		IsMachine: c.GrantType == GrantClientCredentials,
	}
}

// New creates a middleware that decodes an optional bearer token.
// Requests without an Authorization header continue anonymously; a header
// carrying an invalid token is rejected with 401.
func New(cfg Config) fiber.Handler {
	secret := []byte(cfg.Secret)

	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return c.Next()
		}

		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(token) == "" {
			return apperror.Respond(c, apperror.Unauthorized("Invalid authorization header format"))
		}

		claims, err := Validate(secret, strings.TrimSpace(token))
		if err != nil {
			return apperror.Respond(c, apperror.Unauthorized("Invalid token"))
		}

		c.Locals(LocalsKey, claims.Identity())
		return c.Next()
	}
}

// Validate parses an HS256 token and returns its claims.
func Validate(secret []byte, tokenString string) (*Claims, error) {
	if len(secret) == 0 {
		return nil, errors.New("no signing secret configured")
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" && claims.Handle == "" {
		return nil, errors.New("missing sub in token")
	}
	return claims, nil
}

// Issue signs claims with an expiry of ttl from now.
func Issue(secret string, claims Claims, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("no signing secret configured")
	}
	now := time.Now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.NotBefore = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// FromCtx returns the request identity, or nil for anonymous requests.
func FromCtx(c *fiber.Ctx) *authz.Identity {
	identity, _ := c.Locals(LocalsKey).(*authz.Identity)
	return identity
}

// RequireIdentity rejects anonymous requests.
func RequireIdentity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if FromCtx(c) == nil {
			return apperror.Respond(c, apperror.Unauthorized("Authentication required"))
		}
		return c.Next()
	}
}

// RequireScopes rejects machine tokens carrying none of the given scopes.
// User tokens pass through; their access is decided by authz.CanManageMember.
func RequireScopes(scopes ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := FromCtx(c)
		if identity == nil || !identity.IsMachine {
			return c.Next()
		}
		for _, scope := range scopes {
			if identity.HasScope(scope) {
				return c.Next()
			}
		}
		return apperror.Respond(c, apperror.Forbidden("You are not allowed to perform this action."))
	}
}
