package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"artisan_market/internal/apperr"
	"artisan_market/internal/models"
)

const identityKey = "identity"

// Identity is the decoded bearer token attached to the request context.
type Identity struct {
	UserID    uuid.UUID
	Email     string
	Role      models.Role
	SellerID  *uuid.UUID
	Token     string
	ExpiresAt time.Time
}

// HasRole reports whether the identity carries one of roles.
func (id *Identity) HasRole(roles ...models.Role) bool {
	for _, r := range roles {
		if id.Role == r {
			return true
		}
	}
	return false
}

// Blacklist holds revoked tokens until they would have expired anyway.
type Blacklist interface {
	Revoke(ctx context.Context, token string, until time.Time) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// NopBlacklist never revokes. Used when no redis is configured.
type NopBlacklist struct{}

func (NopBlacklist) Revoke(context.Context, string, time.Time) error  { return nil }
func (NopBlacklist) IsRevoked(context.Context, string) (bool, error) { return false, nil }

// Auth is the bearer gate. It authenticates; role checks are layered on top.
type Auth struct {
	tokens    *TokenService
	blacklist Blacklist
}

func NewAuth(tokens *TokenService, blacklist Blacklist) *Auth {
	if blacklist == nil {
		blacklist = NopBlacklist{}
	}
	return &Auth{tokens: tokens, blacklist: blacklist}
}

// RequireAuth ensures a valid, unrevoked bearer token is present.
func (a *Auth) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if a.authenticate(c) {
			c.Next()
		}
	}
}

// RequireRole rejects authenticated callers whose role is not listed.
// It must run after RequireAuth.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authorize(c, roles) {
			c.Next()
		}
	}
}

// RequireAuthWithRole is RequireAuth followed by RequireRole in one handler.
func (a *Auth) RequireAuthWithRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if a.authenticate(c) && authorize(c, roles) {
			c.Next()
		}
	}
}

func (a *Auth) authenticate(c *gin.Context) bool {
	tokenStr, ok := bearerToken(c.GetHeader("Authorization"))
	if !ok {
		apperr.Respond(c, apperr.Authentication("Authentication required"))
		return false
	}

	claims, err := a.tokens.Verify(tokenStr)
	if err != nil {
		logrus.WithError(err).WithField("path", c.FullPath()).Warn("bearer token rejected")
		apperr.Respond(c, apperr.Authentication("Invalid or expired token"))
		return false
	}

	revoked, err := a.blacklist.IsRevoked(c.Request.Context(), tokenStr)
	if err != nil {
		apperr.Respond(c, apperr.Internal(err, "Server error"))
		return false
	}
	if revoked {
		logrus.WithField("user_id", claims.UserID).Warn("revoked token presented")
		apperr.Respond(c, apperr.Authentication("Invalid or expired token"))
		return false
	}

	id := &Identity{
		UserID:   claims.UserID,
		Email:    claims.Email,
		Role:     claims.Role,
		SellerID: claims.SellerID,
		Token:    tokenStr,
	}
	if claims.ExpiresAt != nil {
		id.ExpiresAt = claims.ExpiresAt.Time
	}
	c.Set(identityKey, id)
	return true
}

func authorize(c *gin.Context, roles []models.Role) bool {
	id, ok := CurrentIdentity(c)
	if !ok {
		apperr.Respond(c, apperr.Authentication("Authentication required"))
		return false
	}
	if !id.HasRole(roles...) {
		apperr.Respond(c, apperr.Authorization("Access denied: requires role "+joinRoles(roles)))
		return false
	}
	return true
}

// Revoke blacklists the caller's token for the rest of its lifetime.
func (a *Auth) Revoke(ctx context.Context, id *Identity) error {
	return a.blacklist.Revoke(ctx, id.Token, id.ExpiresAt)
}

// CurrentIdentity returns the identity set by RequireAuth.
func CurrentIdentity(c *gin.Context) (*Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	id, ok := v.(*Identity)
	return id, ok
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func joinRoles(roles []models.Role) string {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return strings.Join(names, " or ")
}
