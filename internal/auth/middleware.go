package auth

import (
	"context"
	"net/http"
	"strings"

	dom "Dayflow/internal/domain"
	"Dayflow/internal/dto"
	"Dayflow/internal/token"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	contextKeyUser   = "current_user"
	contextKeyClaims = "token_claims"
)

// UserSource resolves the token subject to an account.
type UserSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (dom.User, error)
}

// CurrentUser returns the user set by RequireUser. Zero value if not set.
func CurrentUser(c *gin.Context) dom.User {
	v, ok := c.Get(contextKeyUser)
	if !ok {
		return dom.User{}
	}
	u, ok := v.(dom.User)
	if !ok {
		return dom.User{}
	}
	return u
}

// CurrentClaims returns the access token claims set by RequireUser.
func CurrentClaims(c *gin.Context) token.Claims {
	v, ok := c.Get(contextKeyClaims)
	if !ok {
		return token.Claims{}
	}
	claims, ok := v.(token.Claims)
	if !ok {
		return token.Claims{}
	}
	return claims
}

// RequireUser returns a middleware that checks the Authorization header for
// a valid bearer access token and sets the resolved user in context.
// Missing header, non-bearer scheme, empty or bad token, unknown subject and
// inactive accounts all respond with 401.
func RequireUser(tokens *token.Service, users UserSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		scheme, raw, found := strings.Cut(c.GetHeader("Authorization"), " ")
		if !found || !strings.EqualFold(scheme, "bearer") || raw == "" {
			abortUnauthorized(c)
			return
		}
		claims, err := tokens.VerifyAccess(c.Request.Context(), raw)
		if err != nil {
			abortUnauthorized(c)
			return
		}
		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			abortUnauthorized(c)
			return
		}
		user, err := users.GetByID(c.Request.Context(), userID)
		if err != nil || !user.IsActive {
			abortUnauthorized(c)
			return
		}
		c.Set(contextKeyUser, user)
		c.Set(contextKeyClaims, claims)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Unauthorized"})
}
