package api

import (
	"context"
	"crypto/rsa"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"portal/pkg/domain"
	"portal/pkg/logger"
	"portal/pkg/serrors"
)

// Claims are the JWT claims the portal issues: the registered subject is the
// actor id and Role is the actor's role claim. The core trusts the role as
// supplied; authentication/identity provisioning is an external collaborator.
type Claims struct {
	jwt.RegisteredClaims

	Role string `json:"role"`
}

// Actor identifies the authenticated caller for the duration of a request.
type Actor struct {
	ID   uuid.UUID
	Role domain.Role
}

// actorKey is the context key carrying the authenticated actor.
type actorKey struct{}

// ActorFromContext returns the actor attached by the auth middleware.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(Actor)

	return actor, ok
}

// withAuth returns an echo middleware that verifies the bearer token with the
// given RSA public key and attaches the actor to the request context.
func withAuth(publicKey *rsa.PublicKey) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return serrors.With(serrors.ErrUnauthorized, "missing bearer token")
			}

			claims := &Claims{}
			parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
				return publicKey, nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}))
			if err != nil || !parsed.Valid {
				return serrors.Wrap(serrors.ErrUnauthorized, err, "invalid bearer token")
			}

			actorID, err := uuid.Parse(claims.Subject)
			if err != nil {
				return serrors.Wrap(serrors.ErrUnauthorized, err, "invalid token subject")
			}
			role := domain.Role(claims.Role)
			if !role.Valid() {
				return serrors.With(serrors.ErrUnauthorized, "unknown role claim %q", claims.Role)
			}

			ctx := context.WithValue(c.Request().Context(), actorKey{}, Actor{ID: actorID, Role: role})
			ctx = logger.WithFields(ctx,
				zap.String("actor_id", actorID.String()),
				zap.String("actor_role", string(role)),
			)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// requireRoles guards a route group to the given roles.
func requireRoles(roles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, ok := ActorFromContext(c.Request().Context())
			if !ok {
				return serrors.With(serrors.ErrUnauthorized, "missing actor")
			}

			for _, role := range roles {
				if actor.Role == role {
					return next(c)
				}
			}

			return serrors.With(serrors.ErrForbidden, "role %q may not access this resource", actor.Role)
		}
	}
}
