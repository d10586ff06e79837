package http

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Actor identifies the authenticated caller of a request. Customers carry
// their id in the token subject; restaurant staff additionally carry the
// restaurant they act for.
type Actor struct {
	ID           string
	Role         string
	RestaurantID string
}

type actorClaims struct {
	Role         string `json:"role"`
	RestaurantID string `json:"restaurantId"`
	jwt.RegisteredClaims
}

const actorContextKey = "actor"

// ActorMiddleware verifies the Bearer token and stores the caller's
// identity on the request context. Requests without a valid token are
// rejected before reaching any handler.
func ActorMiddleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			header := ctx.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "Authentication required",
				})
			}

			claims := &actorClaims{}
			parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
				return secret, nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !parsed.Valid {
				return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "Invalid token",
				})
			}

			ctx.Set(actorContextKey, Actor{
				ID:           claims.Subject,
				Role:         claims.Role,
				RestaurantID: claims.RestaurantID,
			})
			return next(ctx)
		}
	}
}

// actorFrom returns the authenticated caller stored by ActorMiddleware.
func actorFrom(ctx echo.Context) Actor {
	actor, _ := ctx.Get(actorContextKey).(Actor)
	return actor
}
