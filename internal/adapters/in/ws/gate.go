// Package ws is the live tracking surface: a WebSocket endpoint per order,
// guarded by a token gate and fed by the broadcast bus.
package ws

import (
	"github.com/golang-jwt/jwt/v5"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
)

// Claims is the token payload the gate understands. Customers carry their
// id in the subject, restaurant staff carry a restaurantId, admins a role.
type Claims struct {
	Role         string `json:"role"`
	RestaurantID string `json:"restaurantId"`
	jwt.RegisteredClaims
}

const roleAdmin = "admin"

// ConnectionGate authenticates and authorizes tracking subscribers before
// the HTTP connection is upgraded. An order may only be watched by its
// customer, staff of its restaurant, or an admin.
type ConnectionGate struct {
	secret []byte
}

// NewConnectionGate creates a gate verifying HS256 tokens with secret.
func NewConnectionGate(secret []byte) (*ConnectionGate, error) {
	if len(secret) == 0 {
		return nil, errs.NewValueIsRequiredError("secret")
	}
	return &ConnectionGate{secret: secret}, nil
}

// ParseToken verifies the token signature and returns its claims.
// Missing or invalid tokens fail with errs.ErrPermissionDenied.
func (g *ConnectionGate) ParseToken(token string) (*Claims, error) {
	if token == "" {
		return nil, errs.NewPermissionDeniedError("missing token")
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return g.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, errs.NewPermissionDeniedErrorWithCause("invalid token", err)
	}
	if !parsed.Valid {
		return nil, errs.NewPermissionDeniedError("invalid token")
	}
	return claims, nil
}

// Authorize decides whether the claims may watch the given order.
func (g *ConnectionGate) Authorize(claims *Claims, aggregate *order.Order) error {
	if claims.Role == roleAdmin {
		return nil
	}
	if claims.RestaurantID != "" && claims.RestaurantID == aggregate.Segment().RestaurantID() {
		return nil
	}
	if claims.Subject != "" && claims.Subject == aggregate.Customer().ID {
		return nil
	}
	return errs.NewPermissionDeniedError("not a participant of this order")
}
