package user

import (
	"context"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Identity is the authenticated caller extracted from JWT claims. Every
// service reads it through FromContext rather than poking at claims ad hoc.
type Identity struct {
	UserID   string
	Role     Role
	Location string
}

func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }

// FromContext extracts the caller identity from the request's JWT claims.
func FromContext(ctx context.Context) (Identity, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Identity{}, ErrInvalidToken
	}

	userID, _ := claims["user_id"].(string)
	roleStr, _ := claims["role"].(string)
	location, _ := claims["location"].(string)

	role := Role(roleStr)
	if userID == "" || !role.Valid() {
		return Identity{}, ErrInvalidToken
	}

	return Identity{UserID: userID, Role: role, Location: location}, nil
}

// WithIdentity injects an identity into ctx the same way the JWT verifier
// middleware does. Used by tests and internal callers that bypass HTTP.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	tok := jwt.New()
	_ = tok.Set("user_id", id.UserID)
	_ = tok.Set("role", string(id.Role))
	_ = tok.Set("location", id.Location)
	return jwtauth.NewContext(ctx, tok, nil)
}
