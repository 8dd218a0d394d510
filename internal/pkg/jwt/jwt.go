package jwt

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/staffbook/staffbook-backend-go/internal/domain/user"
)

type Service interface {
	// GenerateToken issues an access token tied to a session. The token
	// expires together with the session's sliding window.
	GenerateToken(u user.User, sessionID string, expiresAt time.Time) (token string, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	secretKey string
	tokenAuth *jwtauth.JWTAuth
}

func NewJWTService(secretKey string) Service {
	return &JWTService{
		secretKey: secretKey,
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateToken(u user.User, sessionID string, expiresAt time.Time) (string, error) {
	claims := map[string]any{
		"user_id":    u.ID,
		"role":       string(u.Role),
		"location":   u.Location,
		"session_id": sessionID,
		"exp":        expiresAt.Unix(),
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, err
}
