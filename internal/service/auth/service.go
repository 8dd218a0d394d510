package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/staffbook/staffbook-backend-go/internal/domain/auth"
	"github.com/staffbook/staffbook-backend-go/internal/domain/user"
	"github.com/staffbook/staffbook-backend-go/internal/pkg/clock"
	"github.com/staffbook/staffbook-backend-go/internal/pkg/jwt"
)

type AuthServiceImpl struct {
	userRepo    user.UserRepository
	sessionRepo auth.SessionRepository
	jwtService  jwt.Service
	clk         clock.Clock
}

func NewAuthService(
	userRepo user.UserRepository,
	sessionRepo auth.SessionRepository,
	jwtService jwt.Service,
	clk clock.Clock,
) auth.AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		jwtService:  jwtService,
		clk:         clk,
	}
}

// Login implements auth.AuthService. A wrong username and a wrong password
// produce the same error.
func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	u, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	now := s.clk.Now()
	session, err := s.sessionRepo.Create(ctx, auth.Session{
		UserID:    u.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(auth.SessionWindow),
	})
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to create session: %w", err)
	}

	token, err := s.jwtService.GenerateToken(u, session.ID, session.ExpiresAt)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate token: %w", err)
	}

	return auth.LoginResponse{
		Token:     token,
		ExpiresAt: session.ExpiresAt.Unix(),
		SessionID: session.ID,
		Role:      string(u.Role),
		Location:  u.Location,
	}, nil
}

// LoadSession implements auth.AuthService.
func (s *AuthServiceImpl) LoadSession(ctx context.Context, sessionID string) (auth.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return auth.Session{}, err
	}
	if session.ExpiredAt(s.clk.Now()) {
		return auth.Session{}, auth.ErrSessionExpired
	}
	return session, nil
}

// SaveSession implements auth.AuthService. Each save pushes the expiry out
// to a full window from now.
func (s *AuthServiceImpl) SaveSession(ctx context.Context, sessionID string) (auth.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return auth.Session{}, err
	}

	expiresAt := s.clk.Now().Add(auth.SessionWindow)
	if err := s.sessionRepo.UpdateExpiry(ctx, sessionID, expiresAt.Unix()); err != nil {
		return auth.Session{}, fmt.Errorf("failed to slide session window: %w", err)
	}

	session.ExpiresAt = expiresAt
	return session, nil
}

// ClearSession implements auth.AuthService.
func (s *AuthServiceImpl) ClearSession(ctx context.Context, sessionID string) error {
	return s.sessionRepo.Delete(ctx, sessionID)
}
