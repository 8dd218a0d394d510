package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/staffbook/staffbook-backend-go/internal/domain/auth"
	"github.com/staffbook/staffbook-backend-go/internal/domain/user"
	"github.com/staffbook/staffbook-backend-go/internal/pkg/clock"
	"github.com/staffbook/staffbook-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testNow = time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

const testSecret = "test-secret-key-for-jwt"

type fakeUserRepo struct {
	users map[string]user.User
}

func newFakeUserRepo(users ...user.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]user.User)}
	for _, u := range users {
		r.users[u.Username] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, u user.User) (user.User, error) {
	r.users[u.Username] = u
	return u, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (user.User, error) {
	if u, ok := r.users[username]; ok {
		return u, nil
	}
	return user.User{}, user.ErrUserNotFound
}

type fakeSessionRepo struct {
	sessions map[string]auth.Session
	seq      int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]auth.Session)}
}

func (r *fakeSessionRepo) Create(_ context.Context, s auth.Session) (auth.Session, error) {
	r.seq++
	s.ID = fmt.Sprintf("sess-%d", r.seq)
	r.sessions[s.ID] = s
	return s, nil
}

func (r *fakeSessionRepo) GetByID(_ context.Context, id string) (auth.Session, error) {
	if s, ok := r.sessions[id]; ok {
		return s, nil
	}
	return auth.Session{}, auth.ErrSessionNotFound
}

func (r *fakeSessionRepo) UpdateExpiry(_ context.Context, id string, expiresAtUnix int64) error {
	s, ok := r.sessions[id]
	if !ok {
		return auth.ErrSessionNotFound
	}
	s.ExpiresAt = time.Unix(expiresAtUnix, 0).UTC()
	r.sessions[id] = s
	return nil
}

func (r *fakeSessionRepo) Delete(_ context.Context, id string) error {
	delete(r.sessions, id)
	return nil
}

func testUser(t *testing.T, username, password string, role user.Role) user.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	return user.User{
		ID:           "u-" + username,
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		Location:     "Main Shop",
	}
}

func newTestService(userRepo *fakeUserRepo, sessionRepo *fakeSessionRepo, clk clock.Clock) auth.AuthService {
	return NewAuthService(userRepo, sessionRepo, jwt.NewJWTService(testSecret), clk)
}

func TestLogin_Success(t *testing.T) {
	userRepo := newFakeUserRepo(testUser(t, "admin", "password123", user.RoleAdmin))
	sessionRepo := newFakeSessionRepo()
	svc := newTestService(userRepo, sessionRepo, clock.Fixed(testNow))

	resp, err := svc.Login(context.Background(), auth.LoginRequest{
		Username: "admin",
		Password: "password123",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.NotEmpty(t, resp.SessionID)
	assert.Equal(t, "admin", resp.Role)
	assert.Equal(t, testNow.Add(auth.SessionWindow).Unix(), resp.ExpiresAt)
}

func TestLogin_WrongPassword(t *testing.T) {
	userRepo := newFakeUserRepo(testUser(t, "admin", "password123", user.RoleAdmin))
	svc := newTestService(userRepo, newFakeSessionRepo(), clock.Fixed(testNow))

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Username: "admin",
		Password: "wrongpassword",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	svc := newTestService(newFakeUserRepo(), newFakeSessionRepo(), clock.Fixed(testNow))

	// Unknown usernames are indistinguishable from wrong passwords.
	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Username: "nobody",
		Password: "password123",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestSaveSession_SlidesWindow(t *testing.T) {
	userRepo := newFakeUserRepo(testUser(t, "admin", "password123", user.RoleAdmin))
	sessionRepo := newFakeSessionRepo()
	svc := newTestService(userRepo, sessionRepo, clock.Fixed(testNow))

	resp, err := svc.Login(context.Background(), auth.LoginRequest{
		Username: "admin", Password: "password123",
	})
	require.NoError(t, err)

	// Ten days later a save pushes expiry a full window out from then.
	later := testNow.Add(10 * 24 * time.Hour)
	laterSvc := newTestService(userRepo, sessionRepo, clock.Fixed(later))

	session, err := laterSvc.SaveSession(context.Background(), resp.SessionID)
	require.NoError(t, err)
	assert.Equal(t, later.Add(auth.SessionWindow).Unix(), session.ExpiresAt.Unix())
}

func TestLoadSession_Expired(t *testing.T) {
	userRepo := newFakeUserRepo(testUser(t, "admin", "password123", user.RoleAdmin))
	sessionRepo := newFakeSessionRepo()
	svc := newTestService(userRepo, sessionRepo, clock.Fixed(testNow))

	resp, err := svc.Login(context.Background(), auth.LoginRequest{
		Username: "admin", Password: "password123",
	})
	require.NoError(t, err)

	expired := testNow.Add(auth.SessionWindow + time.Hour)
	expiredSvc := newTestService(userRepo, sessionRepo, clock.Fixed(expired))

	_, err = expiredSvc.LoadSession(context.Background(), resp.SessionID)
	assert.ErrorIs(t, err, auth.ErrSessionExpired)
}

func TestClearSession_AbsentIsNoOp(t *testing.T) {
	svc := newTestService(newFakeUserRepo(), newFakeSessionRepo(), clock.Fixed(testNow))

	assert.NoError(t, svc.ClearSession(context.Background(), "never-existed"))
}
