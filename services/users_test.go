package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderik79/home-work-63/models"
	"github.com/alexanderik79/home-work-63/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserStore struct {
	byEmail map[string]*models.User
	failure error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: map[string]*models.User{}}
}

func (s *fakeUserStore) Create(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	if s.failure != nil {
		return primitive.NilObjectID, s.failure
	}
	user.ID = primitive.NewObjectID()
	s.byEmail[user.Email] = user
	return user.ID, nil
}

func (s *fakeUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.failure != nil {
		return nil, s.failure
	}
	return s.byEmail[email], nil
}

func (s *fakeUserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	if s.failure != nil {
		return nil, s.failure
	}
	for _, user := range s.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, nil
}

type fakeSessionStore struct {
	sessions map[string]*models.Session
	failure  error
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[string]*models.Session{}}
}

func (s *fakeSessionStore) Create(ctx context.Context, userID primitive.ObjectID, ttl time.Duration) (string, error) {
	if s.failure != nil {
		return "", s.failure
	}
	token := uuid.NewString()
	s.sessions[token] = &models.Session{
		Token:     token,
		UserID:    userID,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(ttl),
	}
	return token, nil
}

func (s *fakeSessionStore) Resolve(ctx context.Context, token string) (*models.Session, error) {
	if s.failure != nil {
		return nil, s.failure
	}
	session := s.sessions[token]
	if session == nil || time.Now().After(session.ExpiresAt) {
		return nil, nil
	}
	return session, nil
}

func (s *fakeSessionStore) Destroy(ctx context.Context, token string) error {
	if s.failure != nil {
		return s.failure
	}
	delete(s.sessions, token)
	return nil
}

func newService() (*services.UserService, *fakeUserStore, *fakeSessionStore) {
	users := newFakeUserStore()
	sessions := newFakeSessionStore()
	return &services.UserService{
		Users:      users,
		Sessions:   sessions,
		SessionTTL: 24 * time.Hour,
	}, users, sessions
}

func TestRegister(t *testing.T) {
	svc, users, _ := newService()
	ctx := context.Background()

	id, err := svc.Register(ctx, "alice@example.com", "secret")
	require.NoError(t, err)
	assert.NotEqual(t, primitive.NilObjectID, id)

	stored := users.byEmail["alice@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "secret", stored.Password, "password must be stored hashed")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret")))
}

func TestRegisterDuplicateLeavesExistingUntouched(t *testing.T) {
	svc, users, _ := newService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice@example.com", "secret")
	require.NoError(t, err)
	original := *users.byEmail["alice@example.com"]

	_, err = svc.Register(ctx, "alice@example.com", "other")
	assert.ErrorIs(t, err, services.ErrDuplicateUser)
	assert.Equal(t, original, *users.byEmail["alice@example.com"])
}

func TestLogin(t *testing.T) {
	svc, _, sessions := newService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice@example.com", "secret")
	require.NoError(t, err)

	token, err := svc.Login(ctx, "alice@example.com", "secret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Contains(t, sessions.sessions, token)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice@example.com", "secret")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "alice@example.com", "wrong")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _, _ := newService()

	_, err := svc.Login(context.Background(), "nobody@example.com", "secret")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestResolveSession(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice@example.com", "secret")
	require.NoError(t, err)
	token, err := svc.Login(ctx, "alice@example.com", "secret")
	require.NoError(t, err)

	user, err := svc.ResolveSession(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "alice@example.com", user.Email)
}

func TestResolveSessionExpired(t *testing.T) {
	svc, _, sessions := newService()
	svc.SessionTTL = -time.Minute
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice@example.com", "secret")
	require.NoError(t, err)
	token, err := svc.Login(ctx, "alice@example.com", "secret")
	require.NoError(t, err)
	require.Contains(t, sessions.sessions, token)

	user, err := svc.ResolveSession(ctx, token)
	assert.NoError(t, err)
	assert.Nil(t, user, "expired session must resolve to no user")
}

func TestResolveSessionUnknownToken(t *testing.T) {
	svc, _, _ := newService()

	user, err := svc.ResolveSession(context.Background(), "no-such-token")
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestLogout(t *testing.T) {
	svc, _, sessions := newService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice@example.com", "secret")
	require.NoError(t, err)
	token, err := svc.Login(ctx, "alice@example.com", "secret")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, token))
	assert.NotContains(t, sessions.sessions, token)

	// Logging out an already-destroyed session is not an error.
	assert.NoError(t, svc.Logout(ctx, token))
}

func TestLogoutStoreFailure(t *testing.T) {
	svc, _, sessions := newService()
	sessions.failure = errors.New("store down")

	err := svc.Logout(context.Background(), "whatever")
	assert.ErrorIs(t, err, services.ErrLogout)
}
