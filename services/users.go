package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderik79/home-work-63/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrDuplicateUser is returned when registering an email that exists.
	ErrDuplicateUser = errors.New("user already exists")
	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrLogout wraps a session-store failure during logout.
	ErrLogout = errors.New("logout error")
)

// UserStore is the credential store consulted by the authenticator.
type UserStore interface {
	Create(ctx context.Context, user *models.User) (primitive.ObjectID, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// SessionStore creates, resolves and destroys opaque-token sessions.
type SessionStore interface {
	Create(ctx context.Context, userID primitive.ObjectID, ttl time.Duration) (string, error)
	Resolve(ctx context.Context, token string) (*models.Session, error)
	Destroy(ctx context.Context, token string) error
}

// UserService implements registration, login and session resolution over
// injected stores.
type UserService struct {
	Users      UserStore
	Sessions   SessionStore
	SessionTTL time.Duration
}

func (us *UserService) Register(ctx context.Context, email, password string) (primitive.ObjectID, error) {
	existing, err := us.Users.FindByEmail(ctx, email)
	if err != nil {
		return primitive.NilObjectID, err
	}
	if existing != nil {
		return primitive.NilObjectID, ErrDuplicateUser
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return primitive.NilObjectID, err
	}

	user := &models.User{
		Email:     email,
		Password:  string(hashed),
		CreatedAt: time.Now(),
	}
	return us.Users.Create(ctx, user)
}

// Login validates the credentials and opens a session, returning its token.
// Unknown email and password mismatch are deliberately indistinguishable.
func (us *UserService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := us.Users.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return us.Sessions.Create(ctx, user.ID, us.SessionTTL)
}

// ResolveSession maps a cookie token back to its user. A missing, expired
// or orphaned session all come back as nil, nil.
func (us *UserService) ResolveSession(ctx context.Context, token string) (*models.User, error) {
	session, err := us.Sessions.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}
	return us.Users.FindByID(ctx, session.UserID)
}

// Logout destroys the session. An already-absent session is fine; only a
// store failure is surfaced, wrapped as ErrLogout.
func (us *UserService) Logout(ctx context.Context, token string) error {
	if err := us.Sessions.Destroy(ctx, token); err != nil {
		return fmt.Errorf("%w: %v", ErrLogout, err)
	}
	return nil
}
