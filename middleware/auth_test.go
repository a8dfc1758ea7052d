package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexanderik79/home-work-63/middleware"
	"github.com/alexanderik79/home-work-63/models"
	"github.com/alexanderik79/home-work-63/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubUserStore struct {
	user *models.User
}

func (s stubUserStore) Create(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	return primitive.NilObjectID, nil
}

func (s stubUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, nil
}

func (s stubUserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	return nil, nil
}

type stubSessionStore struct {
	session *models.Session
}

func (s stubSessionStore) Create(ctx context.Context, userID primitive.ObjectID, ttl time.Duration) (string, error) {
	return "", nil
}

func (s stubSessionStore) Resolve(ctx context.Context, token string) (*models.Session, error) {
	if s.session != nil && s.session.Token == token && time.Now().Before(s.session.ExpiresAt) {
		return s.session, nil
	}
	return nil, nil
}

func (s stubSessionStore) Destroy(ctx context.Context, token string) error {
	return nil
}

func newGatedRouter(user *models.User, session *models.Session) *gin.Engine {
	gin.SetMode(gin.TestMode)

	auth := &services.UserService{
		Users:      stubUserStore{user: user},
		Sessions:   stubSessionStore{session: session},
		SessionTTL: 24 * time.Hour,
	}

	r := gin.New()
	r.GET("/protected", middleware.SessionAuth(auth), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

func request(r *gin.Engine, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: cookie})
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestSessionAuthMissingCookie(t *testing.T) {
	r := newGatedRouter(nil, nil)

	rr := request(r, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Unauthorized. Please log in.", rr.Body.String())
}

func TestSessionAuthUnknownToken(t *testing.T) {
	r := newGatedRouter(nil, nil)

	rr := request(r, "bogus")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Unauthorized. Please log in.", rr.Body.String())
}

func TestSessionAuthExpiredToken(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID(), Email: "alice@example.com"}
	session := &models.Session{
		Token:     "expired-token",
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	r := newGatedRouter(user, session)

	rr := request(r, "expired-token")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Unauthorized. Please log in.", rr.Body.String())
}

func TestSessionAuthValidToken(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID(), Email: "alice@example.com"}
	session := &models.Session{
		Token:     "valid-token",
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(time.Hour),
	}

	gin.SetMode(gin.TestMode)
	auth := &services.UserService{
		Users:      stubUserStore{user: user},
		Sessions:   stubSessionStore{session: session},
		SessionTTL: 24 * time.Hour,
	}

	var seen *models.User
	r := gin.New()
	r.GET("/protected", middleware.SessionAuth(auth), func(c *gin.Context) {
		current, ok := middleware.CurrentUser(c)
		require.True(t, ok)
		seen = current
		c.String(http.StatusOK, "ok")
	})

	rr := request(r, "valid-token")
	assert.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, seen)
	assert.Equal(t, user.Email, seen.Email)
}

func TestSessionAuthOrphanedSession(t *testing.T) {
	// Session resolves but its user is gone: rejected like any bad session.
	session := &models.Session{
		Token:     "orphan-token",
		UserID:    primitive.NewObjectID(),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	r := newGatedRouter(nil, session)

	rr := request(r, "orphan-token")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
