package user

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medrec/records-api/internal/middleware"
	"github.com/medrec/records-api/internal/model"
	authService "github.com/medrec/records-api/internal/service/auth"
	pkgauth "github.com/medrec/records-api/pkg/auth"
	apperrors "github.com/medrec/records-api/pkg/errors"
	"github.com/medrec/records-api/pkg/security"
)

type fakeUserRepo struct {
	users map[string]*model.User
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	if _, exists := f.users[user.UID]; exists {
		return apperrors.DuplicateKey("uid", nil)
	}
	copied := *user
	f.users[user.UID] = &copied
	return nil
}

func (f *fakeUserRepo) GetByUID(_ context.Context, uid string) (*model.User, error) {
	user, exists := f.users[uid]
	if !exists {
		return nil, apperrors.NotFound("user", nil)
	}
	copied := *user
	return &copied, nil
}

func newTestRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := &fakeUserRepo{users: make(map[string]*model.User)}
	svc := authService.NewService(repo, security.NewBcryptHasher(4), pkgauth.NewJWTService("test-secret"))

	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Username: "alice",
		Password: "pw1",
		Role:     model.RolePatient,
		UID:      "U1",
	})
	require.NoError(t, err)

	token, err := svc.Login(context.Background(), "U1", "pw1")
	require.NoError(t, err)

	engine := gin.New()
	NewHandler(svc).RegisterRoutes(engine.Group(""), middleware.NewAuthMiddleware(svc))
	return engine, token
}

func get(engine *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestFetchUserRequiresToken(t *testing.T) {
	engine, _ := newTestRouter(t)

	w := get(engine, "/user/U1", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = get(engine, "/user/U1", "bogus-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestFetchUserReturnsRecord(t *testing.T) {
	engine, token := newTestRouter(t)

	w := get(engine, "/user/U1", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"alice"`)
	assert.Contains(t, w.Body.String(), `"uid":"U1"`)
}

// The stored digest must never appear in a fetch response.
func TestFetchUserOmitsPasswordDigest(t *testing.T) {
	engine, token := newTestRouter(t)

	w := get(engine, "/user/U1", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
	assert.NotContains(t, w.Body.String(), "$2a$")
}

func TestFetchUserNotFound(t *testing.T) {
	engine, token := newTestRouter(t)

	w := get(engine, "/user/ghost", token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
