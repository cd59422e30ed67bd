package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

func newTestRouter() (*gin.Engine, *authService.Service) {
	gin.SetMode(gin.TestMode)

	svc := authService.NewService(
		&fakeUserRepo{users: make(map[string]*model.User)},
		security.NewBcryptHasher(4),
		pkgauth.NewJWTService("test-secret"),
	)

	engine := gin.New()
	NewHandler(svc).RegisterRoutes(engine.Group(""))
	return engine, svc
}

func doJSON(engine *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func registerBody() map[string]interface{} {
	return map[string]interface{}{
		"username": "alice",
		"password": "pw1",
		"role":     "patient",
		"uid":      "U1",
	}
}

func TestRegisterEndpoint(t *testing.T) {
	engine, _ := newTestRouter()

	w := doJSON(engine, http.MethodPost, "/register", registerBody())
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "pw1")
}

func TestRegisterDuplicateUID(t *testing.T) {
	engine, _ := newTestRouter()

	w := doJSON(engine, http.MethodPost, "/register", registerBody())
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(engine, http.MethodPost, "/register", registerBody())
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")
}

func TestRegisterMissingFields(t *testing.T) {
	engine, _ := newTestRouter()

	body := registerBody()
	delete(body, "password")
	w := doJSON(engine, http.MethodPost, "/register", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterUnknownRole(t *testing.T) {
	engine, _ := newTestRouter()

	body := registerBody()
	body["role"] = "janitor"
	w := doJSON(engine, http.MethodPost, "/register", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginEndpoint(t *testing.T) {
	engine, svc := newTestRouter()

	w := doJSON(engine, http.MethodPost, "/register", registerBody())
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(engine, http.MethodPost, "/login", map[string]string{"uid": "U1", "password": "pw1"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data model.TokenResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Token)

	claims, err := svc.ValidateToken(resp.Data.Token)
	require.NoError(t, err)
	assert.Equal(t, "U1", claims.UID)
	assert.Equal(t, "patient", claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	engine, _ := newTestRouter()

	w := doJSON(engine, http.MethodPost, "/register", registerBody())
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(engine, http.MethodPost, "/login", map[string]string{"uid": "U1", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginUnknownUser(t *testing.T) {
	engine, _ := newTestRouter()

	w := doJSON(engine, http.MethodPost, "/login", map[string]string{"uid": "ghost", "password": "pw1"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
