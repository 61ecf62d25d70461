package rest_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sidequest-app/sidequest/server/api/rest"
	"github.com/sidequest-app/sidequest/server/config"
	mw "github.com/sidequest-app/sidequest/server/middleware"
	"github.com/sidequest-app/sidequest/server/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testSecurity() config.SecurityConfig {
	return config.SecurityConfig{
		JWTSecret: "test-secret",
		JWTTTLH:   72 * time.Hour,
	}
}

func newAuthRouter(t *testing.T) *gin.Engine {
	db := testutil.SetupTestDB(t)
	c := testutil.SetupTestCache(t)
	sec := testSecurity()
	h := rest.NewAuthHandler(db, c, sec)
	r := gin.New()
	r.POST("/api/auth/login", h.Login)
	r.POST("/api/auth/logout", mw.Auth(sec, c), h.Logout)
	r.POST("/api/auth/refresh", mw.Auth(sec, c), h.Refresh)
	return r
}

func doJSON(r *gin.Engine, method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func postJSON(r *gin.Engine, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPost, path, body, headers...)
}

func TestLoginAutoRegister(t *testing.T) {
	r := newAuthRouter(t)

	w := postJSON(r, "/api/auth/login", map[string]string{
		"username": "alice",
		"password": "pass1234",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["token"])
	assert.NotZero(t, resp["user_id"])
}

func TestLoginWrongPassword(t *testing.T) {
	r := newAuthRouter(t)

	// Register first
	postJSON(r, "/api/auth/login", map[string]string{"username": "bob", "password": "correct1"})

	// Wrong password
	w := postJSON(r, "/api/auth/login", map[string]string{"username": "bob", "password": "wrong123"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginSecondTime(t *testing.T) {
	r := newAuthRouter(t)

	w1 := postJSON(r, "/api/auth/login", map[string]string{"username": "carol", "password": "pass1234"})
	require.Equal(t, http.StatusOK, w1.Code)
	w2 := postJSON(r, "/api/auth/login", map[string]string{"username": "carol", "password": "pass1234"})
	require.Equal(t, http.StatusOK, w2.Code)

	var r1, r2 map[string]interface{}
	require.NoError(t, json.Unmarshal(w1.Body.Bytes(), &r1))
	require.NoError(t, json.Unmarshal(w2.Body.Bytes(), &r2))
	assert.Equal(t, r1["user_id"], r2["user_id"])
}

func TestLoginValidation(t *testing.T) {
	r := newAuthRouter(t)

	w := postJSON(r, "/api/auth/login", map[string]string{"username": "x", "password": "p"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogoutInvalidatesSession(t *testing.T) {
	r := newAuthRouter(t)

	w := postJSON(r, "/api/auth/login", map[string]string{"username": "dave", "password": "pass1234"})
	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	token := resp["token"].(string)

	w = postJSON(r, "/api/auth/logout", nil, "Authorization", "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)

	// Token no longer accepted after logout.
	w = postJSON(r, "/api/auth/refresh", nil, "Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefreshIssuesNewToken(t *testing.T) {
	r := newAuthRouter(t)

	w := postJSON(r, "/api/auth/login", map[string]string{"username": "erin", "password": "pass1234"})
	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	oldToken := resp["token"].(string)

	w = postJSON(r, "/api/auth/refresh", nil, "Authorization", "Bearer "+oldToken)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	newToken := resp["token"].(string)
	assert.NotEmpty(t, newToken)

	// New session works. (Old and new tokens can be byte-identical when
	// issued within the same second, so only the new one is asserted.)
	w = postJSON(r, "/api/auth/refresh", nil, "Authorization", "Bearer "+newToken)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddlewareRejectsGarbage(t *testing.T) {
	r := newAuthRouter(t)

	w := postJSON(r, "/api/auth/refresh", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = postJSON(r, "/api/auth/refresh", nil, "Authorization", "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
