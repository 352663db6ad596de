package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"card_system/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "middleware-secret"

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/users/:user_id", JWTAuthMiddleware(secret), SelfOnlyMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.MustGet(ContextUserID)})
	})
	return r
}

func get(r *gin.Engine, path, token string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAndSelfOnly(t *testing.T) {
	r := newRouter()
	token, err := utils.GenerateJWT(7, secret, time.Hour)
	require.NoError(t, err)
	foreign, err := utils.GenerateJWT(7, "other-secret", time.Hour)
	require.NoError(t, err)
	expired, err := utils.GenerateJWT(7, secret, -time.Minute)
	require.NoError(t, err)

	cases := []struct {
		name  string
		path  string
		token string
		want  int
	}{
		{"own account", "/users/7", token, http.StatusOK},
		{"missing token", "/users/7", "", http.StatusUnauthorized},
		{"wrong secret", "/users/7", foreign, http.StatusUnauthorized},
		{"expired token", "/users/7", expired, http.StatusUnauthorized},
		{"another account", "/users/8", token, http.StatusForbidden},
		{"malformed id", "/users/seven", token, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := get(r, tc.path, tc.token, nil)
			assert.Equal(t, tc.want, w.Code, w.Body.String())
		})
	}
}

func TestRequestLoggerSetsID(t *testing.T) {
	r := newRouter()

	w := get(r, "/users/1", "", nil)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	w = get(r, "/users/1", "", map[string]string{RequestIDHeader: "req-123"})
	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
}
