package middlewares

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sareecustoms/storefront-api/repositories"
)

const secret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func sign(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func adminRouter() *gin.Engine {
	r := gin.New()
	admins := repositories.NewMemoryAdmins("uid-admin")
	r.GET("/admin", RequireAuth(secret), RequireAdmin(admins, zap.NewNop()), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"uid": Subject(c)})
	})
	return r
}

func do(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAdmin(t *testing.T) {
	r := adminRouter()
	exp := time.Now().Add(time.Hour).Unix()

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{"no token", "", http.StatusUnauthorized},
		{"garbage", "not-a-jwt", http.StatusUnauthorized},
		{"listed admin", sign(t, jwt.MapClaims{"sub": "uid-admin", "exp": exp}), http.StatusOK},
		{"role claim", sign(t, jwt.MapClaims{"user_id": "someone", "role": "admin", "exp": exp}), http.StatusOK},
		{"customer", sign(t, jwt.MapClaims{"sub": "uid-customer", "exp": exp}), http.StatusForbidden},
		{"expired", sign(t, jwt.MapClaims{"sub": "uid-admin", "exp": time.Now().Add(-time.Hour).Unix()}), http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, do(r, tt.token).Code)
		})
	}
}

func TestRecoveryHidesStackByDefault(t *testing.T) {
	for _, expose := range []bool{false, true} {
		r := gin.New()
		r.Use(Recovery(zap.NewNop(), expose))
		r.GET("/boom", func(*gin.Context) { panic("boom") })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
		require.Equal(t, http.StatusInternalServerError, w.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "boom", body["error"])
		_, hasStack := body["stack"]
		assert.Equal(t, expose, hasStack)
	}
}
