package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func newAuthRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", mw, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"caller_id": CallerId(c)})
	})
	return r
}

func doRequest(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuthRoundTrip(t *testing.T) {
	r := newAuthRouter(RequireAuth(testSecret))

	token, err := IssueToken(testSecret, 42, time.Hour)
	require.NoError(t, err)

	w := doRequest(r, token)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"caller_id":42}`, w.Body.String())
}

func TestRequireAuthRejectsAnonymous(t *testing.T) {
	r := newAuthRouter(RequireAuth(testSecret))

	w := doRequest(r, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthRejectsBadSignature(t *testing.T) {
	r := newAuthRouter(RequireAuth(testSecret))

	forged, err := IssueToken([]byte("other-secret"), 42, time.Hour)
	require.NoError(t, err)

	w := doRequest(r, forged)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthRejectsExpiredToken(t *testing.T) {
	r := newAuthRouter(RequireAuth(testSecret))

	expired, err := IssueToken(testSecret, 42, -time.Minute)
	require.NoError(t, err)

	w := doRequest(r, expired)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalAuthAllowsAnonymous(t *testing.T) {
	r := newAuthRouter(OptionalAuth(testSecret))

	w := doRequest(r, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"caller_id":0}`, w.Body.String())
}
