package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sphenegem/gem-inventory-api/internal/api/handler/v1/response"
	"github.com/sphenegem/gem-inventory-api/internal/api/middleware"
	"github.com/sphenegem/gem-inventory-api/internal/pkg/jwthelper"
	"github.com/sphenegem/gem-inventory-api/internal/testutil"
)

const signingKey = "test-signing-key"

func newAuthRouter() *gin.Engine {
	router := testutil.NewTestRouter()
	router.GET("/me", middleware.NewAuthenticator(signingKey).VerifyJWT(), func(ctx *gin.Context) {
		id, ok := middleware.AdminID(ctx)
		if !ok {
			ctx.Status(http.StatusInternalServerError)
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"admin_id": id})
	})

	return router
}

func TestVerifyJWT(t *testing.T) {
	valid, _, err := jwthelper.GenerateToken([]byte(signingKey), 7, "test", time.Hour)
	require.NoError(t, err)
	expired, _, err := jwthelper.GenerateToken([]byte(signingKey), 7, "test", -time.Minute)
	require.NoError(t, err)
	foreign, _, err := jwthelper.GenerateToken([]byte("another-key"), 7, "test", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "valid token", header: "Bearer " + valid, wantStatus: http.StatusOK},
		{name: "lowercase scheme", header: "bearer " + valid, wantStatus: http.StatusOK},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + valid, wantStatus: http.StatusUnauthorized},
		{name: "expired token", header: "Bearer " + expired, wantStatus: http.StatusUnauthorized},
		{name: "signed with another key", header: "Bearer " + foreign, wantStatus: http.StatusUnauthorized},
		{name: "garbage", header: "Bearer not.a.jwt", wantStatus: http.StatusUnauthorized},
	}

	router := newAuthRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.JSONEq(t, `{"admin_id":7}`, w.Body.String())
				return
			}

			var body response.Err
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, response.CodeInvalidToken, body.Code)
		})
	}
}

func TestTimeout(t *testing.T) {
	router := testutil.NewTestRouter()
	router.Use(middleware.Timeout(50 * time.Millisecond))
	router.GET("/slow", func(ctx *gin.Context) {
		deadline, ok := ctx.Request.Context().Deadline()
		if !ok {
			ctx.Status(http.StatusInternalServerError)
			return
		}
		assert.WithinDuration(t, time.Now().Add(50*time.Millisecond), deadline, 50*time.Millisecond)

		<-ctx.Request.Context().Done()
		ctx.Status(http.StatusGatewayTimeout)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/slow", nil))

	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
}

func TestConfigCORS(t *testing.T) {
	router := testutil.NewTestRouter()
	router.Use(middleware.ConfigCORS([]string{"http://localhost:3000"}))
	router.GET("/", func(ctx *gin.Context) { ctx.Status(http.StatusOK) })

	tests := []struct {
		name       string
		origin     string
		wantHeader string
	}{
		{name: "allowed origin", origin: "http://localhost:3000", wantHeader: "http://localhost:3000"},
		{name: "unknown origin", origin: "http://evil.example", wantHeader: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantHeader, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}
