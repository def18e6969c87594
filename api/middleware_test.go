package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/db"
	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/service/security"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return &Server{
		jwtService: security.NewJWTService([]byte("test-secret"), 15*time.Minute, time.Hour),
	}
}

// Route a request through the auth middleware and report whether it got past it
func runAuthed(server *Server, authorization string) (*httptest.ResponseRecorder, bool) {
	router := gin.New()
	reached := false
	router.GET("/protected", server.AuthMiddleware(), func(ctx *gin.Context) {
		reached = true
		ctx.JSON(http.StatusOK, gin.H{"promoter_id": promoterID(ctx)})
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder, reached
}

func TestAuthMiddlewareAcceptsAccessToken(t *testing.T) {
	server := testServer(t)
	id := uuid.New()

	token, err := server.jwtService.CreateToken(id, db.Promoter, security.AccessToken, 0)
	require.NoError(t, err)

	recorder, reached := runAuthed(server, "Bearer "+token)
	require.True(t, reached)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Contains(t, recorder.Body.String(), id.String())
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	server := testServer(t)

	recorder, reached := runAuthed(server, "")
	require.False(t, reached)
	require.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAuthMiddlewareRejectsRefreshToken(t *testing.T) {
	server := testServer(t)

	token, err := server.jwtService.CreateToken(uuid.New(), db.Promoter, security.RefreshToken, 0)
	require.NoError(t, err)

	recorder, reached := runAuthed(server, "Bearer "+token)
	require.False(t, reached)
	require.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAuthMiddlewareRejectsGarbageToken(t *testing.T) {
	server := testServer(t)

	recorder, reached := runAuthed(server, "Bearer not-a-token")
	require.False(t, reached)
	require.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestGetToken(t *testing.T) {
	server := testServer(t)
	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
	ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	require.Empty(t, server.GetToken(ctx))

	ctx.Request.Header.Set("Authorization", "Basic abc")
	require.Empty(t, server.GetToken(ctx))

	ctx.Request.Header.Set("Authorization", "Bearer abc")
	require.Equal(t, "abc", server.GetToken(ctx))
}
