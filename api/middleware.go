package api

import (
	"net/http"
	"strings"

	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/service/security"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CORS middleware
func (server *Server) CORSMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Header("Access-Control-Allow-Origin", "*")
		ctx.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		ctx.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		// Handle preflight and return immediately so Gin doesn't respond 404 for OPTIONS
		if ctx.Request.Method == http.MethodOptions {
			ctx.AbortWithStatus(http.StatusOK)
			return
		}

		ctx.Next()
	}
}

// Extract the bearer token from the Authorization header, empty string if absent
func (server *Server) GetToken(ctx *gin.Context) string {
	header := ctx.GetHeader("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

// Auth middleware: requires a valid access token and stashes the claims for handlers
func (server *Server) AuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := server.GetToken(ctx)
		if token == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{"Unauthorized access"})
			return
		}

		claims, err := server.jwtService.VerifyToken(token)
		if err != nil || claims.TokenType != security.AccessToken {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{"Unauthorized access"})
			return
		}

		ctx.Set("promoter_id", claims.ID)
		ctx.Set("role", claims.Role)
		ctx.Next()
	}
}

// Promoter id stashed by the auth middleware
func promoterID(ctx *gin.Context) uuid.UUID {
	id, _ := ctx.Get("promoter_id")
	promoter, _ := id.(uuid.UUID)
	return promoter
}
