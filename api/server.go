package api

import (
	"net/http"

	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/core"
	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/db"
	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/service/live"
	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/service/security"
	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/service/uploader"
	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/service/worker"
	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/stats"
	"github.com/gin-gonic/gin"
)

// Shown whenever a fetch against the core API fails. There is no automatic retry,
// the user reloads the screen
const loadErrorMessage = "There was an error loading your data"

// Server struct, holds the router, dependencies and system config
type Server struct {
	// API router
	router *gin.Engine

	// Queries
	queries *db.Queries

	// Dependencies
	coreAPI       *core.API
	jwtService    *security.JWTService
	distributor   worker.TaskDistributor
	uploadService *uploader.CloudinaryService
	hub           *live.Hub

	// Revenue-counting policy shared by every screen
	policy stats.Policy

	port string
}

// Constructor method for server struct
func NewServer(
	queries *db.Queries,
	coreAPI *core.API,
	jwtService *security.JWTService,
	distributor worker.TaskDistributor,
	uploadService *uploader.CloudinaryService,
	hub *live.Hub,
	policy stats.Policy,
	port string,
) *Server {
	return &Server{
		router:        gin.Default(),
		queries:       queries,
		coreAPI:       coreAPI,
		jwtService:    jwtService,
		distributor:   distributor,
		uploadService: uploadService,
		hub:           hub,
		policy:        policy,
		port:          port,
	}
}

// Helper method to register handler for API
func (server *Server) RegisterHandler() {
	server.router.Use(server.CORSMiddleware())

	// API routes
	api := server.router.Group("/api")
	{
		api.GET("/", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"message": "futura-admin up"})
		})

		api.POST("/auth/login", server.Login)
		api.POST("/auth/refresh", server.Refresh)
	}

	authed := api.Group("/")
	authed.Use(server.AuthMiddleware())
	{
		authed.POST("/auth/logout", server.Logout)

		authed.GET("/dashboard", server.GetDashboard)

		authed.GET("/events", server.GetEvents)
		authed.GET("/events/:event_id", server.GetEvent)
		authed.GET("/events/:event_id/stats", server.GetEventStats)
		authed.PUT("/events/:event_id/artwork", server.UploadArtwork)

		authed.GET("/clients", server.GetClients)
		authed.GET("/clients/:client_id", server.GetClient)

		authed.GET("/orders/:order_id", server.GetOrder)
		authed.POST("/orders/:order_id/refund", server.RefundOrder)

		authed.POST("/invitations", server.CreateInvitation)
		authed.GET("/invitations/:event_id", server.ListInvitations)

		authed.GET("/notifications", server.GetNotifications)
		authed.PUT("/notifications/:id/read", server.MarkNotificationRead)
	}
}

// Start server
func (server *Server) Start() error {
	server.RegisterHandler()
	return server.router.Run(":" + server.port)
}

// Error response struct
type ErrorResponse struct {
	Message string `json:"error"`
}

// Success message struct
type SuccessMessage struct {
	Message string `json:"message"`
}

// Stats response shared by the dashboard, event stats and client screens: the
// summary cards plus the chart tables
type StatsResponse struct {
	Summary stats.Summary          `json:"summary"`
	Charts  map[string]stats.Table `json:"charts"`
}
