package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/core"
	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/service/live"
	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/stats"
	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/util"
	"github.com/gin-gonic/gin"
)

// GetEvents godoc
// @Summary      List events
// @Description  Lists the promoter's events with their metadata and ticket catalog
// @Tags         Events
// @Produce      json
// @Success      200 {array} core.Event "List of events"
// @Failure      401 {object} ErrorResponse "Unauthorized access"
// @Failure      502 {object} ErrorResponse "Failed to load data from the core API"
// @Security BearerAuth
// @Router       /api/events [get]
func (server *Server) GetEvents(ctx *gin.Context) {
	events, err := server.coreAPI.GetEvents(ctx)
	if err != nil {
		util.LOGGER.Error("GET /api/events: failed to fetch events", "error", err)
		ctx.JSON(http.StatusBadGateway, ErrorResponse{loadErrorMessage})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"data": events})
}

// GetEvent godoc
// @Summary      Get one event
// @Description  Fetches a single event with its orders and nested sales
// @Tags         Events
// @Produce      json
// @Param        event_id path string true "Event ID"
// @Success      200 {object} core.Event "Event"
// @Failure      400 {object} ErrorResponse "Event ID is required"
// @Failure      401 {object} ErrorResponse "Unauthorized access"
// @Failure      502 {object} ErrorResponse "Failed to load data from the core API"
// @Security BearerAuth
// @Router       /api/events/{event_id} [get]
func (server *Server) GetEvent(ctx *gin.Context) {
	eventID := ctx.Param("event_id")
	if eventID == "" {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{"Event ID is required"})
		return
	}

	event, err := server.coreAPI.GetEvent(ctx, eventID)
	if err != nil {
		util.LOGGER.Error("GET /api/events/:event_id: failed to fetch event", "event_id", eventID, "error", err)
		ctx.JSON(http.StatusBadGateway, ErrorResponse{loadErrorMessage})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"data": event})
}

// GetEventStats godoc
// @Summary      Per-event statistics
// @Description  Returns the event's summary cards and chart tables. Served from the live view when one is open, from the cache when warm, and recomputed from a fresh snapshot otherwise. Live events get a push-fed view opened on first request
// @Tags         Events
// @Produce      json
// @Param        event_id path string true "Event ID"
// @Success      200 {object} StatsResponse "Event statistics"
// @Failure      400 {object} ErrorResponse "Event ID is required"
// @Failure      401 {object} ErrorResponse "Unauthorized access"
// @Failure      502 {object} ErrorResponse "Failed to load data from the core API"
// @Security BearerAuth
// @Router       /api/events/{event_id}/stats [get]
func (server *Server) GetEventStats(ctx *gin.Context) {
	eventID := ctx.Param("event_id")
	if eventID == "" {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{"Event ID is required"})
		return
	}

	// A live view always has the freshest numbers
	if summary, ok := server.hub.Summary(eventID); ok {
		ctx.JSON(http.StatusOK, StatsResponse{Summary: summary, Charts: summary.Tables()})
		return
	}

	// Warm cache next
	if cached, err := server.queries.GetCache(ctx, live.StatsCacheKey(eventID)); err == nil {
		var summary stats.Summary
		if err := json.Unmarshal([]byte(cached), &summary); err == nil {
			ctx.JSON(http.StatusOK, StatsResponse{Summary: summary, Charts: summary.Tables()})
			return
		}
	}

	// Cold path: fresh snapshot
	event, err := server.coreAPI.GetEvent(ctx, eventID)
	if err != nil {
		util.LOGGER.Error("GET /api/events/:event_id/stats: failed to fetch event", "event_id", eventID, "error", err)
		ctx.JSON(http.StatusBadGateway, ErrorResponse{loadErrorMessage})
		return
	}

	// Keep live events tracked from here on so the next request hits the view
	if event.Status == core.EventLive {
		if err := server.hub.Open(ctx, eventID, event.Orders); err != nil {
			util.LOGGER.Warn("GET /api/events/:event_id/stats: failed to open live view", "event_id", eventID, "error", err)
		}
	}

	summary := stats.Aggregate(event.Orders, server.policy)
	ctx.JSON(http.StatusOK, StatsResponse{Summary: summary, Charts: summary.Tables()})
}

type UploadArtworkResponse struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// UploadArtwork godoc
// @Summary      Upload event artwork
// @Description  Uploads the event's preview image to the cloud storage and returns its public URL. The core API record is updated by the frontend with the returned URL
// @Tags         Events
// @Accept       multipart/form-data
// @Produce      json
// @Param        event_id path string true "Event ID"
// @Param        artwork formData file true "Artwork image"
// @Success      200 {object} UploadArtworkResponse "Uploaded artwork"
// @Failure      400 {object} ErrorResponse "Artwork file is required"
// @Failure      401 {object} ErrorResponse "Unauthorized access"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router       /api/events/{event_id}/artwork [put]
func (server *Server) UploadArtwork(ctx *gin.Context) {
	eventID := ctx.Param("event_id")

	header, err := ctx.FormFile("artwork")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{"Artwork file is required"})
		return
	}

	file, err := header.Open()
	if err != nil {
		util.LOGGER.Error("PUT /api/events/:event_id/artwork: failed to open upload", "error", err)
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{"Internal server error"})
		return
	}
	defer file.Close()

	publicID := util.GenerateSlug(fmt.Sprintf("%s-%s-%s", eventID, header.Filename, util.RandomString(6)))
	result, err := server.uploadService.UploadImage(ctx, publicID, file)
	if err != nil {
		util.LOGGER.Error("PUT /api/events/:event_id/artwork: upload failed", "event_id", eventID, "error", err)
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{"Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, UploadArtworkResponse{
		URL:      result.SecureURL,
		PublicID: result.PublicID,
	})
}
