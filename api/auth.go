package api

import (
	"net/http"

	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/db"
	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/service/security"
	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/util"
	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenPairResponse struct {
	AccessToken  string             `json:"access_token"`
	RefreshToken string             `json:"refresh_token"`
	Promoter     db.PromoterAccount `json:"promoter"`
}

// Login godoc
// @Summary      Promoter login
// @Description  Authenticates a promoter account and returns an access/refresh token pair
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} TokenPairResponse "Authenticated"
// @Failure      400 {object} ErrorResponse "Invalid request body"
// @Failure      401 {object} ErrorResponse "Invalid credentials | Account inactive"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /api/auth/login [post]
func (server *Server) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.LOGGER.Warn("POST /api/auth/login: failed to bind request body", "error", err)
		ctx.JSON(http.StatusBadRequest, ErrorResponse{"Invalid request body"})
		return
	}

	promoter, err := server.queries.GetPromoterByEmail(req.Email)
	if err != nil {
		util.LOGGER.Warn("POST /api/auth/login: unknown email", "email", req.Email)
		ctx.JSON(http.StatusUnauthorized, ErrorResponse{"Invalid credentials"})
		return
	}

	if !security.BcryptCompare(promoter.Password, req.Password) {
		ctx.JSON(http.StatusUnauthorized, ErrorResponse{"Invalid credentials"})
		return
	}

	if promoter.Status != db.Active {
		ctx.JSON(http.StatusUnauthorized, ErrorResponse{"Account inactive"})
		return
	}

	response, err := server.issueTokens(promoter)
	if err != nil {
		util.LOGGER.Error("POST /api/auth/login: failed to create tokens", "error", err)
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{"Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Refresh godoc
// @Summary      Refresh token pair
// @Description  Exchanges a valid refresh token for a new access/refresh token pair. Rejected when the account's token version moved on (logout everywhere)
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body RefreshRequest true "Refresh token"
// @Success      200 {object} TokenPairResponse "New token pair"
// @Failure      400 {object} ErrorResponse "Invalid request body"
// @Failure      401 {object} ErrorResponse "Invalid refresh token"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /api/auth/refresh [post]
func (server *Server) Refresh(ctx *gin.Context) {
	var req RefreshRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{"Invalid request body"})
		return
	}

	claims, err := server.jwtService.VerifyToken(req.RefreshToken)
	if err != nil || claims.TokenType != security.RefreshToken {
		ctx.JSON(http.StatusUnauthorized, ErrorResponse{"Invalid refresh token"})
		return
	}

	promoter, err := server.queries.GetPromoter(claims.ID)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, ErrorResponse{"Invalid refresh token"})
		return
	}

	// A bumped version invalidates every refresh token issued before
	if promoter.TokenVersion != claims.Version {
		ctx.JSON(http.StatusUnauthorized, ErrorResponse{"Invalid refresh token"})
		return
	}

	response, err := server.issueTokens(promoter)
	if err != nil {
		util.LOGGER.Error("POST /api/auth/refresh: failed to create tokens", "error", err)
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{"Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// Logout godoc
// @Summary      Logout everywhere
// @Description  Bumps the account's token version so every outstanding refresh token stops working
// @Tags         Auth
// @Produce      json
// @Success      200 {object} SuccessMessage "Logged out"
// @Failure      401 {object} ErrorResponse "Unauthorized access"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router       /api/auth/logout [post]
func (server *Server) Logout(ctx *gin.Context) {
	if err := server.queries.BumpTokenVersion(promoterID(ctx)); err != nil {
		util.LOGGER.Error("POST /api/auth/logout: failed to bump token version", "error", err)
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{"Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, SuccessMessage{"Logged out"})
}

func (server *Server) issueTokens(promoter *db.PromoterAccount) (*TokenPairResponse, error) {
	accessToken, err := server.jwtService.CreateToken(promoter.ID, promoter.Role, security.AccessToken, promoter.TokenVersion)
	if err != nil {
		return nil, err
	}

	refreshToken, err := server.jwtService.CreateToken(promoter.ID, promoter.Role, security.RefreshToken, promoter.TokenVersion)
	if err != nil {
		return nil, err
	}

	return &TokenPairResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Promoter:     *promoter,
	}, nil
}
