package handlers

import (
	"net/http"

	"Dayflow/internal/auth"
	"Dayflow/internal/dto"
	"Dayflow/internal/service"
	"Dayflow/internal/token"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles login, register, refresh and logout.
type AuthHandler struct {
	tokens  *token.Service
	userSvc *service.UserService
}

// NewAuthHandler returns a new AuthHandler.
func NewAuthHandler(tokens *token.Service, userSvc *service.UserService) *AuthHandler {
	return &AuthHandler{tokens: tokens, userSvc: userSvc}
}

// Login godoc
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.LoginRequest  true  "Credentials"
// @Success      200   {object}  dto.TokenPairResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	user, err := h.userSvc.ValidateCredentials(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		serviceError(c, err)
		return
	}
	pair, err := h.tokens.NewPair(user.ID, user.FullName)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TokenPairResponse{Access: pair.Access, Refresh: pair.Refresh})
}

// Register godoc
// @Summary      Register
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RegisterRequest  true  "Account"
// @Success      201   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if _, err := h.userSvc.Register(c.Request.Context(), req.Email, req.FullName, req.Password); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.MessageResponse{Msg: "Successfully registered"})
}

// Refresh godoc
// @Summary      Mint a new access token from a refresh token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RefreshRequest  true  "Refresh token"
// @Success      200   {object}  dto.AccessTokenResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	access, err := h.tokens.RefreshAccess(req.Refresh)
	if err != nil {
		writeError(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}
	c.JSON(http.StatusOK, dto.AccessTokenResponse{Access: access})
}

// Logout godoc
// @Summary      Revoke the caller's token pair
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.MessageResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := auth.CurrentClaims(c)
	if err := h.tokens.RevokePair(c.Request.Context(), claims.ID); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Msg: "Successfully logged out"})
}
