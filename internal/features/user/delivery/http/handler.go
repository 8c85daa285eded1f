package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "yap-backend/internal/common/errors"
	"yap-backend/internal/common/middleware"
	"yap-backend/internal/features/user/models"
	"yap-backend/internal/features/user/service"
)

type UserHandler struct {
	service service.UserService
	wrap    func(gin.HandlerFunc) gin.HandlerFunc
}

func NewUserHandler(service service.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		wrap:    middleware.HandleErrorWrapper(logger),
	}
}

// RegisterRoutes mounts the profile and auth routes. writeGuards run before
// every mutating route.
func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup, writeGuards ...gin.HandlerFunc) {
	users := router.Group("/users")
	{
		users.GET("/:walletAddress/profile", h.wrap(h.GetProfile))
		users.PUT("/:walletAddress/profile", middleware.Chain(writeGuards, h.wrap(h.UpdateProfile))...)
	}

	auth := router.Group("/auth")
	{
		auth.POST("/signup", middleware.Chain(writeGuards, h.wrap(h.Signup))...)
		auth.POST("/login", middleware.Chain(writeGuards, h.wrap(h.Login))...)
	}
}

// RegisterLegacyRoutes mounts the paths the existing web client calls.
func (h *UserHandler) RegisterLegacyRoutes(api *gin.RouterGroup, writeGuards ...gin.HandlerFunc) {
	api.GET("/profile/:walletAddress", h.wrap(h.GetProfile))
	api.POST("/auth/secure-signup", middleware.Chain(writeGuards, h.wrap(h.Signup))...)
	api.POST("/auth/login", middleware.Chain(writeGuards, h.wrap(h.Login))...)
}

// @Summary Get profile
// @Description Get the profile of the user owning a wallet address
// @Tags users
// @Produce json
// @Param walletAddress path string true "Wallet address"
// @Success 200 {object} models.Profile
// @Failure 400 {object} middleware.ErrorResponse "Malformed wallet address"
// @Failure 404 {object} middleware.ErrorResponse "User not found"
// @Router /users/{walletAddress}/profile [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	profile, err := h.service.GetProfile(c.Request.Context(), c.Param("walletAddress"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// @Summary Update profile
// @Description Change display name and target language
// @Tags users
// @Accept json
// @Produce json
// @Param walletAddress path string true "Wallet address"
// @Param profile body models.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} models.Profile
// @Failure 400 {object} middleware.ErrorResponse "Invalid input"
// @Failure 404 {object} middleware.ErrorResponse "User not found"
// @Router /users/{walletAddress}/profile [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.NewValidationError("body", err.Error()))
		return
	}

	profile, err := h.service.UpdateProfile(c.Request.Context(), c.Param("walletAddress"), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// @Summary Sign up
// @Description Register email and password for a wallet
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.SignupRequest true "Signup data"
// @Success 200 {object} models.AuthResponse
// @Failure 400 {object} middleware.ErrorResponse "Invalid input"
// @Failure 409 {object} middleware.ErrorResponse "Already registered"
// @Router /auth/signup [post]
func (h *UserHandler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.NewValidationError("body", err.Error()))
		return
	}

	resp, err := h.service.Signup(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Log in
// @Description Check email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} models.AuthResponse
// @Failure 401 {object} middleware.ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.NewValidationError("body", err.Error()))
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
