package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "yap-backend/internal/common/errors"
	"yap-backend/internal/common/middleware"
	"yap-backend/internal/features/lesson/models"
	"yap-backend/internal/features/lesson/service"
)

type LessonHandler struct {
	service service.LessonService
	wrap    func(gin.HandlerFunc) gin.HandlerFunc
}

func NewLessonHandler(service service.LessonService, logger *zap.Logger) *LessonHandler {
	return &LessonHandler{
		service: service,
		wrap:    middleware.HandleErrorWrapper(logger),
	}
}

// RegisterRoutes mounts the completion and projection routes. writeGuards run
// before every mutating route.
func (h *LessonHandler) RegisterRoutes(router *gin.RouterGroup, writeGuards ...gin.HandlerFunc) {
	router.POST("/lessons/complete", middleware.Chain(writeGuards, h.wrap(h.CompleteLesson))...)

	users := router.Group("/users")
	{
		users.GET("/:walletAddress/lessons", h.wrap(h.ListCompletions))
		users.GET("/:walletAddress/stats", h.wrap(h.GetStats))
		users.GET("/:walletAddress/streak", h.wrap(h.GetStreak))
		users.POST("/:walletAddress/streak", h.wrap(h.GetStreak))
	}
}

// RegisterLegacyRoutes mounts the paths the existing web client calls.
func (h *LessonHandler) RegisterLegacyRoutes(api *gin.RouterGroup, writeGuards ...gin.HandlerFunc) {
	api.POST("/complete-lesson", middleware.Chain(writeGuards, h.wrap(h.CompleteLesson))...)
	api.GET("/user-lessons/:walletAddress", h.wrap(h.ListCompletions))
	api.GET("/user-stats/:walletAddress", h.wrap(h.GetStats))
	api.GET("/user-stats/:walletAddress/streak", h.wrap(h.GetStreak))
	api.POST("/user-stats/:walletAddress/streak", h.wrap(h.GetStreak))
}

// @Summary Complete lesson
// @Description Record a lesson completion and attempt the token reward. Repeated calls are idempotent.
// @Tags lessons
// @Accept json
// @Produce json
// @Param request body models.CompleteLessonRequest true "Lesson and wallet"
// @Success 200 {object} models.CompletionResponse
// @Failure 400 {object} middleware.ErrorResponse "Invalid input"
// @Failure 429 {object} middleware.ErrorResponse "Rate limit exceeded"
// @Failure 503 {object} middleware.ErrorResponse "Storage unavailable"
// @Router /lessons/complete [post]
func (h *LessonHandler) CompleteLesson(c *gin.Context) {
	var req models.CompleteLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.NewValidationError("body", err.Error()))
		return
	}

	resp, err := h.service.CompleteLesson(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary List completed lessons
// @Description Completed lessons of a wallet, newest first. Unknown wallets get an empty list.
// @Tags lessons
// @Produce json
// @Param walletAddress path string true "Wallet address"
// @Success 200 {array} models.Completion
// @Failure 400 {object} middleware.ErrorResponse "Malformed wallet address"
// @Router /users/{walletAddress}/lessons [get]
func (h *LessonHandler) ListCompletions(c *gin.Context) {
	completions, err := h.service.ListCompletions(c.Request.Context(), c.Param("walletAddress"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, completions)
}

// @Summary Get stats
// @Description Lesson and token totals of a wallet
// @Tags lessons
// @Produce json
// @Param walletAddress path string true "Wallet address"
// @Success 200 {object} models.Stats
// @Failure 400 {object} middleware.ErrorResponse "Malformed wallet address"
// @Router /users/{walletAddress}/stats [get]
func (h *LessonHandler) GetStats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context(), c.Param("walletAddress"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// @Summary Get streak
// @Description Number of completions in the trailing streak window
// @Tags lessons
// @Produce json
// @Param walletAddress path string true "Wallet address"
// @Success 200 {object} models.Streak
// @Failure 400 {object} middleware.ErrorResponse "Malformed wallet address"
// @Router /users/{walletAddress}/streak [get]
func (h *LessonHandler) GetStreak(c *gin.Context) {
	streak, err := h.service.Streak(c.Request.Context(), c.Param("walletAddress"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, streak)
}
