package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"yap-backend/internal/common/middleware"
	"yap-backend/internal/features/reward/service"
)

type RewardHandler struct {
	balances *service.BalanceService
	wrap     func(gin.HandlerFunc) gin.HandlerFunc
}

func NewRewardHandler(balances *service.BalanceService, logger *zap.Logger) *RewardHandler {
	return &RewardHandler{
		balances: balances,
		wrap:     middleware.HandleErrorWrapper(logger),
	}
}

func (h *RewardHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/rewards/:walletAddress/balance", h.wrap(h.GetBalance))
}

// @Summary Get token balance
// @Description Reward token balance of a wallet read from the token contract
// @Tags rewards
// @Produce json
// @Param walletAddress path string true "Wallet address"
// @Success 200 {object} models.Balance
// @Failure 400 {object} middleware.ErrorResponse "Malformed wallet address"
// @Failure 502 {object} middleware.ErrorResponse "Token ledger unavailable"
// @Router /rewards/{walletAddress}/balance [get]
func (h *RewardHandler) GetBalance(c *gin.Context) {
	balance, err := h.balances.GetBalance(c.Request.Context(), c.Param("walletAddress"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, balance)
}
