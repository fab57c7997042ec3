package handlers

import (
	"time"

	"finboard/internal/dto"
	"finboard/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	dashService *service.DashboardService
	logger      *zap.Logger
}

func NewDashboardHandler(dashService *service.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashService: dashService,
		logger:      logger,
	}
}

// Summary godoc
// @Summary Dashboard summary
// @Description Yearly totals, 12-month revenue/expense series and category breakdown
// @Tags dashboard
// @Produce json
// @Param year query int false "Reference year, defaults to the current year"
// @Security Bearer
// @Success 200 {object} dto.DashboardSummaryResponse
// @Failure 401 {object} map[string]string
// @Router /dashboard/summary [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
		})
	}

	year := c.QueryInt("year", time.Now().Year())

	summary, err := h.dashService.Summary(c.Context(), userID, year)
	if err != nil {
		h.logger.Error("Failed to build dashboard summary", zap.Error(err))
		return serverError(c)
	}

	return c.JSON(summary)
}

// Recent godoc
// @Summary Recent transactions
// @Description The caller's five newest transactions, newest first
// @Tags dashboard
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.RecentTransactionsResponse
// @Failure 401 {object} map[string]string
// @Router /dashboard/recent-transactions [get]
func (h *DashboardHandler) Recent(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
		})
	}

	transactions, err := h.dashService.Recent(c.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to fetch recent transactions", zap.Error(err))
		return serverError(c)
	}

	return c.JSON(dto.RecentTransactionsResponse{
		Transactions: toTransactionResponses(transactions),
	})
}

func getUserID(c *fiber.Ctx) (uuid.UUID, error) {
	userIDStr, ok := c.Locals("userID").(string)
	if !ok {
		return uuid.Nil, fiber.ErrUnauthorized
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, err
	}

	return userID, nil
}
