package handlers

import (
	"errors"
	"time"

	"finboard/internal/dto"
	"finboard/internal/export"
	"finboard/internal/models"
	"finboard/internal/repository"
	"finboard/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Sentinel values the original UI sends for "no filter". They are translated
// to absent filter fields at this boundary and never reach the service layer.
const (
	allCategories = "All Categories"
	allStatuses   = "All Status"
)

type TransactionHandler struct {
	txService *service.TransactionService
	logger    *zap.Logger
}

func NewTransactionHandler(txService *service.TransactionService, logger *zap.Logger) *TransactionHandler {
	return &TransactionHandler{
		txService: txService,
		logger:    logger,
	}
}

// List godoc
// @Summary List transactions
// @Description List the caller's transactions with optional filters, search and pagination
// @Tags transactions
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size (max 100)" default(10)
// @Param category query string false "Category filter"
// @Param type query string false "Type filter: income or expense"
// @Param status query string false "Status filter: Paid, Pending or Failed"
// @Param startDate query string false "Inclusive lower bound (YYYY-MM-DD)"
// @Param endDate query string false "Inclusive upper bound (YYYY-MM-DD)"
// @Param search query string false "Case-insensitive substring match on description or category"
// @Security Bearer
// @Success 200 {object} dto.TransactionListResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Router /transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
		})
	}

	filter, fieldErrs := queryFilter(c)
	if len(fieldErrs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{Errors: fieldErrs})
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	result, err := h.txService.List(c.Context(), userID, filter, page, limit)
	if err != nil {
		h.logger.Error("Failed to list transactions", zap.Error(err))
		return serverError(c)
	}

	return c.JSON(dto.TransactionListResponse{
		Transactions: toTransactionResponses(result.Transactions),
		Pagination: dto.Pagination{
			Current: result.Current,
			Pages:   result.Pages,
			Total:   result.Total,
		},
	})
}

// Create godoc
// @Summary Create a transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body dto.CreateTransactionRequest true "Transaction fields"
// @Security Bearer
// @Success 201 {object} dto.MutationResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Router /transactions [post]
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
		})
	}

	var req dto.CreateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	tx, err := h.txService.Create(c.Context(), userID, &req)
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			return c.Status(fiber.StatusBadRequest).JSON(validationResponse(vErr))
		}
		h.logger.Error("Failed to create transaction", zap.Error(err))
		return serverError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.MutationResponse{
		Message:     "Transaction created successfully",
		Transaction: toTransactionResponse(*tx),
	})
}

// Update godoc
// @Summary Update a transaction
// @Description Partial field merge on one of the caller's transactions
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param request body dto.UpdateTransactionRequest true "Fields to change"
// @Security Bearer
// @Success 200 {object} dto.MutationResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 404 {object} map[string]string
// @Router /transactions/{id} [put]
func (h *TransactionHandler) Update(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return transactionNotFound(c)
	}

	var req dto.UpdateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	tx, err := h.txService.Update(c.Context(), userID, id, &req)
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			return c.Status(fiber.StatusBadRequest).JSON(validationResponse(vErr))
		}
		if errors.Is(err, service.ErrTransactionNotFound) {
			return transactionNotFound(c)
		}
		h.logger.Error("Failed to update transaction", zap.Error(err))
		return serverError(c)
	}

	return c.JSON(dto.MutationResponse{
		Message:     "Transaction updated successfully",
		Transaction: toTransactionResponse(*tx),
	})
}

// Delete godoc
// @Summary Delete a transaction
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Security Bearer
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return transactionNotFound(c)
	}

	if err := h.txService.Delete(c.Context(), userID, id); err != nil {
		if errors.Is(err, service.ErrTransactionNotFound) {
			return transactionNotFound(c)
		}
		h.logger.Error("Failed to delete transaction", zap.Error(err))
		return serverError(c)
	}

	return c.JSON(fiber.Map{"message": "Transaction deleted successfully"})
}

// Export godoc
// @Summary Export transactions as CSV
// @Description Download the caller's transactions matching the filters, unpaginated
// @Tags transactions
// @Produce plain
// @Param category query string false "Category filter"
// @Param type query string false "Type filter"
// @Param status query string false "Status filter"
// @Param startDate query string false "Inclusive lower bound (YYYY-MM-DD)"
// @Param endDate query string false "Inclusive upper bound (YYYY-MM-DD)"
// @Param search query string false "Search term"
// @Security Bearer
// @Success 200 {string} string "CSV content"
// @Router /transactions/export [get]
func (h *TransactionHandler) Export(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
		})
	}

	filter, fieldErrs := queryFilter(c)
	if len(fieldErrs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{Errors: fieldErrs})
	}

	transactions, err := h.txService.ListAll(c.Context(), userID, filter)
	if err != nil {
		h.logger.Error("Failed to export transactions", zap.Error(err))
		return serverError(c)
	}

	userName, _ := c.Locals("username").(string)

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="transactions.csv"`)
	return c.SendString(export.TransactionsCSV(transactions, userName))
}

// queryFilter translates list query parameters into optional filter fields,
// collecting a field error per invalid value.
func queryFilter(c *fiber.Ctx) (repository.ListFilter, []dto.FieldErrorResponse) {
	var f repository.ListFilter
	var fieldErrs []dto.FieldErrorResponse

	if category := c.Query("category"); category != "" && category != allCategories {
		f.Category = &category
	}
	if txType := c.Query("type"); txType != "" {
		if !models.ValidType(txType) {
			fieldErrs = append(fieldErrs, dto.FieldErrorResponse{Field: "type", Message: "Type must be income or expense"})
		} else {
			f.Type = &txType
		}
	}
	if status := c.Query("status"); status != "" && status != allStatuses {
		if !models.ValidStatus(status) {
			fieldErrs = append(fieldErrs, dto.FieldErrorResponse{Field: "status", Message: "Status must be Paid, Pending or Failed"})
		} else {
			f.Status = &status
		}
	}
	if startDate := c.Query("startDate"); startDate != "" {
		t, err := parseQueryDate(startDate)
		if err != nil {
			fieldErrs = append(fieldErrs, dto.FieldErrorResponse{Field: "startDate", Message: "Invalid date format"})
		} else {
			f.StartDate = &t
		}
	}
	if endDate := c.Query("endDate"); endDate != "" {
		t, err := parseQueryDate(endDate)
		if err != nil {
			fieldErrs = append(fieldErrs, dto.FieldErrorResponse{Field: "endDate", Message: "Invalid date format"})
		} else {
			f.EndDate = &t
		}
	}
	if search := c.Query("search"); search != "" {
		f.Search = &search
	}

	return f, fieldErrs
}

func parseQueryDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func validationResponse(vErr *service.ValidationError) dto.ValidationErrorResponse {
	resp := dto.ValidationErrorResponse{Errors: make([]dto.FieldErrorResponse, 0, len(vErr.Fields))}
	for _, f := range vErr.Fields {
		resp.Errors = append(resp.Errors, dto.FieldErrorResponse{Field: f.Field, Message: f.Message})
	}
	return resp
}

func transactionNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Transaction not found"})
}

func serverError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
}

func toTransactionResponse(tx models.Transaction) dto.TransactionResponse {
	resp := dto.TransactionResponse{
		ID:          tx.ID.String(),
		Type:        string(tx.Type),
		Category:    tx.Category,
		Amount:      tx.Amount,
		Description: tx.Description,
		Status:      string(tx.Status),
		Date:        tx.Date.Format(time.RFC3339),
		Tags:        tx.Tags,
		Attachments: tx.Attachments,
		CreatedAt:   tx.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   tx.UpdatedAt.Format(time.RFC3339),
	}
	if tx.RecurringID != nil {
		resp.RecurringID = tx.RecurringID.String()
	}
	return resp
}

func toTransactionResponses(transactions []models.Transaction) []dto.TransactionResponse {
	responses := make([]dto.TransactionResponse, 0, len(transactions))
	for _, tx := range transactions {
		responses = append(responses, toTransactionResponse(tx))
	}
	return responses
}
