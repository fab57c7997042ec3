package dto

import "finboard/internal/models"

type CreateTransactionRequest struct {
	Type        string              `json:"type"`
	Category    string              `json:"category"`
	Amount      float64             `json:"amount"`
	Description string              `json:"description"`
	Date        string              `json:"date,omitempty"`
	Status      string              `json:"status,omitempty"`
	Tags        []string            `json:"tags,omitempty"`
	Attachments []models.Attachment `json:"attachments,omitempty"`
}

// UpdateTransactionRequest carries a partial transaction. Nil means the field
// is left untouched.
type UpdateTransactionRequest struct {
	Type        *string              `json:"type,omitempty"`
	Category    *string              `json:"category,omitempty"`
	Amount      *float64             `json:"amount,omitempty"`
	Description *string              `json:"description,omitempty"`
	Date        *string              `json:"date,omitempty"`
	Status      *string              `json:"status,omitempty"`
	Tags        *[]string            `json:"tags,omitempty"`
	Attachments *[]models.Attachment `json:"attachments,omitempty"`
}

type TransactionResponse struct {
	ID          string              `json:"id"`
	Type        string              `json:"type"`
	Category    string              `json:"category"`
	Amount      float64             `json:"amount"`
	Description string              `json:"description"`
	Status      string              `json:"status"`
	Date        string              `json:"date"`
	Tags        []string            `json:"tags,omitempty"`
	Attachments []models.Attachment `json:"attachments,omitempty"`
	RecurringID string              `json:"recurringId,omitempty"`
	CreatedAt   string              `json:"createdAt"`
	UpdatedAt   string              `json:"updatedAt"`
}

type Pagination struct {
	Current int   `json:"current"`
	Pages   int   `json:"pages"`
	Total   int64 `json:"total"`
}

type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Pagination   Pagination            `json:"pagination"`
}

type MutationResponse struct {
	Message     string              `json:"message"`
	Transaction TransactionResponse `json:"transaction"`
}

type FieldErrorResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationErrorResponse struct {
	Errors []FieldErrorResponse `json:"errors"`
}
