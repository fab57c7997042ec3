package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"finboard/internal/dto"
	"finboard/internal/models"
	"finboard/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// TransactionStore is the persistence surface the transaction and dashboard
// services depend on. *repository.TransactionRepository implements it.
type TransactionStore interface {
	List(ctx context.Context, userID uuid.UUID, f repository.ListFilter, limit, offset int) ([]models.Transaction, int64, error)
	Create(ctx context.Context, tx *models.Transaction) error
	Update(ctx context.Context, userID, id uuid.UUID, patch repository.TransactionPatch) (*models.Transaction, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	ListByYear(ctx context.Context, userID uuid.UUID, year int) ([]models.Transaction, error)
	ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]models.Transaction, error)
}

// TransactionPage is one page of list results plus the page-count bookkeeping
// the client needs.
type TransactionPage struct {
	Transactions []models.Transaction
	Current      int
	Pages        int
	Total        int64
}

type TransactionService struct {
	store  TransactionStore
	logger *zap.Logger
}

func NewTransactionService(store TransactionStore, logger *zap.Logger) *TransactionService {
	return &TransactionService{
		store:  store,
		logger: logger,
	}
}

// List returns the requested page of the owner's transactions. Page defaults
// to 1, page size to 10 and is clamped to [1,100].
func (s *TransactionService) List(ctx context.Context, userID uuid.UUID, f repository.ListFilter, page, limit int) (*TransactionPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	offset := (page - 1) * limit
	transactions, total, err := s.store.List(ctx, userID, f, limit, offset)
	if err != nil {
		return nil, err
	}

	pages := int((total + int64(limit) - 1) / int64(limit))

	return &TransactionPage{
		Transactions: transactions,
		Current:      page,
		Pages:        pages,
		Total:        total,
	}, nil
}

// ListAll returns every transaction matching the filter, unpaginated. Used by
// the CSV export endpoint.
func (s *TransactionService) ListAll(ctx context.Context, userID uuid.UUID, f repository.ListFilter) ([]models.Transaction, error) {
	transactions, _, err := s.store.List(ctx, userID, f, 0, 0)
	return transactions, err
}

func (s *TransactionService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateTransactionRequest) (*models.Transaction, error) {
	var v validator

	if !models.ValidType(req.Type) {
		v.add("type", "Type must be income or expense")
	}
	if strings.TrimSpace(req.Category) == "" {
		v.add("category", "Category is required")
	} else if !models.ValidCategory(req.Category) {
		v.add("category", "Unknown category")
	}
	if req.Amount <= 0 {
		v.add("amount", "Amount must be greater than 0")
	}
	if strings.TrimSpace(req.Description) == "" {
		v.add("description", "Description is required")
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := parseDate(req.Date)
		if err != nil {
			v.add("date", "Invalid date format")
		} else {
			date = parsed
		}
	}

	status := models.StatusPaid
	if req.Status != "" {
		if !models.ValidStatus(req.Status) {
			v.add("status", "Status must be Paid, Pending or Failed")
		} else {
			status = models.TransactionStatus(req.Status)
		}
	}

	if err := v.err(); err != nil {
		return nil, err
	}

	now := time.Now()
	tx := &models.Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Type:        models.TransactionType(req.Type),
		Category:    req.Category,
		Amount:      req.Amount,
		Description: strings.TrimSpace(req.Description),
		Status:      status,
		Date:        date,
		Tags:        req.Tags,
		Attachments: req.Attachments,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.Create(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

func (s *TransactionService) Update(ctx context.Context, userID, id uuid.UUID, req *dto.UpdateTransactionRequest) (*models.Transaction, error) {
	var v validator
	var patch repository.TransactionPatch

	if req.Type != nil {
		if !models.ValidType(*req.Type) {
			v.add("type", "Type must be income or expense")
		} else {
			patch.Type = req.Type
		}
	}
	if req.Category != nil {
		if strings.TrimSpace(*req.Category) == "" {
			v.add("category", "Category is required")
		} else if !models.ValidCategory(*req.Category) {
			v.add("category", "Unknown category")
		} else {
			patch.Category = req.Category
		}
	}
	if req.Amount != nil {
		if *req.Amount <= 0 {
			v.add("amount", "Amount must be greater than 0")
		} else {
			patch.Amount = req.Amount
		}
	}
	if req.Description != nil {
		trimmed := strings.TrimSpace(*req.Description)
		if trimmed == "" {
			v.add("description", "Description is required")
		} else {
			patch.Description = &trimmed
		}
	}
	if req.Date != nil {
		parsed, err := parseDate(*req.Date)
		if err != nil {
			v.add("date", "Invalid date format")
		} else {
			patch.Date = &parsed
		}
	}
	if req.Status != nil {
		if !models.ValidStatus(*req.Status) {
			v.add("status", "Status must be Paid, Pending or Failed")
		} else {
			patch.Status = req.Status
		}
	}
	patch.Tags = req.Tags
	patch.Attachments = req.Attachments

	if err := v.err(); err != nil {
		return nil, err
	}

	tx, err := s.store.Update(ctx, userID, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}

	return tx, nil
}

func (s *TransactionService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.store.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTransactionNotFound
		}
		return err
	}
	return nil
}

// parseDate accepts full RFC 3339 timestamps and bare ISO dates, the two
// shapes clients actually send.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
