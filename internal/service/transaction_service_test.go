package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"finboard/internal/dto"
	"finboard/internal/models"
	"finboard/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// stubStore records the arguments of the last call and returns canned data.
type stubStore struct {
	listTransactions []models.Transaction
	listTotal        int64
	lastFilter       repository.ListFilter
	lastLimit        int
	lastOffset       int

	created *models.Transaction

	updateResult *models.Transaction
	updateErr    error
	lastPatch    repository.TransactionPatch

	deleteErr error

	yearTransactions   []models.Transaction
	recentTransactions []models.Transaction
	lastRecentLimit    int
}

func (s *stubStore) List(ctx context.Context, userID uuid.UUID, f repository.ListFilter, limit, offset int) ([]models.Transaction, int64, error) {
	s.lastFilter = f
	s.lastLimit = limit
	s.lastOffset = offset
	return s.listTransactions, s.listTotal, nil
}

func (s *stubStore) Create(ctx context.Context, tx *models.Transaction) error {
	s.created = tx
	return nil
}

func (s *stubStore) Update(ctx context.Context, userID, id uuid.UUID, patch repository.TransactionPatch) (*models.Transaction, error) {
	s.lastPatch = patch
	return s.updateResult, s.updateErr
}

func (s *stubStore) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.deleteErr
}

func (s *stubStore) ListByYear(ctx context.Context, userID uuid.UUID, year int) ([]models.Transaction, error) {
	return s.yearTransactions, nil
}

func (s *stubStore) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]models.Transaction, error) {
	s.lastRecentLimit = limit
	return s.recentTransactions, nil
}

func newTestService(store *stubStore) *TransactionService {
	return NewTransactionService(store, zap.NewNop())
}

func TestListClampsPagination(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		wantLimit  int
		wantOffset int
	}{
		{"defaults", 0, 0, 10, 0},
		{"negative page", -3, 10, 10, 0},
		{"limit above max", 1, 500, 100, 0},
		{"second page", 2, 25, 25, 25},
		{"large page", 7, 10, 10, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &stubStore{}
			svc := newTestService(store)

			if _, err := svc.List(context.Background(), uuid.New(), repository.ListFilter{}, tt.page, tt.limit); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if store.lastLimit != tt.wantLimit {
				t.Errorf("limit: want %d got %d", tt.wantLimit, store.lastLimit)
			}
			if store.lastOffset != tt.wantOffset {
				t.Errorf("offset: want %d got %d", tt.wantOffset, store.lastOffset)
			}
		})
	}
}

func TestListPageCount(t *testing.T) {
	tests := []struct {
		total     int64
		limit     int
		wantPages int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{100, 25, 4},
		{101, 25, 5},
	}

	for _, tt := range tests {
		store := &stubStore{listTotal: tt.total}
		svc := newTestService(store)

		page, err := svc.List(context.Background(), uuid.New(), repository.ListFilter{}, 1, tt.limit)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if page.Pages != tt.wantPages {
			t.Errorf("total=%d limit=%d: want %d pages got %d", tt.total, tt.limit, tt.wantPages, page.Pages)
		}
		if page.Total != tt.total {
			t.Errorf("total: want %d got %d", tt.total, page.Total)
		}
	}
}

func TestCreateValid(t *testing.T) {
	store := &stubStore{}
	svc := newTestService(store)
	userID := uuid.New()

	tx, err := svc.Create(context.Background(), userID, &dto.CreateTransactionRequest{
		Type:        "income",
		Category:    "Sales",
		Amount:      100,
		Description: "  invoice 42  ",
		Date:        "2024-03-05",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.created == nil {
		t.Fatal("expected transaction to be persisted")
	}
	if tx.Amount != 100 {
		t.Errorf("amount: want 100 got %v", tx.Amount)
	}
	if tx.UserID != userID {
		t.Errorf("owner: want %s got %s", userID, tx.UserID)
	}
	if tx.Description != "invoice 42" {
		t.Errorf("description not trimmed: %q", tx.Description)
	}
	if tx.Status != models.StatusPaid {
		t.Errorf("default status: want Paid got %s", tx.Status)
	}
	if y, m, d := tx.Date.Date(); y != 2024 || m != time.March || d != 5 {
		t.Errorf("date: want 2024-03-05 got %v", tx.Date)
	}
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name       string
		req        dto.CreateTransactionRequest
		wantFields []string
	}{
		{
			name:       "zero amount",
			req:        dto.CreateTransactionRequest{Type: "income", Category: "Sales", Amount: 0, Description: "x"},
			wantFields: []string{"amount"},
		},
		{
			name:       "negative amount",
			req:        dto.CreateTransactionRequest{Type: "expense", Category: "Utilities", Amount: -5, Description: "x"},
			wantFields: []string{"amount"},
		},
		{
			name:       "bad type",
			req:        dto.CreateTransactionRequest{Type: "transfer", Category: "Sales", Amount: 10, Description: "x"},
			wantFields: []string{"type"},
		},
		{
			name:       "unknown category",
			req:        dto.CreateTransactionRequest{Type: "income", Category: "Crypto", Amount: 10, Description: "x"},
			wantFields: []string{"category"},
		},
		{
			name:       "blank description",
			req:        dto.CreateTransactionRequest{Type: "income", Category: "Sales", Amount: 10, Description: "   "},
			wantFields: []string{"description"},
		},
		{
			name:       "bad date",
			req:        dto.CreateTransactionRequest{Type: "income", Category: "Sales", Amount: 10, Description: "x", Date: "05/03/2024"},
			wantFields: []string{"date"},
		},
		{
			name:       "bad status",
			req:        dto.CreateTransactionRequest{Type: "income", Category: "Sales", Amount: 10, Description: "x", Status: "Done"},
			wantFields: []string{"status"},
		},
		{
			name:       "multiple violations reported together",
			req:        dto.CreateTransactionRequest{Type: "transfer", Category: "", Amount: -1, Description: ""},
			wantFields: []string{"type", "category", "amount", "description"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &stubStore{}
			svc := newTestService(store)

			_, err := svc.Create(context.Background(), uuid.New(), &tt.req)
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if store.created != nil {
				t.Error("invalid transaction must not be persisted")
			}
			if len(vErr.Fields) != len(tt.wantFields) {
				t.Fatalf("want %d field errors, got %d (%v)", len(tt.wantFields), len(vErr.Fields), vErr)
			}
			for i, field := range tt.wantFields {
				if vErr.Fields[i].Field != field {
					t.Errorf("field %d: want %s got %s", i, field, vErr.Fields[i].Field)
				}
			}
		})
	}
}

func TestUpdateValidatesSuppliedFields(t *testing.T) {
	store := &stubStore{updateResult: &models.Transaction{}}
	svc := newTestService(store)

	badAmount := -10.0
	_, err := svc.Update(context.Background(), uuid.New(), uuid.New(), &dto.UpdateTransactionRequest{Amount: &badAmount})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	// Fields left nil are not validated and not patched.
	newStatus := "Pending"
	updated, err := svc.Update(context.Background(), uuid.New(), uuid.New(), &dto.UpdateTransactionRequest{Status: &newStatus})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated == nil {
		t.Fatal("expected updated transaction")
	}
	if store.lastPatch.Status == nil || *store.lastPatch.Status != "Pending" {
		t.Errorf("status patch missing: %+v", store.lastPatch)
	}
	if store.lastPatch.Amount != nil || store.lastPatch.Type != nil || store.lastPatch.Description != nil {
		t.Errorf("unexpected patched fields: %+v", store.lastPatch)
	}
}

func TestUpdateNotFound(t *testing.T) {
	store := &stubStore{updateErr: repository.ErrNotFound}
	svc := newTestService(store)

	_, err := svc.Update(context.Background(), uuid.New(), uuid.New(), &dto.UpdateTransactionRequest{})
	if !errors.Is(err, ErrTransactionNotFound) {
		t.Fatalf("expected ErrTransactionNotFound, got %v", err)
	}
}

func TestDeleteNotFound(t *testing.T) {
	store := &stubStore{deleteErr: repository.ErrNotFound}
	svc := newTestService(store)

	err := svc.Delete(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, ErrTransactionNotFound) {
		t.Fatalf("expected ErrTransactionNotFound, got %v", err)
	}

	store.deleteErr = nil
	if err := svc.Delete(context.Background(), uuid.New(), uuid.New()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestListAllDisablesPagination(t *testing.T) {
	store := &stubStore{}
	svc := newTestService(store)

	if _, err := svc.ListAll(context.Background(), uuid.New(), repository.ListFilter{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.lastLimit != 0 {
		t.Errorf("want limit 0 (unpaginated), got %d", store.lastLimit)
	}
}
