package repository

import (
	"context"
	"errors"
	"time"

	"finboard/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// ErrNotFound is returned when an owner-scoped lookup matches no row.
var ErrNotFound = errors.New("record not found")

// ListFilter holds the optional transaction list predicates. A nil field
// means "no filter".
type ListFilter struct {
	Category  *string
	Type      *string
	Status    *string
	StartDate *time.Time
	EndDate   *time.Time
	Search    *string
}

// TransactionPatch holds the fields of a partial update. Nil fields are left
// unchanged.
type TransactionPatch struct {
	Type        *string
	Category    *string
	Amount      *float64
	Description *string
	Status      *string
	Date        *time.Time
	Tags        *[]string
	Attachments *[]models.Attachment
}

const transactionColumns = "id, user_id, type, category, amount, description, status, date, tags, attachments, recurring_id, created_at, updated_at"

type TransactionRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewTransactionRepository(db *pgxpool.Pool, logger *zap.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:     db,
		logger: logger,
	}
}

// listConditions builds the WHERE clause for a list query. Every condition
// set starts from user_id so a query can never cross owners.
func listConditions(userID uuid.UUID, f ListFilter) squirrel.And {
	conds := squirrel.And{squirrel.Eq{"user_id": userID}}

	if f.Category != nil {
		conds = append(conds, squirrel.Eq{"category": *f.Category})
	}
	if f.Type != nil {
		conds = append(conds, squirrel.Eq{"type": *f.Type})
	}
	if f.Status != nil {
		conds = append(conds, squirrel.Eq{"status": *f.Status})
	}
	if f.StartDate != nil {
		conds = append(conds, squirrel.GtOrEq{"date": *f.StartDate})
	}
	if f.EndDate != nil {
		conds = append(conds, squirrel.LtOrEq{"date": *f.EndDate})
	}
	if f.Search != nil {
		pattern := "%" + *f.Search + "%"
		conds = append(conds, squirrel.Or{
			squirrel.ILike{"description": pattern},
			squirrel.ILike{"category": pattern},
		})
	}

	return conds
}

// List returns one page of the owner's transactions plus the total matching
// count. Rows are ordered by date descending; id breaks ties so paging is
// deterministic. A non-positive limit disables pagination.
func (r *TransactionRepository) List(ctx context.Context, userID uuid.UUID, f ListFilter, limit, offset int) ([]models.Transaction, int64, error) {
	conds := listConditions(userID, f)

	countSQL, countArgs, err := squirrel.Select("COUNT(*)").
		From("transactions").
		Where(conds).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := squirrel.Select(transactionColumns).
		From("transactions").
		Where(conds).
		OrderBy("date DESC", "id DESC").
		PlaceholderFormat(squirrel.Dollar)
	if limit > 0 {
		query = query.Limit(uint64(limit)).Offset(uint64(offset))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	transactions, err := scanTransactions(rows)
	if err != nil {
		return nil, 0, err
	}

	return transactions, total, nil
}

func (r *TransactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	if tx.Tags == nil {
		tx.Tags = []string{}
	}
	if tx.Attachments == nil {
		tx.Attachments = []models.Attachment{}
	}

	query := squirrel.Insert("transactions").
		Columns("id", "user_id", "type", "category", "amount", "description", "status", "date", "tags", "attachments", "recurring_id", "created_at", "updated_at").
		Values(tx.ID, tx.UserID, tx.Type, tx.Category, tx.Amount, tx.Description, tx.Status, tx.Date, tx.Tags, tx.Attachments, tx.RecurringID, tx.CreatedAt, tx.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// Update applies a partial field merge to the owner's transaction and returns
// the updated row. The WHERE clause filters on (id, user_id) jointly.
func (r *TransactionRepository) Update(ctx context.Context, userID, id uuid.UUID, patch TransactionPatch) (*models.Transaction, error) {
	query := squirrel.Update("transactions").
		Set("updated_at", time.Now())

	if patch.Type != nil {
		query = query.Set("type", *patch.Type)
	}
	if patch.Category != nil {
		query = query.Set("category", *patch.Category)
	}
	if patch.Amount != nil {
		query = query.Set("amount", *patch.Amount)
	}
	if patch.Description != nil {
		query = query.Set("description", *patch.Description)
	}
	if patch.Status != nil {
		query = query.Set("status", *patch.Status)
	}
	if patch.Date != nil {
		query = query.Set("date", *patch.Date)
	}
	if patch.Tags != nil {
		query = query.Set("tags", *patch.Tags)
	}
	if patch.Attachments != nil {
		query = query.Set("attachments", *patch.Attachments)
	}

	query = query.
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		Suffix("RETURNING " + transactionColumns).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var tx models.Transaction
	if err := scanTransaction(r.db.QueryRow(ctx, sql, args...), &tx); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &tx, nil
}

// Delete removes the owner's transaction. Hard delete, no tombstone.
func (r *TransactionRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := squirrel.Delete("transactions").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// ListByYear fetches every transaction of the owner dated inside the given
// calendar year, both ends inclusive.
func (r *TransactionRepository) ListByYear(ctx context.Context, userID uuid.UUID, year int) ([]models.Transaction, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	query := squirrel.Select(transactionColumns).
		From("transactions").
		Where(squirrel.And{
			squirrel.Eq{"user_id": userID},
			squirrel.GtOrEq{"date": start},
			squirrel.Lt{"date": end},
		}).
		OrderBy("date DESC", "id DESC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// ListRecent returns the owner's newest transactions, newest first.
func (r *TransactionRepository) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]models.Transaction, error) {
	query := squirrel.Select(transactionColumns).
		From("transactions").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("date DESC", "id DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func scanTransaction(row pgx.Row, tx *models.Transaction) error {
	return row.Scan(
		&tx.ID, &tx.UserID, &tx.Type, &tx.Category, &tx.Amount, &tx.Description,
		&tx.Status, &tx.Date, &tx.Tags, &tx.Attachments, &tx.RecurringID,
		&tx.CreatedAt, &tx.UpdatedAt,
	)
}

func scanTransactions(rows pgx.Rows) ([]models.Transaction, error) {
	var transactions []models.Transaction
	for rows.Next() {
		var tx models.Transaction
		if err := scanTransaction(rows, &tx); err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	return transactions, rows.Err()
}
