package models

import (
	"time"

	"github.com/google/uuid"
)

type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

type TransactionStatus string

const (
	StatusPaid    TransactionStatus = "Paid"
	StatusPending TransactionStatus = "Pending"
	StatusFailed  TransactionStatus = "Failed"
)

// Categories is the closed set of transaction categories. The category filter
// and the dashboard palette both rely on stored values staying inside this list.
var Categories = []string{
	"Software",
	"Marketing",
	"Consulting",
	"Office Supplies",
	"Utilities",
	"Sales",
	"Investment",
	"Freelance",
	"Salary",
	"Other",
}

func ValidCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

func ValidType(t string) bool {
	return t == string(TypeIncome) || t == string(TypeExpense)
}

func ValidStatus(s string) bool {
	return s == string(StatusPaid) || s == string(StatusPending) || s == string(StatusFailed)
}

// Attachment is a file reference stored alongside a transaction.
type Attachment struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
	Size     int64  `json:"size"`
}

type Transaction struct {
	ID          uuid.UUID         `db:"id"`
	UserID      uuid.UUID         `db:"user_id"`
	Type        TransactionType   `db:"type"`
	Category    string            `db:"category"`
	Amount      float64           `db:"amount"`
	Description string            `db:"description"`
	Status      TransactionStatus `db:"status"`
	Date        time.Time         `db:"date"`
	Tags        []string          `db:"tags"`
	Attachments []Attachment      `db:"attachments"`
	RecurringID *uuid.UUID        `db:"recurring_id"`
	CreatedAt   time.Time         `db:"created_at"`
	UpdatedAt   time.Time         `db:"updated_at"`
}
