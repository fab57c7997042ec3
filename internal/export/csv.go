// Package export renders transactions in the CSV layout the dashboard's
// download button has always produced: Date, User, Category, Amount, Status,
// Description, with only the free-text columns quoted.
package export

import (
	"strconv"
	"strings"

	"finboard/internal/models"
)

var csvHeader = []string{"Date", "User", "Category", "Amount", "Status", "Description"}

// TransactionsCSV renders the transactions as CSV, one row per transaction in
// the given order. userName fills the User column for every row.
func TransactionsCSV(transactions []models.Transaction, userName string) string {
	var b strings.Builder
	b.WriteString(strings.Join(csvHeader, ","))

	for _, tx := range transactions {
		b.WriteByte('\n')
		b.WriteString(tx.Date.Format("2006-01-02"))
		b.WriteByte(',')
		b.WriteString(quote(userName))
		b.WriteByte(',')
		b.WriteString(tx.Category)
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(tx.Amount, 'f', -1, 64))
		b.WriteByte(',')
		b.WriteString(string(tx.Status))
		b.WriteByte(',')
		b.WriteString(quote(tx.Description))
	}

	return b.String()
}

// quote wraps a free-text field in double quotes, doubling embedded quotes.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
