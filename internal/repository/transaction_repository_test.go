package repository

import (
	"strings"
	"testing"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

func renderConditions(t *testing.T, userID uuid.UUID, f ListFilter) (string, []interface{}) {
	t.Helper()
	sql, args, err := squirrel.Select("id").
		From("transactions").
		Where(listConditions(userID, f)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		t.Fatalf("failed to render query: %v", err)
	}
	return sql, args
}

func TestListConditionsAlwaysOwnerScoped(t *testing.T) {
	userID := uuid.New()

	sql, args := renderConditions(t, userID, ListFilter{})
	if !strings.Contains(sql, "user_id = $1") {
		t.Fatalf("query must filter by owner: %s", sql)
	}
	if len(args) != 1 || args[0] != userID {
		t.Fatalf("want single owner arg, got %v", args)
	}
}

func TestListConditionsOptionalFilters(t *testing.T) {
	userID := uuid.New()
	category := "Software"
	txType := "expense"
	status := "Pending"
	search := "invoice"
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC)

	sql, args := renderConditions(t, userID, ListFilter{
		Category:  &category,
		Type:      &txType,
		Status:    &status,
		StartDate: &start,
		EndDate:   &end,
		Search:    &search,
	})

	for _, fragment := range []string{
		"user_id =",
		"category =",
		"type =",
		"status =",
		"date >=",
		"date <=",
		"description ILIKE",
		"category ILIKE",
	} {
		if !strings.Contains(sql, fragment) {
			t.Errorf("missing %q in: %s", fragment, sql)
		}
	}

	// owner + category + type + status + 2 dates + 2 ILIKE patterns
	if len(args) != 8 {
		t.Fatalf("want 8 args, got %d: %v", len(args), args)
	}

	found := false
	for _, arg := range args {
		if arg == "%invoice%" {
			found = true
		}
	}
	if !found {
		t.Errorf("search pattern not wrapped in wildcards: %v", args)
	}
}

func TestListConditionsSearchMatchesEitherColumn(t *testing.T) {
	search := "soft"
	sql, _ := renderConditions(t, uuid.New(), ListFilter{Search: &search})

	// description and category are ORed; the owner predicate stays ANDed.
	if !strings.Contains(sql, "ILIKE") || !strings.Contains(sql, " OR ") {
		t.Fatalf("search must OR the two ILIKE predicates: %s", sql)
	}
	if !strings.Contains(sql, "user_id = $1 AND") {
		t.Fatalf("owner predicate must remain ANDed: %s", sql)
	}
}
