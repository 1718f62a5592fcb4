package services_test

import (
	"strings"
	"testing"

	"festivo/internal/repos"
	"festivo/internal/services"
)

func quoteEnv(t *testing.T) *services.QuoteService {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	return services.NewQuoteService(repos.NewQuoteRepo(db))
}

func TestQuoteSubmitAndList(t *testing.T) {
	quotes := quoteEnv(t)

	id, err := quotes.Submit(services.QuoteInput{
		Name:       "Ana López",
		Email:      "ana@example.com",
		EventType:  "formales",
		EventDate:  "2025-11-20",
		GuestCount: 120,
		Services:   []string{"for-001", "for-002"},
		Message:    "Boda en jardín",
	})
	if err != nil {
		t.Fatal(err)
	}
	if id == "" {
		t.Fatal("submit must return an id")
	}

	list, err := quotes.ListLatest(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Fatalf("want 1 quote, got %d", len(list))
	}
	q := list[0]
	if q.Name != "Ana López" || q.GuestCount != 120 {
		t.Fatalf("stored fields mismatch: %+v", q)
	}
	if !strings.Contains(q.ServicesJSON, "for-001") {
		t.Fatalf("selected services must be stored as JSON, got %q", q.ServicesJSON)
	}
}

func TestQuoteRequiredFields(t *testing.T) {
	quotes := quoteEnv(t)
	for _, in := range []services.QuoteInput{
		{Email: "x@y.com", EventType: "formales"},
		{Name: "Ana", EventType: "formales"},
		{Name: "Ana", Email: "x@y.com"},
	} {
		if _, err := quotes.Submit(in); err == nil {
			t.Fatalf("missing required field must fail: %+v", in)
		}
	}
}
