package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"festivo/internal/http/handlers"
	"festivo/internal/repos"
	"festivo/internal/services"
)

func availApp(t *testing.T) (*fiber.App, *services.AvailabilityService) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	availSvc := services.NewAvailabilityService(repos.NewAvailabilityRepo(db))
	catalogSvc := services.NewCatalogService(repos.NewServiceRepo(db))
	h := &handlers.AvailabilityHandler{Avail: availSvc, Catalog: catalogSvc}

	app := fiber.New()
	app.Get("/api/v1/availability", h.DateInfo)
	app.Get("/api/v1/availability/:id", h.Calendar)
	return app, availSvc
}

func TestAvailabilityAPIValidation(t *testing.T) {
	app, _ := availApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/availability?service=for-001&date=10-05-2025", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("malformed date should 400, got %d", resp.StatusCode)
	}

	resp, _ = app.Test(httptest.NewRequest("GET", "/api/v1/availability?service=../etc&date=2025-05-10", nil))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("malformed service id should 400, got %d", resp.StatusCode)
	}
}

func TestAvailabilityAPIStates(t *testing.T) {
	app, availSvc := availApp(t)

	var body struct {
		Status      string `json:"status"`
		Unavailable bool   `json:"unavailable"`
	}
	get := func(q string) {
		resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/availability?"+q, nil))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("want 200, got %d", resp.StatusCode)
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatal(err)
		}
	}

	// Untouched date reads as available.
	get("service=for-001&date=2025-05-10")
	if body.Unavailable || body.Status != "available" {
		t.Fatalf("untouched date must be open, got %+v", body)
	}

	if err := availSvc.ToggleBlockDate("for-001", "2025-05-10"); err != nil {
		t.Fatal(err)
	}
	get("service=for-001&date=2025-05-10")
	if !body.Unavailable || body.Status != "blocked" {
		t.Fatalf("blocked date must be unavailable, got %+v", body)
	}

	if err := availSvc.AddBooking("for-001", "2025-05-11"); err != nil {
		t.Fatal(err)
	}
	get("service=for-001&date=2025-05-11")
	if !body.Unavailable || body.Status != "booked" {
		t.Fatalf("saturated date must be unavailable, got %+v", body)
	}
}

func TestAvailabilityCalendarEndpoint(t *testing.T) {
	app, availSvc := availApp(t)
	_ = availSvc.ToggleBlockDate("inf-001", "2025-03-01")
	_ = availSvc.AddBooking("inf-001", "2025-03-02")

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/availability/inf-001", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	var body struct {
		Days []struct {
			Date   string `json:"date"`
			Status string `json:"status"`
		} `json:"days"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if len(body.Days) != 2 {
		t.Fatalf("want 2 tracked days, got %d", len(body.Days))
	}
}
