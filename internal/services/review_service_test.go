package services_test

import (
	"testing"

	"festivo/internal/domain"
	"festivo/internal/repos"
	"festivo/internal/services"
)

func reviewEnv(t *testing.T) *services.ReviewService {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	return services.NewReviewService(repos.NewReviewRepo(db))
}

func TestReviewLifecycle(t *testing.T) {
	reviews := reviewEnv(t)

	rev, err := reviews.Add("inf-001", "u-cliente", "Juan Cliente", 4, "Muy buen show")
	if err != nil {
		t.Fatal(err)
	}
	if rev.Status != domain.ReviewPending {
		t.Fatalf("new review starts pending, got %s", rev.Status)
	}

	if err := reviews.Update(rev.ID, 5, "Excelente, lo recomiendo"); err != nil {
		t.Fatal(err)
	}
	mine, err := reviews.UserReview("inf-001", "u-cliente")
	if err != nil {
		t.Fatal(err)
	}
	if mine == nil || mine.Rating != 5 {
		t.Fatalf("update not applied, got %+v", mine)
	}

	if err := reviews.Respond(rev.ID, "u-proveedor", "¡Gracias por tu preferencia!"); err != nil {
		t.Fatal(err)
	}
	responded, _ := reviews.ByService("inf-001")
	if len(responded) != 1 || responded[0].Status != domain.ReviewResponded || responded[0].ResponseText == "" {
		t.Fatalf("response not recorded, got %+v", responded)
	}

	if err := reviews.Delete(rev.ID); err != nil {
		t.Fatal(err)
	}
	left, _ := reviews.ByService("inf-001")
	if len(left) != 0 {
		t.Fatalf("review should be gone, got %d", len(left))
	}
}

func TestReviewStatsAndFilter(t *testing.T) {
	reviews := reviewEnv(t)
	ratings := map[string]int{"u1": 5, "u2": 4, "u3": 5}
	for uid, r := range ratings {
		if _, err := reviews.Add("for-001", uid, "Usuario "+uid, r, "c"); err != nil {
			t.Fatal(err)
		}
	}

	stats, err := reviews.Stats("for-001")
	if err != nil {
		t.Fatal(err)
	}
	if stats.Count != 3 || stats.Average != 4.67 {
		t.Fatalf("want count=3 avg=4.67, got %+v", stats)
	}
	if stats.Distribution[5] != 2 || stats.Distribution[4] != 1 {
		t.Fatalf("bad distribution: %+v", stats.Distribution)
	}

	high, err := reviews.Filter(repos.ReviewFilter{ServiceID: "for-001", MinRating: 5})
	if err != nil {
		t.Fatal(err)
	}
	if len(high) != 2 {
		t.Fatalf("want 2 five-star reviews, got %d", len(high))
	}

	pending, _ := reviews.Filter(repos.ReviewFilter{Status: domain.ReviewPending})
	if len(pending) != 3 {
		t.Fatalf("all three are pending, got %d", len(pending))
	}
}

func TestEmptyStats(t *testing.T) {
	reviews := reviewEnv(t)
	stats, err := reviews.Stats("cor-001")
	if err != nil {
		t.Fatal(err)
	}
	if stats.Count != 0 || stats.Average != 0 {
		t.Fatalf("empty service has zero stats, got %+v", stats)
	}
}
