package services_test

import (
	"testing"

	"festivo/internal/domain"
	"festivo/internal/repos"
	"festivo/internal/services"
)

func availEnv(t *testing.T) *services.AvailabilityService {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	return services.NewAvailabilityService(repos.NewAvailabilityRepo(db))
}

func TestUntouchedDateIsOpen(t *testing.T) {
	avail := availEnv(t)
	bad, err := avail.IsDateUnavailable("for-001", "2025-05-10")
	if err != nil {
		t.Fatal(err)
	}
	if bad {
		t.Fatal("untouched date must be open")
	}
	day, err := avail.GetDateInfo("for-001", "2025-05-10")
	if err != nil || day != nil {
		t.Fatalf("want no record, got %+v err=%v", day, err)
	}
}

func TestToggleBlockDate(t *testing.T) {
	avail := availEnv(t)

	if err := avail.ToggleBlockDate("for-001", "2025-05-10"); err != nil {
		t.Fatal(err)
	}
	bad, _ := avail.IsDateUnavailable("for-001", "2025-05-10")
	if !bad {
		t.Fatal("blocked date must be unavailable")
	}

	if err := avail.ToggleBlockDate("for-001", "2025-05-10"); err != nil {
		t.Fatal(err)
	}
	day, _ := avail.GetDateInfo("for-001", "2025-05-10")
	if day == nil || day.Status != domain.DayAvailable {
		t.Fatalf("second toggle must reopen, got %+v", day)
	}
}

func TestToggleLeavesBookedDateAlone(t *testing.T) {
	avail := availEnv(t)
	if err := avail.AddBooking("for-001", "2025-06-01"); err != nil {
		t.Fatal(err)
	}
	if err := avail.ToggleBlockDate("for-001", "2025-06-01"); err != nil {
		t.Fatal(err)
	}
	day, _ := avail.GetDateInfo("for-001", "2025-06-01")
	if day.Status != domain.DayBooked {
		t.Fatalf("booked stays booked, got %s", day.Status)
	}
}

func TestFirstBookingSaturatesUntouchedDate(t *testing.T) {
	avail := availEnv(t)
	if err := avail.AddBooking("inf-001", "2025-07-01"); err != nil {
		t.Fatal(err)
	}
	day, _ := avail.GetDateInfo("inf-001", "2025-07-01")
	if day == nil || day.Status != domain.DayBooked || day.Used != 1 || day.Capacity != 1 {
		t.Fatalf("first booking on an untouched date saturates it, got %+v", day)
	}
	bad, _ := avail.IsDateUnavailable("inf-001", "2025-07-01")
	if !bad {
		t.Fatal("saturated date must be unavailable")
	}
}

func TestCapacityAllowsMultipleBookings(t *testing.T) {
	avail := availEnv(t)
	if err := avail.SetCapacity("inf-001", "2025-08-01", 2); err != nil {
		t.Fatal(err)
	}

	if err := avail.AddBooking("inf-001", "2025-08-01"); err != nil {
		t.Fatal(err)
	}
	day, _ := avail.GetDateInfo("inf-001", "2025-08-01")
	if day.Status != domain.DayAvailable || day.Used != 1 {
		t.Fatalf("one of two slots used, still open: %+v", day)
	}

	if err := avail.AddBooking("inf-001", "2025-08-01"); err != nil {
		t.Fatal(err)
	}
	day, _ = avail.GetDateInfo("inf-001", "2025-08-01")
	if day.Status != domain.DayBooked || day.Used != 2 {
		t.Fatalf("second booking saturates: %+v", day)
	}
}

func TestBookingOnBlockedDateIgnored(t *testing.T) {
	avail := availEnv(t)
	_ = avail.ToggleBlockDate("cor-001", "2025-09-01")
	if err := avail.AddBooking("cor-001", "2025-09-01"); err != nil {
		t.Fatal(err)
	}
	day, _ := avail.GetDateInfo("cor-001", "2025-09-01")
	if day.Status != domain.DayBlocked || day.Used != 0 {
		t.Fatalf("blocked date must reject the booking, got %+v", day)
	}
}

func TestServiceDaysAndTrackedList(t *testing.T) {
	avail := availEnv(t)
	_ = avail.ToggleBlockDate("inf-002", "2025-01-10")
	_ = avail.AddBooking("inf-002", "2025-01-11")
	_ = avail.AddBooking("for-002", "2025-01-12")

	days, err := avail.ServiceDays("inf-002")
	if err != nil {
		t.Fatal(err)
	}
	if len(days) != 2 {
		t.Fatalf("want 2 tracked days, got %d", len(days))
	}

	ids, err := avail.ListServicesWithAvailability()
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 2 {
		t.Fatalf("want 2 tracked services, got %v", ids)
	}
}
