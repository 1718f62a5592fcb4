package services

import (
	"festivo/internal/domain"
	"festivo/internal/repos"
)

type AvailabilityService struct {
	Repo *repos.AvailabilityRepo
}

func NewAvailabilityService(r *repos.AvailabilityRepo) *AvailabilityService {
	return &AvailabilityService{Repo: r}
}

// ToggleBlockDate flips a date between blocked and available, creating a
// blocked record for untouched dates. Booked days are left alone.
func (s *AvailabilityService) ToggleBlockDate(serviceID, date string) error {
	day, err := s.Repo.Get(serviceID, date)
	if err != nil {
		return err
	}
	if day == nil {
		return s.Repo.Insert(domain.AvailabilityDay{
			ServiceID: serviceID, Date: date, Status: domain.DayBlocked,
		})
	}
	if day.Status == domain.DayBooked {
		return nil
	}
	next := domain.DayBlocked
	if day.Status == domain.DayBlocked {
		next = domain.DayAvailable
	}
	return s.Repo.SetStatus(serviceID, date, next)
}

// SetCapacity creates the day record if absent, otherwise updates capacity
// only (status and usage are untouched).
func (s *AvailabilityService) SetCapacity(serviceID, date string, capacity int) error {
	day, err := s.Repo.Get(serviceID, date)
	if err != nil {
		return err
	}
	if day == nil {
		return s.Repo.Insert(domain.AvailabilityDay{
			ServiceID: serviceID, Date: date, Status: domain.DayAvailable,
			Capacity: capacity, Used: 0,
		})
	}
	return s.Repo.SetCapacity(serviceID, date, capacity)
}

// AddBooking records one booking. The first booking on an untouched date
// saturates it (capacity defaults to 1); raise capacity beforehand via
// SetCapacity to allow more. Blocked dates reject the booking silently.
func (s *AvailabilityService) AddBooking(serviceID, date string) error {
	day, err := s.Repo.Get(serviceID, date)
	if err != nil {
		return err
	}
	if day == nil {
		return s.Repo.Insert(domain.AvailabilityDay{
			ServiceID: serviceID, Date: date, Status: domain.DayBooked,
			Capacity: 1, Used: 1,
		})
	}
	if day.Status == domain.DayBlocked {
		return nil
	}
	used := day.Used + 1
	capacity := day.Capacity
	if capacity == 0 {
		capacity = 1
	}
	status := domain.DayAvailable
	if used >= capacity {
		status = domain.DayBooked
	}
	return s.Repo.SetUsage(serviceID, date, used, capacity, status)
}

// IsDateUnavailable is true iff a record exists and is blocked or booked.
// Untouched dates are always open.
func (s *AvailabilityService) IsDateUnavailable(serviceID, date string) (bool, error) {
	day, err := s.Repo.Get(serviceID, date)
	if err != nil || day == nil {
		return false, err
	}
	return day.Status == domain.DayBlocked || day.Status == domain.DayBooked, nil
}

func (s *AvailabilityService) GetDateInfo(serviceID, date string) (*domain.AvailabilityDay, error) {
	return s.Repo.Get(serviceID, date)
}

func (s *AvailabilityService) ServiceDays(serviceID string) ([]domain.AvailabilityDay, error) {
	return s.Repo.ServiceDays(serviceID)
}

func (s *AvailabilityService) ListServicesWithAvailability() ([]string, error) {
	return s.Repo.ServicesWithAvailability()
}
