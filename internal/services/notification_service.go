package services

import (
	"time"

	"festivo/internal/domain"
	"festivo/internal/repos"

	"github.com/google/uuid"
)

// NotificationSink is the optional one-way channel other services use to drop
// event records into the log. A nil sink disables emission without affecting
// the emitting operation.
type NotificationSink interface {
	Notify(n domain.Notification)
}

type NotificationService struct {
	Repo *repos.NotificationRepo
}

func NewNotificationService(r *repos.NotificationRepo) *NotificationService {
	return &NotificationService{Repo: r}
}

// Add appends a record with a generated id and timestamp, unread.
func (s *NotificationService) Add(n domain.Notification) (domain.Notification, error) {
	n.ID = uuid.NewString()
	n.CreatedAt = time.Now().UTC().Format(time.RFC3339Nano)
	n.Read = false
	if n.Type == "" {
		n.Type = domain.NotifPriceChange
	}
	if err := s.Repo.Insert(n); err != nil {
		return domain.Notification{}, err
	}
	return n, nil
}

// Notify implements NotificationSink. Emission is best effort: a failed
// insert never surfaces to the emitting operation.
func (s *NotificationService) Notify(n domain.Notification) {
	_, _ = s.Add(n)
}

func (s *NotificationService) List(limit int) ([]domain.Notification, error) {
	return s.Repo.List(limit)
}

func (s *NotificationService) MarkRead(id string) error {
	return s.Repo.MarkRead(id)
}

func (s *NotificationService) MarkAllRead() error {
	return s.Repo.MarkAllRead()
}

func (s *NotificationService) UnreadCount() (int, error) {
	return s.Repo.UnreadCount()
}

// RecentPriceNotifications returns the newest price-change records, capped.
func (s *NotificationService) RecentPriceNotifications(limit int) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = 5
	}
	return s.Repo.ListByType(domain.NotifPriceChange, limit)
}
