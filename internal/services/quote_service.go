package services

import (
	"encoding/json"
	"errors"

	"festivo/internal/repos"

	"github.com/google/uuid"
)

type QuoteService struct {
	Repo *repos.QuoteRepo
}

func NewQuoteService(r *repos.QuoteRepo) *QuoteService { return &QuoteService{Repo: r} }

type QuoteInput struct {
	Name       string
	Email      string
	Phone      string
	EventType  string
	EventDate  string
	GuestCount int
	Budget     string
	Services   []string
	Message    string
}

// Submit stores a quote request. Name, email and event type are required.
func (s *QuoteService) Submit(in QuoteInput) (string, error) {
	if in.Name == "" || in.Email == "" || in.EventType == "" {
		return "", errors.New("missing required fields")
	}
	servicesJSON, _ := json.Marshal(in.Services)
	id := uuid.NewString()
	err := s.Repo.Insert(repos.QuoteRow{
		ID:           id,
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		EventType:    in.EventType,
		EventDate:    in.EventDate,
		GuestCount:   in.GuestCount,
		Budget:       in.Budget,
		ServicesJSON: string(servicesJSON),
		Message:      in.Message,
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *QuoteService) ListLatest(limit int) ([]repos.QuoteRow, error) {
	return s.Repo.ListLatest(limit)
}
