package services

import (
	"fmt"
	"time"

	"festivo/internal/domain"
	"festivo/internal/repos"
)

type CatalogService struct {
	Repo *repos.ServiceRepo
}

func NewCatalogService(r *repos.ServiceRepo) *CatalogService {
	return &CatalogService{Repo: r}
}

func (s *CatalogService) ListEventTypes() ([]domain.EventType, error) {
	return s.Repo.ListEventTypes()
}

func (s *CatalogService) ListByEventType(eventType string, page, pageSize int) ([]domain.Service, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 12
	}
	offset := (page - 1) * pageSize
	return s.Repo.ListByEventType(eventType, pageSize, offset)
}

func (s *CatalogService) ListAll() ([]domain.Service, error) {
	return s.Repo.ListActive()
}

func (s *CatalogService) Get(id string) (domain.Service, error) {
	return s.Repo.Get(id)
}

func (s *CatalogService) Search(q, eventType, category string, page, pageSize int) ([]domain.Service, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 12
	}
	offset := (page - 1) * pageSize
	return s.Repo.Search(q, eventType, category, pageSize, offset)
}

// Add registers a provider-created service in the catalog.
func (s *CatalogService) Add(svc domain.Service) (domain.Service, error) {
	if svc.ID == "" {
		svc.ID = fmt.Sprintf("%s-%d", svc.EventType, time.Now().UnixMilli())
	}
	if err := s.Repo.Insert(svc); err != nil {
		return domain.Service{}, err
	}
	return svc, nil
}
