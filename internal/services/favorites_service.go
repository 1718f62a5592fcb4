package services

import (
	"festivo/internal/domain"
	"festivo/internal/repos"
)

type FavoritesService struct {
	Repo *repos.FavoritesRepo
}

func NewFavoritesService(r *repos.FavoritesRepo) *FavoritesService { return &FavoritesService{Repo: r} }

func (s *FavoritesService) Save(sessionID, serviceID string) error {
	id, err := s.Repo.Ensure(sessionID)
	if err != nil {
		return err
	}
	return s.Repo.Add(id, serviceID)
}

func (s *FavoritesService) Unsave(sessionID, serviceID string) error {
	id, err := s.Repo.Ensure(sessionID)
	if err != nil {
		return err
	}
	return s.Repo.Remove(id, serviceID)
}

func (s *FavoritesService) IsFavorite(sessionID, serviceID string) (bool, error) {
	id, err := s.Repo.Ensure(sessionID)
	if err != nil {
		return false, err
	}
	return s.Repo.Has(id, serviceID)
}

// Toggle saves the service if missing, removes it otherwise.
func (s *FavoritesService) Toggle(sessionID, serviceID string) error {
	has, err := s.IsFavorite(sessionID, serviceID)
	if err != nil {
		return err
	}
	if has {
		return s.Unsave(sessionID, serviceID)
	}
	return s.Save(sessionID, serviceID)
}

func (s *FavoritesService) List(sessionID string) ([]domain.Service, error) {
	id, err := s.Repo.Ensure(sessionID)
	if err != nil {
		return nil, err
	}
	return s.Repo.List(id)
}

func (s *FavoritesService) Clear(sessionID string) error {
	id, err := s.Repo.Ensure(sessionID)
	if err != nil {
		return err
	}
	return s.Repo.Clear(id)
}
