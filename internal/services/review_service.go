package services

import (
	"math"
	"time"

	"festivo/internal/domain"
	"festivo/internal/repos"

	"github.com/google/uuid"
)

type ReviewService struct {
	Repo *repos.ReviewRepo
}

func NewReviewService(r *repos.ReviewRepo) *ReviewService { return &ReviewService{Repo: r} }

func (s *ReviewService) Add(serviceID, userID, userName string, rating int, comment string) (domain.Review, error) {
	rev := domain.Review{
		ID:        "rev_" + uuid.NewString(),
		ServiceID: serviceID,
		UserID:    userID,
		UserName:  userName,
		Rating:    rating,
		Comment:   comment,
		Status:    domain.ReviewPending,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.Repo.Insert(rev); err != nil {
		return domain.Review{}, err
	}
	return rev, nil
}

func (s *ReviewService) Update(id string, rating int, comment string) error {
	return s.Repo.Update(id, rating, comment)
}

func (s *ReviewService) Respond(id, responderID, text string) error {
	return s.Repo.Respond(id, responderID, text)
}

func (s *ReviewService) Delete(id string) error {
	return s.Repo.Delete(id)
}

func (s *ReviewService) ByService(serviceID string) ([]domain.Review, error) {
	return s.Repo.ByService(serviceID)
}

func (s *ReviewService) UserReview(serviceID, userID string) (*domain.Review, error) {
	return s.Repo.UserReview(serviceID, userID)
}

func (s *ReviewService) Filter(f repos.ReviewFilter) ([]domain.Review, error) {
	return s.Repo.Filter(f)
}

// Stats aggregates the service's reviews into average, count and a 1..5
// rating distribution.
func (s *ReviewService) Stats(serviceID string) (domain.ReviewStats, error) {
	list, err := s.Repo.ByService(serviceID)
	if err != nil {
		return domain.ReviewStats{}, err
	}
	stats := domain.ReviewStats{Distribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}}
	if len(list) == 0 {
		return stats, nil
	}
	sum := 0
	for _, r := range list {
		stats.Distribution[r.Rating]++
		sum += r.Rating
	}
	stats.Count = len(list)
	stats.Average = math.Round(float64(sum)/float64(len(list))*100) / 100
	return stats, nil
}
