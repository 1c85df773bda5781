package service

import (
	"context"
	"log"
	"photo_contest/internal/domain/model"
	"photo_contest/internal/domain/repository"
)

type UserService struct {
	userRepo    repository.UserRepository
	photoRepo   repository.PhotoRepository
	contestRepo repository.ContestRepository
}

func NewUserService(userRepo repository.UserRepository, photoRepo repository.PhotoRepository, contestRepo repository.ContestRepository) *UserService {
	return &UserService{userRepo: userRepo, photoRepo: photoRepo, contestRepo: contestRepo}
}

type DashboardResponse struct {
	Stats          *model.UserStats `json:"stats"`
	Photos         []model.Photo    `json:"photos"`
	ActiveContests []model.Contest  `json:"active_contests"`
}

func (s *UserService) Stats(ctx context.Context, userID string) (*model.UserStats, error) {
	return s.userRepo.GetStats(ctx, userID)
}

func (s *UserService) Dashboard(ctx context.Context, userID string) (*DashboardResponse, error) {
	stats, err := s.userRepo.GetStats(ctx, userID)
	if err != nil {
		return nil, err
	}
	photos, err := s.photoRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	contests, err := s.contestRepo.ListActive(ctx, 5)
	if err != nil {
		// The dashboard is still useful without the contest strip.
		log.Printf("WARN: failed to list active contests for dashboard: %v", err)
		contests = nil
	}
	return &DashboardResponse{Stats: stats, Photos: photos, ActiveContests: contests}, nil
}
