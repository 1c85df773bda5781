package service

import (
	"context"
	"photo_contest/internal/domain/model"
	"photo_contest/internal/domain/repository"
)

type AdminService struct {
	userRepo       repository.UserRepository
	adminRepo      repository.AdminRepository
	contestRepo    repository.ContestRepository
	photoRepo      repository.PhotoRepository
	voteRepo       repository.VoteRepository
	submissionRepo repository.SubmissionRepository
}

func NewAdminService(
	userRepo repository.UserRepository,
	adminRepo repository.AdminRepository,
	contestRepo repository.ContestRepository,
	photoRepo repository.PhotoRepository,
	voteRepo repository.VoteRepository,
	submissionRepo repository.SubmissionRepository,
) *AdminService {
	return &AdminService{
		userRepo:       userRepo,
		adminRepo:      adminRepo,
		contestRepo:    contestRepo,
		photoRepo:      photoRepo,
		voteRepo:       voteRepo,
		submissionRepo: submissionRepo,
	}
}

type AdminDashboardResponse struct {
	Admin             *model.Admin       `json:"admin"`
	Stats             model.AdminStats   `json:"stats"`
	RecentSubmissions []model.Submission `json:"recent_submissions"`
}

// Dashboard aggregates the platform totals for the requesting admin.
func (s *AdminService) Dashboard(ctx context.Context, adminID string) (*AdminDashboardResponse, error) {
	var resp AdminDashboardResponse
	var err error

	if resp.Admin, err = s.adminRepo.FindByID(ctx, adminID); err != nil {
		return nil, err
	}
	resp.Admin.HashedPassword = ""

	if resp.Stats.TotalUsers, err = s.userRepo.Count(ctx); err != nil {
		return nil, err
	}
	if resp.Stats.TotalContests, err = s.contestRepo.Count(ctx); err != nil {
		return nil, err
	}
	if resp.Stats.TotalPhotos, err = s.photoRepo.Count(ctx); err != nil {
		return nil, err
	}
	if resp.Stats.TotalVotes, err = s.voteRepo.Count(ctx); err != nil {
		return nil, err
	}
	if resp.RecentSubmissions, err = s.submissionRepo.ListRecent(ctx, 10); err != nil {
		return nil, err
	}
	return &resp, nil
}
