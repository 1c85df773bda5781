package service

import (
	"context"
	"errors"
	"photo_contest/internal/common"
	"photo_contest/internal/domain/model"
	"photo_contest/internal/domain/repository"
	"testing"
)

type dashUserRepo struct {
	repository.UserRepository
}

func (dashUserRepo) Count(ctx context.Context) (int, error) { return 7, nil }

type dashAdminRepo struct {
	repository.AdminRepository
	admin *model.Admin
}

func (f dashAdminRepo) FindByID(ctx context.Context, id string) (*model.Admin, error) {
	if f.admin == nil || f.admin.ID != id {
		return nil, common.ErrNotFound
	}
	cp := *f.admin
	return &cp, nil
}

type dashContestRepo struct {
	repository.ContestRepository
}

func (dashContestRepo) Count(ctx context.Context) (int, error) { return 3, nil }

type dashPhotoRepo struct {
	repository.PhotoRepository
}

func (dashPhotoRepo) Count(ctx context.Context) (int, error) { return 9, nil }

type dashVoteRepo struct {
	repository.VoteRepository
}

func (dashVoteRepo) Count(ctx context.Context) (int, error) { return 21, nil }

type dashSubmissionRepo struct {
	repository.SubmissionRepository
}

func (dashSubmissionRepo) ListRecent(ctx context.Context, limit int) ([]model.Submission, error) {
	return []model.Submission{{ID: "s1"}, {ID: "s2"}}, nil
}

func TestAdminDashboard(t *testing.T) {
	admin := &model.Admin{ID: "admin-1", Name: "Boss", Email: "boss@example.com", HashedPassword: "hash"}
	s := NewAdminService(
		dashUserRepo{},
		dashAdminRepo{admin: admin},
		dashContestRepo{},
		dashPhotoRepo{},
		dashVoteRepo{},
		dashSubmissionRepo{},
	)

	resp, err := s.Dashboard(context.Background(), "admin-1")
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if resp.Admin == nil || resp.Admin.Name != "Boss" {
		t.Fatalf("admin profile missing from dashboard: %+v", resp.Admin)
	}
	if resp.Admin.HashedPassword != "" {
		t.Error("hashed password must not leak in the dashboard")
	}
	if resp.Stats.TotalUsers != 7 || resp.Stats.TotalContests != 3 || resp.Stats.TotalPhotos != 9 || resp.Stats.TotalVotes != 21 {
		t.Errorf("unexpected totals: %+v", resp.Stats)
	}
	if len(resp.RecentSubmissions) != 2 {
		t.Errorf("recent submissions = %d, want 2", len(resp.RecentSubmissions))
	}
}

func TestAdminDashboardUnknownAdmin(t *testing.T) {
	s := NewAdminService(
		dashUserRepo{},
		dashAdminRepo{},
		dashContestRepo{},
		dashPhotoRepo{},
		dashVoteRepo{},
		dashSubmissionRepo{},
	)
	if _, err := s.Dashboard(context.Background(), "ghost"); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}
