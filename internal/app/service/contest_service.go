package service

import (
	"context"
	"database/sql"
	"log"
	"photo_contest/internal/common"
	"photo_contest/internal/domain/model"
	"photo_contest/internal/domain/repository"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type ContestService struct {
	contestRepo repository.ContestRepository
	voteService *VoteService
	db          *sql.DB // For transactions
}

func NewContestService(contestRepo repository.ContestRepository, voteService *VoteService, db *sql.DB) *ContestService {
	return &ContestService{contestRepo: contestRepo, voteService: voteService, db: db}
}

type CreateContestRequest struct {
	Title           string    `json:"title"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	MaxParticipants int       `json:"max_participants"`
	PrizePoints     int       `json:"prize_points"`
	EntryFee        int       `json:"entry_fee"`
}

func (s *ContestService) CreateContest(ctx context.Context, managerID string, req CreateContestRequest) (*model.Contest, error) {
	if req.Title == "" || req.StartDate.IsZero() || req.EndDate.IsZero() {
		return nil, common.Errorf("title, start_date and end_date are required: %w", common.ErrValidation)
	}
	if !req.EndDate.After(req.StartDate) {
		return nil, common.Errorf("end_date must be after start_date: %w", common.ErrValidation)
	}
	if req.MaxParticipants < 0 || req.PrizePoints < 0 || req.EntryFee < 0 {
		return nil, common.Errorf("numeric fields must not be negative: %w", common.ErrValidation)
	}

	contest := &model.Contest{
		ID:              uuid.NewString(),
		Title:           req.Title,
		Slug:            slug.Make(req.Title),
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		MaxParticipants: req.MaxParticipants,
		PrizePoints:     req.PrizePoints,
		EntryFee:        req.EntryFee,
		ManagerID:       managerID,
		Status:          model.StatusFor("", time.Now(), req.StartDate, req.EndDate),
	}

	if err := s.contestRepo.Create(ctx, contest); err != nil {
		return nil, err
	}
	return contest, nil
}

// RecomputeStatuses refreshes every non-cancelled contest's status from the
// clock. Idempotent; returns the number of rows touched.
func (s *ContestService) RecomputeStatuses(ctx context.Context, now time.Time) (int64, error) {
	return s.contestRepo.RecomputeStatuses(ctx, now)
}

// recomputeBestEffort runs on read paths. A persistence hiccup here must not
// abort the surrounding read, so failures are logged and swallowed.
func (s *ContestService) recomputeBestEffort(ctx context.Context) {
	if _, err := s.contestRepo.RecomputeStatuses(ctx, time.Now()); err != nil {
		log.Printf("WARN: best-effort status recompute failed: %v", err)
	}
}

func (s *ContestService) ListContests(ctx context.Context) ([]model.Contest, error) {
	s.recomputeBestEffort(ctx)
	return s.contestRepo.ListAll(ctx)
}

func (s *ContestService) ListActiveContests(ctx context.Context, limit int) ([]model.Contest, error) {
	s.recomputeBestEffort(ctx)
	return s.contestRepo.ListActive(ctx, limit)
}

type ContestDetail struct {
	Contest     *model.Contest           `json:"contest"`
	Leaderboard []model.LeaderboardEntry `json:"leaderboard"`
}

func (s *ContestService) GetContestDetail(ctx context.Context, contestSlug string) (*ContestDetail, error) {
	s.recomputeBestEffort(ctx)
	contest, err := s.contestRepo.FindBySlug(ctx, contestSlug)
	if err != nil {
		return nil, err
	}
	leaderboard, err := s.voteService.Leaderboard(ctx, contest.ID)
	if err != nil {
		return nil, err
	}
	return &ContestDetail{Contest: contest, Leaderboard: leaderboard}, nil
}

// CancelContest marks a contest Cancelled. The recompute pass never
// overwrites that status.
func (s *ContestService) CancelContest(ctx context.Context, contestID string) error {
	if _, err := s.contestRepo.FindByID(ctx, contestID); err != nil {
		return err
	}
	return s.contestRepo.UpdateStatus(ctx, nil, contestID, model.ContestCancelled)
}

type FinalizeResult struct {
	ContestID string                  `json:"contest_id"`
	Winner    *model.LeaderboardEntry `json:"winner"`
}

// FinalizeContest awards the prize to the top-ranked approved submission and
// marks the contest Completed, in one transaction. Persistence failures are
// reported to the caller, never retried.
func (s *ContestService) FinalizeContest(ctx context.Context, contestID string) (*FinalizeResult, error) {
	contest, err := s.contestRepo.FindByID(ctx, contestID)
	if err != nil {
		return nil, err
	}
	if contest.Status == model.ContestCancelled {
		return nil, common.Errorf("cancelled contests cannot be finalized: %w", common.ErrInvalidState)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, common.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	winner, err := s.voteService.AwardPrize(ctx, tx, contest)
	if err != nil {
		return nil, err
	}

	if err := s.contestRepo.SetWinner(ctx, tx, contest.ID, winner.OwnerID); err != nil {
		return nil, err
	}

	if err := s.contestRepo.UpdateStatus(ctx, tx, contest.ID, model.ContestCompleted); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, common.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("Contest %s finalized; prize of %d coins awarded to user %s.", contest.ID, contest.PrizePoints, winner.OwnerID)
	return &FinalizeResult{ContestID: contest.ID, Winner: winner}, nil
}
