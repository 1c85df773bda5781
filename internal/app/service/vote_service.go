package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"photo_contest/internal/common"
	"photo_contest/internal/domain/model"
	"photo_contest/internal/domain/repository"
	"sort"

	"github.com/google/uuid"
)

type VoteService struct {
	voteRepo       repository.VoteRepository
	submissionRepo repository.SubmissionRepository
	contestRepo    repository.ContestRepository
	photoRepo      repository.PhotoRepository
	userRepo       repository.UserRepository
}

func NewVoteService(
	voteRepo repository.VoteRepository,
	submissionRepo repository.SubmissionRepository,
	contestRepo repository.ContestRepository,
	photoRepo repository.PhotoRepository,
	userRepo repository.UserRepository,
) *VoteService {
	return &VoteService{
		voteRepo:       voteRepo,
		submissionRepo: submissionRepo,
		contestRepo:    contestRepo,
		photoRepo:      photoRepo,
		userRepo:       userRepo,
	}
}

// CastVote validates in order: contest active, submission approved, voter is
// not the owner. The insert itself still races through the unique constraint;
// a violation is reported as ErrDuplicateVote and never retried.
func (s *VoteService) CastVote(ctx context.Context, userID, photoID, contestID string) (*model.Vote, error) {
	contest, err := s.contestRepo.FindByID(ctx, contestID)
	if err != nil {
		return nil, err
	}
	if contest.Status != model.ContestActive {
		return nil, common.Errorf("voting is only open while the contest is active: %w", common.ErrInvalidState)
	}

	submission, err := s.submissionRepo.FindByPhotoAndContest(ctx, photoID, contestID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.Errorf("photo is not part of this contest: %w", common.ErrNotEligible)
		}
		return nil, err
	}
	if submission.Status != model.SubmissionApproved {
		return nil, common.Errorf("only approved photos accept votes: %w", common.ErrNotEligible)
	}

	photo, err := s.photoRepo.FindByID(ctx, photoID)
	if err != nil {
		return nil, err
	}
	if photo.UserID == userID {
		return nil, common.ErrSelfVote
	}

	vote := &model.Vote{
		ID:        uuid.NewString(),
		UserID:    userID,
		PhotoID:   photoID,
		ContestID: contestID,
	}
	if err := s.voteRepo.Create(ctx, vote); err != nil {
		return nil, err
	}
	return vote, nil
}

// Leaderboard ranks every submission in the contest by distinct vote count
// with competition ("RANK()") semantics, then orders approved submissions
// ahead of the rest for display. Reads are uncached; standings must reflect
// committed vote state at call time.
func (s *VoteService) Leaderboard(ctx context.Context, contestID string) ([]model.LeaderboardEntry, error) {
	if _, err := s.contestRepo.FindByID(ctx, contestID); err != nil {
		return nil, err
	}
	entries, err := s.voteRepo.ContestStandings(ctx, contestID)
	if err != nil {
		return nil, err
	}
	AssignRanks(entries)

	// Approved submissions display first, independent of rank number.
	sort.SliceStable(entries, func(i, j int) bool {
		ai := entries[i].SubmissionStatus == model.SubmissionApproved
		aj := entries[j].SubmissionStatus == model.SubmissionApproved
		if ai != aj {
			return ai
		}
		return entries[i].Rank < entries[j].Rank
	})
	return entries, nil
}

// AssignRanks walks entries sorted by TotalVotes descending and assigns
// competition ranks: ties share a rank, the next distinct count skips
// accordingly ([5,5,3,1] -> [1,1,3,4]).
func AssignRanks(entries []model.LeaderboardEntry) {
	for i := range entries {
		if i > 0 && entries[i].TotalVotes == entries[i-1].TotalVotes {
			entries[i].Rank = entries[i-1].Rank
			continue
		}
		entries[i].Rank = i + 1
	}
}

// AwardPrize credits the contest's prize points to the owner of the
// top-ranked approved submission, inside the caller's transaction. Ties on
// vote count break toward the earliest submission. With no approved
// submissions it fails with ErrNoEligibleWinner and moves no coins.
func (s *VoteService) AwardPrize(ctx context.Context, tx *sql.Tx, contest *model.Contest) (*model.LeaderboardEntry, error) {
	entries, err := s.voteRepo.ContestStandings(ctx, contest.ID)
	if err != nil {
		return nil, err
	}

	var winner *model.LeaderboardEntry
	for i := range entries {
		if entries[i].SubmissionStatus == model.SubmissionApproved {
			winner = &entries[i]
			break
		}
	}
	if winner == nil {
		return nil, common.ErrNoEligibleWinner
	}

	if err := s.userRepo.CreditCoins(ctx, tx, winner.OwnerID, contest.PrizePoints); err != nil {
		return nil, fmt.Errorf("failed to credit prize: %w", err)
	}
	return winner, nil
}
