package service

import (
	"context"
	"database/sql"
	"errors"
	"photo_contest/internal/common"
	"photo_contest/internal/domain/model"
	"photo_contest/internal/domain/repository"
	"testing"
	"time"
)

// Fakes embed the repository interfaces so only the methods a test exercises
// need implementing; anything else panics loudly.

type fakeContestRepo struct {
	repository.ContestRepository
	contest *model.Contest
	err     error
}

func (f *fakeContestRepo) FindByID(ctx context.Context, id string) (*model.Contest, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.contest, nil
}

type fakeSubmissionRepo struct {
	repository.SubmissionRepository
	submission *model.Submission
	err        error
}

func (f *fakeSubmissionRepo) FindByPhotoAndContest(ctx context.Context, photoID, contestID string) (*model.Submission, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.submission, nil
}

type fakePhotoRepo struct {
	repository.PhotoRepository
	photo *model.Photo
	err   error
}

func (f *fakePhotoRepo) FindByID(ctx context.Context, id string) (*model.Photo, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.photo, nil
}

type fakeVoteRepo struct {
	repository.VoteRepository
	created   []*model.Vote
	createErr error
	standings []model.LeaderboardEntry
}

func (f *fakeVoteRepo) Create(ctx context.Context, v *model.Vote) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, v)
	return nil
}

func (f *fakeVoteRepo) ContestStandings(ctx context.Context, contestID string) ([]model.LeaderboardEntry, error) {
	return f.standings, nil
}

type fakeUserRepo struct {
	repository.UserRepository
	credits map[string]int
}

func (f *fakeUserRepo) CreditCoins(ctx context.Context, tx *sql.Tx, id string, amount int) error {
	if f.credits == nil {
		f.credits = make(map[string]int)
	}
	f.credits[id] += amount
	return nil
}

func activeContest() *model.Contest {
	return &model.Contest{ID: "contest-1", Status: model.ContestActive, PrizePoints: 50}
}

func TestCastVote(t *testing.T) {
	tests := []struct {
		name       string
		contest    *model.Contest
		contestErr error
		submission *model.Submission
		subErr     error
		photo      *model.Photo
		createErr  error
		voterID    string
		wantErr    error
	}{
		{
			name:       "valid vote",
			contest:    activeContest(),
			submission: &model.Submission{Status: model.SubmissionApproved},
			photo:      &model.Photo{ID: "photo-1", UserID: "owner-1"},
			voterID:    "voter-1",
		},
		{
			name:       "contest not found",
			contestErr: common.ErrNotFound,
			voterID:    "voter-1",
			wantErr:    common.ErrNotFound,
		},
		{
			name:    "contest not active",
			contest: &model.Contest{ID: "contest-1", Status: model.ContestUpcoming},
			voterID: "voter-1",
			wantErr: common.ErrInvalidState,
		},
		{
			name:    "photo not in contest",
			contest: activeContest(),
			subErr:  common.ErrNotFound,
			voterID: "voter-1",
			wantErr: common.ErrNotEligible,
		},
		{
			name:       "submission not approved",
			contest:    activeContest(),
			submission: &model.Submission{Status: model.SubmissionPending},
			voterID:    "voter-1",
			wantErr:    common.ErrNotEligible,
		},
		{
			name:       "self vote",
			contest:    activeContest(),
			submission: &model.Submission{Status: model.SubmissionApproved},
			photo:      &model.Photo{ID: "photo-1", UserID: "owner-1"},
			voterID:    "owner-1",
			wantErr:    common.ErrSelfVote,
		},
		{
			name:       "duplicate vote",
			contest:    activeContest(),
			submission: &model.Submission{Status: model.SubmissionApproved},
			photo:      &model.Photo{ID: "photo-1", UserID: "owner-1"},
			createErr:  common.ErrDuplicateVote,
			voterID:    "voter-1",
			wantErr:    common.ErrDuplicateVote,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			voteRepo := &fakeVoteRepo{createErr: tt.createErr}
			s := NewVoteService(
				voteRepo,
				&fakeSubmissionRepo{submission: tt.submission, err: tt.subErr},
				&fakeContestRepo{contest: tt.contest, err: tt.contestErr},
				&fakePhotoRepo{photo: tt.photo},
				&fakeUserRepo{},
			)

			vote, err := s.CastVote(context.Background(), tt.voterID, "photo-1", "contest-1")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("CastVote error = %v, want %v", err, tt.wantErr)
				}
				if len(voteRepo.created) != 0 {
					t.Errorf("expected no persisted vote on failure, got %d", len(voteRepo.created))
				}
				return
			}
			if err != nil {
				t.Fatalf("CastVote: %v", err)
			}
			if vote.UserID != tt.voterID || vote.PhotoID != "photo-1" || vote.ContestID != "contest-1" {
				t.Errorf("unexpected vote %+v", vote)
			}
			if len(voteRepo.created) != 1 {
				t.Errorf("expected exactly one persisted vote, got %d", len(voteRepo.created))
			}
		})
	}
}

// Self-votes must fail regardless of contest or approval state is covered by
// validation order: the owner check runs after state checks, so a self-vote in
// a non-active contest surfaces the state error first but never persists.
func TestCastVoteSelfVoteNeverPersists(t *testing.T) {
	voteRepo := &fakeVoteRepo{}
	s := NewVoteService(
		voteRepo,
		&fakeSubmissionRepo{submission: &model.Submission{Status: model.SubmissionApproved}},
		&fakeContestRepo{contest: activeContest()},
		&fakePhotoRepo{photo: &model.Photo{ID: "photo-1", UserID: "owner-1"}},
		&fakeUserRepo{},
	)
	if _, err := s.CastVote(context.Background(), "owner-1", "photo-1", "contest-1"); !errors.Is(err, common.ErrSelfVote) {
		t.Fatalf("expected ErrSelfVote, got %v", err)
	}
	if len(voteRepo.created) != 0 {
		t.Fatalf("self vote must not persist")
	}
}

func TestAssignRanks(t *testing.T) {
	entries := []model.LeaderboardEntry{
		{PhotoID: "a", TotalVotes: 5},
		{PhotoID: "b", TotalVotes: 5},
		{PhotoID: "c", TotalVotes: 3},
		{PhotoID: "d", TotalVotes: 1},
	}
	AssignRanks(entries)

	want := []int{1, 1, 3, 4}
	for i, e := range entries {
		if e.Rank != want[i] {
			t.Errorf("entry %d (%s): rank = %d, want %d", i, e.PhotoID, e.Rank, want[i])
		}
	}
}

func TestLeaderboardOrdersApprovedFirst(t *testing.T) {
	now := time.Now()
	s := NewVoteService(
		&fakeVoteRepo{standings: []model.LeaderboardEntry{
			{PhotoID: "pending-top", TotalVotes: 9, SubmissionStatus: model.SubmissionPending, SubmittedAt: now},
			{PhotoID: "approved-mid", TotalVotes: 4, SubmissionStatus: model.SubmissionApproved, SubmittedAt: now},
			{PhotoID: "approved-low", TotalVotes: 2, SubmissionStatus: model.SubmissionApproved, SubmittedAt: now},
		}},
		&fakeSubmissionRepo{},
		&fakeContestRepo{contest: activeContest()},
		&fakePhotoRepo{},
		&fakeUserRepo{},
	)

	entries, err := s.Leaderboard(context.Background(), "contest-1")
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}

	gotOrder := []string{entries[0].PhotoID, entries[1].PhotoID, entries[2].PhotoID}
	wantOrder := []string{"approved-mid", "approved-low", "pending-top"}
	for i := range wantOrder {
		if gotOrder[i] != wantOrder[i] {
			t.Fatalf("display order = %v, want %v", gotOrder, wantOrder)
		}
	}
	// Rank numbers stay tied to vote counts, independent of display order.
	if entries[2].Rank != 1 {
		t.Errorf("pending-top rank = %d, want 1", entries[2].Rank)
	}
}

func TestAwardPrize(t *testing.T) {
	now := time.Now()
	contest := &model.Contest{ID: "contest-1", PrizePoints: 50}

	t.Run("no approved submissions", func(t *testing.T) {
		users := &fakeUserRepo{}
		s := NewVoteService(
			&fakeVoteRepo{standings: []model.LeaderboardEntry{
				{PhotoID: "a", OwnerID: "u1", TotalVotes: 7, SubmissionStatus: model.SubmissionPending},
				{PhotoID: "b", OwnerID: "u2", TotalVotes: 3, SubmissionStatus: model.SubmissionRejected},
			}},
			&fakeSubmissionRepo{}, &fakeContestRepo{}, &fakePhotoRepo{}, users,
		)
		if _, err := s.AwardPrize(context.Background(), nil, contest); !errors.Is(err, common.ErrNoEligibleWinner) {
			t.Fatalf("expected ErrNoEligibleWinner, got %v", err)
		}
		if len(users.credits) != 0 {
			t.Fatalf("no coins may move without a winner, got %v", users.credits)
		}
	})

	t.Run("top approved wins over higher unapproved", func(t *testing.T) {
		users := &fakeUserRepo{}
		s := NewVoteService(
			&fakeVoteRepo{standings: []model.LeaderboardEntry{
				{PhotoID: "a", OwnerID: "u1", TotalVotes: 7, SubmissionStatus: model.SubmissionPending, SubmittedAt: now},
				{PhotoID: "b", OwnerID: "u2", TotalVotes: 5, SubmissionStatus: model.SubmissionApproved, SubmittedAt: now},
				{PhotoID: "c", OwnerID: "u3", TotalVotes: 5, SubmissionStatus: model.SubmissionApproved, SubmittedAt: now.Add(time.Minute)},
			}},
			&fakeSubmissionRepo{}, &fakeContestRepo{}, &fakePhotoRepo{}, users,
		)
		winner, err := s.AwardPrize(context.Background(), nil, contest)
		if err != nil {
			t.Fatalf("AwardPrize: %v", err)
		}
		// Standings arrive ordered by votes desc then earliest submission, so
		// the tie between b and c breaks toward b.
		if winner.PhotoID != "b" {
			t.Errorf("winner = %s, want b", winner.PhotoID)
		}
		if users.credits["u2"] != 50 {
			t.Errorf("winner credit = %d, want 50", users.credits["u2"])
		}
	})
}
