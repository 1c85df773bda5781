package repository

import (
	"context"
	"database/sql"
	"fmt"
	"photo_contest/internal/common"
	"photo_contest/internal/domain/model"
)

type VoteRepository interface {
	Create(ctx context.Context, vote *model.Vote) error
	ContestStandings(ctx context.Context, contestID string) ([]model.LeaderboardEntry, error)
	Count(ctx context.Context) (int, error)
}

type pgVoteRepository struct {
	db *sql.DB
}

func NewPgVoteRepository(db *sql.DB) VoteRepository {
	return &pgVoteRepository{db: db}
}

// Create inserts the vote. The unique constraint on (user_id, photo_id,
// contest_id) is the final arbiter under concurrent identical requests; a
// violation surfaces as ErrDuplicateVote and is never retried.
func (r *pgVoteRepository) Create(ctx context.Context, v *model.Vote) error {
	query := `INSERT INTO votes (id, user_id, photo_id, contest_id) VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, v.ID, v.UserID, v.PhotoID, v.ContestID)
	if err != nil {
		if common.IsUniqueViolation(err) {
			return common.ErrDuplicateVote
		}
		return fmt.Errorf("pgVoteRepository.Create: %w", err)
	}
	return nil
}

// ContestStandings returns every submission in the contest with its distinct
// vote count, ordered by votes descending then earliest submission. Rank
// assignment and display ordering happen in the service layer.
func (r *pgVoteRepository) ContestStandings(ctx context.Context, contestID string) ([]model.LeaderboardEntry, error) {
	query := `
        SELECT p.id, p.title, p.file_path, u.id, u.name,
               COUNT(DISTINCT v.id) AS total_votes,
               s.status, s.submitted_at
        FROM submissions s
        JOIN photos p ON s.photo_id = p.id
        JOIN users u ON p.user_id = u.id
        LEFT JOIN votes v ON v.photo_id = p.id AND v.contest_id = s.contest_id
        WHERE s.contest_id = $1
        GROUP BY p.id, p.title, p.file_path, u.id, u.name, s.status, s.submitted_at
        ORDER BY total_votes DESC, s.submitted_at ASC`
	rows, err := r.db.QueryContext(ctx, query, contestID)
	if err != nil {
		return nil, fmt.Errorf("pgVoteRepository.ContestStandings: %w", err)
	}
	defer rows.Close()

	var entries []model.LeaderboardEntry
	for rows.Next() {
		var e model.LeaderboardEntry
		if err := rows.Scan(&e.PhotoID, &e.PhotoTitle, &e.FilePath, &e.OwnerID, &e.OwnerName,
			&e.TotalVotes, &e.SubmissionStatus, &e.SubmittedAt); err != nil {
			return nil, fmt.Errorf("pgVoteRepository.ContestStandings scan: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *pgVoteRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM votes`).Scan(&n); err != nil {
		return 0, fmt.Errorf("pgVoteRepository.Count: %w", err)
	}
	return n, nil
}
