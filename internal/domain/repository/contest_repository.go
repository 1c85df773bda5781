package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"photo_contest/internal/common"
	"photo_contest/internal/domain/model"
	"time"
)

type ContestRepository interface {
	Create(ctx context.Context, contest *model.Contest) error
	FindByID(ctx context.Context, id string) (*model.Contest, error)
	FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id string) (*model.Contest, error)
	FindBySlug(ctx context.Context, slug string) (*model.Contest, error)
	ListAll(ctx context.Context) ([]model.Contest, error)
	ListActive(ctx context.Context, limit int) ([]model.Contest, error)
	RecomputeStatuses(ctx context.Context, now time.Time) (int64, error)
	UpdateStatus(ctx context.Context, tx *sql.Tx, id string, status model.ContestStatus) error
	SetWinner(ctx context.Context, tx *sql.Tx, id, userID string) error
	Count(ctx context.Context) (int, error)
}

type pgContestRepository struct {
	db *sql.DB
}

func NewPgContestRepository(db *sql.DB) ContestRepository {
	return &pgContestRepository{db: db}
}

func (r *pgContestRepository) Create(ctx context.Context, c *model.Contest) error {
	query := `INSERT INTO contests (id, title, slug, start_date, end_date, max_participants, prize_points, entry_fee, manager_id, status)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.Title, c.Slug, c.StartDate, c.EndDate, c.MaxParticipants, c.PrizePoints, c.EntryFee, c.ManagerID, c.Status)
	if err != nil {
		if common.IsUniqueViolation(err) {
			return fmt.Errorf("contest with this slug already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgContestRepository.Create: %w", err)
	}
	return nil
}

const contestColumns = `id, title, slug, start_date, end_date, max_participants, prize_points, entry_fee, manager_id, status, winner_user_id, created_at, updated_at`

func (r *pgContestRepository) scanContest(row *sql.Row) (*model.Contest, error) {
	c := &model.Contest{}
	err := row.Scan(
		&c.ID, &c.Title, &c.Slug, &c.StartDate, &c.EndDate, &c.MaxParticipants,
		&c.PrizePoints, &c.EntryFee, &c.ManagerID, &c.Status, &c.WinnerUserID, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *pgContestRepository) FindByID(ctx context.Context, id string) (*model.Contest, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+contestColumns+` FROM contests WHERE id = $1`, id)
	c, err := r.scanContest(row)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("pgContestRepository.FindByID: %w", err)
	}
	return c, nil
}

// FindByIDForUpdate locks the contest row for the duration of the surrounding
// transaction. Entry into a contest serializes on this lock so the
// one-entry-per-user and capacity checks cannot race concurrent submissions.
func (r *pgContestRepository) FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id string) (*model.Contest, error) {
	row := tx.QueryRowContext(ctx, `SELECT `+contestColumns+` FROM contests WHERE id = $1 FOR UPDATE`, id)
	c, err := r.scanContest(row)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("pgContestRepository.FindByIDForUpdate: %w", err)
	}
	return c, nil
}

func (r *pgContestRepository) FindBySlug(ctx context.Context, slug string) (*model.Contest, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+contestColumns+` FROM contests WHERE slug = $1`, slug)
	c, err := r.scanContest(row)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("pgContestRepository.FindBySlug: %w", err)
	}
	return c, nil
}

func (r *pgContestRepository) ListAll(ctx context.Context) ([]model.Contest, error) {
	query := `
        SELECT c.id, c.title, c.slug, c.start_date, c.end_date, c.max_participants,
               c.prize_points, c.entry_fee, c.manager_id, c.status, c.winner_user_id, c.created_at, c.updated_at,
               a.name AS manager_name,
               COUNT(DISTINCT s.id) AS total_submissions,
               COUNT(DISTINCT v.id) AS total_votes
        FROM contests c
        LEFT JOIN admins a ON c.manager_id = a.id
        LEFT JOIN submissions s ON s.contest_id = c.id
        LEFT JOIN votes v ON v.contest_id = c.id
        GROUP BY c.id, a.name
        ORDER BY c.start_date DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgContestRepository.ListAll: %w", err)
	}
	defer rows.Close()

	var contests []model.Contest
	for rows.Next() {
		var c model.Contest
		if err := rows.Scan(
			&c.ID, &c.Title, &c.Slug, &c.StartDate, &c.EndDate, &c.MaxParticipants,
			&c.PrizePoints, &c.EntryFee, &c.ManagerID, &c.Status, &c.WinnerUserID, &c.CreatedAt, &c.UpdatedAt,
			&c.ManagerName, &c.TotalSubmissions, &c.TotalVotes,
		); err != nil {
			return nil, fmt.Errorf("pgContestRepository.ListAll scan: %w", err)
		}
		contests = append(contests, c)
	}
	return contests, rows.Err()
}

func (r *pgContestRepository) ListActive(ctx context.Context, limit int) ([]model.Contest, error) {
	query := `SELECT ` + contestColumns + ` FROM contests WHERE status = 'Active' ORDER BY end_date ASC`
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgContestRepository.ListActive: %w", err)
	}
	defer rows.Close()

	var contests []model.Contest
	for rows.Next() {
		var c model.Contest
		if err := rows.Scan(
			&c.ID, &c.Title, &c.Slug, &c.StartDate, &c.EndDate, &c.MaxParticipants,
			&c.PrizePoints, &c.EntryFee, &c.ManagerID, &c.Status, &c.WinnerUserID, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("pgContestRepository.ListActive scan: %w", err)
		}
		contests = append(contests, c)
	}
	return contests, rows.Err()
}

// RecomputeStatuses derives every non-cancelled contest's status from its
// time window. Cancelled rows are excluded so cancellation stays sticky.
func (r *pgContestRepository) RecomputeStatuses(ctx context.Context, now time.Time) (int64, error) {
	query := `
        UPDATE contests
        SET status = CASE
                WHEN $1 < start_date THEN 'Upcoming'
                WHEN $1 > end_date THEN 'Completed'
                ELSE 'Active'
            END,
            updated_at = CURRENT_TIMESTAMP
        WHERE status <> 'Cancelled'`
	res, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("pgContestRepository.RecomputeStatuses: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("pgContestRepository.RecomputeStatuses rows affected: %w", err)
	}
	return affected, nil
}

func (r *pgContestRepository) UpdateStatus(ctx context.Context, tx *sql.Tx, id string, status model.ContestStatus) error {
	query := `UPDATE contests SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, status, id)
	} else {
		_, err = r.db.ExecContext(ctx, query, status, id)
	}
	if err != nil {
		return fmt.Errorf("pgContestRepository.UpdateStatus: %w", err)
	}
	return nil
}

// SetWinner records who took the prize. Runs inside the finalize transaction
// so the winner and the coin credit land together or not at all.
func (r *pgContestRepository) SetWinner(ctx context.Context, tx *sql.Tx, id, userID string) error {
	query := `UPDATE contests SET winner_user_id = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	if _, err := tx.ExecContext(ctx, query, userID, id); err != nil {
		return fmt.Errorf("pgContestRepository.SetWinner: %w", err)
	}
	return nil
}

func (r *pgContestRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contests`).Scan(&n); err != nil {
		return 0, fmt.Errorf("pgContestRepository.Count: %w", err)
	}
	return n, nil
}
