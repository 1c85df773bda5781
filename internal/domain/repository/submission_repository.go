package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"photo_contest/internal/common"
	"photo_contest/internal/domain/model"
)

type SubmissionRepository interface {
	Create(ctx context.Context, tx *sql.Tx, sub *model.Submission) error
	FindByID(ctx context.Context, id string) (*model.Submission, error)
	FindByPhotoAndContest(ctx context.Context, photoID, contestID string) (*model.Submission, error)
	UserHasEntered(ctx context.Context, tx *sql.Tx, userID, contestID string) (bool, error)
	CountByContest(ctx context.Context, tx *sql.Tx, contestID string) (int, error)
	UpdateStatus(ctx context.Context, id string, status model.SubmissionStatus) error
	ListRecent(ctx context.Context, limit int) ([]model.Submission, error)
}

type pgSubmissionRepository struct {
	db *sql.DB
}

func NewPgSubmissionRepository(db *sql.DB) SubmissionRepository {
	return &pgSubmissionRepository{db: db}
}

func (r *pgSubmissionRepository) Create(ctx context.Context, tx *sql.Tx, s *model.Submission) error {
	query := `INSERT INTO submissions (id, photo_id, contest_id, status) VALUES ($1, $2, $3, $4)`
	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, s.ID, s.PhotoID, s.ContestID, s.Status)
	} else {
		_, err = r.db.ExecContext(ctx, query, s.ID, s.PhotoID, s.ContestID, s.Status)
	}
	if err != nil {
		if common.IsUniqueViolation(err) {
			return fmt.Errorf("photo already submitted to this contest: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgSubmissionRepository.Create: %w", err)
	}
	return nil
}

func (r *pgSubmissionRepository) FindByID(ctx context.Context, id string) (*model.Submission, error) {
	query := `SELECT id, photo_id, contest_id, status, submitted_at FROM submissions WHERE id = $1`
	s := &model.Submission{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.PhotoID, &s.ContestID, &s.Status, &s.SubmittedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgSubmissionRepository.FindByID: %w", err)
	}
	return s, nil
}

func (r *pgSubmissionRepository) FindByPhotoAndContest(ctx context.Context, photoID, contestID string) (*model.Submission, error) {
	query := `SELECT id, photo_id, contest_id, status, submitted_at
	          FROM submissions WHERE photo_id = $1 AND contest_id = $2`
	s := &model.Submission{}
	err := r.db.QueryRowContext(ctx, query, photoID, contestID).Scan(&s.ID, &s.PhotoID, &s.ContestID, &s.Status, &s.SubmittedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgSubmissionRepository.FindByPhotoAndContest: %w", err)
	}
	return s, nil
}

func (r *pgSubmissionRepository) UserHasEntered(ctx context.Context, tx *sql.Tx, userID, contestID string) (bool, error) {
	query := `SELECT EXISTS (
	            SELECT 1 FROM submissions s
	            JOIN photos p ON s.photo_id = p.id
	            WHERE p.user_id = $1 AND s.contest_id = $2)`
	var exists bool
	var err error
	if tx != nil {
		err = tx.QueryRowContext(ctx, query, userID, contestID).Scan(&exists)
	} else {
		err = r.db.QueryRowContext(ctx, query, userID, contestID).Scan(&exists)
	}
	if err != nil {
		return false, fmt.Errorf("pgSubmissionRepository.UserHasEntered: %w", err)
	}
	return exists, nil
}

func (r *pgSubmissionRepository) CountByContest(ctx context.Context, tx *sql.Tx, contestID string) (int, error) {
	query := `SELECT COUNT(*) FROM submissions WHERE contest_id = $1`
	var n int
	var err error
	if tx != nil {
		err = tx.QueryRowContext(ctx, query, contestID).Scan(&n)
	} else {
		err = r.db.QueryRowContext(ctx, query, contestID).Scan(&n)
	}
	if err != nil {
		return 0, fmt.Errorf("pgSubmissionRepository.CountByContest: %w", err)
	}
	return n, nil
}

func (r *pgSubmissionRepository) UpdateStatus(ctx context.Context, id string, status model.SubmissionStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE submissions SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("pgSubmissionRepository.UpdateStatus: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgSubmissionRepository.UpdateStatus rows affected: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgSubmissionRepository) ListRecent(ctx context.Context, limit int) ([]model.Submission, error) {
	query := `
        SELECT s.id, s.photo_id, s.contest_id, s.status, s.submitted_at,
               p.title AS photo_title, u.name AS user_name, c.title AS contest_title
        FROM submissions s
        JOIN photos p ON s.photo_id = p.id
        JOIN users u ON p.user_id = u.id
        JOIN contests c ON s.contest_id = c.id
        ORDER BY s.submitted_at DESC
        LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.ListRecent: %w", err)
	}
	defer rows.Close()

	var subs []model.Submission
	for rows.Next() {
		var s model.Submission
		if err := rows.Scan(&s.ID, &s.PhotoID, &s.ContestID, &s.Status, &s.SubmittedAt,
			&s.PhotoTitle, &s.UserName, &s.ContestTitle); err != nil {
			return nil, fmt.Errorf("pgSubmissionRepository.ListRecent scan: %w", err)
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}
