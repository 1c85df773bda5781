package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"photo_contest/internal/common"
	"photo_contest/internal/domain/model"
)

type PhotoRepository interface {
	Create(ctx context.Context, tx *sql.Tx, photo *model.Photo) error
	FindByID(ctx context.Context, id string) (*model.Photo, error)
	ListByUser(ctx context.Context, userID string) ([]model.Photo, error)
	UpdateTitle(ctx context.Context, id, title string) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

type pgPhotoRepository struct {
	db *sql.DB
}

func NewPgPhotoRepository(db *sql.DB) PhotoRepository {
	return &pgPhotoRepository{db: db}
}

func (r *pgPhotoRepository) Create(ctx context.Context, tx *sql.Tx, p *model.Photo) error {
	query := `INSERT INTO photos (id, user_id, title, file_path) VALUES ($1, $2, $3, $4)`
	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, p.ID, p.UserID, p.Title, p.FilePath)
	} else {
		_, err = r.db.ExecContext(ctx, query, p.ID, p.UserID, p.Title, p.FilePath)
	}
	if err != nil {
		return fmt.Errorf("pgPhotoRepository.Create: %w", err)
	}
	return nil
}

func (r *pgPhotoRepository) FindByID(ctx context.Context, id string) (*model.Photo, error) {
	query := `SELECT id, user_id, title, file_path, upload_date FROM photos WHERE id = $1`
	p := &model.Photo{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.UserID, &p.Title, &p.FilePath, &p.UploadDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgPhotoRepository.FindByID: %w", err)
	}
	return p, nil
}

// ListByUser returns the user's photos with the contests they entered and
// the votes they collected, newest upload first.
func (r *pgPhotoRepository) ListByUser(ctx context.Context, userID string) ([]model.Photo, error) {
	query := `
        SELECT p.id, p.user_id, p.title, p.file_path, p.upload_date,
               STRING_AGG(DISTINCT c.title, ', ') AS contests,
               COUNT(DISTINCT v.id) AS total_votes
        FROM photos p
        LEFT JOIN submissions s ON s.photo_id = p.id
        LEFT JOIN contests c ON s.contest_id = c.id
        LEFT JOIN votes v ON v.photo_id = p.id
        WHERE p.user_id = $1
        GROUP BY p.id
        ORDER BY p.upload_date DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgPhotoRepository.ListByUser: %w", err)
	}
	defer rows.Close()

	var photos []model.Photo
	for rows.Next() {
		var p model.Photo
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.FilePath, &p.UploadDate, &p.Contests, &p.TotalVotes); err != nil {
			return nil, fmt.Errorf("pgPhotoRepository.ListByUser scan: %w", err)
		}
		photos = append(photos, p)
	}
	return photos, rows.Err()
}

func (r *pgPhotoRepository) UpdateTitle(ctx context.Context, id, title string) error {
	query := `UPDATE photos SET title = $1 WHERE id = $2`
	if _, err := r.db.ExecContext(ctx, query, title, id); err != nil {
		return fmt.Errorf("pgPhotoRepository.UpdateTitle: %w", err)
	}
	return nil
}

func (r *pgPhotoRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM photos WHERE id = $1`, id); err != nil {
		return fmt.Errorf("pgPhotoRepository.Delete: %w", err)
	}
	return nil
}

func (r *pgPhotoRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM photos`).Scan(&n); err != nil {
		return 0, fmt.Errorf("pgPhotoRepository.Count: %w", err)
	}
	return n, nil
}
