package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"photo_contest/internal/common"
	"photo_contest/internal/domain/model"
)

type AdminRepository interface {
	Create(ctx context.Context, admin *model.Admin) error
	FindByEmail(ctx context.Context, email string) (*model.Admin, error)
	FindByID(ctx context.Context, id string) (*model.Admin, error)
}

type pgAdminRepository struct {
	db *sql.DB
}

func NewPgAdminRepository(db *sql.DB) AdminRepository {
	return &pgAdminRepository{db: db}
}

func (r *pgAdminRepository) Create(ctx context.Context, admin *model.Admin) error {
	query := `INSERT INTO admins (id, name, email, hashed_password) VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, admin.ID, admin.Name, admin.Email, admin.HashedPassword)
	if err != nil {
		if common.IsUniqueViolation(err) {
			return fmt.Errorf("admin with given email already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgAdminRepository.Create: %w", err)
	}
	return nil
}

func (r *pgAdminRepository) FindByEmail(ctx context.Context, email string) (*model.Admin, error) {
	query := `SELECT id, name, email, hashed_password, created_at FROM admins WHERE email = $1`
	admin := &model.Admin{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&admin.ID, &admin.Name, &admin.Email, &admin.HashedPassword, &admin.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgAdminRepository.FindByEmail: %w", err)
	}
	return admin, nil
}

func (r *pgAdminRepository) FindByID(ctx context.Context, id string) (*model.Admin, error) {
	query := `SELECT id, name, email, hashed_password, created_at FROM admins WHERE id = $1`
	admin := &model.Admin{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&admin.ID, &admin.Name, &admin.Email, &admin.HashedPassword, &admin.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgAdminRepository.FindByID: %w", err)
	}
	return admin, nil
}
